package ir

import "fmt"

type BasicBlock struct {
	// Block label
	Name string
	// The function this block lies in.
	Func *Func
	// Internally, a block is a linked list of instructions.
	Head, Tail IInstr
}

func NewBasicBlock(label string, fun *Func) *BasicBlock {
	return &BasicBlock{
		Name: label,
		Func: fun,
		Head: nil, // initially an empty list
		Tail: nil,
	}
}

// Add instruction to the tail of the linked list.
func (b *BasicBlock) PushBack(instr IInstr) {
	if _, ok := b.Tail.(*Ret); ok {
		panic(NewIRError(fmt.Sprintf(
			"cannot add to block %s ended with return instruction", b.Name),
		))
	}
	instr.SetBasicBlock(b)
	if b.Head == nil {
		b.Head, b.Tail = instr, instr
		return
	}
	instr.SetPrev(b.Tail) // prev_tail <- instr
	b.Tail.SetNext(instr) // prev_tail <-> instr
	b.Tail = instr        // instr <- tail
}

// Insert instr into the list immediately after pos.
func (b *BasicBlock) InsertAfter(pos, instr IInstr) {
	if pos.GetBasicBlock() != b {
		panic(NewIRError("position instruction not in this block"))
	}
	instr.SetBasicBlock(b)
	next := pos.GetNext()
	if next != nil { // pos is not the last node
		next.SetPrev(instr)
	} else {
		b.Tail = instr
	}
	instr.SetNext(next)
	instr.SetPrev(pos)
	pos.SetNext(instr)
}

// Insert instr into the list immediately before pos.
func (b *BasicBlock) InsertBefore(pos, instr IInstr) {
	if pos.GetBasicBlock() != b {
		panic(NewIRError("position instruction not in this block"))
	}
	instr.SetBasicBlock(b)
	prev := pos.GetPrev()
	if prev != nil { // pos is not the first node
		prev.SetNext(instr)
	} else {
		b.Head = instr
	}
	instr.SetPrev(prev)
	instr.SetNext(pos)
	pos.SetPrev(instr)
}

// Erase unlinks instr from the block and drops it from the user sets of its
// operands. An instruction that still has users cannot be erased: that is a
// defect in the caller, not a recoverable condition.
func (b *BasicBlock) Erase(instr IInstr) {
	if instr.GetBasicBlock() != b {
		panic(NewIRError("instruction not in this block"))
	}
	if val, ok := instr.(IValue); ok && len(val.GetUsers()) > 0 {
		panic(NewIRError("cannot erase an instruction that still has users"))
	}
	dropOperands(instr)
	prev, next := instr.GetPrev(), instr.GetNext()
	if prev != nil { // not the first node
		prev.SetNext(next)
	} else {
		b.Head = next
	}
	if next != nil { // not the last node
		next.SetPrev(prev)
	} else {
		b.Tail = prev
	}
	instr.SetPrev(nil)
	instr.SetNext(nil)
	instr.SetBasicBlock(nil)
}

// Instruction iterator
type InstrIter struct {
	Cur IInstr
	BB  *BasicBlock
}

// Iterate from the first instruction of a basic block.
func NewInstrIterFromBlock(bb *BasicBlock) *InstrIter {
	return &InstrIter{
		Cur: bb.Head,
		BB:  bb,
	}
}

func (i *InstrIter) IsValid() bool { return i.Cur != nil }

func (i *InstrIter) Next() { i.Cur = i.Cur.GetNext() }

func (i *InstrIter) Prev() { i.Cur = i.Cur.GetPrev() }

// Erase the current instruction and advance to the next one, so that a
// traversal can continue past the erased position.
func (i *InstrIter) Erase() {
	if i.Cur == nil {
		return // no instruction to erase
	}
	next := i.Cur.GetNext()
	i.BB.Erase(i.Cur)
	i.Cur = next
}
