package ir

import "fmt"

type IInstr interface {
	GetPrev() IInstr
	SetPrev(instr IInstr)
	GetNext() IInstr
	SetNext(instr IInstr)
	GetBasicBlock() *BasicBlock
	SetBasicBlock(bb *BasicBlock)
	// Ordered operand references. Order is semantically significant for
	// non-commutative opcodes.
	GetOperands() []IValue
	// Rewrite one operand slot, keeping user sets on both values correct.
	SetOperand(i int, val IValue)
}

type BaseInstr struct {
	// an instruction also serves as a node in the linked list of a basic block
	Prev, Next IInstr
	// the basic block that this instruction lies in
	BB *BasicBlock
	// use -> def edges
	Opd []IValue
}

func (i *BaseInstr) GetPrev() IInstr { return i.Prev }

func (i *BaseInstr) SetPrev(instr IInstr) { i.Prev = instr }

func (i *BaseInstr) GetNext() IInstr { return i.Next }

func (i *BaseInstr) SetNext(instr IInstr) { i.Next = instr }

func (i *BaseInstr) GetBasicBlock() *BasicBlock { return i.BB }

func (i *BaseInstr) SetBasicBlock(bb *BasicBlock) { i.BB = bb }

func (i *BaseInstr) GetOperands() []IValue { return i.Opd }

// Register self as a user of every operand. Called once from each
// instruction constructor.
func initOperands(self IInstr, opd ...IValue) {
	for _, v := range opd {
		v.AddUser(self)
	}
}

// Rewrite operand slot i of instr to val. The old operand loses instr from
// its user set unless another slot of instr still references it.
func setOperand(instr IInstr, i int, val IValue) {
	opd := instr.GetOperands()
	old := opd[i]
	if old == val {
		return
	}
	opd[i] = val
	stillUsed := false
	for _, v := range opd {
		if v == old {
			stillUsed = true
			break
		}
	}
	if !stillUsed {
		old.RemoveUser(instr)
	}
	val.AddUser(instr)
}

// Drop instr from the user sets of all its operands. Called on erasure.
func dropOperands(instr IInstr) {
	for _, v := range instr.GetOperands() {
		v.RemoveUser(instr)
	}
}

type BinaryOp int

const (
	ADD BinaryOp = iota
	SUB
	MUL
	SDIV
	SHL
	LSHR
)

func (op BinaryOp) ToString() string {
	switch op {
	case ADD:
		return "add"
	case SUB:
		return "sub"
	case MUL:
		return "mul"
	case SDIV:
		return "sdiv"
	case SHL:
		return "shl"
	case LSHR:
		return "lshr"
	default:
		panic(NewIRError(fmt.Sprintf("unknown binary opcode %d", op)))
	}
}

// Commutative reports whether swapping the operands preserves the result.
func (op BinaryOp) Commutative() bool { return op == ADD || op == MUL }

// Binary arithmetic instruction. The instruction itself is the value it
// produces, so it can be referenced as an operand by its users.
type Binary struct {
	BaseInstr
	BaseValue
	Op BinaryOp
	// result name, for printing
	Name string
}

func NewBinary(op BinaryOp, left, right IValue) *Binary {
	if left.GetType().GetTypeEnum() != Integer {
		panic(NewIRError("left operand is not an integer"))
	}
	if !left.GetType().IsIdentical(right.GetType()) {
		panic(NewIRError("two operands are not of same type"))
	}
	b := &Binary{
		BaseValue: *NewBaseValue(left.GetType()),
		Op:        op,
	}
	b.Opd = []IValue{left, right}
	initOperands(b, left, right)
	return b
}

func (b *Binary) SetOperand(i int, val IValue) { setOperand(b, i, val) }

func (b *Binary) Left() IValue { return b.Opd[0] }

func (b *Binary) Right() IValue { return b.Opd[1] }

func (b *Binary) ToString() string { return "%" + b.Name }

// Load a value from a pointer operand. Reads memory, so it is never subject
// to dead code elimination.
type Load struct {
	BaseInstr
	BaseValue
	Name string
}

func NewLoad(tp IType, addr IValue) *Load {
	if addr.GetType().GetTypeEnum() != Pointer {
		panic(NewIRError("load address is not a pointer"))
	}
	l := &Load{
		BaseValue: *NewBaseValue(tp),
	}
	l.Opd = []IValue{addr}
	initOperands(l, addr)
	return l
}

func (l *Load) SetOperand(i int, val IValue) { setOperand(l, i, val) }

func (l *Load) Addr() IValue { return l.Opd[0] }

func (l *Load) ToString() string { return "%" + l.Name }

// Store a value through a pointer operand. Produces no value.
type Store struct {
	BaseInstr
}

func NewStore(val, addr IValue) *Store {
	if addr.GetType().GetTypeEnum() != Pointer {
		panic(NewIRError("store address is not a pointer"))
	}
	s := &Store{}
	s.Opd = []IValue{val, addr}
	initOperands(s, val, addr)
	return s
}

func (s *Store) SetOperand(i int, val IValue) { setOperand(s, i, val) }

func (s *Store) Value() IValue { return s.Opd[0] }

func (s *Store) Addr() IValue { return s.Opd[1] }

// Call an external function. Assumed side effecting, so it is never subject
// to dead code elimination.
type Call struct {
	BaseInstr
	BaseValue
	Callee string
	Name   string
}

func NewCall(callee string, tp IType, args ...IValue) *Call {
	c := &Call{
		BaseValue: *NewBaseValue(tp),
		Callee:    callee,
	}
	c.Opd = append(c.Opd, args...)
	initOperands(c, args...)
	return c
}

func (c *Call) SetOperand(i int, val IValue) { setOperand(c, i, val) }

func (c *Call) ToString() string { return "%" + c.Name }

// Return from the enclosing function, optionally with one value. Block
// terminator.
type Ret struct {
	BaseInstr
}

func NewRet(val IValue) *Ret {
	r := &Ret{}
	if val != nil {
		r.Opd = []IValue{val}
		initOperands(r, val)
	}
	return r
}

func (r *Ret) SetOperand(i int, val IValue) { setOperand(r, i, val) }

func (r *Ret) Value() IValue {
	if len(r.Opd) == 0 {
		return nil
	}
	return r.Opd[0]
}
