package ir

// Builder constructs well-formed IR programmatically. Every instruction it
// creates has its use edges wired at construction time and is appended to
// the current block, so the resulting graph satisfies the use-def invariant
// without a separate fix-up step.
type Builder struct {
	fn *Func
	bb *BasicBlock
}

func NewBuilder(fn *Func) *Builder {
	return &Builder{fn: fn}
}

func (b *Builder) Func() *Func { return b.fn }

// SetBlock directs subsequent instructions into bb.
func (b *Builder) SetBlock(bb *BasicBlock) { b.bb = bb }

// NewBlock appends a block to the function and makes it current.
func (b *Builder) NewBlock(label string) *BasicBlock {
	bb := b.fn.NewBlock(label)
	b.bb = bb
	return bb
}

func (b *Builder) tempName() string { return b.fn.NextTemp() }

func (b *Builder) push(instr IInstr) {
	if b.bb == nil {
		panic(NewIRError("no current block"))
	}
	b.bb.PushBack(instr)
}

func (b *Builder) Binary(op BinaryOp, left, right IValue) *Binary {
	instr := NewBinary(op, left, right)
	instr.Name = b.tempName()
	b.push(instr)
	return instr
}

func (b *Builder) Load(tp IType, addr IValue) *Load {
	instr := NewLoad(tp, addr)
	instr.Name = b.tempName()
	b.push(instr)
	return instr
}

func (b *Builder) Store(val, addr IValue) *Store {
	instr := NewStore(val, addr)
	b.push(instr)
	return instr
}

func (b *Builder) Call(callee string, tp IType, args ...IValue) *Call {
	instr := NewCall(callee, tp, args...)
	instr.Name = b.tempName()
	b.push(instr)
	return instr
}

func (b *Builder) Ret(val IValue) *Ret {
	instr := NewRet(val)
	b.push(instr)
	return instr
}
