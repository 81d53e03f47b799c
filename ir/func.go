package ir

import "fmt"

type Func struct {
	Name string
	// parameter list
	Params []*Param
	// Basic blocks in program order. The optimizer visits them in this
	// order, it never traverses control flow edges.
	Blocks []*BasicBlock
	// counter for temporary names assigned by the builder
	nextTemp int
}

func NewFunc(name string) *Func {
	return &Func{Name: name}
}

func (f *Func) NewParam(name string, tp IType) *Param {
	p := NewParam(name, tp)
	f.Params = append(f.Params, p)
	return p
}

// NextTemp hands out a fresh temporary name for an instruction result.
func (f *Func) NextTemp() string {
	f.nextTemp++
	return fmt.Sprintf("t%d", f.nextTemp)
}

func (f *Func) NewBlock(label string) *BasicBlock {
	bb := NewBasicBlock(label, f)
	f.Blocks = append(f.Blocks, bb)
	return bb
}

type Program struct {
	Name  string
	Funcs []*Func
}

func NewProgram(name string) *Program {
	return &Program{Name: name}
}

func (p *Program) AddFunc(f *Func) { p.Funcs = append(p.Funcs, f) }
