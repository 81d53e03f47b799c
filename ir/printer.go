package ir

import (
	"fmt"
	"io"
)

// Printer writes a textual listing of IR to a writer. The listing is for
// humans and tests, it is not a serialization format.
type Printer struct {
	writer io.Writer
}

func NewPrinter(out io.Writer) *Printer {
	return &Printer{writer: out}
}

func (p *Printer) write(format string, args ...interface{}) {
	_, err := fmt.Fprintf(p.writer, format, args...)
	if err != nil {
		panic(NewIRError(fmt.Sprintf("error writing IR: %s", err.Error())))
	}
}

func operandStr(v IValue) string {
	return fmt.Sprintf("%s %s", v.GetType().ToString(), v.ToString())
}

func (p *Printer) PrintProgram(prg *Program) {
	p.write("program %s\n", prg.Name)
	for _, f := range prg.Funcs {
		p.write("\n")
		p.PrintFunc(f)
	}
}

func (p *Printer) PrintFunc(fun *Func) {
	p.write("func %s(", fun.Name)
	for i, param := range fun.Params {
		if i != 0 {
			p.write(", ")
		}
		p.write("%s", operandStr(param))
	}
	p.write(") {\n")
	for _, bb := range fun.Blocks {
		p.PrintBasicBlock(bb)
	}
	p.write("}\n")
}

func (p *Printer) PrintBasicBlock(bb *BasicBlock) {
	p.write("%s:\n", bb.Name)
	for iter := NewInstrIterFromBlock(bb); iter.IsValid(); iter.Next() {
		p.write("\t%s\n", InstrStr(iter.Cur))
	}
}

// InstrStr renders one instruction in the listing syntax.
func InstrStr(instr IInstr) string {
	switch i := instr.(type) {
	case *Binary:
		return fmt.Sprintf("%s = %s %s %s, %s", i.ToString(), i.Op.ToString(),
			i.GetType().ToString(), i.Left().ToString(), i.Right().ToString())
	case *Load:
		return fmt.Sprintf("%s = load %s, %s", i.ToString(),
			i.GetType().ToString(), operandStr(i.Addr()))
	case *Store:
		return fmt.Sprintf("store %s, %s", operandStr(i.Value()),
			operandStr(i.Addr()))
	case *Call:
		str := fmt.Sprintf("%s = call %s @%s(", i.ToString(),
			i.GetType().ToString(), i.Callee)
		for n, arg := range i.GetOperands() {
			if n != 0 {
				str += ", "
			}
			str += operandStr(arg)
		}
		return str + ")"
	case *Ret:
		if i.Value() == nil {
			return "ret void"
		}
		return fmt.Sprintf("ret %s", operandStr(i.Value()))
	default:
		panic(NewIRError(fmt.Sprintf("cannot print instruction %T", instr)))
	}
}
