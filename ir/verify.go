package ir

import "fmt"

// Verify checks that the use-def relation of a function is consistent in
// both directions: every operand reference has a matching user entry, every
// user entry has a matching operand reference, and the instruction list of
// each block is correctly linked. The optimizer must preserve all of these.
func Verify(fn *Func) error {
	instrs := make(map[IInstr]bool)
	for _, bb := range fn.Blocks {
		var prev IInstr
		for iter := NewInstrIterFromBlock(bb); iter.IsValid(); iter.Next() {
			instr := iter.Cur
			if instr.GetBasicBlock() != bb {
				return fmt.Errorf("block %s: instruction %s has wrong block pointer",
					bb.Name, InstrStr(instr))
			}
			if instr.GetPrev() != prev {
				return fmt.Errorf("block %s: broken prev link at %s",
					bb.Name, InstrStr(instr))
			}
			instrs[instr] = true
			for _, opd := range instr.GetOperands() {
				if !opd.GetUsers()[instr] {
					return fmt.Errorf("block %s: %s uses %s without a user entry",
						bb.Name, InstrStr(instr), opd.ToString())
				}
			}
			prev = instr
		}
		if bb.Tail != prev {
			return fmt.Errorf("block %s: tail does not match last instruction", bb.Name)
		}
	}

	values := make([]IValue, 0)
	for _, param := range fn.Params {
		values = append(values, param)
	}
	for instr := range instrs {
		if val, ok := instr.(IValue); ok {
			values = append(values, val)
		}
		for _, opd := range instr.GetOperands() {
			if c, ok := opd.(*Constant); ok {
				values = append(values, c)
			}
		}
	}
	for _, val := range values {
		for user := range val.GetUsers() {
			if !instrs[user] {
				return fmt.Errorf("value %s has a user outside the function",
					val.ToString())
			}
			found := false
			for _, opd := range user.GetOperands() {
				if opd == val {
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("value %s has stale user entry %s",
					val.ToString(), InstrStr(user))
			}
		}
	}
	return nil
}
