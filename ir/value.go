package ir

type IValue interface {
	GetType() IType
	// Set of instructions that currently read this value as an operand.
	GetUsers() map[IInstr]bool
	AddUser(instr IInstr)
	RemoveUser(instr IInstr)
	ToString() string
}

type BaseValue struct {
	Type IType
	// def -> use edges
	Users map[IInstr]bool
}

func NewBaseValue(tp IType) *BaseValue {
	return &BaseValue{
		Type:  tp,
		Users: make(map[IInstr]bool),
	}
}

func (v *BaseValue) GetType() IType { return v.Type }

func (v *BaseValue) GetUsers() map[IInstr]bool { return v.Users }

func (v *BaseValue) AddUser(instr IInstr) { v.Users[instr] = true }

func (v *BaseValue) RemoveUser(instr IInstr) { delete(v.Users, instr) }

// UserList snapshots the user set into a slice, so that callers can rewrite
// use edges while ranging over it.
func UserList(v IValue) []IInstr {
	users := make([]IInstr, 0, len(v.GetUsers()))
	for u := range v.GetUsers() {
		users = append(users, u)
	}
	return users
}

// Function parameter. An opaque non-constant value defined outside any
// basic block.
type Param struct {
	BaseValue
	Name string
}

func NewParam(name string, tp IType) *Param {
	return &Param{
		BaseValue: *NewBaseValue(tp),
		Name:      name,
	}
}

func (p *Param) ToString() string { return "%" + p.Name }

// ReplaceAllUses rewrites every operand slot that references from so that it
// references to instead. Both sides of the use-def relation are updated: to
// gains every rewritten instruction as a user, and from is left with an
// empty user set. from itself is not erased.
func ReplaceAllUses(from, to IValue) {
	if from == to {
		return
	}
	for _, user := range UserList(from) {
		opd := user.GetOperands()
		for i := range opd {
			if opd[i] == from {
				user.SetOperand(i, to)
			}
		}
	}
}
