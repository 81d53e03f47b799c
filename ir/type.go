package ir

import "fmt"

// Types specified for IR. Only what a local arithmetic optimizer needs:
// fixed-width integers and an opaque pointer type for memory operands.
type TypeEnum int

const (
	Integer TypeEnum = iota
	Pointer
)

type IType interface {
	GetTypeEnum() TypeEnum
	IsIdentical(tp IType) bool
	ToString() string
}

// MaxWidth is the widest integer type the IR represents.
const MaxWidth = 256

// Fixed-width integer type. Arithmetic on constants of this type wraps
// around at Width bits.
type IntType struct {
	Width uint
}

func NewIntType(width uint) *IntType {
	if width == 0 || width > MaxWidth {
		panic(NewIRError(fmt.Sprintf("invalid integer width %d", width)))
	}
	return &IntType{Width: width}
}

func (t *IntType) GetTypeEnum() TypeEnum { return Integer }

func (t *IntType) IsIdentical(tp IType) bool {
	t2, ok := tp.(*IntType)
	return ok && t.Width == t2.Width
}

func (t *IntType) ToString() string { return fmt.Sprintf("i%d", t.Width) }

// Opaque pointer type. The optimizer never looks through pointers, so the
// pointed-to type is not tracked.
type PtrType struct{}

func NewPtrType() *PtrType { return &PtrType{} }

func (t *PtrType) GetTypeEnum() TypeEnum { return Pointer }

func (t *PtrType) IsIdentical(tp IType) bool {
	_, ok := tp.(*PtrType)
	return ok
}

func (t *PtrType) ToString() string { return "ptr" }
