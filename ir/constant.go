package ir

import (
	"github.com/holiman/uint256"
)

// Width-typed integer constant. The payload is stored masked to the width of
// its type, so all derived constants obey wraparound semantics at that
// width. Constants are immutable once created.
type Constant struct {
	BaseValue
	value uint256.Int
}

func NewConstant(tp *IntType, value *uint256.Int) *Constant {
	c := &Constant{
		BaseValue: *NewBaseValue(tp),
		value:     *value,
	}
	maskTo(&c.value, tp.Width)
	return c
}

func NewConstantUint64(tp *IntType, value uint64) *Constant {
	return NewConstant(tp, uint256.NewInt(value))
}

func NewConstantInt64(tp *IntType, value int64) *Constant {
	v := new(uint256.Int)
	if value < 0 {
		v.SetUint64(uint64(-value))
		v.Neg(v)
	} else {
		v.SetUint64(uint64(value))
	}
	return NewConstant(tp, v)
}

// Truncate v to the low width bits.
func maskTo(v *uint256.Int, width uint) {
	if width >= MaxWidth {
		return
	}
	mask := new(uint256.Int).Lsh(uint256.NewInt(1), width)
	mask.SubUint64(mask, 1)
	v.And(v, mask)
}

func (c *Constant) IntType() *IntType { return c.Type.(*IntType) }

// Value returns a copy of the masked payload.
func (c *Constant) Value() *uint256.Int { return new(uint256.Int).Set(&c.value) }

func (c *Constant) IsZero() bool { return c.value.IsZero() }

func (c *Constant) IsOne() bool { return c.value.Eq(uint256.NewInt(1)) }

// IsPowerOfTwo reports whether exactly one bit of the masked payload is set.
// 1 counts as a power of two (2^0).
func (c *Constant) IsPowerOfTwo() bool {
	if c.value.IsZero() {
		return false
	}
	t := new(uint256.Int).SubUint64(&c.value, 1)
	t.And(t, &c.value)
	return t.IsZero()
}

// Log2 returns the exact base-2 logarithm of the payload. Only meaningful
// when IsPowerOfTwo holds.
func (c *Constant) Log2() uint { return uint(c.value.BitLen() - 1) }

// PlusOne returns a new constant holding the payload plus one, wrapped at
// the constant's width.
func (c *Constant) PlusOne() *Constant {
	v := new(uint256.Int).AddUint64(&c.value, 1)
	return NewConstant(c.IntType(), v)
}

// MinusOne returns a new constant holding the payload minus one, wrapped at
// the constant's width.
func (c *Constant) MinusOne() *Constant {
	one := uint256.NewInt(1)
	v := new(uint256.Int).Sub(&c.value, one)
	return NewConstant(c.IntType(), v)
}

// Equal reports bit-exact equality: both constants must share the same
// width and the same masked payload.
func (c *Constant) Equal(c2 *Constant) bool {
	return c.IntType().Width == c2.IntType().Width && c.value.Eq(&c2.value)
}

func (c *Constant) ToString() string { return c.value.Dec() }
