// Package opt implements a local peephole optimizer over straight-line IR.
// It simplifies algebraic identities, reduces multiplication and division
// by constants to shifts, cancels inverse add/sub pairs, and removes dead
// binary arithmetic. Each invocation runs every stage exactly once per
// block, there is no fixpoint iteration: a chain that needs more than one
// rewrite class converges only across repeated invocations.
package opt

import (
	"go.uber.org/zap"

	"github.com/wzh99/localopt/ir"
)

// LocalOpt rewrites one basic block at a time. It requires exclusive access
// to the IR for the duration of a call and leaves every use-def edge
// consistent when it returns.
type LocalOpt struct {
	logger *zap.Logger
	cfg    Config
}

type Option func(*LocalOpt)

func WithLogger(logger *zap.Logger) Option {
	return func(o *LocalOpt) { o.logger = logger }
}

func WithConfig(cfg Config) Option {
	return func(o *LocalOpt) { o.cfg = cfg }
}

func New(opts ...Option) *LocalOpt {
	o := &LocalOpt{
		logger: zap.NewNop(),
		cfg:    DefaultConfig(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// constOperand finds the single constant operand of a two-operand
// instruction. Slot 0 is preferred, then slot 1; if neither is constant the
// rule using it is simply not applicable. Only valid for commutative-style
// extraction: SDiv checks slot 1 directly at its call site.
func constOperand(instr *ir.Binary) (*ir.Constant, ir.IValue, bool) {
	if c, ok := instr.Left().(*ir.Constant); ok {
		return c, instr.Right(), true
	}
	if c, ok := instr.Right().(*ir.Constant); ok {
		return c, instr.Left(), true
	}
	return nil, nil, false
}

// Optimize runs the block driver over every function of the program and
// reports whether anything changed, so the host can invalidate downstream
// analyses.
func (o *LocalOpt) Optimize(prg *ir.Program) bool {
	changed := false
	for _, fn := range prg.Funcs {
		if o.OptimizeFunc(fn) {
			changed = true
		}
	}
	return changed
}

// OptimizeFunc runs the block driver over every block in program order.
func (o *LocalOpt) OptimizeFunc(fn *ir.Func) bool {
	changed := false
	for _, bb := range fn.Blocks {
		if o.OptimizeBlock(bb) {
			changed = true
		}
	}
	return changed
}

// OptimizeBlock runs the three rewrite stages over one block in fixed
// order: algebraic simplification, inverse cancellation, dead code
// elimination. Later stages observe the effects of earlier ones.
func (o *LocalOpt) OptimizeBlock(bb *ir.BasicBlock) bool {
	changed := false
	if o.cfg.Algebraic {
		changed = o.simplifyAlgebraic(bb) || changed
	}
	if o.cfg.Cancellation {
		changed = o.cancelInverse(bb) || changed
	}
	if o.cfg.DeadCode {
		changed = o.removeDeadCode(bb) || changed
	}
	return changed
}

// simplifyAlgebraic applies the per-instruction identity and strength
// reduction rules. Instructions it inserts are visited later in the same
// traversal, but no rule matches them again in this pass.
func (o *LocalOpt) simplifyAlgebraic(bb *ir.BasicBlock) bool {
	changed := false
	for iter := ir.NewInstrIterFromBlock(bb); iter.IsValid(); iter.Next() {
		instr, ok := iter.Cur.(*ir.Binary)
		if !ok {
			continue
		}
		switch instr.Op {
		case ir.ADD:
			c, other, ok := constOperand(instr)
			if !ok {
				break
			}
			if c.IsZero() {
				ir.ReplaceAllUses(instr, other)
				o.logRewrite("add of zero", instr)
				changed = true
			}
		case ir.MUL:
			c, other, ok := constOperand(instr)
			if !ok {
				break
			}
			if o.reduceMul(bb, instr, c, other) {
				changed = true
			}
		case ir.SDIV:
			// The divisor must be the second operand. A division with the
			// constant in the first slot is never touched.
			c, ok := instr.Right().(*ir.Constant)
			if !ok {
				break
			}
			if o.reduceSDiv(bb, instr, c, instr.Left()) {
				changed = true
			}
		}
	}
	return changed
}

// reduceMul rewrites a multiplication by constant c of value x. Zero has no
// dedicated rule: it falls through to the 2^k-1 decomposition with k = 0,
// producing (x << 0) - x.
func (o *LocalOpt) reduceMul(bb *ir.BasicBlock, instr *ir.Binary, c *ir.Constant, x ir.IValue) bool {
	switch {
	case c.IsOne():
		ir.ReplaceAllUses(instr, x)
		o.logRewrite("mul by one", instr)
		return true

	case c.IsPowerOfTwo():
		shift := o.insertAfter(bb, instr, ir.SHL, x, shiftCount(c, c.Log2()))
		ir.ReplaceAllUses(instr, shift)
		o.logRewrite("mul to shift", instr)
		return true

	case c.MinusOne().IsPowerOfTwo(): // c = 2^k + 1
		shift := o.insertAfter(bb, instr, ir.SHL, x, shiftCount(c, c.MinusOne().Log2()))
		sum := o.insertAfter(bb, shift, ir.ADD, shift, x)
		ir.ReplaceAllUses(instr, sum)
		o.logRewrite("mul to shift and add", instr)
		return true

	case c.PlusOne().IsPowerOfTwo(): // c = 2^k - 1
		shift := o.insertAfter(bb, instr, ir.SHL, x, shiftCount(c, c.PlusOne().Log2()))
		diff := o.insertAfter(bb, shift, ir.SUB, shift, x)
		ir.ReplaceAllUses(instr, diff)
		o.logRewrite("mul to shift and sub", instr)
		return true
	}
	return false
}

// reduceSDiv rewrites a signed division by constant c of dividend x. A
// power-of-two divisor becomes a LOGICAL right shift, which matches signed
// division only for non-negative dividends. Known soundness gap, kept as
// is.
func (o *LocalOpt) reduceSDiv(bb *ir.BasicBlock, instr *ir.Binary, c *ir.Constant, x ir.IValue) bool {
	if c.IsOne() {
		ir.ReplaceAllUses(instr, x)
		o.logRewrite("sdiv by one", instr)
		return true
	}
	if c.IsPowerOfTwo() {
		shift := o.insertAfter(bb, instr, ir.LSHR, x, shiftCount(c, c.Log2()))
		ir.ReplaceAllUses(instr, shift)
		o.logRewrite("sdiv to shift", instr)
		return true
	}
	return false
}

// cancelInverse collapses (x + c) - c and (x - c) + c chains. For each
// add/sub with a constant operand it inspects the immediate users only; a
// user with the opposite opcode and a bit-identical constant has all its
// uses redirected to x. The use edge is trusted: the user's non-constant
// operand is not revalidated against the producer.
func (o *LocalOpt) cancelInverse(bb *ir.BasicBlock) bool {
	changed := false
	for iter := ir.NewInstrIterFromBlock(bb); iter.IsValid(); iter.Next() {
		instr, ok := iter.Cur.(*ir.Binary)
		if !ok || (instr.Op != ir.ADD && instr.Op != ir.SUB) {
			continue
		}
		c, x, ok := constOperand(instr)
		if !ok {
			continue
		}
		opposite := ir.SUB
		if instr.Op == ir.SUB {
			opposite = ir.ADD
		}
		for _, u := range ir.UserList(instr) {
			user, ok := u.(*ir.Binary)
			if !ok || user.Op != opposite {
				continue
			}
			uc, _, ok := constOperand(user)
			if !ok {
				continue
			}
			if c.Equal(uc) {
				ir.ReplaceAllUses(user, x)
				o.logRewrite("cancelled inverse pair", user)
				changed = true
			}
		}
	}
	return changed
}

// removeDeadCode erases every binary arithmetic instruction with zero
// users, in one sweep. Loads, stores, calls and terminators are kept
// regardless of use count: this is a syntactic check, not a side-effect
// analysis.
func (o *LocalOpt) removeDeadCode(bb *ir.BasicBlock) bool {
	changed := false
	iter := ir.NewInstrIterFromBlock(bb)
	for iter.IsValid() {
		instr, ok := iter.Cur.(*ir.Binary)
		if ok && len(instr.GetUsers()) == 0 {
			o.logRewrite("erased dead instruction", instr)
			iter.Erase()
			changed = true
			continue
		}
		iter.Next()
	}
	return changed
}

// insertAfter creates a named binary instruction and links it after pos.
func (o *LocalOpt) insertAfter(bb *ir.BasicBlock, pos ir.IInstr, op ir.BinaryOp, left, right ir.IValue) *ir.Binary {
	instr := ir.NewBinary(op, left, right)
	instr.Name = bb.Func.NextTemp()
	bb.InsertAfter(pos, instr)
	return instr
}

// shiftCount builds the shift amount constant with the same type as c.
func shiftCount(c *ir.Constant, k uint) *ir.Constant {
	return ir.NewConstantUint64(c.IntType(), uint64(k))
}

func (o *LocalOpt) logRewrite(msg string, instr *ir.Binary) {
	o.logger.Debug(msg,
		zap.String("block", instr.GetBasicBlock().Name),
		zap.String("instr", ir.InstrStr(instr)),
	)
}
