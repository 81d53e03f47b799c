package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/wzh99/localopt/ir"
	"github.com/wzh99/localopt/opt"
)

// Builds a small sample function, runs the local optimizer over it once and
// prints the listing before and after. An optional argument names a TOML
// file gating the rewrite stages.
func main() {
	cfg := opt.DefaultConfig()
	if len(os.Args) > 1 {
		var err error
		cfg, err = opt.LoadConfig(os.Args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	prg := sampleProgram()
	printer := ir.NewPrinter(os.Stdout)
	fmt.Println("=== before ===")
	printer.PrintProgram(prg)

	o := opt.New(opt.WithLogger(logger), opt.WithConfig(cfg))
	changed := o.Optimize(prg)

	fmt.Printf("\n=== after (changed: %v) ===\n", changed)
	printer.PrintProgram(prg)
}

func samplePrgFunc(name string, build func(b *ir.Builder, fn *ir.Func)) *ir.Func {
	fn := ir.NewFunc(name)
	b := ir.NewBuilder(fn)
	b.NewBlock("entry")
	build(b, fn)
	return fn
}

func sampleProgram() *ir.Program {
	i32 := ir.NewIntType(32)

	prg := ir.NewProgram("sample")
	prg.AddFunc(samplePrgFunc("scale", func(b *ir.Builder, fn *ir.Func) {
		p := fn.NewParam("p", ir.NewPtrType())
		a := b.Load(i32, p)
		mul := b.Binary(ir.MUL, a, ir.NewConstantUint64(i32, 4))
		sum := b.Binary(ir.ADD, mul, ir.NewConstantUint64(i32, 0))
		b.Ret(sum)
	}))
	prg.AddFunc(samplePrgFunc("roundtrip", func(b *ir.Builder, fn *ir.Func) {
		x := fn.NewParam("x", i32)
		t := b.Binary(ir.ADD, x, ir.NewConstantUint64(i32, 8))
		r := b.Binary(ir.SUB, t, ir.NewConstantUint64(i32, 8))
		div := b.Binary(ir.SDIV, r, ir.NewConstantUint64(i32, 16))
		b.Ret(div)
	}))
	return prg
}
