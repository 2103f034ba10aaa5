// Command reactor-bench measures propagation latency across a handful of
// graph shapes: a flat fan-out, a deep chain, and a diamond. It reports
// percentiles rather than a single average, since a scheduler's worst
// case on a big wave matters more than its mean.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"

	"github.com/netreact/reactor"
)

const iterationsKey = "iterations"

func main() {
	cmd := &cli.Command{
		Name:  "reactor-bench",
		Usage: "measure reactor propagation latency across graph shapes",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  iterationsKey,
				Usage: "number of Set calls timed per shape",
				Value: 5000,
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	iters := int(cmd.Uint(iterationsKey))

	tbl := table.NewWriter()
	tbl.SetTitle("reactor propagation latency")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"shape", "avg", "min", "p75", "p99", "max"})

	for _, shape := range []struct {
		name string
		run  func(iters int) *tachymeter.Tachymeter
	}{
		{"fan-out x50", benchmarkFanOut},
		{"chain x50", benchmarkChain},
		{"diamond x25", benchmarkDiamond},
	} {
		tach := shape.run(iters)
		calc := tach.Calc()
		tbl.AppendRow(table.Row{
			shape.name,
			calc.Time.Avg,
			calc.Time.Min,
			calc.Time.P75,
			calc.Time.P99,
			calc.Time.Max,
		})
	}

	tbl.Render()
	return nil
}

// benchmarkFanOut times Set on a var observed directly by width computed
// signals, none of which depend on each other.
func benchmarkFanOut(iters int) *tachymeter.Tachymeter {
	const width = 50

	rc := reactor.NewContext()
	src := reactor.NewVar(rc, 0)
	for i := 0; i < width; i++ {
		reactor.Compute1(rc, src, func(v int) int { return v + 1 })
	}

	tach := tachymeter.New(&tachymeter.Config{Size: iters})
	for i := 0; i < iters; i++ {
		start := time.Now()
		src.Set(i)
		tach.AddTime(time.Since(start))
	}
	return tach
}

// benchmarkChain times Set on the head of a depth-50 computed chain.
func benchmarkChain(iters int) *tachymeter.Tachymeter {
	const depth = 50

	rc := reactor.NewContext()
	src := reactor.NewVar(rc, 0)

	last := src.Signal
	for i := 0; i < depth; i++ {
		last = reactor.Compute1(rc, last, func(v int) int { return v + 1 })
	}

	tach := tachymeter.New(&tachymeter.Config{Size: iters})
	for i := 0; i < iters; i++ {
		start := time.Now()
		src.Set(i)
		tach.AddTime(time.Since(start))
	}
	return tach
}

// benchmarkDiamond times Set against 25 parallel two-hop diamonds that
// all fan out from one shared var and each converge on their own sum
// node, exercising the scheduler's once-per-wave collapse at the
// convergence point.
func benchmarkDiamond(iters int) *tachymeter.Tachymeter {
	const width = 25

	rc := reactor.NewContext()
	src := reactor.NewVar(rc, 0)

	for i := 0; i < width; i++ {
		left := reactor.Compute1(rc, src, func(v int) int { return v * 2 })
		right := reactor.Compute1(rc, src, func(v int) int { return v * 3 })
		reactor.Compute2(rc, left, right, func(a, b int) int { return a + b })
	}

	tach := tachymeter.New(&tachymeter.Config{Size: iters})
	for i := 0; i < iters; i++ {
		start := time.Now()
		src.Set(i)
		tach.AddTime(time.Since(start))
	}
	return tach
}
