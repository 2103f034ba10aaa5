// Command reactor-demo walks through the core pieces of the reactor
// library against a small worked graph: a var, a couple of computed
// signals, a transaction, a flatten, and a self-detaching observer. It
// exists as a runnable tour of the package, not as a test.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"

	"github.com/netreact/reactor"
)

const walkthroughKey = "walkthrough"

func main() {
	cmd := &cli.Command{
		Name:  "reactor-demo",
		Usage: "walk through the reactor library against a small graph",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  walkthroughKey,
				Usage: "which walkthrough to run: diamond, flatten, observer, all",
				Value: "all",
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	which := cmd.String(walkthroughKey)

	if which == "diamond" || which == "all" {
		diamondWalkthrough()
	}
	if which == "flatten" || which == "all" {
		flattenWalkthrough()
	}
	if which == "observer" || which == "all" {
		observerWalkthrough()
	}
	return nil
}

// diamondWalkthrough builds celsius -> {fahrenheit, kelvin} -> summary and
// shows that a transaction touching the shared source settles the
// summary exactly once.
func diamondWalkthrough() {
	fmt.Println("== diamond dependency ==")
	rc := reactor.NewContext()

	celsius := reactor.NewVar(rc, 20.0)
	fahrenheit := reactor.Compute1(rc, celsius, func(c float64) float64 { return c*9/5 + 32 })
	kelvin := reactor.Compute1(rc, celsius, func(c float64) float64 { return c + 273.15 })

	ticks := 0
	summary := reactor.Compute2(rc, fahrenheit, kelvin, func(f, k float64) string {
		ticks++
		return fmt.Sprintf("%.1f°F / %.2fK", f, k)
	})

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"celsius", "summary", "recomputes"})
	table.Append([]string{fmt.Sprintf("%.1f", celsius.Value()), summary.Value(), humanize.Comma(int64(ticks))})

	celsius.Set(100)
	table.Append([]string{fmt.Sprintf("%.1f", celsius.Value()), summary.Value(), humanize.Comma(int64(ticks))})

	rc.Transaction(func() {
		celsius.Set(0)
		celsius.Set(37)
	})
	table.Append([]string{fmt.Sprintf("%.1f", celsius.Value()), summary.Value(), humanize.Comma(int64(ticks))})

	table.Render()
	fmt.Println()
}

// flattenWalkthrough shows a signal that names another signal, and
// switches which one it names mid-run.
func flattenWalkthrough() {
	fmt.Println("== flatten ==")
	rc := reactor.NewContext()

	metric := reactor.NewVar(rc, "requests")
	alt := reactor.NewVar(rc, "errors")
	selector := reactor.NewVar(rc, metric.Signal)

	flat := reactor.Flatten(rc, selector.Signal)
	fmt.Printf("watching: %s\n", flat.Value())

	metric.Set("requests/sec")
	fmt.Printf("after metric update: %s\n", flat.Value())

	selector.Set(alt.Signal)
	alt.Set("errors/sec")
	fmt.Printf("after switching source: %s\n", flat.Value())
	fmt.Println()
}

// observerWalkthrough attaches a side effect that stops watching itself
// once a threshold is crossed.
func observerWalkthrough() {
	fmt.Println("== self-detaching observer ==")
	rc := reactor.NewContext()

	errorCount := reactor.NewVar(rc, 0)
	reactor.Observe(rc, errorCount.Signal, func(n int) reactor.ObserverAction {
		fmt.Printf("error count: %d\n", n)
		if n >= 3 {
			fmt.Println("threshold crossed, no longer watching")
			return reactor.ObserverStopAndDetach
		}
		return reactor.ObserverContinue
	})

	for i := 1; i <= 5; i++ {
		errorCount.Set(i)
	}
	fmt.Println()
}
