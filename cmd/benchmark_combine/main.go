package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/delaneyj/nitro/nitro"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

const (
	repeatsKey = "repeats"
	onlyKey    = "only"
)

type benchmarkTestConfig struct {
	name        string // friendly name for the test, should be unique
	width       int    // stores per layer
	totalLayers int    // depth of the combined graph
	nSources    int    // parents of every combined store
	iterations  int64  // source updates per run
}

// Every path from a source to the last layer recomputes, so the work per
// update grows as nSources^(totalLayers-1).
var perfTestCfgs = []benchmarkTestConfig{
	{name: "simple component", width: 10, totalLayers: 5, nSources: 2, iterations: 60_000},
	{name: "wide dense", width: 1000, totalLayers: 3, nSources: 10, iterations: 3_000},
	{name: "deep", width: 5, totalLayers: 500, nSources: 1, iterations: 5_000},
	{name: "large app", width: 1000, totalLayers: 6, nSources: 2, iterations: 7_000},
}

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	cmd := &cli.Command{
		Name:  "benchmark_combine",
		Usage: "Measure fan-in recomputation through CombineStores",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  repeatsKey,
				Usage: "Runs per config, the best one is reported",
				Value: 5,
			},
			&cli.StringFlag{
				Name:  onlyKey,
				Usage: "Run only configs whose name contains this",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return run(logger, cmd)
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logger.Fatal("benchmark failed", zap.Error(err))
	}
}

type results struct {
	sum      int
	count    int64
	duration time.Duration
}

func run(logger *zap.Logger, cmd *cli.Command) error {
	testRepeats := int(cmd.Int(repeatsKey))
	if testRepeats < 1 {
		return fmt.Errorf("%s must be positive", repeatsKey)
	}
	only := cmd.String(onlyKey)

	logger.Info("starting combine benchmark, please wait")
	defer logger.Info("finished combine benchmark")

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{
		"size", "nSources", "nTimes", "test", "time", "recomputes", "updateRate", "title",
	})

	for _, cfg := range perfTestCfgs {
		if only != "" && !strings.Contains(cfg.name, only) {
			continue
		}
		logger.Info("running config", zap.String("name", cfg.name))

		best := &results{duration: time.Hour}
		for i := 0; i < testRepeats; i++ {
			r, err := runOnce(cfg)
			if err != nil {
				return fmt.Errorf("config %q: %w", cfg.name, err)
			}
			logger.Debug("run finished",
				zap.String("name", cfg.name),
				zap.Int("iteration", i+1),
				zap.Duration("duration", r.duration),
			)
			if r.duration < best.duration {
				best = r
			}
		}

		updateRate := float64(best.count) / (float64(best.duration) / float64(time.Millisecond))
		table.Append([]string{
			fmt.Sprintf("%dx%d", cfg.width, cfg.totalLayers),
			fmt.Sprint(cfg.nSources),
			humanize.Comma(cfg.iterations),
			cfg.name,
			fmt.Sprint(best.duration),
			humanize.Comma(best.count),
			humanize.Comma(int64(updateRate)),
			fmt.Sprintf("%dx%d %d sources", cfg.width, cfg.totalLayers, cfg.nSources),
		})
	}
	table.Render()
	return nil
}

// runOnce builds a layered graph where every store combines nSources stores
// of the previous layer, then bumps the first layer round robin.
func runOnce(cfg benchmarkTestConfig) (*results, error) {
	sys := nitro.NewSystem()
	r := &results{}

	bump := nitro.NewSignal[int](sys)
	sources := make([]*nitro.Store[int], cfg.width)
	for i := range sources {
		idx := i
		sources[i] = nitro.NewStore(sys, i)
		filtered, err := bump.Filter(func(v int) bool { return v%cfg.width == idx })
		if err != nil {
			return nil, err
		}
		if err := nitro.On(sources[i], filtered, func(state, _ int) int {
			return state + 1
		}); err != nil {
			return nil, err
		}
	}

	sum := func(states []any) int {
		r.count++
		total := 0
		for _, s := range states {
			total += s.(int)
		}
		return total
	}

	layer := sources
	for l := 1; l < cfg.totalLayers; l++ {
		next := make([]*nitro.Store[int], cfg.width)
		for i := range next {
			parents := make([]nitro.Unit, cfg.nSources)
			for j := range parents {
				parents[j] = layer[(i+j)%cfg.width]
			}
			store, err := nitro.CombineStores(sys, sum, parents...)
			if err != nil {
				return nil, err
			}
			next[i] = store
		}
		layer = next
	}

	start := time.Now()
	for i := int64(0); i < cfg.iterations; i++ {
		bump.Emit(int(i))
	}
	r.duration = time.Since(start)

	for _, s := range layer {
		r.sum += s.Value()
	}
	return r, nil
}
