package main

import (
	"context"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/delaneyj/nitro/nitro"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

const (
	maxWidthKey  = "max-width"
	maxHeightKey = "max-height"
	itersKey     = "iters"
	profileKey   = "profile"
	verboseKey   = "verbose"
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "Measure propagation through nitro signals and stores",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  maxWidthKey,
				Usage: "Largest number of parallel chains, stepping by powers of ten",
				Value: 1_000,
			},
			&cli.IntFlag{
				Name:  maxHeightKey,
				Usage: "Largest chain length, stepping by powers of ten",
				Value: 1_000,
			},
			&cli.IntFlag{
				Name:  itersKey,
				Usage: "Emissions measured per configuration",
				Value: 100,
			},
			&cli.StringFlag{
				Name:  profileKey,
				Usage: "Write a CPU profile to this file",
				Value: "default.pgo",
			},
			&cli.BoolFlag{
				Name:  verboseKey,
				Usage: "Log progress",
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	logger := zap.NewNop()
	if cmd.Bool(verboseKey) {
		var err error
		if logger, err = zap.NewDevelopment(); err != nil {
			return err
		}
		defer logger.Sync()
	}

	if path := cmd.String(profileKey); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("starting profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	cfg := benchConfig{
		widths:  powersOfTen(int(cmd.Int(maxWidthKey))),
		heights: powersOfTen(int(cmd.Int(maxHeightKey))),
		iters:   int(cmd.Int(itersKey)),
	}
	if cfg.iters < 1 {
		return fmt.Errorf("%s must be positive", itersKey)
	}

	logger.Info("warming up")
	benchmarkStores(logger, cfg, false)

	benchmarkStores(logger, cfg, true)
	benchmarkSignals(logger, cfg, true)
	return nil
}

type benchConfig struct {
	widths, heights []int
	iters           int
}

func powersOfTen(limit int) []int {
	var out []int
	for v := 1; v <= limit; v *= 10 {
		out = append(out, v)
	}
	return out
}

func addOne(v int) int {
	return v + 1
}

func newTable(title string) table.Writer {
	tbl := table.NewWriter()
	tbl.SetTitle(title)
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})
	return tbl
}

func appendCalc(tbl table.Writer, name string, tach *tachymeter.Tachymeter) {
	calc := tach.Calc()
	tbl.AppendRows([]table.Row{
		{
			name,
			calc.Time.Avg,
			calc.Time.Min,
			calc.Time.P75,
			calc.Time.P99,
			calc.Time.Max,
		},
	})
}

// benchmarkStores builds w chains of h mapped stores on one source store and
// measures a source update reaching every chain end.
func benchmarkStores(logger *zap.Logger, cfg benchConfig, shouldRender bool) {
	tbl := newTable("Store chains")

	for _, w := range cfg.widths {
		for _, h := range cfg.heights {
			logger.Debug("store chains", zap.Int("width", w), zap.Int("height", h))
			tach := tachymeter.New(&tachymeter.Config{Size: cfg.iters})

			sys := nitro.NewSystem(nitro.WithLogger(logger))
			inc := nitro.NewSignal[int](sys)
			src := nitro.NewStore(sys, 1)
			if err := nitro.On(src, inc, func(state, by int) int {
				return state + by
			}); err != nil {
				logger.Fatal("wiring source", zap.Error(err))
			}

			reached := 0
			for i := 0; i < w; i++ {
				last := src
				for j := 0; j < h; j++ {
					next, err := nitro.MapStore(last, addOne)
					if err != nil {
						logger.Fatal("wiring chain", zap.Error(err))
					}
					last = next
				}
				last.Watch(func(int, any) {
					reached++
				})
			}

			for i := 0; i < cfg.iters; i++ {
				start := time.Now()
				inc.Emit(1)
				tach.AddTime(time.Since(start))
			}
			if reached != w*cfg.iters {
				logger.Fatal("lost updates", zap.Int("reached", reached), zap.Int("expected", w*cfg.iters))
			}

			appendCalc(tbl, fmt.Sprintf("propagate: %d * %d", w, h), tach)
		}
	}

	if shouldRender {
		tbl.Render()
	}
}

// benchmarkSignals does the same with mapped signals, which never deduplicate.
func benchmarkSignals(logger *zap.Logger, cfg benchConfig, shouldRender bool) {
	tbl := newTable("Signal chains")

	for _, w := range cfg.widths {
		for _, h := range cfg.heights {
			logger.Debug("signal chains", zap.Int("width", w), zap.Int("height", h))
			tach := tachymeter.New(&tachymeter.Config{Size: cfg.iters})

			sys := nitro.NewSystem(nitro.WithLogger(logger))
			src := nitro.NewSignal[int](sys)
			for i := 0; i < w; i++ {
				last := src
				for j := 0; j < h; j++ {
					next, err := nitro.MapSignal(last, addOne)
					if err != nil {
						logger.Fatal("wiring chain", zap.Error(err))
					}
					last = next
				}
				last.Watch(func(int) {})
			}

			for i := 0; i < cfg.iters; i++ {
				start := time.Now()
				src.Emit(i)
				tach.AddTime(time.Since(start))
			}

			appendCalc(tbl, fmt.Sprintf("propagate: %d * %d", w, h), tach)
		}
	}

	if shouldRender {
		tbl.Render()
	}
}
