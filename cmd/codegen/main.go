package main

import (
	"context"
	"fmt"
	"go/format"
	"os"
	"time"

	"github.com/delaneyj/nitro/cmd/codegen/templates"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

const (
	minArityKey = "min"
	maxArityKey = "max"
	outputKey   = "out"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	cmd := &cli.Command{
		Name:  "generate",
		Usage: "Generate typed Combine helpers for nitro stores",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  minArityKey,
				Usage: "Smallest number of stores to generate a helper for",
				Value: 2,
			},
			&cli.IntFlag{
				Name:  maxArityKey,
				Usage: "Largest number of stores to generate a helper for",
				Value: 6,
			},
			&cli.StringFlag{
				Name:  outputKey,
				Usage: "Destination file",
				Value: "nitro/combine_gen.go",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return generate(logger, cmd)
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logger.Fatal("codegen failed", zap.Error(err))
	}
}

func generate(logger *zap.Logger, cmd *cli.Command) error {
	start := time.Now()
	logger.Info("codegen for combine helpers started")
	defer func() {
		logger.Info("codegen for combine helpers finished", zap.Duration("took", time.Since(start)))
	}()

	minArity, maxArity := int(cmd.Int(minArityKey)), int(cmd.Int(maxArityKey))
	if minArity < 1 || maxArity < minArity {
		return fmt.Errorf("invalid arity range %d..%d", minArity, maxArity)
	}

	contents := templates.CombineGen(minArity, maxArity)
	formatted, err := format.Source([]byte(contents))
	if err != nil {
		return fmt.Errorf("formatting generated code: %w", err)
	}

	out := cmd.String(outputKey)
	if err := os.WriteFile(out, formatted, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	logger.Info("wrote combine helpers", zap.String("file", out), zap.Int("min", minArity), zap.Int("max", maxArity))
	return nil
}
