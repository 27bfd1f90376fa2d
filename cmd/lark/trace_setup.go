package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lark/internal/trace"
)

var activeTracer trace.Tracer = trace.Nop

// setupTracing reads the --trace/--trace-level flags and attaches a
// tracer to the command's context, so every subcommand can record
// phase-boundary events without threading a tracer through its
// signature explicitly.
func setupTracing(cmd *cobra.Command) error {
	root := cmd.Root()

	output, err := root.PersistentFlags().GetString("trace")
	if err != nil {
		return fmt.Errorf("failed to read trace flag: %w", err)
	}
	levelStr, err := root.PersistentFlags().GetString("trace-level")
	if err != nil {
		return fmt.Errorf("failed to read trace-level flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return fmt.Errorf("invalid trace level: %w", err)
	}
	if level == trace.LevelOff && output == "" {
		activeTracer = trace.Nop
		cmd.SetContext(trace.WithTracer(cmd.Context(), activeTracer))
		return nil
	}

	mode := trace.ModeRing
	if output != "" {
		mode = trace.ModeStream
	}
	tracer, err := trace.New(trace.Config{Level: level, Mode: mode, OutputPath: output})
	if err != nil {
		return fmt.Errorf("failed to create tracer: %w", err)
	}
	activeTracer = tracer
	cmd.SetContext(trace.WithTracer(cmd.Context(), activeTracer))
	return nil
}

func teardownTracing() {
	if activeTracer == nil {
		return
	}
	_ = activeTracer.Flush()
	_ = activeTracer.Close()
}
