package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fjacquet/emi-tracker/cmd/parse"
	"fjacquet/emi-tracker/cmd/plans"
	"fjacquet/emi-tracker/cmd/root"
	"fjacquet/emi-tracker/cmd/run"
	"fjacquet/emi-tracker/internal/config"
)

func init() {
	// Load .env before flags and config are read so EMI_* values apply.
	config.LoadEnv(root.Log)

	root.Init()

	root.Cmd.AddCommand(parse.Cmd)
	root.Cmd.AddCommand(plans.Cmd)
	root.Cmd.AddCommand(run.Cmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.Cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
