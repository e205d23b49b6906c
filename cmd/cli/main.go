package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/specialistvlad/topicprobe/internal/app"
	"github.com/specialistvlad/topicprobe/internal/cli"
	"github.com/specialistvlad/topicprobe/internal/hcl"
)

// main is the entrypoint for the topicprobe application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdout, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			stop()
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW io.Writer, args []string) (err error) {
	cfg, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// Module registration panics on programmer errors such as a type
	// registered twice; report those as a regular startup failure.
	defer recoverStartup(&err)

	probe, err := app.NewApp(outW, cfg, hcl.NewLoader())
	if err != nil {
		return err
	}
	return probe.Run(ctx)
}

func recoverStartup(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("application startup panicked: %v", r)
	}
}
