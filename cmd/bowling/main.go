package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zeusync/bowling/internal/config"
	"github.com/zeusync/bowling/internal/injector"
)

var errDeadline = errors.New("run exceeded wall clock limit")

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	scriptPath := flag.String("script", "", "path to a YAML input script, overrides the config")
	replayPath := flag.String("replay", "", "write the run summary to this file")
	realtime := flag.Bool("realtime", false, "pace frames with the wall clock")
	limit := flag.Duration("timeout", 0, "abort the run after this wall clock duration (0 disables)")
	flag.Parse()

	if err := run(*configPath, *scriptPath, *replayPath, *realtime, *limit); err != nil {
		fmt.Fprintln(os.Stderr, "bowling:", err)
		os.Exit(1)
	}
}

func run(configPath, scriptPath, replayPath string, realtime bool, limit time.Duration) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if scriptPath != "" {
		cfg.Input.Script = scriptPath
	}
	if replayPath != "" {
		cfg.Replay.Output = replayPath
	}
	cfg.Loop.Realtime = cfg.Loop.Realtime || realtime

	app, err := injector.InitializeApp(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	done := make(chan struct{})
	g.Go(func() error {
		defer close(done)
		return app.Run(ctx)
	})
	g.Go(func() error {
		return watchdog(ctx, done, limit)
	})

	if err = g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// watchdog fails with errDeadline once limit elapses, which cancels the group
// context and stops the loop. It returns nil when the run finishes or ctx ends first.
func watchdog(ctx context.Context, done <-chan struct{}, limit time.Duration) error {
	var expired <-chan time.Time
	if limit > 0 {
		timer := time.NewTimer(limit)
		defer timer.Stop()
		expired = timer.C
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return nil
	case <-expired:
		return fmt.Errorf("%w (%s)", errDeadline, limit)
	}
}
