package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/YLivay/tcol/log"
	"github.com/gdamore/tcell/v2"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cleanupLog, err := log.SetupFromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, "tcol:", err)
	}
	defer cleanupLog()

	cfg, err := LoadConfig(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(os.Stderr, "tcol:", err)
		return 2
	}
	log.Infof("Starting: %s", cfg)

	ctx, cancelCtx := context.WithCancelCause(context.Background())
	cleanupOsSignals := setupOsSignals(ctx, cancelCtx)
	defer cleanupOsSignals()

	input, cleanupInput, err := openInput(cfg.InputPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tcol:", err)
		return 1
	}
	defer cleanupInput()

	scanner, err := newScanner(cfg, input)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tcol:", err)
		return 2
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, "tcol: failed to create terminal screen:", err)
		return 1
	}

	// Run restores the terminal before returning, so reporting here is safe.
	return exitCode(NewApplication(NewSession(cfg, scanner), screen).Run(ctx))
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrInterrupted), errors.Is(err, context.Canceled):
		fmt.Fprintln(os.Stderr, "Keyboard Interrupted")
		return 130
	default:
		log.Errorf("Exiting with error: %v", err)
		fmt.Fprintln(os.Stderr, "tcol:", err)
		return 1
	}
}

func setupOsSignals(ctx context.Context, cancelCtx context.CancelCauseFunc) (cleanup func()) {
	// Catch interrupts and make them cancel the context instead of
	// immediately exiting. This lets the screen be restored first.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)

	cleanup = func() {
		signal.Stop(signalChan)
		cancelCtx(nil)
	}

	go func() {
		select {
		case sig := <-signalChan:
			log.Infof("Received %v", sig)
			cancelCtx(ErrInterrupted)
		case <-ctx.Done():
		}
	}()

	return cleanup
}
