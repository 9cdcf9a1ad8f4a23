package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/qnkhuat/dragchess/pkg"
	"github.com/qnkhuat/dragchess/pkg/gui"
	"golang.org/x/term"
)

var ErrNoTerminal = errors.New("non-interactive terminals are not supported")

func fatal(err error) {
	color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "chessterm: %s\n", err)
	os.Exit(1)
}

func main() {
	fv := pkg.BindFlags(flag.CommandLine, "./chessterm.log")
	flag.Parse()

	if err := run(fv); err != nil {
		fatal(err)
	}
}

func run(fv *pkg.FlagValues) error {
	cfg, err := pkg.LoadConfig(fv.ConfigPath)
	if err != nil {
		return err
	}
	fv.Apply(&cfg)
	if fv.DumpConfig {
		return cfg.Dump(os.Stdout)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNoTerminal
	}

	logger, logFile, err := pkg.InitLog(fv.LogPath, "chessterm")
	if err != nil {
		return err
	}
	defer logFile.Close()

	opts, err := cfg.Resolve()
	if err != nil {
		return err
	}

	t, err := gui.NewTerminal(opts.Theme, logger)
	if err != nil {
		return err
	}
	defer t.Close()

	w, h, err := t.Size()
	if err != nil {
		return err
	}

	eng := pkg.NewUCIEngine(cfg.EnginePath, logger)
	opts.Layout = pkg.NewCellLayout(w, h, gui.SquareCols, gui.SquareRows)
	opts.Engine = eng
	opts.Log = logger
	c := pkg.NewController(opts)
	defer c.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info().Int("w", w).Int("h", h).Str("mode", opts.Mode.String()).Msg("new client")
	if err := c.Run(ctx, t); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("frame loop: %w", err)
	}
	return nil
}
