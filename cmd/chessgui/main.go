package main

import (
	"flag"
	"os"

	"github.com/fatih/color"
	"github.com/qnkhuat/dragchess/pkg"
	"github.com/qnkhuat/dragchess/pkg/desktop"
)

func fatal(err error) {
	color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "chessgui: %s\n", err)
	os.Exit(1)
}

func main() {
	fv := pkg.BindFlags(flag.CommandLine, "./chessgui.log")
	assets := flag.String("assets", "", "directory with the piece images")
	flag.Parse()

	if err := run(fv, *assets); err != nil {
		fatal(err)
	}
}

func run(fv *pkg.FlagValues, assets string) error {
	cfg, err := pkg.LoadConfig(fv.ConfigPath)
	if err != nil {
		return err
	}
	fv.Apply(&cfg)
	if fv.DumpConfig {
		return cfg.Dump(os.Stdout)
	}
	if assets != "" {
		cfg.AssetDir = assets
	}
	if cfg.AssetDir == "" {
		cfg.AssetDir = desktop.DefaultAssetDir
	}

	logger, logFile, err := pkg.InitLog(fv.LogPath, "chessgui")
	if err != nil {
		return err
	}
	defer logFile.Close()

	opts, err := cfg.Resolve()
	if err != nil {
		return err
	}
	opts.Layout = desktop.NewLayout()
	opts.Engine = pkg.NewUCIEngine(cfg.EnginePath, logger)
	opts.Log = logger
	c := pkg.NewController(opts)
	defer c.Close()

	logger.Info().Str("mode", opts.Mode.String()).Str("assets", cfg.AssetDir).Msg("new client")
	return desktop.Run(desktop.NewGame(c, desktop.LoadSprites(cfg.AssetDir, logger)))
}
