package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/qnkhuat/dragchess/pkg"
)

func main() {
	addr := flag.String("addr", pkg.SshPort, "address to listen on")
	binary := flag.String("binary", "chessterm", "terminal game binary to run per session")
	hostKey := flag.String("hostkey", pkg.DefaultHostKeyFile(), "SSH host key file")
	logPath := flag.String("log", "./server.log", "path to log file")
	engine := flag.String("engine", pkg.DefaultEnginePath, "UCI engine binary passed to every game")
	idle := flag.Duration("idle", pkg.ServerIdleTimeout, "disconnect idle sessions after")
	flag.Parse()

	logger, logFile, err := pkg.InitLog(*logPath, "server")
	if err != nil {
		color.Red("server: %s", err)
		os.Exit(1)
	}
	defer logFile.Close()

	s := &pkg.SSHServer{
		ListenAddress: *addr,
		Binary:        *binary,
		Args:          []string{"-engine", *engine, "-log", os.DevNull},
		HostKeyFile:   *hostKey,
		IdleTimeout:   *idle,
		Log:           logger,
	}
	if err := s.Setup(); err != nil {
		color.Red("server: %s", err)
		os.Exit(1)
	}

	sigc := make(chan os.Signal, 1)
	// Wait for terminate signal
	signal.Notify(sigc,
		syscall.SIGINT,
		syscall.SIGTERM)
	go func() {
		<-sigc
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.Shutdown(ctx)
	}()

	color.Green("Listening at %s", *addr)
	if err := s.ListenAndServe(); err != nil {
		logger.Error().Err(err).Msg("server stopped")
		color.Red("server: %s", err)
		os.Exit(1)
	}
	logger.Info().Msg("server stopped")
}
