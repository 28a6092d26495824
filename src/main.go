package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"petvator/src/config"
	"petvator/src/elev"
	"petvator/src/network"
	"petvator/src/timer"
)

// Without arguments the program runs the elevator and its control server.
// With arguments they are sent as one control command to a running server,
// e.g. `petvator issue 1 3 0` or `petvator status`.
func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	envFile := flag.String("env", ".env", "Path to .env file with PETVATOR_* overrides")
	addr := flag.String("addr", "", "Control server address (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err == nil {
		cfg, err = config.ApplyEnv(cfg, *envFile)
	}
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *addr != "" {
		cfg.ListenAddr = *addr
	}

	if flag.NArg() > 0 {
		os.Exit(runClient(cfg.ListenAddr, strings.Join(flag.Args(), " ")))
	}
	if err := serve(cfg); err != nil {
		slog.Error("Elevator server failed", "err", err)
		os.Exit(1)
	}
}

func runClient(addr, line string) int {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := network.Call(ctx, addr, line)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	fmt.Print(resp.Body)
	return exitStatus(resp.Code)
}

// exitStatus keeps result codes inside the portable 0-255 exit range.
// Resource failures (negative codes) exit with 3.
func exitStatus(code int) int {
	if code < 0 || code > 255 {
		return 3
	}
	return code
}

func serve(cfg config.Config) error {
	level, _ := config.ParseLevel(cfg.LogLevel)
	closeLog, err := elev.InitLogger(level, cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	elevator := elev.New(cfg)
	server, err := network.Listen(cfg.ListenAddr, elevator, timer.NewStopwatch())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() { serveErr <- server.Serve(ctx) }()

	select {
	case <-ctx.Done():
		slog.Info("Shutdown requested")
	case err = <-serveErr:
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if shutdownErr := elevator.Shutdown(shutdownCtx); shutdownErr != nil {
		err = errors.Join(err, shutdownErr)
	}
	return err
}
