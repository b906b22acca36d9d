//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"fmradio/app"
	"fmradio/config"
	"fmradio/console"
	"fmradio/hal"
	"fmradio/web"
)

func main() {
	var (
		hcfg       hal.HeadlessConfig
		configPath string
		board      string
		httpAddr   string
		noConsole  bool
	)
	flag.StringVar(&configPath, "config", "", "YAML configuration file (built-in defaults when empty).")
	flag.BoolVar(&hcfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&hcfg.Hz, "hz", hal.DefaultHz, "Main loop rate in headless mode.")
	flag.Uint64Var(&hcfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.StringVar(&board, "board", "sim", "sim|periph.")
	flag.StringVar(&httpAddr, "http", "", "Control page listen address, overrides the config file.")
	flag.BoolVar(&noConsole, "no-console", false, "Do not read commands from stdin.")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fatal(err)
	}
	if httpAddr != "" {
		cfg.HTTP.Addr = httpAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	newApp := func(h hal.HAL) func() error {
		s, err := app.NewSystem(h, cfg)
		if err != nil {
			h.Logger().WriteLineString("app: " + err.Error())
			return func() error { return err }
		}
		serve(ctx, h, s, cfg, !noConsole)
		return s.Step
	}

	switch strings.ToLower(board) {
	case "sim":
		if hcfg.Enabled {
			err = hal.RunHeadless(ctx, nil, newApp, hcfg)
		} else {
			err = hal.RunWindow(newApp)
		}
	case "periph":
		var h *hal.PeriphHAL
		h, err = hal.NewPeriph(hal.PeriphConfig{
			I2CBus: cfg.Board.I2CBus,
			Pins:   boardPins(cfg.Pins),
			LED:    cfg.Board.LED,
		})
		if err != nil {
			fatal(err)
		}
		defer h.Close()
		err = hal.RunHeadless(ctx, h, newApp, hcfg)
	default:
		err = fmt.Errorf("unknown board %q", board)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fatal(err)
	}
}

// serve starts the HTTP and serial control surfaces. Both stop with ctx.
func serve(ctx context.Context, h hal.HAL, s *app.System, cfg *config.Config, withConsole bool) {
	log := h.Logger()

	srv := web.New(s, log)
	go func() {
		log.WriteLineString("http: listening on " + cfg.HTTP.Addr)
		if err := srv.Start(cfg.HTTP.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WriteLineString("http: " + err.Error())
		}
	}()
	go func() {
		<-ctx.Done()
		s.Stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if !withConsole {
		return
	}
	if sp := h.Serial(); sp != nil {
		go func() {
			if err := console.Serve(ctx, sp, sp, s); err != nil && !errors.Is(err, context.Canceled) {
				log.WriteLineString("console: " + err.Error())
			}
		}()
	}
}

// boardPins lists the configured control lines.
func boardPins(p config.PinsConfig) []string {
	var names []string
	for _, n := range []string{p.Up, p.Down, p.Toggle, p.EncoderA, p.EncoderB, p.EncoderSwitch} {
		if n != "" {
			names = append(names, n)
		}
	}
	return names
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
