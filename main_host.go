//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"tftlcd/app"
	"tftlcd/hal"

	"tinygo.org/x/drivers"
)

func main() {
	var cfg hal.HeadlessConfig
	var appCfg app.Config
	var rotation uint
	var debug bool
	flag.BoolVar(&cfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&cfg.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&cfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.UintVar(&rotation, "rotation", 0, "Start rotation, 0-3 quarter turns.")
	flag.StringVar(&appCfg.Image, "image", "", "LCD or BMP image for the image pane.")
	flag.BoolVar(&debug, "debug", false, "Log engine debug records.")
	flag.Parse()

	appCfg.Rotation = drivers.Rotation(rotation & 3)
	if debug {
		appCfg.LogLevel = slog.LevelDebug
	}

	newApp := func(h hal.HAL) func() error {
		return app.NewWithConfig(h, appCfg)
	}

	if cfg.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, newApp, cfg); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(newApp); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
