package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"golang.org/x/sync/errgroup"

	"megado/emu"
	"megado/emu/log"
	"megado/rom"
)

var version = "devel"

func main() {
	cli := parseArgs(os.Args[1:])

	if cli.Log != 0 {
		log.EnableDebugModules(log.ModuleMask(cli.Log))
	}

	switch cli.mode {
	case versionMode:
		fmt.Println("megado version", version)

	case romInfosMode:
		r, err := rom.Open(cli.RomInfos.RomPath)
		checkf(err, "failed to open rom")
		if cli.RomInfos.JSON {
			os.Stdout.Write(r.InfosJSON())
			fmt.Println()
		} else {
			r.PrintInfos(os.Stdout)
		}

	case runMode:
		runROM(cli)
	}
}

func runROM(cli CLI) {
	r, err := rom.Open(cli.Run.RomPath)
	checkf(err, "failed to open rom")

	cfg := emu.LoadConfigOrDefault()
	if cli.Run.Speed != 0 {
		cfg.General.GameSpeed = cli.Run.Speed
	}

	md, err := emu.PowerUp(r)
	checkf(err, "error during power up")
	md.SetGameSpeed(cfg.General.GameSpeed)
	md.SetRenderingDisabled(cfg.Video.DisableRendering)

	if cli.Run.Trace != nil {
		md.SetTraceOutput(cli.Run.Trace.w)
		defer cli.Run.Trace.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		md.ResetInterruptTime()
		return md.Run(ctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "halted:\n\t%s\n%s\n", err, md.Regs.Dump())
		os.Exit(1)
	}
}

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}

	fmt.Fprintf(os.Stderr, "fatal error:")
	fmt.Fprintf(os.Stderr, "\n\t%s: %s\n", fmt.Sprintf(format, args...), err)
	os.Exit(1)
}
