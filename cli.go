package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"megado/emu/log"
)

type mode byte

const (
	runMode      mode = iota // Run a ROM
	romInfosMode             // Show ROM infos
	versionMode              // Show megado version
)

type (
	CLI struct {
		Run      Run      `cmd:"" help:"Run ROM in emulator. (default command)" default:"true"`
		RomInfos RomInfos `cmd:"" help:"Show ROM infos." name:"rom-infos"`
		Version  Version  `cmd:"" help:"Show megado version."`

		Log logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`

		mode mode
	}

	Run struct {
		RomPath string `arg:"" name:"/path/to/rom" help:"${rompath_help}" required:"true" type:"existingfile"`

		Speed float64  `name:"speed" help:"Game speed multiplier." default:"0"`
		Trace *outfile `name:"trace" help:"Write CPU trace log." placeholder:"FILE|stdout|stderr"`
	}

	RomInfos struct {
		RomPath string `arg:"" name:"/path/to/rom" type:"existingfile"`
		JSON    bool   `name:"json" help:"Emit machine-readable JSON."`
	}

	Version struct{}
)

var vars = kong.Vars{
	"rompath_help": "Path of the Mega Drive ROM to run.",
	"log_help":     "Enable debug logging for specified modules.",
}

func parseArgs(args []string) CLI {
	var cfg CLI
	parser, err := kong.New(&cfg,
		kong.Name("megado"),
		kong.Description("Mega Drive / Genesis emulator."),
		kong.UsageOnError(),
		vars)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	checkf(err, "failed to parse command line")
	checkf(ctx.Error, "failed to parse command line")

	switch ctx.Command() {
	case "rom-infos </path/to/rom>":
		cfg.mode = romInfosMode
	case "version":
		cfg.mode = versionMode
	default:
		cfg.mode = runMode
	}
	return cfg
}

// logModMask parses a comma-separated module list into a debug mask.
type logModMask log.ModuleMask

func (m *logModMask) UnmarshalText(text []byte) error {
	for _, modname := range strings.Split(string(text), ",") {
		if modname == "all" {
			*m |= logModMask(log.ModuleMaskAll)
		} else if mod, found := log.ModuleByName(modname); found {
			*m |= logModMask(mod.Mask())
		} else {
			return fmt.Errorf("invalid module name %q", modname)
		}
	}
	return nil
}

// outfile is a flag that opens a file for writing, with stdout/stderr
// accepted as special names.
type outfile struct {
	w    io.WriteCloser
	name string
}

func (f *outfile) UnmarshalText(text []byte) error {
	f.name = string(text)
	switch f.name {
	case "stdout":
		f.w = os.Stdout
	case "stderr":
		f.w = os.Stderr
	default:
		w, err := os.Create(f.name)
		if err != nil {
			return err
		}
		f.w = w
	}
	return nil
}

func (f *outfile) Close() error {
	if f.w == nil || f.w == os.Stdout || f.w == os.Stderr {
		return nil
	}
	return f.w.Close()
}
