package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/btcsuite/btclog/v2"
	"github.com/jessevdk/go-flags"
	"github.com/paraglidehq/rsaddr"
)

type globalOptions struct {
	Prefix     string `long:"prefix" env:"ADDRESS_PREFIX" description:"Prefix written in front of encoded addresses" default:"BURST-"`
	DebugLevel string `long:"debuglevel" short:"d" description:"Logging level for all subsystems" choice:"trace" choice:"debug" choice:"info" choice:"warn" choice:"error" choice:"critical" choice:"off" default:"info"`
}

type subCommand interface {
	Register(parser *flags.Parser) error
}

// app is shared by all subcommands. Global options are parsed before a
// subcommand's Execute runs.
type app struct {
	opts globalOptions
	out  io.Writer
	log  btclog.Logger
}

func (a *app) setup() {
	level, _ := btclog.LevelFromString(a.opts.DebugLevel)
	a.log.SetLevel(level)
	rsaddr.SetPrefix(a.opts.Prefix)
	a.log.Debugf("Using address prefix %q", a.opts.Prefix)
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	a := &app{
		out: stdout,
		log: btclog.NewSLogger(btclog.NewDefaultHandler(stderr)),
	}

	parser := flags.NewParser(&a.opts, flags.HelpFlag|flags.PassDoubleDash)
	commands := []subCommand{
		newEncodeCommand(a),
		newDecodeCommand(a),
		newCheckCommand(a),
	}
	for _, command := range commands {
		if err := command.Register(parser); err != nil {
			a.log.Errorf("Unable to register command: %v", err)
			return err
		}
	}

	_, err := parser.ParseArgs(args)
	var flagErr *flags.Error
	switch {
	case err == nil:
		return nil

	case errors.As(err, &flagErr) && flagErr.Type == flags.ErrHelp:
		fmt.Fprintln(stdout, flagErr.Message)
		return nil

	default:
		fmt.Fprintln(stderr, err)
		return err
	}
}
