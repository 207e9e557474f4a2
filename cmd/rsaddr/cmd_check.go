package main

import (
	"fmt"

	"github.com/jessevdk/go-flags"
	"github.com/paraglidehq/rsaddr"
	"github.com/paraglidehq/rsaddr/reedsolomon"
)

type checkCommand struct {
	app *app
}

func newCheckCommand(a *app) *checkCommand {
	return &checkCommand{app: a}
}

func (x *checkCommand) Register(parser *flags.Parser) error {
	_, err := parser.AddCommand(
		"check",
		"Validate Reed-Solomon addresses",
		"Check every address given as an argument and report each "+
			"as OK or INVALID with the reason; exits non-zero if "+
			"any address is invalid",
		x,
	)
	return err
}

func (x *checkCommand) Execute(args []string) error {
	x.app.setup()

	if len(args) == 0 {
		return fmt.Errorf("at least one address is required")
	}

	var invalid int
	for _, arg := range args {
		// DecodeDecimal accepts the full 65-bit range, so only
		// transcription errors are reported here.
		id, err := reedsolomon.DecodeDecimal(arg, rsaddr.DefaultPrefix)
		if err != nil {
			invalid++
			fmt.Fprintf(x.app.out, "INVALID %s: %v\n", arg, err)
			continue
		}
		fmt.Fprintf(x.app.out, "OK %s %s\n", arg, id)
	}

	if invalid > 0 {
		x.app.log.Warnf("%d of %d addresses invalid", invalid, len(args))
		return fmt.Errorf("%d invalid address(es)", invalid)
	}
	return nil
}
