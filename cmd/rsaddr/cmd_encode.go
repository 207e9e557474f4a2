package main

import (
	"fmt"

	"github.com/jessevdk/go-flags"
	"github.com/paraglidehq/rsaddr"
	"github.com/paraglidehq/rsaddr/reedsolomon"
)

type encodeCommand struct {
	Signed bool `long:"signed" description:"Read ids in the signed BIGINT form used by the node database"`

	app *app
}

func newEncodeCommand(a *app) *encodeCommand {
	return &encodeCommand{app: a}
}

func (x *encodeCommand) Register(parser *flags.Parser) error {
	_, err := parser.AddCommand(
		"encode",
		"Encode account ids as Reed-Solomon addresses",
		"Encode each decimal account id given as an argument and "+
			"print its address, prefixed with --prefix, one per "+
			"line",
		x,
	)
	return err
}

func (x *encodeCommand) Execute(args []string) error {
	x.app.setup()

	if len(args) == 0 {
		return fmt.Errorf("at least one account id is required")
	}

	for _, arg := range args {
		address, err := x.encode(arg)
		if err != nil {
			x.app.log.Errorf("Cannot encode %s: %v", arg, err)
			return fmt.Errorf("cannot encode %s: %w", arg, err)
		}
		x.app.log.Debugf("Encoded %s as %s", arg, address)
		fmt.Fprintln(x.app.out, address)
	}
	return nil
}

func (x *encodeCommand) encode(arg string) (string, error) {
	if x.Signed {
		a, err := rsaddr.ParseSignedDecimal(arg)
		if err != nil {
			return "", err
		}
		return rsaddr.DefaultPrefix + a.Address(), nil
	}

	address, err := reedsolomon.EncodeDecimal(arg)
	if err != nil {
		return "", err
	}
	return rsaddr.DefaultPrefix + address, nil
}
