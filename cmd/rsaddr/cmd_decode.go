package main

import (
	"fmt"
	"strconv"

	"github.com/jessevdk/go-flags"
	"github.com/paraglidehq/rsaddr"
)

type decodeCommand struct {
	Format string `long:"format" short:"f" description:"Output notation of the account id" choice:"decimal" choice:"signed" choice:"hex" choice:"base58" choice:"base64" default:"decimal"`

	app *app
}

func newDecodeCommand(a *app) *decodeCommand {
	return &decodeCommand{app: a}
}

func (x *decodeCommand) Register(parser *flags.Parser) error {
	_, err := parser.AddCommand(
		"decode",
		"Decode Reed-Solomon addresses to account ids",
		"Decode each address given as an argument, with or without "+
			"prefix and separators, and print the account id one "+
			"per line",
		x,
	)
	return err
}

func (x *decodeCommand) Execute(args []string) error {
	x.app.setup()

	if len(args) == 0 {
		return fmt.Errorf("at least one address is required")
	}

	for _, arg := range args {
		a, err := rsaddr.ParseReedSolomon(arg)
		if err != nil {
			x.app.log.Errorf("Cannot decode %s: %v", arg, err)
			return err
		}
		x.app.log.Debugf("Decoded %s as %d", arg, a.Uint64())
		fmt.Fprintln(x.app.out, x.format(a))
	}
	return nil
}

func (x *decodeCommand) format(a rsaddr.Account) string {
	switch x.Format {
	case "signed":
		return strconv.FormatInt(a.Int64(), 10)
	case "hex":
		return a.Format(rsaddr.FormatHex)
	case "base58":
		return a.Format(rsaddr.FormatBase58)
	case "base64":
		return a.Format(rsaddr.FormatBase64)
	default:
		return a.Format(rsaddr.FormatDecimal)
	}
}
