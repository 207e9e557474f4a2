package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/paraglidehq/rsaddr"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Cleanup(func() { rsaddr.SetPrefix("BURST-") })

	var stdout, stderr bytes.Buffer
	err := run(args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestEncode(t *testing.T) {
	out, _, err := runCommand(t, "encode", "0", "18068221563302946825")
	require.NoError(t, err)
	require.Equal(t,
		"BURST-2222-2222-2222-22222\nBURST-MC2B-T33V-7RW5-HRTHP\n", out)
}

func TestEncodePrefix(t *testing.T) {
	out, _, err := runCommand(t, "--prefix=S-", "encode", "3027874167156716972")
	require.NoError(t, err)
	require.Equal(t, "S-CFFE-JEYZ-GJRR-4DB3N\n", out)
}

func TestEncodeSigned(t *testing.T) {
	out, _, err := runCommand(t,
		"encode", "--signed", "--", "-378522510406604791")
	require.NoError(t, err)
	require.Equal(t, "BURST-MC2B-T33V-7RW5-HRTHP\n", out)
}

func TestEncodeOutOfRange(t *testing.T) {
	out, stderr, err := runCommand(t, "encode", "36893488147419103232")
	require.Error(t, err)
	require.Empty(t, out)
	require.Contains(t, stderr, "out of range")
}

func TestEncodeNoArgs(t *testing.T) {
	_, _, err := runCommand(t, "encode")
	require.Error(t, err)
}

func TestDecode(t *testing.T) {
	out, _, err := runCommand(t,
		"decode", "BURST-2222-2222-2222-22222", "2XCP-UQPY-X8GE-ETNY6")
	require.NoError(t, err)
	require.Equal(t, "0\n14013682333507417429\n", out)
}

func TestDecodeFormats(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"decimal", "18068221563302946825"},
		{"signed", "-378522510406604791"},
		{"hex", "fabf37c843b9a809"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, _, err := runCommand(t,
				"decode", "--format="+tt.format, "MC2B-T33V-7RW5-HRTHP")
			require.NoError(t, err)
			require.Equal(t, tt.want+"\n", out)
		})
	}
}

func TestDecodeInvalid(t *testing.T) {
	_, stderr, err := runCommand(t, "decode", "BURST-MC2B-T33V-7RW5-HRTHQ")
	require.Error(t, err)
	require.Contains(t, stderr, "checksum mismatch")
}

func TestCheck(t *testing.T) {
	out, _, err := runCommand(t,
		"check", "BURST-MC2B-T33V-7RW5-HRTHP", "MC2B-T33V-7RW5-HRTH")
	require.Error(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	require.Equal(t,
		"OK BURST-MC2B-T33V-7RW5-HRTHP 18068221563302946825", lines[0])
	require.True(t, strings.HasPrefix(lines[1], "INVALID MC2B-T33V-7RW5-HRTH:"))
	require.Contains(t, lines[1], "malformed address")
}

func TestCheckCustomPrefix(t *testing.T) {
	address := "SIGNA-MC2B-T33V-7RW5-HRTHP"

	out, _, err := runCommand(t, "--prefix=SIGNA-", "decode", address)
	require.NoError(t, err)
	require.Equal(t, "18068221563302946825\n", out)

	out, _, err = runCommand(t, "--prefix=SIGNA-", "check",
		address, "BURST-2XCP-UQPY-X8GE-ETNY6")
	require.NoError(t, err)
	require.Equal(t,
		"OK "+address+" 18068221563302946825\n"+
			"OK BURST-2XCP-UQPY-X8GE-ETNY6 14013682333507417429\n", out)
}

func TestCheckSinglePrefix(t *testing.T) {
	out, _, err := runCommand(t, "check", "BURST-S-MC2B-T33V-7RW5-HRTHP")
	require.Error(t, err)
	require.Contains(t, out, "malformed address")
}

func TestHelp(t *testing.T) {
	out, _, err := runCommand(t, "--help")
	require.NoError(t, err)
	require.Contains(t, out, "encode")
	require.Contains(t, out, "decode")
}

func TestUnknownCommand(t *testing.T) {
	_, stderr, err := runCommand(t, "frobnicate")
	require.Error(t, err)
	require.NotEmpty(t, stderr)
}
