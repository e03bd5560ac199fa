// Copyright 2025 The serde-luaq Authors
// SPDX-License-Identifier: MIT

// Package luaq2json provides a Cobra command that converts a Lua data file
// to JSON, per SPEC_FULL.md §6's CLI surface.
package luaq2json

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/go-json-experiment/json/jsontext"
	"github.com/spf13/cobra"

	"github.com/micolous/serde-luaq"
	"github.com/micolous/serde-luaq/luajson"
)

type format string

const (
	formatValue  format = "value"
	formatReturn format = "return"
	formatScript format = "script"
)

type options struct {
	inputFilename  string
	outputFilename string
	pretty         bool
	sizeLimit      int64
	depthLimit     int
	format         string
	lossyString    bool
}

// New returns a new luaq2json command.
//
// Grounded on internal/luac.New()'s Cobra command construction (flag
// shape, SilenceErrors/SilenceUsage) and cmd/zb-luac/zb_luac.go's thin
// main wrapper, adapted from a bytecode compiler's flag set to this
// spec's converter flags (SPEC_FULL.md §6: input path, --pretty, --output,
// size limit, depth limit, a format selector, and a lossy-string option).
func New() *cobra.Command {
	c := &cobra.Command{
		Use:                   "luaq2json FILE",
		Short:                 "Convert a Lua data file to JSON",
		Args:                  cobra.ExactArgs(1),
		DisableFlagsInUseLine: true,
		SilenceErrors:         true,
		SilenceUsage:          true,
	}
	opts := new(options)
	c.Flags().BoolVar(&opts.pretty, "pretty", false, "pretty-print the JSON output")
	c.Flags().StringVarP(&opts.outputFilename, "output", "o", "", "write output to `filename` instead of stdout")
	c.Flags().Int64Var(&opts.sizeLimit, "size-limit", 64<<20, "reject input larger than `bytes`")
	c.Flags().IntVar(&opts.depthLimit, "depth-limit", 200, "maximum table nesting `depth`")
	c.Flags().StringVar(&opts.format, "format", string(formatValue), "input grammar: value, return, or script")
	c.Flags().BoolVar(&opts.lossyString, "lossy-string", false, "replace invalid UTF-8 in strings instead of failing")
	c.RunE = func(cmd *cobra.Command, args []string) error {
		opts.inputFilename = args[0]
		return run(opts)
	}
	return c
}

func run(opts *options) error {
	info, err := os.Stat(opts.inputFilename)
	if err != nil {
		return err
	}
	if info.Size() > opts.sizeLimit {
		return fmt.Errorf("input exceeds size limit of %d bytes", opts.sizeLimit)
	}
	input, err := os.ReadFile(opts.inputFilename)
	if err != nil {
		return err
	}

	value, err := parseInput(opts.inputFilename, input, opts)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	var buf bytes.Buffer
	var enc *jsontext.Encoder
	if opts.pretty {
		enc = jsontext.NewEncoder(&buf, jsontext.WithIndent("  "))
	} else {
		enc = jsontext.NewEncoder(&buf)
	}
	if err := luajson.WriteJSON(enc, value, luajson.Options{LossyString: opts.lossyString}); err != nil {
		return fmt.Errorf("convert to JSON: %w", err)
	}

	out := io.Writer(os.Stdout)
	if opts.outputFilename != "" {
		f, err := os.Create(opts.outputFilename)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	if _, err := out.Write(buf.Bytes()); err != nil {
		return err
	}
	if opts.outputFilename == "" {
		fmt.Fprintln(out)
	}
	return nil
}

func parseInput(name string, input []byte, opts *options) (luaq.Value, error) {
	switch format(opts.format) {
	case formatValue, "":
		return luaq.ParseValue(name, input, opts.depthLimit)
	case formatReturn:
		return luaq.ParseReturn(name, input, opts.depthLimit)
	case formatScript:
		assignments, err := luaq.ParseScript(name, input, opts.depthLimit)
		if err != nil {
			return luaq.Value{}, err
		}
		entries := make([]luaq.TableEntry, len(assignments))
		for i, a := range assignments {
			entries[i] = luaq.NewFieldEntry([]byte(a.Name), a.Value)
		}
		return luaq.TableValue(entries), nil
	default:
		return luaq.Value{}, fmt.Errorf("unrecognized --format %q (want value, return, or script)", opts.format)
	}
}
