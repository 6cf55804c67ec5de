package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sbca/indy-go/pkg/indy"
	"github.com/sbca/indy-go/pkg/indy/commands"
)

func newCallCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "call <command> [arg...]",
		Short: "Dispatch a catalogue command and print its result as JSON",
		Long: `Dispatch a catalogue command and print its result as JSON.

Each argument is read as JSON where it parses and as a plain string
otherwise. String parameters keep their text unless it is a quoted JSON
string, JSON parameters are passed through unchanged, buffer parameters
take base64 strings and null passes an optional parameter as absent.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			desc, ok := commands.Lookup(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", commands.ErrUnknownCommand, args[0])
			}
			values, err := parseArgs(desc.Params, args[1:])
			if err != nil {
				return err
			}

			lib, err := a.library(cmd)
			if err != nil {
				return err
			}
			command, err := lib.Declare(desc)
			if err != nil {
				return err
			}
			result, err := command.Call(cmd.Context(), values...)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
}

func parseArgs(params []indy.Param, args []string) ([]any, error) {
	if len(args) > len(params) {
		return nil, fmt.Errorf("%w: %d arguments for %d parameters", indy.ErrArgument, len(args), len(params))
	}
	values := make([]any, len(args))
	for i, arg := range args {
		v, err := parseArg(params[i], arg)
		if err != nil {
			return nil, fmt.Errorf("argument %s: %w", params[i].Name, err)
		}
		values[i] = v
	}
	return values, nil
}

func parseArg(p indy.Param, arg string) (any, error) {
	if arg == "null" {
		return nil, nil
	}
	switch p.Type {
	case indy.JSON:
		return json.RawMessage(arg), nil
	case indy.String:
		// Only a quoted JSON string is unquoted; true, 42 and the like stay text.
		var s string
		if err := json.Unmarshal([]byte(arg), &s); err == nil {
			return s, nil
		}
		return arg, nil
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(arg)))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil || dec.More() {
		// Not JSON: a bare string such as a DID or verkey.
		v = arg
	}

	if p.Type == indy.Buffer {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: want base64 string", indy.ErrArgument)
		}
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", indy.ErrArgument, err)
		}
		return b, nil
	}
	return v, nil
}
