package indy

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/sbca/indy-go/pkg/indy/ffi"
	"github.com/sbca/indy-go/pkg/indy/logging"
)

// Command is a declared libindy command bound to a Library. It is immutable
// and safe for concurrent use.
type Command struct {
	lib    *Library
	name   string
	symbol string

	params   []Param
	encoders []EncodeFunc
	index    map[string]int

	results  []Result
	decoders []DecodeFunc
	widths   []int
	words    int

	trampoline uintptr
}

// Declare validates d against the loaded library and returns a callable
// Command. Unsupported types, malformed descriptors and symbols the library
// does not export are reported here rather than at call time.
func (l *Library) Declare(d Descriptor) (*Command, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}
	if !l.native.Implements(d.Symbol) {
		return nil, fmt.Errorf("%w: %s", ErrNotImplemented, d.Symbol)
	}

	c := &Command{
		lib:    l,
		name:   d.name(),
		symbol: d.Symbol,
		params: append([]Param(nil), d.Params...),
		index:  make(map[string]int, len(d.Params)),
	}
	for i, p := range c.params {
		enc, width := p.Encoder, 1
		if enc == nil {
			enc, width = builtinEncoder(p.Type), paramWidth(p.Type)
		}
		if p.Optional {
			enc = optionalEncoder(enc, width)
		}
		c.encoders = append(c.encoders, enc)
		c.index[p.Name] = i
	}

	var layout []ffi.Slot
	for _, r := range d.Results {
		slots, dec := r.Slots, r.Decoder
		if dec == nil {
			slots, dec = builtinSlots(r.Type), builtinDecoder(r.Type, r.Optional)
		}
		r.Slots = append([]ffi.Slot(nil), slots...)
		c.results = append(c.results, r)
		c.decoders = append(c.decoders, dec)
		c.widths = append(c.widths, len(slots))
		c.words += len(slots)
		layout = append(layout, slots...)
	}

	cb, err := l.trampoline(layout)
	if err != nil {
		return nil, fmt.Errorf("declare %s: %w", c.name, err)
	}
	c.trampoline = cb
	return c, nil
}

// Name returns the name callers use for the command.
func (c *Command) Name() string { return c.name }

// Symbol returns the native function the command calls.
func (c *Command) Symbol() string { return c.symbol }

// Params returns a copy of the declared parameters.
func (c *Command) Params() []Param { return append([]Param(nil), c.params...) }

// Results returns a copy of the declared results.
func (c *Command) Results() []Result { return append([]Result(nil), c.results...) }

// NamedArg binds a value to a parameter by name.
type NamedArg struct {
	Name  string
	Value any
}

// Named returns an argument bound to the parameter called name.
func Named(name string, value any) NamedArg {
	return NamedArg{Name: name, Value: value}
}

// Call dispatches the command and waits for it. It returns nil for commands
// without results, the single value for one result, and a []any in declared
// order otherwise.
//
// Arguments are matched to parameters by name first (see Named); the
// remaining positional arguments fill the other parameters in order. Omitted
// optional parameters are passed as absent.
func (c *Command) Call(ctx context.Context, args ...any) (any, error) {
	vals, err := c.Invoke(ctx, args...)
	if err != nil {
		return nil, err
	}
	switch len(vals) {
	case 0:
		return nil, nil
	case 1:
		return vals[0], nil
	}
	return []any(vals), nil
}

// Invoke is Call with the results always returned as Values.
func (c *Command) Invoke(ctx context.Context, args ...any) (Values, error) {
	comp, err := c.Start(ctx, args...)
	if err != nil {
		return nil, err
	}
	return comp.Wait(ctx)
}

// Start dispatches the command without waiting. The only synchronous error is
// ErrNotInitialized; every other failure, including bad arguments, is
// delivered through the Completion.
func (c *Command) Start(ctx context.Context, args ...any) (*Completion, error) {
	l := c.lib
	if !l.initialized.Load() {
		return nil, fmt.Errorf("%w: calling %s", ErrNotInitialized, c.name)
	}

	values, err := c.bind(args)
	if err != nil {
		return resolved(c.name, err), nil
	}

	frame := ffi.NewFrame()
	words := make([]uintptr, 1, len(values)+2)
	for i, v := range values {
		enc, err := c.encoders[i](frame, v)
		if err != nil {
			frame.Release()
			return resolved(c.name, fmt.Errorf("%s: parameter %q: %w", c.name, c.params[i].Name, err)), nil
		}
		words = append(words, enc...)
	}
	words = append(words, c.trampoline)

	p := &pending{cmd: c, frame: frame, done: newCompletion(c.name), started: time.Now()}
	l.logger.Debug(ctx, ">>> calling command", append([]any{"command", c.name}, c.logArgs(values)...)...)
	l.run(ctx, p, words)
	return p.done, nil
}

func (c *Command) bind(args []any) ([]any, error) {
	named := make(map[string]any)
	var positional []any
	for _, a := range args {
		n, ok := a.(NamedArg)
		if !ok {
			positional = append(positional, a)
			continue
		}
		if _, known := c.index[n.Name]; !known {
			return nil, fmt.Errorf("%w: %s has no parameter %q", ErrArgument, c.name, n.Name)
		}
		if _, dup := named[n.Name]; dup {
			return nil, fmt.Errorf("%w: %s: parameter %q given twice", ErrArgument, c.name, n.Name)
		}
		named[n.Name] = n.Value
	}

	values := make([]any, len(c.params))
	for i, p := range c.params {
		if v, ok := named[p.Name]; ok {
			values[i] = v
			continue
		}
		if len(positional) > 0 {
			values[i], positional = positional[0], positional[1:]
			continue
		}
		if !p.Optional {
			return nil, fmt.Errorf("%w: %s: missing parameter %q", ErrArgument, c.name, p.Name)
		}
	}
	if len(positional) > 0 {
		return nil, fmt.Errorf("%w: %s: %d unexpected arguments", ErrArgument, c.name, len(positional))
	}
	return values, nil
}

// decode runs every result decoder over its slice of the callback words.
func (c *Command) decode(raw []uintptr) (Values, error) {
	if len(raw) != c.words {
		return nil, fmt.Errorf("%w: %s: got %d result words, want %d", ErrMalformedResult, c.name, len(raw), c.words)
	}
	vals := make(Values, len(c.decoders))
	off := 0
	for i, dec := range c.decoders {
		v, err := dec(raw[off : off+c.widths[i]])
		if err != nil {
			return nil, fmt.Errorf("%s: result %d: %w", c.name, i, err)
		}
		vals[i] = v
		off += c.widths[i]
	}
	return vals, nil
}

// logArgs keeps scalar arguments and redacts buffers, JSON documents and
// custom-encoded values, which may carry keys or credentials.
func (c *Command) logArgs(values []any) []any {
	out := make([]any, 0, len(values))
	for i, p := range c.params {
		switch {
		case p.Encoder != nil || p.Type == Buffer || p.Type == JSON:
			out = append(out, logging.Redacted(p.Name))
		default:
			out = append(out, slog.Any(p.Name, values[i]))
		}
	}
	return out
}

// Values holds decoded command results in declared order.
type Values []any

// String returns result i as a string.
func (v Values) String(i int) (string, bool) {
	s, ok := v.at(i).(string)
	return s, ok
}

// Int returns result i as an int.
func (v Values) Int(i int) (int, bool) {
	n, ok := v.at(i).(int)
	return n, ok
}

// Bool returns result i as a bool.
func (v Values) Bool(i int) (bool, bool) {
	b, ok := v.at(i).(bool)
	return b, ok
}

// Bytes returns result i as a byte slice.
func (v Values) Bytes(i int) ([]byte, bool) {
	b, ok := v.at(i).([]byte)
	return b, ok
}

// Decode stores the JSON result i into out.
func (v Values) Decode(i int, out any) error {
	x := v.at(i)
	if x == nil {
		return fmt.Errorf("%w: result %d is absent", ErrMalformedResult, i)
	}
	doc, err := json.Marshal(x)
	if err != nil {
		return err
	}
	return json.Unmarshal(doc, out)
}

func (v Values) at(i int) any {
	if i < 0 || i >= len(v) {
		return nil
	}
	return v[i]
}
