package commands

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/sbca/indy-go/pkg/indy"
)

// ErrUnknownCommand is returned by Set lookups for names that are not
// registered.
var ErrUnknownCommand = errors.New("commands: unknown command")

const symbolPrefix = "indy_"

// Set holds the commands declared against one library, keyed by name.
type Set map[string]*indy.Command

// Get returns the command called name.
func (s Set) Get(name string) (*indy.Command, error) {
	cmd, ok := s[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	return cmd, nil
}

// Call dispatches the command called name and waits for its result.
func (s Set) Call(ctx context.Context, name string, args ...any) (any, error) {
	cmd, err := s.Get(name)
	if err != nil {
		return nil, err
	}
	return cmd.Call(ctx, args...)
}

// Invoke dispatches the command called name and returns every result.
func (s Set) Invoke(ctx context.Context, name string, args ...any) (indy.Values, error) {
	cmd, err := s.Get(name)
	if err != nil {
		return nil, err
	}
	return cmd.Invoke(ctx, args...)
}

// Names returns the registered names in sorted order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Catalogue returns a fresh copy of every known descriptor, grouped by
// libindy module.
func Catalogue() []indy.Descriptor {
	var all []indy.Descriptor
	for _, group := range [][]indy.Descriptor{
		wallet(),
		did(),
		crypto(),
		pairwise(),
		pool(),
		nonSecrets(),
		blobStorage(),
		anoncreds(),
		payment(),
	} {
		all = append(all, group...)
	}
	return all
}

// Lookup returns the catalogue descriptor called name.
func Lookup(name string) (indy.Descriptor, bool) {
	for _, d := range Catalogue() {
		if d.Name == name {
			return d, true
		}
	}
	return indy.Descriptor{}, false
}

// Register declares every catalogue descriptor against lib. Symbols lib does
// not export are returned in missing; any other declaration failure aborts.
func Register(lib *indy.Library) (Set, []string, error) {
	set := make(Set)
	var missing []string
	for _, d := range Catalogue() {
		cmd, err := lib.Declare(d)
		switch {
		case errors.Is(err, indy.ErrNotImplemented):
			missing = append(missing, d.Symbol)
		case err != nil:
			return nil, nil, fmt.Errorf("register %s: %w", d.Name, err)
		default:
			set[cmd.Name()] = cmd
		}
	}
	return set, missing, nil
}

// command builds the descriptor for the libindy function "indy_" + name.
func command(name string, params []indy.Param, results ...indy.Result) indy.Descriptor {
	return indy.Descriptor{
		Name:    name,
		Symbol:  symbolPrefix + name,
		Params:  params,
		Results: results,
	}
}

func params(ps ...indy.Param) []indy.Param { return ps }

func str(name string) indy.Param { return indy.Param{Name: name, Type: indy.String} }
func num(name string) indy.Param { return indy.Param{Name: name, Type: indy.Int} }
func buf(name string) indy.Param { return indy.Param{Name: name, Type: indy.Buffer} }
func doc(name string) indy.Param { return indy.Param{Name: name, Type: indy.JSON} }

func custom(name string, enc indy.EncodeFunc) indy.Param {
	return indy.Param{Name: name, Type: indy.Int, Encoder: enc}
}

func optional(p indy.Param) indy.Param {
	p.Optional = true
	return p
}

var (
	walletHandle = num("wallet_handle")
	poolHandle   = num("pool_handle")
	searchHandle = num("search_handle")

	stringResult = indy.Result{Type: indy.String}
	intResult    = indy.Result{Type: indy.Int}
	boolResult   = indy.Result{Type: indy.Bool}
	bufferResult = indy.Result{Type: indy.Buffer}
	jsonResult   = indy.Result{Type: indy.JSON}
)

func maybe(r indy.Result) indy.Result {
	r.Optional = true
	return r
}
