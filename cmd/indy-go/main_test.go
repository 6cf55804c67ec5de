package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbca/indy-go/pkg/indy"
	"github.com/sbca/indy-go/pkg/indy/commands"
	"github.com/sbca/indy-go/pkg/indy/indytest"
)

func fakeApp(fake *indytest.Library) *app {
	return &app{open: func(ctx context.Context, cfg indy.Config) (*indy.Library, error) {
		lib := indy.NewLibrary(fake, cfg)
		return lib, lib.Init(ctx)
	}}
}

func run(t *testing.T, a *app, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd(a)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, newApp(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "indy-go "+indy.WrapperVersion())
	assert.Contains(t, out, "libindy "+indy.UpstreamVersion())
}

func TestCheckReportsMissingSymbols(t *testing.T) {
	fake := indytest.New()
	fake.Handle("indy_open_wallet", func(c *indytest.Call) int32 { return 0 })
	fake.Handle("indy_close_wallet", func(c *indytest.Call) int32 { return 0 })

	out, _, err := run(t, fakeApp(fake), "check")
	require.NoError(t, err)
	assert.Contains(t, out, "implemented: 2\n")
	assert.Contains(t, out, "  indy_create_wallet\n")
	assert.NotContains(t, out, "  indy_open_wallet\n")
}

func TestCallPrintsJSON(t *testing.T) {
	fake := indytest.New()
	var didInfo map[string]any
	fake.Handle("indy_create_and_store_my_did", func(c *indytest.Call) int32 {
		if err := c.JSON(1, &didInfo); err != nil {
			return c.Reject(int32(indy.CommonInvalidStructure), err.Error())
		}
		c.Complete("VsKV7grR1BUE29mG2Fm2kX", "GjZWsBLgZCR18aL468JAT7w9CZRiBnpxUPPgyQxh4voa")
		return 0
	})

	out, _, err := run(t, fakeApp(fake), "call", commands.CreateAndStoreMyDID, "1", `{"seed":"000000000000000000000000Steward1"}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"seed": "000000000000000000000000Steward1"}, didInfo)

	var got []string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []string{"VsKV7grR1BUE29mG2Fm2kX", "GjZWsBLgZCR18aL468JAT7w9CZRiBnpxUPPgyQxh4voa"}, got)
}

func TestCallBufferArguments(t *testing.T) {
	fake := indytest.New()
	fake.Handle("indy_crypto_anon_crypt", func(c *indytest.Call) int32 {
		msg := c.Bytes(1)
		for i, j := 0, len(msg)-1; i < j; i, j = i+1, j-1 {
			msg[i], msg[j] = msg[j], msg[i]
		}
		c.Complete(msg)
		return 0
	})

	in := base64.StdEncoding.EncodeToString([]byte{1, 2, 3})
	out, _, err := run(t, fakeApp(fake), "call", commands.CryptoAnonCrypt, "vk", in)
	require.NoError(t, err)

	var got []byte
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []byte{3, 2, 1}, got)
}

func TestCallErrors(t *testing.T) {
	fake := indytest.New()
	fake.Handle("indy_open_wallet", func(c *indytest.Call) int32 {
		c.Fail(int32(indy.WalletNotFoundError), "wallet not found")
		return 0
	})

	_, _, err := run(t, fakeApp(fake), "call", "no_such_command")
	require.ErrorIs(t, err, commands.ErrUnknownCommand)

	_, _, err = run(t, fakeApp(fake), "call", commands.OpenWallet, `{"id":"w"}`, `{"key":"k"}`)
	var ierr *indy.Error
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, indy.WalletNotFoundError, ierr.Code)

	_, _, err = run(t, fakeApp(fake), "call", commands.CloseWallet, "1", "2")
	require.ErrorIs(t, err, indy.ErrArgument)

	_, _, err = run(t, fakeApp(fake), "--log-format", "xml", "check")
	require.Error(t, err)
}

func TestInitializationFailure(t *testing.T) {
	a := &app{open: func(context.Context, indy.Config) (*indy.Library, error) {
		return nil, indy.ErrNotBuilt
	}}
	_, _, err := run(t, a, "check")
	require.ErrorIs(t, err, indy.ErrNotBuilt)

	boom := errors.New("boom")
	a.open = func(context.Context, indy.Config) (*indy.Library, error) { return nil, boom }
	_, _, err = run(t, a, "--library", "/nonexistent/libindy.so", "check")
	require.ErrorIs(t, err, boom)
}

func TestLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "indy.log")
	fake := indytest.New()

	_, stderr, err := run(t, fakeApp(fake), "--log-file", path, "--log-level", "debug", "--log-format", "json", "check")
	require.NoError(t, err)
	assert.Empty(t, stderr)
	assert.FileExists(t, path)
}

func TestParseArg(t *testing.T) {
	cases := []struct {
		name  string
		param indy.Param
		arg   string
		want  any
	}{
		{"bare string", indy.Param{Type: indy.String}, "did:sov:123", "did:sov:123"},
		{"quoted string", indy.Param{Type: indy.String}, `"two words"`, "two words"},
		{"bool text for string", indy.Param{Type: indy.String}, "true", "true"},
		{"number text for string", indy.Param{Type: indy.String}, "42", "42"},
		{"object text for string", indy.Param{Type: indy.String}, `{"a":1}`, `{"a":1}`},
		{"number", indy.Param{Type: indy.Int}, "42", json.Number("42")},
		{"bool", indy.Param{Type: indy.Bool}, "true", true},
		{"null", indy.Param{Type: indy.String, Optional: true}, "null", nil},
		{"json passthrough", indy.Param{Type: indy.JSON}, `{"a":1}`, json.RawMessage(`{"a":1}`)},
		{"buffer", indy.Param{Type: indy.Buffer}, base64.StdEncoding.EncodeToString([]byte("hi")), []byte("hi")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseArg(tc.param, tc.arg)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := parseArg(indy.Param{Type: indy.Buffer}, "not base64!")
	require.ErrorIs(t, err, indy.ErrArgument)
	_, err = parseArg(indy.Param{Type: indy.Buffer}, "12")
	require.ErrorIs(t, err, indy.ErrArgument)
}
