package commands_test

import (
	"context"
	"crypto/sha256"
	"sync"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbca/indy-go/pkg/indy"
	"github.com/sbca/indy-go/pkg/indy/commands"
	"github.com/sbca/indy-go/pkg/indy/ffi"
	"github.com/sbca/indy-go/pkg/indy/indytest"
	"github.com/sbca/indy-go/pkg/indy/logging"
)

func newLibrary(t *testing.T, fake *indytest.Library) *indy.Library {
	t.Helper()
	lib := indy.NewLibrary(fake, indy.Config{Logger: logging.Discard()})
	require.NoError(t, lib.Init(context.Background()))
	return lib
}

// implementAll registers a handler for every catalogue symbol that fails
// with CommonInvalidState, so tests can override just the ones they use.
func implementAll(fake *indytest.Library) {
	for _, d := range commands.Catalogue() {
		fake.Handle(d.Symbol, func(c *indytest.Call) int32 {
			return c.Reject(int32(indy.CommonInvalidState), "not scripted")
		})
	}
}

func TestCatalogueShape(t *testing.T) {
	seen := make(map[string]bool)
	for _, d := range commands.Catalogue() {
		assert.False(t, seen[d.Name], "duplicate command %s", d.Name)
		seen[d.Name] = true
		assert.Equal(t, "indy_"+d.Name, d.Symbol)

		// handle + parameter words + callback
		words := 2
		for _, p := range d.Params {
			words++
			if p.Type == indy.Buffer && p.Encoder == nil {
				words++
			}
		}
		assert.LessOrEqual(t, words, ffi.MaxArgs, d.Name)
	}

	d, ok := commands.Lookup(commands.CryptoSign)
	require.True(t, ok)
	assert.Equal(t, "indy_crypto_sign", d.Symbol)
	_, ok = commands.Lookup("no_such_command")
	assert.False(t, ok)
}

func TestRegisterFullLibrary(t *testing.T) {
	fake := indytest.New()
	implementAll(fake)
	lib := newLibrary(t, fake)

	set, missing, err := commands.Register(lib)
	require.NoError(t, err)
	assert.Empty(t, missing)
	assert.Len(t, set, len(commands.Catalogue()))
	assert.IsIncreasing(t, set.Names())
}

func TestRegisterPartialLibrary(t *testing.T) {
	fake := indytest.New()
	implementAll(fake)
	fake.Remove("indy_" + commands.CreatePaymentAddress)
	fake.Remove("indy_" + commands.BuildPaymentReq)
	lib := newLibrary(t, fake)

	set, missing, err := commands.Register(lib)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"indy_create_payment_address", "indy_build_payment_req"}, missing)

	_, err = set.Get(commands.CreatePaymentAddress)
	require.ErrorIs(t, err, commands.ErrUnknownCommand)
	_, err = set.Call(context.Background(), commands.BuildPaymentReq)
	require.ErrorIs(t, err, commands.ErrUnknownCommand)

	_, err = set.Get(commands.OpenWallet)
	require.NoError(t, err)
}

func TestRegisterEmptyLibrary(t *testing.T) {
	lib := newLibrary(t, indytest.New())
	set, missing, err := commands.Register(lib)
	require.NoError(t, err)
	assert.Empty(t, set)
	assert.Len(t, missing, len(commands.Catalogue()))
}

// keyring stands in for wallet-held signing keys, keyed by base58 verkey.
type keyring struct {
	mu   sync.Mutex
	keys map[string]*btcec.PrivateKey
}

func (k *keyring) create(t *testing.T) string {
	t.Helper()
	priv, err := btcec.NewPrivateKey()
	require.NoError(t, err)
	vk := base58.Encode(priv.PubKey().SerializeCompressed())
	k.mu.Lock()
	defer k.mu.Unlock()
	k.keys[vk] = priv
	return vk
}

func (k *keyring) get(vk string) *btcec.PrivateKey {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.keys[vk]
}

func TestCryptoSignVerify(t *testing.T) {
	ctx := context.Background()
	ring := &keyring{keys: make(map[string]*btcec.PrivateKey)}
	fake := indytest.New()

	// indy_crypto_sign(handle, wallet, signer_vk, msg, msg_len, cb)
	fake.Handle("indy_crypto_sign", func(c *indytest.Call) int32 {
		vk, _ := c.String(1)
		priv := ring.get(vk)
		if priv == nil {
			return c.Reject(int32(indy.WalletItemNotFound), "unknown verkey "+vk)
		}
		digest := sha256.Sum256(c.Bytes(2))
		c.Complete(ecdsa.Sign(priv, digest[:]).Serialize())
		return 0
	})
	// indy_crypto_verify(handle, signer_vk, msg, msg_len, sig, sig_len, cb)
	fake.Handle("indy_crypto_verify", func(c *indytest.Call) int32 {
		vk, _ := c.String(0)
		raw, err := base58.Decode(vk)
		if err != nil {
			return c.Reject(int32(indy.CommonInvalidParam1), "bad verkey")
		}
		pub, err := btcec.ParsePubKey(raw)
		if err != nil {
			return c.Reject(int32(indy.CommonInvalidParam1), err.Error())
		}
		sig, err := ecdsa.ParseDERSignature(c.Bytes(3))
		if err != nil {
			c.Complete(false)
			return 0
		}
		digest := sha256.Sum256(c.Bytes(1))
		c.Complete(sig.Verify(digest[:], pub))
		return 0
	})
	lib := newLibrary(t, fake)
	set, _, err := commands.Register(lib)
	require.NoError(t, err)

	vk := ring.create(t)
	msg := []byte("message to sign\x00with a nul byte")

	out, err := set.Call(ctx, commands.CryptoSign, 1, vk, msg)
	require.NoError(t, err)
	sig, ok := out.([]byte)
	require.True(t, ok, "signature is %T", out)
	require.NotEmpty(t, sig)

	valid, err := set.Call(ctx, commands.CryptoVerify, vk, msg, sig)
	require.NoError(t, err)
	assert.Equal(t, true, valid)

	valid, err = set.Call(ctx, commands.CryptoVerify, vk, []byte("tampered"), sig)
	require.NoError(t, err)
	assert.Equal(t, false, valid)

	_, err = set.Call(ctx, commands.CryptoSign, 1, ring.create(t)[:10], msg)
	var ierr *indy.Error
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, indy.WalletItemNotFound, ierr.Code)
	assert.Contains(t, ierr.Message, "unknown verkey")
}

func TestCredentialSearchCounts(t *testing.T) {
	ctx := context.Background()
	fake := indytest.New()

	var fetched uint32
	fake.Handle("indy_prover_search_credentials", func(c *indytest.Call) int32 {
		c.Complete(int32(17), uint32(3_000_000_000))
		return 0
	})
	fake.Handle("indy_prover_fetch_credentials", func(c *indytest.Call) int32 {
		fetched = c.Uint32(1)
		c.Complete(`[{"referent":"cred-1"}]`)
		return 0
	})
	set, _, err := commands.Register(newLibrary(t, fake))
	require.NoError(t, err)

	vals, err := set.Invoke(ctx, commands.ProverSearchCredentials, 1, map[string]any{"schema_name": "gvt"})
	require.NoError(t, err)
	handle, _ := vals.Int(0)
	count, _ := vals.Int(1)
	assert.Equal(t, 17, handle)
	assert.Equal(t, 3_000_000_000, count)

	out, err := set.Call(ctx, commands.ProverFetchCredentials, handle, uint32(4_000_000_000))
	require.NoError(t, err)
	assert.Equal(t, uint32(4_000_000_000), fetched)
	assert.Equal(t, []any{map[string]any{"referent": "cred-1"}}, out)

	_, err = set.Call(ctx, commands.ProverFetchCredentials, handle, -1)
	require.ErrorIs(t, err, indy.ErrArgument)
}

func TestOptionalResultsAndParams(t *testing.T) {
	ctx := context.Background()
	fake := indytest.New()

	fake.Handle("indy_get_endpoint_for_did", func(c *indytest.Call) int32 {
		c.Complete("127.0.0.1:9700", nil)
		return 0
	})
	var sender struct {
		present bool
		value   string
	}
	fake.Handle("indy_pack_message", func(c *indytest.Call) int32 {
		// wallet, message ptr, message len, receiver keys, sender
		sender.value, sender.present = c.String(4)
		c.Complete([]byte(`{"protected":"..."}`))
		return 0
	})
	set, _, err := commands.Register(newLibrary(t, fake))
	require.NoError(t, err)

	out, err := set.Call(ctx, commands.GetEndpointForDID, 1, 2, "VsKV7grR1BUE29mG2Fm2kX")
	require.NoError(t, err)
	assert.Equal(t, []any{"127.0.0.1:9700", nil}, out)

	_, err = set.Call(ctx, commands.PackMessage, 1, []byte("hi"), []string{"vk1"})
	require.NoError(t, err)
	assert.False(t, sender.present)

	_, err = set.Call(ctx, commands.PackMessage, 1, []byte("hi"), []string{"vk1"}, indy.Named("sender", "vk0"))
	require.NoError(t, err)
	assert.True(t, sender.present)
	assert.Equal(t, "vk0", sender.value)
}
