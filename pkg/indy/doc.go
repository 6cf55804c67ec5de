// Package indy exposes libindy's callback-based C API as blocking Go calls.
//
// A Library wraps one loaded libindy. Commands are declared as data with a
// Descriptor and validated when declared, so a missing symbol or an
// unsupported type is reported before anything is called. Each call
// allocates an invocation handle, passes it to libindy together with a
// trampoline for the command's result layout, and waits on a Completion that
// the trampoline resolves exactly once from the native thread.
//
//	lib, err := indy.Initialize(ctx, indy.Config{})
//	if err != nil {
//	    return err
//	}
//	createDID, err := lib.Declare(indy.Descriptor{
//	    Name:   "create_and_store_my_did",
//	    Symbol: "indy_create_and_store_my_did",
//	    Params: []indy.Param{
//	        {Name: "wallet_handle", Type: indy.Int},
//	        {Name: "did_json", Type: indy.JSON},
//	    },
//	    Results: []indy.Result{{Type: indy.String}, {Type: indy.String}},
//	})
//	out, err := createDID.Call(ctx, wallet, map[string]any{})
//
// Failures reported by libindy are *Error values carrying the status code,
// its symbolic name, the native message and backtrace. They match their code
// with errors.Is:
//
//	if errors.Is(err, indy.WalletNotFoundError) { ... }
//
// The package commands provides declarations for the libindy API.
package indy
