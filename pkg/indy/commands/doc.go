// Package commands is the catalogue of libindy commands, declared as data.
//
// Each descriptor names the exported libindy symbol, its parameters and the
// results its completion callback carries. Register declares every
// descriptor against a loaded library and returns the callable set; symbols
// the library does not export are reported rather than treated as fatal, so
// builds of libindy without payment or anoncreds support still load.
//
// # Usage
//
//	lib, err := indy.Initialize(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	set, missing, err := commands.Register(lib)
//	if err != nil {
//	    return err
//	}
//	if len(missing) > 0 {
//	    log.Warn("libindy is missing commands", "symbols", missing)
//	}
//
//	wallet, err := set.Call(ctx, commands.OpenWallet, cfgJSON, credsJSON)
//
// Command names are the libindy symbols without the "indy_" prefix.
package commands
