package commands

import "github.com/sbca/indy-go/pkg/indy"

// DID commands.
const (
	CreateAndStoreMyDID = "create_and_store_my_did"
	ReplaceKeysStart    = "replace_keys_start"
	ReplaceKeysApply    = "replace_keys_apply"
	StoreTheirDID       = "store_their_did"
	SetDIDMetadata      = "set_did_metadata"
	GetDIDMetadata      = "get_did_metadata"
	GetMyDIDWithMeta    = "get_my_did_with_meta"
	ListMyDIDsWithMeta  = "list_my_dids_with_meta"
	KeyForDID           = "key_for_did"
	KeyForLocalDID      = "key_for_local_did"
	SetEndpointForDID   = "set_endpoint_for_did"
	GetEndpointForDID   = "get_endpoint_for_did"
	AbbreviateVerkey    = "abbreviate_verkey"
)

func did() []indy.Descriptor {
	return []indy.Descriptor{
		// Completes with (did, verkey).
		command(CreateAndStoreMyDID, params(walletHandle, doc("did_info")), stringResult, stringResult),
		command(ReplaceKeysStart, params(walletHandle, str("did"), doc("key_info")), stringResult),
		command(ReplaceKeysApply, params(walletHandle, str("did"))),
		command(StoreTheirDID, params(walletHandle, doc("identity"))),
		command(SetDIDMetadata, params(walletHandle, str("did"), str("metadata"))),
		command(GetDIDMetadata, params(walletHandle, str("did")), stringResult),
		command(GetMyDIDWithMeta, params(walletHandle, str("my_did")), jsonResult),
		command(ListMyDIDsWithMeta, params(walletHandle), jsonResult),
		command(KeyForDID, params(poolHandle, walletHandle, str("did")), stringResult),
		command(KeyForLocalDID, params(walletHandle, str("did")), stringResult),
		command(SetEndpointForDID, params(walletHandle, str("did"), str("address"), str("transport_key"))),
		// Completes with (address, transport key); the key may be null.
		command(GetEndpointForDID, params(walletHandle, poolHandle, str("did")), stringResult, maybe(stringResult)),
		command(AbbreviateVerkey, params(str("did"), str("full_verkey")), stringResult),
	}
}
