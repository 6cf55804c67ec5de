package commands

import "github.com/sbca/indy-go/pkg/indy"

// Non-secrets wallet record commands.
const (
	AddWalletRecord              = "add_wallet_record"
	UpdateWalletRecordValue      = "update_wallet_record_value"
	UpdateWalletRecordTags       = "update_wallet_record_tags"
	AddWalletRecordTags          = "add_wallet_record_tags"
	DeleteWalletRecordTags       = "delete_wallet_record_tags"
	DeleteWalletRecord           = "delete_wallet_record"
	GetWalletRecord              = "get_wallet_record"
	OpenWalletSearch             = "open_wallet_search"
	FetchWalletSearchNextRecords = "fetch_wallet_search_next_records"
	CloseWalletSearch            = "close_wallet_search"
)

func nonSecrets() []indy.Descriptor {
	typ, id := str("type"), str("id")
	return []indy.Descriptor{
		command(AddWalletRecord, params(walletHandle, typ, id, str("value"), optional(doc("tags")))),
		command(UpdateWalletRecordValue, params(walletHandle, typ, id, str("value"))),
		command(UpdateWalletRecordTags, params(walletHandle, typ, id, doc("tags"))),
		command(AddWalletRecordTags, params(walletHandle, typ, id, doc("tags"))),
		command(DeleteWalletRecordTags, params(walletHandle, typ, id, doc("tag_names"))),
		command(DeleteWalletRecord, params(walletHandle, typ, id)),
		command(GetWalletRecord, params(walletHandle, typ, id, doc("options")), jsonResult),
		command(OpenWalletSearch, params(walletHandle, typ, doc("query"), doc("options")), intResult),
		command(FetchWalletSearchNextRecords, params(walletHandle, searchHandle, custom("count", indy.Uint32Encoder)), jsonResult),
		command(CloseWalletSearch, params(searchHandle)),
	}
}
