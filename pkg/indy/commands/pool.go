package commands

import "github.com/sbca/indy-go/pkg/indy"

// Pool commands.
const (
	CreatePoolLedgerConfig = "create_pool_ledger_config"
	DeletePoolLedgerConfig = "delete_pool_ledger_config"
	OpenPoolLedger         = "open_pool_ledger"
	RefreshPoolLedger      = "refresh_pool_ledger"
	ClosePoolLedger        = "close_pool_ledger"
	ListPools              = "list_pools"
	SetProtocolVersion     = "set_protocol_version"
)

func pool() []indy.Descriptor {
	return []indy.Descriptor{
		command(CreatePoolLedgerConfig, params(str("config_name"), optional(doc("config")))),
		command(DeletePoolLedgerConfig, params(str("config_name"))),
		command(OpenPoolLedger, params(str("config_name"), optional(doc("config"))), intResult),
		command(RefreshPoolLedger, params(poolHandle)),
		command(ClosePoolLedger, params(poolHandle)),
		command(ListPools, nil, jsonResult),
		command(SetProtocolVersion, params(custom("protocol_version", indy.Uint32Encoder))),
	}
}
