package commands

import "github.com/sbca/indy-go/pkg/indy"

// Wallet commands.
const (
	CreateWallet      = "create_wallet"
	OpenWallet        = "open_wallet"
	CloseWallet       = "close_wallet"
	DeleteWallet      = "delete_wallet"
	ExportWallet      = "export_wallet"
	ImportWallet      = "import_wallet"
	GenerateWalletKey = "generate_wallet_key"
)

func wallet() []indy.Descriptor {
	return []indy.Descriptor{
		command(CreateWallet, params(doc("config"), doc("credentials"))),
		command(OpenWallet, params(doc("config"), doc("credentials")), intResult),
		command(CloseWallet, params(walletHandle)),
		command(DeleteWallet, params(doc("config"), doc("credentials"))),
		command(ExportWallet, params(walletHandle, doc("export_config"))),
		command(ImportWallet, params(doc("config"), doc("credentials"), doc("import_config"))),
		command(GenerateWalletKey, params(optional(doc("config"))), stringResult),
	}
}
