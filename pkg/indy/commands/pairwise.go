package commands

import "github.com/sbca/indy-go/pkg/indy"

// Pairwise commands.
const (
	IsPairwiseExists    = "is_pairwise_exists"
	CreatePairwise      = "create_pairwise"
	ListPairwise        = "list_pairwise"
	GetPairwise         = "get_pairwise"
	SetPairwiseMetadata = "set_pairwise_metadata"
)

func pairwise() []indy.Descriptor {
	return []indy.Descriptor{
		command(IsPairwiseExists, params(walletHandle, str("their_did")), boolResult),
		command(CreatePairwise, params(walletHandle, str("their_did"), str("my_did"), optional(str("metadata")))),
		command(ListPairwise, params(walletHandle), jsonResult),
		command(GetPairwise, params(walletHandle, str("their_did")), jsonResult),
		command(SetPairwiseMetadata, params(walletHandle, str("their_did"), optional(str("metadata")))),
	}
}
