package commands

import "github.com/sbca/indy-go/pkg/indy"

// Anoncreds issuer, prover and verifier commands.
const (
	IssuerCreateSchema                  = "issuer_create_schema"
	IssuerCreateAndStoreCredentialDef   = "issuer_create_and_store_credential_def"
	IssuerCreateAndStoreRevocReg        = "issuer_create_and_store_revoc_reg"
	IssuerCreateCredentialOffer         = "issuer_create_credential_offer"
	IssuerCreateCredential              = "issuer_create_credential"
	IssuerRevokeCredential              = "issuer_revoke_credential"
	IssuerMergeRevocationRegistryDeltas = "issuer_merge_revocation_registry_deltas"
	ProverCreateMasterSecret            = "prover_create_master_secret"
	ProverCreateCredentialReq           = "prover_create_credential_req"
	ProverStoreCredential               = "prover_store_credential"
	ProverGetCredential                 = "prover_get_credential"
	ProverDeleteCredential              = "prover_delete_credential"
	ProverGetCredentials                = "prover_get_credentials"
	ProverSearchCredentials             = "prover_search_credentials"
	ProverFetchCredentials              = "prover_fetch_credentials"
	ProverCloseCredentialsSearch        = "prover_close_credentials_search"
	ProverGetCredentialsForProofReq     = "prover_get_credentials_for_proof_req"
	ProverCreateProof                   = "prover_create_proof"
	VerifierVerifyProof                 = "verifier_verify_proof"
	CreateRevocationState               = "create_revocation_state"
	UpdateRevocationState               = "update_revocation_state"
)

func anoncreds() []indy.Descriptor {
	timestamp := custom("timestamp", indy.Uint64Encoder)
	return []indy.Descriptor{
		// Completes with (schema id, schema).
		command(IssuerCreateSchema, params(str("issuer_did"), str("name"), str("version"), doc("attrs")), stringResult, jsonResult),
		// Completes with (credential definition id, credential definition).
		command(IssuerCreateAndStoreCredentialDef,
			params(walletHandle, str("issuer_did"), doc("schema"), str("tag"), optional(str("signature_type")), optional(doc("config"))),
			stringResult, jsonResult),
		// Completes with (registry id, registry definition, registry entry).
		command(IssuerCreateAndStoreRevocReg,
			params(walletHandle, str("issuer_did"), optional(str("revoc_def_type")), str("tag"), str("cred_def_id"), doc("config"), num("tails_writer_handle")),
			stringResult, jsonResult, jsonResult),
		command(IssuerCreateCredentialOffer, params(walletHandle, str("cred_def_id")), jsonResult),
		// Completes with (credential, revocation id, revocation delta); the
		// last two are null for credentials without revocation support.
		command(IssuerCreateCredential,
			params(walletHandle, doc("cred_offer"), doc("cred_req"), doc("cred_values"), optional(str("rev_reg_id")), optional(num("blob_storage_reader_handle"))),
			jsonResult, maybe(stringResult), maybe(jsonResult)),
		command(IssuerRevokeCredential,
			params(walletHandle, num("blob_storage_reader_handle"), str("rev_reg_id"), str("cred_revoc_id")),
			jsonResult),
		command(IssuerMergeRevocationRegistryDeltas, params(doc("rev_reg_delta"), doc("other_rev_reg_delta")), jsonResult),

		command(ProverCreateMasterSecret, params(walletHandle, optional(str("master_secret_id"))), stringResult),
		// Completes with (credential request, request metadata).
		command(ProverCreateCredentialReq,
			params(walletHandle, str("prover_did"), doc("cred_offer"), doc("cred_def"), str("master_secret_id")),
			jsonResult, jsonResult),
		command(ProverStoreCredential,
			params(walletHandle, optional(str("cred_id")), doc("cred_req_metadata"), doc("cred"), doc("cred_def"), optional(doc("rev_reg_def"))),
			stringResult),
		command(ProverGetCredential, params(walletHandle, str("cred_id")), jsonResult),
		command(ProverDeleteCredential, params(walletHandle, str("cred_id"))),
		command(ProverGetCredentials, params(walletHandle, optional(doc("filter"))), jsonResult),
		// Completes with (search handle, total count).
		command(ProverSearchCredentials, params(walletHandle, optional(doc("query"))), intResult, indy.Uint32Result),
		command(ProverFetchCredentials, params(searchHandle, custom("count", indy.Uint32Encoder)), jsonResult),
		command(ProverCloseCredentialsSearch, params(searchHandle)),
		command(ProverGetCredentialsForProofReq, params(walletHandle, doc("proof_request")), jsonResult),
		command(ProverCreateProof,
			params(walletHandle, doc("proof_req"), doc("requested_credentials"), str("master_secret_id"), doc("schemas"), doc("credential_defs"), doc("rev_states")),
			jsonResult),
		command(VerifierVerifyProof,
			params(doc("proof_request"), doc("proof"), doc("schemas"), doc("credential_defs"), doc("rev_reg_defs"), doc("rev_regs")),
			boolResult),

		command(CreateRevocationState,
			params(num("blob_storage_reader_handle"), doc("rev_reg_def"), doc("rev_reg_delta"), timestamp, str("cred_rev_id")),
			jsonResult),
		command(UpdateRevocationState,
			params(num("blob_storage_reader_handle"), doc("rev_state"), doc("rev_reg_def"), doc("rev_reg_delta"), timestamp, str("cred_rev_id")),
			jsonResult),
	}
}
