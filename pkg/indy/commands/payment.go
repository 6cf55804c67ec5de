package commands

import "github.com/sbca/indy-go/pkg/indy"

// Payment commands. They are only exported by libindy builds with a payment
// method plugged in.
const (
	CreatePaymentAddress           = "create_payment_address"
	ListPaymentAddresses           = "list_payment_addresses"
	AddRequestFees                 = "add_request_fees"
	ParseResponseWithFees          = "parse_response_with_fees"
	BuildGetPaymentSourcesRequest  = "build_get_payment_sources_request"
	ParseGetPaymentSourcesResponse = "parse_get_payment_sources_response"
	BuildPaymentReq                = "build_payment_req"
	ParsePaymentResponse           = "parse_payment_response"
	BuildMintReq                   = "build_mint_req"
	BuildSetTxnFeesReq             = "build_set_txn_fees_req"
	BuildGetTxnFeesReq             = "build_get_txn_fees_req"
	ParseGetTxnFeesResponse        = "parse_get_txn_fees_response"
	BuildVerifyPaymentReq          = "build_verify_payment_req"
	ParseVerifyPaymentResponse     = "parse_verify_payment_response"
)

func payment() []indy.Descriptor {
	submitter := optional(str("submitter_did"))
	method := str("payment_method")
	return []indy.Descriptor{
		command(CreatePaymentAddress, params(walletHandle, method, doc("config")), stringResult),
		command(ListPaymentAddresses, params(walletHandle), jsonResult),
		// The request builders complete with (request, payment method).
		command(AddRequestFees,
			params(walletHandle, submitter, doc("req"), doc("inputs"), doc("outputs"), optional(str("extra"))),
			jsonResult, stringResult),
		command(ParseResponseWithFees, params(method, doc("resp")), jsonResult),
		command(BuildGetPaymentSourcesRequest, params(walletHandle, submitter, str("payment_address")), jsonResult, stringResult),
		command(ParseGetPaymentSourcesResponse, params(method, doc("resp")), jsonResult),
		command(BuildPaymentReq,
			params(walletHandle, submitter, doc("inputs"), doc("outputs"), optional(str("extra"))),
			jsonResult, stringResult),
		command(ParsePaymentResponse, params(method, doc("resp")), jsonResult),
		command(BuildMintReq, params(walletHandle, submitter, doc("outputs"), optional(str("extra"))), jsonResult, stringResult),
		command(BuildSetTxnFeesReq, params(walletHandle, submitter, method, doc("fees")), jsonResult),
		command(BuildGetTxnFeesReq, params(walletHandle, submitter, method), jsonResult),
		command(ParseGetTxnFeesResponse, params(method, doc("resp")), jsonResult),
		command(BuildVerifyPaymentReq, params(walletHandle, submitter, str("receipt")), jsonResult, stringResult),
		command(ParseVerifyPaymentResponse, params(method, doc("resp")), jsonResult),
	}
}
