package indy

import "fmt"

// ErrorCode is a libindy status code. Zero is success.
//
// ErrorCode implements error so that errors.Is can match a returned *Error
// against a code directly:
//
//	if errors.Is(err, indy.WalletNotFoundError) { ... }
type ErrorCode int32

const (
	Success ErrorCode = 0

	CommonInvalidParam1    ErrorCode = 100
	CommonInvalidParam2    ErrorCode = 101
	CommonInvalidParam3    ErrorCode = 102
	CommonInvalidParam4    ErrorCode = 103
	CommonInvalidParam5    ErrorCode = 104
	CommonInvalidParam6    ErrorCode = 105
	CommonInvalidParam7    ErrorCode = 106
	CommonInvalidParam8    ErrorCode = 107
	CommonInvalidParam9    ErrorCode = 108
	CommonInvalidParam10   ErrorCode = 109
	CommonInvalidParam11   ErrorCode = 110
	CommonInvalidParam12   ErrorCode = 111
	CommonInvalidState     ErrorCode = 112
	CommonInvalidStructure ErrorCode = 113
	CommonIOError          ErrorCode = 114

	WalletInvalidHandle              ErrorCode = 200
	WalletUnknownTypeError           ErrorCode = 201
	WalletTypeAlreadyRegisteredError ErrorCode = 202
	WalletAlreadyExistsError         ErrorCode = 203
	WalletNotFoundError              ErrorCode = 204
	WalletIncompatiblePoolError      ErrorCode = 205
	WalletAlreadyOpenedError         ErrorCode = 206
	WalletAccessFailed               ErrorCode = 207
	WalletInputError                 ErrorCode = 208
	WalletDecodingError              ErrorCode = 209
	WalletStorageError               ErrorCode = 210
	WalletEncryptionError            ErrorCode = 211
	WalletItemNotFound               ErrorCode = 212
	WalletItemAlreadyExists          ErrorCode = 213
	WalletQueryError                 ErrorCode = 214

	PoolLedgerNotCreatedError          ErrorCode = 300
	PoolLedgerInvalidPoolHandle        ErrorCode = 301
	PoolLedgerTerminated               ErrorCode = 302
	LedgerNoConsensusError             ErrorCode = 303
	LedgerInvalidTransaction           ErrorCode = 304
	LedgerSecurityError                ErrorCode = 305
	PoolLedgerConfigAlreadyExistsError ErrorCode = 306
	PoolLedgerTimeout                  ErrorCode = 307
	PoolIncompatibleProtocolVersion    ErrorCode = 308
	LedgerNotFound                     ErrorCode = 309

	AnoncredsRevocationRegistryFullError    ErrorCode = 400
	AnoncredsInvalidUserRevocId             ErrorCode = 401
	AnoncredsMasterSecretDuplicateNameError ErrorCode = 404
	AnoncredsProofRejected                  ErrorCode = 405
	AnoncredsCredentialRevoked              ErrorCode = 406
	AnoncredsCredDefAlreadyExistsError      ErrorCode = 407

	UnknownCryptoTypeError ErrorCode = 500

	DidAlreadyExistsError ErrorCode = 600

	PaymentUnknownMethodError         ErrorCode = 700
	PaymentIncompatibleMethodsError   ErrorCode = 701
	PaymentInsufficientFundsError     ErrorCode = 702
	PaymentSourceDoesNotExistError    ErrorCode = 703
	PaymentOperationNotSupportedError ErrorCode = 704
	PaymentExtraFundsError            ErrorCode = 705
)

var codeNames = map[ErrorCode]string{
	Success: "Success",

	CommonInvalidParam1:    "CommonInvalidParam1",
	CommonInvalidParam2:    "CommonInvalidParam2",
	CommonInvalidParam3:    "CommonInvalidParam3",
	CommonInvalidParam4:    "CommonInvalidParam4",
	CommonInvalidParam5:    "CommonInvalidParam5",
	CommonInvalidParam6:    "CommonInvalidParam6",
	CommonInvalidParam7:    "CommonInvalidParam7",
	CommonInvalidParam8:    "CommonInvalidParam8",
	CommonInvalidParam9:    "CommonInvalidParam9",
	CommonInvalidParam10:   "CommonInvalidParam10",
	CommonInvalidParam11:   "CommonInvalidParam11",
	CommonInvalidParam12:   "CommonInvalidParam12",
	CommonInvalidState:     "CommonInvalidState",
	CommonInvalidStructure: "CommonInvalidStructure",
	CommonIOError:          "CommonIOError",

	WalletInvalidHandle:              "WalletInvalidHandle",
	WalletUnknownTypeError:           "WalletUnknownTypeError",
	WalletTypeAlreadyRegisteredError: "WalletTypeAlreadyRegisteredError",
	WalletAlreadyExistsError:         "WalletAlreadyExistsError",
	WalletNotFoundError:              "WalletNotFoundError",
	WalletIncompatiblePoolError:      "WalletIncompatiblePoolError",
	WalletAlreadyOpenedError:         "WalletAlreadyOpenedError",
	WalletAccessFailed:               "WalletAccessFailed",
	WalletInputError:                 "WalletInputError",
	WalletDecodingError:              "WalletDecodingError",
	WalletStorageError:               "WalletStorageError",
	WalletEncryptionError:            "WalletEncryptionError",
	WalletItemNotFound:               "WalletItemNotFound",
	WalletItemAlreadyExists:          "WalletItemAlreadyExists",
	WalletQueryError:                 "WalletQueryError",

	PoolLedgerNotCreatedError:          "PoolLedgerNotCreatedError",
	PoolLedgerInvalidPoolHandle:        "PoolLedgerInvalidPoolHandle",
	PoolLedgerTerminated:               "PoolLedgerTerminated",
	LedgerNoConsensusError:             "LedgerNoConsensusError",
	LedgerInvalidTransaction:           "LedgerInvalidTransaction",
	LedgerSecurityError:                "LedgerSecurityError",
	PoolLedgerConfigAlreadyExistsError: "PoolLedgerConfigAlreadyExistsError",
	PoolLedgerTimeout:                  "PoolLedgerTimeout",
	PoolIncompatibleProtocolVersion:    "PoolIncompatibleProtocolVersion",
	LedgerNotFound:                     "LedgerNotFound",

	AnoncredsRevocationRegistryFullError:    "AnoncredsRevocationRegistryFullError",
	AnoncredsInvalidUserRevocId:             "AnoncredsInvalidUserRevocId",
	AnoncredsMasterSecretDuplicateNameError: "AnoncredsMasterSecretDuplicateNameError",
	AnoncredsProofRejected:                  "AnoncredsProofRejected",
	AnoncredsCredentialRevoked:              "AnoncredsCredentialRevoked",
	AnoncredsCredDefAlreadyExistsError:      "AnoncredsCredDefAlreadyExistsError",

	UnknownCryptoTypeError: "UnknownCryptoTypeError",

	DidAlreadyExistsError: "DidAlreadyExistsError",

	PaymentUnknownMethodError:         "PaymentUnknownMethodError",
	PaymentIncompatibleMethodsError:   "PaymentIncompatibleMethodsError",
	PaymentInsufficientFundsError:     "PaymentInsufficientFundsError",
	PaymentSourceDoesNotExistError:    "PaymentSourceDoesNotExistError",
	PaymentOperationNotSupportedError: "PaymentOperationNotSupportedError",
	PaymentExtraFundsError:            "PaymentExtraFundsError",
}

// Known reports whether c is part of the libindy catalogue.
func (c ErrorCode) Known() bool {
	_, ok := codeNames[c]
	return ok
}

// String returns the symbolic name of c, or "ErrorCode(n)" for unknown codes.
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ErrorCode(%d)", int32(c))
}

func (c ErrorCode) Error() string {
	return fmt.Sprintf("indy: %s (%d)", c.String(), int32(c))
}

// ParamIndex returns the 1-based index of the offending parameter for the
// CommonInvalidParam family and 0 for every other code.
func (c ErrorCode) ParamIndex() int {
	if c >= CommonInvalidParam1 && c <= CommonInvalidParam12 {
		return int(c) - 99
	}
	return 0
}

// Family groups codes by the libindy subsystem that raises them.
type Family uint8

const (
	FamilyUnknown Family = iota
	FamilySuccess
	FamilyCommon
	FamilyWallet
	FamilyLedger
	FamilyAnoncreds
	FamilyCrypto
	FamilyDID
	FamilyPayment
)

var familyNames = [...]string{
	FamilyUnknown:   "unknown",
	FamilySuccess:   "success",
	FamilyCommon:    "common",
	FamilyWallet:    "wallet",
	FamilyLedger:    "ledger",
	FamilyAnoncreds: "anoncreds",
	FamilyCrypto:    "crypto",
	FamilyDID:       "did",
	FamilyPayment:   "payment",
}

func (f Family) String() string {
	if int(f) < len(familyNames) {
		return familyNames[f]
	}
	return familyNames[FamilyUnknown]
}

// Family returns the subsystem family of c. Unknown codes report FamilyUnknown.
func (c ErrorCode) Family() Family {
	if !c.Known() {
		return FamilyUnknown
	}
	switch {
	case c == Success:
		return FamilySuccess
	case c < 200:
		return FamilyCommon
	case c < 300:
		return FamilyWallet
	case c < 400:
		return FamilyLedger
	case c < 500:
		return FamilyAnoncreds
	case c < 600:
		return FamilyCrypto
	case c < 700:
		return FamilyDID
	default:
		return FamilyPayment
	}
}
