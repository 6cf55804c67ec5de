package commands

import "github.com/sbca/indy-go/pkg/indy"

// Crypto commands. Messages, signatures and ciphertexts are byte buffers.
const (
	CreateKey         = "create_key"
	SetKeyMetadata    = "set_key_metadata"
	GetKeyMetadata    = "get_key_metadata"
	CryptoSign        = "crypto_sign"
	CryptoVerify      = "crypto_verify"
	CryptoAuthCrypt   = "crypto_auth_crypt"
	CryptoAuthDecrypt = "crypto_auth_decrypt"
	CryptoAnonCrypt   = "crypto_anon_crypt"
	CryptoAnonDecrypt = "crypto_anon_decrypt"
	PackMessage       = "pack_message"
	UnpackMessage     = "unpack_message"
)

func crypto() []indy.Descriptor {
	return []indy.Descriptor{
		command(CreateKey, params(walletHandle, doc("key_info")), stringResult),
		command(SetKeyMetadata, params(walletHandle, str("verkey"), str("metadata"))),
		command(GetKeyMetadata, params(walletHandle, str("verkey")), stringResult),
		command(CryptoSign, params(walletHandle, str("signer_vk"), buf("message")), bufferResult),
		command(CryptoVerify, params(str("signer_vk"), buf("message"), buf("signature")), boolResult),
		command(CryptoAuthCrypt, params(walletHandle, str("sender_vk"), str("recipient_vk"), buf("message")), bufferResult),
		// Completes with (sender verkey, decrypted message).
		command(CryptoAuthDecrypt, params(walletHandle, str("recipient_vk"), buf("encrypted_message")), stringResult, bufferResult),
		command(CryptoAnonCrypt, params(str("recipient_vk"), buf("message")), bufferResult),
		command(CryptoAnonDecrypt, params(walletHandle, str("recipient_vk"), buf("encrypted_message")), bufferResult),
		// Anonymous packing when sender is absent.
		command(PackMessage, params(walletHandle, buf("message"), doc("receiver_keys"), optional(str("sender"))), bufferResult),
		command(UnpackMessage, params(walletHandle, buf("jwe")), bufferResult),
	}
}
