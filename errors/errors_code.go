package errors

type Code string

const (
	InvalidKeyLength         Code = "INVALID_KEY_LENGTH"
	InvalidPublicKey         Code = "INVALID_PUBLIC_KEY"
	InvalidSignatureEncoding Code = "INVALID_SIGNATURE_ENCODING"
	SignatureMismatch        Code = "SIGNATURE_MISMATCH"
	ChecksumMismatch         Code = "CHECKSUM_MISMATCH"
	InvalidNetworkByte       Code = "INVALID_NETWORK_BYTE"
	InvalidAddressLength     Code = "INVALID_ADDRESS_LENGTH"
	InvalidAddressEncoding   Code = "INVALID_ADDRESS_ENCODING"
	InvalidDerivationPath    Code = "INVALID_DERIVATION_PATH"
	InvalidSeedLength        Code = "INVALID_SEED_LENGTH"
	InvalidMnemonic          Code = "INVALID_MNEMONIC"
	InsufficientEntropy      Code = "INSUFFICIENT_ENTROPY"
	InvalidNetwork           Code = "INVALID_NETWORK"
	InvalidHex               Code = "INVALID_HEX"
	InvalidCiphertext        Code = "INVALID_CIPHERTEXT"
	DecryptionFailed         Code = "DECRYPTION_FAILED"
	BatchTooLarge            Code = "BATCH_TOO_LARGE"
	KeyZeroized              Code = "KEY_ZEROIZED"
)
