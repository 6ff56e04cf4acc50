package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError carries a machine readable Code next to the operation that failed
// and, optionally, the underlying cause.
type AppError struct {
	Code Code
	Op   string
	Err  error
}

func (e *AppError) Error() string {
	switch {
	case e.Op == "" && e.Err == nil:
		return fmt.Sprintf("[%s]", e.Code)
	case e.Err == nil:
		return fmt.Sprintf("[%s] %s", e.Code, e.Op)
	case e.Op == "":
		return fmt.Sprintf("[%s] %v", e.Code, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Code, e.Op, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports a match on Code alone, so wrapped errors still compare equal to
// the package sentinels with errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Sentinels, one per error kind.
var (
	ErrInvalidKeyLength         = &AppError{Code: InvalidKeyLength}
	ErrInvalidPublicKey         = &AppError{Code: InvalidPublicKey}
	ErrInvalidSignatureEncoding = &AppError{Code: InvalidSignatureEncoding}
	ErrSignatureMismatch        = &AppError{Code: SignatureMismatch}
	ErrChecksumMismatch         = &AppError{Code: ChecksumMismatch}
	ErrInvalidNetworkByte       = &AppError{Code: InvalidNetworkByte}
	ErrInvalidAddressLength     = &AppError{Code: InvalidAddressLength}
	ErrInvalidAddressEncoding   = &AppError{Code: InvalidAddressEncoding}
	ErrInvalidDerivationPath    = &AppError{Code: InvalidDerivationPath}
	ErrInvalidSeedLength        = &AppError{Code: InvalidSeedLength}
	ErrInvalidMnemonic          = &AppError{Code: InvalidMnemonic}
	ErrInsufficientEntropy      = &AppError{Code: InsufficientEntropy}
	ErrInvalidNetwork           = &AppError{Code: InvalidNetwork}
	ErrInvalidHex               = &AppError{Code: InvalidHex}
	ErrInvalidCiphertext        = &AppError{Code: InvalidCiphertext}
	ErrDecryptionFailed         = &AppError{Code: DecryptionFailed}
	ErrBatchTooLarge            = &AppError{Code: BatchTooLarge}
	ErrKeyZeroized              = &AppError{Code: KeyZeroized}
)

func WrapWithCode(code Code, op string, err error) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Code: code,
		Op:   op,
		Err:  err,
	}
}

// Newf builds an AppError whose cause is a formatted message.
func Newf(code Code, op string, format string, args ...any) error {
	return &AppError{
		Code: code,
		Op:   op,
		Err:  fmt.Errorf(format, args...),
	}
}

// CodeOf returns the Code of the first AppError in err's chain, or "" if
// there is none.
func CodeOf(err error) Code {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
