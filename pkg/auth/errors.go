package auth

import "fmt"

// KeyDecodeError reports a shared access key that is not valid standard
// base64.
type KeyDecodeError struct {
	Err error
}

func (e *KeyDecodeError) Error() string {
	return fmt.Sprintf("auth: invalid base64 key: %v", e.Err)
}

func (e *KeyDecodeError) Unwrap() error { return e.Err }

// SigningError reports a failure inside the signing primitive itself, such
// as rejected key material.
type SigningError struct {
	Reason string
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("auth: signing failed: %s", e.Reason)
}

// InvalidVariantError reports a credential variant this package does not
// implement.
type InvalidVariantError struct {
	Variant Variant
}

func (e *InvalidVariantError) Error() string {
	return fmt.Sprintf("auth: unknown credential variant %q", string(e.Variant))
}
