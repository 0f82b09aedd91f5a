package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// Signer computes a base64-encoded signature over a message using a
// base64-encoded key. Implementations must be deterministic and safe for
// concurrent use.
type Signer interface {
	Sign(message, base64Key string) (string, error)
}

// HMACSigner signs with HMAC-SHA256. The zero value is ready to use.
type HMACSigner struct{}

// Sign decodes base64Key with the standard alphabet, computes HMAC-SHA256
// over the message and returns the digest encoded as standard base64.
//
// The message is mapped to bytes one character per byte, each code point
// truncated to its low 8 bits. Receivers validate signatures computed over
// exactly these bytes, so the mapping must never become UTF-8. Credential
// strings built by this package are ASCII, making the mapping exact for
// every internal caller.
func (HMACSigner) Sign(message, base64Key string) (string, error) {
	key, err := base64.StdEncoding.DecodeString(base64Key)
	if err != nil {
		return "", &KeyDecodeError{Err: err}
	}
	// crypto/hmac accepts empty keys; SAS receivers do not.
	if len(key) == 0 {
		return "", &SigningError{Reason: "empty key"}
	}
	mac := hmac.New(sha256.New, key)
	mac.Write(messageBytes(message))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}

func messageBytes(s string) []byte {
	b := make([]byte, 0, len(s))
	for _, r := range s {
		b = append(b, byte(r))
	}
	return b
}
