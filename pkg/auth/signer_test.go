package auth

import (
	"errors"
	"testing"
)

const (
	zeroKey    = "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA=" // 32 zero bytes
	orderedKey = "AAECAwQFBgcICQoLDA0ODw=="                     // bytes 0x00..0x0f
)

func TestHMACSignerVectors(t *testing.T) {
	tests := []struct {
		name    string
		message string
		key     string
		want    string
	}{
		{
			name:    "rfc 4231 case 2",
			message: "what do ya want for nothing?",
			key:     "SmVmZQ==", // "Jefe"
			want:    "W9zBRr9gdU5qBCQmCJV1x1oAPwidJzmDnexYuWTsOEM=",
		},
		{
			name:    "legacy canonical string",
			message: "myhub.example.net/devices/dev1\n1767225600300",
			key:     zeroKey,
			want:    "yrcce1+o57hr7eUK70N+sbCWzumLCxtxoW5TIJs7JFc=",
		},
		{
			name:    "preview canonical string",
			message: "myhub.example.net\ndev1\n\n\n1767225600300\n",
			key:     zeroKey,
			want:    "mJkZub+LCVZZqtqoFGubcd5zhGG0BDM+BuzBykSFC4c=",
		},
	}

	var s HMACSigner
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Sign(tt.message, tt.key)
			if err != nil {
				t.Fatalf("Sign() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Sign() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestHMACSignerDeterministic(t *testing.T) {
	var s HMACSigner
	first, err := s.Sign("same message", orderedKey)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		got, err := s.Sign("same message", orderedKey)
		if err != nil {
			t.Fatalf("Sign() error = %v", err)
		}
		if got != first {
			t.Errorf("Sign() = %s on repeat call, want %s", got, first)
		}
	}
}

func TestHMACSignerBytePerCharacter(t *testing.T) {
	var s HMACSigner
	got, err := s.Sign("café", orderedKey)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	if want := "mTqJoxoVJMy3qvKgKLJW/W+DodQovZtp43grfDvY/AQ="; got != want {
		t.Errorf("Sign() = %s, want latin-1 digest %s", got, want)
	}
	if utf8Digest := "0YHUI6FD9smOFBwTVJs3RqlN7s6WTqXrWFvmkzNNp/8="; got == utf8Digest {
		t.Error("Sign() hashed the UTF-8 bytes; the message must map one byte per character")
	}
}

func TestHMACSignerInvalidKey(t *testing.T) {
	var s HMACSigner
	for _, key := range []string{"not-base64!!!", "%%%", "AAA=BBB"} {
		_, err := s.Sign("message", key)
		if err == nil {
			t.Fatalf("Sign() with key %q: expected error", key)
		}
		var decodeErr *KeyDecodeError
		if !errors.As(err, &decodeErr) {
			t.Errorf("Sign() with key %q: error = %v, want *KeyDecodeError", key, err)
			continue
		}
		if decodeErr.Unwrap() == nil {
			t.Errorf("Sign() with key %q: KeyDecodeError does not wrap the decode error", key)
		}
	}
}

func TestHMACSignerEmptyKey(t *testing.T) {
	var s HMACSigner
	_, err := s.Sign("message", "")
	if err == nil {
		t.Fatal("Sign() with empty key: expected error")
	}
	var signErr *SigningError
	if !errors.As(err, &signErr) {
		t.Errorf("Sign() with empty key: error = %v, want *SigningError", err)
	}
}
