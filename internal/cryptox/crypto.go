// Package cryptox signs the values the server hands to browsers so they can
// be trusted when they come back.
package cryptox

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

const keySize = 32

// DeriveKey expands secret into a 32-byte key bound to info, so one
// configured secret can serve several purposes without key reuse.
func DeriveKey(secret []byte, info string) ([]byte, error) {
	if len(secret) == 0 {
		return nil, errors.New("empty secret")
	}
	key := make([]byte, keySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(info)), key); err != nil {
		return nil, err
	}
	return key, nil
}

// Signer appends and checks an HMAC-SHA256 tag on short string values.
// The signed form is "<value>.<base64url tag>".
type Signer struct {
	key []byte
}

// NewSigner derives the signing key from secret.
func NewSigner(secret []byte) (*Signer, error) {
	key, err := DeriveKey(secret, "nutriai session cookie")
	if err != nil {
		return nil, err
	}
	return &Signer{key: key}, nil
}

func (s *Signer) Sign(value string) string {
	return value + "." + base64.RawURLEncoding.EncodeToString(s.mac(value))
}

// Verify returns the original value when the tag matches.
func (s *Signer) Verify(signed string) (string, bool) {
	i := strings.LastIndexByte(signed, '.')
	if i <= 0 {
		return "", false
	}
	value, tag := signed[:i], signed[i+1:]

	got, err := base64.RawURLEncoding.DecodeString(tag)
	if err != nil {
		return "", false
	}
	if !hmac.Equal(got, s.mac(value)) {
		return "", false
	}
	return value, true
}

func (s *Signer) mac(value string) []byte {
	m := hmac.New(sha256.New, s.key)
	m.Write([]byte(value))
	return m.Sum(nil)
}
