// Package invitelink implements the invitation link codec: the identity triple
// (event id, invitee id, inviter id) is joined with a fixed delimiter, encrypted
// with AES-256-GCM under a process-wide key, and base64url-encoded. Tokens are
// self-contained and statelessly verifiable; GCM authentication rejects forged or
// corrupted tokens without a database round-trip.
package invitelink

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"eventplanner/internal/domain"
)

// Identifiers are canonical UUID strings, so the delimiter cannot collide.
const fieldDelimiter = ";"

type codec struct {
	gcm cipher.AEAD
}

// NewCodec returns a LinkCodec keyed with the given hex-encoded 32-byte key
// (64 hex characters).
func NewCodec(hexKey string) (domain.LinkCodec, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("invalid hex key: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("key must be exactly 32 bytes (64 hex chars), got %d bytes", len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aes.NewCipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cipher.NewGCM: %w", err)
	}
	return &codec{gcm: gcm}, nil
}

func (c *codec) Encode(eventID, inviteeID, inviterID string) (string, error) {
	if _, err := uuid.Parse(eventID); err != nil {
		return "", fmt.Errorf("invalid event id: %w", err)
	}
	if inviteeID != "" {
		if _, err := uuid.Parse(inviteeID); err != nil {
			return "", fmt.Errorf("invalid invitee id: %w", err)
		}
	}
	if _, err := uuid.Parse(inviterID); err != nil {
		return "", fmt.Errorf("invalid inviter id: %w", err)
	}

	plaintext := strings.Join([]string{eventID, inviteeID, inviterID}, fieldDelimiter)

	nonce := make([]byte, c.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("nonce generation: %w", err)
	}
	sealed := c.gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

func (c *codec) Decode(token string) (eventID, inviteeID, inviterID string, err error) {
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return "", "", "", domain.ErrMalformedLink
	}
	nonceSize := c.gcm.NonceSize()
	if len(data) < nonceSize {
		return "", "", "", domain.ErrMalformedLink
	}
	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := c.gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", "", "", domain.ErrMalformedLink
	}

	parts := strings.Split(string(plaintext), fieldDelimiter)
	if len(parts) != 3 {
		return "", "", "", domain.ErrMalformedLink
	}
	eventID, inviteeID, inviterID = parts[0], parts[1], parts[2]
	if _, err := uuid.Parse(eventID); err != nil {
		return "", "", "", domain.ErrMalformedLink
	}
	if inviteeID != "" {
		if _, err := uuid.Parse(inviteeID); err != nil {
			return "", "", "", domain.ErrMalformedLink
		}
	}
	if _, err := uuid.Parse(inviterID); err != nil {
		return "", "", "", domain.ErrMalformedLink
	}
	return eventID, inviteeID, inviterID, nil
}
