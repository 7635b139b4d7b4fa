// File: internal/infrastructure/security/encryption_service.go
package security

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

// EncryptionService defines methods for reversibly encrypting chat
// credentials. Ciphertexts are hex-encoded to match the ledger file format.
type EncryptionService interface {
	// Encrypt takes plaintext and a hex-encoded 32-byte key, returns
	// hex-encoded ciphertext (nonce prepended).
	Encrypt(plainText string, keyHex string) (string, error)
	// Decrypt takes hex-encoded ciphertext and a hex-encoded key, returns
	// plaintext.
	Decrypt(cipherTextHex string, keyHex string) (string, error)
}

// aesGCMEncryptionService implements EncryptionService using AES-256-GCM with
// a random per-record nonce.
type aesGCMEncryptionService struct{}

// NewAESGCMEncryptionService creates a new instance of aesGCMEncryptionService.
func NewAESGCMEncryptionService() EncryptionService {
	return &aesGCMEncryptionService{}
}

func decodeKey(keyHex string) ([]byte, error) {
	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("failed to decode hex key: %w", err)
	}
	if len(key) != 32 {
		return nil, errors.New("invalid key length: must be 32 bytes for AES-256")
	}
	return key, nil
}

// Encrypt encrypts plaintext using AES-256-GCM. Output is hex encoded:
// nonce + ciphertext + tag.
func (s *aesGCMEncryptionService) Encrypt(plainText string, keyHex string) (string, error) {
	key, err := decodeKey(keyHex)
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("failed to create AES cipher block: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("failed to create GCM cipher: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	cipherText := gcm.Seal(nil, nonce, []byte(plainText), nil)
	return hex.EncodeToString(append(nonce, cipherText...)), nil
}

// Decrypt decrypts hex-encoded (nonce + ciphertext + tag) using AES-256-GCM.
func (s *aesGCMEncryptionService) Decrypt(cipherTextHex string, keyHex string) (string, error) {
	key, err := decodeKey(keyHex)
	if err != nil {
		return "", err
	}

	nonceAndCiphertext, err := hex.DecodeString(cipherTextHex)
	if err != nil {
		return "", fmt.Errorf("failed to decode hex ciphertext: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("failed to create AES cipher block: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("failed to create GCM cipher: %w", err)
	}

	nonceSize := gcm.NonceSize()
	if len(nonceAndCiphertext) < nonceSize {
		return "", errors.New("ciphertext too short to contain nonce")
	}

	nonce, actualCiphertext := nonceAndCiphertext[:nonceSize], nonceAndCiphertext[nonceSize:]

	plainTextBytes, err := gcm.Open(nil, nonce, actualCiphertext, nil)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt: %w", err)
	}

	return string(plainTextBytes), nil
}

var _ EncryptionService = (*aesGCMEncryptionService)(nil)
