package config

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

const (
	// SecretKeyLength is the number of random bytes in a generated key
	SecretKeyLength = 32
)

// LoadOrCreateSecretKey returns the key stored in path, creating the file with a fresh
// random key the first time. The key only signs flash cookies.
func LoadOrCreateSecretKey(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err == nil {
		key, decodeErr := base64.StdEncoding.DecodeString(strings.TrimSpace(string(content)))
		if decodeErr != nil {
			return nil, fmt.Errorf("secret key file %s is not valid base64: %w", path, decodeErr)
		}
		if len(key) < SecretKeyLength {
			return nil, fmt.Errorf("secret key in %s is too short (%d bytes)", path, len(key))
		}
		return key, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read secret key file: %w", err)
	}

	key, err := GenerateSecretKey()
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create secret key directory: %w", err)
		}
	}
	encoded := base64.StdEncoding.EncodeToString(key)
	if err := os.WriteFile(path, []byte(encoded+"\n"), 0o600); err != nil {
		return nil, fmt.Errorf("failed to write secret key file: %w", err)
	}

	log.Printf("[INFO] Generated new secret key at %s", path)
	return key, nil
}

// GenerateSecretKey generates a cryptographically secure random key
func GenerateSecretKey() ([]byte, error) {
	key := make([]byte, SecretKeyLength)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate secret key: %w", err)
	}
	return key, nil
}
