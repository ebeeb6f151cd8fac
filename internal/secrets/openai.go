// Package secrets keeps the OpenAI API key in the OS keychain, with
// the environment as a fallback for headless runs.
package secrets

import (
	"errors"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// KeyringService groups this app's secrets in the OS keychain.
	KeyringService = "immojobs"

	openAIAccount = "immojobs:openai"

	envAPIKey = "OPENAI_API_KEY"
)

// GetOpenAIKey checks the keychain first, then the environment.
func GetOpenAIKey() (string, error) {
	if key, err := keyring.Get(KeyringService, openAIAccount); err == nil && strings.TrimSpace(key) != "" {
		return key, nil
	}
	if key := strings.TrimSpace(os.Getenv(envAPIKey)); key != "" {
		return key, nil
	}
	return "", errors.New("OpenAI API key not found (set it in the keychain or via OPENAI_API_KEY)")
}

func SetOpenAIKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("API key is empty")
	}
	return keyring.Set(KeyringService, openAIAccount, key)
}

func DeleteOpenAIKey() error {
	return keyring.Delete(KeyringService, openAIAccount)
}
