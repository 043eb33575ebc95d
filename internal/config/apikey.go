package config

import (
	"os"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "cadbridge"
	keyringUser    = "anthropic_api_key"
)

// AnthropicAPIKey resolves the API key for the optional LLM analysis.
// The environment variable wins; the OS keyring is the fallback so the key
// never has to live in a config file. Returns "" when neither is set.
func AnthropicAPIKey() string {
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		return key
	}
	key, err := keyring.Get(keyringService, keyringUser)
	if err != nil {
		return ""
	}
	return key
}

// StoreAnthropicAPIKey saves the API key in the OS keyring.
func StoreAnthropicAPIKey(key string) error {
	return keyring.Set(keyringService, keyringUser, key)
}
