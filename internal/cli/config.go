package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config holds CLI configuration
type Config struct {
	ServerURL  string
	TokensFile string
	Output     string
	Verbose    bool

	Tokens StoredTokens
}

// StoredTokens is the persisted token pair. The server rotates the
// pair when the access token lapses, so both halves are kept together.
type StoredTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Empty reports whether no tokens are stored
func (t StoredTokens) Empty() bool {
	return t.AccessToken == "" && t.RefreshToken == ""
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:  getEnvOrDefault("GAMESHELF_SERVER", "http://localhost:8080"),
		TokensFile: getEnvOrDefault("GAMESHELF_TOKENS_FILE", defaultTokensFile()),
		Output:     "text",
		Verbose:    false,
	}
}

// LoadTokens loads the token pair from the tokens file
func (c *Config) LoadTokens() error {
	data, err := os.ReadFile(c.TokensFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // Not logged in yet
		}
		return err
	}

	return json.Unmarshal(data, &c.Tokens)
}

// SaveTokens persists the token pair to the tokens file
func (c *Config) SaveTokens(tokens StoredTokens) error {
	c.Tokens = tokens

	dir := filepath.Dir(c.TokensFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := json.Marshal(tokens)
	if err != nil {
		return err
	}
	return os.WriteFile(c.TokensFile, data, 0600)
}

// ClearTokens removes the persisted token pair
func (c *Config) ClearTokens() error {
	c.Tokens = StoredTokens{}
	if err := os.Remove(c.TokensFile); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func defaultTokensFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gameshelf/tokens"
	}
	return filepath.Join(home, ".gameshelf", "tokens")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
