package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/profilekeeper/internal/common"
)

// SecretFile is the name of the generated remember-me key inside DataDir.
const SecretFile = "remember.key"

// RememberKey returns the configured remember-me key, or loads the one kept
// in DataDir, generating it on first use.
func (c *Config) RememberKey() ([]byte, error) {
	if c.RememberSecret != "" {
		key, err := hex.DecodeString(c.RememberSecret)
		if err != nil {
			return nil, fmt.Errorf("remember_secret must be hex: %w", err)
		}
		return key, nil
	}

	path := filepath.Join(c.DataDir, SecretFile)
	b, err := os.ReadFile(path)
	if err == nil {
		key, err := hex.DecodeString(strings.TrimSpace(string(b)))
		if err != nil {
			return nil, fmt.Errorf("corrupt %s: %w", path, err)
		}
		return key, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	s, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, []byte(s), 0o600); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	return hex.DecodeString(s)
}
