package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/ahmedhamdy1234/OXTCHAT/internal/storage"
)

// DefaultServerURL is where the relay server listens out of the box.
const DefaultServerURL = "http://localhost:8080"

// ClientConfig holds the terminal client settings, read from config.toml in
// the data directory.
type ClientConfig struct {
	ServerURL string `toml:"server_url"`
	DataDir   string `toml:"data_dir"`
}

// LoadClient loads the client configuration. A missing config file is fine;
// defaults apply. Environment variables override the file:
//
//	OXTCHAT_SERVER_URL — overrides server_url
//	OXTCHAT_DATA_DIR   — overrides data_dir
func LoadClient() (*ClientConfig, error) {
	dir, err := storage.DefaultDir()
	if err != nil {
		return nil, err
	}

	cfg := &ClientConfig{
		ServerURL: DefaultServerURL,
		DataDir:   dir,
	}

	path := filepath.Join(dir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	cfg.applyDefaults(dir)
	cfg.applyEnvOverrides()
	return cfg, nil
}

// LoadClientFromPath loads a specific config file. Used by tests and the
// --config flag.
func LoadClientFromPath(path string) (*ClientConfig, error) {
	dir, err := storage.DefaultDir()
	if err != nil {
		return nil, err
	}

	cfg := &ClientConfig{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	cfg.applyDefaults(dir)
	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *ClientConfig) applyDefaults(dir string) {
	if c.ServerURL == "" {
		c.ServerURL = DefaultServerURL
	}
	if c.DataDir == "" {
		c.DataDir = dir
	}
}

func (c *ClientConfig) applyEnvOverrides() {
	if v := os.Getenv("OXTCHAT_SERVER_URL"); v != "" {
		c.ServerURL = v
	}
	if v := os.Getenv("OXTCHAT_DATA_DIR"); v != "" {
		c.DataDir = v
	}
}
