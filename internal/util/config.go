package util

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Configuration carries the settings shared by the CLI, the REPL, and the
// document store. Flag values override whatever the config file provided.
type Configuration struct {
	Version   string `toml:"-"`
	BuildDate string `toml:"-"`
	Commit    string `toml:"-"`

	LogLevel string `toml:"log_level"`
	LogFile  string `toml:"log_file"`

	DebugJsonAST bool `toml:"debug_json_ast"`
	DebugTxtAST  bool `toml:"debug_txt_ast"`

	Store StoreConfiguration `toml:"store"`
}

// StoreConfiguration selects the database/sql driver and connection string
// used for persisting parsed documents. An empty driver disables the store.
type StoreConfiguration struct {
	Driver string `toml:"driver"`
	DSN    string `toml:"dsn"`
}

// LoadConfig reads a TOML configuration file into cfg, leaving fields that
// the file does not mention untouched.
func LoadConfig(path string, cfg *Configuration) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file '%s': %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", path, err)
	}
	return nil
}
