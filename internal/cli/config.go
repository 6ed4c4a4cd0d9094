package cli

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/Maan2003/gdb-utils/pkg/errors"
	"github.com/Maan2003/gdb-utils/pkg/render/htmltable"
)

// Config holds user preferences from ~/.config/gdbviz/config.toml. Every
// field is optional; zero values fall back to built-in defaults.
type Config struct {
	// GDB is the gdb binary path. Empty means PATH lookup.
	GDB string `toml:"gdb"`
	// Format is the default graph output format (dot, svg, png, jpg).
	Format string `toml:"format"`
	// Font is the font family used in exported HTML tables.
	Font string `toml:"font"`
	// Palette overrides the highlight colors, in assignment order.
	Palette []string `toml:"palette"`
	// Addr is the default listen address for the serve command.
	Addr string `toml:"addr"`
}

// defaults fills unset fields with built-in values.
func (c *Config) defaults() {
	if c.Format == "" {
		c.Format = "svg"
	}
	if c.Font == "" {
		c.Font = "Input Mono"
	}
	if len(c.Palette) == 0 {
		c.Palette = htmltable.DefaultPalette
	}
	if c.Addr == "" {
		c.Addr = "localhost:8077"
	}
}

// loadConfig reads the config file at path. A missing file is not an
// error; the defaults apply.
func loadConfig(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg.defaults()
		return cfg, nil
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	cfg.defaults()
	return cfg, nil
}

// userConfig loads the config from the XDG location, degrading to pure
// defaults when the home directory cannot be resolved.
func userConfig() Config {
	path, err := configPath()
	if err != nil {
		var cfg Config
		cfg.defaults()
		return cfg
	}
	cfg, err := loadConfig(path)
	if err != nil {
		var fallback Config
		fallback.defaults()
		return fallback
	}
	return cfg
}
