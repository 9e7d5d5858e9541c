// Package config loads and saves the TOML configuration and validates it
// into the binding table the daemon dispatches against.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"

	"github.com/depeter/mousebind/internal/binding"
)

const (
	appName        = "mousebind"
	configFileName = "config.toml"
)

// Config mirrors the on-disk TOML schema. Validation into domain types
// happens in Table; the raw struct keeps whatever the file said.
type Config struct {
	DeviceByPath string    `toml:"device_by_path,omitempty"`
	Grab         bool      `toml:"grab,omitempty"`
	Bindings     []Binding `toml:"bindings"`
}

type Binding struct {
	Button string `toml:"button"`
	Action Action `toml:"action"`
}

// Action decodes both the inline form `action = { type = "...", ... }`
// and the expanded `[bindings.action]` subtable form.
type Action struct {
	Type string   `toml:"type"`
	Argv []string `toml:"argv,omitempty"`
	Keys []string `toml:"keys,omitempty"`
}

// Error reports an invalid configuration. The daemon refuses to start on
// any Error; there is no partial acceptance.
type Error struct {
	Reason string
}

func (e *Error) Error() string {
	return "invalid config: " + e.Reason
}

func errorf(format string, args ...any) *Error {
	return &Error{Reason: fmt.Sprintf(format, args...)}
}

// Default returns the stock configuration: browser back/forward on the
// side buttons and volume on the two spare buttons.
func Default() *Config {
	return &Config{
		Bindings: []Binding{
			{Button: "BTN_SIDE", Action: Action{Type: "key_combo", Keys: []string{"KEY_BACK"}}},
			{Button: "BTN_EXTRA", Action: Action{Type: "key_combo", Keys: []string{"KEY_FORWARD"}}},
			{Button: "BTN_FORWARD", Action: Action{Type: "key_combo", Keys: []string{"KEY_VOLUMEUP"}}},
			{Button: "BTN_BACK", Action: Action{Type: "key_combo", Keys: []string{"KEY_VOLUMEDOWN"}}},
		},
	}
}

// Path returns the default config location under the XDG config home.
func Path() string {
	return filepath.Join(xdg.ConfigHome, appName, configFileName)
}

// Load reads and decodes the config at path. A missing file surfaces as
// an fs.ErrNotExist so callers can fall back to defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes the config to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(c)
}

// Table validates the bindings and builds the immutable lookup table.
// Unknown buttons, unknown action types, empty payloads, unrecognized
// key names, and duplicate triggers are all rejected here so the capture
// core never sees an ambiguous table.
func (c *Config) Table() (binding.Table, error) {
	bindings := make([]binding.Binding, 0, len(c.Bindings))
	for i, b := range c.Bindings {
		btn, ok := binding.ParseButton(b.Button)
		if !ok {
			return nil, errorf("bindings[%d]: unknown button %q", i, b.Button)
		}
		act, err := b.Action.domain(i)
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, binding.Binding{Button: btn, Action: act})
	}
	table, err := binding.NewTable(bindings)
	if err != nil {
		return nil, errorf("%v", err)
	}
	return table, nil
}

func (a Action) domain(i int) (binding.Action, error) {
	switch a.Type {
	case "command":
		if len(a.Argv) == 0 {
			return binding.Action{}, errorf("bindings[%d]: command action needs a non-empty argv", i)
		}
		return binding.Command(a.Argv...), nil
	case "key_combo":
		if len(a.Keys) == 0 {
			return binding.Action{}, errorf("bindings[%d]: key_combo action needs at least one key", i)
		}
		for _, k := range a.Keys {
			if !binding.KnownKey(k) {
				return binding.Action{}, errorf("bindings[%d]: unknown key name %q", i, k)
			}
		}
		return binding.KeyCombo(a.Keys...), nil
	default:
		return binding.Action{}, errorf("bindings[%d]: unknown action type %q", i, a.Type)
	}
}
