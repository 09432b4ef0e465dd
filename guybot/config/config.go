package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	log "github.com/sirupsen/logrus"
)

// DefaultSetupFile is where the setup file is looked for when no
// other path is given. Relative to the working directory.
const DefaultSetupFile = "config/setup.json"

// JsonConfig holds the raw bytes of a JSON config file
// so that other components can unmarshal it as desired.
type JsonConfig struct {
	Path string
	Raw  []byte
}

// NewJsonConfig reads the JSON file at path. The contents must be
// a JSON object. A missing file is reported with an error matching
// fs.ErrNotExist.
func NewJsonConfig(path string) (*JsonConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("%s is not a JSON object: %w", path, err)
	}
	return &JsonConfig{Path: path, Raw: raw}, nil
}

// Unmarshal decodes the config into v.
func (c *JsonConfig) Unmarshal(v any) error {
	if err := json.Unmarshal(c.Raw, v); err != nil {
		return fmt.Errorf("could not decode %s: %w", c.Path, err)
	}
	return nil
}

type StatusServer struct {
	Enabled bool   `json:"enabled"`
	Address string `json:"address"`
}

// Setup is the process-wide setup file.
type Setup struct {
	DefaultLogLevel string       `json:"default-log-level"`
	ListeningStatus string       `json:"listening-status"`
	StatusServer    StatusServer `json:"status-server"`
}

// Defaults returns the setup used when no setup file exists.
func Defaults() Setup {
	return Setup{
		DefaultLogLevel: "info",
		ListeningStatus: "!guyhelp",
		StatusServer: StatusServer{
			Enabled: false,
			Address: "localhost:6060",
		},
	}
}

// LoadSetup reads the setup file at path over the defaults. Fields
// absent from the file keep their default values. A missing file is
// not an error.
func LoadSetup(path string) (Setup, error) {
	setup := Defaults()
	cfg, err := NewJsonConfig(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debugf("No setup file at %s, using defaults", path)
		return setup, nil
	}
	if err != nil {
		return setup, err
	}
	if err := cfg.Unmarshal(&setup); err != nil {
		return setup, err
	}
	return setup, nil
}
