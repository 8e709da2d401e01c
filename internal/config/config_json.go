// internal/config/json.go
package config

import (
	"encoding/json"
	"os"
	"time"
)

// FileConfig mirrors the optional JSON config file. Pointer fields
// distinguish "absent" from "set to zero value".
type FileConfig struct {
	Address         *string `json:"address"`
	CredentialsFile *string `json:"credentials_file"`
	ClientTimeout   *string `json:"client_timeout"` // "10s"
	OutputDir       *string `json:"output_dir"`
	ViewerAddress   *string `json:"viewer_address"`
}

// LoadFile reads a JSON config file from path.
func LoadFile(path string) (*FileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c FileConfig
	return &c, json.Unmarshal(b, &c)
}

// Apply copies file values into cfg for every setting the caller did not set
// explicitly. changed reports whether the named flag was given on the
// command line.
func (f *FileConfig) Apply(cfg *Config, changed func(name string) bool) {
	if f.Address != nil && !changed("address") {
		cfg.ServerAddr = *f.Address
	}
	if f.CredentialsFile != nil && !changed("credentials") {
		cfg.CredentialsFile = *f.CredentialsFile
	}
	if f.ClientTimeout != nil && !changed("timeout") {
		if sec, err := parseDurationSeconds(*f.ClientTimeout); err == nil {
			cfg.ClientTimeout = sec
		}
	}
	if f.OutputDir != nil && !changed("out") {
		cfg.OutputDir = *f.OutputDir
	}
	if f.ViewerAddress != nil && !changed("viewer") {
		cfg.ViewerAddr = *f.ViewerAddress
	}
}

func parseDurationSeconds(s string) (int, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	return int(d / time.Second), nil
}
