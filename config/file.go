package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked up in the working directory when --config is
// not given.
const DefaultConfigFile = ".matrix.yaml"

// FileConfig is the optional per-repository configuration file. Flags always
// win over file values; tokens are never read from the file.
type FileConfig struct {
	Org      string   `yaml:"org"`
	Registry string   `yaml:"registry"`
	Tag      string   `yaml:"tag"`
	Exclude  []string `yaml:"exclude"`
	Badge    struct {
		GistID   string `yaml:"gist_id"`
		GistFile string `yaml:"gist_file"`
		Label    string `yaml:"label"`
	} `yaml:"badge"`
}

// LoadFile reads a config file. A missing file at the default path is not an
// error; a missing file at an explicitly requested path is.
func LoadFile(path string) (*FileConfig, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return &FileConfig{}, nil
		}
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	cfg := &FileConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// Apply fills Global fields that flags left empty.
func (c *FileConfig) Apply() {
	if Global.Org == "" {
		Global.Org = c.Org
	}
	if Global.RegistryHost == "" {
		Global.RegistryHost = c.Registry
	}
	if Global.Resolve.Tag == "" {
		Global.Resolve.Tag = c.Tag
	}
	if len(Global.Resolve.Exclude) == 0 {
		Global.Resolve.Exclude = c.Exclude
	}
	if Global.Badge.GistID == "" {
		Global.Badge.GistID = c.Badge.GistID
	}
	if Global.Badge.GistFile == "" {
		Global.Badge.GistFile = c.Badge.GistFile
	}
	if Global.Badge.Label == "" {
		Global.Badge.Label = c.Badge.Label
	}
}
