package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// File is the on-disk layout of an anchor configuration.
//
//	anchor:
//	  base_size: 16
//	  ratios: [0.5, 1, 2]
//	  scales: [8, 16, 32]
//	dense: false
//	fpn:
//	  "32": {base_size: 16, ratios: [1], scales: [32, 16], allowed_border: 9999}
type File struct {
	Anchor AnchorParams            `json:"anchor" yaml:"anchor" toml:"anchor"`
	Dense  bool                    `json:"dense" yaml:"dense" toml:"dense"`
	FPN    map[string]AnchorConfig `json:"fpn" yaml:"fpn" toml:"fpn"`
}

// DefaultFile returns a File populated with DefaultAnchorParams and DefaultFPNAnchorConfig.
func DefaultFile() *File {
	return &File{
		Anchor: DefaultAnchorParams(),
		FPN:    DefaultFPNAnchorConfig(),
	}
}

// FormatFromPath picks the decoder from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.Errorf("unsupported config extension %q", filepath.Ext(path))
	}
}

// LoadFile reads and decodes the configuration at path.
func LoadFile(path string) (*File, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open config")
	}
	defer f.Close()

	return Decode(f, format)
}

// Decode reads a configuration from r. Fields absent from the input keep
// their default values; a present but empty list is kept empty.
func Decode(r io.Reader, format Format) (*File, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}

	cfg := &File{Anchor: DefaultAnchorParams()}
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(content, cfg)
	case FormatTOML:
		_, err = toml.Decode(string(content), cfg)
	default:
		return nil, errors.Errorf("unsupported config format %q", format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s config", format)
	}

	if cfg.FPN == nil {
		cfg.FPN = DefaultFPNAnchorConfig()
	}
	return cfg, nil
}
