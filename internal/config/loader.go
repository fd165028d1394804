package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	pkgconfig "github.com/goran-ethernal/ChainActivity/pkg/config"
	"gopkg.in/yaml.v3"
)

// decoder decodes a whole document into cfg and rejects unknown keys.
type decoder func(data []byte, cfg *pkgconfig.Config) error

var decoders = map[string]decoder{
	".yaml": decodeYAML,
	".yml":  decodeYAML,
	".json": decodeJSON,
	".toml": decodeTOML,
}

// LoadFromFile loads configuration from a file, picking the format by extension
// (.yaml, .yml, .json or .toml). ${VAR} references are expanded from the environment
// before decoding, so secrets such as a postgres DSN can stay out of the file.
func LoadFromFile(path string) (*pkgconfig.Config, error) {
	ext := strings.ToLower(filepath.Ext(path))

	decode, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported config file format: %q (supported: %s)", ext, supportedFormats())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg pkgconfig.Config
	if err := decode([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s config %s: %w", strings.TrimPrefix(ext, "."), path, err)
	}

	return finalize(&cfg)
}

// LoadOrDefault loads the file at path, or returns the defaults when path is empty.
func LoadOrDefault(path string) (*pkgconfig.Config, error) {
	if path == "" {
		return finalize(&pkgconfig.Config{})
	}
	return LoadFromFile(path)
}

func decodeYAML(data []byte, cfg *pkgconfig.Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(cfg)
}

func decodeJSON(data []byte, cfg *pkgconfig.Config) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(cfg)
}

func decodeTOML(data []byte, cfg *pkgconfig.Config) error {
	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown field %q", undecoded[0].String())
	}
	return nil
}

func supportedFormats() string {
	exts := make([]string, 0, len(decoders))
	for ext := range decoders {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return strings.Join(exts, ", ")
}

func finalize(cfg *pkgconfig.Config) (*pkgconfig.Config, error) {
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
