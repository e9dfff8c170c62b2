package plugin

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseManifest decodes a YAML metadata manifest. Unknown fields are
// rejected, and the decoded record must validate.
func ParseManifest(data []byte) (Metadata, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	var meta Metadata
	if err := decoder.Decode(&meta); err != nil {
		return Metadata{}, fmt.Errorf("decode plugin manifest: %w", err)
	}
	if err := meta.Validate(); err != nil {
		return Metadata{}, err
	}
	return meta, nil
}

// LoadManifest reads and parses a manifest file.
func LoadManifest(path string) (Metadata, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("read plugin manifest: %w", err)
	}
	return ParseManifest(b)
}

// EncodeManifest renders a validated metadata record as manifest YAML.
func EncodeManifest(meta Metadata) ([]byte, error) {
	if err := meta.Validate(); err != nil {
		return nil, err
	}
	b, err := yaml.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("encode plugin manifest: %w", err)
	}
	return b, nil
}
