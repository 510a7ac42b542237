package policy

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// document is the on-disk catalogue format, versioned alongside schema
// migrations.
type document struct {
	Version  int      `yaml:"version"`
	Policies []Policy `yaml:"policies"`
}

const documentVersion = 1

// Parse reads a YAML catalogue document and registers every policy it
// declares. Unknown fields are rejected; a typo in an isolation declaration
// must not silently produce a weaker policy.
func Parse(data []byte) (*Catalogue, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("policy: empty catalogue document")
		}
		return nil, fmt.Errorf("policy: parse catalogue: %w", err)
	}
	if doc.Version != documentVersion {
		return nil, fmt.Errorf("policy: unsupported catalogue version %d", doc.Version)
	}

	c := NewCatalogue()
	for _, p := range doc.Policies {
		if err := c.Register(p); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// LoadFile reads and parses a catalogue document from disk.
func LoadFile(path string) (*Catalogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("policy: read catalogue: %w", err)
	}
	return Parse(data)
}
