// Package seed decodes the fixed dataset a store is initialized with at
// process start. Datasets use the JSON entity representation and may also be
// written as YAML with the same field names.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"

	"fpoconsole/internal/blob"
	"fpoconsole/pkg/domain"

	"gopkg.in/yaml.v3"
)

//go:embed data/default.json
var defaultDataset []byte

// DefaultKey names the dataset read from a blob store when none is configured.
const DefaultKey = "seeds/default.json"

// Format is a dataset encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor infers the encoding from a key's extension, falling back to the
// content type and then to JSON.
func FormatFor(key, contentType string) Format {
	switch strings.ToLower(path.Ext(key)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	}
	if strings.Contains(contentType, "yaml") {
		return FormatYAML
	}
	return FormatJSON
}

// Default decodes the dataset compiled into the binary.
func Default() (domain.Snapshot, error) {
	return Decode(defaultDataset, FormatJSON)
}

// Decode parses a dataset. Unknown fields are rejected so typos in
// hand-written datasets surface instead of silently zeroing a field.
func Decode(data []byte, format Format) (domain.Snapshot, error) {
	if format == FormatYAML {
		converted, err := yamlToJSON(data)
		if err != nil {
			return domain.Snapshot{}, err
		}
		data = converted
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var snap domain.Snapshot
	if err := dec.Decode(&snap); err != nil {
		return domain.Snapshot{}, fmt.Errorf("decode %s dataset: %w", format, err)
	}
	return snap, nil
}

// yamlToJSON re-encodes a YAML document as JSON so both encodings share the
// entity JSON decoders.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode yaml dataset: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("convert yaml dataset: %w", err)
	}
	return out, nil
}

// Load reads and decodes the dataset stored at key.
func Load(ctx context.Context, store blob.Store, key string) (domain.Snapshot, error) {
	if key == "" {
		key = DefaultKey
	}
	info, rc, err := store.Get(ctx, key)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("open dataset %s: %w", key, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("read dataset %s: %w", key, err)
	}
	return Decode(data, FormatFor(key, info.ContentType))
}

// Encode writes snap as indented JSON, the format Default and Load accept.
func Encode(w io.Writer, snap domain.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}
