package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Document is the runtime configuration document: an arbitrary JSON object
// whose contents the store never inspects. Validation of the settings
// themselves is the responsibility of the editing surface, not this package.
type Document map[string]any

// VersionInfo is metadata about the stored document. Only the database
// backend tracks it; the file backend's state is the file itself.
type VersionInfo struct {
	Version   int64     `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
	UpdatedBy string    `json:"updated_by"`
}

// EncodeDocument serializes a document to its canonical textual form:
// four-space indented JSON with sorted keys and a trailing newline. The
// output is deterministic, so writing the same document twice produces
// byte-identical files and downstream change detection does not fire
// spuriously.
func EncodeDocument(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeDocument parses a serialized document. The top level must be a
// JSON object.
func DecodeDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}
