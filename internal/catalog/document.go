package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Document is the catalog artifact: one entry per event, keyed by event
// name. Under the best-effort policy a failed event holds a FailureNote in
// place of its summary record.
type Document struct {
	Events map[string]any `json:"events"`
}

// NewDocument allocates an empty Document.
func NewDocument() *Document {
	return &Document{Events: make(map[string]any)}
}

// FailureNote records a per-event pipeline failure in the document.
type FailureNote struct {
	CommonName string `json:"commonName"`
	Error      string `json:"error"`
}

// Write serializes the document as indented JSON at path, creating parent
// directories as needed.
func (d *Document) Write(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog document: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write catalog document: %w", err)
	}
	return nil
}
