// Package document builds and prints the generated document.
package document

import (
	"encoding/json"
	"fmt"
	"io"
)

// Document is the generated document. It names exactly one controller.
type Document struct {
	Controller string `json:"controller"`
}

// New creates a Document controlled by controller.
func New(controller string) Document {
	return Document{Controller: controller}
}

// Write serializes doc as tab indented JSON followed by a newline.
func Write(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	return nil
}
