package models

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
)

// PendingUpload is a locally selected file between selection and a completed
// upload. It is transient and never persisted: discarded after a successful
// upload or on cancel.
type PendingUpload struct {
	Name        string
	ContentType string
	Bytes       []byte
}

// ReadPendingUpload loads a local file into a PendingUpload. The content
// type is guessed from the extension; unknown types fall back to
// application/octet-stream, matching what the upload endpoint expects.
func ReadPendingUpload(path string) (*PendingUpload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	ct := mime.TypeByExtension(filepath.Ext(path))
	if ct == "" {
		ct = "application/octet-stream"
	}

	return &PendingUpload{
		Name:        filepath.Base(path),
		ContentType: ct,
		Bytes:       data,
	}, nil
}
