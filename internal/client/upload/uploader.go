// Package upload transfers listing images to cloud storage through signed
// URLs: the backend pre-authorizes a write-once destination, the client PUTs
// the raw bytes straight there.
package upload

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/buffsmarket/marketcli/internal/client/graphql"
	"github.com/buffsmarket/marketcli/internal/client/models"
)

const uploadURLMutation = `
mutation($filename: String!, $ct: String!) {
  generateListingImageUploadUrl(filename: $filename, contentType: $ct) {
    signedUrl
    publicUrl
  }
}`

// Error reports a non-success HTTP status from the binary transfer itself.
// Signed-URL request failures propagate as graphql errors instead.
type Error struct {
	StatusCode int
	Status     string
}

func (e *Error) Error() string {
	return fmt.Sprintf("upload failed: %s", e.Status)
}

// Uploader performs the two-step image upload.
type Uploader struct {
	gql  graphql.Executor
	http *http.Client
}

func New(gql graphql.Executor) *Uploader {
	return &Uploader{gql: gql, http: &http.Client{}}
}

// Upload requests a signed destination for the file, PUTs the bytes to it
// with the file's content type, and returns the stable public URL.
func (u *Uploader) Upload(ctx context.Context, file *models.PendingUpload) (string, error) {
	ct := file.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}

	var out struct {
		GenerateListingImageUploadURL struct {
			SignedURL string `json:"signedUrl"`
			PublicURL string `json:"publicUrl"`
		} `json:"generateListingImageUploadUrl"`
	}
	err := u.gql.Execute(ctx, uploadURLMutation, map[string]any{"filename": file.Name, "ct": ct}, &out)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		out.GenerateListingImageUploadURL.SignedURL, bytes.NewReader(file.Bytes))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", ct)

	resp, err := u.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &Error{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	return out.GenerateListingImageUploadURL.PublicURL, nil
}

// UploadAll uploads files one by one in the given order and returns their
// public URLs in the same order. The first failure aborts the rest of the
// batch; already uploaded files are not rolled back.
func (u *Uploader) UploadAll(ctx context.Context, files []*models.PendingUpload) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, f := range files {
		url, err := u.Upload(ctx, f)
		if err != nil {
			return nil, fmt.Errorf("uploading %s: %w", f.Name, err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}
