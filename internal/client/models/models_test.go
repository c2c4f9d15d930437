package models

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserProfile_DisplayName(t *testing.T) {
	u := UserProfile{Username: "ralphie", FirstName: "Ralphie"}
	assert.Equal(t, "Ralphie", u.DisplayName())

	u.FirstName = ""
	assert.Equal(t, "ralphie", u.DisplayName())
}

func TestListing_UnmarshalWireShape(t *testing.T) {
	// Shape as returned by the listings query.
	raw := `{
		"id": "7",
		"title": "Desk chair",
		"description": "Barely used",
		"price": "25.50",
		"sold": false,
		"dateListed": "2024-09-12T18:04:05+00:00",
		"user": {"id": "3", "username": "ralphie"},
		"images": [{"id": "11", "imageUrl": "https://storage.example/img.png"}]
	}`

	var l Listing
	require.NoError(t, json.Unmarshal([]byte(raw), &l))

	assert.Equal(t, "7", l.ID)
	assert.Equal(t, "25.50", l.Price)
	assert.Equal(t, "ralphie", l.Owner.Username)
	require.Len(t, l.Images, 1)
	assert.Equal(t, "11", l.Images[0].ID)
	assert.Equal(t, 2024, l.DateListed.Year())
}

func TestListing_FormattedPrice(t *testing.T) {
	assert.Equal(t, "$25.50", Listing{Price: "25.5"}.FormattedPrice())
	assert.Equal(t, "$0.00", Listing{Price: "0"}.FormattedPrice())
	assert.Equal(t, "$free", Listing{Price: "free"}.FormattedPrice())
}

func TestReadPendingUpload(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "photo.png")
	require.NoError(t, os.WriteFile(path, []byte{0x89, 'P', 'N', 'G'}, 0o644))

	f, err := ReadPendingUpload(path)
	require.NoError(t, err)
	assert.Equal(t, "photo.png", f.Name)
	assert.Equal(t, "image/png", f.ContentType)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, f.Bytes)
}

func TestReadPendingUpload_UnknownExtensionFallsBack(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "blob.zzz9")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	f, err := ReadPendingUpload(path)
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", f.ContentType)
}

func TestReadPendingUpload_MissingFile(t *testing.T) {
	_, err := ReadPendingUpload(filepath.Join(t.TempDir(), "nope.png"))
	require.Error(t, err)
}
