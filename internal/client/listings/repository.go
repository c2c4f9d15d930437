// Package listings is the client-side facade over the marketplace listing
// operations. The server owns the data; the repository keeps only a cache of
// the last fetch and refreshes it after every successful mutation instead of
// patching entries locally. That trades a round-trip for correctness, which
// is cheap here: listing volumes are small and mutations are user-initiated.
package listings

import (
	"context"
	"sync"

	"github.com/buffsmarket/marketcli/internal/client/graphql"
	"github.com/buffsmarket/marketcli/internal/client/models"
	"github.com/buffsmarket/marketcli/internal/common"
)

const listingFields = `
        id
        title
        description
        price
        sold
        dateListed
        user { id username }
        images { id imageUrl }`

const listQuery = `
    query($search: String, $includeSold: Boolean) {
      listings(search: $search, includeSold: $includeSold) {` + listingFields + `
      }
    }`

const myListingsQuery = `
    query($includeSold: Boolean) {
      myListings(includeSold: $includeSold) {` + listingFields + `
      }
    }`

const createMutation = `
    mutation($title: String!, $description: String!, $price: Decimal!, $imageUrls: [String!]) {
      createListing(title: $title, description: $description, price: $price, imageUrls: $imageUrls) {
        success
        message
        listing {
          id title description price sold
          images { id imageUrl }
        }
      }
    }`

const setSoldMutation = `
    mutation($id: ID!, $sold: Boolean!) {
      setListingSold(id: $id, sold: $sold) {
        success
        message
        listing { id sold }
      }
    }`

const addRemoveImagesMutation = `
    mutation($id: ID!, $add: [String!], $remove: [Int!]) {
      updateListing(id: $id, addImageUrls: $add, removeImageIds: $remove) {
        success
        message
        listing { id images { id imageUrl } }
      }
    }`

const deleteImageMutation = `
    mutation($imageId: ID!) {
      deleteListingImage(imageId: $imageId)
    }`

// Uploader transfers pending files and returns their public URLs in input
// order. Satisfied by *upload.Uploader.
type Uploader interface {
	UploadAll(ctx context.Context, files []*models.PendingUpload) ([]string, error)
}

// Repository issues the listing operations and caches the last fetched page.
type Repository struct {
	gql      graphql.Executor
	uploader Uploader

	mu    sync.RWMutex
	cache []models.Listing
}

func New(gql graphql.Executor, uploader Uploader) *Repository {
	return &Repository{gql: gql, uploader: uploader}
}

type listingPayload struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Listing *models.Listing `json:"listing"`
}

func (p listingPayload) domainErr(fallback string) error {
	msg := p.Message
	if msg == "" {
		msg = fallback
	}
	return &common.DomainError{Message: msg}
}

// List fetches listings matching search (empty = all) and the sold filter.
// Filtering and ordering are server-side; the result is trusted as given and
// becomes the new cache.
func (r *Repository) List(ctx context.Context, search string, includeSold bool) ([]models.Listing, error) {
	vars := map[string]any{"includeSold": includeSold}
	if search != "" {
		vars["search"] = search
	} else {
		vars["search"] = nil
	}

	var out struct {
		Listings []models.Listing `json:"listings"`
	}
	if err := r.gql.Execute(ctx, listQuery, vars, &out); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.cache = out.Listings
	r.mu.Unlock()
	return out.Listings, nil
}

// Mine fetches the authenticated user's own listings. The shared cache is
// left alone: this is a different view of the data.
func (r *Repository) Mine(ctx context.Context, includeSold bool) ([]models.Listing, error) {
	var out struct {
		MyListings []models.Listing `json:"myListings"`
	}
	err := r.gql.Execute(ctx, myListingsQuery, map[string]any{"includeSold": includeSold}, &out)
	if err != nil {
		return nil, err
	}
	return out.MyListings, nil
}

// Create uploads all images first, in selection order, then issues the
// create mutation carrying the resulting public URLs. A failed upload aborts
// the whole action before the mutation; success=false from the server
// becomes a DomainError and changes no local state.
func (r *Repository) Create(ctx context.Context, title, description, price string, images []*models.PendingUpload) (*models.Listing, error) {
	urls := []string{}
	if len(images) > 0 {
		var err error
		urls, err = r.uploader.UploadAll(ctx, images)
		if err != nil {
			return nil, err
		}
	}

	var out struct {
		CreateListing listingPayload `json:"createListing"`
	}
	vars := map[string]any{
		"title":       title,
		"description": description,
		"price":       price,
		"imageUrls":   urls,
	}
	if err := r.gql.Execute(ctx, createMutation, vars, &out); err != nil {
		return nil, err
	}
	if !out.CreateListing.Success {
		return nil, out.CreateListing.domainErr("Create failed")
	}
	return out.CreateListing.Listing, nil
}

// SetSold toggles the sold flag. Callers re-List afterwards; the cache is
// deliberately not patched in place.
func (r *Repository) SetSold(ctx context.Context, id string, sold bool) error {
	var out struct {
		SetListingSold listingPayload `json:"setListingSold"`
	}
	if err := r.gql.Execute(ctx, setSoldMutation, map[string]any{"id": id, "sold": sold}, &out); err != nil {
		return err
	}
	if !out.SetListingSold.Success {
		return out.SetListingSold.domainErr("Failed to update listing")
	}
	return nil
}

// AddImages uploads the files and attaches the resulting URLs to the
// listing. Refresh required after.
func (r *Repository) AddImages(ctx context.Context, id string, images []*models.PendingUpload) error {
	urls, err := r.uploader.UploadAll(ctx, images)
	if err != nil {
		return err
	}

	var out struct {
		UpdateListing listingPayload `json:"updateListing"`
	}
	vars := map[string]any{"id": id, "add": urls, "remove": []int{}}
	if err := r.gql.Execute(ctx, addRemoveImagesMutation, vars, &out); err != nil {
		return err
	}
	if !out.UpdateListing.Success {
		return out.UpdateListing.domainErr("Failed to add images")
	}
	return nil
}

// RemoveImage deletes one image by its id. Refresh required after.
func (r *Repository) RemoveImage(ctx context.Context, imageID string) error {
	var out struct {
		DeleteListingImage bool `json:"deleteListingImage"`
	}
	if err := r.gql.Execute(ctx, deleteImageMutation, map[string]any{"imageId": imageID}, &out); err != nil {
		return err
	}
	// The mutation answers a bare boolean; false covers both "not found"
	// and "not yours" without a message.
	if !out.DeleteListingImage {
		return &common.DomainError{Message: "Image could not be removed"}
	}
	return nil
}

// Cached returns the listings from the most recent List call.
func (r *Repository) Cached() []models.Listing {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cache
}

// Reset drops the cache. Called on logout and on session invalidation so no
// stale data outlives the session that fetched it.
func (r *Repository) Reset() {
	r.mu.Lock()
	r.cache = nil
	r.mu.Unlock()
}
