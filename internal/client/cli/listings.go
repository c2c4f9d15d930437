package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/buffsmarket/marketcli/internal/client/models"
)

// getMultiline and getFilePaths are test seams, same as getSimpleText.
var getMultiline = GetMultiline
var getFilePaths = GetFilePaths

// renderListing formats one listing for terminal output.
func renderListing(l models.Listing) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%s %s", l.ID, l.Title)
	if l.Sold {
		b.WriteString(" [SOLD]")
	}
	fmt.Fprintf(&b, "  %s  by %s, listed %s", l.FormattedPrice(), l.Owner.Username, l.DateListed.Format("02 Jan 2006"))
	if len(l.Images) > 0 {
		fmt.Fprintf(&b, "  (%d image(s))", len(l.Images))
	}
	return b.String()
}

func (a *App) printListings(items []models.Listing) {
	if len(items) == 0 {
		printlnFn("No listings found.")
		return
	}
	for _, l := range items {
		printlnFn(renderListing(l))
	}
}

// List fetches and prints available listings, filtered by the optional
// search text. An empty search shows everything.
func (a *App) List(ctx context.Context, search string) error {
	items, err := a.listings.List(ctx, search, a.includeSold)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	a.printListings(items)
	return nil
}

// Mine prints the current user's own listings, sold ones included.
func (a *App) Mine(ctx context.Context) error {
	items, err := a.listings.Mine(ctx, true)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	a.printListings(items)
	return nil
}

// Create walks the user through the listing form, uploads any images and
// creates the listing.
func (a *App) Create(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		return err
	}
	description, err := getMultiline(a.reader, "Description", os.Stdout)
	if err != nil {
		return err
	}
	price, err := getSimpleText(a.reader, "Price (e.g. 25.00)", os.Stdout)
	if err != nil {
		return err
	}
	paths, err := getFilePaths(a.reader, os.Stdout)
	if err != nil {
		return err
	}

	images := make([]*models.PendingUpload, 0, len(paths))
	for _, p := range paths {
		img, err := models.ReadPendingUpload(p)
		if err != nil {
			printlnFn("Cannot read "+p+":", err.Error())
			return err
		}
		images = append(images, img)
	}

	created, err := a.listings.Create(ctx, title, description, price, images)
	if err != nil {
		printlnFn("Create failed:", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Created listing #%s (%s, %s)", created.ID, created.Title, created.FormattedPrice()))
	a.refresh(ctx)
	return nil
}

// SetSold marks a listing sold or available again.
func (a *App) SetSold(ctx context.Context, id string, sold bool) error {
	if err := a.listings.SetSold(ctx, id, sold); err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	if sold {
		printlnFn("Listing #" + id + " marked sold.")
	} else {
		printlnFn("Listing #" + id + " is available again.")
	}
	a.refresh(ctx)
	return nil
}

// AddImages prompts for image file paths and attaches them to a listing.
func (a *App) AddImages(ctx context.Context, id string) error {
	paths, err := getFilePaths(a.reader, os.Stdout)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		printlnFn("No files given.")
		return nil
	}

	images := make([]*models.PendingUpload, 0, len(paths))
	for _, p := range paths {
		img, err := models.ReadPendingUpload(p)
		if err != nil {
			printlnFn("Cannot read "+p+":", err.Error())
			return err
		}
		images = append(images, img)
	}

	if err := a.listings.AddImages(ctx, id, images); err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Added %d image(s) to listing #%s.", len(images), id))
	a.refresh(ctx)
	return nil
}

// RemoveImage deletes one listing image by its image ID.
func (a *App) RemoveImage(ctx context.Context, imageID string) error {
	if err := a.listings.RemoveImage(ctx, imageID); err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	printlnFn("Image removed.")
	a.refresh(ctx)
	return nil
}

// ToggleSoldFilter flips whether sold listings are shown by list/search.
func (a *App) ToggleSoldFilter() error {
	a.includeSold = !a.includeSold
	if a.includeSold {
		printlnFn("Sold listings are now shown.")
	} else {
		printlnFn("Sold listings are now hidden.")
	}
	return nil
}

// refresh re-fetches the listing overview after a mutation so the local
// cache reflects the server state. Failures are logged, not surfaced: the
// mutation itself already succeeded.
func (a *App) refresh(ctx context.Context) {
	if _, err := a.listings.List(ctx, "", a.includeSold); err != nil {
		a.log.Warn(ctx, "refreshing listings", "error", err)
	}
}
