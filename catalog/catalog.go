// Package catalog resolves product thumbnails to files in a media
// directory.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrNotFound is returned when a product has no thumbnail or its file is
// missing.
var ErrNotFound = errors.New("catalog: thumbnail not found")

// ProductImageDir is the media subdirectory holding product images.
const ProductImageDir = "catalog/product"

// Resolver maps product ids to thumbnail files below a media directory.
type Resolver struct {
	mediaDir string

	mu     sync.RWMutex
	thumbs map[string]string
}

// NewResolver returns a resolver for mediaDir with the given product id to
// thumbnail path index. Thumbnail paths are relative to ProductImageDir.
func NewResolver(mediaDir string, thumbnails map[string]string) *Resolver {
	r := &Resolver{mediaDir: mediaDir, thumbs: make(map[string]string, len(thumbnails))}
	for id, p := range thumbnails {
		r.thumbs[id] = p
	}
	return r
}

// LoadIndex reads a JSON object mapping product ids to thumbnail paths.
func LoadIndex(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read index: %w", err)
	}
	var index map[string]string
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("catalog: parse index %s: %w", path, err)
	}
	return index, nil
}

// SetThumbnail sets or, with an empty path, removes the thumbnail of a
// product.
func (r *Resolver) SetThumbnail(productID, path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if path == "" {
		delete(r.thumbs, productID)
		return
	}
	r.thumbs[productID] = path
}

// Resolve returns the absolute thumbnail path of a product.
func (r *Resolver) Resolve(ctx context.Context, productID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.mu.RLock()
	thumb, ok := r.thumbs[productID]
	r.mu.RUnlock()
	if !ok || thumb == "" || thumb == "no_selection" {
		return "", fmt.Errorf("%w: product %s", ErrNotFound, productID)
	}
	rel := filepath.Clean("/" + strings.TrimLeft(filepath.ToSlash(thumb), "/"))
	path := filepath.Join(r.mediaDir, ProductImageDir, filepath.FromSlash(rel))
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", fmt.Errorf("catalog: stat thumbnail: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrNotFound, path)
	}
	return path, nil
}
