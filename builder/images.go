package builder

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"image"
	"image/png"
	"os"

	_ "image/gif" // Register decoders
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// MaxImagePixels bounds the longer side of images embedded in documents.
// Catalog images are usually far larger than the boxes they are drawn into.
const MaxImagePixels = 256

// Image is a decoded raster image ready to be embedded, stored as PNG.
type Image struct {
	// Name identifies the image inside a document; equal names share one
	// embedded object.
	Name string
	// Width and Height are the pixel dimensions after downscaling.
	Width  int
	Height int
	// SrcWidth and SrcHeight are the dimensions of the decoded source.
	SrcWidth  int
	SrcHeight int
	Data      []byte
}

// LoadImage reads an image file in any registered format (PNG, JPEG, GIF,
// BMP, TIFF, WebP) and converts it for embedding.
func LoadImage(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	img, err := FromImage(src)
	if err != nil {
		return nil, fmt.Errorf("convert %s image %s: %w", format, path, err)
	}
	return img, nil
}

// FromImage converts a Go image, downscaling it so that its longer side does
// not exceed MaxImagePixels.
func FromImage(src image.Image) (*Image, error) {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("empty image %dx%d", w, h)
	}

	if w > MaxImagePixels || h > MaxImagePixels {
		if w >= h {
			h = max(1, h*MaxImagePixels/w)
			w = MaxImagePixels
		} else {
			w = max(1, w*MaxImagePixels/h)
			h = MaxImagePixels
		}
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, err
	}
	sum := sha1.Sum(buf.Bytes())
	return &Image{
		Name:      "img-" + hex.EncodeToString(sum[:8]),
		Width:     w,
		Height:    h,
		SrcWidth:  bounds.Dx(),
		SrcHeight: bounds.Dy(),
		Data:      buf.Bytes(),
	}, nil
}
