package image

import (
	"bytes"
	"fmt"
	stdimage "image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/bbrks/go-blurhash"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/zenith-gallery/core/internal/models"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	// desktopMinWidth is the narrowest image classified as desktop.
	desktopMinWidth = 768
	blurHashSize    = 64
	jpegQuality     = 90
)

// DeviceClass classifies an image by its width.
func DeviceClass(width int) string {
	if width >= desktopMinWidth {
		return models.TipoDesktop
	}
	return models.TipoMobile
}

// StorageKey returns a unique file name keeping the upload's extension.
// Without a usable extension the decoded format is used.
func StorageKey(originalName, format string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(originalName))
	if safeKey("x"+ext) == "" || len(ext) < 2 {
		ext = "." + formatExtension(format)
	}
	return id + ext, nil
}

// ShortID is the first quarter of an image id, used in download names.
func ShortID(id string) string {
	return id[:len(id)/4]
}

// OriginalFilename is the attachment name of an untouched download.
func OriginalFilename(id, ext string) string {
	return fmt.Sprintf("zenith_%s_HD.%s", ShortID(id), ext)
}

// ResizedFilename is the attachment name of a half-size download.
func ResizedFilename(id, ext string) string {
	return fmt.Sprintf("zenith_%s.%s", ShortID(id), ext)
}

// Resized is a re-encoded image.
type Resized struct {
	Data        []byte
	Width       int
	Height      int
	Ext         string
	ContentType string
}

// HalveImage scales both dimensions by one half (floor, at least 1px) with
// bilinear interpolation. PNG stays PNG, everything else becomes JPEG.
func HalveImage(data []byte) (*Resized, error) {
	src, format, err := stdimage.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	b := src.Bounds()
	w, h := max(b.Dx()/2, 1), max(b.Dy()/2, 1)

	dst := stdimage.NewRGBA(stdimage.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)

	var buf bytes.Buffer
	out := &Resized{Width: w, Height: h}
	if format == "png" {
		err = png.Encode(&buf, dst)
		out.Ext, out.ContentType = "png", "image/png"
	} else {
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality})
		out.Ext, out.ContentType = "jpg", "image/jpeg"
	}
	if err != nil {
		return nil, fmt.Errorf("encode resized image: %w", err)
	}
	out.Data = buf.Bytes()
	return out, nil
}

// ComputeBlurHash returns a 4x3 component BlurHash of a small thumbnail.
func ComputeBlurHash(data []byte) (string, error) {
	img, _, err := stdimage.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	hash, err := blurhash.Encode(4, 3, thumbnail(img))
	if err != nil {
		return "", fmt.Errorf("encode blurhash: %w", err)
	}
	return hash, nil
}

func thumbnail(img stdimage.Image) stdimage.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= blurHashSize && h <= blurHashSize {
		return img
	}
	if w > h {
		h, w = max(h*blurHashSize/w, 1), blurHashSize
	} else {
		w, h = max(w*blurHashSize/h, 1), blurHashSize
	}
	dst := stdimage.NewRGBA(stdimage.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

func formatExtension(format string) string {
	switch format {
	case "jpeg", "":
		return "jpg"
	default:
		return format
	}
}

func contentTypeFor(ext string) string {
	switch strings.TrimPrefix(strings.ToLower(ext), ".") {
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
