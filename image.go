package dotswarm

import (
	"context"
	"fmt"
	"image"
	"os"

	// Decoders for the formats formation images commonly ship in.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ImageProvider supplies the decoded pixel buffer for a formation.
type ImageProvider interface {
	Image(ctx context.Context, index int, source string) (image.Image, error)
}

// ImageFunc adapts a plain function to ImageProvider.
type ImageFunc func(ctx context.Context, index int, source string) (image.Image, error)

// Image calls f.
func (f ImageFunc) Image(ctx context.Context, index int, source string) (image.Image, error) {
	return f(ctx, index, source)
}

// FileImageProvider decodes image files from disk (JPEG, PNG, BMP, WebP) and
// scales them bilinearly to Width x Height so every formation shares the
// canvas coordinate space. A zero Width or Height keeps the native size.
type FileImageProvider struct {
	Width, Height int
}

// Image loads the file named by source.
func (p FileImageProvider) Image(ctx context.Context, index int, source string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, err := LoadImage(source, p.Width, p.Height)
	if err != nil {
		return nil, &ResourceError{Formation: index, Source: source, Err: err}
	}
	return img, nil
}

// LoadImage decodes the image at path into an *image.NRGBA of size w x h.
func LoadImage(path string, w, h int) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return ScaleImage(src, w, h), nil
}

// ScaleImage draws src into a new w x h NRGBA buffer using bilinear
// filtering. A zero w or h copies src at its native size.
func ScaleImage(src image.Image, w, h int) *image.NRGBA {
	sb := src.Bounds()
	if w <= 0 || h <= 0 {
		dst := image.NewNRGBA(image.Rect(0, 0, sb.Dx(), sb.Dy()))
		draw.Draw(dst, dst.Bounds(), src, sb.Min, draw.Src)
		return dst
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, sb, draw.Over, nil)
	return dst
}
