package dotswarm

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// Sample walks img on a regular grid of the given spacing, starting at the
// image's top-left pixel, and returns every grid point whose luminance is
// below threshold. Luminance is the integer mean of the 8-bit red, green and
// blue channels; alpha is ignored. The last row and column are only visited
// when they fall on the grid.
//
// Points are relative to img.Bounds().Min and come back in raster order.
// Sample has no side effects and is deterministic.
func Sample(img image.Image, spacing, threshold int) ([]Point, error) {
	if img == nil {
		return nil, &ResourceError{Formation: -1, Err: errors.New("no image")}
	}
	if spacing <= 0 {
		return nil, fmt.Errorf("sample: spacing %d: %w", spacing, ErrInvalidSpacing)
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, &ResourceError{Formation: -1, Err: fmt.Errorf("empty bounds %v", b)}
	}

	pts := make([]Point, 0, (b.Dx()/spacing+1)*(b.Dy()/spacing+1)/2)

	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := b.Min.Y; y < b.Max.Y; y += spacing {
			for x := b.Min.X; x < b.Max.X; x += spacing {
				i := nrgba.PixOffset(x, y)
				p := nrgba.Pix[i : i+3 : i+3]
				if luminance(p[0], p[1], p[2]) < threshold {
					pts = append(pts, Point{X: x - b.Min.X, Y: y - b.Min.Y})
				}
			}
		}
		return pts, nil
	}

	for y := b.Min.Y; y < b.Max.Y; y += spacing {
		for x := b.Min.X; x < b.Max.X; x += spacing {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if luminance(c.R, c.G, c.B) < threshold {
				pts = append(pts, Point{X: x - b.Min.X, Y: y - b.Min.Y})
			}
		}
	}
	return pts, nil
}

func luminance(r, g, b uint8) int {
	return (int(r) + int(g) + int(b)) / 3
}
