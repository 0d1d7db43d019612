package uploads

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const maxImageLongEdgePx = 2560
const jpegQuality = 90

// optimizeImage re-encodes an uploaded image for the web: anything over
// the long-edge cap is scaled down, alpha images become PNG, everything
// else becomes JPEG. GIFs pass through untouched to keep animation.
func optimizeImage(data []byte, contentType string) ([]byte, string, string, error) {
	if contentType == "image/gif" {
		return data, "image/gif", ".gif", nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", "", ErrInvalidImage
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	longest := width
	if height > longest {
		longest = height
	}

	if longest > maxImageLongEdgePx {
		scale := float64(maxImageLongEdgePx) / float64(longest)
		dst := image.NewRGBA(image.Rect(0, 0, scaled(width, scale), scaled(height, scale)))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var out bytes.Buffer
	if hasAlpha(src) {
		if err := png.Encode(&out, src); err != nil {
			return nil, "", "", err
		}
		return out.Bytes(), "image/png", ".png", nil
	}

	if err := jpeg.Encode(&out, src, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, "", "", err
	}
	return out.Bytes(), "image/jpeg", ".jpg", nil
}

func scaled(dim int, scale float64) int {
	v := int(float64(dim)*scale + 0.5)
	if v < 1 {
		return 1
	}
	return v
}

func hasAlpha(img image.Image) bool {
	type opaquer interface{ Opaque() bool }
	if o, ok := img.(opaquer); ok {
		return !o.Opaque()
	}
	return false
}
