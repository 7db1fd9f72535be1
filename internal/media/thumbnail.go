package media

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
)

const (
	thumbMaxSize = 256
	webpQuality  = 70
)

// writeThumbnail scales the image down to fit thumbMaxSize and stores it
// as webp. Images already within bounds are re-encoded as is.
func (s *Storage) writeThumbnail(name string, img image.Image) error {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if width > thumbMaxSize || height > thumbMaxSize {
		scale := float64(thumbMaxSize) / float64(width)
		if height > width {
			scale = float64(thumbMaxSize) / float64(height)
		}
		dst := image.NewRGBA(image.Rect(0, 0,
			int(float64(width)*scale), int(float64(height)*scale)))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Over, nil)
		img = dst
	}

	out, err := os.Create(filepath.Join(s.root, ThumbSubdir, name+".webp"))
	if err != nil {
		return fmt.Errorf("failed to create thumbnail file: %w", err)
	}
	defer out.Close()

	if err := webp.Encode(out, img, &webp.Options{Quality: webpQuality}); err != nil {
		return fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return nil
}
