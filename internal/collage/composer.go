package collage

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"collageserver/internal/config"
	"collageserver/internal/logger"
	"collageserver/internal/model"
)

// Background is the canvas fill color. Cells whose source cannot be decoded
// are left in this color.
var Background = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// Composer renders ordered image sets onto a fixed-size canvas.
type Composer struct {
	width  int
	height int
	logger *logger.Logger
}

func NewComposer(cfg *config.Config, logger *logger.Logger) *Composer {
	return &Composer{
		width:  cfg.CanvasWidth,
		height: cfg.CanvasHeight,
		logger: logger,
	}
}

// Compose renders the given images, in order, into the layout chosen by their
// count and returns the finished canvas plus the ids actually placed. An
// image that fails to decode leaves its cell background-colored; one bad
// file never aborts the whole collage.
func (c *Composer) Compose(images []model.UploadedImage) (*image.NRGBA, []string) {
	canvas := imaging.New(c.width, c.height, Background)
	rects := Plan(c.width, c.height, len(images))

	placed := make([]string, 0, len(images))
	for i, img := range images {
		if i >= len(rects) {
			break
		}
		rect := rects[i]

		src, err := imaging.Open(img.FilePath)
		if err != nil {
			c.logger.Warning("Skipping unreadable image %s: %v", img.ID, err)
			continue
		}

		// Scale-and-crop to exactly fill the cell, center-cropping any
		// overflow. No letterboxing inside a cell.
		fitted := imaging.Fill(src, rect.Dx(), rect.Dy(), imaging.Center, imaging.Lanczos)
		canvas = imaging.Paste(canvas, fitted, rect.Min)
		placed = append(placed, img.ID)
	}

	return canvas, placed
}
