package game

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"

	"github.com/ncruces/zenity"
)

// saveSnapshot asks where to save the current canvas and writes it as PNG.
// Cancelling the dialog is not an error.
func (g *Game) saveSnapshot() error {
	img := g.captureCanvas()

	path, err := zenity.SelectFileSave(
		zenity.Title("Save dot field snapshot"),
		zenity.Filename("dotfield.png"),
		zenity.ConfirmOverwrite(),
		zenity.FileFilters{{
			Name:     "PNG image",
			Patterns: []string{"*.png"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return fmt.Errorf("save dialog: %w", err)
	}
	if err := writePNG(path, img); err != nil {
		return err
	}
	log.Printf("game: snapshot saved to %s", path)
	return nil
}

func (g *Game) captureCanvas() *image.RGBA {
	b := g.canvas.img.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	g.canvas.img.ReadPixels(img.Pix)
	return img
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	return nil
}

// reportError surfaces a failure to a user who may not be watching the log.
func reportError(err error) {
	if dlgErr := zenity.Error(err.Error(), zenity.Title("dotfield")); dlgErr != nil {
		log.Printf("game: error dialog failed: %v", dlgErr)
	}
}
