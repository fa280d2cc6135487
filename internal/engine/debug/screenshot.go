// Package debug provides debug capture utilities.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// SaveScreenshot writes raw RGBA framebuffer pixels to a timestamped
// PNG in dir. The rows are flipped vertically since OpenGL reads the
// framebuffer bottom-up. Returns the path of the written file.
func SaveScreenshot(dir string, pixels []byte, width, height int) (string, error) {
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	img := flipRows(pixels, width, height)

	name := fmt.Sprintf("screenshot_%s.png", time.Now().Format("2006-01-02_15-04-05"))
	path := filepath.Join(dir, name)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}

	return path, nil
}

func flipRows(pixels []byte, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}
	return img
}
