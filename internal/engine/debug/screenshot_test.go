package debug

import (
	"image/color"
	"image/png"
	"os"
	"testing"
)

func TestFlipRows(t *testing.T) {
	// 1x2 image: bottom row red, top row blue (GL order).
	pixels := []byte{
		255, 0, 0, 255, // framebuffer row 0 = bottom
		0, 0, 255, 255, // framebuffer row 1 = top
	}
	img := flipRows(pixels, 1, 2)

	if got := img.RGBAAt(0, 0); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("top pixel = %v, want blue", got)
	}
	if got := img.RGBAAt(0, 1); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("bottom pixel = %v, want red", got)
	}
}

func TestSaveScreenshot(t *testing.T) {
	dir := t.TempDir()
	pixels := make([]byte, 4*4*4)

	path, err := SaveScreenshot(dir, pixels, 4, 4)
	if err != nil {
		t.Fatalf("SaveScreenshot failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening screenshot: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding screenshot: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 4 {
		t.Errorf("bounds = %v, want 4x4", img.Bounds())
	}
}

func TestSaveScreenshot_SizeMismatch(t *testing.T) {
	if _, err := SaveScreenshot(t.TempDir(), make([]byte, 10), 4, 4); err == nil {
		t.Error("expected error for mismatched pixel buffer")
	}
}
