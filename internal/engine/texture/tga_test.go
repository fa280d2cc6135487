package texture

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image/color"
	"testing"
)

// buildTGA assembles a TGA file from a header description and raw
// pixel bytes.
func buildTGA(imageType uint8, width, height uint16, depth, descriptor uint8, pixels []byte) []byte {
	buf := new(bytes.Buffer)
	hdr := tgaHeader{
		ImageType:  imageType,
		Width:      width,
		Height:     height,
		Depth:      depth,
		Descriptor: descriptor,
	}
	binary.Write(buf, binary.LittleEndian, &hdr)
	buf.Write(pixels)
	return buf.Bytes()
}

func TestDecodeTGA_Uncompressed24(t *testing.T) {
	// 2x2, bottom-to-top (descriptor 0), BGR order:
	// file row 0 (bottom): blue, green — file row 1 (top): red, white
	pixels := []byte{
		255, 0, 0 /**/, 0, 255, 0,
		0, 0, 255 /**/, 255, 255, 255,
	}
	img, err := DecodeTGA(buildTGA(tgaTrueColor, 2, 2, 24, 0, pixels))
	if err != nil {
		t.Fatalf("DecodeTGA failed: %v", err)
	}

	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 2 {
		t.Fatalf("bounds = %v, want 2x2", img.Bounds())
	}

	checks := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 1, color.RGBA{0, 0, 255, 255}},     // bottom-left: blue
		{1, 1, color.RGBA{0, 255, 0, 255}},     // bottom-right: green
		{0, 0, color.RGBA{255, 0, 0, 255}},     // top-left: red
		{1, 0, color.RGBA{255, 255, 255, 255}}, // top-right: white
	}
	for _, c := range checks {
		got := img.At(c.x, c.y)
		if got != c.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestDecodeTGA_TopToBottom32(t *testing.T) {
	// 1x2, top-to-bottom, BGRA: opaque red above translucent blue.
	pixels := []byte{
		0, 0, 255, 255,
		255, 0, 0, 128,
	}
	img, err := DecodeTGA(buildTGA(tgaTrueColor, 1, 2, 32, tgaTopToBottom, pixels))
	if err != nil {
		t.Fatalf("DecodeTGA failed: %v", err)
	}

	if got := img.At(0, 0); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("top pixel = %v, want opaque red", got)
	}
	if got := img.At(0, 1); got != (color.RGBA{0, 0, 255, 128}) {
		t.Errorf("bottom pixel = %v, want translucent blue", got)
	}
}

func TestDecodeTGA_RLE(t *testing.T) {
	// 4x1 top-to-bottom: a run of 3 green pixels, then 1 literal red.
	pixels := []byte{
		0x82, 0, 255, 0, // run packet, count 3, BGR green
		0x00, 0, 0, 255, // literal packet, count 1, BGR red
	}
	img, err := DecodeTGA(buildTGA(tgaTrueColorRLE, 4, 1, 24, tgaTopToBottom, pixels))
	if err != nil {
		t.Fatalf("DecodeTGA failed: %v", err)
	}

	green := color.RGBA{0, 255, 0, 255}
	for x := 0; x < 3; x++ {
		if got := img.At(x, 0); got != green {
			t.Errorf("pixel (%d,0) = %v, want green", x, got)
		}
	}
	if got := img.At(3, 0); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("pixel (3,0) = %v, want red", got)
	}
}

func TestDecodeTGA_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"short header", []byte{1, 2, 3}, ErrTGATruncated},
		{"color mapped", func() []byte {
			d := buildTGA(1, 1, 1, 24, 0, nil)
			d[1] = 1 // color map present
			return d
		}(), ErrTGAUnsupported},
		{"grayscale", buildTGA(3, 1, 1, 24, 0, nil), ErrTGAUnsupported},
		{"16 bit", buildTGA(tgaTrueColor, 1, 1, 16, 0, nil), ErrTGAUnsupported},
		{"missing pixels", buildTGA(tgaTrueColor, 2, 2, 24, 0, []byte{1, 2, 3}), ErrTGATruncated},
		{"truncated RLE run", buildTGA(tgaTrueColorRLE, 2, 2, 24, 0, []byte{0x83, 10}), ErrTGATruncated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTGA(tt.data)
			if !errors.Is(err, tt.want) {
				t.Errorf("got error %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecode_DispatchesOnExtension(t *testing.T) {
	pixels := []byte{0, 0, 255}
	data := buildTGA(tgaTrueColor, 1, 1, 24, tgaTopToBottom, pixels)

	rgba, err := Decode(data, "earth2048.TGA")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got := rgba.At(0, 0); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("pixel = %v, want red", got)
	}

	// The same bytes under a non-TGA name must fail image.Decode.
	if _, err := Decode(data, "earth2048.png"); err == nil {
		t.Error("expected decode error for TGA bytes named .png")
	}
}
