// Package texture provides image decoding and OpenGL texture upload.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"os"
	"path/filepath"
	"strings"

	// Registered decoders for non-TGA texture files.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Texture is a GPU texture handle with its cached dimensions.
type Texture struct {
	ID     uint32
	Width  int
	Height int
}

// Decode decodes texture image data. TGA files are handled by the
// built-in decoder (the format carries no magic bytes, so the file
// extension decides); everything else goes through image.Decode.
func Decode(data []byte, name string) (*image.RGBA, error) {
	var img image.Image
	var err error

	if strings.EqualFold(filepath.Ext(name), ".tga") {
		img, err = DecodeTGA(data)
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}

	if rgba, ok := img.(*image.RGBA); ok {
		return rgba, nil
	}
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba, nil
}

// Load reads an image file and uploads it as a mipmapped 2D texture.
// Requires a current GL context.
func Load(path string) (*Texture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	rgba, err := Decode(data, path)
	if err != nil {
		return nil, err
	}

	bounds := rgba.Bounds()
	t := &Texture{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}

	gl.GenTextures(1, &t.ID)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(t.Width), int32(t.Height),
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return t, nil
}

// Bind binds the texture to the given texture unit.
func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
}

// Destroy releases the GPU texture.
func (t *Texture) Destroy() {
	if t.ID != 0 {
		gl.DeleteTextures(1, &t.ID)
		t.ID = 0
	}
}
