package texture

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA decode errors.
var (
	ErrTGATruncated   = errors.New("truncated TGA data")
	ErrTGAUnsupported = errors.New("unsupported TGA variant")
)

// tgaHeader is the fixed 18-byte TGA file header.
type tgaHeader struct {
	IDLength     uint8
	ColorMapType uint8
	ImageType    uint8
	ColorMapSpec [5]byte
	XOrigin      uint16
	YOrigin      uint16
	Width        uint16
	Height       uint16
	Depth        uint8
	Descriptor   uint8
}

const (
	tgaTrueColor    = 2
	tgaTrueColorRLE = 10

	// Descriptor bit 5: rows stored top to bottom.
	tgaTopToBottom = 0x20
)

// DecodeTGA decodes 24- or 32-bit true-color TGA data, uncompressed
// (type 2) or RLE compressed (type 10).
func DecodeTGA(data []byte) (image.Image, error) {
	r := bytes.NewReader(data)

	var hdr tgaHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, ErrTGATruncated
	}

	if hdr.ColorMapType != 0 {
		return nil, fmt.Errorf("%w: color-mapped image", ErrTGAUnsupported)
	}
	if hdr.ImageType != tgaTrueColor && hdr.ImageType != tgaTrueColorRLE {
		return nil, fmt.Errorf("%w: image type %d", ErrTGAUnsupported, hdr.ImageType)
	}
	if hdr.Depth != 24 && hdr.Depth != 32 {
		return nil, fmt.Errorf("%w: %d bits per pixel", ErrTGAUnsupported, hdr.Depth)
	}

	pixelStart := 18 + int(hdr.IDLength)
	if pixelStart > len(data) {
		return nil, ErrTGATruncated
	}

	dec := tgaDecoder{
		pixels:  data[pixelStart:],
		width:   int(hdr.Width),
		height:  int(hdr.Height),
		depth:   int(hdr.Depth) / 8,
		flipped: hdr.Descriptor&tgaTopToBottom == 0,
		img:     image.NewRGBA(image.Rect(0, 0, int(hdr.Width), int(hdr.Height))),
	}

	var err error
	if hdr.ImageType == tgaTrueColor {
		err = dec.decodeRaw()
	} else {
		err = dec.decodeRLE()
	}
	if err != nil {
		return nil, err
	}
	return dec.img, nil
}

// tgaDecoder carries the state shared by the raw and RLE paths.
type tgaDecoder struct {
	pixels  []byte
	width   int
	height  int
	depth   int // bytes per pixel
	flipped bool
	next    int // next linear pixel index to write
	img     *image.RGBA
}

// readColor reads one BGR(A) pixel at byte offset off.
func (d *tgaDecoder) readColor(off int) (color.RGBA, error) {
	if off+d.depth > len(d.pixels) {
		return color.RGBA{}, ErrTGATruncated
	}
	c := color.RGBA{
		B: d.pixels[off],
		G: d.pixels[off+1],
		R: d.pixels[off+2],
		A: 255,
	}
	if d.depth == 4 {
		c.A = d.pixels[off+3]
	}
	return c, nil
}

// put writes the next pixel in file order, flipping rows for
// bottom-to-top files.
func (d *tgaDecoder) put(c color.RGBA) {
	x := d.next % d.width
	y := d.next / d.width
	if d.flipped {
		y = d.height - 1 - y
	}
	d.img.SetRGBA(x, y, c)
	d.next++
}

func (d *tgaDecoder) decodeRaw() error {
	total := d.width * d.height
	for i := 0; i < total; i++ {
		c, err := d.readColor(i * d.depth)
		if err != nil {
			return err
		}
		d.put(c)
	}
	return nil
}

func (d *tgaDecoder) decodeRLE() error {
	total := d.width * d.height
	off := 0

	for d.next < total {
		if off >= len(d.pixels) {
			return ErrTGATruncated
		}
		packet := d.pixels[off]
		off++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			// Run: one pixel value repeated count times.
			c, err := d.readColor(off)
			if err != nil {
				return err
			}
			off += d.depth
			for i := 0; i < count && d.next < total; i++ {
				d.put(c)
			}
		} else {
			// Literal: count individual pixels.
			for i := 0; i < count && d.next < total; i++ {
				c, err := d.readColor(off)
				if err != nil {
					return err
				}
				off += d.depth
				d.put(c)
			}
		}
	}
	return nil
}
