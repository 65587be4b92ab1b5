package postfx

import (
	"image"
	"image/color"
)

// Pixmap is a CPU-resident RGBA8 image, optionally with multiple array
// layers, used as the texture type of [SoftwareDevice]. Layers are
// stored contiguously, slice-major.
type Pixmap struct {
	width  int
	height int
	layers int

	// Pix holds packed RGBA bytes, 4 per pixel, layer after layer.
	Pix []uint8
}

var _ Texture = (*Pixmap)(nil)

// NewPixmap creates a single-layer pixmap.
func NewPixmap(width, height int) *Pixmap {
	return NewPixmapArray(width, height, 1)
}

// NewPixmapArray creates a pixmap with the given number of array
// layers. layers < 1 is treated as 1.
func NewPixmapArray(width, height, layers int) *Pixmap {
	if layers < 1 {
		layers = 1
	}
	return &Pixmap{
		width:  width,
		height: height,
		layers: layers,
		Pix:    make([]uint8, width*height*layers*4),
	}
}

// Width returns the pixmap width in pixels.
func (p *Pixmap) Width() int { return p.width }

// Height returns the pixmap height in pixels.
func (p *Pixmap) Height() int { return p.height }

// Layers returns the array layer count.
func (p *Pixmap) Layers() int { return p.layers }

// IsArray reports whether the pixmap has more than one layer.
func (p *Pixmap) IsArray() bool { return p.layers > 1 }

// offset returns the byte offset of a pixel within a layer.
func (p *Pixmap) offset(x, y, layer int) int {
	return ((layer*p.height+y)*p.width + x) * 4
}

// At returns the pixel at (x, y) in the given layer.
func (p *Pixmap) At(x, y, layer int) color.NRGBA {
	o := p.offset(x, y, layer)
	return color.NRGBA{R: p.Pix[o], G: p.Pix[o+1], B: p.Pix[o+2], A: p.Pix[o+3]}
}

// SetPixel stores a pixel at (x, y) in the given layer.
func (p *Pixmap) SetPixel(x, y, layer int, c color.NRGBA) {
	o := p.offset(x, y, layer)
	p.Pix[o] = c.R
	p.Pix[o+1] = c.G
	p.Pix[o+2] = c.B
	p.Pix[o+3] = c.A
}

// PixmapFromImage converts an image into a single-layer pixmap.
func PixmapFromImage(img image.Image) *Pixmap {
	b := img.Bounds()
	p := NewPixmap(b.Dx(), b.Dy())

	if src, ok := img.(*image.NRGBA); ok {
		for y := 0; y < p.height; y++ {
			row := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
			copy(p.Pix[y*p.width*4:(y+1)*p.width*4], row[:p.width*4])
		}
		return p
	}

	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			p.SetPixel(x, y, 0, c)
		}
	}
	return p
}

// Image returns one layer as an *image.NRGBA. The pixel data is copied.
func (p *Pixmap) Image(layer int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	start := layer * p.width * p.height * 4
	copy(img.Pix, p.Pix[start:start+p.width*p.height*4])
	return img
}
