package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/postfx"
)

// constantBuffer is a uniform buffer for shader constants.
type constantBuffer struct {
	dev   *Device
	buf   hal.Buffer
	size  int
	label string
}

var _ postfx.Buffer = (*constantBuffer)(nil)

// CreateBuffer allocates a uniform buffer of the given size.
func (d *Device) CreateBuffer(size int, label string) (postfx.Buffer, error) {
	if size <= 0 {
		return nil, fmt.Errorf("postfx-wgpu: invalid buffer size %d", size)
	}
	buf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(size),
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("postfx-wgpu: create buffer %q: %w", label, err)
	}
	return &constantBuffer{dev: d, buf: buf, size: size, label: label}, nil
}

// Upload writes data into the buffer through the queue.
func (b *constantBuffer) Upload(data []byte) error {
	if len(data) > b.size {
		return fmt.Errorf("postfx-wgpu: upload of %d bytes exceeds buffer %q size %d",
			len(data), b.label, b.size)
	}
	b.dev.queue.WriteBuffer(b.buf, 0, data)
	return nil
}

// Size returns the buffer size in bytes.
func (b *constantBuffer) Size() int { return b.size }

// Destroy releases the GPU buffer.
func (b *constantBuffer) Destroy() {
	if b.buf != nil && b.dev.device != nil {
		b.dev.device.DestroyBuffer(b.buf)
		b.buf = nil
	}
}

// Texture is a render target backed by a packed-RGBA8 storage buffer,
// one u32 word per texel, array layers stored contiguously. RGBA byte
// order matches WGSL pack4x8unorm/unpack4x8unorm, so Upload and
// Download move raw RGBA byte streams with no repacking.
type Texture struct {
	dev     *Device
	buf     hal.Buffer
	staging hal.Buffer
	width   int
	height  int
	layers  int
	label   string
}

var _ postfx.Texture = (*Texture)(nil)

// CreateTexture allocates a single-layer texture.
func (d *Device) CreateTexture(width, height int, label string) (*Texture, error) {
	return d.CreateTextureArray(width, height, 1, label)
}

// CreateTextureArray allocates a texture with the given array layer
// count. layers < 1 is treated as 1.
func (d *Device) CreateTextureArray(width, height, layers int, label string) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("postfx-wgpu: invalid texture size %dx%d", width, height)
	}
	if layers < 1 {
		layers = 1
	}
	size := uint64(width) * uint64(height) * uint64(layers) * 4

	buf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopySrc | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("postfx-wgpu: create texture %q: %w", label, err)
	}
	staging, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label + " staging",
		Size:  size,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		d.device.DestroyBuffer(buf)
		return nil, fmt.Errorf("postfx-wgpu: create staging buffer %q: %w", label, err)
	}

	return &Texture{
		dev:     d,
		buf:     buf,
		staging: staging,
		width:   width,
		height:  height,
		layers:  layers,
		label:   label,
	}, nil
}

// Width returns the texture width in pixels.
func (t *Texture) Width() int { return t.width }

// Height returns the texture height in pixels.
func (t *Texture) Height() int { return t.height }

// Layers returns the array layer count.
func (t *Texture) Layers() int { return t.layers }

// IsArray reports whether the texture has more than one layer.
func (t *Texture) IsArray() bool { return t.layers > 1 }

// byteSize returns the total texel byte count.
func (t *Texture) byteSize() int { return t.width * t.height * t.layers * 4 }

// Upload writes raw RGBA bytes (all layers) into the texture.
func (t *Texture) Upload(pix []uint8) error {
	if len(pix) != t.byteSize() {
		return fmt.Errorf("postfx-wgpu: upload of %d bytes to texture %q, want %d",
			len(pix), t.label, t.byteSize())
	}
	t.dev.queue.WriteBuffer(t.buf, 0, pix)
	return nil
}

// Download reads the texture back into pix as raw RGBA bytes (all
// layers). It copies through the staging buffer and blocks until the
// GPU finishes.
func (t *Texture) Download(pix []uint8) error {
	if len(pix) != t.byteSize() {
		return fmt.Errorf("postfx-wgpu: download of %d bytes from texture %q, want %d",
			len(pix), t.label, t.byteSize())
	}
	d := t.dev

	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "postfx_readback"})
	if err != nil {
		return fmt.Errorf("postfx-wgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("postfx_readback"); err != nil {
		return fmt.Errorf("postfx-wgpu: begin encoding: %w", err)
	}
	encoder.CopyBufferToBuffer(t.buf, t.staging, []hal.BufferCopy{
		{SrcOffset: 0, DstOffset: 0, Size: uint64(t.byteSize())},
	})
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("postfx-wgpu: end encoding: %w", err)
	}
	defer d.device.FreeCommandBuffer(cmdBuf)

	if err := d.submitAndWait(cmdBuf); err != nil {
		return err
	}
	if err := d.queue.ReadBuffer(t.staging, 0, pix); err != nil {
		return fmt.Errorf("postfx-wgpu: readback %q: %w", t.label, err)
	}
	return nil
}

// Destroy releases the texture's GPU buffers.
func (t *Texture) Destroy() {
	if t.dev.device == nil {
		return
	}
	if t.buf != nil {
		t.dev.device.DestroyBuffer(t.buf)
		t.buf = nil
	}
	if t.staging != nil {
		t.dev.device.DestroyBuffer(t.staging)
		t.staging = nil
	}
}
