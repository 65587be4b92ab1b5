package wgpu

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// gpuWaitTimeout bounds the fence wait after a dispatch.
const gpuWaitTimeout = 5 * time.Second

// passParamsSize is sizeof(PassParams) in postprocess.wgsl.
const passParamsSize = 16

// DispatchShader runs the staged full-screen pass: one compute
// dispatch over 8x8 workgroups, one submit, one fence wait. The VPRT
// variant dispatches a z workgroup per array layer and routes slices
// in-shader; other variants process the bound slice, forced to 0 for
// non-array textures.
func (d *Device) DispatchShader() error {
	b := &d.bound
	switch {
	case b.shader == nil:
		return errors.New("postfx-wgpu: dispatch without shader")
	case b.input == nil || b.output == nil:
		return errors.New("postfx-wgpu: dispatch without bound textures")
	case b.coeffs == nil:
		return errors.New("postfx-wgpu: dispatch without coefficient buffer")
	}
	if b.input.width != b.output.width || b.input.height != b.output.height {
		return fmt.Errorf("postfx-wgpu: texture size mismatch %dx%d -> %dx%d",
			b.input.width, b.input.height, b.output.width, b.output.height)
	}

	in, out := b.inSlice, b.outSlice
	if !b.input.IsArray() {
		in = 0
	}
	if !b.output.IsArray() {
		out = 0
	}
	if in < 0 || in >= b.input.layers || out < 0 || out >= b.output.layers {
		return fmt.Errorf("postfx-wgpu: slice %d/%d out of range", in, out)
	}

	w, h := uint32(b.input.width), uint32(b.input.height)
	depth := uint32(1)
	if b.shader.vprt {
		depth = uint32(b.input.layers)
		if l := uint32(b.output.layers); l < depth {
			depth = l
		}
	}

	// Per-dispatch pass parameters (width, height, in/out slice).
	ppBuf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "postfx_pass_params",
		Size:  passParamsSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("postfx-wgpu: create pass params buffer: %w", err)
	}
	defer d.device.DestroyBuffer(ppBuf)
	d.queue.WriteBuffer(ppBuf, 0, encodePassParams(w, h, uint32(in), uint32(out)))

	bg, err := d.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "postfx_bind",
		Layout: b.shader.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: b.coeffs.buf.NativeHandle(), Offset: 0, Size: uint64(b.coeffs.size)}},
			{Binding: 1, Resource: gputypes.BufferBinding{
				Buffer: ppBuf.NativeHandle(), Offset: 0, Size: passParamsSize}},
			{Binding: 2, Resource: gputypes.BufferBinding{
				Buffer: b.input.buf.NativeHandle(), Offset: 0, Size: uint64(b.input.byteSize())}},
			{Binding: 3, Resource: gputypes.BufferBinding{
				Buffer: b.output.buf.NativeHandle(), Offset: 0, Size: uint64(b.output.byteSize())}},
		},
	})
	if err != nil {
		return fmt.Errorf("postfx-wgpu: create bind group: %w", err)
	}
	defer d.device.DestroyBindGroup(bg)

	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "postfx_encoder"})
	if err != nil {
		return fmt.Errorf("postfx-wgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("postfx_pass"); err != nil {
		return fmt.Errorf("postfx-wgpu: begin encoding: %w", err)
	}

	pass := encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: b.shader.label})
	pass.SetPipeline(b.shader.pipeline)
	pass.SetBindGroup(0, bg, nil)
	pass.Dispatch((w+7)/8, (h+7)/8, depth)
	pass.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("postfx-wgpu: end encoding: %w", err)
	}
	defer d.device.FreeCommandBuffer(cmdBuf)

	return d.submitAndWait(cmdBuf)
}

// submitAndWait submits one command buffer and blocks on its fence.
func (d *Device) submitAndWait(cmdBuf hal.CommandBuffer) error {
	fence, err := d.device.CreateFence()
	if err != nil {
		return fmt.Errorf("postfx-wgpu: create fence: %w", err)
	}
	defer d.device.DestroyFence(fence)

	if err := d.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("postfx-wgpu: submit: %w", err)
	}
	fenceOK, err := d.device.Wait(fence, 1, gpuWaitTimeout)
	if err != nil || !fenceOK {
		return fmt.Errorf("postfx-wgpu: wait for GPU: ok=%v err=%w", fenceOK, err)
	}
	return nil
}

// encodePassParams packs the PassParams uniform, little-endian.
func encodePassParams(width, height, inSlice, outSlice uint32) []byte {
	buf := make([]byte, passParamsSize)
	for i, v := range [4]uint32{width, height, inSlice, outSlice} {
		buf[i*4] = byte(v)
		buf[i*4+1] = byte(v >> 8)
		buf[i*4+2] = byte(v >> 16)
		buf[i*4+3] = byte(v >> 24)
	}
	return buf
}
