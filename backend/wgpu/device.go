package wgpu

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/gogpu/postfx"
	"github.com/gogpu/postfx/cache"
)

// DeviceHandle is an alias for gpucontext.DeviceProvider: the host
// hands its GPU to postfx through this interface instead of postfx
// creating a second device.
type DeviceHandle = gpucontext.DeviceProvider

// shaderCacheCapacity bounds the compiled-SPIR-V cache. The engine
// needs three variants; headroom covers hosts running several engines
// with custom sources.
const shaderCacheCapacity = 32

// Device implements postfx.Device over wgpu HAL compute shaders.
//
// Binding state staged by the Set* methods is consumed by
// DispatchShader; like the engine itself, Device expects a single
// render thread and performs no locking of its own.
type Device struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	name     string
	external bool // shared device, not ours to destroy

	spirv *cache.Cache[string, []uint32]
	log   *slog.Logger

	bound binding
}

type binding struct {
	shader   *quadShader
	coeffs   *constantBuffer
	input    *Texture
	output   *Texture
	inSlice  int
	outSlice int
}

var _ postfx.Device = (*Device)(nil)

// New brings up the Vulkan backend, selects an adapter (discrete or
// integrated GPU preferred) and opens a device. The returned Device
// owns the GPU and releases it on Close.
func New() (*Device, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("postfx-wgpu: vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("postfx-wgpu: create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("postfx-wgpu: no GPU adapters found")
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("postfx-wgpu: open device: %w", err)
	}

	d := &Device{
		instance: instance,
		device:   openDev.Device,
		queue:    openDev.Queue,
		name:     selected.Info.Name,
		spirv:    cache.New[string, []uint32](shaderCacheCapacity),
		log:      postfx.Logger(),
	}
	d.log.Info("postfx-wgpu: GPU device opened", "adapter", d.name)
	return d, nil
}

// NewFromProvider wraps a GPU shared by the host application. The
// provider must also expose HAL handles (HalDevice/HalQueue), which
// gogpu device providers do. Close will not destroy the shared device.
func NewFromProvider(provider DeviceHandle) (*Device, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("postfx-wgpu: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("postfx-wgpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("postfx-wgpu: provider HalQueue is not hal.Queue")
	}

	d := &Device{
		device:   device,
		queue:    queue,
		name:     "shared device",
		external: true,
		spirv:    cache.New[string, []uint32](shaderCacheCapacity),
		log:      postfx.Logger(),
	}
	d.log.Info("postfx-wgpu: using shared GPU device")
	return d, nil
}

// Close releases the GPU. Shader and buffer handles created from this
// device must be destroyed first; the engine does that in its own
// Close. For shared devices only local state is dropped.
func (d *Device) Close() {
	d.bound = binding{}
	if !d.external {
		if d.device != nil {
			d.device.Destroy()
		}
		if d.instance != nil {
			d.instance.Destroy()
		}
	}
	d.device = nil
	d.queue = nil
	d.instance = nil
	d.spirv.Clear()
}

// DeviceName returns the adapter name, feeding postfx's architecture
// detection.
func (d *Device) DeviceName() string { return d.name }

// Float16Supported reports native FP16 shader support.
// The HAL does not expose shader-precision capabilities yet, so this
// stays false until it does.
func (d *Device) Float16Supported() bool { return false }

// SetShader stages the shader for the next dispatch. The sampler is
// accepted for interface parity: the pass addresses texels 1:1, so no
// filtering state is needed.
func (d *Device) SetShader(s postfx.Shader, _ postfx.Sampler) {
	d.bound.shader, _ = s.(*quadShader)
}

// SetShaderInputBuffer binds the coefficient constant buffer.
func (d *Device) SetShaderInputBuffer(_ int, b postfx.Buffer) {
	d.bound.coeffs, _ = b.(*constantBuffer)
}

// SetShaderInputTexture binds the input texture slice.
func (d *Device) SetShaderInputTexture(_ int, t postfx.Texture, slice int) {
	d.bound.input, _ = t.(*Texture)
	d.bound.inSlice = slice
}

// SetShaderOutput binds the output texture slice.
func (d *Device) SetShaderOutput(_ int, t postfx.Texture, slice int) {
	d.bound.output, _ = t.(*Texture)
	d.bound.outSlice = slice
}
