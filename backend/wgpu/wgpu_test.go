package wgpu

import (
	"strings"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/postfx"
)

func TestAssembleSource(t *testing.T) {
	source := "fn main() {}"

	var empty postfx.ShaderDefines
	if got := assembleSource(&empty, source); got != source {
		t.Errorf("empty defines changed source: %q", got)
	}

	var defines postfx.ShaderDefines
	defines.AddBool("VPRT", true)
	got := assembleSource(&defines, source)
	if !strings.HasPrefix(got, "const VPRT: u32 = 1u;\n") {
		t.Errorf("prologue missing: %q", got)
	}
	if !strings.HasSuffix(got, source) {
		t.Errorf("source body lost: %q", got)
	}
}

func TestSpirvWords(t *testing.T) {
	// SPIR-V magic number 0x07230203 in little-endian byte order,
	// followed by a second word.
	bytes := []byte{
		0x03, 0x02, 0x23, 0x07,
		0x78, 0x56, 0x34, 0x12,
	}
	words := spirvWords(bytes)
	if len(words) != 2 {
		t.Fatalf("len = %d, want 2", len(words))
	}
	if words[0] != 0x07230203 {
		t.Errorf("magic = %#x, want 0x07230203", words[0])
	}
	if words[1] != 0x12345678 {
		t.Errorf("word 1 = %#x, want 0x12345678", words[1])
	}

	// Trailing partial words are dropped, not misread.
	if got := spirvWords(bytes[:6]); len(got) != 1 {
		t.Errorf("partial input produced %d words, want 1", len(got))
	}
}

func TestEncodePassParams(t *testing.T) {
	buf := encodePassParams(1920, 1080, 1, 0)
	if len(buf) != passParamsSize {
		t.Fatalf("len = %d, want %d", len(buf), passParamsSize)
	}

	words := spirvWords(buf) // same little-endian word decode
	want := [4]uint32{1920, 1080, 1, 0}
	for i, w := range want {
		if words[i] != w {
			t.Errorf("word %d = %d, want %d", i, words[i], w)
		}
	}
}

func TestNewFromProvider_RejectsForeignProviders(t *testing.T) {
	// A provider without HAL accessors cannot back a device.
	if _, err := NewFromProvider(bareProvider{}); err == nil {
		t.Error("provider without HAL handles accepted")
	}
	// HAL accessors returning the wrong types are rejected too.
	if _, err := NewFromProvider(wrongTypeProvider{}); err == nil {
		t.Error("provider with non-HAL handles accepted")
	}
}

// bareProvider implements gpucontext.DeviceProvider without the HAL
// accessors postfx needs for raw compute dispatch.
type bareProvider struct{}

func (bareProvider) Device() gpucontext.Device             { return nil }
func (bareProvider) Queue() gpucontext.Queue               { return nil }
func (bareProvider) Adapter() gpucontext.Adapter           { return nil }
func (bareProvider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatBGRA8Unorm }
func (bareProvider) AdapterInfo() gpucontext.AdapterInfo   { return gpucontext.AdapterInfo{} }

// wrongTypeProvider exposes the HAL accessors but with non-HAL values.
type wrongTypeProvider struct {
	bareProvider
}

func (wrongTypeProvider) HalDevice() any { return "not a device" }
func (wrongTypeProvider) HalQueue() any  { return "not a queue" }
