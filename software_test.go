package postfx

import (
	"image/color"
	"testing"
)

// newSoftwareEngine builds an engine over a SoftwareDevice with the
// given mode, draining setup dirty flags.
func newSoftwareEngine(t *testing.T, store *MemStore) *Engine {
	t.Helper()
	e, err := New(NewSoftwareDevice(), store)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(e.Close)
	settle(t, e)
	return e
}

// fillGradient writes a deterministic non-uniform pattern into a layer.
func fillGradient(p *Pixmap, layer int, seed uint8) {
	for y := 0; y < p.Height(); y++ {
		for x := 0; x < p.Width(); x++ {
			p.SetPixel(x, y, layer, color.NRGBA{
				R: uint8(x*37) + seed,
				G: uint8(y*53) + seed,
				B: uint8((x+y)*11) + seed,
				A: 255,
			})
		}
	}
}

func maxChannelDelta(a, b *Pixmap) int {
	max := 0
	for i := range a.Pix {
		d := int(a.Pix[i]) - int(b.Pix[i])
		if d < 0 {
			d = -d
		}
		if d > max {
			max = d
		}
	}
	return max
}

func TestSoftwareDevice_PassThroughCopies(t *testing.T) {
	e := newSoftwareEngine(t, NewMemStore()) // mode off

	in := NewPixmap(16, 16)
	fillGradient(in, 0, 3)
	out := NewPixmap(16, 16)

	if err := e.Process(in, out, 0); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if maxChannelDelta(in, out) != 0 {
		t.Error("pass-through altered pixel data")
	}
}

func TestSoftwareDevice_NeutralGradeIsIdentity(t *testing.T) {
	store := NewMemStore()
	store.Set(SettingPostProcess, int(ModeOn))
	e := newSoftwareEngine(t, store)

	in := NewPixmap(16, 16)
	fillGradient(in, 0, 7)
	out := NewPixmap(16, 16)

	if err := e.Process(in, out, 0); err != nil {
		t.Fatalf("Process: %v", err)
	}
	// Neutral coefficients are a mathematical identity; allow one byte
	// of float32 quantization.
	if d := maxChannelDelta(in, out); d > 1 {
		t.Errorf("neutral grade moved a channel by %d, want <= 1", d)
	}
}

func TestSoftwareDevice_ExposureBrightens(t *testing.T) {
	store := NewMemStore()
	store.Set(SettingPostProcess, int(ModeOn))
	store.Set(SettingExposure, 750)
	e := newSoftwareEngine(t, store)

	in := NewPixmap(4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			in.SetPixel(x, y, 0, color.NRGBA{R: 40, G: 60, B: 80, A: 255})
		}
	}
	out := NewPixmap(4, 4)

	if err := e.Process(in, out, 0); err != nil {
		t.Fatalf("Process: %v", err)
	}
	got := out.At(0, 0, 0)
	if got.R <= 40 || got.G <= 60 || got.B <= 80 {
		t.Errorf("positive exposure did not brighten: got %+v", got)
	}
	if got.A != 255 {
		t.Errorf("alpha = %d, want 255 untouched", got.A)
	}
}

func TestSoftwareDevice_ArrayProcessesAllLayers(t *testing.T) {
	store := NewMemStore()
	store.Set(SettingPostProcess, int(ModeOn))
	e := newSoftwareEngine(t, store)

	in := NewPixmapArray(8, 8, 2)
	fillGradient(in, 0, 10)
	fillGradient(in, 1, 200)
	out := NewPixmapArray(8, 8, 2)

	// One Process call covers both layers for array textures; the
	// slice argument is routing metadata for the non-array variants.
	if err := e.Process(in, out, 0); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if d := maxChannelDelta(in, out); d > 1 {
		t.Errorf("per-layer neutral grade moved a channel by %d, want <= 1", d)
	}

	// Layers were not cross-wired: layer 1 output matches layer 1
	// input, which differs from layer 0.
	want := in.At(3, 3, 1)
	if got := out.At(3, 3, 1); got.R != want.R && got.R != want.R+1 && got.R != want.R-1 {
		t.Errorf("layer 1 pixel = %+v, want ~%+v", got, want)
	}
}

func TestSoftwareDevice_PassThroughArrayCopiesBoundSlice(t *testing.T) {
	e := newSoftwareEngine(t, NewMemStore()) // mode off

	in := NewPixmapArray(8, 8, 2)
	fillGradient(in, 0, 10)
	fillGradient(in, 1, 200)
	out := NewPixmapArray(8, 8, 2)

	if err := e.Process(in, out, 1); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if got, want := out.At(2, 5, 1), in.At(2, 5, 1); got != want {
		t.Errorf("bound slice pixel = %+v, want %+v", got, want)
	}
	if got := out.At(2, 5, 0); got != (color.NRGBA{}) {
		t.Errorf("unbound slice written: %+v", got)
	}
}

func TestSoftwareDevice_NonArraySliceForcedToZero(t *testing.T) {
	e := newSoftwareEngine(t, NewMemStore())

	in := NewPixmap(4, 4)
	fillGradient(in, 0, 1)
	out := NewPixmap(4, 4)

	// A stray slice index on plain textures must not error or read out
	// of bounds.
	if err := e.Process(in, out, 3); err != nil {
		t.Fatalf("Process with stray slice: %v", err)
	}
	if maxChannelDelta(in, out) != 0 {
		t.Error("pass-through with stray slice altered pixel data")
	}
}

func TestSoftwareDevice_DispatchValidation(t *testing.T) {
	d := NewSoftwareDevice()
	if err := d.DispatchShader(); err == nil {
		t.Error("dispatch with nothing bound did not fail")
	}

	shader, err := d.CreateQuadShader("src", "mainPassThrough", "t", ShaderDefines{})
	if err != nil {
		t.Fatalf("CreateQuadShader: %v", err)
	}
	buf, err := d.CreateBuffer(CoefficientBlockSize, "t")
	if err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}

	d.SetShader(shader, SamplerLinearClamp)
	d.SetShaderInputBuffer(0, buf)
	d.SetShaderInputTexture(0, NewPixmap(4, 4), 0)
	d.SetShaderOutput(0, NewPixmap(8, 8), 0)
	if err := d.DispatchShader(); err == nil {
		t.Error("dispatch with mismatched texture sizes did not fail")
	}

	d.SetShaderInputTexture(0, NewPixmapArray(4, 4, 2), 5)
	d.SetShaderOutput(0, NewPixmapArray(4, 4, 2), 0)
	if err := d.DispatchShader(); err == nil {
		t.Error("dispatch with out-of-range array slice did not fail")
	}
}

func TestSoftwareDevice_RejectsUnknownEntryPoint(t *testing.T) {
	d := NewSoftwareDevice()
	if _, err := d.CreateQuadShader("src", "mainBlur", "t", ShaderDefines{}); err == nil {
		t.Error("unknown entry point accepted")
	}
	if _, err := d.CreateQuadShader("", "mainPostProcess", "t", ShaderDefines{}); err == nil {
		t.Error("empty source accepted")
	}
}

func TestGradePixel(t *testing.T) {
	tests := []struct {
		name  string
		block CoefficientBlock
		in    [3]float32
		want  [3]float32
	}{
		{
			name: "neutral is identity",
			in:   [3]float32{0.25, 0.5, 0.75},
			want: [3]float32{0.25, 0.5, 0.75},
		},
		{
			name:  "brightness offsets by half the coefficient",
			block: CoefficientBlock{Params1: Vec4{0, 0.8, 0, 0}},
			in:    [3]float32{0.2, 0.2, 0.2},
			want:  [3]float32{0.6, 0.6, 0.6},
		},
		{
			name:  "contrast pivots around mid grey",
			block: CoefficientBlock{Params1: Vec4{1, 0, 0, 0}},
			in:    [3]float32{0.25, 0.5, 0.75},
			want:  [3]float32{0, 0.5, 1},
		},
		{
			name:  "exposure of one stop doubles",
			block: CoefficientBlock{Params1: Vec4{0, 0, 1, 0}},
			in:    [3]float32{0.1, 0.2, 0.3},
			want:  [3]float32{0.2, 0.4, 0.6},
		},
		{
			name:  "red gain scales only red",
			block: CoefficientBlock{Params2: Vec4{1, 0, 0, 0}},
			in:    [3]float32{0.2, 0.3, 0.4},
			want:  [3]float32{0.4, 0.3, 0.4},
		},
		{
			name:  "full desaturation collapses to luma",
			block: CoefficientBlock{Params1: Vec4{0, 0, 0, -1}},
			in:    [3]float32{1, 0, 0},
			want:  [3]float32{0.2126, 0.2126, 0.2126},
		},
		{
			name:  "full highlight compression flattens to mid grey",
			block: CoefficientBlock{Params3: Vec4{1, 0, 0, 0}},
			in:    [3]float32{0.8, 0.9, 1},
			want:  [3]float32{0.5, 0.5, 0.5},
		},
		{
			name:  "shadow lift pulls dark values toward mid grey",
			block: CoefficientBlock{Params3: Vec4{0, 0.5, 0, 0}},
			in:    [3]float32{0.2, 0.2, 0.2},
			want:  [3]float32{0.35, 0.35, 0.35},
		},
		{
			name:  "result clamps to unit range",
			block: CoefficientBlock{Params1: Vec4{0, 1, 3, 0}},
			in:    [3]float32{0.9, 0.9, 0.9},
			want:  [3]float32{1, 1, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := gradePixel(tt.in, &tt.block)
			for i := range got {
				if !closeTo(got[i], tt.want[i]) {
					t.Errorf("channel %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestGradePixel_VibranceSparesSaturatedPixels(t *testing.T) {
	block := CoefficientBlock{Params3: Vec4{0, 0, 1, 0}}

	// A fully saturated pixel is left alone.
	saturated := gradePixel([3]float32{1, 0, 0}, &block)
	if !closeTo(saturated[0], 1) || !closeTo(saturated[1], 0) {
		t.Errorf("vibrance changed saturated pixel: %v", saturated)
	}

	// A muted pixel gains saturation: spread around luma widens.
	muted := gradePixel([3]float32{0.55, 0.5, 0.45}, &block)
	if spread := muted[0] - muted[2]; spread <= 0.55-0.45+1e-6 {
		t.Errorf("vibrance did not boost muted pixel, spread = %v", spread)
	}
}
