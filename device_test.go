package postfx

import "testing"

func TestShaderDefines_LastAdditionWins(t *testing.T) {
	var d ShaderDefines
	d.AddBool("VPRT", false)
	d.AddBool("VPRT", true)

	v, ok := d.Get("VPRT")
	if !ok || v != "1" {
		t.Errorf("Get(VPRT) = %q, %v, want \"1\", true", v, ok)
	}
	if _, ok := d.Get("MISSING"); ok {
		t.Error("Get reported a define that was never added")
	}
}

func TestShaderDefines_CloneIsIndependent(t *testing.T) {
	var base ShaderDefines
	base.AddBool("VPRT", false)

	variant := base.Clone()
	variant.AddBool("VPRT", true)

	if v, _ := base.Get("VPRT"); v != "0" {
		t.Errorf("clone mutation leaked into base: VPRT = %q", v)
	}
	if v, _ := variant.Get("VPRT"); v != "1" {
		t.Errorf("variant VPRT = %q, want \"1\"", v)
	}
}

func TestShaderDefines_WGSL(t *testing.T) {
	var d ShaderDefines
	if got := d.WGSL(); got != "" {
		t.Errorf("empty defines rendered %q, want empty", got)
	}

	d.Add("WORKGROUP", "8")
	d.AddBool("VPRT", true)
	want := "const WORKGROUP: u32 = 8u;\nconst VPRT: u32 = 1u;\n"
	if got := d.WGSL(); got != want {
		t.Errorf("WGSL() = %q, want %q", got, want)
	}
}
