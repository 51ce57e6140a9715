package pipeline

import "testing"

func TestPresets(t *testing.T) {
	display, ok := Preset("display")
	if !ok {
		t.Fatal("display preset missing")
	}
	if display.Strictness != StrictFail || display.DisplayMode != DisplayBlock || !display.Trust {
		t.Errorf("display preset = %v", display)
	}

	inline, ok := Preset("inline")
	if !ok {
		t.Fatal("inline preset missing")
	}
	if inline.DisplayMode != DisplayInline || inline.Trust {
		t.Errorf("inline preset = %v", inline)
	}

	if _, ok := Preset("fancy"); ok {
		t.Error("unknown preset should not resolve")
	}
}

func TestParseStrictnessAndDisplay(t *testing.T) {
	if s, err := ParseStrictness("permit-trusted-extensions"); err != nil || s != StrictPermitTrusted {
		t.Errorf("ParseStrictness = %v, %v", s, err)
	}
	if _, err := ParseStrictness("lenient"); err == nil {
		t.Error("expected error for unknown strictness")
	}
	if d, err := ParseDisplayMode("block"); err != nil || d != DisplayBlock {
		t.Errorf("ParseDisplayMode = %v, %v", d, err)
	}
	if _, err := ParseDisplayMode("float"); err == nil {
		t.Error("expected error for unknown display mode")
	}
}
