package main

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/mathlive/internal/config"
	"github.com/vango-dev/mathlive/internal/errors"
	"github.com/vango-dev/mathlive/pkg/pipeline"
)

func TestWriteVersion(t *testing.T) {
	b := buildInfo{Version: "1.2.3", Commit: "abc123", Date: "2026-01-02", Go: "go1.23.4", OSArch: "linux/amd64"}

	var short bytes.Buffer
	if err := writeVersion(&short, b, true, false); err != nil {
		t.Fatal(err)
	}
	if short.String() != "1.2.3\n" {
		t.Errorf("short = %q", short.String())
	}

	var js bytes.Buffer
	if err := writeVersion(&js, b, false, true); err != nil {
		t.Fatal(err)
	}
	var decoded buildInfo
	if err := json.Unmarshal(js.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded != b {
		t.Errorf("decoded = %+v, want %+v", decoded, b)
	}

	var long bytes.Buffer
	if err := writeVersion(&long, b, false, false); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Version:    1.2.3", "Commit:     abc123", "OS/Arch:    linux/amd64", "texmath"} {
		if !strings.Contains(long.String(), want) {
			t.Errorf("output missing %q:\n%s", want, long.String())
		}
	}
}

func TestRunInit(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	if err := runInit(&out, dir, false, false); err != nil {
		t.Fatalf("runInit: %v", err)
	}
	path := filepath.Join(dir, config.ConfigFileName)
	if !strings.Contains(out.String(), path) {
		t.Errorf("output = %q, want it to name %s", out.String(), path)
	}

	cfg, err := config.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Render.Preset != config.DefaultPreset || cfg.Server.Port != config.DefaultPort {
		t.Errorf("written config = %+v, want defaults", cfg)
	}

	err = runInit(&out, dir, true, false)
	var me *errors.Error
	if !stderrors.As(err, &me) || me.Category != errors.CategoryCLI {
		t.Fatalf("second init err = %v, want an existing-file error", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "mathlive.yaml")); !os.IsNotExist(err) {
		t.Errorf("mathlive.yaml should not have been written")
	}

	if err := runInit(&out, dir, false, true); err != nil {
		t.Errorf("runInit --force: %v", err)
	}
}

func TestRunInitYAML(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	if err := runInit(&out, dir, true, false); err != nil {
		t.Fatalf("runInit: %v", err)
	}

	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if filepath.Base(cfg.Path()) != "mathlive.yaml" {
		t.Errorf("loaded %s, want mathlive.yaml", cfg.Path())
	}
	if !cfg.Server.Sanitize || !cfg.Metrics.Enabled {
		t.Errorf("written config lost defaults: %+v", cfg)
	}
}

func TestPreviewConfig(t *testing.T) {
	cfg := config.New()
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 8080
	cfg.Server.Initial = `e^{i\pi}`
	cfg.Render.Preset = "inline"
	cfg.Render.PositionUnit = "utf16"
	cfg.Metrics.Enabled = false

	lpc, err := previewConfig(cfg, nil)
	if err != nil {
		t.Fatalf("previewConfig: %v", err)
	}

	if lpc.Address != "0.0.0.0:8080" {
		t.Errorf("Address = %q", lpc.Address)
	}
	if lpc.Options != pipeline.InlinePreset() {
		t.Errorf("Options = %v, want inline preset", lpc.Options)
	}
	if lpc.PositionUnit != pipeline.UnitUTF16 {
		t.Errorf("PositionUnit = %v", lpc.PositionUnit)
	}
	if lpc.Initial != `e^{i\pi}` || lpc.Metrics || !lpc.Sanitize {
		t.Errorf("config = %+v", lpc)
	}
}

func TestPreviewConfigBadUnit(t *testing.T) {
	cfg := config.New()
	cfg.Render.PositionUnit = "grapheme"

	if _, err := previewConfig(cfg, nil); err == nil {
		t.Error("expected an error for an unknown position unit")
	}
}
