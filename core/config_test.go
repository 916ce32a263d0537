package core

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	braidcrypt "github.com/BackendStack21/braidcrypt-go"
)

func TestLoadParamsOverrides(t *testing.T) {
	src := `
[kayawood]
level = "KW-32"
private_max_length = 64

[walnut]
cloak_min_length = 6
`
	cfg, err := LoadParams(strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadParams failed: %v", err)
	}
	if cfg.Kayawood == nil || cfg.Walnut == nil {
		t.Fatal("expected both tables")
	}
	want := KW32Params
	want.PrivateMaxLength = 64
	if *cfg.Kayawood != want {
		t.Errorf("kayawood: got %+v, want %+v", *cfg.Kayawood, want)
	}
	if cfg.Walnut.Level != braidcrypt.WN8 || cfg.Walnut.CloakMinLength != 6 || cfg.Walnut.N != WN8Params.N {
		t.Errorf("walnut: unexpected %+v", *cfg.Walnut)
	}
}

func TestLoadParamsMissingTable(t *testing.T) {
	cfg, err := LoadParams(strings.NewReader("[walnut]\nlevel = \"WN-16\"\n"))
	if err != nil {
		t.Fatalf("LoadParams failed: %v", err)
	}
	if cfg.Kayawood != nil {
		t.Error("kayawood should be nil")
	}
	if *cfg.Walnut != WN16Params {
		t.Errorf("walnut: got %+v", *cfg.Walnut)
	}
}

func TestLoadParamsErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"syntax", "[kayawood\n", braidcrypt.ErrMalformed},
		{"type", "[kayawood]\nn = \"sixteen\"\n", braidcrypt.ErrMalformed},
		{"level", "[walnut]\nlevel = \"KW-16\"\n", braidcrypt.ErrValidation},
		{"invalid", "[kayawood]\nn = 17\n", braidcrypt.ErrValidation},
		{"unknown key", "[walnut]\nstrands = 9\n", braidcrypt.ErrValidation},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadParams(strings.NewReader(tc.src))
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestParamsFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "params.toml")

	kw, wn := KW16Params, WN16Params
	kw.CloakMaxLength = 30
	var buf bytes.Buffer
	if err := WriteParams(&buf, &Config{Kayawood: &kw, Walnut: &wn}); err != nil {
		t.Fatalf("WriteParams failed: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadParamsFile(path)
	if err != nil {
		t.Fatalf("LoadParamsFile failed: %v", err)
	}
	if *cfg.Kayawood != kw || *cfg.Walnut != wn {
		t.Errorf("round trip mismatch: %+v %+v", *cfg.Kayawood, *cfg.Walnut)
	}

	if _, err := LoadParamsFile(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestPresets(t *testing.T) {
	presets := Presets()
	if len(presets) != 4 {
		t.Fatalf("expected 4 presets, got %d", len(presets))
	}
	var buf bytes.Buffer
	for _, p := range presets {
		if err := WriteParams(&buf, &p); err != nil {
			t.Fatal(err)
		}
	}
	if !strings.Contains(buf.String(), `level = "WN-16"`) {
		t.Errorf("missing WN-16 preset in:\n%s", buf.String())
	}
}
