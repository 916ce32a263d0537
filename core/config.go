package core

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	braidcrypt "github.com/BackendStack21/braidcrypt-go"
)

// Config holds the parameter sets read from a TOML file. A table missing
// from the file leaves its field nil.
//
//	[kayawood]
//	level = "KW-16"
//	private_max_length = 40
//
//	[walnut]
//	level = "WN-8"
//	cloak_min_length = 6
//
// Each table starts from the preset named by level, or from KW-16 and WN-8
// when level is absent, and overrides the fields it sets.
type Config struct {
	Kayawood *braidcrypt.KayawoodParams `toml:"kayawood,omitempty"`
	Walnut   *braidcrypt.WalnutParams   `toml:"walnut,omitempty"`
}

type rawConfig struct {
	Kayawood toml.Primitive `toml:"kayawood"`
	Walnut   toml.Primitive `toml:"walnut"`
}

type levelOnly struct {
	Level braidcrypt.Level `toml:"level"`
}

// LoadParamsFile reads and validates a parameter file.
func LoadParamsFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadParams(f)
}

// LoadParams reads and validates parameters from r.
func LoadParams(r io.Reader) (*Config, error) {
	var raw rawConfig
	md, err := toml.NewDecoder(r).Decode(&raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", braidcrypt.ErrMalformed, err)
	}

	cfg := &Config{}
	if md.IsDefined("kayawood") {
		var lv levelOnly
		if err := md.PrimitiveDecode(raw.Kayawood, &lv); err != nil {
			return nil, fmt.Errorf("%w: kayawood: %v", braidcrypt.ErrMalformed, err)
		}
		if lv.Level == "" {
			lv.Level = braidcrypt.KW16
		}
		p, err := GetKayawoodParams(lv.Level)
		if err != nil {
			return nil, err
		}
		if err := md.PrimitiveDecode(raw.Kayawood, &p); err != nil {
			return nil, fmt.Errorf("%w: kayawood: %v", braidcrypt.ErrMalformed, err)
		}
		if err := ValidateKayawood(p); err != nil {
			return nil, err
		}
		cfg.Kayawood = &p
	}
	if md.IsDefined("walnut") {
		var lv levelOnly
		if err := md.PrimitiveDecode(raw.Walnut, &lv); err != nil {
			return nil, fmt.Errorf("%w: walnut: %v", braidcrypt.ErrMalformed, err)
		}
		if lv.Level == "" {
			lv.Level = braidcrypt.WN8
		}
		p, err := GetWalnutParams(lv.Level)
		if err != nil {
			return nil, err
		}
		if err := md.PrimitiveDecode(raw.Walnut, &p); err != nil {
			return nil, fmt.Errorf("%w: walnut: %v", braidcrypt.ErrMalformed, err)
		}
		if err := ValidateWalnut(p); err != nil {
			return nil, err
		}
		cfg.Walnut = &p
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("%w: unknown keys %s", braidcrypt.ErrValidation, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// WriteParams encodes cfg as TOML.
func WriteParams(w io.Writer, cfg *Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}

// Presets returns every preset as a Config, in level order.
func Presets() []Config {
	kw16, kw32, wn8, wn16 := KW16Params, KW32Params, WN8Params, WN16Params
	return []Config{
		{Kayawood: &kw16},
		{Kayawood: &kw32},
		{Walnut: &wn8},
		{Walnut: &wn16},
	}
}
