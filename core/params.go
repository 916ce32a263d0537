// Package core provides parameter sets and validation for Kayawood and
// Walnut.
package core

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	braidcrypt "github.com/BackendStack21/braidcrypt-go"
	"github.com/BackendStack21/braidcrypt-go/utils"
)

// Minimum braid indices.
const (
	MinKayawoodN = 16
	MinWalnutN   = 8
)

// KW16Params is Kayawood on 16 strands.
var KW16Params = braidcrypt.KayawoodParams{
	Level:            braidcrypt.KW16,
	N:                16,
	A:                4,
	B:                11,
	ZMinLength:       20,
	ZMaxLength:       30,
	PrivateMinLength: 15,
	PrivateMaxLength: 25,
	CloakMinLength:   8,
	CloakMaxLength:   12,
	PureGenerators:   0,
	MaxAttempts:      1000,
}

// KW32Params is Kayawood on 32 strands.
var KW32Params = braidcrypt.KayawoodParams{
	Level:            braidcrypt.KW32,
	N:                32,
	A:                8,
	B:                23,
	ZMinLength:       40,
	ZMaxLength:       60,
	PrivateMinLength: 30,
	PrivateMaxLength: 50,
	CloakMinLength:   15,
	CloakMaxLength:   25,
	PureGenerators:   4,
	MaxAttempts:      1000,
}

// WN8Params is Walnut on 8 strands.
var WN8Params = braidcrypt.WalnutParams{
	Level:            braidcrypt.WN8,
	N:                8,
	A:                2,
	B:                5,
	PrivateMinLength: 20,
	PrivateMaxLength: 30,
	CloakMinLength:   5,
	CloakMaxLength:   10,
	PureGenerators:   0,
	MaxAttempts:      1000,
}

// WN16Params is Walnut on 16 strands.
var WN16Params = braidcrypt.WalnutParams{
	Level:            braidcrypt.WN16,
	N:                16,
	A:                4,
	B:                11,
	PrivateMinLength: 40,
	PrivateMaxLength: 60,
	CloakMinLength:   10,
	CloakMaxLength:   15,
	PureGenerators:   4,
	MaxAttempts:      1000,
}

// GetKayawoodParams returns the Kayawood preset for the given level.
func GetKayawoodParams(level braidcrypt.Level) (braidcrypt.KayawoodParams, error) {
	switch level {
	case braidcrypt.KW16:
		return KW16Params, nil
	case braidcrypt.KW32:
		return KW32Params, nil
	default:
		return braidcrypt.KayawoodParams{}, fmt.Errorf("%w: unknown Kayawood level: %s", braidcrypt.ErrValidation, level)
	}
}

// GetWalnutParams returns the Walnut preset for the given level.
func GetWalnutParams(level braidcrypt.Level) (braidcrypt.WalnutParams, error) {
	switch level {
	case braidcrypt.WN8:
		return WN8Params, nil
	case braidcrypt.WN16:
		return WN16Params, nil
	default:
		return braidcrypt.WalnutParams{}, fmt.Errorf("%w: unknown Walnut level: %s", braidcrypt.ErrValidation, level)
	}
}

// ValidateKayawood checks a Kayawood parameter set and reports every
// violated rule. The result matches braidcrypt.ErrValidation.
func ValidateKayawood(p braidcrypt.KayawoodParams) error {
	var result *multierror.Error
	fail := func(format string, args ...any) {
		result = multierror.Append(result, fmt.Errorf("%w: "+format, append([]any{braidcrypt.ErrValidation}, args...)...))
	}

	if p.N < MinKayawoodN || p.N%2 != 0 {
		fail("Kayawood n must be even and at least %d, got %d", MinKayawoodN, p.N)
	}
	if p.N > utils.MaxBraidIndex {
		fail("n %d exceeds %d", p.N, utils.MaxBraidIndex)
	}
	checkStrands(fail, p.N, p.A, p.B)
	checkRange(fail, "z length", p.ZMinLength, p.ZMaxLength, 0)
	checkRange(fail, "private length", p.PrivateMinLength, p.PrivateMaxLength, 1)
	checkRange(fail, "cloak length", p.CloakMinLength, p.CloakMaxLength, 0)
	checkCommon(fail, p.PureGenerators, p.MaxAttempts)
	return result.ErrorOrNil()
}

// ValidateWalnut checks a Walnut parameter set and reports every violated
// rule. The result matches braidcrypt.ErrValidation.
func ValidateWalnut(p braidcrypt.WalnutParams) error {
	var result *multierror.Error
	fail := func(format string, args ...any) {
		result = multierror.Append(result, fmt.Errorf("%w: "+format, append([]any{braidcrypt.ErrValidation}, args...)...))
	}

	if p.N < MinWalnutN {
		fail("Walnut n must be at least %d, got %d", MinWalnutN, p.N)
	}
	if p.N > utils.MaxBraidIndex {
		fail("n %d exceeds %d", p.N, utils.MaxBraidIndex)
	}
	checkStrands(fail, p.N, p.A, p.B)
	checkRange(fail, "private length", p.PrivateMinLength, p.PrivateMaxLength, 1)
	checkRange(fail, "cloak length", p.CloakMinLength, p.CloakMaxLength, 0)
	checkCommon(fail, p.PureGenerators, p.MaxAttempts)
	return result.ErrorOrNil()
}

type failFunc func(format string, args ...any)

func checkStrands(fail failFunc, n, a, b int) {
	if a < 0 || a >= b || b >= n {
		fail("strands must satisfy 0 <= a < b < n, got a=%d b=%d n=%d", a, b, n)
	}
}

func checkRange(fail failFunc, name string, lo, hi, floor int) {
	if lo < floor {
		fail("minimum %s %d below %d", name, lo, floor)
	}
	if lo > hi {
		fail("%s range [%d,%d] is empty", name, lo, hi)
	}
	if hi > utils.MaxWordLength {
		fail("maximum %s %d exceeds %d", name, hi, utils.MaxWordLength)
	}
}

func checkCommon(fail failFunc, pure, attempts int) {
	if pure < 0 {
		fail("pure generator count %d is negative", pure)
	}
	if attempts < 1 {
		fail("attempt cap must be positive, got %d", attempts)
	}
}
