// Package braidcrypt implements braid group public-key cryptography built on
// the colored Burau representation and E-multiplication.
//
// Kayawood is a key agreement protocol and Walnut a signature scheme. Both
// act on matrix and permutation pairs by E-multiplication and hide their
// private braids with cloaking elements and word rewriting.
//
// WARNING: Kayawood and Walnut are research constructions. Several published
// attacks apply to parameter choices of this family. DO NOT use in production
// systems protecting sensitive data.
package braidcrypt

// Level names a preset parameter set.
type Level string

const (
	// KW16 is Kayawood on 16 strands.
	KW16 Level = "KW-16"
	// KW32 is Kayawood on 32 strands.
	KW32 Level = "KW-32"
	// WN8 is Walnut on 8 strands.
	WN8 Level = "WN-8"
	// WN16 is Walnut on 16 strands.
	WN16 Level = "WN-16"
)

// =============================================================================
// Parameter Types
// =============================================================================

// KayawoodParams contains the field independent parameters of the Kayawood
// key agreement protocol.
type KayawoodParams struct {
	Level            Level `toml:"level" json:"level"`                           // Preset this set was derived from
	N                int   `toml:"n" json:"n"`                                   // Braid group rank, even
	A                int   `toml:"a" json:"a"`                                   // First distinguished strand
	B                int   `toml:"b" json:"b"`                                   // Second distinguished strand
	ZMinLength       int   `toml:"z_min_length" json:"z_min_length"`             // Random prefix of the setup word
	ZMaxLength       int   `toml:"z_max_length" json:"z_max_length"`             // Upper bound of the prefix
	PrivateMinLength int   `toml:"private_min_length" json:"private_min_length"` // Private half-braid length
	PrivateMaxLength int   `toml:"private_max_length" json:"private_max_length"` // Upper bound of the private length
	CloakMinLength   int   `toml:"cloak_min_length" json:"cloak_min_length"`     // Cloaking conjugator length
	CloakMaxLength   int   `toml:"cloak_max_length" json:"cloak_max_length"`     // Upper bound of the conjugator length
	PureGenerators   int   `toml:"pure_generators" json:"pure_generators"`       // Pure braid generators per conjugator, 0 disables
	MaxAttempts      int   `toml:"max_attempts" json:"max_attempts"`             // Rejection sampling cap
}

// WalnutParams contains the field independent parameters of the Walnut
// signature scheme.
type WalnutParams struct {
	Level            Level `toml:"level" json:"level"`                           // Preset this set was derived from
	N                int   `toml:"n" json:"n"`                                   // Braid group rank
	A                int   `toml:"a" json:"a"`                                   // First distinguished strand
	B                int   `toml:"b" json:"b"`                                   // Second distinguished strand
	PrivateMinLength int   `toml:"private_min_length" json:"private_min_length"` // Private half-braid length
	PrivateMaxLength int   `toml:"private_max_length" json:"private_max_length"` // Upper bound of the private length
	CloakMinLength   int   `toml:"cloak_min_length" json:"cloak_min_length"`     // Cloaking conjugator length
	CloakMaxLength   int   `toml:"cloak_max_length" json:"cloak_max_length"`     // Upper bound of the conjugator length
	PureGenerators   int   `toml:"pure_generators" json:"pure_generators"`       // Pure braid generators per conjugator, 0 disables
	MaxAttempts      int   `toml:"max_attempts" json:"max_attempts"`             // Rejection sampling cap
}
