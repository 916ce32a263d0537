// Package braidcrypt implements braid group public-key cryptography built on
// the colored Burau representation and E-multiplication.
// This package provides high-level exports for the Kayawood key agreement
// protocol and the Walnut digital signature scheme, together with the
// algebra they are composed of: permutations, Laurent polynomials, matrices,
// colored Burau elements, cloaking elements and stochastic word rewriting.
package braidcrypt

// Version of the braidcrypt Go implementation.
const Version = "0.3.0"

// API summary:
//
// Key Agreement (Kayawood):
//   - kayawood.New(params, opts...) - Build a protocol over a field type
//   - Protocol.GenerateInstance(rng) - Run key generation for both parties
//   - Protocol.IsBadInstance(inst) - Check whether public keys leak the shared key
//   - Protocol.SharedSecret(key) - Derive a 32-byte secret from a shared key
//
// Digital Signatures (Walnut):
//   - walnut.New(params, opts...) - Build a protocol over a field type
//   - Protocol.GeneratePrivateKey(rng) - Sample a private key
//   - Protocol.ComputePublicKey(sk) - Derive the public key
//   - Protocol.Sign(hash, sk, rng) - Sign a message hash
//   - Protocol.Verify(hash, sig, pk) - Verify a signature
//
// Parameters:
//   - core.GetKayawoodParams(level), core.GetWalnutParams(level)
//   - core.LoadParamsFile(path) - Read presets with overrides from TOML
//   - KW16, KW32, WN8, WN16 - preset levels
