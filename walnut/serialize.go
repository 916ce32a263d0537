package walnut

import (
	"bytes"
	"encoding/binary"
	"fmt"

	braidcrypt "github.com/BackendStack21/braidcrypt-go"
	"github.com/BackendStack21/braidcrypt-go/braid"
	"github.com/BackendStack21/braidcrypt-go/burau"
	"github.com/BackendStack21/braidcrypt-go/field"
	"github.com/BackendStack21/braidcrypt-go/utils"
)

// SerializePublicKey encodes both projections, each prefixed with its
// length as a little-endian uint32.
func SerializePublicKey[T field.Element[T]](pk *PublicKey[T]) []byte {
	b1, b2 := pk.P1.Bytes(), pk.P2.Bytes()
	result := make([]byte, 0, 8+len(b1)+len(b2))

	lenBuf := make([]byte, 4)
	binary.LittleEndian.PutUint32(lenBuf, uint32(len(b1)))
	result = append(result, lenBuf...)
	result = append(result, b1...)

	binary.LittleEndian.PutUint32(lenBuf, uint32(len(b2)))
	result = append(result, lenBuf...)
	result = append(result, b2...)

	return result
}

// DeserializePublicKey decodes the output of SerializePublicKey. Both
// projections must share their t-values.
func DeserializePublicKey[T field.Element[T]](data []byte) (*PublicKey[T], error) {
	var parts [2]*burau.Projection[T]
	offset := 0
	for i := range parts {
		length, next, err := utils.SafeReadLength(data, offset, utils.MaxPayloadLength)
		if err != nil {
			return nil, fmt.Errorf("%w: public key part %d: %v", braidcrypt.ErrMalformed, i, err)
		}
		if err := utils.ValidateSliceAccess(data, next, length); err != nil {
			return nil, fmt.Errorf("%w: truncated public key: %v", braidcrypt.ErrMalformed, err)
		}
		p, used, err := burau.ParseProjection[T](data[next : next+length])
		if err != nil {
			return nil, err
		}
		if used != length {
			return nil, fmt.Errorf("%w: public key part %d has %d trailing bytes", braidcrypt.ErrMalformed, i, length-used)
		}
		parts[i] = p
		offset = next + length
	}
	if offset != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes", braidcrypt.ErrMalformed, len(data)-offset)
	}
	if !bytes.Equal(field.Bytes(parts[0].TValues()), field.Bytes(parts[1].TValues())) {
		return nil, fmt.Errorf("%w: public key projections use different t-values", braidcrypt.ErrMalformed)
	}
	return &PublicKey[T]{P1: parts[0], P2: parts[1]}, nil
}

// SerializeSignature encodes a signature word as its letter count followed
// by one little-endian int32 per letter.
func SerializeSignature(sig braid.Word) []byte {
	result := make([]byte, 4, 4+4*len(sig))
	binary.LittleEndian.PutUint32(result, uint32(len(sig)))
	buf := make([]byte, 4)
	for _, g := range sig {
		binary.LittleEndian.PutUint32(buf, uint32(int32(g)))
		result = append(result, buf...)
	}
	return result
}

// DeserializeSignature decodes the output of SerializeSignature. It checks
// framing and letter sizes only, Verify checks the letters against n.
func DeserializeSignature(data []byte) (braid.Word, error) {
	count, offset, err := utils.SafeReadLength(data, 0, utils.MaxWordLength)
	if err != nil {
		return nil, fmt.Errorf("%w: signature length: %v", braidcrypt.ErrMalformed, err)
	}
	size, err := utils.SafeMultiply(count, 4)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", braidcrypt.ErrMalformed, err)
	}
	if err := utils.ValidateSliceAccess(data, offset, size); err != nil {
		return nil, fmt.Errorf("%w: truncated signature: %v", braidcrypt.ErrMalformed, err)
	}
	if offset+size != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes", braidcrypt.ErrMalformed, len(data)-offset-size)
	}

	letters, err := utils.SafeMakeIntSlice(count, utils.MaxWordLength)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", braidcrypt.ErrMalformed, err)
	}
	sig := braid.Word(letters)
	for i := range sig {
		g := int(int32(binary.LittleEndian.Uint32(data[offset:])))
		if g == 0 || g > utils.MaxBraidIndex || g < -utils.MaxBraidIndex {
			return nil, fmt.Errorf("%w: letter %d out of range", braidcrypt.ErrMalformed, g)
		}
		sig[i] = g
		offset += 4
	}
	return sig, nil
}
