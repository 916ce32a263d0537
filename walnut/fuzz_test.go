package walnut

import (
	"testing"

	"github.com/BackendStack21/braidcrypt-go/field"
)

// Anything DeserializeSignature accepts must re-encode to the same bytes.
func FuzzDeserializeSignature(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{0})
	f.Add([]byte{0, 0, 0, 0})
	f.Add([]byte{1, 0, 0, 0, 1, 0, 0, 0})
	f.Add([]byte{0xff, 0xff, 0xff, 0xff}) // Max uint32
	f.Add(make([]byte, 100))

	f.Fuzz(func(t *testing.T, data []byte) {
		sig, err := DeserializeSignature(data)
		if err != nil {
			return
		}
		if string(SerializeSignature(sig)) != string(data) {
			t.Fatalf("round trip changed %x", data)
		}
	})
}

func FuzzDeserializePublicKey(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{0, 0, 0, 0})
	f.Add([]byte{8, 0, 0, 0, 1, 0, 0, 0})
	f.Add(make([]byte, 64))

	f.Fuzz(func(t *testing.T, data []byte) {
		pk, err := DeserializePublicKey[field.ZZ5](data)
		if err == nil && (pk.P1 == nil || pk.P2 == nil) {
			t.Fatalf("accepted incomplete key from %x", data)
		}
	})
}
