package main

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	braidcrypt "github.com/BackendStack21/braidcrypt-go"
	"github.com/BackendStack21/braidcrypt-go/braid"
	"github.com/BackendStack21/braidcrypt-go/burau"
	"github.com/BackendStack21/braidcrypt-go/field"
	"github.com/BackendStack21/braidcrypt-go/kayawood"
	"github.com/BackendStack21/braidcrypt-go/walnut"
)

// InstanceSummary is the public outcome of a Kayawood run.
type InstanceSummary struct {
	Level        braidcrypt.Level `json:"level"`
	Field        string           `json:"field"`
	N            int              `json:"n"`
	ZLength      int              `json:"z_length"`
	AlicePublic  int              `json:"alice_public_length"`
	BobPublic    int              `json:"bob_public_length"`
	SharedSecret string           `json:"shared_secret"`
	BadInstance  bool             `json:"bad_instance"`
}

// KeyFile is the output of walnut keygen. Verification only needs the
// public part.
type KeyFile struct {
	Params    braidcrypt.WalnutParams `json:"params"`
	Field     string                  `json:"field"`
	PublicKey string                  `json:"public_key"`
	Private   *walnut.PrivateKey      `json:"private_key,omitempty"`
}

// SignatureFile is the output of walnut sign.
type SignatureFile struct {
	Message   string `json:"message"`
	Signature string `json:"signature"`
	Length    int    `json:"length"`
}

func kayawoodInstance[T field.Element[T]](c *cli.Context) error {
	logger := contextToLogger(c)
	params, err := kayawoodParams(c)
	if err != nil {
		return err
	}
	rng, err := contextToSource(c)
	if err != nil {
		return err
	}
	pp, err := kayawood.GeneratePublicParameters[T](params, rng.Split("params"))
	if err != nil {
		return err
	}
	p, err := kayawood.New(pp, kayawood.WithLogger(logger))
	if err != nil {
		return err
	}
	inst, err := p.GenerateInstance(rng)
	if err != nil {
		return err
	}
	bad, err := p.IsBadInstance(inst)
	if err != nil {
		return err
	}
	logger.Infow("instance generated", "level", params.Level, "bad", bad)
	return writeResult(c, InstanceSummary{
		Level:        params.Level,
		Field:        c.String(fieldFlag.Name),
		N:            params.N,
		ZLength:      len(inst.Z),
		AlicePublic:  len(inst.AlicePublic),
		BobPublic:    len(inst.BobPublic),
		SharedSecret: hex.EncodeToString(p.SharedSecret(inst.SharedKey)),
		BadInstance:  bad,
	})
}

func walnutKeygen[T field.Element[T]](c *cli.Context) error {
	logger := contextToLogger(c)
	params, err := walnutParams(c)
	if err != nil {
		return err
	}
	rng, err := contextToSource(c)
	if err != nil {
		return err
	}
	pp, err := walnut.GeneratePublicParameters[T](params, rng.Split("params"))
	if err != nil {
		return err
	}
	s, err := walnut.New(pp, walnut.WithLogger(logger))
	if err != nil {
		return err
	}
	sk, pk, err := s.GenerateKeyPair(rng)
	if err != nil {
		return err
	}
	logger.Infow("key pair generated", "level", params.Level, "w1_length", len(sk.W1), "w2_length", len(sk.W2))
	return writeResult(c, KeyFile{
		Params:    params,
		Field:     c.String(fieldFlag.Name),
		PublicKey: hex.EncodeToString(walnut.SerializePublicKey(pk)),
		Private:   sk,
	})
}

// loadKey reads a key file and rebuilds the signer from the parameters and
// the t-values carried by the public key.
func loadKey[T field.Element[T]](c *cli.Context) (*walnut.Signer[T], *walnut.PublicKey[T], *walnut.PrivateKey, error) {
	var kf KeyFile
	if err := readJSON(c.String(keyFlag.Name), &kf); err != nil {
		return nil, nil, nil, err
	}
	if kf.Field != c.String(fieldFlag.Name) {
		return nil, nil, nil, fmt.Errorf("%w: key is over %s, not %s", braidcrypt.ErrValidation, kf.Field, c.String(fieldFlag.Name))
	}
	raw, err := hex.DecodeString(kf.PublicKey)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: public key: %v", braidcrypt.ErrMalformed, err)
	}
	pk, err := walnut.DeserializePublicKey[T](raw)
	if err != nil {
		return nil, nil, nil, err
	}
	pp, err := walnut.NewPublicParameters(kf.Params, pk.P1.TValues())
	if err != nil {
		return nil, nil, nil, err
	}
	s, err := walnut.New(pp, walnut.WithLogger(contextToLogger(c)))
	if err != nil {
		return nil, nil, nil, err
	}
	return s, pk, kf.Private, nil
}

func walnutSign[T field.Element[T]](c *cli.Context) error {
	s, pk, sk, err := loadKey[T](c)
	if err != nil {
		return err
	}
	if sk == nil {
		return fmt.Errorf("%w: key file has no private key", braidcrypt.ErrValidation)
	}
	defer sk.Zeroize()
	rng, err := contextToSource(c)
	if err != nil {
		return err
	}
	msg := c.String(messageFlag.Name)
	sig, err := s.SignMessage([]byte(msg), sk, pk, rng)
	if err != nil {
		return err
	}
	return writeResult(c, SignatureFile{
		Message:   msg,
		Signature: hex.EncodeToString(walnut.SerializeSignature(sig)),
		Length:    len(sig),
	})
}

func walnutVerify[T field.Element[T]](c *cli.Context) error {
	s, pk, sk, err := loadKey[T](c)
	if err != nil {
		return err
	}
	if sk != nil {
		sk.Zeroize()
	}
	var sf SignatureFile
	if err := readJSON(c.String(signatureFlag.Name), &sf); err != nil {
		return err
	}
	raw, err := hex.DecodeString(sf.Signature)
	if err != nil {
		return fmt.Errorf("%w: signature: %v", braidcrypt.ErrMalformed, err)
	}
	sig, err := walnut.DeserializeSignature(raw)
	if err != nil {
		return err
	}
	ok, err := s.VerifyMessage([]byte(c.String(messageFlag.Name)), sig, pk)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("signature is not valid")
	}
	fmt.Fprintln(output, "signature is valid")
	return nil
}

func wordArgs(c *cli.Context, min, max int) ([]braid.Word, int, error) {
	if c.NArg() < min || c.NArg() > max {
		return nil, 0, fmt.Errorf("%w: expected %d to %d words, got %d", braidcrypt.ErrValidation, min, max, c.NArg())
	}
	words := make([]braid.Word, c.NArg())
	n := c.Int(strandsFlag.Name)
	for i := range words {
		w, err := braid.Parse(c.Args().Get(i))
		if err != nil {
			return nil, 0, err
		}
		if !c.IsSet(strandsFlag.Name) && w.MaxIndex()+1 > n {
			n = w.MaxIndex() + 1
		}
		words[i] = w
	}
	if n < 2 {
		n = 2
	}
	for _, w := range words {
		if err := w.Validate(n); err != nil {
			return nil, 0, err
		}
	}
	return words, n, nil
}

func braidReduce(c *cli.Context) error {
	words, n, err := wordArgs(c, 1, 1)
	if err != nil {
		return err
	}
	fmt.Fprintln(output, braid.Shorten(n, words[0]))
	return nil
}

func braidCheck(c *cli.Context) error {
	words, n, err := wordArgs(c, 1, 2)
	if err != nil {
		return err
	}
	rng, err := contextToSource(c)
	if err != nil {
		return err
	}
	ic, err := burau.NewDefaultIdentityChecker(n, rng)
	if err != nil {
		return err
	}
	if len(words) == 1 {
		nonTrivial, err := ic.IsNonTrivial(words[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(output, "non-trivial: %t\n", nonTrivial)
		return nil
	}

	different, err := ic.AreDifferent(words[0], words[1])
	if err != nil {
		return err
	}
	cc, err := burau.NewDefaultConjugacyChecker(n, rng)
	if err != nil {
		return err
	}
	notConjugate, err := cc.AreNotConjugate(words[0], words[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(output, "different: %t\nnot-conjugate: %t\n", different, notConjugate)
	return nil
}
