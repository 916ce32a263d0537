package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	braidcrypt "github.com/BackendStack21/braidcrypt-go"
)

// run executes the app with args and returns what it wrote to output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	prev := output
	output = &buf
	defer func() { output = prev }()
	err := CLI().Run(append([]string{appName}, args...))
	return buf.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "--version")
	require.NoError(t, err)
	require.Contains(t, out, braidcrypt.Version)
}

func TestParams(t *testing.T) {
	out, err := run(t, "params")
	require.NoError(t, err)
	for _, level := range []string{"KW-16", "KW-32", "WN-8", "WN-16"} {
		require.Contains(t, out, level)
	}

	path := filepath.Join(t.TempDir(), "params.toml")
	require.NoError(t, os.WriteFile(path, []byte("[walnut]\nlevel = \"WN-8\"\ncloak_min_length = 6\n"), 0o600))
	out, err = run(t, "--params", path, "params")
	require.NoError(t, err)
	require.Contains(t, out, "cloak_min_length = 6")
	require.NotContains(t, out, "[kayawood]")

	require.NoError(t, os.WriteFile(path, []byte("[walnut]\nbogus = 1\n"), 0o600))
	_, err = run(t, "--params", path, "params")
	require.ErrorIs(t, err, braidcrypt.ErrValidation)
}

func TestKayawoodInstance(t *testing.T) {
	out, err := run(t, "--seed", "7", "kayawood", "instance")
	require.NoError(t, err)
	var summary InstanceSummary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	require.Equal(t, braidcrypt.KW16, summary.Level)
	require.Equal(t, 16, summary.N)
	require.Len(t, summary.SharedSecret, 64)
	require.False(t, summary.BadInstance)

	again, err := run(t, "--seed", "7", "kayawood", "instance")
	require.NoError(t, err)
	require.Equal(t, out, again)

	_, err = run(t, "--field", "zz7", "kayawood", "instance")
	require.ErrorIs(t, err, braidcrypt.ErrValidation)
	_, err = run(t, "kayawood", "instance", "--level", "KW-8")
	require.ErrorIs(t, err, braidcrypt.ErrValidation)
}

func TestWalnutKeygenSignVerify(t *testing.T) {
	for _, f := range []string{"zz5", "gf256"} {
		t.Run(f, func(t *testing.T) {
			dir := t.TempDir()
			key := filepath.Join(dir, "key.json")
			sig := filepath.Join(dir, "sig.json")

			_, err := run(t, "--seed", "3", "--field", f, "walnut", "keygen", "--out", key)
			require.NoError(t, err)
			_, err = run(t, "--seed", "4", "--field", f, "walnut", "sign", "--key", key, "--message", "hello", "--out", sig)
			require.NoError(t, err)

			out, err := run(t, "--field", f, "walnut", "verify", "--key", key, "--message", "hello", "--signature", sig)
			require.NoError(t, err)
			require.Contains(t, out, "valid")

			_, err = run(t, "--field", f, "walnut", "verify", "--key", key, "--message", "goodbye", "--signature", sig)
			require.Error(t, err)
		})
	}
}

func TestWalnutKeyFieldMismatch(t *testing.T) {
	key := filepath.Join(t.TempDir(), "key.json")
	_, err := run(t, "--seed", "1", "--field", "zz5", "walnut", "keygen", "--out", key)
	require.NoError(t, err)
	_, err = run(t, "--field", "gf256", "walnut", "sign", "--key", key, "--message", "m")
	require.ErrorIs(t, err, braidcrypt.ErrValidation)
}

func TestWalnutMissingFlag(t *testing.T) {
	_, err := run(t, "walnut", "sign", "--message", "m")
	require.Error(t, err)
}

func TestBraidReduce(t *testing.T) {
	out, err := run(t, "braid", "reduce", "1,2,1,-2,-1,-2")
	require.NoError(t, err)
	require.Equal(t, "[]", strings.TrimSpace(out))

	_, err = run(t, "braid", "reduce", "--strands", "3", "1,3")
	require.ErrorIs(t, err, braidcrypt.ErrIndexOutOfRange)
	_, err = run(t, "braid", "reduce", "1,x")
	require.ErrorIs(t, err, braidcrypt.ErrValidation)
	_, err = run(t, "braid", "reduce")
	require.ErrorIs(t, err, braidcrypt.ErrValidation)
}

func TestBraidCheck(t *testing.T) {
	out, err := run(t, "--seed", "1", "braid", "check", "1,2,1,-2,-1,-2")
	require.NoError(t, err)
	require.Contains(t, out, "non-trivial: false")

	out, err = run(t, "--seed", "1", "braid", "check", "1,2")
	require.NoError(t, err)
	require.Contains(t, out, "non-trivial: true")

	out, err = run(t, "--seed", "1", "braid", "check", "1,2,1", "2,1,2")
	require.NoError(t, err)
	require.Contains(t, out, "different: false")
	require.Contains(t, out, "not-conjugate: false")

	out, err = run(t, "--seed", "1", "braid", "check", "1", "1,1")
	require.NoError(t, err)
	require.Contains(t, out, "different: true")
	require.Contains(t, out, "not-conjugate: true")
}
