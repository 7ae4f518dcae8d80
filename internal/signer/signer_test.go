package signer

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestGenerateKeyFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "audit.key")

	pub, err := GenerateKeyFile(path)
	if err != nil {
		t.Fatalf("GenerateKeyFile: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat key file: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("key file mode = %o, want 600", info.Mode().Perm())
	}

	priv, err := LoadPrivateKey(path)
	if err != nil {
		t.Fatalf("LoadPrivateKey: %v", err)
	}
	if !pub.Equal(GetPublicKey(priv)) {
		t.Error("loaded private key does not match generated public key")
	}
}

func TestLoadPrivateKeyRawSeed(t *testing.T) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "seed.key")
	if err := os.WriteFile(path, priv.Seed(), 0600); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadPrivateKey(path)
	if err != nil {
		t.Fatalf("LoadPrivateKey: %v", err)
	}
	if !loaded.Equal(priv) {
		t.Error("loaded key does not equal original")
	}
}

func TestLoadPrivateKeyRaw64Bytes(t *testing.T) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "full.key")
	if err := os.WriteFile(path, priv, 0600); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadPrivateKey(path)
	if err != nil {
		t.Fatalf("LoadPrivateKey: %v", err)
	}
	if !loaded.Equal(priv) {
		t.Error("loaded key does not equal original")
	}
}

func TestLoadPrivateKeyGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.key")
	if err := os.WriteFile(path, []byte("not a key at all"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadPrivateKey(path); !errors.Is(err, ErrInvalidKeyFormat) {
		t.Errorf("LoadPrivateKey = %v, want ErrInvalidKeyFormat", err)
	}
}

func TestLoadPublicKeyRaw(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "audit.pub")
	if err := os.WriteFile(path, pub, 0644); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadPublicKey(path)
	if err != nil {
		t.Fatalf("LoadPublicKey: %v", err)
	}
	if !loaded.Equal(pub) {
		t.Error("loaded public key does not equal original")
	}
}

func TestSignAndVerifyRecord(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	payload := []byte(`{"document_id":"doc-1","verdict":"REJECTED"}`)

	sig := SignRecord(priv, payload)
	if len(sig) != ed25519.SignatureSize {
		t.Fatalf("signature length = %d, want %d", len(sig), ed25519.SignatureSize)
	}
	if !VerifyRecord(pub, payload, sig) {
		t.Error("VerifyRecord = false for valid signature")
	}

	tampered := append([]byte(nil), payload...)
	tampered[0] ^= 0xff
	if VerifyRecord(pub, tampered, sig) {
		t.Error("VerifyRecord = true for tampered payload")
	}
	if VerifyRecord(pub, payload, sig[:10]) {
		t.Error("VerifyRecord = true for truncated signature")
	}

	otherPub, _, _ := ed25519.GenerateKey(rand.Reader)
	if VerifyRecord(otherPub, payload, sig) {
		t.Error("VerifyRecord = true under the wrong public key")
	}
}
