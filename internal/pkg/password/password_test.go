package password

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashAndVerify(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("s3cret")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if hash == "s3cret" {
		t.Fatalf("hash equals plaintext")
	}
	if !h.Verify("s3cret", hash) {
		t.Fatalf("Verify rejected the correct password")
	}
	if h.Verify("wrong", hash) {
		t.Fatalf("Verify accepted a wrong password")
	}
}

func TestHasher_HashesAreSalted(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	h1, err := h.Hash("same")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	h2, err := h.Hash("same")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("two hashes of the same input are identical; salt missing")
	}
}

func TestHasher_VerifyBadInput(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, _ := h.Hash("s3cret")
	if h.Verify("", hash) {
		t.Fatalf("Verify accepted empty plaintext")
	}
	if h.Verify("s3cret", "") {
		t.Fatalf("Verify accepted empty hash")
	}
	if h.Verify("s3cret", "not-a-bcrypt-hash") {
		t.Fatalf("Verify accepted a malformed hash")
	}
}

func TestNewHasher_CostFallback(t *testing.T) {
	h := NewHasher(9999)
	if h.cost != bcrypt.DefaultCost {
		t.Fatalf("expected fallback to default cost, got %d", h.cost)
	}
}
