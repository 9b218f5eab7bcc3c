package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret" {
		t.Fatalf("expected hash to differ from plaintext")
	}
	if !CheckPassword(hash, "s3cret") {
		t.Fatalf("expected matching password to verify")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatalf("expected mismatched password to fail")
	}
}
