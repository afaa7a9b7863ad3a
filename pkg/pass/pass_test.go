package pass

import "testing"

func TestHashAndVerify(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !VerifyPassword(hash, "s3cret") {
		t.Fatal("correct password rejected")
	}
	if VerifyPassword(hash, "guess") {
		t.Fatal("wrong password accepted")
	}
	if VerifyPassword("not-a-hash", "s3cret") {
		t.Fatal("garbage hash accepted")
	}
}
