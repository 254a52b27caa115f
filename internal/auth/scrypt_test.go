package auth

import (
	"bytes"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	hash, salt, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if len(hash) != keyLength || len(salt) != saltLength {
		t.Fatalf("unexpected lengths: hash %d, salt %d", len(hash), len(salt))
	}
	if !Verify("hunter2", hash, salt) {
		t.Fatal("expected correct password to verify")
	}
	if Verify("hunter3", hash, salt) {
		t.Fatal("expected wrong password to fail")
	}
	if Verify("hunter2", hash, make([]byte, saltLength)) {
		t.Fatal("expected wrong salt to fail")
	}
}

func TestHashIsSalted(t *testing.T) {
	first, firstSalt, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	second, secondSalt, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if bytes.Equal(firstSalt, secondSalt) {
		t.Fatal("expected distinct salts")
	}
	if bytes.Equal(first, second) {
		t.Fatal("expected distinct hashes for distinct salts")
	}
}
