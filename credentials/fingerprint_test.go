package credentials

import "testing"

func TestFingerprint_Deterministic(t *testing.T) {
	a := Fingerprint("secret-value")
	b := Fingerprint("secret-value")
	if a != b {
		t.Errorf("Fingerprint() not deterministic: %q vs %q", a, b)
	}
}

func TestFingerprint_Distinct(t *testing.T) {
	if Fingerprint("secret-a") == Fingerprint("secret-b") {
		t.Error("distinct secrets produced equal fingerprints")
	}
}

func TestFingerprint_Length(t *testing.T) {
	got := Fingerprint("anything")
	if len(got) != fingerprintLength {
		t.Errorf("len(Fingerprint()) = %d, want %d", len(got), fingerprintLength)
	}
}

func TestFingerprint_DoesNotContainSecret(t *testing.T) {
	secret := "very-long-secret-value-that-must-not-leak"
	got := Fingerprint(secret)
	if got == secret {
		t.Error("fingerprint equals the secret")
	}
}
