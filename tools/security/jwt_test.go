package security

import (
	"testing"
	"time"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func TestGenerateVerifyRoundTrip(t *testing.T) {
	opts := DefaultOptions(testSecret)

	token, exp, err := Generate(opts, "user-42")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !exp.After(time.Now()) {
		t.Errorf("expiry not in the future: %v", exp)
	}

	claims, err := Verify(opts, token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID() != "user-42" {
		t.Errorf("subject = %q", claims.UserID())
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, _, err := Generate(DefaultOptions(testSecret), "user-42")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := Verify(DefaultOptions([]byte("another-secret-entirely-here!!!!")), token); err == nil {
		t.Error("token signed with a different key must not verify")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	opts := Options{Secret: testSecret, Alg: "HS256", TTL: -time.Minute}
	token, exp, err := Generate(opts, "user-42")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !exp.Before(time.Now()) {
		t.Fatalf("negative TTL must yield a past expiry, got %v", exp)
	}
	if _, err := Verify(opts, token); err == nil {
		t.Error("expired token must not verify")
	}
}

func TestZeroTTLUsesDefault(t *testing.T) {
	_, exp, err := Generate(Options{Secret: testSecret, Alg: "HS256"}, "user-42")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !exp.After(time.Now().Add(time.Hour)) {
		t.Errorf("zero TTL must fall back to the default validity, got %v", exp)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	if _, err := Verify(DefaultOptions(testSecret), "not.a.token"); err == nil {
		t.Error("garbage must not verify")
	}
}

func TestUnsupportedAlg(t *testing.T) {
	if _, _, err := Generate(Options{Secret: testSecret, Alg: "RS256"}, "u"); err == nil {
		t.Error("non-HMAC alg must be rejected")
	}
}

func TestAlgVariants(t *testing.T) {
	for _, alg := range []string{"HS256", "HS384", "HS512", ""} {
		opts := Options{Secret: testSecret, Alg: alg, TTL: time.Hour}
		token, _, err := Generate(opts, "u1")
		if err != nil {
			t.Fatalf("alg=%q Generate: %v", alg, err)
		}
		if _, err := Verify(opts, token); err != nil {
			t.Errorf("alg=%q Verify: %v", alg, err)
		}
	}
}
