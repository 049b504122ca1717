package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	signer, err := NewSigner([]byte("test-secret"))
	if err != nil {
		t.Fatalf("NewSigner: %v", err)
	}

	token, err := signer.Sign(Claims{Sub: "user-1", Email: "a@b.c", Name: "Ada"})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	claims, err := signer.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Sub != "user-1" || claims.Email != "a@b.c" || claims.Name != "Ada" {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if claims.Exp <= claims.Iat {
		t.Fatalf("expected exp after iat, got iat=%d exp=%d", claims.Iat, claims.Exp)
	}
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	signer, _ := NewSigner([]byte("test-secret"))
	token, err := signer.Sign(Claims{Sub: "user-1"})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]
	if _, err := signer.Verify(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	signer, _ := NewSigner([]byte("secret-a"))
	other, _ := NewSigner([]byte("secret-b"))

	token, err := signer.Sign(Claims{Sub: "user-1"})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if _, err := other.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	signer, _ := NewSigner([]byte("test-secret"))
	token, err := signer.Sign(Claims{
		Sub: "user-1",
		Iat: time.Now().UTC().Add(-2 * time.Hour).Unix(),
		Exp: time.Now().UTC().Add(-time.Hour).Unix(),
	})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if _, err := signer.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsMalformed(t *testing.T) {
	signer, _ := NewSigner([]byte("test-secret"))
	for _, token := range []string{"", "a", "a.b", "a.b.c.d"} {
		if _, err := signer.Verify(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("token %q: expected ErrInvalidToken, got %v", token, err)
		}
	}
}
