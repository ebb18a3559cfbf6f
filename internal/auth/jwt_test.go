package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndValidate(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, err := tm.Generate("alice")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	subject, err := tm.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if subject != "alice" {
		t.Errorf("subject = %q, want %q", subject, "alice")
	}
}

func TestValidateExpiredToken(t *testing.T) {
	tm := NewTokenManager("test-secret", -time.Minute)

	token, err := tm.Generate("alice")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := tm.Validate(token); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expired token: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestValidateTamperedSignature(t *testing.T) {
	token, err := NewTokenManager("secret-a", time.Hour).Generate("alice")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := NewTokenManager("secret-b", time.Hour).Validate(token); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("foreign signature: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestValidateMalformedToken(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	for _, input := range []string{"", "garbage", "a.b.c"} {
		if _, err := tm.Validate(input); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Validate(%q): err = %v, want ErrInvalidCredentials", input, err)
		}
	}
}

func TestValidateTokenWithoutSubject(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	claims := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().UTC().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := tm.Validate(token); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("missing subject: err = %v, want ErrInvalidCredentials", err)
	}
}
