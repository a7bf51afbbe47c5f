package security

import (
	"context"
	"testing"
	"time"

	"github.com/Rohan-debug788/SkillSwap/pkg/errors"
)

const testSecret = "test_secret_key_minimum_32_chars!!"

func TestGenerateToken(t *testing.T) {
	tests := []struct {
		name   string
		userID string
		email  string
	}{
		{
			name:   "Regular user",
			userID: "3f1c2a9e-0000-4000-8000-000000000001",
			email:  "alice@example.com",
		},
		{
			name:   "User without email",
			userID: "3f1c2a9e-0000-4000-8000-000000000002",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := GenerateJWT(tt.userID, tt.email, testSecret, time.Hour)
			if err != nil {
				t.Fatalf("GenerateJWT() error = %v", err)
			}

			if token == "" {
				t.Error("GenerateJWT() returned empty token")
			}

			claims, err := ValidateJWT(token, testSecret)
			if err != nil {
				t.Fatalf("ValidateJWT() error = %v", err)
			}

			if claims.UserID != tt.userID {
				t.Errorf("UserID = %s, want %s", claims.UserID, tt.userID)
			}

			if claims.Email != tt.email {
				t.Errorf("Email = %s, want %s", claims.Email, tt.email)
			}
		})
	}
}

func TestValidateToken_InvalidToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "Empty token",
			token: "",
		},
		{
			name:  "Invalid format",
			token: "invalid.token.here",
		},
		{
			name:  "Random string",
			token: "randomstring",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateJWT(tt.token, testSecret)
			if err == nil {
				t.Error("ValidateJWT() expected error for invalid token, got nil")
			}
		})
	}
}

func TestValidateToken_ExpiredToken(t *testing.T) {
	token, err := GenerateJWT("user-1", "", testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	if _, err := ValidateJWT(token, testSecret); err == nil {
		t.Error("ValidateJWT() expected error for expired token, got nil")
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := GenerateJWT("user-1", "", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	if _, err := ValidateJWT(token, "another_secret_key_minimum_32_chars"); err == nil {
		t.Error("ValidateJWT() expected error for wrong secret, got nil")
	}
}

func TestJWTVerifier(t *testing.T) {
	verifier := NewJWTVerifier(testSecret)
	token, err := GenerateJWT("user-42", "", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	tests := []struct {
		name    string
		input   string
		wantID  string
		wantErr bool
	}{
		{name: "Raw token", input: token, wantID: "user-42"},
		{name: "Bearer prefix", input: "Bearer " + token, wantID: "user-42"},
		{name: "Empty", input: "", wantErr: true},
		{name: "Garbage", input: "Bearer nope", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := verifier.Verify(context.Background(), tt.input)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeUnauthorized) {
					t.Errorf("Verify() error = %v, want UNAUTHORIZED", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Verify() error = %v", err)
			}
			if id != tt.wantID {
				t.Errorf("Verify() = %s, want %s", id, tt.wantID)
			}
		})
	}
}
