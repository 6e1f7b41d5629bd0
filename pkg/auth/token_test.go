package auth

import (
	"testing"
	"time"

	"github.com/clubmate-app/clubmate-backend/pkg/config"
	"github.com/google/uuid"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "clubmate-test",
		ExpirationMinutes: 30,
	}
}

func TestMintAndParseRoundTrip(t *testing.T) {
	cfg := testJWTConfig()
	memberID := uuid.New()

	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		MemberID: memberID,
		Nickname: "sunny",
		JTI:      "jti-1",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.MemberID != memberID {
		t.Fatalf("expected member id %s got %s", memberID, claims.MemberID)
	}
	if claims.Nickname != "sunny" {
		t.Fatalf("unexpected nickname %q", claims.Nickname)
	}
	if claims.ID != "jti-1" {
		t.Fatalf("unexpected jti %q", claims.ID)
	}
}

func TestMintRequiresMemberID(t *testing.T) {
	if _, err := MintAccessToken(testJWTConfig(), time.Now(), AccessTokenPayload{}); err == nil {
		t.Fatal("expected error without member id")
	}
}

func TestMintRequiresSecret(t *testing.T) {
	cfg := testJWTConfig()
	cfg.Secret = ""
	if _, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{MemberID: uuid.New()}); err == nil {
		t.Fatal("expected error without secret")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now().Add(-2*time.Hour), AccessTokenPayload{MemberID: uuid.New()})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	if _, err := ParseAccessToken(cfg, token); err == nil {
		t.Fatal("expected expired token to fail validation")
	}
	if _, err := ParseAccessTokenAllowExpired(cfg, token); err != nil {
		t.Fatalf("allow-expired parse should succeed: %v", err)
	}
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{MemberID: uuid.New()})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	other := cfg
	other.Issuer = "someone-else"
	if _, err := ParseAccessToken(other, token); err == nil {
		t.Fatal("expected issuer mismatch to fail")
	}
}
