package auth

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"cctv-admin-gateway/internal/rbac"
)

func tokenWithPayload(t *testing.T, payload any) string {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	return header + "." + base64.RawURLEncoding.EncodeToString(raw) + ".sig"
}

func TestDecodeUnverified_WellFormed(t *testing.T) {
	tok := tokenWithPayload(t, map[string]any{
		"sub":        "42",
		"email":      "ops@example.com",
		"role":       "company_admin",
		"company_id": 7,
		"exp":        1900000000,
	})

	claims, ok := DecodeUnverified(tok)
	if !ok {
		t.Fatalf("expected decode to succeed")
	}
	if claims.Subject != "42" || claims.Email != "ops@example.com" {
		t.Fatalf("unexpected identity: %+v", claims)
	}
	if claims.Role != rbac.RoleCompanyAdmin || claims.CompanyID != 7 {
		t.Fatalf("unexpected tenant claims: %+v", claims)
	}
	if claims.ExpiresAt != 1900000000 {
		t.Fatalf("unexpected exp: %d", claims.ExpiresAt)
	}
}

func TestDecodeUnverified_StandardAlphabetAndPadding(t *testing.T) {
	// Older issuers emitted the standard base64 alphabet with padding.
	payload := `{"sub":"x","role":"user","email":"a?b>c@example.com"}`
	seg := base64.StdEncoding.EncodeToString([]byte(payload))

	claims, ok := DecodeUnverified("h." + seg + ".s")
	if !ok {
		t.Fatalf("expected standard-alphabet payload to decode")
	}
	if claims.Role != rbac.RoleUser || claims.Email != "a?b>c@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestDecodeUnverified_IgnoresUnknownFields(t *testing.T) {
	tok := tokenWithPayload(t, map[string]any{
		"sub": "1", "role": "user", "iss": "backend", "scope": []string{"a"},
	})
	claims, ok := DecodeUnverified(tok)
	if !ok || claims.Subject != "1" {
		t.Fatalf("unexpected result: %+v ok=%v", claims, ok)
	}
}

func TestDecodeUnverified_Malformed(t *testing.T) {
	cases := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"single segment", "abc"},
		{"empty payload", "abc..def"},
		{"non-base64 payload", "abc.!!!.def"},
		{"base64 but not json", "abc." + base64.RawURLEncoding.EncodeToString([]byte("not json")) + ".def"},
		{"json but wrong shape", "abc." + base64.RawURLEncoding.EncodeToString([]byte(`[1,2]`)) + ".def"},
	}
	for _, tc := range cases {
		if _, ok := DecodeUnverified(tc.token); ok {
			t.Fatalf("%s: expected decode failure", tc.name)
		}
	}
}

func TestDecodeUnverified_NoSignatureSegment(t *testing.T) {
	// Two segments are enough; the signature is never inspected here.
	seg := base64.RawURLEncoding.EncodeToString([]byte(`{"role":"user"}`))
	if _, ok := DecodeUnverified("h." + seg); !ok {
		t.Fatalf("expected two-segment token to decode")
	}
}

func TestDisplayEmail_FallsBackToSubject(t *testing.T) {
	c := UnverifiedClaims{Subject: "17"}
	if c.DisplayEmail() != "17" {
		t.Fatalf("expected subject fallback, got %q", c.DisplayEmail())
	}
	c.Email = "x@example.com"
	if c.DisplayEmail() != "x@example.com" {
		t.Fatalf("expected email, got %q", c.DisplayEmail())
	}
}
