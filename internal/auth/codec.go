package auth

import (
	"encoding/base64"
	"encoding/json"
	"strings"
)

// TokenCookie is the session cookie name shared with the browser.
const TokenCookie = "token"

// DecodeUnverified extracts the claims from the payload segment of a
// compact token without checking the signature. It is a total function:
// any malformed input yields (zero, false), never an error or panic.
//
// Tokens from the backend use the URL-safe base64 alphabet, but older
// issuers used the standard one, so both are accepted, with or without
// padding.
func DecodeUnverified(token string) (UnverifiedClaims, bool) {
	parts := strings.Split(token, ".")
	if len(parts) < 2 || parts[1] == "" {
		return UnverifiedClaims{}, false
	}

	raw, err := decodeSegment(parts[1])
	if err != nil {
		return UnverifiedClaims{}, false
	}

	var claims UnverifiedClaims
	if err := json.Unmarshal(raw, &claims); err != nil {
		return UnverifiedClaims{}, false
	}
	return claims, true
}

func decodeSegment(seg string) ([]byte, error) {
	seg = strings.ReplaceAll(seg, "+", "-")
	seg = strings.ReplaceAll(seg, "/", "_")
	seg = strings.TrimRight(seg, "=")
	return base64.RawURLEncoding.DecodeString(seg)
}
