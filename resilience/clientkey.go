package resilience

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Client key derivation for the rate limiter. Keys are prefixed by kind
// so an API key and an IP that happen to collide stay distinct buckets.

// ClientKeyFromAPIKey derives a bucket key from an API key. Only a short
// prefix is kept so full credentials never end up in logs or metrics.
func ClientKeyFromAPIKey(apiKey string) string {
	if len(apiKey) > 8 {
		apiKey = apiKey[:8]
	}
	return fmt.Sprintf("key:%s", apiKey)
}

// ClientKeyFromAddr derives a bucket key from a remote address.
func ClientKeyFromAddr(addr string) string {
	if addr == "" {
		addr = "unknown"
	}
	return fmt.Sprintf("ip:%s", addr)
}

// ClientKeyFromToken derives a bucket key from the subject claim of a JWT
// bearer token. The token is parsed without signature verification;
// authenticating the caller is the caller's concern, this only needs a
// stable per-client identity. Returns false when no subject can be
// extracted.
func ClientKeyFromToken(tokenString string) (string, bool) {
	parser := jwt.NewParser()

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return "", false
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", false
	}

	return fmt.Sprintf("sub:%s", sub), true
}
