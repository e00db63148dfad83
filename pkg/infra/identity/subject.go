package identity

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var parser = jwt.NewParser()

// SubjectFromAuthorization extracts the sub claim from a bearer token without
// verifying it. The result is for audit records only and must never be used
// to authorize a request.
func SubjectFromAuthorization(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(strings.TrimSpace(token), &claims); err != nil {
		return ""
	}
	return claims.Subject
}
