package auth

import (
	"testing"
	"time"
)

func TestIssueParse_RoundTrip(t *testing.T) {
	ti := NewTokenIssuer("secret", "internhubs", time.Hour)
	raw, err := ti.Issue("65f0c0ffee0000000000abcd", "admin")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	c, err := ti.Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.Subject != "65f0c0ffee0000000000abcd" || c.Role != "admin" {
		t.Fatalf("claims got=%+v", c)
	}
}

func TestParse_Rejects(t *testing.T) {
	good := NewTokenIssuer("secret", "internhubs", time.Hour)
	raw, _ := good.Issue("u1", "user")

	expired := NewTokenIssuer("secret", "internhubs", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _ := expired.Issue("u1", "user")

	tests := []struct {
		name   string
		issuer *TokenIssuer
		raw    string
	}{
		{"wrong secret", NewTokenIssuer("other", "internhubs", time.Hour), raw},
		{"wrong issuer", NewTokenIssuer("secret", "someone-else", time.Hour), raw},
		{"expired", good, old},
		{"garbage", good, "not-a-token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.issuer.Parse(tt.raw); err != ErrInvalidToken {
				t.Fatalf("got=%v want=%v", err, ErrInvalidToken)
			}
		})
	}
}
