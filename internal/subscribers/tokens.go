package subscribers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"github.com/goliatone/go-site/internal/identity"
)

// Signer issues and checks unsubscribe tokens. A Signer without a secret
// issues no tokens and accepts any.
type Signer struct {
	secret []byte
}

func NewSigner(secret string) Signer {
	return Signer{secret: []byte(secret)}
}

func (s Signer) Enabled() bool {
	return len(s.secret) > 0
}

// Token returns hex(HMAC-SHA256(secret, "audience:email")).
func (s Signer) Token(audience Audience, email string) string {
	if !s.Enabled() {
		return ""
	}
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(string(audience) + ":" + identity.NormalizeEmail(email)))
	return hex.EncodeToString(mac.Sum(nil))
}

func (s Signer) Verify(audience Audience, email, token string) bool {
	if !s.Enabled() {
		return true
	}
	expected, err := hex.DecodeString(s.Token(audience, email))
	if err != nil {
		return false
	}
	given, err := hex.DecodeString(token)
	if err != nil {
		return false
	}
	return hmac.Equal(expected, given)
}
