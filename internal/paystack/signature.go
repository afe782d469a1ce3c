package paystack

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
)

// ValidateWebhookSignature recomputes the HMAC-SHA512 of the raw webhook body
// under the active secret key and compares it with the received header. The
// comparison is constant-time to defeat timing attacks. Returns false on a
// missing or mismatched header.
func (c *Client) ValidateWebhookSignature(body []byte, signatureHeader string) bool {
	if signatureHeader == "" {
		return false
	}

	mac := hmac.New(sha512.New, []byte(c.secretKey))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(signatureHeader), []byte(expected))
}
