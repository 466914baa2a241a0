package pdfmill

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// VerifyWebhook recomputes the delivery signature over the raw payload
// and parses it only when the signature matches. The payload must be the
// exact bytes received, before any decoding or re-serialization; a
// reformatted body produces a different MAC.
func (c *client) VerifyWebhook(payload []byte, signature string) (*WebhookEvent, error) {
	if c.webhookSecret == "" {
		return nil, ErrMissingWebhookSecret
	}

	mac := hmac.New(sha256.New, []byte(c.webhookSecret))
	mac.Write(payload)
	expected := SignaturePrefix + hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return nil, ErrInvalidSignature
	}

	var event WebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, ErrMalformedPayload
	}

	return &event, nil
}
