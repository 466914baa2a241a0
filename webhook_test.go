package pdfmill

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"
)

func signPayload(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return SignaturePrefix + hex.EncodeToString(mac.Sum(nil))
}

func newWebhookClient(t *testing.T, secret string) *client {
	t.Helper()

	opts := []Option{}
	if secret != "" {
		opts = append(opts, WithWebhookSecret(secret))
	}
	cli, err := NewClient("test-key", opts...)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return cli.(*client)
}

func TestVerifyWebhook(t *testing.T) {
	c := newWebhookClient(t, "top-secret")

	payload := []byte(`{"jobId":"job_9","status":"completed","downloadUrl":"https://cdn.pdfmill.io/job_9.pdf"}`)

	event, err := c.VerifyWebhook(payload, signPayload("top-secret", payload))
	if err != nil {
		t.Fatalf("VerifyWebhook: %v", err)
	}

	if event.JobID != "job_9" {
		t.Errorf("job id = %q", event.JobID)
	}
	if event.Status != JobStatusCompleted {
		t.Errorf("status = %q", event.Status)
	}
	if event.DownloadURL != "https://cdn.pdfmill.io/job_9.pdf" {
		t.Errorf("download url = %q", event.DownloadURL)
	}
}

func TestVerifyWebhookRejectsTamperedSignature(t *testing.T) {
	c := newWebhookClient(t, "top-secret")

	payload := []byte(`{"jobId":"job_9","status":"completed"}`)
	sig := signPayload("top-secret", payload)

	// flip the final hex digit
	last := sig[len(sig)-1]
	flipped := byte('0')
	if last == '0' {
		flipped = '1'
	}
	tampered := sig[:len(sig)-1] + string(flipped)

	if _, err := c.VerifyWebhook(payload, tampered); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestVerifyWebhookRejectsWrongSecret(t *testing.T) {
	c := newWebhookClient(t, "top-secret")

	payload := []byte(`{"jobId":"job_9"}`)
	if _, err := c.VerifyWebhook(payload, signPayload("other-secret", payload)); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestVerifyWebhookRequiresSecret(t *testing.T) {
	c := newWebhookClient(t, "")

	payload := []byte(`{"jobId":"job_9"}`)

	// even a signature that would otherwise match must not pass
	_, err := c.VerifyWebhook(payload, signPayload("", payload))
	if !errors.Is(err, ErrMissingWebhookSecret) {
		t.Fatalf("expected ErrMissingWebhookSecret, got %v", err)
	}
}

func TestVerifyWebhookMalformedPayload(t *testing.T) {
	c := newWebhookClient(t, "top-secret")

	payload := []byte("this is not json")

	_, err := c.VerifyWebhook(payload, signPayload("top-secret", payload))
	if !errors.Is(err, ErrMalformedPayload) {
		t.Fatalf("expected ErrMalformedPayload, got %v", err)
	}
	if errors.Is(err, ErrInvalidSignature) {
		t.Fatal("valid signature over junk must fail as malformed payload, not signature mismatch")
	}
}
