package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SignatureHeader carries the webhook signature in the form
// "t=<unix timestamp>,v1=<hex hmac>". The HMAC-SHA256 is computed over
// "<timestamp>.<raw body>" with the shared webhook secret.
const SignatureHeader = "X-Webhook-Signature"

const signatureTolerance = 5 * time.Minute

var (
	ErrMissingSignature   = errors.New("missing webhook signature")
	ErrMalformedSignature = errors.New("malformed webhook signature")
	ErrInvalidSignature   = errors.New("webhook signature verification failed")
	ErrStaleSignature     = errors.New("webhook signature timestamp outside tolerance")
)

// VerifySignature checks the signature header against the raw request body.
// An empty secret disables verification entirely; that mode exists for local
// development against an unsigned provider stub and must never be configured
// in production.
func VerifySignature(secret, header string, body []byte, now time.Time) error {
	if secret == "" {
		return nil
	}
	if header == "" {
		return ErrMissingSignature
	}

	ts, sig, err := parseSignatureHeader(header)
	if err != nil {
		return err
	}

	sent := time.Unix(ts, 0)
	age := now.Sub(sent)
	if age > signatureTolerance || age < -signatureTolerance {
		return ErrStaleSignature
	}

	expected := computeSignature(secret, ts, body)
	if !hmac.Equal([]byte(expected), []byte(sig)) {
		return ErrInvalidSignature
	}

	return nil
}

func parseSignatureHeader(header string) (int64, string, error) {
	var ts int64
	var sig string

	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			return 0, "", ErrMalformedSignature
		}
		switch key {
		case "t":
			parsed, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return 0, "", ErrMalformedSignature
			}
			ts = parsed
		case "v1":
			sig = value
		}
	}

	if ts == 0 || sig == "" {
		return 0, "", ErrMalformedSignature
	}

	return ts, sig, nil
}

func computeSignature(secret string, ts int64, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", ts)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// SignPayload produces a valid signature header for the given body. Used by
// tests and the local provider stub.
func SignPayload(secret string, body []byte, now time.Time) string {
	ts := now.Unix()
	return fmt.Sprintf("t=%d,v1=%s", ts, computeSignature(secret, ts, body))
}
