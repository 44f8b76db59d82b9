package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
)

const (
	HeaderSignature = "X-Ledger-Signature"
	HeaderTimestamp = "X-Ledger-Timestamp"
	HeaderRequestID = "X-Ledger-Request-Id"
)

// Sign computes the HMAC-SHA256 signature of a gateway request.
// The signed payload is {timestamp}.{request_id}.{body} and the result has the form "sha256=<hex>".
func Sign(secret string, timestamp int64, requestID string, body []byte) string {
	signaturePayload := fmt.Sprintf("%d.%s.%s", timestamp, requestID, string(body))

	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(signaturePayload))

	return "sha256=" + hex.EncodeToString(h.Sum(nil))
}

// signedHeaders returns the headers authenticating a request body
func signedHeaders(secret, apiKey, requestID string, now time.Time, body []byte) map[string]string {
	ts := now.Unix()
	headers := map[string]string{
		HeaderTimestamp: strconv.FormatInt(ts, 10),
		HeaderRequestID: requestID,
	}
	if secret != "" {
		headers[HeaderSignature] = Sign(secret, ts, requestID, body)
	}
	if apiKey != "" {
		headers["Authorization"] = "Bearer " + apiKey
	}
	return headers
}
