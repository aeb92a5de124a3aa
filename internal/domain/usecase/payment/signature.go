package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// SignOrderPayment computes the checkout signature of orderID|paymentID
func SignOrderPayment(secret, orderID, paymentID string) string {
	return SignPayload(secret, []byte(orderID+"|"+paymentID))
}

// VerifyOrderPayment checks a checkout signature in constant time
func VerifyOrderPayment(secret, orderID, paymentID, signature string) bool {
	return VerifyPayload(secret, []byte(orderID+"|"+paymentID), signature)
}

// SignPayload returns the hex HMAC-SHA256 of payload
func SignPayload(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyPayload checks a hex HMAC-SHA256 signature in constant time.
// An empty secret never verifies.
func VerifyPayload(secret string, payload []byte, signature string) bool {
	if secret == "" || signature == "" {
		return false
	}
	given, err := hex.DecodeString(strings.TrimSpace(signature))
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hmac.Equal(mac.Sum(nil), given)
}
