package billing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strconv"
	"strings"
)

// HMACSignatureKey is the additionalData key holding the item signature.
const HMACSignatureKey = "hmacSignature"

// NotificationSigningString builds the payload Adyen signs for a notification item.
func NotificationSigningString(item NotificationRequestItem) string {
	return strings.Join([]string{
		item.PspReference,
		item.OriginalReference,
		item.MerchantAccountCode,
		item.MerchantReference,
		strconv.FormatInt(item.Amount.Value, 10),
		item.Amount.Currency,
		item.EventCode,
		item.Success,
	}, ":")
}

// SignNotification computes the base64 HMAC-SHA256 for item with a hex encoded key.
func SignNotification(item NotificationRequestItem, hexKey string) (string, error) {
	key, err := hex.DecodeString(strings.TrimSpace(hexKey))
	if err != nil {
		return "", err
	}
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(NotificationSigningString(item)))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}

// VerifyNotificationHMAC checks the item's hmacSignature against hexKey.
func VerifyNotificationHMAC(item NotificationRequestItem, hexKey string) bool {
	sig := strings.TrimSpace(item.AdditionalData[HMACSignatureKey])
	if sig == "" || strings.TrimSpace(hexKey) == "" {
		return false
	}

	decodedSig, err := base64.StdEncoding.DecodeString(sig)
	if err != nil {
		return false
	}
	expected, err := SignNotification(item, hexKey)
	if err != nil {
		return false
	}
	decodedExpected, _ := base64.StdEncoding.DecodeString(expected)
	return hmac.Equal(decodedExpected, decodedSig)
}
