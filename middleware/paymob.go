package middleware

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// PaymobHMACFields is the gateway's documented concatenation order for
// transaction callbacks. It is an external contract: never reorder.
var PaymobHMACFields = []string{
	"amount_cents",
	"created_at",
	"currency",
	"error_occured",
	"has_parent_transaction",
	"id",
	"integration_id",
	"is_3d_secure",
	"is_auth",
	"is_capture",
	"is_refunded",
	"is_standalone_payment",
	"is_voided",
	"order",
	"owner",
	"pending",
	"source_data.pan",
	"source_data.sub_type",
	"source_data.type",
	"success",
}

// ComputePaymobSignature concatenates the documented fields (absent
// fields count as empty) and returns the hex HMAC-SHA512 over the
// result.
func ComputePaymobSignature(secret string, params url.Values) string {
	var sb strings.Builder
	for _, field := range PaymobHMACFields {
		sb.WriteString(params.Get(field))
	}
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(sb.String()))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyPaymobHMAC rejects callback requests whose signature does not
// match the one recomputed with the server-held secret. Without the
// secret configured the endpoint fails closed instead of skipping
// verification.
func VerifyPaymobHMAC() gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := os.Getenv("PAYMOB_HMAC_SECRET")
		if secret == "" {
			log.Println("❌ PAYMOB_HMAC_SECRET is not set; refusing payment callback")
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "payment callbacks unavailable"})
			c.Abort()
			return
		}

		provided := c.Query("hmac")
		if provided == "" {
			c.JSON(http.StatusForbidden, gin.H{"error": "missing hmac signature"})
			c.Abort()
			return
		}

		calculated := ComputePaymobSignature(secret, c.Request.URL.Query())
		if !hmac.Equal([]byte(calculated), []byte(strings.ToLower(provided))) {
			// Security event: keep both values for audit.
			log.Printf("❌ Paymob callback signature mismatch: provided=%s calculated=%s", provided, calculated)
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid callback signature"})
			c.Abort()
			return
		}

		c.Next()
	}
}
