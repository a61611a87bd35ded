package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
)

func randomHex(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		log.Printf("Could not read random bytes: %s\n", err.Error())
		return strings.ReplaceAll(uuid.New().String(), "-", "")[:n*2]
	}
	return hex.EncodeToString(buf)
}

// GenerateOrderNumber returns a human-quotable order reference, e.g.
// ORD20250901-5F3A21.
func GenerateOrderNumber() string {
	suffix := strings.ToUpper(randomHex(3))
	return fmt.Sprintf("ORD%s-%s", time.Now().Format("20060102"), suffix)
}

// GenerateTransactionCode returns the short uppercase code embedded in the
// payment QR description. It is the reconciliation key between the bank
// statement and an order, so it must be unique and easy to eyeball.
func GenerateTransactionCode() string {
	id := uuid.New()
	code := strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))
	return code[:12]
}

// GenerateTicketNumber returns the opaque QR payload for one admission unit.
// Long enough not to be guessable, never shown to be typed by a human.
func GenerateTicketNumber() string {
	return fmt.Sprintf("TKT-%s", strings.ToUpper(randomHex(12)))
}
