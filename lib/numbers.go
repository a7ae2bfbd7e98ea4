package lib

import (
	"fmt"
	"math/rand"
	"time"
)

const orderNumberChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateOrderNumber generates a human-readable order number in the format
// ORD-<unix millis>-<6 random alphanumerics>. Collisions are astronomically
// unlikely; the unique constraint on order_number catches the rest.
func GenerateOrderNumber() string {
	// Use a local rand.Source + rand.Rand for thread safety
	src := rand.NewSource(time.Now().UnixNano())
	r := rand.New(src)

	const length = 6
	randomPart := make([]byte, length)
	for i := range randomPart {
		randomPart[i] = orderNumberChars[r.Intn(len(orderNumberChars))]
	}

	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), string(randomPart))
}

// FormatReceiptNumber formats a daily-sequential receipt number:
// RCP-YYYYMMDD-NNNN. Uniqueness is guaranteed by the receipt_number
// constraint, not by this function; callers retry with the next sequence
// on conflict.
func FormatReceiptNumber(day time.Time, seq int) string {
	return fmt.Sprintf("RCP-%s-%04d", day.Format("20060102"), seq)
}
