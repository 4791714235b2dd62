package util

import (
	"strings"

	"github.com/google/uuid"
)

// OrderNumberLength is the fixed length of a customer-facing order number
const OrderNumberLength = 8

// GenerateOrderNumber returns a short human-shareable order number:
// the first 8 characters of a UUID, uppercased. Uniqueness is enforced
// by the database constraint on orders.order_number.
func GenerateOrderNumber() string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	return strings.ToUpper(id[:OrderNumberLength])
}
