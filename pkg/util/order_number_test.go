package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOrderNumber(t *testing.T) {
	number := GenerateOrderNumber()

	assert.Len(t, number, OrderNumberLength)
	assert.Equal(t, strings.ToUpper(number), number)
	assert.NotContains(t, number, "-")
}

func TestGenerateOrderNumber_Varies(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		seen[GenerateOrderNumber()] = true
	}
	// Collisions are possible in principle but not across 100 draws
	assert.Greater(t, len(seen), 95)
}
