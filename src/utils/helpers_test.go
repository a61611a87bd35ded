package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOrderNumber(t *testing.T) {
	n := GenerateOrderNumber()
	assert.True(t, strings.HasPrefix(n, "ORD"+time.Now().Format("20060102")))
	assert.Len(t, n, 18)
	assert.NotEqual(t, n, GenerateOrderNumber())
}

func TestGenerateTransactionCode(t *testing.T) {
	code := GenerateTransactionCode()
	assert.Len(t, code, 12)
	assert.Equal(t, strings.ToUpper(code), code)
	assert.NotEqual(t, code, GenerateTransactionCode())
}

func TestGenerateTicketNumber(t *testing.T) {
	n := GenerateTicketNumber()
	assert.True(t, strings.HasPrefix(n, "TKT-"))
	assert.Len(t, n, 28)
	assert.Equal(t, strings.ToUpper(n), n)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		num := GenerateTicketNumber()
		assert.False(t, seen[num])
		seen[num] = true
	}
}
