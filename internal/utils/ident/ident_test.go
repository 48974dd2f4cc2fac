package ident

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentifiers(t *testing.T) {
	t.Run("Prefixes", func(t *testing.T) {
		assert.True(t, strings.HasPrefix(OrderID(), "ORD"))
		assert.True(t, strings.HasPrefix(TransactionID(), "TXN"))
		assert.True(t, strings.HasPrefix(TicketID(), "TKT"))
		assert.True(t, strings.HasPrefix(Reference(), "EQ"))
	})

	t.Run("Reference length and alphabet", func(t *testing.T) {
		ref := Reference()
		assert.Len(t, ref, 10)
		for _, c := range ref[2:] {
			assert.Contains(t, referenceAlphabet, string(c))
		}
	})

	t.Run("Uniqueness", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 100; i++ {
			id := TransactionID()
			assert.False(t, seen[id], "duplicate id %s", id)
			seen[id] = true
		}
	})

	t.Run("Referral code length", func(t *testing.T) {
		assert.Len(t, ReferralCode(), 6)
	})
}
