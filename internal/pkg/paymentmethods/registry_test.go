package paymentmethods

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_VVVGiftcard(t *testing.T) {
	m, ok := Lookup(CodeVVVGiftcard)
	require.True(t, ok)

	assert.Equal(t, "adyen_vvvgiftcard", m.Code)
	assert.Equal(t, "vvvgiftcard", m.TxVariant)
	assert.Equal(t, "VVV Giftcard", m.Name)
	assert.False(t, m.SupportsRecurring)
	assert.False(t, m.SupportsManualCapture)
	assert.False(t, m.SupportsAutoCapture)
	assert.False(t, m.SupportsCardOnFile)
	assert.False(t, m.SupportsSubscription)
	assert.False(t, m.SupportsUnscheduledCardOnFile)
	assert.False(t, m.IsWallet)
}

func TestLookup_Unknown(t *testing.T) {
	_, ok := Lookup("adyen_nope")
	assert.False(t, ok)
}

func TestLookupByTxVariant(t *testing.T) {
	m, ok := LookupByTxVariant("paypal")
	require.True(t, ok)
	assert.Equal(t, CodePayPal, m.Code)
	assert.True(t, m.IsWallet)
}

func TestAll_SortedAndKeyed(t *testing.T) {
	all := All()
	require.NotEmpty(t, all)
	assert.True(t, sort.SliceIsSorted(all, func(i, j int) bool { return all[i].Code < all[j].Code }))
	for _, m := range all {
		got, ok := Lookup(m.Code)
		assert.True(t, ok, m.Code)
		assert.Equal(t, m, got)
	}
}
