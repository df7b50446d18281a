package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/AdyenBridge/app/models"
)

func TestFilterGiftcardRecords(t *testing.T) {
	records := []StateDataRecord{
		{ID: 1, StateData: `{"paymentMethod":{"type":"giftcard","brand":"givex"}}`},
		{ID: 2, StateData: `{"paymentMethod":{"type":"scheme","brand":"visa"}}`},
		{ID: 3, StateData: `{"paymentMethod":{"type":"giftcard"}}`},
		{ID: 4, StateData: `not json`},
		{ID: 5, StateData: `{"paymentMethod":{"type":"giftcard","brand":"svs"}}`},
		{ID: 6, StateData: `{"paymentMethod":{"type":"giftcard","brand":null}}`},
		{ID: 7, StateData: `{}`},
	}

	got := FilterGiftcardRecords(records)

	require.Len(t, got, 2)
	assert.Equal(t, uint(1), got[0].ID)
	assert.Equal(t, uint(5), got[1].ID)
}

func TestFilterGiftcardRecords_Empty(t *testing.T) {
	assert.Empty(t, FilterGiftcardRecords(nil))
	assert.Empty(t, FilterGiftcardRecords([]StateDataRecord{}))
}

type fakeStateDataReader struct {
	rows      []models.StateData
	err       error
	lastQuote uint
	lastOrder string
}

func (f *fakeStateDataReader) ListByQuoteID(quoteID uint, order string) ([]models.StateData, error) {
	f.lastQuote = quoteID
	f.lastOrder = order
	return f.rows, f.err
}

func TestGiftcardDataBuilder_Build(t *testing.T) {
	reader := &fakeStateDataReader{rows: []models.StateData{
		{ID: 10, QuoteID: 7, StateData: `{"paymentMethod":{"type":"giftcard","brand":"givex"}}`},
		{ID: 11, QuoteID: 7, StateData: `{"paymentMethod":{"type":"scheme","brand":"visa"}}`},
	}}

	req, err := NewGiftcardDataBuilder(reader).Build(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, uint(7), reader.lastQuote)
	assert.Equal(t, models.SortAscending, reader.lastOrder)

	body, ok := req["body"].(map[string]any)
	require.True(t, ok)
	params, ok := body[GiftcardRequestParametersKey].([]StateDataRecord)
	require.True(t, ok)
	require.Len(t, params, 1)
	assert.Equal(t, uint(10), params[0].ID)
}

func TestGiftcardDataBuilder_NoGiftcardsOmitsKey(t *testing.T) {
	reader := &fakeStateDataReader{rows: []models.StateData{
		{ID: 11, QuoteID: 7, StateData: `{"paymentMethod":{"type":"scheme","brand":"visa"}}`},
	}}

	req, err := NewGiftcardDataBuilder(reader).Build(context.Background(), 7)
	require.NoError(t, err)
	assert.NotContains(t, req, "body")
}

func TestGiftcardDataBuilder_ReaderError(t *testing.T) {
	reader := &fakeStateDataReader{err: errors.New("db down")}

	_, err := NewGiftcardDataBuilder(reader).Build(context.Background(), 1)
	assert.Error(t, err)
}
