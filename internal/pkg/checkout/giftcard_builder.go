package checkout

import (
	"context"
	"fmt"

	"github.com/ManuelReschke/AdyenBridge/app/models"
)

// GiftcardRequestParametersKey is the request body key forwarded to the payments API.
const GiftcardRequestParametersKey = "giftcardRequestParameters"

// StateDataReader loads the state data rows captured for a quote.
type StateDataReader interface {
	ListByQuoteID(quoteID uint, order string) ([]models.StateData, error)
}

// GiftcardDataBuilder builds the gift card part of a payments request.
type GiftcardDataBuilder struct {
	repo StateDataReader
}

// NewGiftcardDataBuilder creates a builder reading rows from repo.
func NewGiftcardDataBuilder(repo StateDataReader) *GiftcardDataBuilder {
	return &GiftcardDataBuilder{repo: repo}
}

// Build returns {"body": {"giftcardRequestParameters": [...]}} when the quote
// has at least one gift card state data row, and an empty request otherwise.
func (b *GiftcardDataBuilder) Build(ctx context.Context, quoteID uint) (map[string]any, error) {
	_ = ctx
	rows, err := b.repo.ListByQuoteID(quoteID, models.SortAscending)
	if err != nil {
		return nil, fmt.Errorf("load state data for quote %d: %w", quoteID, err)
	}

	records := make([]StateDataRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, RecordFromModel(row))
	}

	request := map[string]any{}
	giftcards := FilterGiftcardRecords(records)
	if len(giftcards) > 0 {
		request["body"] = map[string]any{
			GiftcardRequestParametersKey: giftcards,
		}
	}
	return request, nil
}

// RecordFromModel converts a stored row into a record.
func RecordFromModel(m models.StateData) StateDataRecord {
	return StateDataRecord{
		ID:        m.ID,
		QuoteID:   m.QuoteID,
		StateData: m.StateData,
		CreatedAt: m.CreatedAt,
	}
}
