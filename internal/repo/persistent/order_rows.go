package persistent

import (
	"database/sql"
	"time"

	"artmarket/internal/entity"
)

// orderRow is one row of the orders × order_items × artworks left join
// with at most one preview reference per row. The original schema
// aggregated previews with string concatenation; grouping here keeps
// the query dialect-neutral and the empty case unambiguous.
type orderRow struct {
	ID            string         `gorm:"column:id"`
	BuyerID       string         `gorm:"column:buyer_id"`
	TotalPrice    float64        `gorm:"column:total_price"`
	PaymentStatus string         `gorm:"column:payment_status"`
	OrderStatus   string         `gorm:"column:order_status"`
	PaidAmount    float64        `gorm:"column:paid_amount"`
	ProofRef      string         `gorm:"column:proof_ref"`
	CreatedAt     time.Time      `gorm:"column:created_at"`
	UpdatedAt     time.Time      `gorm:"column:updated_at"`
	ArtworkID     string         `gorm:"column:artwork_id"`
	ArtworkTitle  string         `gorm:"column:artwork_title"`
	ArtworkStatus string         `gorm:"column:artwork_status"`
	CreatorID     string         `gorm:"column:creator_id"`
	PreviewRef    sql.NullString `gorm:"column:preview_ref"`
}

// groupOrderRows collapses join rows into one summary per order,
// collecting preview references in first-appearance order. Images is
// never nil: an artwork without images yields an empty slice.
func groupOrderRows(rows []orderRow) []*entity.OrderSummary {
	out := make([]*entity.OrderSummary, 0, len(rows))
	byID := make(map[string]*entity.OrderSummary)
	seen := make(map[string]map[string]bool)

	for _, r := range rows {
		summary, ok := byID[r.ID]
		if !ok {
			summary = &entity.OrderSummary{
				Order: entity.Order{
					ID:            r.ID,
					BuyerID:       r.BuyerID,
					TotalPrice:    r.TotalPrice,
					PaymentStatus: entity.PaymentStatus(r.PaymentStatus),
					OrderStatus:   entity.OrderStatus(r.OrderStatus),
					PaidAmount:    r.PaidAmount,
					ProofRef:      r.ProofRef,
					CreatedAt:     r.CreatedAt,
					UpdatedAt:     r.UpdatedAt,
				},
				ArtworkID:     r.ArtworkID,
				ArtworkTitle:  r.ArtworkTitle,
				ArtworkStatus: entity.ArtworkStatus(r.ArtworkStatus),
				CreatorID:     r.CreatorID,
				Images:        []string{},
			}
			byID[r.ID] = summary
			seen[r.ID] = make(map[string]bool)
			out = append(out, summary)
		}

		if r.PreviewRef.Valid && !seen[r.ID][r.PreviewRef.String] {
			summary.Images = append(summary.Images, r.PreviewRef.String)
			seen[r.ID][r.PreviewRef.String] = true
		}
	}

	return out
}
