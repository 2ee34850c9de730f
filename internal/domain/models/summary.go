package models

import "time"

// SummaryEntry is one row of the chronological operations view. SiloName
// and SiloBalanceKg reflect the owning silo at read time, not at the time
// the operation was recorded; both are nil when the silo no longer exists.
type SummaryEntry struct {
	ID            uint          `json:"id"`
	SiloID        uint          `json:"silo_id"`
	SiloName      *string       `json:"silo_name"`
	Type          OperationType `json:"type"`
	AmountKg      int64         `json:"amount_kg"`
	CreatedAt     time.Time     `json:"created_at"`
	SiloBalanceKg *int64        `json:"balance_kg_post"`
}
