package models

import "time"

// Cereal identifies the variety of grain a silo is committed to.
type Cereal string

const (
	CerealSoy       Cereal = "Soy"
	CerealCorn      Cereal = "Corn"
	CerealWheat     Cereal = "Wheat"
	CerealSunflower Cereal = "Sunflower"
)

// Valid reports whether the cereal is one of the enumerated varieties.
func (c Cereal) Valid() bool {
	switch c {
	case CerealSoy, CerealCorn, CerealWheat, CerealSunflower:
		return true
	}
	return false
}

// OperationType distinguishes the two kinds of ledger events.
type OperationType string

const (
	OperationLoad   OperationType = "LOAD"
	OperationUnload OperationType = "UNLOAD"
)

// Silo is a named storage unit holding a single cereal variety and a
// non-negative mass balance. An empty Cereal means no variety has been
// committed yet; once set it never changes for the life of the silo.
type Silo struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Cereal    Cereal    `gorm:"size:20" json:"cereal"`
	BalanceKg int64     `gorm:"not null;default:0;check:balance_kg >= 0" json:"balance_kg"`
	CreatedAt time.Time `json:"created_at"`
}

func (Silo) TableName() string {
	return "silos"
}

// Operation is an immutable record of a single load or unload event
// against a silo. Rows are only ever appended; they disappear solely when
// the owning silo is deleted.
type Operation struct {
	ID        uint          `gorm:"primarykey" json:"id"`
	SiloID    uint          `gorm:"index;not null" json:"silo_id"`
	Type      OperationType `gorm:"size:10;not null" json:"type"`
	AmountKg  int64         `gorm:"not null" json:"amount_kg"`
	CreatedAt time.Time     `json:"created_at"`
}

func (Operation) TableName() string {
	return "operations"
}

// MigrateModels lists the model objects that receive DB migrations.
var MigrateModels = []any{
	&Silo{},
	&Operation{},
}
