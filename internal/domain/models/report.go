package models

import "time"

// LowStockSilo identifies a committed silo whose balance sits below the
// configured alert threshold.
type LowStockSilo struct {
	SiloID    uint   `bson:"silo_id" json:"silo_id"`
	Name      string `bson:"name" json:"name"`
	Cereal    Cereal `bson:"cereal" json:"cereal"`
	BalanceKg int64  `bson:"balance_kg" json:"balance_kg"`
}

// InventorySnapshot represents the aggregated inventory state produced by
// the scheduled reporting job.
type InventorySnapshot struct {
	GeneratedAt    time.Time        `bson:"generated_at" json:"generated_at"`
	SiloCount      int              `bson:"silo_count" json:"silo_count"`
	TotalBalanceKg int64            `bson:"total_balance_kg" json:"total_balance_kg"`
	PerCerealKg    map[Cereal]int64 `bson:"per_cereal_kg" json:"per_cereal_kg"`
	LowStock       []LowStockSilo   `bson:"low_stock" json:"low_stock"`
}
