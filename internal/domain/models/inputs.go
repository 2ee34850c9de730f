package models

// CreateSiloInput carries the validated payload for silo creation.
type CreateSiloInput struct {
	Name string `json:"name"`
}

// RenameSiloInput carries the validated payload for a silo rename.
type RenameSiloInput struct {
	Name string `json:"name"`
}

// LoadInput carries the validated payload for a load operation. Cereal is
// optional once the silo already has a committed variety.
type LoadInput struct {
	AmountKg int64  `json:"amount"`
	Cereal   Cereal `json:"cereal"`
}

// UnloadInput carries the validated payload for an unload operation.
type UnloadInput struct {
	AmountKg int64 `json:"amount"`
}
