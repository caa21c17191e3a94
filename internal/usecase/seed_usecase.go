package usecase

import "context"

// SeedResult reports what example-data seeding created.
type SeedResult struct {
	Units   int `json:"units"`
	Items   int `json:"items"`
	History int `json:"history"`
}

// SeedUsecase defines the interface for demo data management and bulk purges.
type SeedUsecase interface {
	// SeedExampleData populates demo units, items and history, all flagged
	// as example data. Idempotent: existing example units are replaced.
	SeedExampleData(ctx context.Context) (*SeedResult, error)

	// ClearExampleData removes only data flagged as example data.
	ClearExampleData(ctx context.Context) error

	// PurgeAll wipes inventory, history and reminder keys. Requires the
	// confirm flag. Admin only.
	PurgeAll(ctx context.Context, confirm bool) error
}
