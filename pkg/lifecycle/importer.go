// Package lifecycle defines contracts for preparing reference storage
// used by the recommendation engine.
package lifecycle

import (
	"context"

	"github.com/agrosense/fertadvisor/pkg/deficiency"
	"github.com/agrosense/fertadvisor/pkg/dosage"
)

// Importer writes reference tables into a database. Import replaces
// existing rows, so it is safe to run repeatedly.
type Importer interface {
	// Import creates the schema if needed and stores both tables.
	Import(
		ctx context.Context,
		profiles *deficiency.Table,
		dosages *dosage.Table,
	) (Stats, error)
}

// Stats reports numbers of imported rows.
type Stats struct {
	Profiles int
	Dosages  int
}
