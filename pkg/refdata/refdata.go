// Package refdata defines how reference tables reach the engine.
// Implementations live in internal/ioref.
package refdata

import (
	"context"

	"github.com/agrosense/fertadvisor/pkg/deficiency"
	"github.com/agrosense/fertadvisor/pkg/dosage"
)

// Source loads the two reference tables. Tables are read once at
// startup and are immutable afterwards.
type Source interface {
	// Profiles loads the regional deficiency table.
	Profiles(ctx context.Context) (*deficiency.Table, error)

	// Dosages loads the dosage table.
	Dosages(ctx context.Context) (*dosage.Table, error)

	// Close releases resources held by the source.
	Close() error
}
