// Package iotesting provides shared test utilities for integration tests.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"os"
	"testing"

	"github.com/agrosense/fertadvisor/pkg/config"
)

// TestDatabaseEnv names the variable with the PostgreSQL database
// used by integration tests.
const TestDatabaseEnv = "FERTADVISOR_TEST_DATABASE"

// TestConfig returns a configuration for PostgreSQL integration tests.
// The test is skipped in short mode and when TestDatabaseEnv is not
// set, so tests never run against a production database by accident.
// Connection settings come from FERTADVISOR_DATABASE_* variables or
// defaults.
func TestConfig(t *testing.T) *config.Config {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	name := os.Getenv(TestDatabaseEnv)
	if name == "" {
		t.Skipf("Skipping integration test, %s is not set", TestDatabaseEnv)
	}

	cfg := config.New()
	opts := []config.Option{config.OptDatabaseDatabase(name)}
	if v := os.Getenv("FERTADVISOR_DATABASE_HOST"); v != "" {
		opts = append(opts, config.OptDatabaseHost(v))
	}
	if v := os.Getenv("FERTADVISOR_DATABASE_USER"); v != "" {
		opts = append(opts, config.OptDatabaseUser(v))
	}
	if v := os.Getenv("FERTADVISOR_DATABASE_PASSWORD"); v != "" {
		opts = append(opts, config.OptDatabasePassword(v))
	}
	cfg.Update(opts)
	return cfg
}
