//go:build integration

package integration

import (
	"database/sql"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/zatekoja/travelplanner/internal/domain/entities"
	"github.com/zatekoja/travelplanner/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/travelplanner/internal/infrastructure/clients/redis"
	"github.com/zatekoja/travelplanner/pkg/config"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func newTestRedisClient(t *testing.T) *redis.Client {
	t.Helper()

	cfg := &config.RedisConfig{
		Host:     getEnv("TEST_REDIS_HOST", "localhost"),
		Port:     getEnvAsInt("TEST_REDIS_PORT", 6379),
		Password: getEnv("TEST_REDIS_PASSWORD", ""),
		DB:       getEnvAsInt("TEST_REDIS_DB", 0),
		Enabled:  true,
	}

	client, err := redis.NewClient(cfg)
	require.NoError(t, err, "Failed to create redis client")
	return client
}

func newTestPostgresClient(t *testing.T) *postgres.Client {
	t.Helper()

	cfg := &config.DatabaseConfig{
		Host:     getEnv("TEST_DB_HOST", "localhost"),
		Port:     getEnvAsInt("TEST_DB_PORT", 5432),
		User:     getEnv("TEST_DB_USER", "postgres"),
		Password: getEnv("TEST_DB_PASSWORD", "postgres"),
		Database: getEnv("TEST_DB_NAME", "travel_planner_test"),
		SSLMode:  getEnv("TEST_DB_SSLMODE", "disable"),
	}

	client, err := postgres.NewClient(cfg)
	require.NoError(t, err, "Failed to create postgres client")
	return client
}

func runMigrations(t *testing.T, db *sql.DB, paths ...string) {
	t.Helper()
	for _, path := range paths {
		migrationSQL, err := os.ReadFile(path)
		require.NoError(t, err)
		_, err = db.Exec(string(migrationSQL))
		require.NoError(t, err)
	}
}

func resetTables(t *testing.T, db *sql.DB) {
	t.Helper()
	_, err := db.Exec(`
		TRUNCATE TABLE
			trip_items, trips, payments, hotel_bookings,
			restaurant_cuisines, cuisines, restaurants, hotels, places, regions, users
		RESTART IDENTITY CASCADE
	`)
	require.NoError(t, err)
}

func seedUser(t *testing.T, db *sql.DB, email string) int64 {
	t.Helper()
	var id int64
	err := db.QueryRow(`
		INSERT INTO users (email, password_hash, full_name)
		VALUES ($1, '!', 'Integration User')
		RETURNING id
	`, email).Scan(&id)
	require.NoError(t, err)
	return id
}

func waitForCatalogEvent(t *testing.T, ch <-chan *entities.CatalogEvent) *entities.CatalogEvent {
	t.Helper()
	select {
	case event := <-ch:
		require.NotNil(t, event)
		return event
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for catalog event")
		return nil
	}
}
