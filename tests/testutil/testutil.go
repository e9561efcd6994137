package testutil

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/kendall-kelly/laundry-pos-api/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// RequireTestEnvironment ensures that tests are running in the test environment.
// It will fail the test immediately if GO_ENV is not set to "test".
func RequireTestEnvironment(t *testing.T) {
	t.Helper()

	env := os.Getenv("GO_ENV")
	if env != "test" {
		t.Fatalf("SAFETY CHECK FAILED: Tests must run with GO_ENV=test to protect the order store. Current GO_ENV=%q.", env)
	}
}

// MustSetTestEnvironment sets GO_ENV to test and fails if it cannot be set.
// Use this in TestMain or suite setup functions.
func MustSetTestEnvironment(t *testing.T) {
	t.Helper()

	if err := os.Setenv("GO_ENV", "test"); err != nil {
		t.Fatalf("Failed to set GO_ENV=test: %v", err)
	}
}

// SetupTestDB opens a migrated SQLite store in a temporary directory.
// A file is used because every connection to ":memory:" gets its own database.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "laundry_test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.AutoMigrate(&models.StoreEntry{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// PricingServer simulates the pricing optimizer
type PricingServer struct {
	*httptest.Server
	calls atomic.Int32
}

// Calls returns how many pricing requests were received
func (s *PricingServer) Calls() int {
	return int(s.calls.Load())
}

// MixedPackResponse prices 20 assorted pieces as one 16.00 mixed pack
const MixedPackResponse = `{
	"custo_total": 16.00,
	"pdf_url": "https://pricing.test/receipts/1.pdf",
	"detalhes": {
		"detalhe_custos": {"packs_mistos": 16.00, "packs_camisas": 0, "itens_avulsos": 0, "custos_fixos": 0},
		"packs_mistos": {"20": 1},
		"packs_camisas": {},
		"itens_avulsos": {},
		"itens_fixos": {}
	}
}`

// NewPricingServer starts an optimizer that answers every request with status and body
func NewPricingServer(t *testing.T, status int, body string) *PricingServer {
	t.Helper()

	server := &PricingServer{}
	server.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		server.calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}
