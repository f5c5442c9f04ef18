package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPurchasesMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_purchases.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no purchases migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS purchases",
		"FOREIGN KEY (file_id) REFERENCES files(id) ON DELETE CASCADE",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_purchases_file_user_txn ON purchases (file_id, user_id, transaction_id)",
		"CHECK (amount >= 0)",
		"DROP TABLE IF EXISTS purchases",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
