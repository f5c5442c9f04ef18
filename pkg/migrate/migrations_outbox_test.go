package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOutboxMigrationContainsDedupeIndex(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_outbox_events.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no outbox events migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS outbox_events",
		"ux_outbox_events_event_aggregate",
		"WHERE published_at IS NULL",
		"DROP TABLE IF EXISTS outbox_events",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestBookingsMigrationDefinesStatusEnums(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_bookings.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no bookings migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TYPE booking_status AS ENUM ('awaiting_payment', 'pending', 'confirmed', 'completed', 'canceled')",
		"CREATE TYPE payment_status AS ENUM ('pending', 'paid', 'failed')",
		"status booking_status NOT NULL DEFAULT 'awaiting_payment'",
		"FOREIGN KEY (service_id) REFERENCES services(id) ON DELETE SET NULL",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
