package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// CreateSchema creates every table the repository needs.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, db *sql.DB, dialect Dialect) error {
	identity := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if dialect == DialectPostgres {
		identity = "BIGSERIAL PRIMARY KEY"
	}
	ddl := strings.ReplaceAll(schema, "{{identity}}", identity)

	for _, stmt := range strings.Split(ddl, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

const schema = `
-- Accounts
CREATE TABLE IF NOT EXISTS accounts (
    id {{identity}},
    email TEXT NOT NULL UNIQUE,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    phone TEXT NOT NULL DEFAULT '',
    password_hash TEXT NOT NULL,
    created_at TEXT NOT NULL
);

-- Profiles, one per account
CREATE TABLE IF NOT EXISTS profiles (
    user_id BIGINT PRIMARY KEY REFERENCES accounts(id) ON DELETE CASCADE,
    email TEXT NOT NULL,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    phone TEXT NOT NULL DEFAULT '',
    date_of_birth TEXT NOT NULL DEFAULT '',
    address TEXT NOT NULL DEFAULT '',
    emergency_contact TEXT NOT NULL DEFAULT 'null',
    insurance TEXT NOT NULL DEFAULT 'null',
    medical_history TEXT NOT NULL DEFAULT '[]',
    allergies TEXT NOT NULL DEFAULT '[]',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

-- Prescriptions
CREATE TABLE IF NOT EXISTS prescriptions (
    id {{identity}},
    user_id BIGINT NOT NULL,
    medication TEXT NOT NULL,
    doctor TEXT NOT NULL,
    pharmacy TEXT NOT NULL DEFAULT '',
    issued_date TEXT NOT NULL,
    status TEXT NOT NULL CHECK (status IN ('Active', 'Expired', 'Cancelled')),
    dosage TEXT NOT NULL,
    quantity TEXT NOT NULL DEFAULT '',
    refills INTEGER NOT NULL DEFAULT 0,
    instructions TEXT NOT NULL DEFAULT '',
    strength TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT
);

CREATE INDEX IF NOT EXISTS idx_prescriptions_user_id ON prescriptions(user_id);

-- Appointments
CREATE TABLE IF NOT EXISTS appointments (
    id {{identity}},
    user_id BIGINT NOT NULL,
    doctor_name TEXT NOT NULL,
    specialty TEXT NOT NULL,
    scheduled_date TEXT NOT NULL,
    scheduled_time TEXT NOT NULL,
    duration INTEGER NOT NULL DEFAULT 30,
    status TEXT NOT NULL CHECK (status IN ('Pending', 'Confirmed', 'Completed', 'Cancelled')),
    kind TEXT NOT NULL CHECK (kind IN ('In-Person', 'Telemedicine')),
    location TEXT NOT NULL DEFAULT '',
    notes TEXT NOT NULL DEFAULT '',
    phone TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT
);

CREATE INDEX IF NOT EXISTS idx_appointments_user_id ON appointments(user_id);

-- Doctors directory
CREATE TABLE IF NOT EXISTS doctors (
    id {{identity}},
    name TEXT NOT NULL,
    specialty TEXT NOT NULL,
    rating DOUBLE PRECISION NOT NULL DEFAULT 0,
    experience INTEGER NOT NULL DEFAULT 0,
    location TEXT NOT NULL DEFAULT '',
    phone TEXT NOT NULL DEFAULT '',
    email TEXT NOT NULL DEFAULT '',
    bio TEXT NOT NULL DEFAULT '',
    education TEXT NOT NULL DEFAULT '',
    languages TEXT NOT NULL DEFAULT '[]',
    accepts_insurance BOOLEAN NOT NULL DEFAULT TRUE,
    available_slots TEXT NOT NULL DEFAULT '[]',
    image TEXT NOT NULL DEFAULT ''
);

-- Notifications
CREATE TABLE IF NOT EXISTS notifications (
    id {{identity}},
    user_id BIGINT NOT NULL,
    title TEXT NOT NULL,
    message TEXT NOT NULL,
    kind TEXT NOT NULL CHECK (kind IN ('medication', 'appointment', 'refill', 'general')),
    priority TEXT NOT NULL CHECK (priority IN ('low', 'medium', 'high')),
    is_read BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TEXT NOT NULL,
    scheduled_for TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_notifications_user_id ON notifications(user_id);
`
