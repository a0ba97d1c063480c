// Package devseed populates a development database with the first admin
// account and a demo vehicle so a fresh checkout renders a working
// dashboard.
package devseed

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/carcarepro/carcare-ui/internal/domain/model"
	apperrors "github.com/carcarepro/carcare-ui/internal/errors"
	"golang.org/x/crypto/bcrypt"
)

// Options configures the seeding run.
type Options struct {
	DB *sql.DB

	// First admin account. Empty fields fall back to the development
	// defaults below.
	AdminName     string
	AdminEmail    string
	AdminPassword string

	Logger *slog.Logger
}

const (
	defaultAdminName     = "Admin"
	defaultAdminEmail    = "admin@example.com"
	defaultAdminPassword = "admin123"
)

// Run executes the full seeding workflow. It is idempotent: an existing
// admin or demo vehicle is left untouched.
func Run(ctx context.Context, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.AdminName == "" {
		opts.AdminName = defaultAdminName
	}
	if opts.AdminEmail == "" {
		opts.AdminEmail = defaultAdminEmail
	}
	if opts.AdminPassword == "" {
		opts.AdminPassword = defaultAdminPassword
	}

	if err := seedFirstAdmin(ctx, opts, logger); err != nil {
		return err
	}
	if err := seedDemoVehicle(ctx, opts.DB, opts.AdminEmail, logger); err != nil {
		return err
	}
	return nil
}

// seedFirstAdmin ensures at least one admin account exists. When the
// configured email is already registered as a regular user it is upgraded
// to admin instead of duplicated.
func seedFirstAdmin(ctx context.Context, opts Options, logger *slog.Logger) error {
	db := opts.DB

	var adminExists bool
	if err := db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE role = 'admin')`,
	).Scan(&adminExists); err != nil {
		return fmt.Errorf("check for existing admin: %w", apperrors.MapDBError(err))
	}
	if adminExists {
		logger.InfoContext(ctx, "admin account already present, skipping")
		return nil
	}

	var emailTaken bool
	if err := db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE lower(email) = lower($1))`, opts.AdminEmail,
	).Scan(&emailTaken); err != nil {
		return fmt.Errorf("check admin email: %w", apperrors.MapDBError(err))
	}

	if emailTaken {
		if _, err := db.ExecContext(ctx,
			`UPDATE users SET role = 'admin', email_verified = TRUE WHERE lower(email) = lower($1)`,
			opts.AdminEmail,
		); err != nil {
			return fmt.Errorf("promote existing user to admin: %w", apperrors.MapDBError(err))
		}
		logger.InfoContext(ctx, "existing user upgraded to admin", "email", opts.AdminEmail)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(opts.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO users (name, email, password_hash, role, email_verified)
		 VALUES ($1, $2, $3, 'admin', TRUE)`,
		opts.AdminName, opts.AdminEmail, string(hash),
	)
	if err != nil {
		// A concurrent seed run may have inserted the same email.
		mapped := apperrors.MapDBError(err)
		if apperrors.IsConflict(mapped) {
			logger.InfoContext(ctx, "admin account created by concurrent run", "email", opts.AdminEmail)
			return nil
		}
		return fmt.Errorf("insert admin user: %w", mapped)
	}

	logger.InfoContext(ctx, "created first admin account", "email", opts.AdminEmail)
	return nil
}

// seedDemoVehicle inserts the demo vehicle snapshot and its service
// history for the admin account. Vehicles are keyed by owner email.
func seedDemoVehicle(ctx context.Context, db *sql.DB, ownerEmail string, logger *slog.Logger) error {
	snap := model.FallbackSnapshot()

	tires, err := json.Marshal(snap.Tires)
	if err != nil {
		return fmt.Errorf("marshal tire pressure: %w", err)
	}
	alerts, err := json.Marshal(snap.Alerts)
	if err != nil {
		return fmt.Errorf("marshal alerts: %w", err)
	}

	res, err := db.ExecContext(ctx,
		`INSERT INTO maintenance_status (
			vehicle_id, oil_life, battery_health, current_mileage,
			miles_until_service, engine_temperature, temperature_status,
			tire_pressure, alerts
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (vehicle_id) DO NOTHING`,
		ownerEmail, snap.OilLife, snap.BatteryHealth, snap.CurrentMileage,
		snap.MilesUntilService, snap.EngineTemperature, snap.TemperatureStatus,
		tires, alerts,
	)
	if err != nil {
		return fmt.Errorf("insert demo vehicle: %w", apperrors.MapDBError(err))
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("demo vehicle rows affected: %w", err)
	}
	if inserted == 0 {
		logger.InfoContext(ctx, "demo vehicle already present, skipping")
		return nil
	}

	for _, rec := range snap.History {
		if _, histErr := db.ExecContext(ctx,
			`INSERT INTO service_history (vehicle_id, service, service_date, mileage)
			 VALUES ($1, $2, $3, $4)`,
			ownerEmail, rec.Service, rec.Date.Time, rec.Mileage,
		); histErr != nil {
			return fmt.Errorf("insert service history: %w", apperrors.MapDBError(histErr))
		}
	}

	logger.InfoContext(ctx, "seeded demo vehicle", "owner", ownerEmail, "history_rows", len(snap.History))
	return nil
}
