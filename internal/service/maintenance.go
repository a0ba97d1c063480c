package service

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/carcarepro/carcare-ui/internal/core"
	domainauth "github.com/carcarepro/carcare-ui/internal/domain/auth"
	"github.com/carcarepro/carcare-ui/internal/domain/model"
)

// MaintenanceServiceOptions groups dependencies for MaintenanceService.
type MaintenanceServiceOptions struct {
	Maintenance core.MaintenanceAPI
	Auth        core.AuthAPI
	Logger      *slog.Logger
}

// MaintenanceService assembles the vehicle dashboard. The page never
// fails outright: an unreachable backend degrades to the fallback
// snapshot and the session's cached profile.
type MaintenanceService struct {
	maintenance core.MaintenanceAPI
	auth        core.AuthAPI
	logger      *slog.Logger
}

// NewMaintenanceService constructs a new MaintenanceService.
func NewMaintenanceService(opts MaintenanceServiceOptions) *MaintenanceService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &MaintenanceService{
		maintenance: opts.Maintenance,
		auth:        opts.Auth,
		logger:      logger,
	}
}

// Dashboard holds everything the maintenance page renders.
type Dashboard struct {
	Profile  domainauth.Profile
	Snapshot model.Snapshot
	// Fallback reports that the snapshot is the built-in placeholder
	// rather than live data.
	Fallback bool
}

// Dashboard fetches the profile and vehicle snapshot concurrently. The
// two calls are independent, so neither waits on the other. Failures
// degrade per part: the snapshot falls back to the placeholder vehicle,
// the profile falls back to the fields cached on the session.
func (s *MaintenanceService) Dashboard(ctx context.Context, sess domainauth.Session) *Dashboard {
	dash := &Dashboard{
		Profile: domainauth.Profile{
			Name:  sess.Name,
			Email: sess.Email,
			Role:  sess.Role,
		},
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		snap, err := s.maintenance.Status(gctx, sess.Token)
		if err != nil {
			s.logger.Warn("maintenance status fetch failed, using fallback", "error", err)
			dash.Snapshot = model.FallbackSnapshot()
			dash.Fallback = true
			return nil
		}
		dash.Snapshot = *snap
		return nil
	})

	g.Go(func() error {
		profile, err := s.auth.Profile(gctx, sess.Token)
		if err != nil {
			s.logger.Warn("profile refresh failed, using session cache", "error", err)
			return nil
		}
		dash.Profile = *profile
		return nil
	})

	// Goroutines swallow their errors after degrading, so Wait cannot fail.
	_ = g.Wait()

	return dash
}
