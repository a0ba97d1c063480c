package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/carcarepro/carcare-ui/internal/domain/auth"
	"github.com/carcarepro/carcare-ui/internal/domain/model"
	"github.com/carcarepro/carcare-ui/internal/mocks"
)

func newTestMaintenanceService(t *testing.T) (*MaintenanceService, *mocks.MockBackendAPI) {
	t.Helper()
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockBackendAPI(ctrl)
	svc := NewMaintenanceService(MaintenanceServiceOptions{
		Maintenance: backend,
		Auth:        backend,
	})
	return svc, backend
}

func userSession() domainauth.Session {
	return domainauth.Session{
		ID:    "sess-1",
		Token: "tok-1",
		Name:  "Jordan Lee",
		Email: "jordan@example.com",
		Role:  domainauth.RoleUser,
	}
}

func TestMaintenanceService_Dashboard_LiveData(t *testing.T) {
	svc, backend := newTestMaintenanceService(t)

	live := model.Snapshot{OilLife: 64, BatteryHealth: 88, CurrentMileage: 51000}
	backend.EXPECT().Status(gomock.Any(), "tok-1").Return(&live, nil)
	backend.EXPECT().Profile(gomock.Any(), "tok-1").Return(&domainauth.Profile{
		Name:  "Jordan Lee",
		Email: "jordan@example.com",
		Role:  domainauth.RoleUser,
	}, nil)

	dash := svc.Dashboard(context.Background(), userSession())
	require.NotNil(t, dash)
	assert.False(t, dash.Fallback)
	assert.Equal(t, 64, dash.Snapshot.OilLife)
	assert.Equal(t, "jordan@example.com", dash.Profile.Email)
}

func TestMaintenanceService_Dashboard_SnapshotFallback(t *testing.T) {
	svc, backend := newTestMaintenanceService(t)

	backend.EXPECT().Status(gomock.Any(), "tok-1").Return(nil, errors.New("connection refused"))
	backend.EXPECT().Profile(gomock.Any(), "tok-1").Return(&domainauth.Profile{Name: "Jordan Lee"}, nil)

	dash := svc.Dashboard(context.Background(), userSession())
	assert.True(t, dash.Fallback)
	assert.Equal(t, model.FallbackSnapshot(), dash.Snapshot)
}

func TestMaintenanceService_Dashboard_ProfileFallsBackToSession(t *testing.T) {
	svc, backend := newTestMaintenanceService(t)

	backend.EXPECT().Status(gomock.Any(), "tok-1").Return(&model.Snapshot{OilLife: 50}, nil)
	backend.EXPECT().Profile(gomock.Any(), "tok-1").Return(nil, errors.New("timeout"))

	sess := userSession()
	dash := svc.Dashboard(context.Background(), sess)
	assert.False(t, dash.Fallback)
	assert.Equal(t, sess.Name, dash.Profile.Name)
	assert.Equal(t, sess.Role, dash.Profile.Role)
}

func TestMaintenanceService_Dashboard_EverythingDown(t *testing.T) {
	svc, backend := newTestMaintenanceService(t)

	backend.EXPECT().Status(gomock.Any(), "tok-1").Return(nil, errors.New("down"))
	backend.EXPECT().Profile(gomock.Any(), "tok-1").Return(nil, errors.New("down"))

	dash := svc.Dashboard(context.Background(), userSession())
	assert.True(t, dash.Fallback)
	assert.Equal(t, 72, dash.Snapshot.OilLife)
	assert.Equal(t, "jordan@example.com", dash.Profile.Email)
}
