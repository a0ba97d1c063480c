// Package mocks provides mock implementations for testing the dashboard's backend ports.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the
// backend API interfaces. The mocks are generated using go:generate directives and
// provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	backend := mocks.NewMockBackendAPI(ctrl)
//	backend.EXPECT().ListUsers(gomock.Any(), "token").Return(users, nil)
package mocks

// Generate mock for the aggregated BackendAPI interface from internal/core.
// This creates MockBackendAPI covering every backend operation:
// Login, LoginWithGoogle, Profile, ListUsers, RegisterUser, TestEmailConfig, Status
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=backend_api_mock.go github.com/carcarepro/carcare-ui/internal/core BackendAPI
