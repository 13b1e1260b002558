// Package mocks provides mock implementations for testing the whirkplace services.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our repository interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockOrganizationRepository(ctrl)
//	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(org, nil)
package mocks

// Generate mock for OrganizationRepository interface from internal/core package.
// This creates MockOrganizationRepository with methods for all OrganizationRepository interface methods:
// Create, GetByID, GetBySlug, List, UpdatePlan, UpdateStatus
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=organization_repository_mock.go github.com/whirkplace/whirkplace-api/internal/core OrganizationRepository

// Generate mock for UserRepository interface from internal/core package.
// This creates MockUserRepository with methods for all UserRepository interface methods:
// Create, GetByID, GetByEmail, ListByOrg, CountActiveByOrg, Update, Deactivate
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=user_repository_mock.go github.com/whirkplace/whirkplace-api/internal/core UserRepository
