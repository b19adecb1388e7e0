package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"photoshare-backend/internal/shared/storage/object"
	"photoshare-backend/internal/shared/telemetry"
)

// Service contains business logic for users.
type Service struct {
	Repo    Repo
	Gateway *object.Gateway
}

// NewService constructs a Service.
func NewService(repo Repo, gateway *object.Gateway) *Service {
	return &Service{Repo: repo, Gateway: gateway}
}

// Ensure registers a user on first sight: it creates the user document and
// provisions the user's storage container. Existing users pass through
// unchanged. Container provisioning failure is logged but does not block
// registration; uploads retry it.
func (s *Service) Ensure(ctx context.Context, userID, name string) (map[string]any, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	if existing, err := s.Repo.UserByID(ctx, userID); err == nil {
		return existing, nil
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	doc := map[string]any{
		"type": TypeUser,
	}
	if name != "" {
		doc["name"] = name
	}
	if err := s.Repo.CreateUser(ctx, userID, doc); err != nil {
		return nil, fmt.Errorf("create user document: %w", err)
	}

	if !s.Gateway.CreateContainer(ctx, userID) {
		telemetry.Warn("users.ensure.container_not_provisioned", map[string]any{
			"user_id": userID,
		})
	}

	return s.Repo.UserByID(ctx, userID)
}

// Get returns the shaped record for one user.
func (s *Service) Get(ctx context.Context, userID string) (map[string]any, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.UserByID(ctx, userID)
}

// List returns all user records.
func (s *Service) List(ctx context.Context) ([]map[string]any, error) {
	return s.Repo.ListUsers(ctx)
}
