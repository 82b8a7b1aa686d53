package core

import (
	"context"
	"errors"
	"fmt"

	"alertdeck/pkg/models"
)

// GetUser resolves a user from the identity directory.
func GetUser(ctx context.Context, store IdentityStore, id models.UserID) (*models.User, error) {
	user, err := store.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// ListUsers returns the full user directory.
func ListUsers(ctx context.Context, store IdentityStore) ([]*models.User, error) {
	users, err := store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// ListTeams returns the full team directory.
func ListTeams(ctx context.Context, store IdentityStore) ([]*models.Team, error) {
	teams, err := store.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}
