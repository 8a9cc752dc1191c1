package core

import (
	"context"
	"errors"
	"fmt"

	"solace.app/backend/internal/store"
)

// ProfileStore is the slice of the document store the profile service needs.
type ProfileStore interface {
	CreateUser(ctx context.Context, uid, email, anonymousUsername string) (*store.UserProfile, error)
	GetUserByUID(ctx context.Context, uid string) (*store.UserProfile, error)
}

type ProfileService struct {
	store ProfileStore
}

func NewProfileService(s ProfileStore) *ProfileService {
	return &ProfileService{store: s}
}

// CreateProfile assigns an anonymous username and persists the profile.
// Called exactly once per signup; the profile is immutable afterwards.
func (s *ProfileService) CreateProfile(ctx context.Context, uid, email string) (*store.UserProfile, error) {
	if uid == "" || email == "" {
		return nil, validationf("email and uid are required")
	}

	username := NewAnonymousUsername()
	profile, err := s.store.CreateUser(ctx, uid, email, username)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateUser) {
			return nil, validationf("a profile already exists for this uid")
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return profile, nil
}

// GetProfile lets a client recover its assigned username after login.
func (s *ProfileService) GetProfile(ctx context.Context, uid string) (*store.UserProfile, error) {
	if uid == "" {
		return nil, validationf("uid is required")
	}
	profile, err := s.store.GetUserByUID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		return nil, ErrNotFound
	}
	return profile, nil
}
