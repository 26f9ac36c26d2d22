package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/traveljournal/internal/kv"
)

// Profile keys live next to the persisted state blob, one value per key.
const (
	KeyUserName     = "userName"
	KeyUserEmail    = "userEmail"
	KeyProfileImage = "profileImage"

	DefaultBio = "Travel Enthusiast & Journal Lover"
)

// Profile is the user's display information. Image is an opaque URI.
type Profile struct {
	Name  string
	Email string
	Image string
	Bio   string
}

// ProfileService reads and writes the profile keys.
//
// Contract:
//   - Get: missing keys come back empty; Bio is always DefaultBio.
//   - Save: writes the non-empty fields of p, leaving the others as they are.
//   - Clear: removes all profile keys at once.
type ProfileService interface {
	Get(ctx context.Context) (Profile, error)
	Save(ctx context.Context, p Profile) error
	Clear(ctx context.Context) error
}

type profileService struct {
	storage kv.Storage
}

func NewProfileService(storage kv.Storage) ProfileService {
	return &profileService{storage: storage}
}

func (s *profileService) Get(ctx context.Context) (Profile, error) {
	p := Profile{Bio: DefaultBio}

	fields := []struct {
		key string
		dst *string
	}{
		{KeyUserName, &p.Name},
		{KeyUserEmail, &p.Email},
		{KeyProfileImage, &p.Image},
	}
	for _, f := range fields {
		v, err := s.storage.Get(ctx, f.key)
		if err != nil {
			return Profile{}, fmt.Errorf("load profile: %w", err)
		}
		*f.dst = string(v)
	}
	return p, nil
}

func (s *profileService) Save(ctx context.Context, p Profile) error {
	values := []struct{ key, value string }{
		{KeyUserName, p.Name},
		{KeyUserEmail, p.Email},
		{KeyProfileImage, p.Image},
	}
	for _, v := range values {
		if v.value == "" {
			continue
		}
		if err := s.storage.Set(ctx, v.key, []byte(v.value)); err != nil {
			return fmt.Errorf("save profile: %w", err)
		}
	}
	return nil
}

func (s *profileService) Clear(ctx context.Context) error {
	if err := s.storage.Remove(ctx, KeyUserName, KeyUserEmail, KeyProfileImage); err != nil {
		return fmt.Errorf("clear profile: %w", err)
	}
	return nil
}
