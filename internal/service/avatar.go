package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkordes/itinerary-api/internal/domain"
)

const (
	avatarContentType  = "image/jpeg"
	avatarCacheControl = "public, max-age=3600"
)

// acceptedAvatarTypes are the content types a client may declare for an avatar.
var acceptedAvatarTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
}

// AvatarStore is the object store avatars are written to.
// *storage.Bucket satisfies it in production.
type AvatarStore interface {
	Put(ctx context.Context, key string, data []byte, contentType, cacheControl string) error
	MakePublic(ctx context.Context, key string) error
}

// AvatarService stores one JPEG avatar per traveller email.
type AvatarService struct {
	store AvatarStore
	log   *slog.Logger
}

// NewAvatarService constructs an AvatarService writing to store.
func NewAvatarService(store AvatarStore, log *slog.Logger) *AvatarService {
	return &AvatarService{store: store, log: log}
}

// AvatarKey returns the object key of the avatar for email.
func AvatarKey(email string) string {
	return "avatar/" + email + ".jpg"
}

// Upload validates and stores an avatar, overwriting any previous one.
// Making the object public is best-effort: a failure there is logged, reported
// in the returned AvatarUpload.PublishErr, and does not fail the upload.
// Returns domain.ErrValidation for a blank email, empty file, or non-JPEG type.
func (s *AvatarService) Upload(ctx context.Context, email string, data []byte, contentType string) (domain.AvatarUpload, error) {
	if strings.TrimSpace(email) == "" {
		return domain.AvatarUpload{}, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if len(data) == 0 {
		return domain.AvatarUpload{}, fmt.Errorf("%w: avatar file is required", domain.ErrValidation)
	}
	if !acceptedAvatarTypes[contentType] {
		return domain.AvatarUpload{}, fmt.Errorf("%w: only JPEG images are allowed", domain.ErrValidation)
	}

	key := AvatarKey(email)
	if err := s.store.Put(ctx, key, data, avatarContentType, avatarCacheControl); err != nil {
		return domain.AvatarUpload{}, fmt.Errorf("service.AvatarService.Upload: %w", err)
	}

	result := domain.AvatarUpload{ObjectKey: key}
	if err := s.store.MakePublic(ctx, key); err != nil {
		s.log.WarnContext(ctx, "avatar stored but not made public", "key", key, "error", err)
		result.PublishErr = err
	}
	return result, nil
}
