package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taskboard-dev/taskboard/internal/logging"
	"github.com/taskboard-dev/taskboard/internal/server/auth"
	"github.com/taskboard-dev/taskboard/internal/server/models"
	"github.com/taskboard-dev/taskboard/internal/server/store"
	"github.com/taskboard-dev/taskboard/internal/server/update"
)

// ImagePresigner grants uploads into the image object store.
// *objectstore.Presigner is the production implementation.
type ImagePresigner interface {
	UserImageKey(userID string, now time.Time) string
	UploadURL(ctx context.Context, key string) (string, error)
	PublicURL(key string) string
}

// UserUpdate carries the updatable profile fields. A nil pointer means the
// field was not provided.
type UserUpdate struct {
	Name  *string
	Email *string
}

// UploadGrant is a one-shot permission to upload a user image: a short-lived
// presigned PUT URL plus the stable public URL the object will have.
type UploadGrant struct {
	UploadURL string
	ImageURL  string
}

// UserService manages user profiles and image upload grants.
type UserService struct {
	store     store.Gateway
	hasher    *auth.Hasher
	presigner ImagePresigner
	logger    logging.Logger
	now       func() time.Time
}

func NewUserService(gw store.Gateway, hasher *auth.Hasher, presigner ImagePresigner, logger logging.Logger) *UserService {
	return &UserService{
		store:     gw,
		hasher:    hasher,
		presigner: presigner,
		logger:    logger,
		now:       time.Now,
	}
}

// Create registers a new user and returns the stored profile. Email
// uniqueness is not enforced; login resolves duplicates by taking the first
// match.
func (s *UserService) Create(ctx context.Context, name, email, password string) (*models.User, error) {

	id := uuid.NewString()
	user := models.NewUser(id, name, email, s.hasher.Hash(password), s.now().UnixMilli())

	if err := s.store.Put(ctx, user); err != nil {
		return nil, fmt.Errorf("error storing user: %w", err)
	}

	s.logger.Info(ctx, "user created", "userID", id)

	return user, nil
}

// Get loads one profile by user id.
func (s *UserService) Get(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := s.store.Get(ctx, store.UserKey(userID), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns every user profile in the table.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.store.ScanEquals(ctx, map[string]any{"SK": store.ProfileSortKey}, &users)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return users, nil
}

// Update applies the provided profile fields that differ from the stored
// values. Returns common.ErrNothingToUpdate when nothing would change and
// common.ErrorNotFound when the user does not exist.
func (s *UserService) Update(ctx context.Context, userID string, upd UserUpdate) error {

	user, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}

	changes, err := update.NewBuilder().
		String("name", upd.Name, user.Name).
		String("email", upd.Email, user.Email).
		Build()
	if err != nil {
		return err
	}

	return s.store.Update(ctx, user.Key(), changes)
}

// Delete removes the profile and returns it as it was. Tasks and reset codes
// under the same partition are left in place.
func (s *UserService) Delete(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := s.store.Delete(ctx, store.UserKey(userID), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// IssueUploadGrant presigns a PUT URL for the user's image and immediately
// records the object's public URL on the profile. The URL is persisted before
// the client uploads anything, so a profile can briefly point at an object
// that does not exist yet.
func (s *UserService) IssueUploadGrant(ctx context.Context, userID string) (*UploadGrant, error) {

	key := s.presigner.UserImageKey(userID, s.now())

	uploadURL, err := s.presigner.UploadURL(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("error presigning upload url: %w", err)
	}

	imageURL := s.presigner.PublicURL(key)

	changes := []update.Change{{Field: "imageUrl", Value: imageURL}}
	if err := s.store.Update(ctx, store.UserKey(userID), changes); err != nil {
		return nil, err
	}

	return &UploadGrant{UploadURL: uploadURL, ImageURL: imageURL}, nil
}
