package service

import (
	"context"
	"strings"
	"time"

	"inkwell/internal/events"
	"inkwell/internal/models"
	"inkwell/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// UserService handles registration, credential checks and the follow graph.
type UserService struct {
	userRepo repository.UserRepository
	bus      *events.Bus
}

// RegisterInput carries a registration request.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Profile is a user together with follower-graph counts.
type Profile struct {
	User          *models.User `json:"user"`
	FollowerCount int64        `json:"follower_count"`
}

// NewUserService creates a UserService.
func NewUserService(userRepo repository.UserRepository, bus *events.Bus) *UserService {
	return &UserService{userRepo: userRepo, bus: bus}
}

// Register creates a new user with a bcrypt password hash.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if username == "" {
		return nil, models.NewValidationError("Username is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, models.NewValidationError("A valid email is required")
	}
	if len(in.Password) < 8 {
		return nil, models.NewValidationError("Password must be at least 8 characters")
	}

	if existing, err := s.userRepo.GetByUsername(ctx, username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewValidationError("Username is already taken")
	}
	if existing, err := s.userRepo.GetByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewValidationError("Email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewStorageError(err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfileInput carries a profile edit. Username and email are fixed
// at registration; only the presentation fields can change.
type UpdateProfileInput struct {
	UserID uint
	Bio    string
	Avatar string
}

// UpdateProfile edits the user's own bio and avatar.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	if in.UserID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required to edit a profile")
	}

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	user.Bio = strings.TrimSpace(in.Bio)
	user.Avatar = strings.TrimSpace(in.Avatar)

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers returns a paginated user directory.
func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

// Authenticate verifies credentials and returns the matching user.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	return user, nil
}

// Follow adds a follow edge and publishes a Followed event for a newly
// created edge. Following an already-followed user is a silent no-op.
func (s *UserService) Follow(ctx context.Context, followerID, followeeID uint) error {
	if followerID == 0 {
		return models.NewUnauthorizedError("Authentication required to follow")
	}
	if followerID == followeeID {
		return models.NewValidationError("You cannot follow yourself")
	}

	created, err := s.userRepo.Follow(ctx, followerID, followeeID)
	if err != nil {
		return err
	}
	if created {
		s.bus.Publish(ctx, events.Event{
			Kind:        events.Followed,
			ActorID:     followerID,
			RecipientID: followeeID,
			OccurredAt:  time.Now().UTC(),
		})
	}
	return nil
}

// Unfollow removes a follow edge. Removing a non-existent edge is a no-op.
func (s *UserService) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	if followerID == 0 {
		return models.NewUnauthorizedError("Authentication required to unfollow")
	}
	return s.userRepo.Unfollow(ctx, followerID, followeeID)
}

// GetProfile returns a user with follower-graph counts.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*Profile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	followers, err := s.userRepo.FollowerCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Profile{User: user, FollowerCount: followers}, nil
}
