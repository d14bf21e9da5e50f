package services

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"sokoni-backend/database"
	"sokoni-backend/internal/models"
	"sokoni-backend/internal/utils"
)

// UserService handles account registration, authentication and profile
// management.
type UserService struct {
	store      *database.Store
	auth       *AuthService
	bcryptCost int
}

// NewUserService creates a new user service
func NewUserService(store *database.Store, auth *AuthService, bcryptCost int) *UserService {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{store: store, auth: auth, bcryptCost: bcryptCost}
}

// Register creates a new account. Emails are unique across all roles.
// Customers also get an empty cart and saved list; those two writes are
// best-effort and a failure there does not undo the account.
func (s *UserService) Register(ctx context.Context, req *models.UserRegistration) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	count, err := s.store.Count(ctx, database.CollectionUsers, []database.Filter{{Field: "email", Value: req.Email}})
	if err != nil {
		return "", fmt.Errorf("failed to check email: %w", err)
	}
	if count > 0 {
		return "", NewDuplicateError("Email Already Registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := s.store.Add(ctx, database.CollectionUsers, models.NewUserDocument(req, string(hash)))
	if err != nil {
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	if !models.UserRole(req.Role).IsStaff() {
		if _, err := s.store.Add(ctx, database.CollectionCarts, models.NewCartDocument(id)); err != nil {
			log.Printf("Warning: failed to create cart for user %s: %v", id, err)
		}
		if _, err := s.store.Add(ctx, database.CollectionSaved, models.NewSavedDocument(id)); err != nil {
			log.Printf("Warning: failed to create saved list for user %s: %v", id, err)
		}
	}

	return id, nil
}

// Authenticate verifies login credentials and returns the account snapshot
// together with a signed token.
func (s *UserService) Authenticate(ctx context.Context, req *models.AuthRequest) (*models.User, string, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, "", err
	}

	user, err := s.findByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidEmail
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidPassword
	}

	token, err := s.auth.GenerateToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	user.Password = ""
	return user, token, nil
}

// ForgotPassword confirms the email belongs to an account. The actual reset
// link goes out through a separate channel.
func (s *UserService) ForgotPassword(ctx context.Context, req *models.ForgotPasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	user, err := s.findByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidEmail
	}

	return nil
}

// ResetPassword rotates a password after verifying the current one.
func (s *UserService) ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	doc, err := s.store.Get(ctx, database.CollectionUsers, req.ID)
	if err != nil {
		if err == database.ErrNoDocument {
			return NewNotFoundError("User does not exist")
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	var user models.User
	if err := doc.Decode(&user); err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		return ErrInvalidCurrentPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.store.Set(ctx, database.CollectionUsers, req.ID, map[string]any{"password": string(hash)}); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// List returns up to 50 accounts ordered by full name, passwords stripped.
func (s *UserService) List(ctx context.Context) ([]database.Document, error) {
	docs, err := s.store.Query(ctx, database.CollectionUsers, nil, "fullName", 50)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	for i := range docs {
		delete(docs[i].Data, "password")
	}

	return docs, nil
}

// Update merges the non-nil fields of a profile update into the stored
// account.
func (s *UserService) Update(ctx context.Context, req *models.UserUpdate) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if _, err := s.store.Get(ctx, database.CollectionUsers, req.ID); err != nil {
		if err == database.ErrNoDocument {
			return NewNotFoundError("User does not exist or wrong id")
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	patch := utils.BuildPatch(req)
	if err := s.store.Set(ctx, database.CollectionUsers, req.ID, patch); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

func (s *UserService) findByEmail(ctx context.Context, email string) (*models.User, error) {
	docs, err := s.store.Query(ctx, database.CollectionUsers, []database.Filter{{Field: "email", Value: email}}, "", 1)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if len(docs) == 0 {
		return nil, nil
	}

	var user models.User
	if err := docs[0].Decode(&user); err != nil {
		return nil, err
	}
	user.ID = docs[0].ID

	return &user, nil
}
