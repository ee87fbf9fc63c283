package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/anilkoundinya7/E-Commerce/models"
	apperrors "github.com/anilkoundinya7/E-Commerce/pkg/errors"
	"github.com/anilkoundinya7/E-Commerce/repository"
)

const bcryptCost = 10

// UserService handles account registration, login and user management.
type UserService struct {
	users  repository.UserRepository
	tokens *TokenService
}

func NewUserService(users repository.UserRepository, tokens *TokenService) *UserService {
	return &UserService{users: users, tokens: tokens}
}

// Register creates a new account with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, name, email, password string) (primitive.ObjectID, error) {
	if name == "" || email == "" || password == "" {
		return primitive.NilObjectID, apperrors.WithMessage(apperrors.ErrInvalidInput, "Name, email and password are required")
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return primitive.NilObjectID, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	if existing != nil {
		return primitive.NilObjectID, apperrors.WithMessage(apperrors.ErrInvalidInput, "Email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return primitive.NilObjectID, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	id, err := s.users.Insert(ctx, &models.User{
		Name:      name,
		Email:     email,
		Password:  string(hashed),
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return primitive.NilObjectID, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	return id, nil
}

// Login verifies credentials and returns a signed token.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	if user == nil {
		return "", apperrors.WithMessage(apperrors.ErrUnauthorized, "Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", apperrors.WithMessage(apperrors.ErrUnauthorized, "Invalid email or password")
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return token, nil
}

// Get returns a user without the password field.
func (s *UserService) Get(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	if user == nil {
		return nil, apperrors.WithMessage(apperrors.ErrNotFound, "User not found")
	}
	return user, nil
}

// UserUpdate carries the mutable account fields; nil means unchanged.
type UserUpdate struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// Update applies the provided fields, re-hashing a supplied password.
func (s *UserService) Update(ctx context.Context, id primitive.ObjectID, upd UserUpdate) error {
	updates := bson.M{}
	if upd.Name != nil {
		updates["name"] = *upd.Name
	}
	if upd.Email != nil {
		updates["email"] = *upd.Email
	}
	if upd.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcryptCost)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		updates["password"] = string(hashed)
	}
	if len(updates) == 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "No fields to update")
	}

	if err := s.users.Update(ctx, id, updates); err != nil {
		return apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	return nil
}

// Delete removes an account.
func (s *UserService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.users.Delete(ctx, id); err != nil {
		return apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	return nil
}
