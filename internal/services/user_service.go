package services

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	apperrors "budgettracker/internal/errors"
	"budgettracker/internal/logger"
	"budgettracker/internal/models"
	"budgettracker/internal/repository"
)

// userService handles user-related business logic.
type userService struct {
	store *repository.Store
}

// NewUserService creates a new UserServicer.
func NewUserService(store *repository.Store) UserServicer {
	return &userService{store: store}
}

// CreateUser registers a new user together with the user's wallet. Both
// rows are written in one database transaction.
func (s *userService) CreateUser(email, username, password string) (*models.User, error) {
	// Validate input
	if email == "" || username == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrNullArgument, "email, username and password are required")
	}

	email = strings.ToLower(strings.TrimSpace(email))

	// Check if user with email exists
	exists, err := s.store.Users.ExistsByEmail(email)
	if err != nil {
		return nil, storageError(err, nil)
	}
	if exists {
		return nil, apperrors.ErrDuplicateEmail
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		Email:    email,
		Username: username,
		Password: string(hashedPassword),
	}

	err = s.store.Atomic(func(tx *repository.Store) error {
		if err := tx.Users.Save(user); err != nil {
			return storageError(err, nil)
		}
		wallet := newWallet(username, user)
		if err := tx.Wallets.Save(wallet); err != nil {
			return storageError(err, nil)
		}
		user.Wallet = wallet
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Infow("User registered", "user_id", user.ID)
	return user, nil
}

// FindUser retrieves a user by ID
func (s *userService) FindUser(id string) (*models.User, error) {
	if id == "" {
		return nil, apperrors.WithMessage(apperrors.ErrNullArgument, "user id is required")
	}
	user, err := s.store.Users.FindByID(id)
	if err != nil {
		return nil, storageError(err, apperrors.ErrUserNotFound)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email
func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	user, err := s.store.Users.FindByEmail(email)
	if err != nil {
		return nil, storageError(err, apperrors.ErrUserNotFound)
	}
	return user, nil
}

// VerifyPassword checks if the provided password matches the stored hash
func (s *userService) VerifyPassword(user *models.User, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	return err == nil
}

// AttemptLogin returns the user when email and password match. Unknown
// emails and wrong passwords are indistinguishable to the caller.
func (s *userService) AttemptLogin(email, password string) (*models.User, error) {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !s.VerifyPassword(user, password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}
