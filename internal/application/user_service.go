package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/yamp/internal/persistence"
)

// PasswordHasher produces a storable hash for a cleartext password.
type PasswordHasher func(password string) (string, error)

// UserService orchestrates validation, uniqueness checks, and persistence for
// member accounts.
type UserService struct {
	users        persistence.UserRepository
	hashPassword PasswordHasher
	idGenerator  func() string
	now          func() time.Time
	logger       *slog.Logger
}

// NewUserService wires dependencies for the user service.
func NewUserService(users persistence.UserRepository, hashPassword PasswordHasher, idGenerator func() string, now func() time.Time) *UserService {
	return NewUserServiceWithLogger(users, hashPassword, idGenerator, now, nil)
}

// NewUserServiceWithLogger constructs a UserService with a specified logger.
func NewUserServiceWithLogger(users persistence.UserRepository, hashPassword PasswordHasher, idGenerator func() string, now func() time.Time, logger *slog.Logger) *UserService {
	if hashPassword == nil {
		hashPassword = func(password string) (string, error) {
			return CreatePasswordHash(password, DefaultArgon2idParams)
		}
	}
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &UserService{
		users:        users,
		hashPassword: hashPassword,
		idGenerator:  idGenerator,
		now:          now,
		logger:       defaultLogger(logger),
	}
}

func (s *UserService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "UserService", operation, attrs...)
}

// Create registers a new user. The email must not already be registered; the
// returned user never carries the password.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (User, error) {
	if s == nil {
		return User{}, fmt.Errorf("UserService is nil")
	}

	logger := s.loggerWith(ctx, "Create")

	if input.UserName == nil {
		return User{}, invalidInput("username is not defined!")
	}
	if input.Email == nil {
		return User{}, invalidInput("email is not defined!")
	}
	if input.Password == nil {
		return User{}, invalidInput("password is not defined!")
	}

	_, err := s.users.GetUserByEmail(ctx, *input.Email)
	if err == nil {
		logger.InfoContext(ctx, "registration rejected", "error_kind", ErrorKind(ErrDuplicate))
		return User{}, ErrDuplicate
	}
	if !errors.Is(err, persistence.ErrNotFound) {
		return User{}, err
	}

	hash, err := s.hashPassword(*input.Password)
	if err != nil {
		return User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	record := persistence.User{
		ID:           s.idGenerator(),
		UserName:     *input.UserName,
		Email:        *input.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.CreateUser(ctx, record); err != nil {
		if errors.Is(err, persistence.ErrDuplicate) {
			return User{}, ErrDuplicate
		}
		return User{}, err
	}

	persisted, err := s.users.GetUser(ctx, record.ID)
	if err != nil {
		return User{}, err
	}

	logger.InfoContext(ctx, "user created", "user_id", persisted.ID)
	return userFromRecord(persisted), nil
}

// GetByEmail returns the user registered under the given email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (User, error) {
	if s == nil {
		return User{}, fmt.Errorf("UserService is nil")
	}

	record, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}

	return userFromRecord(record), nil
}

// GetByID returns the user with the given identity.
func (s *UserService) GetByID(ctx context.Context, id string) (User, error) {
	if s == nil {
		return User{}, fmt.Errorf("UserService is nil")
	}

	record, err := s.users.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}

	return userFromRecord(record), nil
}

// GetAll returns every registered user.
func (s *UserService) GetAll(ctx context.Context) ([]User, error) {
	if s == nil {
		return nil, fmt.Errorf("UserService is nil")
	}

	records, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	users := make([]User, 0, len(records))
	for _, record := range records {
		users = append(users, userFromRecord(record))
	}
	return users, nil
}

// Update applies a sparse profile update. At least one field must be present;
// a new password is re-hashed before storage.
func (s *UserService) Update(ctx context.Context, input UpdateUserInput) (UpdateUserResult, error) {
	if s == nil {
		return UpdateUserResult{}, fmt.Errorf("UserService is nil")
	}

	if input.UserName == nil && input.Email == nil && input.Password == nil {
		return UpdateUserResult{}, invalidInput("Invalid input!")
	}

	if _, err := s.users.GetUser(ctx, input.UserID); err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return UpdateUserResult{}, ErrNotFound
		}
		return UpdateUserResult{}, err
	}

	patch := persistence.UserPatch{
		ID:       input.UserID,
		UserName: input.UserName,
		Email:    input.Email,
	}
	if input.Password != nil {
		hash, err := s.hashPassword(*input.Password)
		if err != nil {
			return UpdateUserResult{}, fmt.Errorf("failed to hash password: %w", err)
		}
		patch.PasswordHash = &hash
	}

	if err := s.users.UpdateUser(ctx, patch); err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return UpdateUserResult{}, ErrNotFound
		}
		if errors.Is(err, persistence.ErrDuplicate) {
			return UpdateUserResult{}, ErrDuplicate
		}
		return UpdateUserResult{}, err
	}

	persisted, err := s.users.GetUser(ctx, input.UserID)
	if err != nil {
		return UpdateUserResult{}, err
	}

	result := UpdateUserResult{User: userFromRecord(persisted)}
	if input.Password != nil {
		result.Message = "Password changed successfully!"
	}

	s.loggerWith(ctx, "Update", "user_id", input.UserID).InfoContext(ctx, "user updated")
	return result, nil
}

// DeleteOne removes a user together with every meeting the user initiated and
// the invitations to those meetings.
func (s *UserService) DeleteOne(ctx context.Context, id string) error {
	if s == nil {
		return fmt.Errorf("UserService is nil")
	}

	logger := s.loggerWith(ctx, "DeleteOne", "user_id", id)

	if _, err := s.users.GetUser(ctx, id); err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.users.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return ErrNotFound
		}
		logger.ErrorContext(ctx, "failed to delete user", "error", err)
		return err
	}

	logger.InfoContext(ctx, "user deleted")
	return nil
}

// DeleteAll wipes users, meetings, and invitations.
func (s *UserService) DeleteAll(ctx context.Context) error {
	if s == nil {
		return fmt.Errorf("UserService is nil")
	}

	if err := s.users.DeleteAllUsers(ctx); err != nil {
		s.loggerWith(ctx, "DeleteAll").ErrorContext(ctx, "failed to delete all users", "error", err)
		return err
	}

	s.loggerWith(ctx, "DeleteAll").InfoContext(ctx, "all users deleted")
	return nil
}
