package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"todaygenda.com/todaygenda/internal/auth"
	apperrors "todaygenda.com/todaygenda/internal/errors"
	model "todaygenda.com/todaygenda/internal/models"
	repository "todaygenda.com/todaygenda/internal/repositories"
)

const MinPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type userKeyKind int

const (
	keyByID userKeyKind = iota
	keyByEmail
	keyBySubject
)

// UserKey identifies a user by id, by email or by token subject.
type UserKey struct {
	kind  userKeyKind
	id    uint
	value string
}

func ByID(id uint) UserKey {
	return UserKey{kind: keyByID, id: id}
}

func ByEmail(email string) UserKey {
	return UserKey{kind: keyByEmail, value: email}
}

func BySubject(subject string) UserKey {
	return UserKey{kind: keyBySubject, value: subject}
}

type UserService struct {
	store    *repository.Store
	hasher   *auth.PasswordHasher
	tokens   *auth.TokenManager
	guestKey string
	logger   *zap.Logger
}

func NewUserService(
	store *repository.Store,
	hasher *auth.PasswordHasher,
	tokens *auth.TokenManager,
	guestKey string,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		store:    store,
		hasher:   hasher,
		tokens:   tokens,
		guestKey: guestKey,
		logger:   logger,
	}
}

// Fetch loads the user a key points at. Guest subjects ("anon:<id>") resolve
// by id and every other subject is an email.
func (s *UserService) Fetch(ctx context.Context, key UserKey) (*model.User, error) {
	var (
		user *model.User
		err  error
	)

	switch key.kind {
	case keyByID:
		user, err = s.store.Users.FindByID(ctx, key.id)
	case keyByEmail:
		user, err = s.store.Users.FindByEmail(ctx, key.value)
	case keyBySubject:
		if raw, ok := strings.CutPrefix(key.value, model.GuestSubjectPrefix); ok {
			id, parseErr := strconv.ParseUint(raw, 10, 64)
			if parseErr != nil {
				return nil, apperrors.NewNotFoundError("user")
			}
			user, err = s.store.Users.FindByID(ctx, uint(id))
		} else {
			user, err = s.store.Users.FindByEmail(ctx, key.value)
		}
	default:
		return nil, apperrors.NewNotFoundError("user")
	}

	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewNotFoundError("user")
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Register(ctx context.Context, email, password string) (*model.User, error) {
	hash, err := s.credentials(email, password)
	if err != nil {
		return nil, err
	}

	user := &model.User{Email: &email, PasswordHash: &hash}
	if err := s.store.Users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.Uint("user_id", user.ID))
	return user, nil
}

// Authenticate checks an email and password pair. Every failure looks the
// same to the caller.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.store.Users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}

	if user.PasswordHash == nil || !s.hasher.Verify(password, *user.PasswordHash) {
		return nil, apperrors.ErrBadCredentials
	}
	return user, nil
}

// CreateGuest makes a new anonymous user when key matches the configured
// guest key. An empty guest key disables guest logins.
func (s *UserService) CreateGuest(ctx context.Context, key string) (*model.User, error) {
	if s.guestKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(s.guestKey)) != 1 {
		return nil, apperrors.ErrBadCredentials
	}

	user := &model.User{}
	if err := s.store.Users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("guest user created", zap.Uint("user_id", user.ID))
	return user, nil
}

// PopulateGuest upgrades a guest to a registered user, keeping its lists.
func (s *UserService) PopulateGuest(ctx context.Context, user *model.User, email, password string) (*model.User, error) {
	if !user.IsGuest() {
		return nil, apperrors.ErrGuestOnly
	}

	hash, err := s.credentials(email, password)
	if err != nil {
		return nil, err
	}

	user.Email = &email
	user.PasswordHash = &hash
	if err := s.store.Users.Update(ctx, user); err != nil {
		user.Email = nil
		user.PasswordHash = nil
		return nil, err
	}

	s.logger.Info("guest user registered", zap.Uint("user_id", user.ID))
	return user, nil
}

// EnsureLocal returns the password-less user that owns lists created from the
// command line, creating it on first use.
func (s *UserService) EnsureLocal(ctx context.Context, email string) (*model.User, error) {
	user, err := s.Fetch(ctx, ByEmail(email))
	if err == nil {
		return user, nil
	}

	var notFoundErr *apperrors.NotFoundError
	if !errors.As(err, &notFoundErr) {
		return nil, err
	}

	user = &model.User{Email: &email}
	if err := s.store.Users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) IssueToken(user *model.User) (string, error) {
	return s.tokens.Generate(user.Subject(), user.IsGuest())
}

// UserFromToken resolves a bearer token to its user.
func (s *UserService) UserFromToken(ctx context.Context, token string) (*model.User, error) {
	subject, err := s.tokens.Subject(token)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}

	user, err := s.Fetch(ctx, BySubject(subject))
	if err != nil {
		var notFoundErr *apperrors.NotFoundError
		if errors.As(err, &notFoundErr) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) credentials(email, password string) (string, error) {
	if !emailPattern.MatchString(email) {
		return "", apperrors.NewValidationError("username", "value is not a valid email address")
	}
	if len(password) < MinPasswordLength {
		return "", apperrors.NewValidationError("password", "must be at least %d characters", MinPasswordLength)
	}
	return s.hasher.Hash(password)
}
