// Package services contains server-side business logic. This file implements
// UserService, which handles registration and login and issues bearer tokens.
package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/shopkeeper/internal/common"
	"github.com/dmitrijs2005/shopkeeper/internal/dbx"
	"github.com/dmitrijs2005/shopkeeper/internal/logging"
	"github.com/dmitrijs2005/shopkeeper/internal/server/auth"
	"github.com/dmitrijs2005/shopkeeper/internal/server/models"
	"github.com/dmitrijs2005/shopkeeper/internal/server/repositories/repomanager"
)

// TokenIssuer mints a signed bearer token for an authenticated user.
type TokenIssuer interface {
	Issue(userID int64, userName string) (string, error)
}

// LoginResult is what a successful login hands back to the transport.
type LoginResult struct {
	User  *models.User
	Token string
}

// UserService provides authentication-related operations:
// - Register: validate credentials, hash the password and create the user
// - Login: verify credentials and mint a token
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      auth.PasswordHasher
	tokens      TokenIssuer
	logger      logging.Logger
}

// NewUserService constructs a UserService. A nil logger discards output.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, h auth.PasswordHasher, t TokenIssuer, l logging.Logger) *UserService {
	if l == nil {
		l = logging.Nop()
	}
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      h,
		tokens:      t,
		logger:      l.With("module", "user_service"),
	}
}

// Register creates a new account. The username lookup and the insert share a
// transaction; a concurrent insert that wins the race still surfaces as
// common.ErrUsernameTaken through the unique constraint.
func (s *UserService) Register(ctx context.Context, c models.Credentials) (*models.User, error) {

	if err := validateRegistration(c); err != nil {
		return nil, err
	}

	var created *models.User

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		_, err := repo.GetUserByLogin(ctx, c.UserName)
		if err == nil {
			return common.ErrUsernameTaken
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		hash, err := s.hasher.Hash(c.Password)
		if err != nil {
			return err
		}

		created, err = repo.Create(ctx, &models.User{UserName: c.UserName, PasswordHash: hash})
		if err != nil {
			if errors.Is(err, common.ErrorAlreadyExists) {
				return common.ErrUsernameTaken
			}
			return err
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, common.ErrUsernameTaken) {
			return nil, common.ErrUsernameTaken
		}
		s.logger.Error(ctx, "register failed", "error", err)
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "user registered", "user_id", created.ID)

	return &models.User{ID: created.ID, UserName: created.UserName, CreatedAt: created.CreatedAt}, nil
}

// Login checks the credentials and returns the user with a fresh token.
// Unknown users and wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, c models.Credentials) (*LoginResult, error) {

	if err := validateLogin(c); err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByLogin(ctx, c.UserName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		s.logger.Error(ctx, "login lookup failed", "error", err)
		return nil, common.ErrorInternal
	}

	if !s.hasher.Verify(c.Password, user.PasswordHash) {
		s.logger.Warn(ctx, "login rejected", "user_id", user.ID)
		return nil, common.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.UserName)
	if err != nil {
		s.logger.Error(ctx, "token issue failed", "error", err)
		return nil, common.ErrorInternal
	}

	return &LoginResult{
		User:  &models.User{ID: user.ID, UserName: user.UserName, CreatedAt: user.CreatedAt},
		Token: token,
	}, nil
}
