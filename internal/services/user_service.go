package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Prince260602/internhubs/internal/models"
	mongorepo "github.com/Prince260602/internhubs/internal/repositories/mongo"
	"github.com/Prince260602/internhubs/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	msgUnauthenticated = "User not authenticated"
	msgUserNotFound    = "User not found"
	msgBadCredentials  = "Invalid email or password"
)

type TokenIssuer interface {
	Issue(userID, role string) (string, error)
}

type UserService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Me(ctx context.Context, userID string) (*models.User, error)
}

type userService struct {
	users  mongorepo.UserRepository
	tokens TokenIssuer
}

func NewUserService(users mongorepo.UserRepository, tokens TokenIssuer) UserService {
	return &userService{users: users, tokens: tokens}
}

func (s *userService) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	const op = "UserService.Register"

	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || len(password) < 8 {
		return nil, "", utils.E(utils.CodeInvalidArgument, op, "name, emailId and a password of at least 8 characters are required", nil)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, "", utils.E(utils.CodeInternal, op, "failed to hash password", err)
	}

	u := &models.User{Name: name, EmailID: email, Password: hash}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, utils.ErrDuplicate) {
			return nil, "", utils.E(utils.CodeConflict, op, "A user with this email already exists", nil)
		}
		return nil, "", utils.E(utils.CodeInternal, op, "failed to create user", err)
	}

	tok, err := s.tokens.Issue(u.ID.Hex(), string(u.Role()))
	if err != nil {
		return nil, "", utils.E(utils.CodeInternal, op, "failed to issue token", err)
	}
	return u, tok, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (string, error) {
	const op = "UserService.Login"

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return "", utils.E(utils.CodeUnauthenticated, op, msgBadCredentials, nil)
		}
		return "", utils.E(utils.CodeInternal, op, "failed to look up user", err)
	}

	if err := utils.CheckPassword(u.Password, password); err != nil {
		if errors.Is(err, utils.ErrPasswordMismatch) {
			return "", utils.E(utils.CodeUnauthenticated, op, msgBadCredentials, nil)
		}
		return "", utils.E(utils.CodeInternal, op, "failed to verify password", err)
	}

	tok, err := s.tokens.Issue(u.ID.Hex(), string(u.Role()))
	if err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to issue token", err)
	}
	return tok, nil
}

func (s *userService) Me(ctx context.Context, userID string) (*models.User, error) {
	return resolveUser(ctx, s.users, "UserService.Me", userID)
}

// resolveUser maps the token subject to a stored user.
func resolveUser(ctx context.Context, users mongorepo.UserRepository, op, userID string) (*models.User, error) {
	if userID == "" {
		return nil, utils.E(utils.CodeUnauthenticated, op, msgUnauthenticated, nil)
	}
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, utils.E(utils.CodeUserNotFound, op, msgUserNotFound, nil)
	}

	u, err := users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeUserNotFound, op, msgUserNotFound, nil)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to look up user", err)
	}
	return u, nil
}
