package controllers

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"dealbot/dealbot/config"
	"dealbot/dealbot/sources/psql/dao"
	"dealbot/dealbot/sources/psql/models"
)

type AuthController struct {
	userDAO *dao.UserDAO
	cfg     config.Config
}

func NewAuthController(userDAO *dao.UserDAO, cfg config.Config) *AuthController {
	return &AuthController{
		userDAO: userDAO,
		cfg:     cfg,
	}
}

// Signup creates the user and authenticates them immediately. Duplicate
// emails are rejected with ErrEmailTaken.
func (c *AuthController) Signup(ctx context.Context, email, name, password string) (string, *models.User, error) {
	existing, err := c.userDAO.GetUserByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if existing != nil {
		return "", nil, ErrEmailTaken
	}
	user, err := c.userDAO.CreateUser(ctx, email, name, password)
	if err != nil {
		return "", nil, err
	}
	token, err := c.issueToken(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Login verifies the password against the stored bcrypt hash. Unknown
// email and wrong password are indistinguishable to the caller.
func (c *AuthController) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := c.userDAO.GetUserByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if user == nil || !user.CheckPassword(password) {
		return "", nil, ErrInvalidCredentials
	}
	token, err := c.issueToken(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (c *AuthController) issueToken(userID int) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(c.cfg.JWTSecret))
}
