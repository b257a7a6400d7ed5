package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"messenger/model"
	"messenger/repository"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWeakPassword       = errors.New("password is too weak")
)

type UserService struct {
	users  repository.UserRepository
	tokens *TokenService
}

func NewUserService(users repository.UserRepository, tokens *TokenService) *UserService {
	return &UserService{users: users, tokens: tokens}
}

type User struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (service *UserService) Register(ctx context.Context, user *User) (*model.User, error) {
	if !IsValidPassword(user.Password) {
		return nil, ErrWeakPassword
	}

	// 唯一性检查
	taken, err := service.users.Taken(ctx, user.Username, user.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUserExists
	}

	// 密码加密
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// 存储用户信息
	return service.users.Save(ctx, &model.User{
		Username: user.Username,
		Email:    user.Email,
		Password: string(hashedPassword),
	})
}

func (service *UserService) Login(ctx context.Context, user *User) (string, error) {
	// 验证用户名和密码
	registeredUser, err := service.users.FindByUsername(ctx, user.Username)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(registeredUser.Password), []byte(user.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	// 生成会话令牌
	td, err := service.tokens.CreateToken(registeredUser)
	if err != nil {
		return "", err
	}
	return td.AccessToken, nil
}

// Refresh issues a new token for the bearer of a still valid one. The user is reloaded
// so role changes reach the new token's scopes.
func (service *UserService) Refresh(ctx context.Context, accessToken string) (string, error) {
	claims, err := service.tokens.VerifyToken(accessToken)
	if err != nil {
		return "", err
	}

	user, err := service.users.FindOne(ctx, strconv.FormatUint(uint64(claims.UserID), 10))
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrInvalidToken
	}
	if err != nil {
		return "", err
	}

	td, err := service.tokens.CreateToken(user)
	if err != nil {
		return "", err
	}
	return td.AccessToken, nil
}
