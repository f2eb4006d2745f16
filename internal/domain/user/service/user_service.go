package service

import (
	"errors"

	"social_feed/internal/domain/user/model"
	"social_feed/internal/domain/user/repository"
	"social_feed/pkg/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrUserExists 用户名已被占用
	ErrUserExists = errors.New("username already taken")
	// ErrInvalidCredentials 用户名或密码错误
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type UserService interface {
	Register(username, password string) (string, error) // Returns JWT token
	Login(username, password string) (string, error)    // Returns JWT token
	GetUser(id string) (*model.User, error)
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// Register 注册新用户并签发 token
func (s *userService) Register(username, password string) (string, error) {
	_, err := s.repo.GetByUsername(username)
	if err == nil {
		return "", ErrUserExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	user := &model.User{
		Username: username,
		Password: string(hash),
	}
	if err := s.repo.Create(user); err != nil {
		return "", err
	}

	token, _, err := utils.GenerateToken(user.ID, user.Username)
	return token, err
}

// Login 校验口令并签发 token
func (s *userService) Login(username, password string) (string, error) {
	user, err := s.repo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, _, err := utils.GenerateToken(user.ID, user.Username)
	return token, err
}

func (s *userService) GetUser(id string) (*model.User, error) {
	return s.repo.GetByID(id)
}
