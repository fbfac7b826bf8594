package userapp

import (
	"context"
	"errors"
	"strings"
	"time"

	"board/internal/core/apperror"
	userEntity "board/internal/core/user"
	userPort "board/internal/ports/user"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenIssuer   = "board"
	tokenLifetime = 24 * time.Hour
)

// UserService signs members up and issues their access tokens.
type UserService struct {
	UserRepository userPort.UserRepository
	Logger         *zap.Logger
	Now            func() time.Time
	jwtKey         []byte
}

func NewUserService(repo userPort.UserRepository, jwtKey []byte, logger *zap.Logger) *UserService {
	return &UserService{
		UserRepository: repo,
		Logger:         logger,
		Now:            time.Now,
		jwtKey:         jwtKey,
	}
}

// SignIn checks the password and returns a signed JWT whose subject is the username.
func (s *UserService) SignIn(ctx context.Context, username, password string) (*userPort.LoginResponse, error) {
	user, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		s.Logger.Error("Error finding user", zap.String("username", username), zap.Error(err))
		return nil, apperror.Storage(err)
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.Logger.Debug("Invalid password", zap.String("username", username))
		return nil, apperror.ErrInvalidCredentials
	}

	expiresAt := s.Now().Add(tokenLifetime).Unix()
	token, err := s.generateJWT(user, expiresAt)
	if err != nil {
		s.Logger.Error("Error generating JWT", zap.Error(err))
		return nil, apperror.Wrap(apperror.KindUnauthorized, err)
	}

	return &userPort.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *UserService) generateJWT(user *userEntity.User, expiresAt int64) (string, error) {
	claims := &jwt.StandardClaims{
		Subject:   user.Username,
		Issuer:    tokenIssuer,
		IssuedAt:  s.Now().Unix(),
		ExpiresAt: expiresAt,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtKey)
}

// SignUp registers a new member. The username must be unused.
func (s *UserService) SignUp(ctx context.Context, username, password, nickname, profileImage string) (*userPort.UserDTO, error) {
	username = strings.TrimSpace(username)
	nickname = strings.TrimSpace(nickname)
	if username == "" || password == "" || nickname == "" {
		return nil, apperror.Validation("Username, password and nickname are required.")
	}

	if err := s.CheckUsername(ctx, username); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &userEntity.User{
		ID:           uuid.Must(uuid.NewV4()),
		Username:     username,
		Nickname:     nickname,
		ProfileImage: profileImage,
		Password:     string(hashedPassword),
	}

	u, err := s.UserRepository.Create(ctx, user)
	if errors.Is(err, apperror.ErrDuplicateUser) {
		s.Logger.Info("Username taken during sign up", zap.String("username", username))
		return nil, apperror.ErrDuplicateUser
	}
	if err != nil {
		s.Logger.Error("Error creating user", zap.String("username", username), zap.Error(err))
		return nil, apperror.Storage(err)
	}

	s.Logger.Info("User signed up", zap.String("username", u.Username))
	return userPort.NewUserDTO(u), nil
}

// CheckUsername returns ErrDuplicateUser when username is already registered.
func (s *UserService) CheckUsername(ctx context.Context, username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return apperror.Validation("Username is required.")
	}

	taken, err := s.UserRepository.ExistsByUsername(ctx, username)
	if err != nil {
		s.Logger.Error("Error checking username", zap.String("username", username), zap.Error(err))
		return apperror.Storage(err)
	}
	if taken {
		return apperror.ErrDuplicateUser
	}
	return nil
}
