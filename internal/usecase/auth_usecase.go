package usecase

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path"

	"artmarket/internal/entity"
	"artmarket/internal/repo/persistent"
	"artmarket/pkg/jwt"
	"artmarket/pkg/logger"
	"artmarket/pkg/storage"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthUseCase interface {
	Register(email, username, password string) (*entity.User, string, error)
	Login(email, password string) (*entity.User, string, error)
	GetProfile(userID string) (*entity.User, error)
	UpdateProfile(userID string, bio, username *string) (*entity.User, error)
	UploadAvatar(userID string, file *multipart.FileHeader) (*entity.User, error)
	ListUsers() ([]*entity.User, error)
	ResetPassword(userID, newPassword string) error
}

type authUseCase struct {
	userRepo   persistent.UserRepository
	jwtService *jwt.Service
	storage    storage.Storage
	logger     *logger.Logger
}

func NewAuthUseCase(
	userRepo persistent.UserRepository,
	jwtService *jwt.Service,
	fileStorage storage.Storage,
	log *logger.Logger,
) AuthUseCase {
	return &authUseCase{
		userRepo:   userRepo,
		jwtService: jwtService,
		storage:    fileStorage,
		logger:     log,
	}
}

func (uc *authUseCase) Register(email, username, password string) (*entity.User, string, error) {
	if email == "" || username == "" {
		return nil, "", fmt.Errorf("email and username are required: %w", entity.ErrValidation)
	}
	if len(password) < 6 {
		return nil, "", fmt.Errorf("password must be at least 6 characters: %w", entity.ErrValidation)
	}

	if _, err := uc.userRepo.GetByEmail(email); err == nil {
		return nil, "", fmt.Errorf("email %s is already registered: %w", email, entity.ErrConflict)
	} else if !errors.Is(err, entity.ErrNotFound) {
		return nil, "", err
	}

	if _, err := uc.userRepo.GetByUsername(username); err == nil {
		return nil, "", fmt.Errorf("username %s is taken: %w", username, entity.ErrConflict)
	} else if !errors.Is(err, entity.ErrNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Email:    email,
		Username: username,
		Password: string(hash),
		Role:     entity.RoleUser,
		IsActive: true,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := uc.jwtService.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	uc.logger.Info("Registered user %s (%s)", user.Username, user.ID)
	return user, token, nil
}

func (uc *authUseCase) Login(email, password string) (*entity.User, string, error) {
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, "", fmt.Errorf("invalid credentials: %w", entity.ErrUnauthorized)
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", fmt.Errorf("invalid credentials: %w", entity.ErrUnauthorized)
	}

	if !user.IsActive {
		return nil, "", fmt.Errorf("account is deactivated: %w", entity.ErrUnauthorized)
	}

	token, err := uc.jwtService.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

func (uc *authUseCase) GetProfile(userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(userID)
}

func (uc *authUseCase) UpdateProfile(userID string, bio, username *string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if bio != nil {
		user.Bio = *bio
	}
	if username != nil && *username != user.Username {
		if _, err := uc.userRepo.GetByUsername(*username); err == nil {
			return nil, fmt.Errorf("username %s is taken: %w", *username, entity.ErrConflict)
		} else if !errors.Is(err, entity.ErrNotFound) {
			return nil, err
		}
		user.Username = *username
	}

	if err := uc.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// UploadAvatar stores the new avatar and replaces the user's previous
// reference. The old file is left in storage; references elsewhere may
// still point at it.
func (uc *authUseCase) UploadAvatar(userID string, file *multipart.FileHeader) (*entity.User, error) {
	if file == nil {
		return nil, fmt.Errorf("avatar file is required: %w", entity.ErrValidation)
	}

	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open avatar file: %w", err)
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	key := fmt.Sprintf("avatars/%s%s", uuid.New().String(), path.Ext(file.Filename))
	avatarRef, err := uc.storage.Save(key, src, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to store avatar: %w", err)
	}

	user.AvatarURL = avatarRef
	if err := uc.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update avatar: %w", err)
	}
	return user, nil
}

func (uc *authUseCase) ListUsers() ([]*entity.User, error) {
	return uc.userRepo.List()
}

// ResetPassword lets an admin set a new password for any account.
func (uc *authUseCase) ResetPassword(userID, newPassword string) error {
	if len(newPassword) < 6 {
		return fmt.Errorf("password must be at least 6 characters: %w", entity.ErrValidation)
	}

	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.Password = string(hash)
	if err := uc.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}

	uc.logger.Info("Password reset for user %s", userID)
	return nil
}
