package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"strings"

	"cineforo/internal/config"
	"cineforo/internal/microservices/http-api/dto"
	"cineforo/internal/microservices/http-api/models"
	"cineforo/internal/microservices/http-api/repository"
	"cineforo/internal/microservices/http-api/validation"
	"cineforo/internal/middleware/auth"

	"github.com/disintegration/imaging"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrWrongPassword = errors.New("current password is incorrect")
	ErrInvalidImage  = errors.New("avatar must be a JPEG, PNG or GIF image")
	ErrImageTooLarge = errors.New("avatar image is too large")
	ErrInvalidRole   = errors.New("role must be 'user' or 'moderator'")
)

const (
	avatarJPEGQuality = 85
	maxAvatarPixels   = 4096 * 4096
)

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*dto.UserResponse, error)
	ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error
	UploadAvatar(ctx context.Context, userID string, image io.Reader) (*dto.UserResponse, error)
	GetStats(ctx context.Context, userID string) (*dto.UserStatsResponse, error)
	SetRole(ctx context.Context, userID, role string) (*dto.UserResponse, error)
}

type userService struct {
	userRepo       repository.UserRepository
	avatarMaxBytes int64
	avatarSize     int
}

func NewUserService(userRepo repository.UserRepository, cfg *config.Config) UserService {
	return &userService{
		userRepo:       userRepo,
		avatarMaxBytes: cfg.AvatarMaxBytes,
		avatarSize:     cfg.AvatarSize,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToUserResponse(user), nil
}

// UpdateProfile changes the display name and favourite genre
func (s *userService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	if err := validation.ValidateProfile(req.Name, req.FavoriteGenre); err != nil {
		return nil, err
	}

	fields := map[string]any{
		"name":           strings.TrimSpace(req.Name),
		"favorite_genre": req.FavoriteGenre,
	}
	if err := s.update(ctx, userID, fields); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}

func (s *userService) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error {
	if err := validation.ValidatePasswordChange(req.CurrentPassword, req.NewPassword, req.PasswordConfirmation); err != nil {
		return err
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := auth.VerifyPassword(user.Password, req.CurrentPassword); err != nil {
		return ErrWrongPassword
	}

	hashedPassword, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.update(ctx, userID, map[string]any{"password_hash": hashedPassword}); err != nil {
		return err
	}

	slog.Info("password changed", "user_id", userID)
	return nil
}

// UploadAvatar crops the image to a centred square, scales it down and stores it as a JPEG data URL
func (s *userService) UploadAvatar(ctx context.Context, userID string, src io.Reader) (*dto.UserResponse, error) {
	raw, err := io.ReadAll(io.LimitReader(src, s.avatarMaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read avatar: %w", err)
	}
	if int64(len(raw)) > s.avatarMaxBytes {
		return nil, ErrImageTooLarge
	}

	dataURL, err := s.processAvatar(raw)
	if err != nil {
		return nil, err
	}

	if err := s.update(ctx, userID, map[string]any{"avatar_url": dataURL}); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}

func (s *userService) processAvatar(raw []byte) (string, error) {
	// headers are checked first so a small file cannot claim a huge canvas
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return "", ErrInvalidImage
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return "", ErrInvalidImage
	}
	if int64(cfg.Width)*int64(cfg.Height) > maxAvatarPixels {
		return "", ErrImageTooLarge
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return "", ErrInvalidImage
	}

	thumb := imaging.Fill(img, s.avatarSize, s.avatarSize, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(avatarJPEGQuality)); err != nil {
		return "", fmt.Errorf("encode avatar: %w", err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func (s *userService) GetStats(ctx context.Context, userID string) (*dto.UserStatsResponse, error) {
	if _, err := s.findUser(ctx, userID); err != nil {
		return nil, err
	}
	stats, err := s.userRepo.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.UserStatsResponse{
		Favorites: stats.Favorites,
		Comments:  stats.Comments,
		Topics:    stats.Topics,
		Likes:     stats.Likes,
	}, nil
}

// SetRole promotes or demotes a user; callers are checked by the moderator route guard
func (s *userService) SetRole(ctx context.Context, userID, role string) (*dto.UserResponse, error) {
	if role != models.RoleUser && role != models.RoleModerator {
		return nil, ErrInvalidRole
	}
	if err := s.update(ctx, userID, map[string]any{"role": role}); err != nil {
		return nil, err
	}
	slog.Info("role changed", "user_id", userID, "role", role)
	return s.GetProfile(ctx, userID)
}

func (s *userService) findUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) update(ctx context.Context, userID string, fields map[string]any) error {
	if err := s.userRepo.UpdateFields(ctx, userID, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
