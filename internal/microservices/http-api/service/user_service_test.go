package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"cineforo/internal/config"
	"cineforo/internal/microservices/http-api/dto"
	"cineforo/internal/microservices/http-api/models"
	"cineforo/internal/microservices/http-api/repository"
	"cineforo/internal/microservices/http-api/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestUserService() (UserService, *MockUserRepository) {
	repo := new(MockUserRepository)
	cfg := &config.Config{AvatarMaxBytes: 1 << 20, AvatarSize: 64}
	return NewUserService(repo, cfg), repo
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUpdateProfile_Success(t *testing.T) {
	svc, repo := newTestUserService()
	ctx := context.Background()

	repo.On("UpdateFields", ctx, "u1", map[string]any{"name": "Ana María", "favorite_genre": "Horror"}).Return(nil)
	repo.On("FindByID", ctx, "u1").Return(&models.User{ID: "u1", Name: "Ana María", FavoriteGenre: "Horror"}, nil)

	profile, err := svc.UpdateProfile(ctx, "u1", dto.UpdateProfileRequest{Name: "  Ana María ", FavoriteGenre: "Horror"})

	require.NoError(t, err)
	assert.Equal(t, "Horror", profile.FavoriteGenre)
	repo.AssertExpectations(t)
}

func TestUpdateProfile_InvalidGenre(t *testing.T) {
	svc, repo := newTestUserService()

	_, err := svc.UpdateProfile(context.Background(), "u1", dto.UpdateProfileRequest{Name: "Ana", FavoriteGenre: "Western"})

	var vErr *validation.ValidationError
	assert.True(t, errors.As(err, &vErr))
	repo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateProfile_UserGone(t *testing.T) {
	svc, repo := newTestUserService()
	ctx := context.Background()

	repo.On("UpdateFields", ctx, "u1", mock.Anything).Return(gorm.ErrRecordNotFound)

	_, err := svc.UpdateProfile(ctx, "u1", dto.UpdateProfileRequest{Name: "Ana", FavoriteGenre: "Drama"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	req := dto.ChangePasswordRequest{CurrentPassword: "secret1", NewPassword: "secret2", PasswordConfirmation: "secret2"}

	t.Run("success", func(t *testing.T) {
		svc, repo := newTestUserService()
		repo.On("FindByID", ctx, "u1").Return(&models.User{ID: "u1", Password: hashed(t, "secret1")}, nil)
		repo.On("UpdateFields", ctx, "u1", mock.MatchedBy(func(f map[string]any) bool {
			h, ok := f["password_hash"].(string)
			return ok && strings.HasPrefix(h, "$2a$")
		})).Return(nil)

		assert.NoError(t, svc.ChangePassword(ctx, "u1", req))
		repo.AssertExpectations(t)
	})

	t.Run("wrong current password", func(t *testing.T) {
		svc, repo := newTestUserService()
		repo.On("FindByID", ctx, "u1").Return(&models.User{ID: "u1", Password: hashed(t, "different")}, nil)

		assert.ErrorIs(t, svc.ChangePassword(ctx, "u1", req), ErrWrongPassword)
		repo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("confirmation mismatch", func(t *testing.T) {
		svc, repo := newTestUserService()
		bad := req
		bad.PasswordConfirmation = "secret3"

		var vErr *validation.ValidationError
		assert.True(t, errors.As(svc.ChangePassword(ctx, "u1", bad), &vErr))
		repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("new password over bcrypt limit", func(t *testing.T) {
		svc, repo := newTestUserService()
		long := strings.Repeat("n", 80)
		bad := dto.ChangePasswordRequest{CurrentPassword: "secret1", NewPassword: long, PasswordConfirmation: long}

		var vErr *validation.ValidationError
		require.True(t, errors.As(svc.ChangePassword(ctx, "u1", bad), &vErr))
		assert.Equal(t, "new_password", vErr.Field)
		repo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUploadAvatar_CropsToSquareJPEG(t *testing.T) {
	svc, repo := newTestUserService()
	ctx := context.Background()

	var stored string
	repo.On("UpdateFields", ctx, "u1", mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(2).(map[string]any)["avatar_url"].(string)
	}).Return(nil)
	repo.On("FindByID", ctx, "u1").Return(&models.User{ID: "u1"}, nil)

	_, err := svc.UploadAvatar(ctx, "u1", bytes.NewReader(pngBytes(t, 200, 100)))
	require.NoError(t, err)

	const prefix = "data:image/jpeg;base64,"
	require.True(t, strings.HasPrefix(stored, prefix))
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(stored, prefix))
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 64, img.Bounds().Dy())
}

func TestUploadAvatar_RejectsGarbageAndOversize(t *testing.T) {
	svc, repo := newTestUserService()
	ctx := context.Background()

	_, err := svc.UploadAvatar(ctx, "u1", strings.NewReader("not an image"))
	assert.ErrorIs(t, err, ErrInvalidImage)

	big := bytes.Repeat([]byte{0xff}, (1<<20)+1)
	_, err = svc.UploadAvatar(ctx, "u1", bytes.NewReader(big))
	assert.ErrorIs(t, err, ErrImageTooLarge)

	repo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}

// pngHeader is a PNG that stops after an IHDR declaring w x h RGBA pixels
func pngHeader(w, h uint32) []byte {
	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], w)
	binary.BigEndian.PutUint32(ihdr[4:8], h)
	ihdr[8] = 8 // bit depth
	ihdr[9] = 6 // RGBA

	chunk := append([]byte("IHDR"), ihdr...)
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestUploadAvatar_RejectsHugeDimensionsBeforeDecoding(t *testing.T) {
	svc, repo := newTestUserService()
	ctx := context.Background()

	header := pngHeader(30000, 30000)
	require.Less(t, len(header), 100)

	_, err := svc.UploadAvatar(ctx, "u1", bytes.NewReader(header))
	assert.ErrorIs(t, err, ErrImageTooLarge)
	repo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetStats(t *testing.T) {
	svc, repo := newTestUserService()
	ctx := context.Background()

	repo.On("FindByID", ctx, "u1").Return(&models.User{ID: "u1"}, nil)
	repo.On("Stats", ctx, "u1").Return(&repository.UserStats{Favorites: 3, Comments: 5, Topics: 1, Likes: 7}, nil)

	stats, err := svc.GetStats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, &dto.UserStatsResponse{Favorites: 3, Comments: 5, Topics: 1, Likes: 7}, stats)
}

func TestSetRole(t *testing.T) {
	svc, repo := newTestUserService()
	ctx := context.Background()

	_, err := svc.SetRole(ctx, "u2", "admin")
	assert.ErrorIs(t, err, ErrInvalidRole)

	repo.On("UpdateFields", ctx, "u2", map[string]any{"role": models.RoleModerator}).Return(nil)
	repo.On("FindByID", ctx, "u2").Return(&models.User{ID: "u2", Role: models.RoleModerator}, nil)

	profile, err := svc.SetRole(ctx, "u2", models.RoleModerator)
	require.NoError(t, err)
	assert.Equal(t, models.RoleModerator, profile.Role)
}
