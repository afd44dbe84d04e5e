package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/pribylovaa/go-catalog-service/internal/config"
	"github.com/pribylovaa/go-catalog-service/internal/models"
	"github.com/pribylovaa/go-catalog-service/internal/storage"
	"github.com/pribylovaa/go-catalog-service/mocks"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func testCfg() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:      "unit-secret",
		AccessTokenTTL: 15 * time.Minute,
	}
}

func newSvc(t *testing.T) (*Service, *mocks.MockStorage, *gomock.Controller) {
	t.Helper()
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStorage(ctrl)
	svc := New(st, testCfg())
	return svc, st, ctrl
}

func mustHashPW(t *testing.T, pw string) string {
	t.Helper()
	h, err := hashPassword(pw)
	require.NoError(t, err)
	return h
}

func TestRegisterUser_OK(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	ctx := context.Background()
	email := "Joao@Email.com"
	norm := "joao@email.com"

	st.EXPECT().UserByEmail(gomock.Any(), norm).Return(nil, storage.ErrNotFound)
	st.EXPECT().SaveUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u *models.User) error {
			u.ID = 1
			return nil
		})

	user, err := svc.RegisterUser(ctx, "Joao", email, "123456")
	require.NoError(t, err)
	require.Equal(t, int64(1), user.ID)
	require.Equal(t, "Joao", user.Name)
	require.Equal(t, norm, user.Email)
	require.NotEmpty(t, user.PasswordHash)
	require.NotEqual(t, "123456", user.PasswordHash)
}

func TestRegisterUser_Validation(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, err := svc.RegisterUser(context.Background(), "  ", "u@e.com", "123456")
	require.ErrorIs(t, err, ErrEmptyName)

	_, err = svc.RegisterUser(context.Background(), "Joao", "not-an-email", "123456")
	require.ErrorIs(t, err, ErrInvalidEmail)

	_, err = svc.RegisterUser(context.Background(), "Joao", "u@e.com", "12345")
	require.ErrorIs(t, err, ErrWeakPassword)
}

func TestRegisterUser_EmailAlreadyExists_OnLookup(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	// Если UserByEmail вернул пользователя (err == nil) - считается занятым email.
	st.EXPECT().UserByEmail(gomock.Any(), "user@example.com").
		Return(&models.User{ID: 7, Email: "user@example.com"}, nil)

	_, err := svc.RegisterUser(context.Background(), "Joao", "user@example.com", "123456")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterUser_SaveUserAlreadyExists_MapsToEmailTaken(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	// Гонка двух регистраций: предварительная проверка прошла,
	// но уникальный индекс схемы отклонил вставку.
	st.EXPECT().UserByEmail(gomock.Any(), "user@example.com").
		Return(nil, storage.ErrNotFound)
	st.EXPECT().SaveUser(gomock.Any(), gomock.Any()).
		Return(storage.ErrAlreadyExists)

	_, err := svc.RegisterUser(context.Background(), "Joao", "user@example.com", "123456")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterUser_StorageErrors_Propagated(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().UserByEmail(gomock.Any(), "user@example.com").
		Return(nil, errors.New("db down"))

	_, err := svc.RegisterUser(context.Background(), "Joao", "user@example.com", "123456")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrEmailTaken)
}

func TestLoginUser_OK(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	email := "joao@email.com"
	user := &models.User{
		ID:           1,
		Name:         "Joao",
		Email:        email,
		PasswordHash: mustHashPW(t, "123456"),
	}

	st.EXPECT().UserByEmail(gomock.Any(), email).Return(user, nil)
	st.EXPECT().SaveRefreshToken(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rt *models.RefreshToken) error {
			rt.ID = 1
			return nil
		})

	pair, err := svc.LoginUser(context.Background(), email, "123456")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.Len(t, pair.RefreshToken, 80)
	require.WithinDuration(t, time.Now().Add(svc.cfg.AccessTokenTTL), pair.AccessExpiresAt, 2*time.Second)

	claims, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, email, claims.Email)
}

// Неизвестный email и неверный пароль неотличимы: одна ошибка, одно сообщение.
func TestLoginUser_UserNotFound_OrWrongPassword_SameError(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().UserByEmail(gomock.Any(), "user@example.com").
		Return(nil, storage.ErrNotFound)

	_, errNotFound := svc.LoginUser(context.Background(), "user@example.com", "123456")
	require.ErrorIs(t, errNotFound, ErrInvalidCredentials)

	st.EXPECT().UserByEmail(gomock.Any(), "user@example.com").
		Return(&models.User{ID: 1, Email: "user@example.com", PasswordHash: mustHashPW(t, "123456")}, nil)

	_, errWrongPW := svc.LoginUser(context.Background(), "user@example.com", "654321")
	require.ErrorIs(t, errWrongPW, ErrInvalidCredentials)
}

func TestLoginUser_InvalidEmail_OrEmptyPassword(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, err := svc.LoginUser(context.Background(), "broken", "123456")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.LoginUser(context.Background(), "user@example.com", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

// Refresh-токен не записался — логин целиком завершается ошибкой,
// токен клиенту не отдаётся.
func TestLoginUser_RefreshSaveFailed_FailsLogin(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().UserByEmail(gomock.Any(), "user@example.com").
		Return(&models.User{ID: 1, Email: "user@example.com", PasswordHash: mustHashPW(t, "123456")}, nil)
	st.EXPECT().SaveRefreshToken(gomock.Any(), gomock.Any()).
		Return(errors.New("insert failed"))

	pair, err := svc.LoginUser(context.Background(), "user@example.com", "123456")
	require.Error(t, err)
	require.Nil(t, pair)
}

func TestHashPassword_SaltedAndVerifiable(t *testing.T) {
	t.Parallel()

	passwords := []string{"123456", "s3cret!", "длинный пароль", "correct horse battery staple"}

	for i, pw := range passwords {
		h1 := mustHashPW(t, pw)
		h2 := mustHashPW(t, pw)

		// Соль: два хэша одного пароля различаются, но оба проверяемы.
		require.NotEqual(t, h1, h2)
		require.True(t, checkPassword(h1, pw))
		require.True(t, checkPassword(h2, pw))

		// Чужой пароль не проходит ни под одним хэшем.
		other := fmt.Sprintf("wrong-%d", i)
		require.False(t, checkPassword(h1, other))
	}
}

func TestValidateEmail_Normalization(t *testing.T) {
	t.Parallel()

	norm, err := validateEmail("  Joao@Email.COM ")
	require.NoError(t, err)
	require.Equal(t, "joao@email.com", norm)

	_, err = validateEmail("")
	require.Error(t, err)

	_, err = validateEmail("no-at-sign")
	require.Error(t, err)
}
