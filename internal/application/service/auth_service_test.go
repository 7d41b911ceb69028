package service

import (
	"context"
	"testing"
	"time"

	"github.com/sangkips/sypoint-pos/internal/domain/entity"
	"github.com/sangkips/sypoint-pos/internal/domain/enum"
	"github.com/sangkips/sypoint-pos/pkg/apperror"
	"github.com/sangkips/sypoint-pos/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuth(users ...entity.User) (*AuthService, *utils.JWTManager) {
	jwtManager := utils.NewJWTManager("test-secret", time.Hour)
	return NewAuthService(&fakeUserRepo{users: users}, jwtManager, nil), jwtManager
}

func TestLogin(t *testing.T) {
	cashier := newUser("juan", "Juan Dela Cruz", "secret", enum.RoleCashier, true)
	disabled := newUser("maria", "Maria Clara", "secret", enum.RoleCashier, false)
	svc, jwtManager := newTestAuth(cashier, disabled)

	out, err := svc.Login(context.Background(), &LoginInput{Username: " juan ", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, int64(3600), out.ExpiresIn)

	claims, err := jwtManager.ValidateAccessToken(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, cashier.ID, claims.UserID)
	assert.Equal(t, "Juan Dela Cruz", claims.FullName)
	assert.Equal(t, "cashier", claims.Role)

	tests := []struct {
		name  string
		input LoginInput
	}{
		{"wrong password", LoginInput{Username: "juan", Password: "nope"}},
		{"unknown user", LoginInput{Username: "pedro", Password: "secret"}},
		{"inactive user", LoginInput{Username: "maria", Password: "secret"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), &tt.input)
			assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
		})
	}
}

func TestAuthorizeVoid(t *testing.T) {
	admin := newUser("boss", "Store Admin", "9999", enum.RoleAdmin, true)
	retired := newUser("old", "Former Admin", "1111", enum.RoleAdmin, false)
	cashier := newUser("juan", "Juan Dela Cruz", "2222", enum.RoleCashier, true)
	svc, _ := newTestAuth(admin, retired, cashier)

	user, err := svc.AuthorizeVoid(context.Background(), "9999")
	require.NoError(t, err)
	assert.Equal(t, "boss", user.Username)

	tests := []struct {
		name string
		code string
		kind apperror.Kind
	}{
		{"cashier credential", "2222", apperror.KindAuthorizationDenied},
		{"inactive admin", "1111", apperror.KindAuthorizationDenied},
		{"wrong code", "0000", apperror.KindAuthorizationDenied},
		{"blank code", "", apperror.KindValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AuthorizeVoid(context.Background(), tt.code)
			assert.Equal(t, tt.kind, apperror.KindOf(err))
		})
	}
}

func TestAuthorizeVoidStoreError(t *testing.T) {
	svc := NewAuthService(&fakeUserRepo{err: errDatabaseDown}, utils.NewJWTManager("s", time.Hour), nil)

	_, err := svc.AuthorizeVoid(context.Background(), "9999")
	assert.ErrorIs(t, err, errDatabaseDown)
}
