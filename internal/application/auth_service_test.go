package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/heart-api/internal/domain"
	"github.com/oksasatya/heart-api/pkg/helpers"
)

func TestSignupThenLogin(t *testing.T) {
	users := newMemUsers()
	notifier := &recordingNotifier{}
	jwtm := helpers.NewJWTManager("test-secret", time.Hour)
	svc := NewAuthService(users, jwtm, notifier, nil)
	ctx := context.Background()

	res, err := svc.Signup(ctx, " a@x.io ", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "a@x.io", res.User.Email)
	assert.NotEqual(t, "secret1", res.User.PasswordHash)
	assert.Equal(t, []string{"a@x.io"}, notifier.emails)

	claims, err := jwtm.Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)
	assert.Equal(t, "a@x.io", claims.Email)

	login, err := svc.Login(ctx, "a@x.io", "secret1")
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, login.User.ID)

	me, err := svc.Me(ctx, res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.io", me.Email)
}

func TestSignupDuplicate(t *testing.T) {
	svc := NewAuthService(newMemUsers(), stubTokens{}, nil, nil)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "a@x.io", "secret1")
	require.NoError(t, err)

	_, err = svc.Signup(ctx, "a@x.io", "other12")
	assert.ErrorIs(t, err, domain.ErrUserExists)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestSignupStoreFailure(t *testing.T) {
	users := newMemUsers()
	users.fail = errors.New("connection reset")
	svc := NewAuthService(users, stubTokens{}, nil, nil)

	_, err := svc.Signup(context.Background(), "a@x.io", "secret1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrConflict)
}

func TestSignupWelcomeFailureIsIgnored(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("broker down")}
	svc := NewAuthService(newMemUsers(), stubTokens{}, notifier, nil)

	res, err := svc.Signup(context.Background(), "+911234567890", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
}

func TestLoginFailuresLookAlike(t *testing.T) {
	svc := NewAuthService(newMemUsers(), stubTokens{}, nil, nil)
	ctx := context.Background()
	_, err := svc.Signup(ctx, "a@x.io", "secret1")
	require.NoError(t, err)

	_, wrongPwd := svc.Login(ctx, "a@x.io", "nope123")
	_, unknown := svc.Login(ctx, "b@x.io", "secret1")

	assert.ErrorIs(t, wrongPwd, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, unknown, domain.ErrInvalidCredentials)
	assert.Equal(t, wrongPwd.Error(), unknown.Error())
}

func TestMeMalformedID(t *testing.T) {
	svc := NewAuthService(newMemUsers(), stubTokens{}, nil, nil)
	_, err := svc.Me(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestTokenIssueFailure(t *testing.T) {
	svc := NewAuthService(newMemUsers(), stubTokens{err: errors.New("boom")}, nil, nil)
	_, err := svc.Signup(context.Background(), "a@x.io", "secret1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "issue token")
}
