package services

import (
	"context"
	"testing"
	"time"

	"github.com/qmc/portal/internal/app/models"
	"github.com/qmc/portal/internal/pkg/apperrors"
	"github.com/qmc/portal/internal/pkg/auth"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleService_LoginWithSeededDefaults(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	session, err := env.console.Login(ctx, "pazzyloia", "12345678")
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)

	claims, err := env.console.Authenticate(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "pazzyloia", claims.Username)

	creds, err := env.console.GetCredentials(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultAdminCredentials(), creds)

	logs := env.logs(t)
	require.Len(t, logs, 1)
	assert.Equal(t, "Login Success", logs[0].Action)
	assert.Equal(t, "Administrative portal accessed", logs[0].Details)
	assert.Equal(t, models.LogSecurity, logs[0].Category)
}

func TestConsoleService_LoginFailure(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	cases := []struct{ user, pass string }{
		{"pazzyloia", "wrong"},
		{"PAZZYLOIA", "12345678"},
		{"", ""},
	}
	for _, tc := range cases {
		session, err := env.console.Login(ctx, tc.user, tc.pass)
		assert.Nil(t, session)
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
		assert.Equal(t, InvalidCredentialsMessage, err.Error())
	}

	logs := env.logs(t)
	require.Len(t, logs, len(cases))
	assert.Equal(t, "Login Failure", logs[0].Action)
	assert.Equal(t, "Attempt with username: ", logs[0].Details)
	assert.Equal(t, "Attempt with username: pazzyloia", logs[2].Details)
	assert.Zero(t, env.sessions.LiveCount())
}

func TestConsoleService_LogoutRevokesSession(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	session, err := env.console.Login(ctx, "pazzyloia", "12345678")
	require.NoError(t, err)
	claims, err := env.console.Authenticate(session.Token)
	require.NoError(t, err)

	require.NoError(t, env.console.Logout(ctx, claims))

	_, err = env.console.Authenticate(session.Token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	assert.Equal(t, "Logout", env.logs(t)[0].Action)
	assert.Equal(t, "User signed out manually", env.logs(t)[0].Details)
}

func TestConsoleService_SessionLastsUntilLogout(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	now := testNow
	sessions := auth.NewSessionService(auth.SessionConfig{
		SecretKey:   "test-secret",
		TokenIssuer: "qmc-test",
	}, func() time.Time { return now })
	console := NewConsoleService(env.repos.CredentialsRepository, sessions, env.audit, zerolog.Nop())

	session, err := console.Login(ctx, "pazzyloia", "12345678")
	require.NoError(t, err)
	assert.True(t, session.ExpiresAt.IsZero())

	for _, later := range []time.Duration{9 * time.Hour, 30 * 24 * time.Hour, 5 * 365 * 24 * time.Hour} {
		now = testNow.Add(later)
		claims, err := console.Authenticate(session.Token)
		require.NoError(t, err, "after %s", later)
		assert.Equal(t, "pazzyloia", claims.Username)
	}
	assert.Equal(t, 1, sessions.LiveCount())

	claims, err := console.Authenticate(session.Token)
	require.NoError(t, err)
	require.NoError(t, console.Logout(ctx, claims))

	_, err = console.Authenticate(session.Token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	assert.Zero(t, sessions.LiveCount())
}

func TestConsoleService_UpdateCredentials(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	err := env.console.UpdateCredentials(ctx, models.AdminCredentials{User: "principal"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	require.NoError(t, env.console.UpdateCredentials(ctx, models.AdminCredentials{User: "principal", Pass: "s3cret"}))
	assert.Equal(t, "Security Update", env.logs(t)[0].Action)

	_, err = env.console.Login(ctx, "pazzyloia", "12345678")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = env.console.Login(ctx, "principal", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "principal", env.logs(t)[0].User)
}
