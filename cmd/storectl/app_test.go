package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qmc/portal/internal/app/models"
	"github.com/qmc/portal/internal/pkg/kvstore"
	"github.com/qmc/portal/internal/pkg/logger"
)

func run(t *testing.T, store kvstore.Store, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp(func(context.Context, string) (*env, error) {
		return newEnv(store, logger.Nop()), nil
	}, &out)
	app.Reader = strings.NewReader(stdin)
	err := app.RunContext(context.Background(), append([]string{"storectl"}, args...))
	return out.String(), err
}

func TestSeedThenKeys(t *testing.T) {
	store := kvstore.NewMemoryStore()

	_, err := run(t, store, "", "seed", "--staff")
	require.NoError(t, err)

	out, err := run(t, store, "", "keys")
	require.NoError(t, err)
	assert.Contains(t, out, models.KeySiteConfig)
	assert.Contains(t, out, models.KeyAdminCredentials)
	assert.Contains(t, out, models.KeyStaff)
}

func TestSeedWithoutStaff(t *testing.T) {
	store := kvstore.NewMemoryStore()

	_, err := run(t, store, "", "seed")
	require.NoError(t, err)

	out, err := run(t, store, "", "keys")
	require.NoError(t, err)
	assert.NotContains(t, out, models.KeyStaff)
}

func TestSetGetRm(t *testing.T) {
	store := kvstore.NewMemoryStore()

	_, err := run(t, store, "", "set", models.KeyQuoteOverride, `{"text":"Onward","author":"QMC","isOverride":true}`)
	require.NoError(t, err)

	out, err := run(t, store, "", "get", models.KeyQuoteOverride)
	require.NoError(t, err)
	assert.Contains(t, out, `"text": "Onward"`)

	_, err = run(t, store, "", "rm", models.KeyQuoteOverride)
	require.NoError(t, err)

	_, err = run(t, store, "", "get", models.KeyQuoteOverride)
	assert.Error(t, err)
}

func TestSetFromStdin(t *testing.T) {
	store := kvstore.NewMemoryStore()

	_, err := run(t, store, `[1,2,3]`, "set", "scratch", "-")
	require.NoError(t, err)

	raw, err := store.Get(context.Background(), "scratch")
	require.NoError(t, err)
	assert.JSONEq(t, `[1,2,3]`, string(raw))
}

func TestSetRejectsInvalidJSON(t *testing.T) {
	store := kvstore.NewMemoryStore()

	_, err := run(t, store, "", "set", "scratch", "{nope")
	assert.ErrorContains(t, err, "not valid JSON")

	_, err = store.Get(context.Background(), "scratch")
	assert.ErrorIs(t, err, kvstore.ErrNotFound)
}

func TestRejectsBadKey(t *testing.T) {
	_, err := run(t, kvstore.NewMemoryStore(), "", "get", "../etc")
	assert.ErrorIs(t, err, kvstore.ErrInvalidKey)
}

func TestClearLogsNeedsConfirmation(t *testing.T) {
	store := kvstore.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), models.KeyAuditLogs, []byte(`[{"id":"1","action":"Login"}]`)))

	_, err := run(t, store, "", "clear-logs")
	assert.ErrorContains(t, err, "--yes")

	_, err = store.Get(context.Background(), models.KeyAuditLogs)
	require.NoError(t, err)

	_, err = run(t, store, "", "clear-logs", "--yes")
	require.NoError(t, err)

	_, err = store.Get(context.Background(), models.KeyAuditLogs)
	assert.ErrorIs(t, err, kvstore.ErrNotFound)
}
