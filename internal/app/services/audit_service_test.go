package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/qmc/portal/internal/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditService_AddLog(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	entry, err := env.audit.AddLog(ctx, "Branding Update", "Updated QMC configuration", models.LogBranding)
	require.NoError(t, err)

	assert.Equal(t, "1", entry.ID)
	assert.Equal(t, "pazzyloia", entry.User)
	assert.Equal(t, "3/14/2025, 10:30:00 AM", entry.Timestamp)
	assert.Equal(t, models.LogBranding, entry.Category)
	assert.Equal(t, []models.LogEntry{*entry}, env.logs(t))
}

func TestAuditService_UserFollowsCredentials(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	require.NoError(t, env.repos.CredentialsRepository.Save(ctx, models.AdminCredentials{User: "bursar", Pass: "x"}))
	entry, err := env.audit.AddLog(ctx, "Staff Added", "Record for A", models.LogStaff)
	require.NoError(t, err)
	assert.Equal(t, "bursar", entry.User)
}

func TestAuditService_CapsAndOrdersNewestFirst(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	for i := 1; i <= models.MaxAuditEntries+5; i++ {
		_, err := env.audit.AddLog(ctx, "Staff Added", fmt.Sprintf("Record for %d", i), models.LogStaff)
		require.NoError(t, err)
	}

	entries := env.logs(t)
	require.Len(t, entries, models.MaxAuditEntries)
	assert.Equal(t, "Record for 105", entries[0].Details)
	assert.Equal(t, "Record for 6", entries[len(entries)-1].Details)
}

func TestAuditService_ConcurrentAddLogKeepsEveryEntry(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	const writers = 20
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := env.audit.AddLog(ctx, "Staff Update", fmt.Sprintf("writer %d", i), models.LogStaff)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	entries, err := env.audit.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, writers)

	seen := make(map[string]bool, writers)
	for _, e := range entries {
		seen[e.Details] = true
	}
	for i := 0; i < writers; i++ {
		assert.True(t, seen[fmt.Sprintf("writer %d", i)], "writer %d lost", i)
	}
}

func TestAuditService_Clear(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	_, err := env.audit.AddLog(ctx, "Logout", "User signed out manually", models.LogSecurity)
	require.NoError(t, err)

	require.NoError(t, env.audit.Clear(ctx))
	assert.Empty(t, env.logs(t))
}
