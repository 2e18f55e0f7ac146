package repository

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryReports_SequentialIDs(t *testing.T) {
	t.Parallel()

	repo := NewMemoryReportRepository()
	ctx := context.Background()

	first, err := repo.Create(ctx, "bob", map[string]any{"symptom": "fever"})
	require.NoError(t, err)
	require.Equal(t, "1", first.ID)
	require.Equal(t, "bob", first.UserID)

	second, err := repo.Create(ctx, "bob", map[string]any{"symptom": "cough"})
	require.NoError(t, err)
	require.Equal(t, "2", second.ID)

	reports, err := repo.ListByUser(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, reports, 2)
	require.Equal(t, "1", reports[0].ID)
	require.Equal(t, "fever", reports[0].Payload["symptom"])
	require.Equal(t, "2", reports[1].ID)
}

func TestMemoryReports_OwnershipIsolation(t *testing.T) {
	t.Parallel()

	repo := NewMemoryReportRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, "alice", map[string]any{"note": "a"})
	require.NoError(t, err)

	bobReports, err := repo.ListByUser(ctx, "bob")
	require.NoError(t, err)
	require.Empty(t, bobReports)

	// Each user's sequence starts at 1 independently.
	bobFirst, err := repo.Create(ctx, "bob", map[string]any{"note": "b"})
	require.NoError(t, err)
	require.Equal(t, "1", bobFirst.ID)

	aliceReports, err := repo.ListByUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, aliceReports, 1)
	require.Equal(t, "a", aliceReports[0].Payload["note"])
}

func TestMemoryReports_ConcurrentCreatesAssignUniqueIDs(t *testing.T) {
	t.Parallel()

	repo := NewMemoryReportRepository()
	ctx := context.Background()

	const (
		users      = 4
		perUser    = 50
		totalPerID = 1
	)

	// Failures are collected and asserted on the test goroutine.
	errCh := make(chan error, users*perUser)
	var wg sync.WaitGroup
	for u := 0; u < users; u++ {
		userID := "user-" + strconv.Itoa(u)
		for i := 0; i < perUser; i++ {
			wg.Add(1)
			go func(userID string, i int) {
				defer wg.Done()
				_, err := repo.Create(ctx, userID, map[string]any{"n": i})
				errCh <- err
			}(userID, i)
		}
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		require.NoError(t, err)
	}

	for u := 0; u < users; u++ {
		userID := "user-" + strconv.Itoa(u)
		reports, err := repo.ListByUser(ctx, userID)
		require.NoError(t, err)
		require.Len(t, reports, perUser)

		seen := make(map[string]int, perUser)
		for i, report := range reports {
			seen[report.ID]++
			require.Equal(t, userID, report.UserID)
			require.Equal(t, strconv.Itoa(i+1), report.ID, "ids follow insertion order")
		}
		for id, count := range seen {
			require.Equal(t, totalPerID, count, "id %s assigned more than once", id)
		}
	}
}

func TestMemoryReports_ListReturnsCopy(t *testing.T) {
	t.Parallel()

	repo := NewMemoryReportRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, "alice", map[string]any{"note": "a"})
	require.NoError(t, err)

	reports, err := repo.ListByUser(ctx, "alice")
	require.NoError(t, err)
	reports[0].ID = "mutated"

	again, err := repo.ListByUser(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, "1", again[0].ID)
}
