package infrastructure

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/ytdl-go/internal/domain"
)

func setupTestRepo(t *testing.T) *SQLiteRunRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "nested", "history.db")
	repo, err := NewSQLiteRunRepository(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func createRun(t *testing.T, repo *SQLiteRunRepository, workflow domain.Workflow, exitCode int, age time.Duration) *domain.RunRecord {
	t.Helper()
	run := domain.NewRunRecord(workflow, "https://www.youtube.com/watch?v=abc123", exitCode)
	run.CreatedAt = time.Now().Add(-age)
	require.NoError(t, repo.Create(run))
	return run
}

func TestSQLiteRunRepository_CreateAndFind(t *testing.T) {
	repo := setupTestRepo(t)

	run := domain.NewRunRecord(domain.WorkflowPair, "https://youtu.be/abc123", 0)
	run.VideoID = "abc123"
	run.OutDir = "Downloads"
	require.NoError(t, run.SetSummary(domain.PairSummary{ID: "abc123", Captions: []string{}}))
	require.NoError(t, repo.Create(run))

	found, err := repo.FindByID(run.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, domain.WorkflowPair, found.Workflow)
	assert.Equal(t, "abc123", found.VideoID)
	assert.Contains(t, found.Summary, `"id":"abc123"`)
	assert.True(t, found.Succeeded())
}

func TestSQLiteRunRepository_FindByIDMissing(t *testing.T) {
	repo := setupTestRepo(t)

	found, err := repo.FindByID("does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestSQLiteRunRepository_FindRecent(t *testing.T) {
	repo := setupTestRepo(t)

	oldest := createRun(t, repo, domain.WorkflowDownload, 0, 3*time.Hour)
	middle := createRun(t, repo, domain.WorkflowAudio, 1, 2*time.Hour)
	newest := createRun(t, repo, domain.WorkflowPair, 0, time.Hour)

	runs, err := repo.FindRecent(0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, newest.ID, runs[0].ID)
	assert.Equal(t, middle.ID, runs[1].ID)
	assert.Equal(t, oldest.ID, runs[2].ID)

	limited, err := repo.FindRecent(2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestSQLiteRunRepository_FindByWorkflow(t *testing.T) {
	repo := setupTestRepo(t)

	createRun(t, repo, domain.WorkflowDownload, 0, 2*time.Hour)
	createRun(t, repo, domain.WorkflowPair, 2, time.Hour)
	createRun(t, repo, domain.WorkflowPair, 0, time.Minute)

	runs, err := repo.FindByWorkflow(domain.WorkflowPair, 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	for _, run := range runs {
		assert.Equal(t, domain.WorkflowPair, run.Workflow)
	}
	assert.Equal(t, 0, runs[0].ExitCode)
	assert.Equal(t, 2, runs[1].ExitCode)
}

func TestSQLiteRunRepository_Counts(t *testing.T) {
	repo := setupTestRepo(t)

	createRun(t, repo, domain.WorkflowDownload, 0, time.Hour)
	createRun(t, repo, domain.WorkflowDownload, 1, time.Minute)
	createRun(t, repo, domain.WorkflowDoctor, 3, time.Second)

	total, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	counts, err := repo.CountByWorkflow()
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[domain.WorkflowDownload])
	assert.Equal(t, int64(1), counts[domain.WorkflowDoctor])
	assert.Zero(t, counts[domain.WorkflowPair])
}
