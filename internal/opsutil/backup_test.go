package opsutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.abhg.dev/gs/internal/chainmodel"
	"go.abhg.dev/gs/internal/git"
)

type fakeBacker struct {
	hashes  map[string]git.Hash
	created []git.CreateBranchRequest
	deleted []string
	local   []string
}

func (f *fakeBacker) PeelToCommit(_ context.Context, ref string) (git.Hash, error) {
	return f.hashes[ref], nil
}

func (f *fakeBacker) CreateBranch(_ context.Context, req git.CreateBranchRequest) error {
	f.created = append(f.created, req)
	return nil
}

func (f *fakeBacker) LocalBranches(context.Context) ([]string, error) {
	return f.local, nil
}

func (f *fakeBacker) DeleteBranch(_ context.Context, branch string, _ git.BranchDeleteOptions) error {
	f.deleted = append(f.deleted, branch)
	return nil
}

func TestBackup(t *testing.T) {
	c := chainmodel.New("feature")
	c.SetRoot("main")
	require.NoError(t, c.Append("feature-1"))
	require.NoError(t, c.Append("feature-2"))

	repo := &fakeBacker{hashes: map[string]git.Hash{
		"feature-1": "f1-commit",
		"feature-2": "f2-commit",
	}}

	err := Backup(context.Background(), repo, c, BackupOptions{})
	require.NoError(t, err)
	assert.Equal(t, []git.CreateBranchRequest{
		{Name: "backup-feature/feature-1", Head: "f1-commit"},
		{Name: "backup-feature/feature-2", Head: "f2-commit"},
	}, repo.created)
}

func TestPrune(t *testing.T) {
	repo := &fakeBacker{local: []string{
		"main",
		"feature-1",
		"backup-feature/feature-1",
		"backup-feature/feature-2",
		"backup-other/feature-1",
	}}

	removed, err := Prune(context.Background(), repo, "feature")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"backup-feature/feature-1", "backup-feature/feature-2"}, removed)
	assert.ElementsMatch(t, []string{"backup-feature/feature-1", "backup-feature/feature-2"}, repo.deleted)
}
