package opsutil

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.abhg.dev/gs/internal/git"
)

type fakePusher struct {
	mu     sync.Mutex
	pushed []string
	fail   map[string]error
}

func (f *fakePusher) Push(_ context.Context, opts git.PushOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushed = append(f.pushed, opts.Refspec)
	return f.fail[opts.Refspec]
}

func TestPushAllSucceed(t *testing.T) {
	pusher := &fakePusher{}
	branches := []string{"feature-1", "feature-2", "feature-3"}

	err := Push(context.Background(), pusher, branches, PushOptions{Remote: "origin"})
	require.NoError(t, err)
	assert.ElementsMatch(t, branches, pusher.pushed)
}

func TestPushReportsFirstError(t *testing.T) {
	pusher := &fakePusher{fail: map[string]error{
		"feature-2": errors.New("rejected"),
	}}

	err := Push(context.Background(), pusher, []string{"feature-1", "feature-2"}, PushOptions{Remote: "origin"})
	assert.ErrorContains(t, err, "feature-2")
}
