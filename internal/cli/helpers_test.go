package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/roach88/lunchvote/internal/testutil"
	"github.com/roach88/lunchvote/internal/vote"
)

var testDay = vote.Date{Year: 2024, Month: time.October, Day: 1}

var testCatalogPath = filepath.Join("testdata", "venues.yaml")

// runCLI executes the root command with a fixed clock on testDay.
func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	return runCLIContext(t, context.Background(), args...)
}

func runCLIContext(t *testing.T, ctx context.Context, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	opts := &RootOptions{Clock: testutil.NewFixedClock(testDay)}
	cmd := newRootCommand(opts)

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err = cmd.ExecuteContext(ctx)
	return out.String(), errOut.String(), err
}

// tempDB returns a path for a fresh SQLite file.
func tempDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "lunch.db")
}
