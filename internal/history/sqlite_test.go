package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/autonixdoc/internal/loader"
	"git.home.luguber.info/inful/autonixdoc/internal/report"
)

func sampleReport(t *testing.T) *report.RunReport {
	t.Helper()
	r := report.New("lib", "doc")
	r.Candidates = 2
	r.Entries = []report.Entry{
		{Mapping: loader.Mapping{Source: "lib/a.nix", Destination: "doc/a.md"}, Status: report.StatusRendered},
		{Mapping: loader.Mapping{Source: "lib/b.nix", Destination: "doc/b.md"}, Status: report.StatusFailed, Error: "boom"},
	}
	r.Finalize()
	return r
}

func TestSaveAndGet(t *testing.T) {
	store, err := NewStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	rep := sampleReport(t)
	require.NoError(t, store.Save(ctx, rep))

	loaded, err := store.Get(ctx, rep.RunID)
	require.NoError(t, err)
	assert.Equal(t, rep.RunID, loaded.RunID)
	assert.Equal(t, rep.Rendered, loaded.Rendered)
	assert.Equal(t, rep.Failed, loaded.Failed)
	require.Len(t, loaded.Entries, 2)
	assert.Equal(t, "lib/a.nix", loaded.Entries[0].Mapping.Source)
}

func TestGetUnknownRun(t *testing.T) {
	store, err := NewStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Get(context.Background(), "no-such-run")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecentOrdering(t *testing.T) {
	store, err := NewStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	older := sampleReport(t)
	older.StartedAt = time.Now().Add(-time.Hour).UTC()
	newer := sampleReport(t)

	require.NoError(t, store.Save(ctx, older))
	require.NoError(t, store.Save(ctx, newer))

	reports, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, newer.RunID, reports[0].RunID)
	assert.Equal(t, older.RunID, reports[1].RunID)

	limited, err := store.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
}
