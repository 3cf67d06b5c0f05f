package snapshot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcode-github/imobiliaria/backend/models"
	"github.com/dcode-github/imobiliaria/backend/storage"
)

func newTestStore(t *testing.T) (*Store, storage.KV) {
	kv, err := storage.NewDir(t.TempDir())
	require.NoError(t, err)
	s := New(kv)
	s.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return s, kv
}

func TestLoadSeedsWhenEmpty(t *testing.T) {
	s, _ := newTestStore(t)

	st, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, st.Imoveis, 2)
	assert.Len(t, st.Regioes, 4)
	assert.Empty(t, st.Leads)
	assert.Equal(t, models.DefaultSettings(), st.Settings)
	assert.False(t, st.IsAuthenticated)
}

func TestRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	orig := models.SeedState(time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC))
	orig.Leads = []models.Lead{{
		ID:        "l1",
		Nome:      "Maria",
		Whatsapp:  "82999990000",
		RegiaoID:  "2",
		DataEnvio: time.Date(2024, 6, 2, 9, 30, 0, 0, time.UTC),
	}}

	require.NoError(t, s.Save(ctx, orig))
	got, err := s.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, orig, got)
}

func TestSaveLeavesSessionFlagOut(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	st := models.EmptyState()
	st.IsAuthenticated = true
	require.NoError(t, s.Save(ctx, st))

	raw, err := kv.Get(ctx, Key)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"isAuthenticated":false`)

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.False(t, got.IsAuthenticated)
}

func TestLoadRejectsCorruptSnapshot(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, Key, []byte("{not json")))

	_, err := s.Load(ctx)
	assert.Error(t, err)
}

func TestOlderVersionIsIgnored(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, "imobiliaria_maceio_v4_state", []byte(`{"imoveis":"old format"}`)))

	st, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, st.Imoveis, 2)
}
