package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcode-github/imobiliaria/backend/models"
	"github.com/dcode-github/imobiliaria/backend/snapshot"
	"github.com/dcode-github/imobiliaria/backend/storage"
)

// -----------------------------------------------------------------------------
// Fakes
// -----------------------------------------------------------------------------

type memKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemKV() *memKV { return &memKV{data: map[string][]byte{}} }

func (m *memKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return v, nil
}

func (m *memKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

type fakePersister struct {
	mu       sync.Mutex
	initial  models.AppState
	fetchErr error
	block    chan struct{}
	fail     map[string]error
	calls    []string
	updates  []string
	durable  string
	delayOne time.Duration
}

func newFakePersister() *fakePersister {
	return &fakePersister{initial: models.EmptyState(), fail: map[string]error{}}
}

func (f *fakePersister) enter(op string) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, op)
	return f.fail[op]
}

func (f *fakePersister) setFail(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[op] = err
}

func (f *fakePersister) FetchAll(context.Context) (models.AppState, error) {
	return f.initial, f.fetchErr
}

func (f *fakePersister) AddImovel(_ context.Context, im models.Imovel) (models.Imovel, error) {
	if err := f.enter("addImovel"); err != nil {
		return models.Imovel{}, err
	}
	if f.durable != "" {
		im.ID = f.durable
	}
	return im, nil
}

func (f *fakePersister) UpdateImovel(_ context.Context, im models.Imovel) error {
	f.mu.Lock()
	first := len(f.updates) == 0
	f.mu.Unlock()
	if first && f.delayOne > 0 {
		time.Sleep(f.delayOne)
	}
	err := f.enter("updateImovel")
	f.mu.Lock()
	f.updates = append(f.updates, im.ID+":"+im.Titulo)
	f.mu.Unlock()
	return err
}

func (f *fakePersister) DeleteImovel(context.Context, string) error { return f.enter("deleteImovel") }
func (f *fakePersister) AddRegiao(context.Context, models.Regiao) error {
	return f.enter("addRegiao")
}
func (f *fakePersister) DeleteRegiao(context.Context, string) error { return f.enter("deleteRegiao") }
func (f *fakePersister) ReplaceBanners(context.Context, models.BannerGroup, []models.Banner) error {
	return f.enter("replaceBanners")
}
func (f *fakePersister) UpdateFinanciamento(context.Context, models.FinanciamentoSettings) error {
	return f.enter("updateFinanciamento")
}
func (f *fakePersister) UpdateProvaSocial(context.Context, models.ProvaSocial) error {
	return f.enter("updateProvaSocial")
}
func (f *fakePersister) UpdateLocalizacao(context.Context, models.LocalizacaoSettings) error {
	return f.enter("updateLocalizacao")
}
func (f *fakePersister) AddLead(context.Context, models.Lead) error   { return f.enter("addLead") }
func (f *fakePersister) DeleteLead(context.Context, string) error     { return f.enter("deleteLead") }
func (f *fakePersister) UpdateSettings(context.Context, models.SiteSettings) error {
	return f.enter("updateSettings")
}

type partialErr struct{}

func (partialErr) Error() string      { return "one table failed" }
func (partialErr) PartialLoad() bool { return true }

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func loadedRemote(t *testing.T, p *fakePersister, flags SessionFlag) *Store {
	t.Helper()
	s := NewRemote(context.Background(), p, flags)
	require.NoError(t, s.WaitLoaded(context.Background()))
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func wait(t *testing.T, m *Mutation) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	select {
	case <-m.Done():
		return m.Err()
	case <-ctx.Done():
		t.Fatalf("mutation %s did not finish", m.Op)
		return nil
	}
}

func sampleImovel(id string) models.Imovel {
	return models.Imovel{
		ID:         id,
		Titulo:     "Casa " + id,
		TipoImovel: models.TipoCasa,
		Finalidade: models.FinalidadeVenda,
		Status:     models.StatusDisponivel,
		Imagens:    []string{"a.jpg"},
		Ativo:      true,
	}
}

// -----------------------------------------------------------------------------
// Load
// -----------------------------------------------------------------------------

func TestInitialStateWhileLoading(t *testing.T) {
	p := newFakePersister()
	kv := newMemKV()
	require.NoError(t, kv.Set(context.Background(), SessionKey, []byte("true")))

	gate := make(chan struct{})
	s := newStore(NewSessionFlag(kv))
	s.remote = p
	s.start(context.Background(), func(ctx context.Context) (models.AppState, error) {
		<-gate
		return p.FetchAll(ctx)
	})

	assert.True(t, s.Loading())
	st := s.State()
	assert.Empty(t, st.Imoveis)
	assert.Equal(t, models.DefaultSettings(), st.Settings)
	assert.True(t, st.IsAuthenticated)

	close(gate)
	require.NoError(t, s.WaitLoaded(context.Background()))
	assert.False(t, s.Loading())
}

func TestLoadReplacesStateAndReappliesSessionFlag(t *testing.T) {
	p := newFakePersister()
	p.initial.Imoveis = []models.Imovel{sampleImovel("a")}
	p.initial.IsAuthenticated = true // must be ignored

	s := loadedRemote(t, p, NewSessionFlag(newMemKV()))
	st := s.State()
	require.Len(t, st.Imoveis, 1)
	assert.False(t, st.IsAuthenticated)
}

func TestLoadFailureKeepsEmptyState(t *testing.T) {
	p := newFakePersister()
	p.initial.Imoveis = []models.Imovel{sampleImovel("a")}
	p.fetchErr = errors.New("network down")

	s := loadedRemote(t, p, nil)
	assert.False(t, s.Loading())
	assert.Empty(t, s.State().Imoveis)
	assert.Equal(t, models.DefaultFinanciamento(), s.State().Financiamento)
}

func TestUnreadableSnapshotIsNeverOverwritten(t *testing.T) {
	kv := newMemKV()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, snapshot.Key, []byte("{not json")))

	s := NewLocal(ctx, snapshot.New(kv), NewSessionFlag(newMemKV()))
	require.Error(t, s.LoadErr())
	assert.Empty(t, s.State().Imoveis)

	m := s.AddRegiao(ctx, models.Regiao{ID: "r1", Nome: "Farol"})
	assert.Equal(t, Failed, m.State())
	assert.ErrorIs(t, m.Err(), ErrSnapshotUnavailable)
	assert.Len(t, s.State().Regioes, 1, "memory still takes the change")

	raw, err := kv.Get(ctx, snapshot.Key)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(raw))
}

func TestRemoteLoadFailureStillPersists(t *testing.T) {
	p := newFakePersister()
	p.fetchErr = errors.New("network down")

	s := loadedRemote(t, p, nil)
	assert.Error(t, s.LoadErr())
	assert.NoError(t, wait(t, s.AddRegiao(context.Background(), models.Regiao{ID: "r1"})))
}

func TestPartialLoadIsApplied(t *testing.T) {
	p := newFakePersister()
	p.initial.Regioes = []models.Regiao{{ID: "r1", Nome: "Jatiúca"}}
	p.fetchErr = partialErr{}

	s := loadedRemote(t, p, nil)
	assert.Len(t, s.State().Regioes, 1)
}

func TestLoadNormalizesNilCollections(t *testing.T) {
	p := newFakePersister()
	p.initial = models.AppState{Settings: models.DefaultSettings()}

	s := loadedRemote(t, p, nil)
	st := s.State()
	assert.NotNil(t, st.Imoveis)
	assert.NotNil(t, st.Leads)
	assert.NotNil(t, st.BannersEmBreve)
}

// -----------------------------------------------------------------------------
// Mutators
// -----------------------------------------------------------------------------

func TestAddImovelIsVisibleBeforePersistence(t *testing.T) {
	p := newFakePersister()
	s := loadedRemote(t, p, nil)
	p.block = make(chan struct{})

	m := s.AddImovel(context.Background(), sampleImovel("tmp-1"))

	_, ok := s.Imovel("tmp-1")
	assert.True(t, ok)
	assert.Equal(t, Pending, m.State())

	close(p.block)
	require.NoError(t, wait(t, m))
	assert.Equal(t, Committed, m.State())
}

func TestAddImovelAdoptsDurableID(t *testing.T) {
	p := newFakePersister()
	p.durable = "665f1c2e9b1d4a0012345678"
	s := loadedRemote(t, p, nil)

	require.NoError(t, wait(t, s.AddImovel(context.Background(), sampleImovel("tmp-1"))))

	st := s.State()
	require.Len(t, st.Imoveis, 1)
	assert.Equal(t, p.durable, st.Imoveis[0].ID)
	assert.Equal(t, p.durable, s.ResolveID("tmp-1"))

	upd := sampleImovel("tmp-1")
	upd.Titulo = "Renamed"
	require.NoError(t, wait(t, s.UpdateImovel(context.Background(), upd)))
	assert.Equal(t, []string{p.durable + ":Renamed"}, p.updates)
	assert.Equal(t, "Renamed", s.State().Imoveis[0].Titulo)
}

func TestUpdateImovelIsIdempotent(t *testing.T) {
	p := newFakePersister()
	p.initial.Imoveis = []models.Imovel{sampleImovel("a"), sampleImovel("b")}
	s := loadedRemote(t, p, nil)

	upd := sampleImovel("a")
	upd.Preco = 350000

	require.NoError(t, wait(t, s.UpdateImovel(context.Background(), upd)))
	once := s.State()
	require.NoError(t, wait(t, s.UpdateImovel(context.Background(), upd)))
	twice := s.State()

	assert.Equal(t, once, twice)
	assert.Equal(t, float64(350000), twice.Imoveis[0].Preco)
	assert.Equal(t, "b", twice.Imoveis[1].ID)
}

func TestDeleteIsAppliedEvenWhenBackendFails(t *testing.T) {
	p := newFakePersister()
	p.initial.Imoveis = []models.Imovel{sampleImovel("a"), sampleImovel("b")}
	p.initial.Regioes = []models.Regiao{{ID: "r1"}}
	p.initial.Leads = []models.Lead{{ID: "l1"}}
	boom := errors.New("boom")
	p.fail["deleteImovel"] = boom
	p.fail["deleteRegiao"] = boom
	p.fail["deleteLead"] = boom
	s := loadedRemote(t, p, nil)
	ctx := context.Background()

	mi := s.DeleteImovel(ctx, "a")
	mr := s.DeleteRegiao(ctx, "r1")
	ml := s.DeleteLead(ctx, "l1")

	st := s.State()
	require.Len(t, st.Imoveis, 1)
	assert.Equal(t, "b", st.Imoveis[0].ID)
	assert.Empty(t, st.Regioes)
	assert.Empty(t, st.Leads)

	for _, m := range []*Mutation{mi, mr, ml} {
		assert.ErrorIs(t, wait(t, m), boom)
		assert.Equal(t, Failed, m.State())
	}
	// no rollback
	assert.Len(t, s.State().Imoveis, 1)
}

func TestAddRegiaoScenario(t *testing.T) {
	s := loadedRemote(t, newFakePersister(), nil)

	m := s.AddRegiao(context.Background(), models.Regiao{ID: "r1", Nome: "Jatiúca", Cidade: "Maceió", Estado: "AL", Ativo: true})
	require.NoError(t, wait(t, m))

	regioes := s.State().Regioes
	require.Len(t, regioes, 1)
	assert.Equal(t, "Jatiúca", regioes[0].Nome)
}

func TestAddLeadPrepends(t *testing.T) {
	p := newFakePersister()
	p.initial.Leads = []models.Lead{{ID: "old"}}
	s := loadedRemote(t, p, nil)

	require.NoError(t, wait(t, s.AddLead(context.Background(), models.Lead{ID: "new"})))
	leads := s.State().Leads
	require.Len(t, leads, 2)
	assert.Equal(t, "new", leads[0].ID)
	assert.Equal(t, "old", leads[1].ID)
}

func TestSingletonUpdates(t *testing.T) {
	p := newFakePersister()
	s := loadedRemote(t, p, nil)
	ctx := context.Background()

	fin := models.DefaultFinanciamento()
	fin.Titulo = "Novo título"
	ps := models.DefaultProvaSocial()
	ps.Ativo = false
	loc := models.DefaultLocalizacao()
	loc.Latitude = -9.6
	site := models.DefaultSettings()
	site.ContactWhatsapp = "5582988887777"

	for _, m := range []*Mutation{
		s.UpdateFinanciamento(ctx, fin),
		s.UpdateProvaSocial(ctx, ps),
		s.UpdateLocalizacao(ctx, loc),
		s.UpdateSettings(ctx, site),
	} {
		require.NoError(t, wait(t, m))
	}

	st := s.State()
	assert.Equal(t, fin, st.Financiamento)
	assert.Equal(t, ps, st.ProvaSocial)
	assert.Equal(t, loc, st.Localizacao)
	assert.Equal(t, site, st.Settings)
	assert.ElementsMatch(t, []string{"updateFinanciamento", "updateProvaSocial", "updateLocalizacao", "updateSettings"}, p.calls)
}

func TestBannerReplaceFailureKeepsNewSetAndAlerts(t *testing.T) {
	p := newFakePersister()
	s := loadedRemote(t, p, nil)
	ctx := context.Background()

	b1 := models.Banner{ID: "b1", TextoAlt: "one", Ativo: true}
	b2 := models.Banner{ID: "b2", TextoAlt: "two", Ativo: true}

	require.NoError(t, wait(t, s.SetBannersPromocionais(ctx, []models.Banner{b1})))

	insertFailed := errors.New("insert phase failed after delete")
	p.setFail("replaceBanners", insertFailed)
	m := s.SetBannersPromocionais(ctx, []models.Banner{b2})

	assert.Equal(t, []models.Banner{b2}, s.State().BannersPromocionais)

	err := wait(t, m)
	var alert *UserAlert
	require.ErrorAs(t, err, &alert)
	assert.ErrorIs(t, err, insertFailed)
	assert.Equal(t, "Erro ao salvar banners promocionais", alert.Message)
	assert.Equal(t, Failed, m.State())

	// memory still shows the new set
	assert.Equal(t, []models.Banner{b2}, s.State().BannersPromocionais)
	assert.Empty(t, s.State().BannersEmBreve)
}

func TestBannerSetIsCopied(t *testing.T) {
	s := loadedRemote(t, newFakePersister(), nil)
	banners := []models.Banner{{ID: "x", Ordem: 2}, {ID: "y", Ordem: 1}}

	require.NoError(t, wait(t, s.SetBannersEmBreve(context.Background(), banners)))
	banners[0].ID = "mutated"

	got := s.State().BannersEmBreve
	assert.Equal(t, "x", got[0].ID)
	// given order is kept, Ordem is not a sort key
	assert.Equal(t, "y", got[1].ID)
}

func TestSameEntityWritesKeepCallOrder(t *testing.T) {
	p := newFakePersister()
	p.initial.Imoveis = []models.Imovel{sampleImovel("a")}
	p.delayOne = 50 * time.Millisecond
	s := loadedRemote(t, p, nil)
	ctx := context.Background()

	first := sampleImovel("a")
	first.Titulo = "first"
	second := sampleImovel("a")
	second.Titulo = "second"

	m1 := s.UpdateImovel(ctx, first)
	m2 := s.UpdateImovel(ctx, second)
	require.NoError(t, wait(t, m2))
	require.NoError(t, wait(t, m1))

	assert.Equal(t, []string{"a:first", "a:second"}, p.updates)
	assert.Equal(t, "second", s.State().Imoveis[0].Titulo)
}

func TestStateIsACopy(t *testing.T) {
	p := newFakePersister()
	p.initial.Imoveis = []models.Imovel{sampleImovel("a")}
	s := loadedRemote(t, p, nil)

	st := s.State()
	st.Imoveis[0].Titulo = "hacked"
	st.Imoveis = append(st.Imoveis, sampleImovel("b"))

	assert.Len(t, s.State().Imoveis, 1)
	assert.Equal(t, "Casa a", s.State().Imoveis[0].Titulo)
}

func TestMutationWaitHonoursContext(t *testing.T) {
	p := newFakePersister()
	s := loadedRemote(t, p, nil)
	p.block = make(chan struct{})
	defer close(p.block)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := s.AddRegiao(context.Background(), models.Regiao{ID: "r"}).Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// -----------------------------------------------------------------------------
// Session flag
// -----------------------------------------------------------------------------

func TestSetAuthenticatedRoundTrip(t *testing.T) {
	kv := newMemKV()
	flags := NewSessionFlag(kv)
	p := newFakePersister()
	s := loadedRemote(t, p, flags)
	ctx := context.Background()

	require.NoError(t, s.SetAuthenticated(ctx, true))
	assert.True(t, s.State().IsAuthenticated)
	v, err := kv.Get(ctx, SessionKey)
	require.NoError(t, err)
	assert.Equal(t, "true", string(v))

	require.NoError(t, s.SetAuthenticated(ctx, false))
	assert.False(t, s.State().IsAuthenticated)
	_, err = kv.Get(ctx, SessionKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// the remote backend never saw the flag
	assert.Empty(t, p.calls)
}

// -----------------------------------------------------------------------------
// Local strategy
// -----------------------------------------------------------------------------

func TestLocalStrategyWritesWholeSnapshot(t *testing.T) {
	kv := newMemKV()
	snap := snapshot.New(kv)
	flags := NewSessionFlag(newMemKV())
	ctx := context.Background()

	// fixed UTC times so the decoded snapshot compares equal
	require.NoError(t, snap.Save(ctx, models.SeedState(time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC))))

	s := NewLocal(ctx, snap, flags)
	assert.False(t, s.Loading())
	require.Len(t, s.State().Imoveis, 2)

	m := s.AddRegiao(ctx, models.Regiao{ID: "r9", Nome: "Farol"})
	assert.Equal(t, Committed, m.State())
	require.NoError(t, s.SetAuthenticated(ctx, true))
	require.NoError(t, wait(t, s.DeleteImovel(ctx, "1")))

	reopened := NewLocal(ctx, snap, NewSessionFlag(newMemKV()))
	st := reopened.State()
	assert.Len(t, st.Regioes, 5)
	require.Len(t, st.Imoveis, 1)
	assert.Equal(t, "2", st.Imoveis[0].ID)
	// the flag comes from the session store, not the snapshot
	assert.False(t, st.IsAuthenticated)

	want := s.State()
	want.IsAuthenticated = false
	assert.Equal(t, want, st)
}

// -----------------------------------------------------------------------------
// Scope
// -----------------------------------------------------------------------------

func TestFromContext(t *testing.T) {
	_, err := FromContext(context.Background())
	assert.ErrorIs(t, err, ErrNoStore)
	assert.Panics(t, func() { MustFromContext(context.Background()) })

	s := loadedRemote(t, newFakePersister(), nil)
	got, err := FromContext(WithStore(context.Background(), s))
	require.NoError(t, err)
	assert.Same(t, s, got)
}
