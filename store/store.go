// Package store holds the single in-memory AppState of the site and mediates
// between optimistic updates and the configured persistence strategy.
//
// Every mutator applies its change to memory before returning and hands back
// a *Mutation for the backend write. A failed write is logged and reported
// through the Mutation; memory is never rolled back.
//
// Writes that share an entity key (one property, one region, one banner group,
// one settings record) reach the backend in call order. Writes on different
// keys run concurrently and may complete in any order.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/dcode-github/imobiliaria/backend/models"
	"github.com/dcode-github/imobiliaria/backend/utils"
)

// Persister is the remote strategy: one call per entity operation.
type Persister interface {
	FetchAll(ctx context.Context) (models.AppState, error)
	// AddImovel returns the stored listing carrying the backend-assigned id.
	AddImovel(ctx context.Context, im models.Imovel) (models.Imovel, error)
	UpdateImovel(ctx context.Context, im models.Imovel) error
	DeleteImovel(ctx context.Context, id string) error
	AddRegiao(ctx context.Context, r models.Regiao) error
	DeleteRegiao(ctx context.Context, id string) error
	ReplaceBanners(ctx context.Context, group models.BannerGroup, banners []models.Banner) error
	UpdateFinanciamento(ctx context.Context, f models.FinanciamentoSettings) error
	UpdateProvaSocial(ctx context.Context, p models.ProvaSocial) error
	UpdateLocalizacao(ctx context.Context, l models.LocalizacaoSettings) error
	AddLead(ctx context.Context, l models.Lead) error
	DeleteLead(ctx context.Context, id string) error
	UpdateSettings(ctx context.Context, s models.SiteSettings) error
}

// Saver is the local strategy: the whole aggregate is written on every change.
type Saver interface {
	Load(ctx context.Context) (models.AppState, error)
	Save(ctx context.Context, state models.AppState) error
}

const snapshotKey = "snapshot"

type Store struct {
	remote Persister
	local  Saver
	flags  SessionFlag

	mu      sync.RWMutex
	state   models.AppState
	loading bool
	loadErr error
	loaded  chan struct{}
	// client id -> backend id, for listings inserted through the remote strategy
	aliases map[string]string
	tails   map[string]*Mutation

	inflight sync.WaitGroup
}

// NewRemote builds a store backed by the remote gateway and starts loading.
func NewRemote(ctx context.Context, p Persister, flags SessionFlag) *Store {
	s := newStore(flags)
	s.remote = p
	s.start(ctx, p.FetchAll)
	return s
}

// NewLocal builds a store backed by a whole-state snapshot, already loaded.
func NewLocal(ctx context.Context, sv Saver, flags SessionFlag) *Store {
	s := newStore(flags)
	s.local = sv
	s.startInline(ctx, sv.Load)
	return s
}

func newStore(flags SessionFlag) *Store {
	s := &Store{
		flags:   flags,
		state:   models.EmptyState(),
		loading: true,
		loaded:  make(chan struct{}),
		aliases: map[string]string{},
		tails:   map[string]*Mutation{},
	}
	return s
}

func (s *Store) start(ctx context.Context, load func(context.Context) (models.AppState, error)) {
	s.state.IsAuthenticated = s.readSession(ctx)

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		s.finishLoad(ctx, load)
	}()
}

// startInline loads before returning. Snapshot reads never suspend, and a
// write racing the first load would overwrite the snapshot with empty lists.
func (s *Store) startInline(ctx context.Context, load func(context.Context) (models.AppState, error)) {
	s.state.IsAuthenticated = s.readSession(ctx)
	s.finishLoad(ctx, load)
}

func (s *Store) finishLoad(ctx context.Context, load func(context.Context) (models.AppState, error)) {
	defer close(s.loaded)

	st, err := load(ctx)
	var partial partialLoad
	usable := err == nil || (errors.As(err, &partial) && partial.PartialLoad())
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to load application state")
	}

	auth := s.readSession(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if usable {
		s.state = normalize(st)
	} else {
		s.loadErr = err
	}
	s.state.IsAuthenticated = auth
	s.loading = false
	utils.Logger.WithFields(logrus.Fields{
		"imoveis": len(s.state.Imoveis),
		"regioes": len(s.state.Regioes),
		"leads":   len(s.state.Leads),
	}).Info("Application state loaded")
}

func (s *Store) readSession(ctx context.Context) bool {
	if s.flags == nil {
		return false
	}
	ok, err := s.flags.Authenticated(ctx)
	if err != nil {
		utils.Logger.WithError(err).Warn("Could not read session flag")
		return false
	}
	return ok
}

// normalize makes every collection non-nil so consumers can range and encode
// an empty catalog without special cases.
func normalize(st models.AppState) models.AppState {
	if st.Imoveis == nil {
		st.Imoveis = []models.Imovel{}
	}
	if st.Regioes == nil {
		st.Regioes = []models.Regiao{}
	}
	if st.Leads == nil {
		st.Leads = []models.Lead{}
	}
	if st.BannersPromocionais == nil {
		st.BannersPromocionais = []models.Banner{}
	}
	if st.BannersEmBreve == nil {
		st.BannersEmBreve = []models.Banner{}
	}
	return st
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// WaitLoaded blocks until the initial load finished, successfully or not.
func (s *Store) WaitLoaded(ctx context.Context) error {
	select {
	case <-s.loaded:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LoadErr is the error that left the initial load unusable, nil otherwise.
func (s *Store) LoadErr() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

// Authenticated reports the in-memory session flag.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsAuthenticated
}

// State returns a copy; mutating it has no effect on the store.
func (s *Store) State() models.AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

func (s *Store) Imovel(id string) (models.Imovel, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexImovel(s.state.Imoveis, s.resolve(id)); i >= 0 {
		return s.state.Imoveis[i].Clone(), true
	}
	return models.Imovel{}, false
}

// ResolveID maps a client-generated listing id to the id the backend assigned,
// once the insert has committed. Unknown ids are returned unchanged.
func (s *Store) ResolveID(id string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolve(id)
}

func (s *Store) resolve(id string) string {
	if durable, ok := s.aliases[id]; ok {
		return durable
	}
	return id
}

func indexImovel(list []models.Imovel, id string) int {
	for i, im := range list {
		if im.ID == id {
			return i
		}
	}
	return -1
}

// commit persists a change that was just applied to memory. It must be called
// with s.mu held so that write order follows memory order. Remote writes are
// queued per key and run in the background.
func (s *Store) commit(ctx context.Context, op, key string, remote func(context.Context) error) *Mutation {
	if s.local != nil {
		// the snapshot is written inline, whole, on every change
		m := newMutation(op, snapshotKey)
		if s.loadErr != nil {
			err := fmt.Errorf("%w: %v", ErrSnapshotUnavailable, s.loadErr)
			utils.Logger.WithError(err).WithField("op", op).Error("Snapshot write skipped")
			m.finish(err)
			return m
		}
		err := s.local.Save(ctx, s.state.Clone())
		if err != nil {
			utils.Logger.WithError(err).WithField("op", op).Error("Snapshot write failed, keeping local copy")
		}
		m.finish(err)
		return m
	}

	m := newMutation(op, key)
	prev := s.tails[key]
	s.tails[key] = m

	ctx = context.WithoutCancel(ctx)
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		if prev != nil {
			<-prev.done
		}
		err := remote(ctx)
		if err != nil {
			utils.Logger.WithError(err).WithFields(logrus.Fields{
				"op":  op,
				"key": key,
			}).Error("Persistence failed, keeping local copy")
		}
		m.finish(err)

		s.mu.Lock()
		if s.tails[key] == m {
			delete(s.tails, key)
		}
		s.mu.Unlock()
	}()
	return m
}

// Close waits for the initial load and every queued write.
func (s *Store) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) AddImovel(ctx context.Context, im models.Imovel) *Mutation {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Imoveis = append(s.state.Imoveis, im)

	clientID := im.ID
	return s.commit(ctx, "addImovel", "imovel:"+clientID, func(ctx context.Context) error {
		saved, err := s.remote.AddImovel(ctx, im)
		if err != nil {
			return err
		}
		s.adoptImovelID(clientID, saved.ID)
		return nil
	})
}

// adoptImovelID swaps the client id for the durable one in memory, if the
// listing is still there.
func (s *Store) adoptImovelID(clientID, durableID string) {
	if durableID == "" || durableID == clientID {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aliases[clientID] = durableID
	if i := indexImovel(s.state.Imoveis, clientID); i >= 0 {
		s.state.Imoveis[i].ID = durableID
	}
}

func (s *Store) UpdateImovel(ctx context.Context, im models.Imovel) *Mutation {
	s.mu.Lock()
	defer s.mu.Unlock()
	clientID := im.ID
	im.ID = s.resolve(im.ID)
	for i := range s.state.Imoveis {
		if s.state.Imoveis[i].ID == im.ID {
			s.state.Imoveis[i] = im
		}
	}

	return s.commit(ctx, "updateImovel", "imovel:"+clientID, func(ctx context.Context) error {
		im.ID = s.ResolveID(clientID)
		return s.remote.UpdateImovel(ctx, im)
	})
}

func (s *Store) DeleteImovel(ctx context.Context, id string) *Mutation {
	s.mu.Lock()
	defer s.mu.Unlock()
	target := s.resolve(id)
	kept := s.state.Imoveis[:0]
	for _, im := range s.state.Imoveis {
		if im.ID != target {
			kept = append(kept, im)
		}
	}
	s.state.Imoveis = kept

	return s.commit(ctx, "deleteImovel", "imovel:"+id, func(ctx context.Context) error {
		return s.remote.DeleteImovel(ctx, s.ResolveID(id))
	})
}

func (s *Store) AddRegiao(ctx context.Context, r models.Regiao) *Mutation {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Regioes = append(s.state.Regioes, r)
	return s.commit(ctx, "addRegiao", "regiao:"+r.ID, func(ctx context.Context) error {
		return s.remote.AddRegiao(ctx, r)
	})
}

func (s *Store) DeleteRegiao(ctx context.Context, id string) *Mutation {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.state.Regioes[:0]
	for _, r := range s.state.Regioes {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.state.Regioes = kept
	return s.commit(ctx, "deleteRegiao", "regiao:"+id, func(ctx context.Context) error {
		return s.remote.DeleteRegiao(ctx, id)
	})
}

func (s *Store) SetBannersPromocionais(ctx context.Context, banners []models.Banner) *Mutation {
	return s.setBanners(ctx, models.BannerPromo, banners)
}

func (s *Store) SetBannersEmBreve(ctx context.Context, banners []models.Banner) *Mutation {
	return s.setBanners(ctx, models.BannerEmBreve, banners)
}

// setBanners replaces a whole group. Against the remote backend this is a
// delete followed by an insert; see gateway.ReplaceBanners for what a failure
// between the two leaves behind. Failures here are raised as UserAlert.
func (s *Store) setBanners(ctx context.Context, group models.BannerGroup, banners []models.Banner) *Mutation {
	banners = append([]models.Banner{}, banners...)

	s.mu.Lock()
	defer s.mu.Unlock()
	if group == models.BannerEmBreve {
		s.state.BannersEmBreve = banners
	} else {
		s.state.BannersPromocionais = banners
	}

	msg := "Erro ao salvar banners promocionais"
	if group == models.BannerEmBreve {
		msg = "Erro ao salvar banners em breve"
	}
	m := s.commit(ctx, "setBanners", "banners:"+string(group), func(ctx context.Context) error {
		return s.remote.ReplaceBanners(ctx, group, banners)
	})
	return alerting(m, msg)
}

// alerting returns a mutation that finishes with the same outcome as m, with
// any error wrapped as a UserAlert.
func alerting(m *Mutation, msg string) *Mutation {
	out := newMutation(m.Op, m.Key)
	go func() {
		<-m.done
		if err := m.Err(); err != nil {
			out.finish(&UserAlert{Message: msg, Err: err})
			return
		}
		out.finish(nil)
	}()
	return out
}

func (s *Store) UpdateFinanciamento(ctx context.Context, f models.FinanciamentoSettings) *Mutation {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Financiamento = f
	return s.commit(ctx, "updateFinanciamento", "settings:financiamento", func(ctx context.Context) error {
		return s.remote.UpdateFinanciamento(ctx, f)
	})
}

func (s *Store) UpdateProvaSocial(ctx context.Context, p models.ProvaSocial) *Mutation {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ProvaSocial = p
	return s.commit(ctx, "updateProvaSocial", "settings:prova_social", func(ctx context.Context) error {
		return s.remote.UpdateProvaSocial(ctx, p)
	})
}

func (s *Store) UpdateLocalizacao(ctx context.Context, l models.LocalizacaoSettings) *Mutation {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Localizacao = l
	return s.commit(ctx, "updateLocalizacao", "settings:localizacao", func(ctx context.Context) error {
		return s.remote.UpdateLocalizacao(ctx, l)
	})
}

// AddLead puts the newest lead first.
func (s *Store) AddLead(ctx context.Context, l models.Lead) *Mutation {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Leads = append([]models.Lead{l}, s.state.Leads...)
	return s.commit(ctx, "addLead", "lead:"+l.ID, func(ctx context.Context) error {
		return s.remote.AddLead(ctx, l)
	})
}

func (s *Store) DeleteLead(ctx context.Context, id string) *Mutation {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.state.Leads[:0]
	for _, l := range s.state.Leads {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	s.state.Leads = kept
	return s.commit(ctx, "deleteLead", "lead:"+id, func(ctx context.Context) error {
		return s.remote.DeleteLead(ctx, id)
	})
}

func (s *Store) UpdateSettings(ctx context.Context, st models.SiteSettings) *Mutation {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Settings = st
	return s.commit(ctx, "updateSettings", "settings:site", func(ctx context.Context) error {
		return s.remote.UpdateSettings(ctx, st)
	})
}

// SetAuthenticated only touches memory and the session flag store. Neither
// the remote backend nor the snapshot ever sees it.
func (s *Store) SetAuthenticated(ctx context.Context, val bool) error {
	s.mu.Lock()
	s.state.IsAuthenticated = val
	s.mu.Unlock()

	if s.flags == nil {
		return nil
	}
	if err := s.flags.SetAuthenticated(ctx, val); err != nil {
		utils.Logger.WithError(err).Error("Failed to persist session flag")
		return err
	}
	return nil
}
