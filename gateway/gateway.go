// Package gateway is the remote persistence strategy over MongoDB. It is the
// only place that knows the stored document shape.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"github.com/dcode-github/imobiliaria/backend/models"
	"github.com/dcode-github/imobiliaria/backend/utils"
)

const (
	ImoveisCollection       = "imoveis"
	RegioesCollection       = "regioes"
	BannersCollection       = "banners"
	SiteSettingsCollection  = "site_settings"
	FinanciamentoCollection = "financiamento_settings"
	LocalizacaoCollection   = "localizacao_settings"
	ProvaSocialCollection   = "prova_social"
	LeadsCollection         = "leads"
)

var (
	// ErrNoRows and ErrMultipleRows are what a singleton read reports when the
	// collection does not hold exactly one document.
	ErrNoRows       = errors.New("no rows in result set")
	ErrMultipleRows = errors.New("multiple rows in result set")
	ErrNotFound     = errors.New("document not found")
)

type Options struct {
	// Transactions runs banner replacement inside a multi-document
	// transaction. Requires a replica set.
	Transactions  bool
	ImageBucket   string
	PublicBaseURL string
}

type Gateway struct {
	client *mongo.Client
	db     *mongo.Database
	images *gridfs.Bucket
	opts   Options
}

func New(client *mongo.Client, dbName string, opts Options) (*Gateway, error) {
	if opts.ImageBucket == "" {
		opts.ImageBucket = "images"
	}
	opts.PublicBaseURL = strings.TrimSuffix(opts.PublicBaseURL, "/")

	db := client.Database(dbName)
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(opts.ImageBucket))
	if err != nil {
		return nil, fmt.Errorf("error opening image bucket %s: %w", opts.ImageBucket, err)
	}
	return &Gateway{client: client, db: db, images: bucket, opts: opts}, nil
}

func (g *Gateway) col(name string) *mongo.Collection {
	return g.db.Collection(name)
}

// FetchError collects per-collection failures of a FetchAll. The state that
// came with it is still usable: failed lists are empty and failed singletons
// hold their defaults.
type FetchError struct {
	Failed map[string]error
}

func (e *FetchError) Error() string {
	names := make([]string, 0, len(e.Failed))
	for name := range e.Failed {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Failed[name].Error())
	}
	return "fetch failed for " + strings.Join(parts, "; ")
}

func (e *FetchError) PartialLoad() bool { return true }

// fetched is the raw result of a FetchAll before assembly. A nil singleton
// means the read failed or found no single row.
type fetched struct {
	imoveis       []imovelRow
	regioes       []regiaoRow
	banners       []bannerRow
	leads         []leadRow
	settings      *siteSettingsRow
	financiamento *financiamentoRow
	localizacao   *localizacaoRow
	provaSocial   *provaSocialRow
}

// FetchAll reads every collection concurrently and assembles the aggregate.
// A singleton collection without exactly one document yields the default
// value; that is how an empty database behaves and is not an error.
func (g *Gateway) FetchAll(ctx context.Context) (models.AppState, error) {
	var (
		f      fetched
		mu     sync.Mutex
		failed = map[string]error{}
		eg     errgroup.Group
	)
	record := func(name string, err error) {
		mu.Lock()
		defer mu.Unlock()
		failed[name] = err
	}

	list := func(name string, dst interface{}) {
		eg.Go(func() error {
			if err := g.findAll(ctx, name, dst); err != nil {
				record(name, err)
			}
			return nil
		})
	}
	single := func(name string, dst interface{}, found *bool) {
		eg.Go(func() error {
			err := g.findSingle(ctx, name, dst)
			switch {
			case err == nil:
				*found = true
			case errors.Is(err, ErrNoRows):
				utils.Logger.WithField("collection", name).Info("No row found, using defaults")
			default:
				record(name, err)
			}
			return nil
		})
	}

	var (
		settings      siteSettingsRow
		financiamento financiamentoRow
		localizacao   localizacaoRow
		provaSocial   provaSocialRow

		hasSettings, hasFinanciamento, hasLocalizacao, hasProvaSocial bool
	)

	list(ImoveisCollection, &f.imoveis)
	list(RegioesCollection, &f.regioes)
	list(BannersCollection, &f.banners)
	list(LeadsCollection, &f.leads)
	single(SiteSettingsCollection, &settings, &hasSettings)
	single(FinanciamentoCollection, &financiamento, &hasFinanciamento)
	single(LocalizacaoCollection, &localizacao, &hasLocalizacao)
	single(ProvaSocialCollection, &provaSocial, &hasProvaSocial)

	_ = eg.Wait()

	if hasSettings {
		f.settings = &settings
	}
	if hasFinanciamento {
		f.financiamento = &financiamento
	}
	if hasLocalizacao {
		f.localizacao = &localizacao
	}
	if hasProvaSocial {
		f.provaSocial = &provaSocial
	}

	st := assemble(f)
	if len(failed) > 0 {
		return st, &FetchError{Failed: failed}
	}
	return st, nil
}

func (g *Gateway) findAll(ctx context.Context, name string, dst interface{}) error {
	cursor, err := g.col(name).Find(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("error querying %s: %w", name, err)
	}
	defer cursor.Close(ctx)
	if err := cursor.All(ctx, dst); err != nil {
		return fmt.Errorf("error decoding %s: %w", name, err)
	}
	return nil
}

// findSingle decodes the only document of a collection.
func (g *Gateway) findSingle(ctx context.Context, name string, dst interface{}) error {
	cursor, err := g.col(name).Find(ctx, bson.M{}, options.Find().SetLimit(2))
	if err != nil {
		return fmt.Errorf("error querying %s: %w", name, err)
	}
	defer cursor.Close(ctx)

	var raws []bson.Raw
	for cursor.Next(ctx) {
		raws = append(raws, append(bson.Raw{}, cursor.Current...))
	}
	if err := cursor.Err(); err != nil {
		return fmt.Errorf("error reading %s: %w", name, err)
	}

	switch len(raws) {
	case 0:
		return ErrNoRows
	case 1:
		if err := bson.Unmarshal(raws[0], dst); err != nil {
			return fmt.Errorf("error decoding %s: %w", name, err)
		}
		return nil
	default:
		return fmt.Errorf("%s: %w", name, ErrMultipleRows)
	}
}

// assemble maps rows to the aggregate. Banners are split by their group tag
// and keep stored order.
func assemble(f fetched) models.AppState {
	st := models.EmptyState()

	for _, r := range f.imoveis {
		st.Imoveis = append(st.Imoveis, imovelFromRow(r))
	}
	for _, r := range f.regioes {
		st.Regioes = append(st.Regioes, regiaoFromRow(r))
	}
	for _, r := range f.leads {
		st.Leads = append(st.Leads, leadFromRow(r))
	}
	for _, r := range f.banners {
		switch models.BannerGroup(r.Tipo) {
		case models.BannerPromo:
			st.BannersPromocionais = append(st.BannersPromocionais, bannerFromRow(r))
		case models.BannerEmBreve:
			st.BannersEmBreve = append(st.BannersEmBreve, bannerFromRow(r))
		}
	}

	if f.settings != nil {
		st.Settings = settingsFromRow(*f.settings)
	}
	if f.financiamento != nil {
		st.Financiamento = financiamentoFromRow(*f.financiamento)
	}
	if f.localizacao != nil {
		st.Localizacao = localizacaoFromRow(*f.localizacao)
	}
	if f.provaSocial != nil {
		st.ProvaSocial = provaSocialFromRow(*f.provaSocial)
	}
	return st
}
