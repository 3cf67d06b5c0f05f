package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dcode-github/imobiliaria/backend/models"
	"github.com/dcode-github/imobiliaria/backend/utils"
)

// AddImovel drops the client id and lets the database assign one. The
// returned listing carries the stored id.
func (g *Gateway) AddImovel(ctx context.Context, im models.Imovel) (models.Imovel, error) {
	if im.DataCriacao.IsZero() {
		im.DataCriacao = time.Now().UTC()
	}
	row := imovelToRow(im)
	row.ID = primitive.NewObjectID()

	if _, err := g.col(ImoveisCollection).InsertOne(ctx, row); err != nil {
		return models.Imovel{}, fmt.Errorf("insert imovel: %w", err)
	}
	return imovelFromRow(row), nil
}

func (g *Gateway) UpdateImovel(ctx context.Context, im models.Imovel) error {
	return g.updateByID(ctx, ImoveisCollection, idValue(im.ID), imovelToRow(im))
}

func (g *Gateway) DeleteImovel(ctx context.Context, id string) error {
	return g.deleteByID(ctx, ImoveisCollection, idValue(id))
}

// AddRegiao keeps the client id as the document id so later deletes by that
// id reach the same document.
func (g *Gateway) AddRegiao(ctx context.Context, r models.Regiao) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if _, err := g.col(RegioesCollection).InsertOne(ctx, regiaoToRow(r)); err != nil {
		return fmt.Errorf("insert regiao: %w", err)
	}
	return nil
}

func (g *Gateway) DeleteRegiao(ctx context.Context, id string) error {
	return g.deleteByID(ctx, RegioesCollection, id)
}

func (g *Gateway) AddLead(ctx context.Context, l models.Lead) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if _, err := g.col(LeadsCollection).InsertOne(ctx, leadToRow(l)); err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

func (g *Gateway) DeleteLead(ctx context.Context, id string) error {
	return g.deleteByID(ctx, LeadsCollection, id)
}

func (g *Gateway) updateByID(ctx context.Context, name string, id interface{}, row interface{}) error {
	res, err := g.col(name).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": row})
	if err != nil {
		return fmt.Errorf("update %s %v: %w", name, id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("update %s %v: %w", name, id, ErrNotFound)
	}
	return nil
}

func (g *Gateway) deleteByID(ctx context.Context, name string, id interface{}) error {
	res, err := g.col(name).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete %s %v: %w", name, id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("delete %s %v: %w", name, id, ErrNotFound)
	}
	return nil
}

// BannerReplaceError reports which phase of a non-transactional group replace
// failed. A failure in the insert phase after a successful delete leaves the
// stored group empty; Deleted says how many documents were lost.
type BannerReplaceError struct {
	Group   models.BannerGroup
	Phase   string
	Deleted int64
	Err     error
}

func (e *BannerReplaceError) Error() string {
	if e.Phase == "insert" {
		return fmt.Sprintf("banner group %s: insert failed after deleting %d stored banners: %v", e.Group, e.Deleted, e.Err)
	}
	return fmt.Sprintf("banner group %s: %s failed: %v", e.Group, e.Phase, e.Err)
}

func (e *BannerReplaceError) Unwrap() error { return e.Err }

// ReplaceBanners swaps the stored group for the given set. With transactions
// enabled both steps commit together; otherwise the delete runs first and an
// insert failure is reported as a *BannerReplaceError.
func (g *Gateway) ReplaceBanners(ctx context.Context, group models.BannerGroup, banners []models.Banner) error {
	rows := make([]interface{}, 0, len(banners))
	for _, b := range banners {
		if b.ID == "" {
			b.ID = uuid.NewString()
		}
		rows = append(rows, bannerToRow(b, group))
	}
	filter := bson.M{"tipo": string(group)}
	col := g.col(BannersCollection)

	if g.opts.Transactions {
		return g.replaceBannersTx(ctx, col, filter, rows, group)
	}

	res, err := col.DeleteMany(ctx, filter)
	if err != nil {
		return &BannerReplaceError{Group: group, Phase: "delete", Err: err}
	}
	if len(rows) == 0 {
		return nil
	}
	if _, err := col.InsertMany(ctx, rows); err != nil {
		utils.Logger.WithError(err).WithField("group", group).Error("Banner insert failed after delete, stored group is empty")
		return &BannerReplaceError{Group: group, Phase: "insert", Deleted: res.DeletedCount, Err: err}
	}
	return nil
}

func (g *Gateway) replaceBannersTx(ctx context.Context, col *mongo.Collection, filter bson.M, rows []interface{}, group models.BannerGroup) error {
	sess, err := g.client.StartSession()
	if err != nil {
		return &BannerReplaceError{Group: group, Phase: "session", Err: err}
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := col.DeleteMany(sc, filter); err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			return nil, nil
		}
		_, err := col.InsertMany(sc, rows)
		return nil, err
	})
	if err != nil {
		return &BannerReplaceError{Group: group, Phase: "transaction", Err: err}
	}
	return nil
}

func (g *Gateway) UpdateSettings(ctx context.Context, s models.SiteSettings) error {
	return g.upsertSingleton(ctx, SiteSettingsCollection, settingsToRow(s))
}

func (g *Gateway) UpdateFinanciamento(ctx context.Context, f models.FinanciamentoSettings) error {
	return g.upsertSingleton(ctx, FinanciamentoCollection, financiamentoToRow(f))
}

func (g *Gateway) UpdateProvaSocial(ctx context.Context, p models.ProvaSocial) error {
	return g.upsertSingleton(ctx, ProvaSocialCollection, provaSocialToRow(p))
}

func (g *Gateway) UpdateLocalizacao(ctx context.Context, l models.LocalizacaoSettings) error {
	return g.upsertSingleton(ctx, LocalizacaoCollection, localizacaoToRow(l))
}

// upsertSingleton updates the stored document if there is one and inserts
// otherwise. The read and the write are separate round trips with no lock:
// two admins saving at once race, and the last write wins.
func (g *Gateway) upsertSingleton(ctx context.Context, name string, row interface{}) error {
	col := g.col(name)

	var current struct {
		ID interface{} `bson:"_id"`
	}
	err := col.FindOne(ctx, bson.M{}, options.FindOne().SetProjection(bson.M{"_id": 1})).Decode(&current)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		if _, err := col.InsertOne(ctx, row); err != nil {
			return fmt.Errorf("insert %s: %w", name, err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("read %s: %w", name, err)
	}

	if _, err := col.UpdateByID(ctx, current.ID, bson.M{"$set": row}); err != nil {
		return fmt.Errorf("update %s: %w", name, err)
	}
	return nil
}
