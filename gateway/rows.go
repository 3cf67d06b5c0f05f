package gateway

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dcode-github/imobiliaria/backend/models"
)

// Row types mirror the stored documents. Field names are snake_case and no
// other package sees them.

type imovelRow struct {
	ID                interface{} `bson:"_id,omitempty"`
	Titulo            string      `bson:"titulo"`
	DescricaoCurta    string      `bson:"descricao_curta"`
	DescricaoCompleta string      `bson:"descricao_completa"`
	TipoImovel        string      `bson:"tipo_imovel"`
	Finalidade        string      `bson:"finalidade"`
	RegiaoID          *string     `bson:"regiao_id"`
	Preco             float64     `bson:"preco"`
	ValorCondominio   float64     `bson:"valor_condominio"`
	ValorIPTU         float64     `bson:"valor_iptu"`
	Quartos           int         `bson:"quartos"`
	Banheiros         int         `bson:"banheiros"`
	Vagas             int         `bson:"vagas"`
	Area              float64     `bson:"area"`
	Cidade            string      `bson:"cidade"`
	Bairro            string      `bson:"bairro"`
	Status            string      `bson:"status"`
	Destaque          bool        `bson:"destaque"`
	Lancamento        bool        `bson:"lancamento"`
	Referencia        string      `bson:"referencia"`
	Imagens           []string    `bson:"imagens"`
	AreasPrivativas   []string    `bson:"areas_privativas"`
	AreasComuns       []string    `bson:"areas_comuns"`
	Diferenciais      []string    `bson:"diferenciais"`
	DataCriacao       time.Time   `bson:"data_criacao"`
	Ativo             bool        `bson:"ativo"`
}

type regiaoRow struct {
	ID       string `bson:"_id"`
	Nome     string `bson:"nome"`
	Cidade   string `bson:"cidade"`
	Estado   string `bson:"estado"`
	Imagem   string `bson:"imagem"`
	Destaque bool   `bson:"destaque"`
	Ativo    bool   `bson:"ativo"`
}

type bannerRow struct {
	ID            string `bson:"_id"`
	Tipo          string `bson:"tipo"`
	Titulo        string `bson:"titulo"`
	ImagemDesktop string `bson:"imagem_desktop"`
	ImagemMobile  string `bson:"imagem_mobile"`
	LinkAcao      string `bson:"link_acao"`
	TextoAlt      string `bson:"texto_alt"`
	Ativo         bool   `bson:"ativo"`
	Ordem         int    `bson:"ordem"`
}

type leadRow struct {
	ID           string    `bson:"_id"`
	Nome         string    `bson:"nome"`
	Whatsapp     string    `bson:"whatsapp"`
	Email        string    `bson:"email"`
	TipoImovel   string    `bson:"tipo_imovel"`
	RegiaoID     string    `bson:"regiao_id"`
	ImovelID     string    `bson:"imovel_id"`
	ImovelTitulo string    `bson:"imovel_titulo"`
	DataEnvio    time.Time `bson:"data_envio"`
}

type siteSettingsRow struct {
	ID                    interface{} `bson:"_id,omitempty"`
	HeroHeadline          *string     `bson:"hero_headline"`
	HeroSubheadline       *string     `bson:"hero_subheadline"`
	ContactWhatsapp       *string     `bson:"contact_whatsapp"`
	PropertiesHeaderImage string      `bson:"properties_header_image"`
	HeroBackgroundImage   string      `bson:"hero_background_image"`
}

type financiamentoRow struct {
	ID            interface{} `bson:"_id,omitempty"`
	Titulo        string      `bson:"titulo"`
	Descricao     string      `bson:"descricao"`
	TextoDestaque string      `bson:"texto_destaque"`
	Imagem        string      `bson:"imagem"`
	Ativo         bool        `bson:"ativo"`
}

type metricaRow struct {
	Label string  `bson:"label"`
	Valor float64 `bson:"valor"`
}

type provaSocialRow struct {
	ID        interface{}  `bson:"_id,omitempty"`
	Titulo    string       `bson:"titulo"`
	Subtitulo string       `bson:"subtitulo"`
	Imagens   []string     `bson:"imagens"`
	Metricas  []metricaRow `bson:"metricas"`
	Ativo     bool         `bson:"ativo"`
}

type localizacaoRow struct {
	ID          interface{} `bson:"_id,omitempty"`
	Headline    string      `bson:"headline"`
	Subheadline string      `bson:"subheadline"`
	Endereco    string      `bson:"endereco"`
	Latitude    float64     `bson:"latitude"`
	Longitude   float64     `bson:"longitude"`
	Ativo       bool        `bson:"ativo"`
}

// idString renders a stored _id the way the domain carries ids.
func idString(v interface{}) string {
	switch id := v.(type) {
	case nil:
		return ""
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	}
	return ""
}

// idValue is the inverse of idString: listing ids that look like ObjectIDs
// are matched as ObjectIDs, anything else as a plain string _id.
func idValue(id string) interface{} {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return oid
	}
	return id
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func imovelFromRow(r imovelRow) models.Imovel {
	im := models.Imovel{
		ID:                idString(r.ID),
		Titulo:            r.Titulo,
		DescricaoCurta:    r.DescricaoCurta,
		DescricaoCompleta: r.DescricaoCompleta,
		TipoImovel:        models.TipoImovel(r.TipoImovel),
		Finalidade:        models.Finalidade(r.Finalidade),
		Preco:             r.Preco,
		ValorCondominio:   r.ValorCondominio,
		ValorIPTU:         r.ValorIPTU,
		Quartos:           r.Quartos,
		Banheiros:         r.Banheiros,
		Vagas:             r.Vagas,
		Area:              r.Area,
		Cidade:            r.Cidade,
		Bairro:            r.Bairro,
		Status:            models.ImovelStatus(r.Status),
		Destaque:          r.Destaque,
		Lancamento:        r.Lancamento,
		Referencia:        r.Referencia,
		Imagens:           orEmpty(r.Imagens),
		AreasPrivativas:   orEmpty(r.AreasPrivativas),
		AreasComuns:       orEmpty(r.AreasComuns),
		Diferenciais:      orEmpty(r.Diferenciais),
		DataCriacao:       r.DataCriacao,
		Ativo:             r.Ativo,
	}
	if r.RegiaoID != nil {
		im.RegiaoID = *r.RegiaoID
	}
	return im
}

// imovelToRow leaves _id unset; callers decide whether the backend assigns it.
func imovelToRow(im models.Imovel) imovelRow {
	r := imovelRow{
		Titulo:            im.Titulo,
		DescricaoCurta:    im.DescricaoCurta,
		DescricaoCompleta: im.DescricaoCompleta,
		TipoImovel:        string(im.TipoImovel),
		Finalidade:        string(im.Finalidade),
		Preco:             im.Preco,
		ValorCondominio:   im.ValorCondominio,
		ValorIPTU:         im.ValorIPTU,
		Quartos:           im.Quartos,
		Banheiros:         im.Banheiros,
		Vagas:             im.Vagas,
		Area:              im.Area,
		Cidade:            im.Cidade,
		Bairro:            im.Bairro,
		Status:            string(im.Status),
		Destaque:          im.Destaque,
		Lancamento:        im.Lancamento,
		Referencia:        im.Referencia,
		Imagens:           orEmpty(im.Imagens),
		AreasPrivativas:   orEmpty(im.AreasPrivativas),
		AreasComuns:       orEmpty(im.AreasComuns),
		Diferenciais:      orEmpty(im.Diferenciais),
		DataCriacao:       im.DataCriacao,
		Ativo:             im.Ativo,
	}
	// an empty region reference is stored as null
	if im.RegiaoID != "" {
		id := im.RegiaoID
		r.RegiaoID = &id
	}
	return r
}

func regiaoFromRow(r regiaoRow) models.Regiao {
	return models.Regiao{
		ID:       r.ID,
		Nome:     r.Nome,
		Cidade:   r.Cidade,
		Estado:   r.Estado,
		Imagem:   r.Imagem,
		Destaque: r.Destaque,
		Ativo:    r.Ativo,
	}
}

func regiaoToRow(g models.Regiao) regiaoRow {
	return regiaoRow{
		ID:       g.ID,
		Nome:     g.Nome,
		Cidade:   g.Cidade,
		Estado:   g.Estado,
		Imagem:   g.Imagem,
		Destaque: g.Destaque,
		Ativo:    g.Ativo,
	}
}

func bannerFromRow(r bannerRow) models.Banner {
	return models.Banner{
		ID:            r.ID,
		Titulo:        r.Titulo,
		ImagemDesktop: r.ImagemDesktop,
		ImagemMobile:  r.ImagemMobile,
		LinkAcao:      r.LinkAcao,
		TextoAlt:      r.TextoAlt,
		Ativo:         r.Ativo,
		Ordem:         r.Ordem,
	}
}

func bannerToRow(b models.Banner, group models.BannerGroup) bannerRow {
	return bannerRow{
		ID:            b.ID,
		Tipo:          string(group),
		Titulo:        b.Titulo,
		ImagemDesktop: b.ImagemDesktop,
		ImagemMobile:  b.ImagemMobile,
		LinkAcao:      b.LinkAcao,
		TextoAlt:      b.TextoAlt,
		Ativo:         b.Ativo,
		Ordem:         b.Ordem,
	}
}

func leadFromRow(r leadRow) models.Lead {
	return models.Lead{
		ID:           r.ID,
		Nome:         r.Nome,
		Whatsapp:     r.Whatsapp,
		Email:        r.Email,
		TipoImovel:   r.TipoImovel,
		RegiaoID:     r.RegiaoID,
		ImovelID:     r.ImovelID,
		ImovelTitulo: r.ImovelTitulo,
		DataEnvio:    r.DataEnvio,
	}
}

func leadToRow(l models.Lead) leadRow {
	return leadRow{
		ID:           l.ID,
		Nome:         l.Nome,
		Whatsapp:     l.Whatsapp,
		Email:        l.Email,
		TipoImovel:   l.TipoImovel,
		RegiaoID:     l.RegiaoID,
		ImovelID:     l.ImovelID,
		ImovelTitulo: l.ImovelTitulo,
		DataEnvio:    l.DataEnvio,
	}
}

// settingsFromRow falls back per field for the three required texts, the
// same way a half-filled row is shown on the site.
func settingsFromRow(r siteSettingsRow) models.SiteSettings {
	def := models.DefaultSettings()
	s := models.SiteSettings{
		HeroHeadline:          def.HeroHeadline,
		HeroSubheadline:       def.HeroSubheadline,
		ContactWhatsapp:       def.ContactWhatsapp,
		PropertiesHeaderImage: r.PropertiesHeaderImage,
		HeroBackgroundImage:   r.HeroBackgroundImage,
	}
	if r.HeroHeadline != nil {
		s.HeroHeadline = *r.HeroHeadline
	}
	if r.HeroSubheadline != nil {
		s.HeroSubheadline = *r.HeroSubheadline
	}
	if r.ContactWhatsapp != nil {
		s.ContactWhatsapp = *r.ContactWhatsapp
	}
	return s
}

func settingsToRow(s models.SiteSettings) siteSettingsRow {
	return siteSettingsRow{
		HeroHeadline:          &s.HeroHeadline,
		HeroSubheadline:       &s.HeroSubheadline,
		ContactWhatsapp:       &s.ContactWhatsapp,
		PropertiesHeaderImage: s.PropertiesHeaderImage,
		HeroBackgroundImage:   s.HeroBackgroundImage,
	}
}

func financiamentoFromRow(r financiamentoRow) models.FinanciamentoSettings {
	return models.FinanciamentoSettings{
		ID:            idString(r.ID),
		Titulo:        r.Titulo,
		Descricao:     r.Descricao,
		TextoDestaque: r.TextoDestaque,
		Imagem:        r.Imagem,
		Ativo:         r.Ativo,
	}
}

func financiamentoToRow(f models.FinanciamentoSettings) financiamentoRow {
	return financiamentoRow{
		Titulo:        f.Titulo,
		Descricao:     f.Descricao,
		TextoDestaque: f.TextoDestaque,
		Imagem:        f.Imagem,
		Ativo:         f.Ativo,
	}
}

func provaSocialFromRow(r provaSocialRow) models.ProvaSocial {
	p := models.ProvaSocial{
		ID:        idString(r.ID),
		Titulo:    r.Titulo,
		Subtitulo: r.Subtitulo,
		Imagens:   orEmpty(r.Imagens),
		Metricas:  make([]models.Metrica, 0, len(r.Metricas)),
		Ativo:     r.Ativo,
	}
	for _, m := range r.Metricas {
		p.Metricas = append(p.Metricas, models.Metrica{Label: m.Label, Valor: m.Valor})
	}
	return p
}

func provaSocialToRow(p models.ProvaSocial) provaSocialRow {
	r := provaSocialRow{
		Titulo:    p.Titulo,
		Subtitulo: p.Subtitulo,
		Imagens:   orEmpty(p.Imagens),
		Metricas:  make([]metricaRow, 0, len(p.Metricas)),
		Ativo:     p.Ativo,
	}
	for _, m := range p.Metricas {
		r.Metricas = append(r.Metricas, metricaRow{Label: m.Label, Valor: m.Valor})
	}
	return r
}

func localizacaoFromRow(r localizacaoRow) models.LocalizacaoSettings {
	return models.LocalizacaoSettings{
		ID:          idString(r.ID),
		Headline:    r.Headline,
		Subheadline: r.Subheadline,
		Endereco:    r.Endereco,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		Ativo:       r.Ativo,
	}
}

func localizacaoToRow(l models.LocalizacaoSettings) localizacaoRow {
	return localizacaoRow{
		Headline:    l.Headline,
		Subheadline: l.Subheadline,
		Endereco:    l.Endereco,
		Latitude:    l.Latitude,
		Longitude:   l.Longitude,
		Ativo:       l.Ativo,
	}
}
