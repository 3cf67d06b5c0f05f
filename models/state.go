package models

// AppState is the aggregate of everything the site shows. IsAuthenticated is
// session state and never travels to the remote backend.
type AppState struct {
	Imoveis             []Imovel              `json:"imoveis"`
	Regioes             []Regiao              `json:"regioes"`
	Leads               []Lead                `json:"leads"`
	BannersPromocionais []Banner              `json:"bannersPromocionais"`
	BannersEmBreve      []Banner              `json:"bannersEmBreve"`
	Settings            SiteSettings          `json:"settings"`
	Financiamento       FinanciamentoSettings `json:"financiamento"`
	ProvaSocial         ProvaSocial           `json:"provaSocial"`
	Localizacao         LocalizacaoSettings   `json:"localizacao"`
	IsAuthenticated     bool                  `json:"isAuthenticated"`
}

// EmptyState is what a store holds before its first load: no collections and
// the compiled-in singleton defaults.
func EmptyState() AppState {
	return AppState{
		Imoveis:             []Imovel{},
		Regioes:             []Regiao{},
		Leads:               []Lead{},
		BannersPromocionais: []Banner{},
		BannersEmBreve:      []Banner{},
		Settings:            DefaultSettings(),
		Financiamento:       DefaultFinanciamento(),
		ProvaSocial:         DefaultProvaSocial(),
		Localizacao:         DefaultLocalizacao(),
	}
}

// Banners returns the group's slice.
func (s AppState) Banners(g BannerGroup) []Banner {
	if g == BannerEmBreve {
		return s.BannersEmBreve
	}
	return s.BannersPromocionais
}

// Clone returns a copy that shares no slices with s.
func (s AppState) Clone() AppState {
	c := s
	c.Imoveis = make([]Imovel, len(s.Imoveis))
	for i, im := range s.Imoveis {
		c.Imoveis[i] = im.Clone()
	}
	c.Regioes = append([]Regiao{}, s.Regioes...)
	c.Leads = append([]Lead{}, s.Leads...)
	c.BannersPromocionais = append([]Banner{}, s.BannersPromocionais...)
	c.BannersEmBreve = append([]Banner{}, s.BannersEmBreve...)
	c.ProvaSocial.Imagens = append([]string{}, s.ProvaSocial.Imagens...)
	c.ProvaSocial.Metricas = append([]Metrica{}, s.ProvaSocial.Metricas...)
	return c
}

func (i Imovel) Clone() Imovel {
	i.Imagens = append([]string{}, i.Imagens...)
	i.AreasPrivativas = append([]string{}, i.AreasPrivativas...)
	i.AreasComuns = append([]string{}, i.AreasComuns...)
	i.Diferenciais = append([]string{}, i.Diferenciais...)
	return i
}

// Public strips everything a site visitor must not see: leads, inactive
// entries and the session flag.
func (s AppState) Public() AppState {
	p := s.Clone()
	p.Leads = []Lead{}
	p.IsAuthenticated = false
	p.Imoveis = FilterImoveis(p.Imoveis, PropertyFilter{})
	regioes := p.Regioes[:0]
	for _, r := range p.Regioes {
		if r.Ativo {
			regioes = append(regioes, r)
		}
	}
	p.Regioes = regioes
	p.BannersPromocionais = ActiveBanners(p.BannersPromocionais)
	p.BannersEmBreve = ActiveBanners(p.BannersEmBreve)
	return p
}
