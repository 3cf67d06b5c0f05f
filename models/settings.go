package models

// SingletonID is the well-known id of every settings singleton.
const SingletonID = "main"

type FinanciamentoSettings struct {
	ID            string `json:"id"`
	Titulo        string `json:"titulo"`
	Descricao     string `json:"descricao"`
	TextoDestaque string `json:"texto_destaque"`
	Imagem        string `json:"imagem"`
	Ativo         bool   `json:"ativo"`
}

type Metrica struct {
	Label string  `json:"label"`
	Valor float64 `json:"valor"`
}

type ProvaSocial struct {
	ID        string    `json:"id"`
	Titulo    string    `json:"titulo"`
	Subtitulo string    `json:"subtitulo"`
	Imagens   []string  `json:"imagens"`
	Metricas  []Metrica `json:"metricas"`
	Ativo     bool      `json:"ativo"`
}

type LocalizacaoSettings struct {
	ID          string  `json:"id"`
	Headline    string  `json:"headline"`
	Subheadline string  `json:"subheadline"`
	Endereco    string  `json:"endereco"`
	Latitude    float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude   float64 `json:"longitude" validate:"gte=-180,lte=180"`
	Ativo       bool    `json:"ativo"`
}

// SiteSettings has no id; there is exactly one per site.
type SiteSettings struct {
	HeroHeadline          string `json:"heroHeadline"`
	HeroSubheadline       string `json:"heroSubheadline"`
	ContactWhatsapp       string `json:"contactWhatsapp" validate:"required"`
	PropertiesHeaderImage string `json:"propertiesHeaderImage,omitempty"`
	HeroBackgroundImage   string `json:"heroBackgroundImage,omitempty"`
}
