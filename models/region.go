package models

type Regiao struct {
	ID       string `json:"id"`
	Nome     string `json:"nome" validate:"required"`
	Cidade   string `json:"cidade" validate:"required"`
	Estado   string `json:"estado" validate:"required,len=2"`
	Imagem   string `json:"imagem"`
	Destaque bool   `json:"destaque"`
	Ativo    bool   `json:"ativo"`
}

// FindRegiao resolves a region reference. Dangling references return false.
func FindRegiao(regioes []Regiao, id string) (Regiao, bool) {
	if id == "" {
		return Regiao{}, false
	}
	for _, r := range regioes {
		if r.ID == id {
			return r, true
		}
	}
	return Regiao{}, false
}
