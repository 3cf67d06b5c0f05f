package models

import "strings"

// PropertyFilter holds the catalog criteria. Zero-valued fields do not
// constrain the result; inactive listings are hidden unless IncludeInactive.
type PropertyFilter struct {
	Search          string
	Tipo            TipoImovel
	Finalidade      Finalidade
	RegiaoID        string
	PrecoMax        float64
	QuartosMin      int
	DestaqueOnly    bool
	IncludeInactive bool
}

func (f PropertyFilter) Match(i Imovel) bool {
	if !f.IncludeInactive && !i.Ativo {
		return false
	}
	if f.Tipo != "" && i.TipoImovel != f.Tipo {
		return false
	}
	if f.Finalidade != "" && i.Finalidade != f.Finalidade {
		return false
	}
	if f.RegiaoID != "" && i.RegiaoID != f.RegiaoID {
		return false
	}
	if f.PrecoMax > 0 && i.Preco > f.PrecoMax {
		return false
	}
	if f.QuartosMin > 0 && i.Quartos < f.QuartosMin {
		return false
	}
	if f.DestaqueOnly && !i.Destaque {
		return false
	}
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		hay := strings.ToLower(i.Bairro + "\n" + i.Cidade + "\n" + i.Titulo + "\n" + i.Referencia)
		if !strings.Contains(hay, term) {
			return false
		}
	}
	return true
}

// FilterImoveis keeps the input order.
func FilterImoveis(imoveis []Imovel, f PropertyFilter) []Imovel {
	out := make([]Imovel, 0, len(imoveis))
	for _, i := range imoveis {
		if f.Match(i) {
			out = append(out, i)
		}
	}
	return out
}
