package controllers

import (
	"net/http"

	"github.com/dcode-github/imobiliaria/backend/cache"
	"github.com/dcode-github/imobiliaria/backend/models"
	"github.com/dcode-github/imobiliaria/backend/utils"
)

func UpdateSiteSettings(catalog *cache.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := currentStore(w, r)
		if !ok {
			return
		}
		var st models.SiteSettings
		if !decodeAndValidate(w, r, &st) {
			return
		}
		m := s.UpdateSettings(r.Context(), st)
		respondMutation(w, r, m, catalog, http.StatusOK, "Configurações salvas", func() interface{} { return st })
	}
}

func UpdateFinanciamento(catalog *cache.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := currentStore(w, r)
		if !ok {
			return
		}
		var f models.FinanciamentoSettings
		if !decodeAndValidate(w, r, &f) {
			return
		}
		if f.ID == "" {
			f.ID = s.State().Financiamento.ID
		}
		m := s.UpdateFinanciamento(r.Context(), f)
		respondMutation(w, r, m, catalog, http.StatusOK, "Financiamento salvo", func() interface{} { return f })
	}
}

func UpdateProvaSocial(catalog *cache.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := currentStore(w, r)
		if !ok {
			return
		}
		var p models.ProvaSocial
		if !decodeAndValidate(w, r, &p) {
			return
		}
		if p.ID == "" {
			p.ID = s.State().ProvaSocial.ID
		}
		if p.Imagens == nil {
			p.Imagens = []string{}
		}
		if p.Metricas == nil {
			p.Metricas = []models.Metrica{}
		}
		m := s.UpdateProvaSocial(r.Context(), p)
		respondMutation(w, r, m, catalog, http.StatusOK, "Prova social salva", func() interface{} { return p })
	}
}

func UpdateLocalizacao(catalog *cache.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := currentStore(w, r)
		if !ok {
			return
		}
		var l models.LocalizacaoSettings
		if !decodeAndValidate(w, r, &l) {
			return
		}
		if l.ID == "" {
			l.ID = s.State().Localizacao.ID
		}
		m := s.UpdateLocalizacao(r.Context(), l)
		respondMutation(w, r, m, catalog, http.StatusOK, "Localização salva", func() interface{} { return l })
	}
}

type dashboardResponse struct {
	Imoveis       int  `json:"imoveis"`
	ImoveisAtivos int  `json:"imoveisAtivos"`
	Leads         int  `json:"leads"`
	Regioes       int  `json:"regioes"`
	Loading       bool `json:"loading"`
}

func Dashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := currentStore(w, r)
		if !ok {
			return
		}
		st := s.State()
		resp := dashboardResponse{
			Imoveis: len(st.Imoveis),
			Leads:   len(st.Leads),
			Regioes: len(st.Regioes),
			Loading: s.Loading(),
		}
		for _, im := range st.Imoveis {
			if im.Ativo {
				resp.ImoveisAtivos++
			}
		}
		utils.RespondWithJSON(w, http.StatusOK, resp)
	}
}

// AdminState returns the whole state, inactive entries and leads included.
func AdminState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := currentStore(w, r)
		if !ok {
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, s.State())
	}
}
