package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/dcode-github/imobiliaria/backend/cache"
	"github.com/dcode-github/imobiliaria/backend/models"
	"github.com/dcode-github/imobiliaria/backend/store"
	"github.com/dcode-github/imobiliaria/backend/utils"
)

func CreateProperty(catalog *cache.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := currentStore(w, r)
		if !ok {
			return
		}
		var im models.Imovel
		if !decodeAndValidate(w, r, &im) {
			return
		}
		// ids are always assigned here, never taken from the body
		im.ID = uuid.NewString()
		if im.DataCriacao.IsZero() {
			im.DataCriacao = time.Now().UTC()
		}
		clientID := im.ID

		m := s.AddImovel(r.Context(), im)
		respondMutation(w, r, m, catalog, http.StatusCreated, "Imóvel cadastrado", func() interface{} {
			if saved, found := s.Imovel(clientID); found {
				return saved
			}
			return im
		})
	}
}

func UpdateProperty(catalog *cache.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := currentStore(w, r)
		if !ok {
			return
		}
		id := mux.Vars(r)["id"]
		existing, found := s.Imovel(id)
		if !found {
			utils.RespondError(w, http.StatusNotFound, utils.ErrCodeNotFound, "Imóvel não encontrado")
			return
		}

		var im models.Imovel
		if !decodeAndValidate(w, r, &im) {
			return
		}
		im.ID = id
		if im.DataCriacao.IsZero() {
			im.DataCriacao = existing.DataCriacao
		}

		m := s.UpdateImovel(r.Context(), im)
		respondMutation(w, r, m, catalog, http.StatusOK, "Imóvel atualizado", func() interface{} {
			updated, _ := s.Imovel(id)
			return updated
		})
	}
}

func DeleteProperty(catalog *cache.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := currentStore(w, r)
		if !ok {
			return
		}
		m := s.DeleteImovel(r.Context(), mux.Vars(r)["id"])
		respondMutation(w, r, m, catalog, http.StatusOK, "Imóvel removido", nil)
	}
}

func CreateRegion(catalog *cache.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := currentStore(w, r)
		if !ok {
			return
		}
		var reg models.Regiao
		if !decodeAndValidate(w, r, &reg) {
			return
		}
		reg.ID = uuid.NewString()
		m := s.AddRegiao(r.Context(), reg)
		respondMutation(w, r, m, catalog, http.StatusCreated, "Região cadastrada", func() interface{} { return reg })
	}
}

func DeleteRegion(catalog *cache.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := currentStore(w, r)
		if !ok {
			return
		}
		m := s.DeleteRegiao(r.Context(), mux.Vars(r)["id"])
		respondMutation(w, r, m, catalog, http.StatusOK, "Região removida", nil)
	}
}

// ReplaceBanners swaps a whole banner group. The body is the new list in
// display order.
func ReplaceBanners(catalog *cache.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := currentStore(w, r)
		if !ok {
			return
		}
		group, err := models.ParseBannerGroup(mux.Vars(r)["group"])
		if err != nil {
			utils.RespondError(w, http.StatusNotFound, utils.ErrCodeNotFound, "Grupo de banners desconhecido", err)
			return
		}

		var banners []models.Banner
		if err := json.NewDecoder(r.Body).Decode(&banners); err != nil {
			utils.RespondError(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request payload", err)
			return
		}
		if banners == nil {
			banners = []models.Banner{}
		}
		for i := range banners {
			if banners[i].ID == "" {
				banners[i].ID = uuid.NewString()
			}
		}

		var m *store.Mutation
		if group == models.BannerEmBreve {
			m = s.SetBannersEmBreve(r.Context(), banners)
		} else {
			m = s.SetBannersPromocionais(r.Context(), banners)
		}
		respondMutation(w, r, m, catalog, http.StatusOK, "Banners salvos", func() interface{} { return banners })
	}
}
