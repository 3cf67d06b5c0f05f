package controllers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/dcode-github/imobiliaria/backend/cache"
	"github.com/dcode-github/imobiliaria/backend/models"
	"github.com/dcode-github/imobiliaria/backend/utils"
)

// ParsePropertyFilter maps catalog query parameters to a filter. Values that
// do not parse are logged and ignored.
func ParsePropertyFilter(query url.Values) models.PropertyFilter {
	var f models.PropertyFilter
	for rawKey, values := range query {
		if len(values) == 0 || strings.TrimSpace(values[0]) == "" {
			continue
		}
		v := strings.TrimSpace(values[0])

		switch rawKey {
		case "q", "search", "bairro":
			f.Search = v
		case "tipo":
			f.Tipo = models.TipoImovel(strings.ToUpper(v))
		case "finalidade":
			f.Finalidade = models.Finalidade(strings.ToUpper(v))
		case "regiao", "regiao_id":
			f.RegiaoID = v
		case "precoMax":
			n, err := strconv.ParseFloat(v, 64)
			if err != nil {
				utils.Logger.WithField("value", v).Debug("Invalid precoMax, ignoring")
				continue
			}
			f.PrecoMax = n
		case "quartosMin":
			n, err := strconv.Atoi(v)
			if err != nil {
				utils.Logger.WithField("value", v).Debug("Invalid quartosMin, ignoring")
				continue
			}
			f.QuartosMin = n
		case "destaque":
			b, err := strconv.ParseBool(strings.ToLower(v))
			if err != nil {
				utils.Logger.WithField("value", v).Debug("Invalid destaque, ignoring")
				continue
			}
			f.DestaqueOnly = b
		case "includeInactive":
			b, _ := strconv.ParseBool(strings.ToLower(v))
			f.IncludeInactive = b
		default:
			utils.Logger.WithField("param", rawKey).Debug("Unhandled query parameter")
		}
	}
	return f
}

// writeCached serves key from the catalog cache, or builds, caches and serves
// it. Nothing is cached while the first load is still running.
func writeCached(w http.ResponseWriter, r *http.Request, catalog *cache.Catalog, key string, loading bool, build func() interface{}) {
	if !loading {
		if data, ok := catalog.Get(r.Context(), key); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Cache", "HIT")
			_, _ = w.Write(data)
			return
		}
	}

	data, err := json.Marshal(build())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to encode response", err)
		return
	}
	if !loading {
		catalog.Set(r.Context(), key, data)
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "MISS")
	_, _ = w.Write(data)
}

// GetPublicState returns what a site visitor may see of the application state.
func GetPublicState(catalog *cache.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := currentStore(w, r)
		if !ok {
			return
		}
		writeCached(w, r, catalog, cache.Key("state", nil), s.Loading(), func() interface{} {
			return s.State().Public()
		})
	}
}

func ListProperties(catalog *cache.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := currentStore(w, r)
		if !ok {
			return
		}
		query := r.URL.Query()
		query.Del("includeInactive")

		writeCached(w, r, catalog, cache.Key("properties", query), s.Loading(), func() interface{} {
			return models.FilterImoveis(s.State().Imoveis, ParsePropertyFilter(query))
		})
	}
}

func GetProperty() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := currentStore(w, r)
		if !ok {
			return
		}
		im, found := s.Imovel(mux.Vars(r)["id"])
		if !found || !im.Ativo {
			utils.RespondError(w, http.StatusNotFound, utils.ErrCodeNotFound, "Imóvel não encontrado")
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, im)
	}
}

type whatsAppResponse struct {
	Link    string `json:"link"`
	Message string `json:"message"`
}

// PropertyWhatsApp returns the chat link for asking about one listing.
func PropertyWhatsApp() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := currentStore(w, r)
		if !ok {
			return
		}
		im, found := s.Imovel(mux.Vars(r)["id"])
		if !found || !im.Ativo {
			utils.RespondError(w, http.StatusNotFound, utils.ErrCodeNotFound, "Imóvel não encontrado")
			return
		}
		msg := utils.PropertyInterestMessage(im.Titulo, im.Bairro, im.Referencia)
		number := s.State().Settings.ContactWhatsapp
		utils.RespondWithJSON(w, http.StatusOK, whatsAppResponse{Link: utils.WhatsAppLink(number, msg), Message: msg})
	}
}

// ContactWhatsApp returns the general contact chat link.
func ContactWhatsApp() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := currentStore(w, r)
		if !ok {
			return
		}
		number := s.State().Settings.ContactWhatsapp
		utils.RespondWithJSON(w, http.StatusOK, whatsAppResponse{
			Link:    utils.WhatsAppLink(number, utils.GeneralContactMessage),
			Message: utils.GeneralContactMessage,
		})
	}
}

func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := currentStore(w, r)
		if !ok {
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"status":  "ok",
			"loading": s.Loading(),
		})
	}
}
