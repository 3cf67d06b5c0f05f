package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/dcode-github/imobiliaria/backend/models"
	"github.com/dcode-github/imobiliaria/backend/notify"
	"github.com/dcode-github/imobiliaria/backend/utils"
)

type leadRequest struct {
	Nome       string `json:"nome" validate:"required"`
	Whatsapp   string `json:"whatsapp" validate:"required,min=8,max=20"`
	Email      string `json:"email" validate:"omitempty,email"`
	TipoImovel string `json:"tipo_imovel"`
	RegiaoID   string `json:"regiao_id"`
	ImovelID   string `json:"imovelId"`
}

// CreateLead records a contact request from the home form or a listing page.
// The listing title is taken from the catalog, not from the client.
func CreateLead(notifier notify.LeadNotifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := currentStore(w, r)
		if !ok {
			return
		}
		var req leadRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		lead := models.Lead{
			ID:         uuid.NewString(),
			Nome:       req.Nome,
			Whatsapp:   req.Whatsapp,
			Email:      req.Email,
			TipoImovel: req.TipoImovel,
			RegiaoID:   req.RegiaoID,
			DataEnvio:  time.Now().UTC(),
		}
		if req.ImovelID != "" {
			if im, found := s.Imovel(req.ImovelID); found {
				lead.ImovelID = im.ID
				lead.ImovelTitulo = im.Titulo
			}
		}

		m := s.AddLead(r.Context(), lead)

		if notifier != nil {
			var regiao string
			if reg, found := models.FindRegiao(s.State().Regioes, lead.RegiaoID); found {
				regiao = reg.Nome
			}
			go func(ctx context.Context) {
				ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
				defer cancel()
				if err := notifier.NotifyLead(ctx, lead, regiao); err != nil {
					utils.Logger.WithError(err).WithField("lead_id", lead.ID).Error("Lead notification failed")
				}
			}(context.WithoutCancel(r.Context()))
		}

		respondMutation(w, r, m, nil, http.StatusCreated, "Recebemos seu contato!", func() interface{} { return lead })
	}
}

func ListLeads() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := currentStore(w, r)
		if !ok {
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, s.State().Leads)
	}
}

func DeleteLead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := currentStore(w, r)
		if !ok {
			return
		}
		m := s.DeleteLead(r.Context(), mux.Vars(r)["id"])
		respondMutation(w, r, m, nil, http.StatusOK, "Lead removido", nil)
	}
}
