package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/dcode-github/imobiliaria/backend/cache"
	"github.com/dcode-github/imobiliaria/backend/models"
	"github.com/dcode-github/imobiliaria/backend/store"
	"github.com/dcode-github/imobiliaria/backend/utils"
)

type ContextKey string

const AdminEmailKey = ContextKey("adminEmail")

// PersistWait bounds how long a handler waits for the backend before
// answering with the in-memory result.
var PersistWait = 10 * time.Second

var validate = validator.New()

func currentStore(w http.ResponseWriter, r *http.Request) (*store.Store, bool) {
	s, err := store.FromContext(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Internal server error", err)
		return nil, false
	}
	return s, true
}

// decodeAndValidate reads a JSON body into dst and runs its validate tags.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.RespondError(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request payload", err)
		return false
	}
	if err := validate.Struct(dst); err != nil {
		utils.RespondError(w, http.StatusBadRequest, utils.ErrCodeValidation, validationMessage(err), err)
		return false
	}
	return true
}

func validationMessage(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return "Invalid request payload"
	}
	fields := make([]string, 0, len(ve))
	for _, fe := range ve {
		fields = append(fields, fe.Field())
	}
	return "Invalid fields: " + strings.Join(fields, ", ")
}

// respondMutation answers once the backend write finished or PersistWait ran
// out. The change is already in memory either way. A failed write is only
// reported to the caller when it is a UserAlert; anything else was logged by
// the store and the response is 202 so clients can tell it is not stored.
// result, if set, is read after the wait so it sees backend-assigned ids.
func respondMutation(w http.ResponseWriter, r *http.Request, m *store.Mutation, catalog *cache.Catalog, status int, message string, result func() interface{}) {
	invalidate(r.Context(), catalog)
	if catalog != nil {
		// the backend write can still change what the catalog shows, e.g. a
		// new listing taking its stored id, so drop cached pages again then
		bg := context.WithoutCancel(r.Context())
		go func() {
			<-m.Done()
			invalidate(bg, catalog)
		}()
	}

	ctx, cancel := context.WithTimeout(r.Context(), PersistWait)
	defer cancel()
	err := m.Wait(ctx)

	var data interface{}
	if result != nil {
		data = result()
	}

	admin, _ := r.Context().Value(AdminEmailKey).(string)
	utils.Logger.WithField("op", m.Op).WithField("admin", admin).WithField("state", m.State().String()).Debug("Mutation answered")

	var alert *store.UserAlert
	switch {
	case err == nil:
		utils.RespondWithJSON(w, status, models.APIResponse{Success: true, Message: message, Data: data})
	case errors.As(err, &alert):
		utils.RespondError(w, http.StatusBadGateway, utils.ErrCodePersistence, alert.Message, err)
	default:
		utils.Logger.WithError(err).WithField("op", m.Op).Warn("Responding before the change was stored")
		utils.RespondWithJSON(w, http.StatusAccepted, models.APIResponse{Success: true, Message: message, Data: data})
	}
}

func invalidate(ctx context.Context, catalog *cache.Catalog) {
	if _, err := catalog.Invalidate(context.WithoutCancel(ctx)); err != nil {
		utils.Logger.WithError(err).Warn("Catalog cache invalidation failed")
	}
}
