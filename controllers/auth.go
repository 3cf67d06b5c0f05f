package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dcode-github/imobiliaria/backend/lockout"
	"github.com/dcode-github/imobiliaria/backend/models"
	"github.com/dcode-github/imobiliaria/backend/utils"
)

type Response struct {
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
}

// LoginAdmin checks the admin credentials, opens the session and returns a
// bearer token for the admin routes. Repeated failures lock the account.
func LoginAdmin(verifier utils.CredentialVerifier, issuer *utils.TokenIssuer, attempts *lockout.Attempts) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := currentStore(w, r)
		if !ok {
			return
		}
		var creds models.Credentials
		if !decodeAndValidate(w, r, &creds) {
			return
		}

		locked, until, err := attempts.IsLocked(r.Context(), creds.Email)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Internal server error", err)
			return
		}
		if locked {
			w.Header().Set("Retry-After", retryAfter(until))
			utils.RespondError(w, http.StatusTooManyRequests, utils.ErrCodeLockedAccount, "Muitas tentativas. Tente novamente mais tarde")
			return
		}

		if err := verifier.Verify(creds.Email, creds.Password); err != nil {
			if errors.Is(err, utils.ErrInvalidCredentials) {
				if incErr := attempts.Increment(r.Context(), creds.Email); incErr != nil {
					utils.Logger.WithError(incErr).Error("Failed to increment admin login attempts")
				}
				utils.RespondError(w, http.StatusUnauthorized, utils.ErrCodeInvalidCredentials, "E-mail ou senha inválidos")
				return
			}
			utils.RespondError(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Internal server error", err)
			return
		}

		if err := attempts.Reset(r.Context(), creds.Email); err != nil {
			utils.Logger.WithError(err).Warn("Failed to reset admin login attempts")
		}

		token, err := issuer.GenerateJWT(creds.Email)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to generate token", err)
			return
		}
		if err := s.SetAuthenticated(r.Context(), true); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to open session", err)
			return
		}

		utils.Logger.WithField("email", creds.Email).Info("Admin logged in")
		utils.RespondWithJSON(w, http.StatusOK, Response{Message: "Login successful", Token: token})
	}
}

func retryAfter(until time.Time) string {
	secs := int(time.Until(until).Seconds()) + 1
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}

func LogoutAdmin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := currentStore(w, r)
		if !ok {
			return
		}
		if err := s.SetAuthenticated(r.Context(), false); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to close session", err)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, Response{Message: "Logout successful"})
	}
}
