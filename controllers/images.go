package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dcode-github/imobiliaria/backend/gateway"
	"github.com/dcode-github/imobiliaria/backend/utils"
)

const maxUploadBytes = 10 << 20

// ImageStore holds uploaded site images.
type ImageStore interface {
	UploadImage(ctx context.Context, original, contentType string, src io.Reader) (string, error)
	OpenImage(ctx context.Context, name string) (*gateway.Image, error)
}

type uploadResponse struct {
	URL string `json:"url"`
}

// UploadImage takes a multipart "file" field and returns the public URL of
// the stored copy.
func UploadImage(images ImageStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if images == nil {
			utils.RespondError(w, http.StatusServiceUnavailable, utils.ErrCodeInternal, "Image uploads are not configured")
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			utils.RespondError(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid upload", err)
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Missing file field", err)
			return
		}
		defer file.Close()

		url, err := images.UploadImage(r.Context(), header.Filename, header.Header.Get("Content-Type"), file)
		if err != nil {
			utils.RespondError(w, http.StatusBadGateway, utils.ErrCodePersistence, "Erro ao enviar imagem", err)
			return
		}
		utils.RespondWithJSON(w, http.StatusCreated, uploadResponse{URL: url})
	}
}

func ServeImage(images ImageStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if images == nil {
			utils.RespondError(w, http.StatusNotFound, utils.ErrCodeNotFound, "Image not found")
			return
		}
		img, err := images.OpenImage(r.Context(), mux.Vars(r)["name"])
		if errors.Is(err, gateway.ErrImageNotFound) {
			utils.RespondError(w, http.StatusNotFound, utils.ErrCodeNotFound, "Image not found")
			return
		}
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to read image", err)
			return
		}
		defer img.Close()

		if img.ContentType != "" {
			w.Header().Set("Content-Type", img.ContentType)
		}
		if img.Size > 0 {
			w.Header().Set("Content-Length", strconv.FormatInt(img.Size, 10))
		}
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		if _, err := io.Copy(w, img); err != nil {
			utils.Logger.WithError(err).WithField("image", img.Name).Warn("Image stream interrupted")
		}
	}
}
