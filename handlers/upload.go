package handlers

import (
	"bytes"
	"io"
	"net/http"

	"github.com/go-chi/render"
	"github.com/kevinaaaquil/dailypulse/backend/apierror"
	"go.uber.org/zap"
)

var imageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// UploadHandler stores article images. Images is nil when no bucket is
// configured.
type UploadHandler struct {
	Images   ImageStore
	MaxBytes int64
	Log      *zap.Logger
}

type UploadResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// UploadImage handles POST /articles/image with a multipart "image" field.
func (h *UploadHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if h.Images == nil {
		apierror.Write(w, r, apierror.ServiceUnavailable("image upload not configured"))
		return
	}
	if h.MaxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxBytes)
	}
	if err := r.ParseMultipartForm(h.MaxBytes); err != nil {
		apierror.Write(w, r, &apierror.ErrResponse{HTTPStatusCode: http.StatusBadRequest, Message: "failed to parse multipart form"})
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		apierror.Write(w, r, &apierror.ErrResponse{HTTPStatusCode: http.StatusBadRequest, Message: "missing image"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		serverError(w, r, h.Log, err)
		return
	}
	contentType := http.DetectContentType(data)
	if !imageTypes[contentType] {
		apierror.Write(w, r, &apierror.ErrResponse{HTTPStatusCode: http.StatusBadRequest, Message: "only jpeg, png, gif and webp images are allowed"})
		return
	}
	key, err := h.Images.Upload(r.Context(), imagePrefix, header.Filename, bytes.NewReader(data), contentType)
	if err != nil {
		serverError(w, r, h.Log, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, UploadResponse{Key: key, URL: h.Images.URL(key)})
}
