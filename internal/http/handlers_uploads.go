package httpx

import (
	"context"
	"errors"
	"io"
	"net/http"
)

// ImageUploader uploads an image and returns its public URL.
type ImageUploader interface {
	Upload(ctx context.Context, filename string, image io.Reader) (string, error)
}

// UploadHandlers provides HTTP handlers for image uploads (avatars, recipient
// photos). Uploads go to the external image host, never to the backend.
type UploadHandlers struct {
	Uploader ImageUploader
}

// maxUploadBytes bounds the multipart form we are willing to parse.
const maxUploadBytes = 8 << 20

// Image handles a multipart image upload and returns the hosted URL.
// POST /api/uploads/image.
func (h *UploadHandlers) Image(w http.ResponseWriter, r *http.Request) {
	if h.Uploader == nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusServiceUnavailable,
			ErrCode: "uploads_disabled",
			Err:     errors.New("image uploads are not configured"),
		})
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_form", Err: err})
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "missing_image", Err: errors.New("an image file is required")})
		return
	}
	defer file.Close()

	url, err := h.Uploader.Upload(r.Context(), header.Filename, file)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadGateway, ErrCode: "upload_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"url": url})
}
