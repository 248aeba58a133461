package handlers

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"helpdesk-backend/internal/models"
)

type VisionHandler struct {
	assistant assistant
	timeout   time.Duration
	maxUpload int64
}

func NewVisionHandler(assistant assistant, timeout time.Duration, maxUpload int64) *VisionHandler {
	return &VisionHandler{assistant: assistant, timeout: timeout, maxUpload: maxUpload}
}

// Relay accepts a multipart form with an image and a prompt and forwards a
// single-turn multimodal request to the provider. Image turns are not part
// of the replayed conversation history.
func (h *VisionHandler) Relay(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "No image uploaded."})
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "No image uploaded."})
		return
	}
	defer file.Close()

	prompt := strings.TrimSpace(r.FormValue("prompt"))
	if prompt == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "No prompt provided."})
		return
	}

	image, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to read uploaded image."})
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(image)
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	result, err := h.assistant.Describe(ctx, prompt, image, mimeType)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: errMessage(err)})
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Result: result})
}
