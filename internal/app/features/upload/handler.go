// Package upload accepts base64 data-URL image uploads and writes them
// under the configured upload directory, served statically at
// /uploads/*.
package upload

import (
	"encoding/base64"
	"net/http"
	"os"
	"path/filepath"
	"regexp"

	"github.com/buzzboard/buzzboard/internal/app/system/httpjson"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// dataURL matches "data:<mime>;base64,<payload>".
var dataURL = regexp.MustCompile(`^data:(.*?);base64,(.*)$`)

// maxImageBytes caps the decoded payload.
const maxImageBytes = 10 << 20

type Handler struct {
	Dir       string
	URLPrefix string
	Log       *zap.Logger
}

func NewHandler(dir, urlPrefix string, logger *zap.Logger) *Handler {
	return &Handler{Dir: dir, URLPrefix: urlPrefix, Log: logger}
}

func extForMime(mime string) string {
	switch mime {
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	}
	return ".bin"
}

type uploadRequest struct {
	Image string `json:"image"`
}

// HandleImage serves POST /upload/image. The body carries the image as
// a base64 data URL; the response carries the public URL of the stored
// file.
func (h *Handler) HandleImage(w http.ResponseWriter, r *http.Request) {
	var req uploadRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}

	m := dataURL.FindStringSubmatch(req.Image)
	if m == nil {
		httpjson.Error(w, http.StatusBadRequest, "image must be a base64 data URL")
		return
	}
	data, err := base64.StdEncoding.DecodeString(m[2])
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid base64 payload")
		return
	}
	if len(data) == 0 {
		httpjson.Error(w, http.StatusBadRequest, "empty image payload")
		return
	}
	if len(data) > maxImageBytes {
		httpjson.Error(w, http.StatusBadRequest, "image too large")
		return
	}

	name := uuid.NewString() + extForMime(m[1])
	if err := os.MkdirAll(h.Dir, 0o755); err != nil {
		h.Log.Error("upload dir create failed", zap.String("dir", h.Dir), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not store image")
		return
	}
	if err := os.WriteFile(filepath.Join(h.Dir, name), data, 0o644); err != nil {
		h.Log.Error("upload write failed", zap.String("file", name), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not store image")
		return
	}

	httpjson.Created(w, map[string]string{"url": h.URLPrefix + "/" + name})
}
