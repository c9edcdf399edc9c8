package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/hyperjump/henkan/internal/config"
	"github.com/hyperjump/henkan/internal/convert"
	"github.com/hyperjump/henkan/pkg/utils"
	"go.uber.org/zap"
)

// convertResponse is the shape of POST /api/v1/convert.
type convertResponse struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	DownloadName string `json:"download_name"`
	Preview      string `json:"preview"`
	Text         string `json:"text"`
	// Error carries the failure reason out-of-band when the server runs in
	// empty error mode; the text is empty in that case, never an error sentence.
	Error string `json:"error,omitempty"`
}

// handleConvert accepts a multipart upload (field "file") and returns the
// extracted text with a preview and a download artifact name. With
// ?download=true the response is the artifact itself as a text/plain
// attachment.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.Server.MaxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer file.Close()
	content, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	id := uuid.New().String()
	name := header.Filename
	s.logger.Debug("convert request",
		zap.String("id", id),
		zap.String("filename", name),
		zap.Int("size", len(content)),
	)

	text, extractErr := s.converter.Extract(name, content)
	if extractErr != nil {
		s.logger.Warn("conversion failed",
			zap.String("id", id),
			zap.String("filename", name),
			zap.Error(extractErr),
		)
		if s.mode == convert.ErrorModeInline {
			text = convert.InlineFailure(name, extractErr)
			extractErr = nil
		} else {
			text = ""
		}
	}

	s.logger.Debug("conversion result",
		zap.String("id", id),
		zap.String("text", utils.Truncate(text, 200)),
	)

	downloadName := utils.DownloadName(name)
	if r.URL.Query().Get("download") == "true" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", downloadName))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(text))
		return
	}

	resp := convertResponse{
		ID:           id,
		Filename:     name,
		DownloadName: downloadName,
		Preview:      utils.Preview(text, s.config.Convert.PreviewChars),
		Text:         text,
	}
	if extractErr != nil {
		resp.Error = extractErr.Error()
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWatchDirectoriesList(w http.ResponseWriter, r *http.Request) {
	if s.watch == nil {
		s.respondError(w, http.StatusNotImplemented, "watch not enabled")
		return
	}
	dirs := s.watch.Directories()
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"directories": dirs})
}

type watchAddRequest struct {
	Path string `json:"path"`
	Sync *bool  `json:"sync,omitempty"`
}

func (s *Server) handleWatchDirectoriesAdd(w http.ResponseWriter, r *http.Request) {
	if s.watch == nil {
		s.respondError(w, http.StatusNotImplemented, "watch not enabled")
		return
	}
	var req watchAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Path == "" {
		s.respondError(w, http.StatusBadRequest, "path is required")
		return
	}
	abs, err := filepath.Abs(req.Path)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid path")
		return
	}
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			s.respondError(w, http.StatusNotFound, "directory not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !info.IsDir() {
		s.respondError(w, http.StatusBadRequest, "path is not a directory")
		return
	}
	syncExisting := true
	if req.Sync != nil {
		syncExisting = *req.Sync
	}
	s.logger.Debug("watch add directory request", zap.String("path", abs), zap.Bool("sync_existing", syncExisting))
	if err := s.watch.AddDirectory(abs, syncExisting); err != nil {
		s.logger.Error("watch add directory failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.persistWatchDirectories()
	s.respondJSON(w, http.StatusCreated, map[string]string{"path": abs, "status": "added"})
}

func (s *Server) handleWatchDirectoriesRemove(w http.ResponseWriter, r *http.Request) {
	if s.watch == nil {
		s.respondError(w, http.StatusNotImplemented, "watch not enabled")
		return
	}
	path := r.URL.Query().Get("path")
	if path == "" {
		var body struct {
			Path string `json:"path"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil && body.Path != "" {
			path = body.Path
		}
	}
	if path == "" {
		s.respondError(w, http.StatusBadRequest, "path is required (query or body)")
		return
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid path")
		return
	}
	s.logger.Debug("watch remove directory request", zap.String("path", abs))
	if err := s.watch.RemoveDirectory(abs); err != nil {
		s.logger.Error("watch remove directory failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.persistWatchDirectories()
	s.respondJSON(w, http.StatusOK, map[string]string{"path": abs, "status": "removed"})
}

// persistWatchDirectories writes the current watch roots back to the config
// file so they survive a restart. Best effort; a write failure is logged.
func (s *Server) persistWatchDirectories() {
	if s.configPath == "" {
		return
	}
	s.configMu.Lock()
	s.config.Watch.Directories = s.watch.Directories()
	err := config.Save(s.configPath, s.config)
	s.configMu.Unlock()
	if err != nil {
		s.logger.Warn("failed to persist watch config", zap.Error(err))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
