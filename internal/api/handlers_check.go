package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/doclint/internal/pipeline"
	"github.com/google/uuid"
)

type checkRequest struct {
	FileID  string `json:"file_id"`
	Content string `json:"content"`
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	// Leave room for the JSON envelope around the document.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+64*1024)

	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, fmt.Sprintf("request exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if int64(len(req.Content)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("content exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	fileID := sanitizeFilename(req.FileID)
	diags, err := s.runner.Check(r.Context(), req.Content, fileID)
	if err != nil {
		s.log.Error("check failed", "file_id", fileID, "error", err)
		jsonError(w, "check failed", http.StatusInternalServerError)
		return
	}

	rep := pipeline.NewReport(fileID, req.Content, diags)
	rep.RunID = uuid.NewString()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rep)
}

func (s *Server) handleCheckBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*10+10*1024*1024)

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		jsonError(w, "at least one file is required", http.StatusBadRequest)
		return
	}

	docs := make([]pipeline.Document, 0, len(files))
	for _, fh := range files {
		filename := sanitizeFilename(fh.Filename)
		if !isMarkdown(filename) {
			jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
			return
		}

		f, err := fh.Open()
		if err != nil {
			jsonError(w, "failed to open file "+filename, http.StatusBadRequest)
			return
		}
		data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
		f.Close()
		if err != nil {
			jsonError(w, "failed to read file "+filename, http.StatusInternalServerError)
			return
		}
		if int64(len(data)) > s.cfg.MaxUploadBytes {
			jsonError(w, fmt.Sprintf("%s exceeds max size (%d bytes)", filename, s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
			return
		}
		docs = append(docs, pipeline.Document{FileID: filename, Content: string(data)})
	}

	reports, err := s.runner.CheckBatch(r.Context(), docs)
	if err != nil {
		s.log.Error("batch check failed", "files", len(docs), "error", err)
		jsonError(w, "check failed", http.StatusInternalServerError)
		return
	}

	runID := uuid.NewString()
	for i := range reports {
		reports[i].RunID = runID
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"run_id":  runID,
		"reports": reports,
	})
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	text, err := s.runner.Describe()
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, text)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func isMarkdown(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown", ".mdx":
		return true
	}
	return false
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." || name == "/" {
		name = "unnamed.md"
	}
	return name
}
