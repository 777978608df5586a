package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"os"

	"go.trai.ch/lift/internal/core/domain"
	"go.trai.ch/lift/internal/engine/tree"
	"go.trai.ch/lift/internal/installer"
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to write response: " + err.Error())
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.logger.Error(err)
	http.Error(w, err.Error(), status)
}

func (s *Server) handleAttrs(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.installer.Attributes())
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.installer.LoadConfig(r.Context())
	if err != nil {
		s.writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	s.writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) handleDarkMode(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.DarkMode())
}

func (s *Server) handleDefaultPath(w http.ResponseWriter, _ *http.Request) {
	path, err := s.installer.DefaultPath()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"path": path})
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.installer.Status())
}

func (s *Server) handlePackages(w http.ResponseWriter, r *http.Request) {
	pkgs, err := s.installer.Packages(r.Context())
	if err != nil {
		s.writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	s.writeJSON(w, http.StatusOK, pkgs)
}

func (s *Server) handleVerifyPath(w http.ResponseWriter, r *http.Request) {
	exists := false
	if path := r.URL.Query().Get("path"); path != "" {
		info, err := os.Stat(path)
		exists = err == nil && info.IsDir()
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"exists": exists})
}

func (s *Server) handleExit(w http.ResponseWriter, _ *http.Request) {
	if err := s.installer.Shutdown(); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	s.OnExit()
}

// handleInstall reads the form fields path and mode. Every other field set
// to "true" selects a package.
func (s *Server) handleInstall(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	opts := installer.InstallOptions{Repair: r.PostForm.Get("mode") == "repair"}
	for key, values := range r.PostForm {
		if key == "path" || key == "mode" {
			continue
		}
		if len(values) > 0 && values[0] == "true" {
			opts.Items = append(opts.Items, key)
		}
	}

	if !s.installer.Status().PreexistingInstall {
		path := r.PostForm.Get("path")
		if path == "" {
			http.Error(w, domain.ErrNoInstallPath.Error(), http.StatusBadRequest)
			return
		}
		if err := s.installer.SetInstallDir(path); err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	s.stream(w, r, func(ctx context.Context, m tree.Messenger) error {
		return s.installer.Install(ctx, opts, m)
	})
}

func (s *Server) handleUninstall(w http.ResponseWriter, r *http.Request) {
	s.stream(w, r, s.installer.Uninstall)
}

func (s *Server) handleUpdateUpdater(w http.ResponseWriter, r *http.Request) {
	s.stream(w, r, func(ctx context.Context, m tree.Messenger) error {
		return s.installer.UpdateUpdater(ctx, s.Args, m)
	})
}
