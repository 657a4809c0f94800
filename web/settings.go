package web

import (
	"net/http"
	"strings"

	"github.com/wxclip/wxclip"
)

type settingsPage struct {
	DefaultOutdir string
	Saved         bool
}

func (s *Server) handleSettingsView(w http.ResponseWriter, r *http.Request) {
	settings, err := s.Settings.Load()
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.render(w, "settings.html", settingsPage{DefaultOutdir: settings.DefaultOutdir})
}

func (s *Server) handleSettingsSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.respondError(w, wxclip.Errorf(wxclip.EINVALID, "parse form: %s", err))
		return
	}

	outdir := strings.TrimSpace(r.PostForm.Get("default_outdir"))
	if outdir != "" {
		if _, err := s.resolvePath(outdir); err != nil {
			s.respondError(w, err)
			return
		}
	}

	if err := s.Settings.Save(&wxclip.Settings{DefaultOutdir: outdir}); err != nil {
		s.respondError(w, err)
		return
	}

	s.render(w, "settings.html", settingsPage{DefaultOutdir: outdir, Saved: true})
}
