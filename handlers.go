package main

// handlers.go public read endpoints: one JSON context per page

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/patrickmn/go-cache"
)

type server struct {
	cfg          Config
	store        *Store
	cache        *cache.Cache
	passwordHash []byte
	jwtSecret    []byte
}

// cached returns the memoized value for key, building and storing it on a
// miss. The cache is flushed on every admin write.
func (s *server) cached(key string, fetch func() (interface{}, error)) (interface{}, error) {
	if data, found := s.cache.Get(key); found {
		return data, nil
	}
	data, err := fetch()
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, data, cache.DefaultExpiration)
	return data, nil
}

func (s *server) siteInfo() map[string]string {
	return map[string]string{
		"header":      s.cfg.SiteHeader,
		"title":       s.cfg.SiteTitle,
		"index_title": s.cfg.SiteIndexTitle,
	}
}

// GET /api/home
func (s *server) handleHome(w http.ResponseWriter, r *http.Request) {
	data, err := s.cached("home", func() (interface{}, error) {
		about, err := s.store.GetOrCreateAbout()
		if err != nil {
			return nil, err
		}
		featured, err := s.store.FeaturedProjects(3)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"about":             about,
			"featured_projects": featured,
			"site":              s.siteInfo(),
		}, nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// GET /api/projects?tech=
func (s *server) handleProjects(w http.ResponseWriter, r *http.Request) {
	tech := r.URL.Query().Get("tech")
	build := func() (interface{}, error) {
		projects, err := s.store.ProjectsByTech(tech)
		if err != nil {
			return nil, err
		}
		allTechs, err := s.store.AllTechnologies()
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"projects":     projects,
			"all_techs":    allTechs,
			"current_tech": tech,
			"site":         s.siteInfo(),
		}, nil
	}

	var data interface{}
	var err error
	if tech == "" {
		data, err = s.cached("projects", build)
	} else {
		// filter values are arbitrary user input; caching them would mint
		// an unbounded set of keys
		data, err = build()
	}
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// GET /api/resume
func (s *server) handleResume(w http.ResponseWriter, r *http.Request) {
	data, err := s.cached("resume", func() (interface{}, error) {
		experiences, err := s.store.Experiences()
		if err != nil {
			return nil, err
		}
		education, err := s.store.Education()
		if err != nil {
			return nil, err
		}
		certificates, err := s.store.Certificates()
		if err != nil {
			return nil, err
		}
		skills, err := s.store.SkillsByCategory()
		if err != nil {
			return nil, err
		}
		about, err := s.store.GetOrCreateAbout()
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"experiences":        experiences,
			"education":          education,
			"certificates":       certificates,
			"skills_by_category": skills,
			"about":              about,
			"site":               s.siteInfo(),
		}, nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// GET /api/contact
func (s *server) handleContact(w http.ResponseWriter, r *http.Request) {
	data, err := s.cached("contact", func() (interface{}, error) {
		about, err := s.store.GetOrCreateAbout()
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"about": about,
			"site":  s.siteInfo(),
		}, nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

// writeError maps store errors onto HTTP statuses.
func (s *server) writeError(w http.ResponseWriter, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": verr.Error(),
			"field": verr.Field,
		})
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, ErrSingletonDelete):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": err.Error()})
	default:
		log.Printf("internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
