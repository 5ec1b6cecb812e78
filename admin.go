// admin.go authenticated CRUD surface for content management
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

// POST /admin/login
func (s *server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if creds.Email != s.cfg.AdminEmail {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		return
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(creds.Password)); err != nil {
		log.Printf("failed admin login attempt for %s", creds.Email)
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": creds.Email,
		"exp": time.Now().Add(tokenTTL).Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": signed})
}

// auth wraps admin handlers with bearer-token verification.
func (s *server) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authorization header is required"})
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || bearerToken[0] != "Bearer" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid authorization header format"})
			return
		}

		token, err := jwt.Parse(bearerToken[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.jwtSecret, nil
		})
		if err != nil || !token.Valid {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			return
		}

		next.ServeHTTP(w, r)
	}
}

func pathID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		return 0, &ValidationError{Field: "id", Message: "must be a positive integer"}
	}
	return uint(id), nil
}

// The five freely-editable entities share identical CRUD shapes, so the
// handlers are generic over the record type and close over store methods.

func handleList[T any](s *server, list func() ([]T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := list()
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, records)
	}
}

func handleGet[T any](s *server, get func(uint) (*T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			s.writeError(w, err)
			return
		}
		record, err := get(id)
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, record)
	}
}

func handleCreate[T any](s *server, create func(*T) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var record T
		if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		if err := create(&record); err != nil {
			s.writeError(w, err)
			return
		}
		s.cache.Flush()
		writeJSON(w, http.StatusCreated, record)
	}
}

func handleUpdate[T any](s *server, update func(uint, *T) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			s.writeError(w, err)
			return
		}
		var record T
		if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		if err := update(id, &record); err != nil {
			s.writeError(w, err)
			return
		}
		s.cache.Flush()
		writeJSON(w, http.StatusOK, record)
	}
}

func handleDelete(s *server, del func(uint) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			s.writeError(w, err)
			return
		}
		if err := del(id); err != nil {
			s.writeError(w, err)
			return
		}
		s.cache.Flush()
		writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
	}
}

// GET /admin/api/about — lazily creates the singleton on first access.
func (s *server) handleAboutGet(w http.ResponseWriter, r *http.Request) {
	about, err := s.store.GetOrCreateAbout()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, about)
}

// POST and PUT /admin/api/about — a create while the row exists updates it
// in place; a second row is never produced.
func (s *server) handleAboutUpsert(w http.ResponseWriter, r *http.Request) {
	var about About
	if err := json.NewDecoder(r.Body).Decode(&about); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := s.store.UpsertAbout(&about); err != nil {
		s.writeError(w, err)
		return
	}
	s.cache.Flush()
	writeJSON(w, http.StatusOK, about)
}

// DELETE /admin/api/about — always rejected.
func (s *server) handleAboutDelete(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, s.store.DeleteAbout())
}

// GET /admin/api/stats
func (s *server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.Stats()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"counts": stats,
		"site":   s.siteInfo(),
	})
}

func (s *server) adminRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /admin/login", s.handleLogin)

	mux.HandleFunc("GET /admin/api/projects", s.auth(handleList(s, s.store.Projects)))
	mux.HandleFunc("POST /admin/api/projects", s.auth(handleCreate(s, s.store.CreateProject)))
	mux.HandleFunc("GET /admin/api/projects/{id}", s.auth(handleGet(s, s.store.Project)))
	mux.HandleFunc("PUT /admin/api/projects/{id}", s.auth(handleUpdate(s, s.store.UpdateProject)))
	mux.HandleFunc("DELETE /admin/api/projects/{id}", s.auth(handleDelete(s, s.store.DeleteProject)))

	mux.HandleFunc("GET /admin/api/experiences", s.auth(handleList(s, s.store.Experiences)))
	mux.HandleFunc("POST /admin/api/experiences", s.auth(handleCreate(s, s.store.CreateExperience)))
	mux.HandleFunc("GET /admin/api/experiences/{id}", s.auth(handleGet(s, s.store.Experience)))
	mux.HandleFunc("PUT /admin/api/experiences/{id}", s.auth(handleUpdate(s, s.store.UpdateExperience)))
	mux.HandleFunc("DELETE /admin/api/experiences/{id}", s.auth(handleDelete(s, s.store.DeleteExperience)))

	mux.HandleFunc("GET /admin/api/education", s.auth(handleList(s, s.store.Education)))
	mux.HandleFunc("POST /admin/api/education", s.auth(handleCreate(s, s.store.CreateEducation)))
	mux.HandleFunc("GET /admin/api/education/{id}", s.auth(handleGet(s, s.store.EducationByID)))
	mux.HandleFunc("PUT /admin/api/education/{id}", s.auth(handleUpdate(s, s.store.UpdateEducation)))
	mux.HandleFunc("DELETE /admin/api/education/{id}", s.auth(handleDelete(s, s.store.DeleteEducation)))

	mux.HandleFunc("GET /admin/api/certificates", s.auth(handleList(s, s.store.Certificates)))
	mux.HandleFunc("POST /admin/api/certificates", s.auth(handleCreate(s, s.store.CreateCertificate)))
	mux.HandleFunc("GET /admin/api/certificates/{id}", s.auth(handleGet(s, s.store.Certificate)))
	mux.HandleFunc("PUT /admin/api/certificates/{id}", s.auth(handleUpdate(s, s.store.UpdateCertificate)))
	mux.HandleFunc("DELETE /admin/api/certificates/{id}", s.auth(handleDelete(s, s.store.DeleteCertificate)))

	mux.HandleFunc("GET /admin/api/skills", s.auth(handleList(s, s.store.Skills)))
	mux.HandleFunc("POST /admin/api/skills", s.auth(handleCreate(s, s.store.CreateSkill)))
	mux.HandleFunc("GET /admin/api/skills/{id}", s.auth(handleGet(s, s.store.Skill)))
	mux.HandleFunc("PUT /admin/api/skills/{id}", s.auth(handleUpdate(s, s.store.UpdateSkill)))
	mux.HandleFunc("DELETE /admin/api/skills/{id}", s.auth(handleDelete(s, s.store.DeleteSkill)))

	mux.HandleFunc("GET /admin/api/about", s.auth(s.handleAboutGet))
	mux.HandleFunc("POST /admin/api/about", s.auth(s.handleAboutUpsert))
	mux.HandleFunc("PUT /admin/api/about", s.auth(s.handleAboutUpsert))
	mux.HandleFunc("DELETE /admin/api/about", s.auth(s.handleAboutDelete))

	mux.HandleFunc("GET /admin/api/stats", s.auth(s.handleStats))
}
