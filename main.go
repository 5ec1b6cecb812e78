// main.go
package main

import (
	"crypto/rand"
	"encoding/hex"
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/patrickmn/go-cache"
	"github.com/rs/cors"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
}

func main() {
	seedFlag := flag.Bool("seed", false, "populate the database with sample content and exit")
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}

	store, err := OpenStore(cfg.DatabasePath)
	if err != nil {
		log.Fatal(err)
	}

	if *seedFlag {
		if err := seedSampleData(store); err != nil {
			log.Fatal(err)
		}
		log.Printf("sample content written to %s", cfg.DatabasePath)
		return
	}

	s, err := newServer(cfg, store)
	if err != nil {
		log.Fatal(err)
	}

	handler := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}).Handler(s.routes())

	log.Printf("portfolio backend listening on %s", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, handler))
}

func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/home", s.handleHome)
	mux.HandleFunc("GET /api/projects", s.handleProjects)
	mux.HandleFunc("GET /api/resume", s.handleResume)
	mux.HandleFunc("GET /api/contact", s.handleContact)
	s.adminRoutes(mux)
	return mux
}

func newServer(cfg Config, store *Store) (*server, error) {
	password := cfg.AdminPassword
	if password == "" {
		password = "admin123"
		log.Println("WARNING: ADMIN_PASSWORD not set, using the default development password")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	secret := []byte(cfg.JWTSecret)
	if len(secret) == 0 {
		secret = randomSecret()
		log.Println("JWT_SECRET not set, generated a random one; admin sessions reset on restart")
	}

	return &server{
		cfg:          cfg,
		store:        store,
		cache:        cache.New(5*time.Minute, 10*time.Minute),
		passwordHash: hash,
		jwtSecret:    secret,
	}, nil
}

func randomSecret() []byte {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		log.Fatal("failed to generate jwt secret:", err)
	}
	return []byte(hex.EncodeToString(buf))
}
