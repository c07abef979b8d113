// Package server exposes the game service over HTTP and websockets.
// Sessions authenticate with a signed token, join a game over a single
// websocket, and exchange JSON envelopes: actions inbound, game events
// outbound.
package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/philliparaujo/everdell/engine"
	"github.com/philliparaujo/everdell/internal/auth"
	"github.com/philliparaujo/everdell/internal/cache"
	"github.com/philliparaujo/everdell/internal/config"
	"github.com/philliparaujo/everdell/internal/game"
	"github.com/philliparaujo/everdell/internal/models"
)

type Server struct {
	cfg     *config.Config
	manager *game.Manager
	hub     *Hub
}

func New(cfg *config.Config, manager *game.Manager) *Server {
	return &Server{cfg: cfg, manager: manager, hub: NewHub()}
}

// Routes builds the HTTP handler: REST endpoints for session and game
// lifecycle, plus the websocket attach point.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /session", s.handleCreateSession)
	mux.HandleFunc("POST /game/create", s.handleCreateGame)
	mux.HandleFunc("GET /game/{id}/ws", s.handleGameWS)
	mux.HandleFunc("GET /game/{id}/history", s.handleGameHistory)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return cors(s.cfg.AllowedOrigins(), mux)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Username) == "" {
		http.Error(w, "username required", http.StatusBadRequest)
		return
	}

	playerID, _ := uuid.NewRandom()
	token, err := auth.CreateSessionToken(playerID, req.Username)
	if err != nil {
		logrus.Errorf("session token creation failed: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"playerId": playerID.String(),
		"username": req.Username,
		"token":    token,
	})
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	if _, _, err := sessionFromRequest(r); err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Seed       uint64   `json:"seed"`
		Expansions []string `json:"expansions"`
		Powers     bool     `json:"powers"`
		Password   string   `json:"password"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	g := s.manager.CreateGame(engine.SetupOptions{
		Seed:          req.Seed,
		Expansions:    req.Expansions,
		PowersEnabled: req.Powers,
	})
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			logrus.Errorf("password hash failed: %v", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		g.PasswordHash = hash
	}
	s.hub.Attach(g)
	logrus.Infof("game %s created", g.ID)
	writeJSON(w, http.StatusOK, map[string]string{"gameId": g.ID.String()})
}

func (s *Server) handleGameWS(w http.ResponseWriter, r *http.Request) {
	playerID, username, err := sessionFromRequest(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	gameID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "bad game id", http.StatusBadRequest)
		return
	}
	g := s.manager.GetGame(gameID)
	if g == nil {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}
	if g.PasswordHash != nil {
		supplied := r.URL.Query().Get("password")
		if bcrypt.CompareHashAndPassword(g.PasswordHash, []byte(supplied)) != nil {
			http.Error(w, "wrong password", http.StatusForbidden)
			return
		}
	}

	s.hub.ServeGameWS(w, r, g, &models.Player{
		ID:        playerID,
		Connected: true,
		User:      &models.User{ID: playerID, Username: username},
	})
}

// handleGameHistory returns the historian's action log for a game. The log
// lives in Redis, so history is only available when the cache is up.
func (s *Server) handleGameHistory(w http.ResponseWriter, r *http.Request) {
	if _, _, err := sessionFromRequest(r); err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	gameID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "bad game id", http.StatusBadRequest)
		return
	}
	if cache.Rdb == nil {
		http.Error(w, "history unavailable", http.StatusServiceUnavailable)
		return
	}
	records, err := cache.FetchGameActions(r.Context(), gameID)
	if err != nil {
		logrus.Errorf("history fetch for %s failed: %v", gameID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"actions": records})
}

// sessionFromRequest resolves the caller's identity from the Authorization
// header or, for websocket upgrades, the token query parameter.
func sessionFromRequest(r *http.Request) (uuid.UUID, string, error) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if token == "" || token == r.Header.Get("Authorization") {
		token = r.URL.Query().Get("token")
	}
	return auth.ParseSessionToken(token)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Errorf("response encode failed: %v", err)
	}
}

func cors(allow []string, next http.Handler) http.Handler {
	allowSet := map[string]struct{}{}
	for _, a := range allow {
		if a != "" {
			allowSet[a] = struct{}{}
		}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" {
			if _, ok := allowSet[origin]; ok {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin")
			}
		}
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
