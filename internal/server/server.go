package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/mario2904/brisca-go/internal/game"
	"go.uber.org/zap"
)

// Server exposes the game registry over HTTP: room management, plays and
// per-player event streams. The routes mirror the original brisca API:
//
//	POST /game/{numPlayers}  create a room, returns its id
//	GET  /game               list open rooms
//	GET  /game/{gameID}      join and stream events (SSE)
//	GET  /game/{gameID}/ws   join and stream events (websocket)
//	PUT  /game/{gameID}      play a card
//
// The Authorization header carries a bare player identifier; it is not
// validated here.
type Server struct {
	r      *chi.Mux
	games  *game.Manager
	logger *zap.Logger
}

// New constructs a Server, installs middleware, and registers routes.
func New(games *game.Manager, logger *zap.Logger) *Server {
	s := &Server{r: chi.NewRouter(), games: games, logger: logger}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	s.r.Route("/game", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/{numPlayers}", s.handleCreate)
		r.Get("/{gameID}", s.handleJoin)
		r.Get("/{gameID}/ws", s.handleJoinWS)
		r.Put("/{gameID}", s.handlePlay)
	})

	return s
}

// Handler returns the root http handler.
func (s *Server) Handler() http.Handler { return s.r }

// envelope is the wire framing shared by the SSE and websocket streams.
type envelope struct {
	Type game.EventType `json:"type"`
	Data game.Event     `json:"data"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	numPlayers, err := strconv.Atoi(chi.URLParam(r, "numPlayers"))
	if err != nil || numPlayers < 1 {
		s.writeErrorStatus(w, http.StatusBadRequest, "num_players must be a positive integer")
		return
	}

	g, err := s.games.CreateGame(numPlayers)
	if err != nil {
		s.writeErrorStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]int64{"id": g.ID})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.games.ListOpenGames())
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	gameID, ok := s.gameID(w, r)
	if !ok {
		return
	}
	player, ok := s.playerID(w, r)
	if !ok {
		return
	}

	var card game.Card
	if err := json.NewDecoder(r.Body).Decode(&card); err != nil {
		s.writeErrorStatus(w, http.StatusBadRequest, "invalid card payload")
		return
	}

	if err := s.games.PlayCard(gameID, player, card); err != nil {
		s.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) gameID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "gameID"), 10, 64)
	if err != nil {
		s.writeErrorStatus(w, http.StatusBadRequest, "invalid game id")
		return 0, false
	}
	return id, true
}

func (s *Server) playerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	player := strings.TrimSpace(r.Header.Get("Authorization"))
	if player == "" {
		s.writeErrorStatus(w, http.StatusUnauthorized, "Authorization header with player id is required")
		return "", false
	}
	return player, true
}

// writeError maps core errors onto HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrNotFound):
		s.writeErrorStatus(w, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrFull),
		errors.Is(err, game.ErrNotYourTurn),
		errors.Is(err, game.ErrNotInHand),
		errors.Is(err, game.ErrNotStarted),
		errors.Is(err, game.ErrFinished):
		s.writeErrorStatus(w, http.StatusConflict, err.Error())
	default:
		s.logger.Error("unexpected handler error", zap.Error(err))
		s.writeErrorStatus(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) writeErrorStatus(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to encode response", zap.Error(err))
	}
}
