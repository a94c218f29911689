package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ssePingPeriod keeps idle streams alive through proxies while players
// wait for the room to fill.
const ssePingPeriod = 15 * time.Second

// handleJoin seats the caller in the game and streams their events as
// server-sent events. The stream ends when the game delivers GameEnd and
// closes the subscription, or when the client goes away.
func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	gameID, ok := s.gameID(w, r)
	if !ok {
		return
	}
	player, ok := s.playerID(w, r)
	if !ok {
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeErrorStatus(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	sub, err := s.games.JoinGame(gameID, player)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher.Flush()

	ping := time.NewTicker(ssePingPeriod)
	defer ping.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("sse client disconnected",
				zap.Int64("game_id", gameID),
				zap.String("player", player),
			)
			return
		case <-ping.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case ev, open := <-sub.Events():
			if !open {
				return
			}
			payload, err := json.Marshal(envelope{Type: ev.Type(), Data: ev})
			if err != nil {
				s.logger.Warn("failed to encode event",
					zap.String("event", string(ev.Type())),
					zap.Error(err),
				)
				continue
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
