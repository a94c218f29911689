package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // player identity is just a header; no origin policy
	},
}

const (
	wsWriteWait  = 10 * time.Second
	wsPingPeriod = 30 * time.Second
)

// handleJoinWS is the websocket variant of handleJoin: same join
// semantics, events framed as JSON text messages. Join errors are
// reported as plain HTTP statuses before the upgrade.
func (s *Server) handleJoinWS(w http.ResponseWriter, r *http.Request) {
	gameID, ok := s.gameID(w, r)
	if !ok {
		return
	}
	player, ok := s.playerID(w, r)
	if !ok {
		return
	}

	sub, err := s.games.JoinGame(gameID, player)
	if err != nil {
		s.writeError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed",
			zap.Int64("game_id", gameID),
			zap.String("player", player),
			zap.Error(err),
		)
		return
	}
	defer conn.Close()

	ping := time.NewTicker(wsPingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case ev, open := <-sub.Events():
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !open {
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game over"))
				return
			}
			if err := conn.WriteJSON(envelope{Type: ev.Type(), Data: ev}); err != nil {
				s.logger.Debug("websocket write failed",
					zap.Int64("game_id", gameID),
					zap.String("player", player),
					zap.Error(err),
				)
				return
			}
		}
	}
}
