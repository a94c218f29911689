package server

import (
	"bufio"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/mario2904/brisca-go/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer() (*Server, *game.Manager) {
	mgr := game.NewManager(zap.NewNop(), nil)
	return New(mgr, zap.NewNop()), mgr
}

// wireEvent mirrors the envelope framing for decoding in tests.
type wireEvent struct {
	Type game.EventType  `json:"type"`
	Data json.RawMessage `json:"data"`
}

func TestCreateGame(t *testing.T) {
	s, _ := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/game/2", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body map[string]int64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(1), body["id"])
}

func TestCreateGameRejectsBadPlayerCount(t *testing.T) {
	s, _ := newTestServer()

	for _, path := range []string{"/game/0", "/game/-1", "/game/two"} {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
}

func TestListOpenGames(t *testing.T) {
	s, mgr := newTestServer()

	g, err := mgr.CreateGame(3)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/game", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var infos []game.GameInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &infos))
	require.Len(t, infos, 1)
	assert.Equal(t, game.GameInfo{ID: g.ID, NumPlayers: 3}, infos[0])
}

func TestPlayRequiresAuthorization(t *testing.T) {
	s, mgr := newTestServer()
	_, err := mgr.CreateGame(2)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/game/1", strings.NewReader(`{"number":1,"suit":"Coin"}`))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPlayUnknownGame(t *testing.T) {
	s, _ := newTestServer()

	req := httptest.NewRequest(http.MethodPut, "/game/99", strings.NewReader(`{"number":1,"suit":"Coin"}`))
	req.Header.Set("Authorization", "A")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPlayRejectsBadPayload(t *testing.T) {
	s, mgr := newTestServer()
	_, err := mgr.CreateGame(2)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/game/1", strings.NewReader(`not json`))
	req.Header.Set("Authorization", "A")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestJoinFullGameConflicts(t *testing.T) {
	s, mgr := newTestServer()
	g, err := mgr.CreateGame(1)
	require.NoError(t, err)
	_, err = mgr.JoinGame(g.ID, "occupant")
	require.NoError(t, err)

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/game/1", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "late")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

// TestJoinStreamsEventsSSE joins a 1-player room, whose deal fires
// immediately, and checks the stream framing and event order.
func TestJoinStreamsEventsSSE(t *testing.T) {
	s, mgr := newTestServer()
	_, err := mgr.CreateGame(1)
	require.NoError(t, err)

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/game/1", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "solo")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	want := []game.EventType{
		game.EventConnected,
		game.EventNewCard,
		game.EventNewCard,
		game.EventNewCard,
		game.EventGameStart,
	}

	scanner := bufio.NewScanner(resp.Body)
	var got []game.EventType
	for len(got) < len(want) && scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var ev wireEvent
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev))
		got = append(got, ev.Type)
	}
	assert.Equal(t, want, got)
}

// TestJoinStreamsEventsWebsocket covers the websocket variant of the same
// join flow.
func TestJoinStreamsEventsWebsocket(t *testing.T) {
	s, mgr := newTestServer()
	_, err := mgr.CreateGame(1)
	require.NoError(t, err)

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/game/1/ws"
	header := http.Header{"Authorization": []string{"solo"}}

	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	defer conn.Close()

	want := []game.EventType{
		game.EventConnected,
		game.EventNewCard,
		game.EventNewCard,
		game.EventNewCard,
		game.EventGameStart,
	}

	for _, typ := range want {
		var ev wireEvent
		require.NoError(t, conn.ReadJSON(&ev))
		assert.Equal(t, typ, ev.Type)
	}
}
