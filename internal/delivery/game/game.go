package game

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"baduk/internal/adapters"
	"baduk/internal/bootstrap"
	"baduk/internal/domain/game"
	domainErrors "baduk/internal/errors"
	"baduk/internal/httpresponse"
	repo "baduk/internal/repository"
	gameuc "baduk/internal/usecase/game"
)

type GameHandler struct {
	cfg    bootstrap.Config
	log    *zap.SugaredLogger
	gameUC *gameuc.GameUseCase
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// liveConn is one player's current websocket. The mutex guards both the
// pointer and writes on it: gorilla conns support one concurrent writer
// only, and the opponent's goroutine writes here too.
type liveConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

// attach swaps in a new connection and returns the one it replaced, nil
// when the slot was free.
func (c *liveConn) attach(conn *websocket.Conn) *websocket.Conn {
	c.mu.Lock()
	defer c.mu.Unlock()
	old := c.conn
	c.conn = conn
	return old
}

// detach clears the slot if it still holds the given connection.
func (c *liveConn) detach(conn *websocket.Conn) {
	c.mu.Lock()
	if c.conn == conn {
		c.conn = nil
	}
	c.mu.Unlock()
}

// writeJSON sends on the current connection under the write lock. A free
// slot swallows the message; the player simply is not connected.
func (c *liveConn) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	return c.conn.WriteJSON(v)
}

// closeCurrent drops whatever connection the slot holds.
func (c *liveConn) closeCurrent() {
	c.mu.Lock()
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.mu.Unlock()
}

type liveGame struct {
	black liveConn
	white liveConn
}

var activeGames = make(map[string]*liveGame)
var activeGamesMu sync.Mutex

func NewGameHandler(cfg bootstrap.Config, log *zap.SugaredLogger, mongoAdapter *adapters.AdapterMongo, redisAdapter *adapters.AdapterRedis) *GameHandler {
	return &GameHandler{
		cfg:    cfg,
		log:    log,
		gameUC: gameuc.NewGameUseCase(repo.NewGameRepository(cfg, log, redisAdapter.GetClient(), mongoAdapter.Database)),
	}
}

func (g *GameHandler) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	var req game.CreateGameRequest
	if !g.decodeBody(w, r, &req) {
		return
	}

	newGame, err := g.gameUC.CreateGame(r.Context(), req)
	if err != nil {
		g.log.Error(err)
		httpresponse.WriteResponseWithStatus(w, http.StatusInternalServerError, err.Error())
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, game.CreateGameResponse{
		GameKeyPublic: newGame.GameKeyPublic,
		GameKeySecret: newGame.GameKeySecret,
	})
}

func (g *GameHandler) HandleJoinGame(w http.ResponseWriter, r *http.Request) {
	var req game.JoinGameRequest
	if !g.decodeBody(w, r, &req) {
		return
	}

	joined, err := g.gameUC.JoinGame(r.Context(), req.GameKeyPublic, req.Name)
	if err != nil {
		g.log.Error(err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, joined)
}

// HandleAction applies one action over plain HTTP. The websocket loop
// in HandleStartGame is the live-play path; this one serves turn-based
// clients and branch exploration.
func (g *GameHandler) HandleAction(w http.ResponseWriter, r *http.Request) {
	var req game.ActionRequest
	if !g.decodeBody(w, r, &req) {
		return
	}

	state, err := g.gameUC.ApplyAction(r.Context(), req.GameKeySecret, req.Parent, req.Action)
	if err != nil {
		g.log.Error(err)
		status := http.StatusInternalServerError
		if errors.Is(err, domainErrors.ErrIllegalAction) || errors.Is(err, domainErrors.ErrGameNotFound) {
			status = http.StatusBadRequest
		}
		httpresponse.WriteResponseWithStatus(w, status, err.Error())
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, state)
}

func (g *GameHandler) HandleGameState(w http.ResponseWriter, r *http.Request) {
	gameKeyPublic := r.URL.Query().Get("game_key")
	if gameKeyPublic == "" {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, "game_key query parameter is required")
		return
	}

	ctx := r.Context()

	play, err := g.gameUC.GetGameByPublicKey(ctx, gameKeyPublic)
	if err != nil {
		g.log.Error(err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	state, err := g.gameUC.GameState(ctx, play.GameKeySecret, nil)
	if err != nil {
		g.log.Error(err)
		httpresponse.WriteResponseWithStatus(w, http.StatusInternalServerError, err.Error())
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, state)
}

// HandleStartGame upgrades to a websocket and relays accepted actions
// to the opponent. Every incoming action goes through the rules tree;
// an illegal one is answered on the sender's connection only.
func (g *GameHandler) HandleStartGame(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	gameKeySecret := r.URL.Query().Get("game_key_secret")
	color := r.URL.Query().Get("color")

	if gameKeySecret == "" || (color != "black" && color != "white") {
		g.log.Error("missing game_key_secret or color")
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, "game_key_secret and color=black|white are required")
		return
	}

	if _, err := g.gameUC.GetGameBySecretKey(ctx, gameKeySecret); err != nil {
		g.log.Error(err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Error("upgrade error:", err)
		return
	}

	activeGamesMu.Lock()
	ag, ok := activeGames[gameKeySecret]
	if !ok {
		ag = &liveGame{}
		activeGames[gameKeySecret] = ag
	}
	activeGamesMu.Unlock()

	self, opponent := &ag.black, &ag.white
	if color == "white" {
		self, opponent = opponent, self
	}

	if old := self.attach(conn); old != nil {
		old.WriteMessage(websocket.TextMessage, []byte("disconnected: a new connection replaced this one"))
		old.Close()
	}

	defer func() {
		conn.Close()
		self.detach(conn)
	}()

	for {
		var req game.ActionRequest
		if err = conn.ReadJSON(&req); err != nil {
			g.log.Error("read error:", err)
			return
		}

		state, err := g.gameUC.ApplyAction(ctx, gameKeySecret, req.Parent, req.Action)
		if err != nil {
			g.log.Error(err)
			self.writeJSON(httpresponse.ErrorResponse{ErrorDescription: err.Error()})
			continue
		}

		if err := self.writeJSON(state); err != nil {
			g.log.Error("write error:", err)
			return
		}

		if err := opponent.writeJSON(state); err != nil {
			g.log.Error("write to opponent error:", err)
			opponent.closeCurrent()
		}
	}
}

func (g *GameHandler) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	defer r.Body.Close()

	if err := decoder.Decode(dst); err != nil {
		g.log.Error("JSON decode error:", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	return true
}
