package game

import (
	"context"
	"sync"
	"time"

	"baduk/internal/domain/game"
	"baduk/internal/domain/goban"
	"baduk/internal/domain/record"
	"baduk/internal/domain/rules"
	"baduk/internal/engine"
	domainErrors "baduk/internal/errors"
	"baduk/internal/statuses"
)

// GameStore is what the usecase needs from storage; the repository
// implements it against Mongo + Redis.
type GameStore interface {
	GenerateGameKeys(ctx context.Context) (gameKeySecret string, gameKeyPublic string)
	PutGame(ctx context.Context, gameData game.Game) bool
	GetGameByPublicKey(ctx context.Context, gameKeyPublic string) (game.Game, error)
	GetGameBySecretKey(ctx context.Context, gameKeySecret string) (game.Game, error)
	AddPlayer(ctx context.Context, gameKeySecret string, color string, name string) (game.Game, error)
	SetStatus(ctx context.Context, gameKeySecret string, status string) error
	SaveRecord(ctx context.Context, gameKeySecret string, data string) error
	LoadRecord(ctx context.Context, gameKeySecret string) (string, error)
}

type GameUseCase struct {
	store    GameStore
	newBoard func() goban.Board

	mu        sync.Mutex
	gameLocks map[string]*sync.Mutex
}

func NewGameUseCase(store GameStore) *GameUseCase {
	return &GameUseCase{
		store:     store,
		newBoard:  func() goban.Board { return goban.NewGrid19() },
		gameLocks: make(map[string]*sync.Mutex),
	}
}

// lockGame serializes mutations of one game's stored record. ApplyAction
// is a load-modify-save over that record, so two simultaneous actions on
// the same game would otherwise lose one of the updates.
func (g *GameUseCase) lockGame(gameKeySecret string) *sync.Mutex {
	g.mu.Lock()
	lock, ok := g.gameLocks[gameKeySecret]
	if !ok {
		lock = &sync.Mutex{}
		g.gameLocks[gameKeySecret] = lock
	}
	g.mu.Unlock()

	lock.Lock()
	return lock
}

// CreateGame registers a new game document and an empty record. The
// creator takes the color the request asks for; the other slot stays
// open for JoinGame.
func (g *GameUseCase) CreateGame(ctx context.Context, req game.CreateGameRequest) (game.Game, error) {
	gameKeySecret, gameKeyPublic := g.store.GenerateGameKeys(ctx)

	newGame := game.Game{
		GameKeySecret: gameKeySecret,
		GameKeyPublic: gameKeyPublic,
		Status:        statuses.StatusWaitOpponent,
		BoardSize:     19,
		CreatedAt:     time.Now(),
	}

	if req.IsCreatorBlack {
		newGame.PlayerBlack = req.CreatorName
	} else {
		newGame.PlayerWhite = req.CreatorName
	}

	if ok := g.store.PutGame(ctx, newGame); !ok {
		return game.Game{}, domainErrors.ErrCreateGameFailed
	}

	encoded, err := record.Record{}.Encode()
	if err != nil {
		return game.Game{}, err
	}
	if err := g.store.SaveRecord(ctx, gameKeySecret, encoded); err != nil {
		return game.Game{}, err
	}

	return newGame, nil
}

// JoinGame puts the named player into the free slot of the game behind
// the public key.
func (g *GameUseCase) JoinGame(ctx context.Context, gameKeyPublic string, name string) (game.Game, error) {
	play, err := g.store.GetGameByPublicKey(ctx, gameKeyPublic)
	if err != nil {
		return game.Game{}, err
	}

	var color string
	switch {
	case play.PlayerBlack == "":
		color = "black"
	case play.PlayerWhite == "":
		color = "white"
	default:
		return game.Game{}, domainErrors.ErrGameFull
	}

	updated, err := g.store.AddPlayer(ctx, play.GameKeySecret, color, name)
	if err != nil {
		return game.Game{}, domainErrors.ErrJoinGameFailed
	}

	return updated, nil
}

// ApplyAction loads the game's record, rebuilds the tree by replay,
// inserts the requested action and persists the grown record. The
// parent index selects where in the tree to play from; nil means the
// tip. A failed insert changes nothing and reports ErrIllegalAction.
func (g *GameUseCase) ApplyAction(ctx context.Context, gameKeySecret string, parent *int, wire record.ActionRecord) (game.StateResponse, error) {
	lock := g.lockGame(gameKeySecret)
	defer lock.Unlock()

	rec, tree, tip, err := g.loadTree(ctx, gameKeySecret)
	if err != nil {
		return game.StateResponse{}, err
	}

	action, err := record.ToAction(wire)
	if err != nil {
		return game.StateResponse{}, err
	}

	at := tip
	if parent != nil {
		if *parent < 0 || *parent > tree.Len() {
			return game.StateResponse{}, domainErrors.ErrIllegalAction
		}
		at = engine.PathAt(*parent)
	}

	path, ok := tree.Insert(at, action)
	if !ok {
		return game.StateResponse{}, domainErrors.ErrIllegalAction
	}

	if err := rec.Append(at, action); err != nil {
		return game.StateResponse{}, err
	}

	encoded, err := rec.Encode()
	if err != nil {
		return game.StateResponse{}, err
	}
	if err := g.store.SaveRecord(ctx, gameKeySecret, encoded); err != nil {
		return game.StateResponse{}, err
	}

	state := tree.GetState(path)
	if state.Phase == rules.Ended {
		if err := g.store.SetStatus(ctx, gameKeySecret, statuses.StatusCompleted); err != nil {
			return game.StateResponse{}, err
		}
	}

	return renderState(path, state), nil
}

// GameState reconstructs the state at the given tree index, or at the
// tip when at is nil.
func (g *GameUseCase) GameState(ctx context.Context, gameKeySecret string, at *int) (game.StateResponse, error) {
	_, tree, tip, err := g.loadTree(ctx, gameKeySecret)
	if err != nil {
		return game.StateResponse{}, err
	}

	path := tip
	if at != nil {
		if *at < 0 || *at > tree.Len() {
			return game.StateResponse{}, domainErrors.ErrGameNotFound
		}
		path = engine.PathAt(*at)
	}

	return renderState(path, tree.GetState(path)), nil
}

func (g *GameUseCase) GetGameByPublicKey(ctx context.Context, gameKeyPublic string) (game.Game, error) {
	return g.store.GetGameByPublicKey(ctx, gameKeyPublic)
}

func (g *GameUseCase) GetGameBySecretKey(ctx context.Context, gameKeySecret string) (game.Game, error) {
	return g.store.GetGameBySecretKey(ctx, gameKeySecret)
}

func (g *GameUseCase) loadTree(ctx context.Context, gameKeySecret string) (*record.Record, *rules.Game, engine.Path, error) {
	data, err := g.store.LoadRecord(ctx, gameKeySecret)
	if err != nil {
		return nil, nil, engine.Root, err
	}

	rec, err := record.Decode(data)
	if err != nil {
		return nil, nil, engine.Root, domainErrors.ErrCorruptRecord
	}

	tree, tip, err := record.Rebuild(rec, g.newBoard)
	if err != nil {
		return nil, nil, engine.Root, domainErrors.ErrCorruptRecord
	}

	return &rec, tree, tip, nil
}

// renderState flattens a rules state into the transport shape. The
// board rows use '.', 'b' and 'w'.
func renderState(path engine.Path, s *rules.State) game.StateResponse {
	maxX, maxY := 0, 0
	for _, p := range s.Board.Positions() {
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	rows := make([]string, 0, maxY+1)
	for y := 0; y <= maxY; y++ {
		row := make([]byte, 0, maxX+1)
		for x := 0; x <= maxX; x++ {
			switch s.Board.At(goban.Position{X: x, Y: y}) {
			case goban.Black:
				row = append(row, 'b')
			case goban.White:
				row = append(row, 'w')
			default:
				row = append(row, '.')
			}
		}
		rows = append(rows, string(row))
	}

	return game.StateResponse{
		Path:          path.Index(),
		Ply:           s.Ply,
		Phase:         s.Phase.String(),
		CurrentPlayer: s.CurrentPlayer().String(),
		Board:         rows,
		BlackScore:    s.BlackScore,
		WhiteScore:    s.WhiteScore,
	}
}
