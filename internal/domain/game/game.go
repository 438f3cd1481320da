package game

import (
	"time"

	"baduk/internal/domain/record"
)

// Game is the Mongo document for one game. The rules state itself is
// never stored here: it lives as a replayable record keyed by the
// secret key, and is derived on demand.
type Game struct {
	GameKeySecret string     `json:"game_key_secret,omitempty" bson:"game_key_secret"`
	GameKeyPublic string     `json:"game_key_public" bson:"game_key_public"`
	Status        string     `json:"status" bson:"status"`
	BoardSize     int        `json:"board_size" bson:"board_size"`
	Handicap      int        `json:"handicap,omitempty" bson:"handicap,omitempty"`
	PlayerBlack   string     `json:"player_black" bson:"player_black"`
	PlayerWhite   string     `json:"player_white" bson:"player_white"`
	CreatedAt     time.Time  `json:"created_at" bson:"created_at"`
	StartedAt     *time.Time `json:"started_at,omitempty" bson:"started_at,omitempty"`
}

type CreateGameRequest struct {
	CreatorName    string `json:"creator_name"`
	IsCreatorBlack bool   `json:"is_creator_black"`
}

type CreateGameResponse struct {
	GameKeyPublic string `json:"game_key_public"`
	GameKeySecret string `json:"game_key_secret"`
}

type JoinGameRequest struct {
	GameKeyPublic string `json:"game_key_public"`
	Name          string `json:"name"`
}

// ActionRequest carries one action to insert into the game tree.
// Parent is the stable index of the position to play from; nil means
// the current tip, which is the normal live-play case. Pointing it at
// an older index explores a branch instead.
type ActionRequest struct {
	GameKeySecret string              `json:"game_key_secret,omitempty"`
	Parent        *int                `json:"parent,omitempty"`
	Action        record.ActionRecord `json:"action"`
}

// StateResponse is the reconstructed state at one tree position.
type StateResponse struct {
	Path          int      `json:"path"`
	Ply           int      `json:"ply"`
	Phase         string   `json:"phase"`
	CurrentPlayer string   `json:"current_player"`
	Board         []string `json:"board"`
	BlackScore    int      `json:"black_score,omitempty"`
	WhiteScore    int      `json:"white_score,omitempty"`
}
