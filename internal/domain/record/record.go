// Package record serializes a game's history as (parent index, tagged
// action payload) entries in insertion order. It is the storage format
// the repository keeps in Redis: one string per game, decoded and
// replayed on every access.
package record

import (
	"encoding/json"
	"fmt"

	"baduk/internal/domain/goban"
	"baduk/internal/domain/rules"
	"baduk/internal/engine"
)

// Action type tags.
const (
	TypeHandicap   = "handicap"
	TypePass       = "pass"
	TypePlay       = "play"
	TypeRequestEnd = "request_end"
	TypeRejectEnd  = "reject_end"
	TypeAcceptEnd  = "accept_end"
)

// Point is a board coordinate in the wire format.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ActionRecord is one tagged action payload. Fields beyond Type are
// meaningful per tag only.
type ActionRecord struct {
	Type   string  `json:"type"`
	Player string  `json:"player,omitempty"`
	Stones int     `json:"stones,omitempty"`
	At     *Point  `json:"at,omitempty"`
	Dead   []Point `json:"dead,omitempty"`
}

// Entry is one recorded tree item: the parent's stable index (0 = root)
// plus the action that was inserted there.
type Entry struct {
	Parent int          `json:"parent"`
	Action ActionRecord `json:"action"`
}

// Record is a full game history in insertion order.
type Record struct {
	Entries []Entry `json:"entries"`
}

// Encode renders the record as JSON.
func (r Record) Encode() (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Decode parses a JSON record. An empty input decodes to the empty
// record.
func Decode(data string) (Record, error) {
	if data == "" {
		return Record{}, nil
	}

	var r Record
	if err := json.Unmarshal([]byte(data), &r); err != nil {
		return Record{}, fmt.Errorf("decode record: %w", err)
	}
	return r, nil
}

// FromAction converts a rules action into its wire form.
func FromAction(a rules.Action) (ActionRecord, error) {
	switch act := a.(type) {
	case rules.Handicap:
		return ActionRecord{Type: TypeHandicap, Stones: act.Stones}, nil
	case rules.Pass:
		return ActionRecord{Type: TypePass, Player: act.Player.String()}, nil
	case rules.Play:
		return ActionRecord{
			Type:   TypePlay,
			Player: act.Player.String(),
			At:     &Point{X: act.At.X, Y: act.At.Y},
		}, nil
	case rules.RequestEnd:
		dead := make([]Point, 0, len(act.DeadStones))
		for _, p := range act.DeadStones {
			dead = append(dead, Point{X: p.X, Y: p.Y})
		}
		return ActionRecord{Type: TypeRequestEnd, Player: act.Player.String(), Dead: dead}, nil
	case rules.RejectEnd:
		return ActionRecord{Type: TypeRejectEnd, Player: act.Player.String()}, nil
	case rules.AcceptEnd:
		return ActionRecord{Type: TypeAcceptEnd, Player: act.Player.String()}, nil
	default:
		return ActionRecord{}, fmt.Errorf("unknown action %T", a)
	}
}

// ToAction converts a wire action back into a rules action.
func ToAction(r ActionRecord) (rules.Action, error) {
	player, err := parsePlayer(r.Player)
	if err != nil && r.Type != TypeHandicap {
		return nil, err
	}

	switch r.Type {
	case TypeHandicap:
		return rules.Handicap{Stones: r.Stones}, nil
	case TypePass:
		return rules.Pass{Player: player}, nil
	case TypePlay:
		if r.At == nil {
			return nil, fmt.Errorf("play without coordinates")
		}
		return rules.Play{Player: player, At: goban.Position{X: r.At.X, Y: r.At.Y}}, nil
	case TypeRequestEnd:
		dead := make([]goban.Position, 0, len(r.Dead))
		for _, p := range r.Dead {
			dead = append(dead, goban.Position{X: p.X, Y: p.Y})
		}
		return rules.RequestEnd{Player: player, DeadStones: dead}, nil
	case TypeRejectEnd:
		return rules.RejectEnd{Player: player}, nil
	case TypeAcceptEnd:
		return rules.AcceptEnd{Player: player}, nil
	default:
		return nil, fmt.Errorf("unknown action type %q", r.Type)
	}
}

// Rebuild replays a record into a fresh game tree. Every entry has to
// pass its legality check again; an entry that does not means the
// stored record is corrupt. Returns the rebuilt tree and the path of
// the last inserted entry.
func Rebuild(r Record, newBoard func() goban.Board) (*rules.Game, engine.Path, error) {
	game := rules.NewGame(newBoard)
	tip := engine.Root

	for i, entry := range r.Entries {
		if entry.Parent < 0 || entry.Parent > i {
			return nil, engine.Root, fmt.Errorf("entry %d: parent %d out of range", i, entry.Parent)
		}

		action, err := ToAction(entry.Action)
		if err != nil {
			return nil, engine.Root, fmt.Errorf("entry %d: %w", i, err)
		}

		path, ok := game.Insert(engine.PathAt(entry.Parent), action)
		if !ok {
			return nil, engine.Root, fmt.Errorf("entry %d: recorded action is illegal", i)
		}
		tip = path
	}

	return game, tip, nil
}

// Append adds one accepted action to the record.
func (r *Record) Append(parent engine.Path, a rules.Action) error {
	wire, err := FromAction(a)
	if err != nil {
		return err
	}
	r.Entries = append(r.Entries, Entry{Parent: parent.Index(), Action: wire})
	return nil
}

func parsePlayer(s string) (goban.Player, error) {
	switch s {
	case "black":
		return goban.PlayerBlack, nil
	case "white":
		return goban.PlayerWhite, nil
	default:
		return goban.PlayerBlack, fmt.Errorf("unknown player %q", s)
	}
}
