package repo

import (
	"context"
	"crypto/md5"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"baduk/internal/bootstrap"
	"baduk/internal/domain/game"
	domainErrors "baduk/internal/errors"
	"baduk/internal/statuses"
)

type GameRepository struct {
	cfg   bootstrap.Config
	log   *zap.SugaredLogger
	redis *redis.Client
	mongo *mongo.Database
}

func NewGameRepository(cfg bootstrap.Config, log *zap.SugaredLogger, redis *redis.Client, mongo *mongo.Database) *GameRepository {
	return &GameRepository{
		cfg:   cfg,
		log:   log,
		redis: redis,
		mongo: mongo,
	}
}

// GenerateGameKeys produces the secret key (the write handle players
// use) and a short public code derived from it (the join handle).
func (g *GameRepository) GenerateGameKeys(ctx context.Context) (gameKeySecret string, gameKeyPublic string) {
	gameKeySecret = uuid.New().String()
	for {
		gameKeyPublic = generateHash(gameKeySecret)

		if g.CheckPublicKeyIsUniq(ctx, gameKeyPublic) {
			return gameKeySecret, gameKeyPublic
		}
		gameKeySecret = uuid.New().String()
	}
}

func generateHash(s string) string {
	h := md5.New()
	h.Write([]byte(s))
	hashBytes := h.Sum(nil)
	number := binary.BigEndian.Uint32(hashBytes[:4])
	code := number % 100000
	return fmt.Sprintf("%05d", code)
}

func (g *GameRepository) CheckPublicKeyIsUniq(ctx context.Context, gameKeyPublic string) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := g.mongo.Collection("games")
	filter := bson.M{"game_key_public": gameKeyPublic}

	err := collection.FindOne(ctx, filter).Err()
	return errors.Is(err, mongo.ErrNoDocuments)
}

func (g *GameRepository) PutGame(ctx context.Context, gameData game.Game) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := g.mongo.Collection("games")

	_, err := collection.InsertOne(ctx, gameData)
	if err != nil {
		g.log.Errorf("failed to insert game to database: %v", err)
		return false
	}

	g.log.Infof("game inserted successfully with key: %s", gameData.GameKeyPublic)

	return true
}

func (g *GameRepository) GetGameByPublicKey(ctx context.Context, gameKeyPublic string) (game.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := g.mongo.Collection("games")
	filter := bson.M{
		"$and": []bson.M{
			{"game_key_public": gameKeyPublic},
			{"status": bson.M{"$ne": statuses.StatusCompleted}},
		},
	}

	foundGame := game.Game{}

	err := collection.FindOne(ctx, filter).Decode(&foundGame)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return foundGame, domainErrors.ErrGameNotFound
	} else if err != nil {
		g.log.Error(err)
		return foundGame, err
	}

	return foundGame, nil
}

func (g *GameRepository) GetGameBySecretKey(ctx context.Context, gameKeySecret string) (game.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := g.mongo.Collection("games")
	filter := bson.M{"game_key_secret": gameKeySecret}

	foundGame := game.Game{}

	err := collection.FindOne(ctx, filter).Decode(&foundGame)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return foundGame, domainErrors.ErrGameNotFound
	} else if err != nil {
		g.log.Error(err)
		return foundGame, err
	}

	return foundGame, nil
}

// AddPlayer fills the given color slot and marks the game active once
// both slots are taken.
func (g *GameRepository) AddPlayer(ctx context.Context, gameKeySecret string, color string, name string) (game.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := g.mongo.Collection("games")
	filter := bson.M{"game_key_secret": gameKeySecret}

	field := "player_black"
	if color == "white" {
		field = "player_white"
	}

	update := bson.M{"$set": bson.M{field: name}}

	res, err := collection.UpdateOne(ctx, filter, update)
	if err != nil {
		g.log.Errorf("failed to update game in database: %v", err)
		return game.Game{}, err
	}
	if res.MatchedCount == 0 {
		return game.Game{}, domainErrors.ErrGameNotFound
	}

	var updatedGame game.Game
	if err = collection.FindOne(ctx, filter).Decode(&updatedGame); err != nil {
		g.log.Errorf("failed to reload updated game: %v", err)
		return game.Game{}, err
	}

	if updatedGame.PlayerBlack != "" && updatedGame.PlayerWhite != "" && updatedGame.Status == statuses.StatusWaitOpponent {
		now := time.Now()
		_, err = collection.UpdateOne(ctx, filter, bson.M{"$set": bson.M{
			"status":     statuses.StatusActive,
			"started_at": now,
		}})
		if err != nil {
			g.log.Errorf("failed to activate game: %v", err)
			return game.Game{}, err
		}
		updatedGame.Status = statuses.StatusActive
		updatedGame.StartedAt = &now
	}

	g.log.Infof("player %s (%s) added to game %s", name, color, updatedGame.GameKeyPublic)

	return updatedGame, nil
}

func (g *GameRepository) SetStatus(ctx context.Context, gameKeySecret string, status string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := g.mongo.Collection("games")
	filter := bson.M{"game_key_secret": gameKeySecret}

	_, err := collection.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		g.log.Errorf("failed to set game status: %v", err)
	}
	return err
}

// SaveRecord stores the serialized action record under the game's
// secret key. Records live in Redis because every move rewrites them.
func (g *GameRepository) SaveRecord(ctx context.Context, gameKeySecret string, data string) error {
	return g.redis.Set(ctx, recordKey(gameKeySecret), data, 0).Err()
}

// LoadRecord returns the serialized record, empty string when none was
// stored yet.
func (g *GameRepository) LoadRecord(ctx context.Context, gameKeySecret string) (string, error) {
	data, err := g.redis.Get(ctx, recordKey(gameKeySecret)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return data, err
}

func recordKey(gameKeySecret string) string {
	return "record:" + gameKeySecret
}
