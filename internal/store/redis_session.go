package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/dataset-hub/internal/config"
	"github.com/MKhiriev/dataset-hub/internal/logger"
	"github.com/MKhiriev/dataset-hub/models"
)

const (
	sessionKeyPrefix      = "session:"
	userSessionsKeyPrefix = "user_sessions:"
)

// redisSessionStore keeps each session as a JSON value under "session:<id>"
// with a TTL equal to its remaining lifetime, and indexes session ids per
// user in the set "user_sessions:<user id>".
type redisSessionStore struct {
	client *redis.Client
	logger *logger.Logger
}

// NewRedisSessionStore connects to redis and verifies the connection.
func NewRedisSessionStore(ctx context.Context, cfg config.Sessions, log *logger.Logger) (SessionStore, *redis.Client, error) {
	log.Debug().Msg("creating redis session store")

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Err(err).Str("func", "NewRedisSessionStore").Msg("error connecting redis (ping)")
		_ = client.Close()
		return nil, nil, fmt.Errorf("error connecting redis: %w", err)
	}

	return newRedisSessionStore(client, log), client, nil
}

func newRedisSessionStore(client *redis.Client, log *logger.Logger) *redisSessionStore {
	return &redisSessionStore{client: client, logger: log}
}

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

func userSessionsKey(userID int64) string {
	return userSessionsKeyPrefix + strconv.FormatInt(userID, 10)
}

func (s *redisSessionStore) CreateSession(ctx context.Context, session models.Session) error {
	log := logger.FromContext(ctx)

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	value, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("error encoding session: %w", err)
	}

	indexKey := userSessionsKey(session.UserID)
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, sessionKey(session.ID), value, ttl)
	pipe.SAdd(ctx, indexKey, session.ID)
	pipe.Expire(ctx, indexKey, ttl)
	if _, err = pipe.Exec(ctx); err != nil {
		log.Err(err).Str("func", "*redisSessionStore.CreateSession").Msg("error storing session")
		return fmt.Errorf("error storing session: %w", err)
	}

	return nil
}

func (s *redisSessionStore) FindSession(ctx context.Context, sessionID string) (models.Session, error) {
	log := logger.FromContext(ctx)

	value, err := s.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Session{}, ErrSessionNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*redisSessionStore.FindSession").Msg("error reading session")
		return models.Session{}, fmt.Errorf("error reading session: %w", err)
	}

	var session models.Session
	if err = json.Unmarshal(value, &session); err != nil {
		log.Err(err).Str("func", "*redisSessionStore.FindSession").Msg("error decoding session")
		return models.Session{}, fmt.Errorf("error decoding session: %w", err)
	}

	return session, nil
}

func (s *redisSessionStore) DeleteSession(ctx context.Context, sessionID string) error {
	session, err := s.FindSession(ctx, sessionID)
	if errors.Is(err, ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, sessionKey(sessionID))
	pipe.SRem(ctx, userSessionsKey(session.UserID), sessionID)
	if _, err = pipe.Exec(ctx); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*redisSessionStore.DeleteSession").Msg("error deleting session")
		return fmt.Errorf("error deleting session: %w", err)
	}

	return nil
}

func (s *redisSessionStore) DeleteUserSessions(ctx context.Context, userID int64, keepSessionID string) error {
	log := logger.FromContext(ctx)
	indexKey := userSessionsKey(userID)

	ids, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		log.Err(err).Str("func", "*redisSessionStore.DeleteUserSessions").Msg("error listing user sessions")
		return fmt.Errorf("error listing user sessions: %w", err)
	}

	pipe := s.client.TxPipeline()
	for _, id := range ids {
		if id == keepSessionID {
			continue
		}
		pipe.Del(ctx, sessionKey(id))
		pipe.SRem(ctx, indexKey, id)
	}
	if pipe.Len() == 0 {
		return nil
	}
	if _, err = pipe.Exec(ctx); err != nil {
		log.Err(err).Str("func", "*redisSessionStore.DeleteUserSessions").Msg("error deleting user sessions")
		return fmt.Errorf("error deleting user sessions: %w", err)
	}

	return nil
}
