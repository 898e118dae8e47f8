package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"eventteam/internal/http-api/models"

	"github.com/redis/go-redis/v9"
)

type sessionRedisRepository struct {
	client *redis.Client
}

// NewRedisClient parses url, applies the password override and verifies the connection.
func NewRedisClient(ctx context.Context, url, password string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return rdb, nil
}

// NewSessionRedisRepository stores each session as a hash that expires with it.
// A per-user set indexes tokens so all of a user's sessions can be dropped.
func NewSessionRedisRepository(client *redis.Client) SessionRepository {
	return &sessionRedisRepository{client: client}
}

func sessionKey(token string) string {
	return "session:" + token
}

func userSessionsKey(userID int64) string {
	return fmt.Sprintf("session:user:%d", userID)
}

func (r *sessionRedisRepository) Create(ctx context.Context, session *models.Session) error {
	key := sessionKey(session.Token)
	fields := map[string]any{
		"user_id":    session.UserID,
		"username":   session.Username,
		"role":       string(session.Role),
		"created_at": session.CreatedAt.Format(time.RFC3339Nano),
		"expires_at": session.ExpiresAt.Format(time.RFC3339Nano),
	}

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, key, fields)
	pipe.ExpireAt(ctx, key, session.ExpiresAt)
	pipe.SAdd(ctx, userSessionsKey(session.UserID), session.Token)
	pipe.ExpireAt(ctx, userSessionsKey(session.UserID), session.ExpiresAt)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (r *sessionRedisRepository) Find(ctx context.Context, token string) (*models.Session, error) {
	vals, err := r.client.HGetAll(ctx, sessionKey(token)).Result()
	if err != nil {
		return nil, err
	}
	if len(vals) == 0 {
		return nil, ErrSessionNotFound
	}

	userID, err := strconv.ParseInt(vals["user_id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("corrupt session %s: %w", token, err)
	}
	createdAt, _ := time.Parse(time.RFC3339Nano, vals["created_at"])
	expiresAt, err := time.Parse(time.RFC3339Nano, vals["expires_at"])
	if err != nil {
		return nil, fmt.Errorf("corrupt session %s: %w", token, err)
	}

	return &models.Session{
		Token:     token,
		UserID:    userID,
		Username:  vals["username"],
		Role:      models.Role(vals["role"]),
		CreatedAt: createdAt,
		ExpiresAt: expiresAt,
	}, nil
}

// Delete is a no-op for an unknown token. A hash with an unreadable user id is still removed.
func (r *sessionRedisRepository) Delete(ctx context.Context, token string) error {
	raw, err := r.client.HGet(ctx, sessionKey(token), "user_id").Result()
	if err != nil && err != redis.Nil {
		return err
	}
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, sessionKey(token))
	if userID, parseErr := strconv.ParseInt(raw, 10, 64); err == nil && parseErr == nil {
		pipe.SRem(ctx, userSessionsKey(userID), token)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (r *sessionRedisRepository) DeleteByUser(ctx context.Context, userID int64) error {
	tokens, err := r.client.SMembers(ctx, userSessionsKey(userID)).Result()
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(tokens)+1)
	for _, t := range tokens {
		keys = append(keys, sessionKey(t))
	}
	keys = append(keys, userSessionsKey(userID))
	return r.client.Del(ctx, keys...).Err()
}

// DeleteExpired is a no-op: Redis expires the keys itself.
func (r *sessionRedisRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}
