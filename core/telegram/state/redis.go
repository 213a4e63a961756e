package state

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"log/slog"

	"github.com/redis/go-redis/v9"
	tele "gopkg.in/telebot.v4"

	"github.com/xuelxng/exchange-bot/core/logger"
	tghelpers "github.com/xuelxng/exchange-bot/core/telegram/helpers"
)

const (
	defaultKeyPrefix = "fsm:"
	redisOpTimeout   = 2 * time.Second
)

// RedisOptions configure the Redis-backed Manager.
type RedisOptions struct {
	// KeyPrefix defaults to "fsm:".
	KeyPrefix string
	// TTL expires abandoned sessions; zero keeps them forever.
	TTL time.Duration
}

type redisManager struct {
	rdb    redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRedisManager constructs a Manager that persists sessions in Redis, so
// dialogues survive bot restarts. Backend failures degrade to an idle
// session and are logged, never surfaced to the user.
func NewRedisManager(rdb redis.UniversalClient, opts RedisOptions) Manager {
	prefix := opts.KeyPrefix
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &redisManager{rdb: rdb, prefix: prefix, ttl: opts.TTL}
}

func (m *redisManager) key(userID int64) string {
	return m.prefix + strconv.FormatInt(userID, 10)
}

func (m *redisManager) load(userID int64) Session {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	raw, err := m.rdb.Get(ctx, m.key(userID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.TG.Warn("session load failed",
				slog.String("event", "fsm.load"),
				slog.Int64("user_id", userID),
				slog.String("err", err.Error()),
			)
		}
		return NewSession()
	}

	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		logger.TG.Warn("session decode failed",
			slog.String("event", "fsm.load"),
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return NewSession()
	}
	if sess.State == "" {
		sess.State = Idle
	}
	if sess.Data == nil {
		sess.Data = make(map[string]string)
	}
	return sess
}

func (m *redisManager) store(userID int64, sess Session) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	raw, err := json.Marshal(sess)
	if err != nil {
		logger.TG.Error("session encode failed",
			slog.String("event", "fsm.store"),
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return
	}
	if err := m.rdb.Set(ctx, m.key(userID), raw, m.ttl).Err(); err != nil {
		logger.TG.Warn("session store failed",
			slog.String("event", "fsm.store"),
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
	}
}

func (m *redisManager) Session(userID int64) Session {
	return m.load(userID)
}

func (m *redisManager) SetState(userID int64, st State) {
	sess := m.load(userID)
	sess.State = st
	m.store(userID, sess)
}

func (m *redisManager) Current(userID int64) State {
	return m.load(userID).State
}

func (m *redisManager) InProgress(userID int64) bool {
	return m.Current(userID) != Idle
}

func (m *redisManager) Set(userID int64, key, value string) {
	sess := m.load(userID)
	sess.Data[key] = value
	m.store(userID, sess)
}

func (m *redisManager) SetInt(userID int64, key string, value int) {
	m.Set(userID, key, strconv.Itoa(value))
}

func (m *redisManager) Get(userID int64, key string) (string, bool) {
	v, ok := m.load(userID).Data[key]
	return v, ok
}

func (m *redisManager) GetInt(userID int64, key string) (int, bool) {
	raw, ok := m.Get(userID, key)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (m *redisManager) Drop(userID int64, key string) {
	sess := m.load(userID)
	if _, ok := sess.Data[key]; !ok {
		return
	}
	delete(sess.Data, key)
	m.store(userID, sess)
}

func (m *redisManager) Reset(userID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	if err := m.rdb.Del(ctx, m.key(userID)).Err(); err != nil {
		logger.TG.Warn("session reset failed",
			slog.String("event", "fsm.reset"),
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
	}
}

func (m *redisManager) Dispatch(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	current := m.Current(sender.ID)
	ctx := tghelpers.BuildContext(c)
	logger.Debug(ctx, "tg", "fsm.dispatch",
		slog.String("status", "ok"),
		slog.Int64("user_id", sender.ID),
		slog.String("state", string(current)),
	)
	if handler, ok := handlerFor(current); ok {
		return handler(c)
	}
	return nil
}
