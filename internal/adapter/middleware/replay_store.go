package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// checkoutRecord is what one Idempotency-Key remembers about its checkout.
type checkoutRecord struct {
	BookID   string    `json:"book_id"`
	ReaderID string    `json:"reader_id"`
	Pending  bool      `json:"pending"`
	Status   int       `json:"status,omitempty"`
	Body     []byte    `json:"body,omitempty"`
	SavedAt  time.Time `json:"saved_at"`
}

func (r checkoutRecord) sameCheckout(bookID, readerID string) bool {
	return r.BookID == bookID && r.ReaderID == readerID
}

var errNoRecord = errors.New("no checkout record")

// replayStore keeps checkout records keyed by actor and Idempotency-Key.
type replayStore interface {
	// Reserve writes a pending record unless the key is taken.
	Reserve(ctx context.Context, key string, rec checkoutRecord, hold time.Duration) (bool, error)
	Load(ctx context.Context, key string) (checkoutRecord, error)
	Save(ctx context.Context, key string, rec checkoutRecord, ttl time.Duration) error
	Release(ctx context.Context, key string) error
}

type redisReplayStore struct{ rdb *redis.Client }

func (s redisReplayStore) Reserve(ctx context.Context, key string, rec checkoutRecord, hold time.Duration) (bool, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return false, err
	}
	return s.rdb.SetNX(ctx, key, payload, hold).Result()
}

func (s redisReplayStore) Load(ctx context.Context, key string) (checkoutRecord, error) {
	var rec checkoutRecord
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return rec, errNoRecord
	}
	if err != nil {
		return rec, err
	}
	return rec, json.Unmarshal(raw, &rec)
}

func (s redisReplayStore) Save(ctx context.Context, key string, rec checkoutRecord, ttl time.Duration) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, payload, ttl).Err()
}

func (s redisReplayStore) Release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}

func replayKey(actorID, idemKey string) string {
	return "circ:checkout:" + actorID + ":" + idemKey
}
