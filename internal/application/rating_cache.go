package application

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ratingCache keeps computed title ratings in Redis. Entries wrap the
// nullable value so a cached "no reviews yet" is distinguishable from a
// miss. Without a client every operation is a no-op and reads fall
// through to SQL; cache errors are logged, never surfaced.
type ratingCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *logrus.Logger
}

type cachedRating struct {
	Rating *float64 `json:"rating"`
}

func (c ratingCache) key(titleID int64) string {
	return "title:rating:" + strconv.FormatInt(titleID, 10)
}

func (c ratingCache) get(ctx context.Context, titleID int64) (*float64, bool) {
	if c.rdb == nil {
		return nil, false
	}
	b, err := c.rdb.Get(ctx, c.key(titleID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.warn(err, titleID, "rating cache read failed")
		return nil, false
	}
	var entry cachedRating
	if err := json.Unmarshal(b, &entry); err != nil {
		c.warn(err, titleID, "rating cache entry corrupt")
		return nil, false
	}
	return entry.Rating, true
}

func (c ratingCache) put(ctx context.Context, titleID int64, rating *float64) {
	if c.rdb == nil {
		return
	}
	b, err := json.Marshal(cachedRating{Rating: rating})
	if err != nil {
		c.warn(err, titleID, "rating cache encode failed")
		return
	}
	if err := c.rdb.Set(ctx, c.key(titleID), b, c.ttl).Err(); err != nil {
		c.warn(err, titleID, "rating cache write failed")
	}
}

func (c ratingCache) drop(ctx context.Context, titleID int64) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, c.key(titleID)).Err(); err != nil {
		c.warn(err, titleID, "rating cache invalidation failed")
	}
}

func (c ratingCache) warn(err error, titleID int64, msg string) {
	if c.log != nil {
		c.log.WithError(err).WithField("title_id", titleID).Warn(msg)
	}
}
