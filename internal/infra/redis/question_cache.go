package redis

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"quizzapp-service/internal/app"
	"quizzapp-service/internal/domain"
	"quizzapp-service/internal/logging"
)

const listKey = "questions:all"

// QuestionCache is a read-through cache in front of another question repository.
// Entries are stored as JSON strings:
//
//	SET question:{id}   {question}
//	SET questions:all   [{question}, ...]
//
// Writes go to the backing repository first and then drop the affected keys.
type QuestionCache struct {
	client *redis.Client
	next   app.QuestionRepository
	ttl    time.Duration
	sf     singleflight.Group

	rndMu sync.Mutex
	rnd   *rand.Rand
}

func NewQuestionCache(client *redis.Client, next app.QuestionRepository, ttl time.Duration) *QuestionCache {
	return &QuestionCache{
		client: client,
		next:   next,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *QuestionCache) List(ctx context.Context) ([]domain.Question, error) {
	var cached []domain.Question
	if c.lookup(ctx, listKey, &cached) {
		return cached, nil
	}
	result, err, _ := c.sf.Do(listKey, func() (interface{}, error) {
		list, err := c.next.List(ctx)
		if err != nil {
			return nil, err
		}
		c.store(ctx, listKey, list)
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func (c *QuestionCache) Get(ctx context.Context, id string) (domain.Question, error) {
	key := questionKey(id)
	var cached domain.Question
	if c.lookup(ctx, key, &cached) {
		return cached, nil
	}
	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		q, err := c.next.Get(ctx, id)
		if err != nil {
			return domain.Question{}, err
		}
		c.store(ctx, key, q)
		return q, nil
	})
	if err != nil {
		return domain.Question{}, err
	}
	return result.(domain.Question), nil
}

func (c *QuestionCache) Create(ctx context.Context, q domain.Question) error {
	if err := c.next.Create(ctx, q); err != nil {
		return err
	}
	c.invalidate(ctx, listKey)
	return nil
}

func (c *QuestionCache) Replace(ctx context.Context, id string, in domain.QuestionInput) (domain.Question, error) {
	q, err := c.next.Replace(ctx, id, in)
	c.invalidate(ctx, questionKey(id), listKey)
	return q, err
}

func (c *QuestionCache) Delete(ctx context.Context, id string) (domain.Question, error) {
	q, err := c.next.Delete(ctx, id)
	c.invalidate(ctx, questionKey(id), listKey)
	return q, err
}

// lookup reports a cache hit. Redis failures count as misses.
func (c *QuestionCache) lookup(ctx context.Context, key string, dst any) bool {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			l := logging.Ctx(ctx)
			l.Warn().Err(err).Str("key", key).Msg("question cache read failed")
		}
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

func (c *QuestionCache) store(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttlWithJitter()).Err(); err != nil {
		l := logging.Ctx(ctx)
		l.Warn().Err(err).Str("key", key).Msg("question cache write failed")
	}
}

func (c *QuestionCache) invalidate(ctx context.Context, keys ...string) {
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		l := logging.Ctx(ctx)
		l.Warn().Err(err).Strs("keys", keys).Msg("question cache invalidation failed")
	}
}

func questionKey(id string) string {
	return "question:" + id
}

func (c *QuestionCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	c.rndMu.Lock()
	defer c.rndMu.Unlock()
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
