package redis

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"aquasentry-srv/internal/digest/repository"
	"aquasentry-srv/internal/model"
	pkgRedis "aquasentry-srv/pkg/redis"

	"github.com/friendsofgo/errors"
	goredis "github.com/redis/go-redis/v9"
)

// ErrTxContention is returned when every optimistic retry lost the race.
var ErrTxContention = errors.New("digest transaction retries exhausted")

func (r *implRepository) Detail(ctx context.Context, id string) (model.DigestRecord, error) {
	raw, err := r.redis.Get(ctx, digestKey(id))
	if err != nil {
		if err == pkgRedis.ErrKeyNotFound {
			return model.DigestRecord{}, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "internal.digest.repository.redis.Detail.Get: %v", err)
		return model.DigestRecord{}, errors.Wrap(err, "get digest")
	}

	var rec model.DigestRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		r.l.Errorf(ctx, "internal.digest.repository.redis.Detail.Unmarshal: %v", err)
		return model.DigestRecord{}, errors.Wrap(err, "decode digest")
	}
	return rec, nil
}

func (r *implRepository) DetailByToken(ctx context.Context, token string) (model.DigestRecord, error) {
	id, err := r.redis.Get(ctx, tokenKey(token))
	if err != nil {
		if err == pkgRedis.ErrKeyNotFound {
			return model.DigestRecord{}, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "internal.digest.repository.redis.DetailByToken.Get: %v", err)
		return model.DigestRecord{}, errors.Wrap(err, "get token index")
	}
	return r.Detail(ctx, id)
}

// Mutate applies fn to the record under an optimistic WATCH transaction
// and retries a bounded number of times when a concurrent writer
// invalidates the read.
func (r *implRepository) Mutate(ctx context.Context, id string, fn repository.MutateFunc) error {
	key := digestKey(id)

	for attempt := 0; attempt < r.txRetries; attempt++ {
		err := r.redis.Watch(ctx, func(tx *goredis.Tx) error {
			var (
				rec   model.DigestRecord
				found bool
			)

			raw, err := tx.Get(ctx, key).Result()
			switch {
			case err == goredis.Nil:
				found = false
			case err != nil:
				return errors.Wrap(err, "read digest")
			default:
				found = true
				if err := json.Unmarshal([]byte(raw), &rec); err != nil {
					return errors.Wrap(err, "decode digest")
				}
			}

			write, err := fn(&rec, found)
			if err != nil {
				return err
			}
			if !write {
				return nil
			}

			payload, err := json.Marshal(rec)
			if err != nil {
				return errors.Wrap(err, "encode digest")
			}

			_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
				pipe.Set(ctx, key, payload, 0)
				if !found {
					pipe.Set(ctx, tokenKey(rec.AckToken), rec.ID, 0)
					pipe.SAdd(ctx, recipientKey(rec.RecipientID), rec.ID)
				}
				if rec.IsAcknowledged || rec.SendAttempts >= rec.MaxAttempts {
					pipe.ZRem(ctx, pendingKey, rec.ID)
				} else {
					pipe.ZAdd(ctx, pendingKey, goredis.Z{
						Score:  float64(rec.CooldownUntil.Unix()),
						Member: rec.ID,
					})
				}
				return nil
			})
			return err
		}, key)

		if err == goredis.TxFailedErr {
			r.l.Warnf(ctx, "internal.digest.repository.redis.Mutate.TxFailed: id=%s attempt=%d", id, attempt+1)
			continue
		}
		return err
	}

	return ErrTxContention
}

// ListEligible returns up to limit digests whose cooldown score has
// elapsed and that still pass the eligibility check. Stale pending
// members are pruned along the way.
func (r *implRepository) ListEligible(ctx context.Context, now time.Time, limit int64) ([]model.DigestRecord, error) {
	client := r.redis.GetClient()

	ids, err := client.ZRangeByScore(ctx, pendingKey, &goredis.ZRangeBy{
		Min:   "-inf",
		Max:   formatScore(now),
		Count: limit,
	}).Result()
	if err != nil {
		r.l.Errorf(ctx, "internal.digest.repository.redis.ListEligible.ZRangeByScore: %v", err)
		return nil, errors.Wrap(err, "range pending digests")
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var (
		recs  []model.DigestRecord
		stale []interface{}
	)
	for _, id := range ids {
		rec, err := r.Detail(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				stale = append(stale, id)
				continue
			}
			return nil, err
		}
		if !rec.IsSendEligible(now) {
			if rec.IsAcknowledged || rec.SendAttempts >= rec.MaxAttempts {
				stale = append(stale, id)
			}
			continue
		}
		recs = append(recs, rec)
	}

	if len(stale) > 0 {
		if err := client.ZRem(ctx, pendingKey, stale...).Err(); err != nil {
			r.l.Warnf(ctx, "internal.digest.repository.redis.ListEligible.ZRem: %v", err)
		}
	}

	return recs, nil
}

func (r *implRepository) ListByRecipient(ctx context.Context, recipientID string) ([]model.DigestRecord, error) {
	client := r.redis.GetClient()

	ids, err := client.SMembers(ctx, recipientKey(recipientID)).Result()
	if err != nil {
		r.l.Errorf(ctx, "internal.digest.repository.redis.ListByRecipient.SMembers: %v", err)
		return nil, errors.Wrap(err, "list recipient digests")
	}

	var recs []model.DigestRecord
	for _, id := range ids {
		rec, err := r.Detail(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return nil, err
		}
		recs = append(recs, rec)
	}

	return recs, nil
}

func formatScore(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10)
}
