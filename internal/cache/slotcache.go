package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/GlebRadaev/gymslot/internal/domain"
)

const keyPrefix = "gymslot:slots"

// SlotCache holds generated slot windows per equipment and date. Entries die
// at the end of their date; availability is never cached.
type SlotCache struct {
	rdb *redis.Client
	loc *time.Location
	now func() time.Time
}

func NewSlotCache(rdb *redis.Client, loc *time.Location) *SlotCache {
	return &SlotCache{
		rdb: rdb,
		loc: loc,
		now: time.Now,
	}
}

func (c *SlotCache) key(equipmentID int64, date time.Time) string {
	return fmt.Sprintf("%s:%s:%d", keyPrefix, date.In(c.loc).Format(time.DateOnly), equipmentID)
}

func (c *SlotCache) Get(ctx context.Context, equipmentID int64, date time.Time) ([]domain.Slot, bool, error) {
	data, err := c.rdb.Get(ctx, c.key(equipmentID, date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var slots []domain.Slot
	if err := json.Unmarshal(data, &slots); err != nil {
		zap.L().Warn("dropping unreadable slot cache entry", zap.Int64("equipment_id", equipmentID), zap.Error(err))
		return nil, false, nil
	}
	return slots, true, nil
}

func (c *SlotCache) Set(ctx context.Context, equipmentID int64, date time.Time, slots []domain.Slot) error {
	ttl := c.ttl(date)
	if ttl <= 0 {
		return nil
	}
	data, err := json.Marshal(slots)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.key(equipmentID, date), data, ttl).Err()
}

func (c *SlotCache) Invalidate(ctx context.Context, equipmentID int64, date time.Time) error {
	return c.rdb.Del(ctx, c.key(equipmentID, date)).Err()
}

func (c *SlotCache) ttl(date time.Time) time.Duration {
	d := date.In(c.loc)
	endOfDay := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, c.loc).AddDate(0, 0, 1)
	return endOfDay.Sub(c.now())
}

// Nop is used when no redis is configured.
type Nop struct{}

func (Nop) Get(context.Context, int64, time.Time) ([]domain.Slot, bool, error) {
	return nil, false, nil
}

func (Nop) Set(context.Context, int64, time.Time, []domain.Slot) error {
	return nil
}

func (Nop) Invalidate(context.Context, int64, time.Time) error {
	return nil
}
