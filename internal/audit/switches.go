package audit

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	switchListKey   = "locale_switches"
	switchCountsKey = "locale_switch_counts"
)

// SwitchEvent records a visitor moving from one locale to another.
type SwitchEvent struct {
	From      string    `json:"from,omitempty"`
	To        string    `json:"to"`
	Path      string    `json:"path"`
	IP        string    `json:"ip"`
	UserAgent string    `json:"userAgent"`
	Timestamp time.Time `json:"timestamp"`
}

// SwitchLog appends switch events to a capped Redis list and keeps a
// per-locale counter.
type SwitchLog struct {
	Redis  *redis.Client
	MaxLen int64
}

func (a *SwitchLog) Record(ctx context.Context, e SwitchEvent) error {
	e.Timestamp = time.Now().UTC()
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}

	pipe := a.Redis.Pipeline()
	pipe.RPush(ctx, switchListKey, data)
	if a.MaxLen > 0 {
		pipe.LTrim(ctx, switchListKey, -a.MaxLen, -1)
	}
	pipe.HIncrBy(ctx, switchCountsKey, e.To, 1)

	_, err = pipe.Exec(ctx)
	return err
}

// Counts returns how many times each locale has been switched to.
func (a *SwitchLog) Counts(ctx context.Context) (map[string]int64, error) {
	vals, err := a.Redis.HGetAll(ctx, switchCountsKey).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(vals))
	for locale, raw := range vals {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		out[locale] = n
	}
	return out, nil
}

// Recent returns up to limit of the newest events, newest first.
func (a *SwitchLog) Recent(ctx context.Context, limit int64) ([]SwitchEvent, error) {
	if limit <= 0 {
		return nil, nil
	}
	raws, err := a.Redis.LRange(ctx, switchListKey, -limit, -1).Result()
	if err != nil {
		return nil, err
	}
	events := make([]SwitchEvent, 0, len(raws))
	for i := len(raws) - 1; i >= 0; i-- {
		var e SwitchEvent
		if err := json.Unmarshal([]byte(raws[i]), &e); err != nil {
			continue
		}
		events = append(events, e)
	}
	return events, nil
}
