package jobs

import (
	"github.com/crest365-hub/Telegram-bot/pkg/logger"
)

// Notifier delivers best-effort messages to users. Implementations swallow
// delivery failures; a missed notification never rolls anything back.
type Notifier interface {
	Notify(userID int64, text string)
}

// Evicter removes stale entries from the waiting pool and reports who was
// dropped.
type Evicter interface {
	EvictStale() []int64
}

// QueueEvictionJob sweeps stale entries out of the waiting pool on a fixed
// interval.
type QueueEvictionJob struct {
	evicter  Evicter
	notifier Notifier
}

func NewQueueEvictionJob(evicter Evicter, notifier Notifier) *QueueEvictionJob {
	return &QueueEvictionJob{evicter: evicter, notifier: notifier}
}

func (j *QueueEvictionJob) Run() {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Panic in queue eviction job", "error", r)
		}
	}()

	evicted := j.evicter.EvictStale()
	for _, userID := range evicted {
		j.notifier.Notify(userID, "⌛️ No partner showed up in time, your search was stopped. Try /match again!")
	}
}
