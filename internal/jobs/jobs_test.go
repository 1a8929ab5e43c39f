package jobs

import (
	"os"
	"testing"

	"github.com/crest365-hub/Telegram-bot/pkg/errors"
	"github.com/crest365-hub/Telegram-bot/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

type fakeNotifier struct {
	sent map[int64]string
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{sent: map[int64]string{}}
}

func (n *fakeNotifier) Notify(userID int64, text string) {
	n.sent[userID] = text
}

type fakeEvicter struct {
	evicted []int64
	panics  bool
}

func (e *fakeEvicter) EvictStale() []int64 {
	if e.panics {
		panic("queue gone")
	}
	return e.evicted
}

type fakeDrawer struct {
	winner int64
	drawn  bool
	err    error
	panics bool
}

func (d *fakeDrawer) DrawWinner() (int64, bool, error) {
	if d.panics {
		panic("pool gone")
	}
	return d.winner, d.drawn, d.err
}

func TestQueueEvictionJob_NotifiesEveryEvictedUser(t *testing.T) {
	notifier := newFakeNotifier()
	job := NewQueueEvictionJob(&fakeEvicter{evicted: []int64{1, 2, 3}}, notifier)

	job.Run()

	assert.Len(t, notifier.sent, 3)
	for _, id := range []int64{1, 2, 3} {
		assert.Contains(t, notifier.sent[id], "/match")
	}
}

func TestQueueEvictionJob_EmptySweepIsQuiet(t *testing.T) {
	notifier := newFakeNotifier()
	NewQueueEvictionJob(&fakeEvicter{}, notifier).Run()
	assert.Empty(t, notifier.sent)
}

func TestQueueEvictionJob_RecoversFromPanic(t *testing.T) {
	notifier := newFakeNotifier()
	job := NewQueueEvictionJob(&fakeEvicter{panics: true}, notifier)

	assert.NotPanics(t, job.Run)
	assert.Empty(t, notifier.sent)
}

func TestLotteryDrawJob_NotifiesWinner(t *testing.T) {
	notifier := newFakeNotifier()
	job := NewLotteryDrawJob(&fakeDrawer{winner: 7, drawn: true}, notifier, 100)

	job.Run()

	assert.Len(t, notifier.sent, 1)
	assert.Contains(t, notifier.sent[7], "100")
}

func TestLotteryDrawJob_EmptyPoolIsQuiet(t *testing.T) {
	notifier := newFakeNotifier()
	NewLotteryDrawJob(&fakeDrawer{}, notifier, 100).Run()
	assert.Empty(t, notifier.sent)
}

func TestLotteryDrawJob_DrawErrorIsQuiet(t *testing.T) {
	notifier := newFakeNotifier()
	drawer := &fakeDrawer{err: errors.New(errors.ErrCodeInternalError, "db down")}
	NewLotteryDrawJob(drawer, notifier, 100).Run()
	assert.Empty(t, notifier.sent)
}

func TestLotteryDrawJob_RecoversFromPanic(t *testing.T) {
	notifier := newFakeNotifier()
	job := NewLotteryDrawJob(&fakeDrawer{panics: true}, notifier, 100)

	assert.NotPanics(t, job.Run)
	assert.Empty(t, notifier.sent)
}
