package jobs

import (
	"fmt"

	"github.com/crest365-hub/Telegram-bot/pkg/logger"
)

// Drawer runs one lottery draw, reporting the winner and whether a draw
// happened at all.
type Drawer interface {
	DrawWinner() (int64, bool, error)
}

// LotteryDrawJob runs the scheduled lottery draw. It shares DrawWinner with
// the manual admin path, so both have identical semantics and cannot
// double-draw.
type LotteryDrawJob struct {
	lottery  Drawer
	notifier Notifier
	payout   int64
}

func NewLotteryDrawJob(lottery Drawer, notifier Notifier, payout int64) *LotteryDrawJob {
	return &LotteryDrawJob{lottery: lottery, notifier: notifier, payout: payout}
}

func (j *LotteryDrawJob) Run() {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Panic in lottery draw job", "error", r)
		}
	}()

	winnerID, drawn, err := j.lottery.DrawWinner()
	if err != nil {
		logger.Error("Scheduled lottery draw failed", "error", err)
		return
	}
	if !drawn {
		logger.Debug("Scheduled lottery draw skipped, ticket pool empty")
		return
	}

	j.notifier.Notify(winnerID, fmt.Sprintf("🎉 You won the lottery! %d coins have been added to your balance.", j.payout))
}
