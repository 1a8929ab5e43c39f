package telegram

import (
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/crest365-hub/Telegram-bot/internal/config"
	"github.com/crest365-hub/Telegram-bot/internal/handlers"
	"github.com/crest365-hub/Telegram-bot/internal/jobs"
	"github.com/crest365-hub/Telegram-bot/internal/matchmaking"
	"github.com/crest365-hub/Telegram-bot/internal/middleware"
	"github.com/crest365-hub/Telegram-bot/internal/repositories"
	"github.com/crest365-hub/Telegram-bot/internal/services"
	"github.com/crest365-hub/Telegram-bot/pkg/logger"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

type Bot struct {
	api      *tgbotapi.BotAPI
	config   *config.Config
	db       *gorm.DB
	handlers *handlers.HandlerManager
	limiter  *middleware.RateLimiter
	cron     *cron.Cron

	// Worker pool for parallel processing, hashed by user id so each
	// user's updates stay ordered.
	workerChans []chan tgbotapi.Update
	stop        chan struct{}
}

func InitBot(cfg *config.Config, db *gorm.DB) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	if cfg.AppEnv == "development" {
		api.Debug = true
	}

	logger.Info("Authorized on account", "username", api.Self.UserName)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	coinRepo := repositories.NewCoinRepository(db)
	pairingRepo := repositories.NewPairingRepository(db)
	ticketRepo := repositories.NewTicketRepository(db)

	// Initialize services
	economySvc := services.NewEconomyService(cfg, userRepo, coinRepo)
	lotterySvc := services.NewLotteryService(cfg, ticketRepo, coinRepo, economySvc)
	matchmaker := matchmaking.NewMatchmaker(cfg, pairingRepo, economySvc)

	if err := matchmaker.LoadActivePairs(); err != nil {
		return nil, fmt.Errorf("failed to restore pairings: %w", err)
	}

	handlerMgr := handlers.NewHandlerManager(cfg, userRepo, economySvc, lotterySvc, matchmaker)

	workers := cfg.WorkerPool
	if workers < 1 {
		workers = 1
	}

	bot := &Bot{
		api:         api,
		config:      cfg,
		db:          db,
		handlers:    handlerMgr,
		limiter:     middleware.NewRateLimiter(cfg.RateLimitPerUser, time.Minute),
		workerChans: make([]chan tgbotapi.Update, workers),
		stop:        make(chan struct{}),
	}

	// Start workers
	for i := 0; i < workers; i++ {
		bot.workerChans[i] = make(chan tgbotapi.Update, 100)
		go bot.startWorker(bot.workerChans[i])
	}

	// Start update listener
	go bot.startUpdateListener()

	// Start background jobs
	bot.startScheduler(matchmaker, lotterySvc)

	return bot, nil
}

// startScheduler wires the periodic maintenance jobs: queue eviction on a
// short interval, the lottery draw on a long one. cron fires each job for
// the first time only after its interval has elapsed, which gives both
// their initial delay. Failing jobs log and keep their schedule.
func (b *Bot) startScheduler(matchmaker *matchmaking.Matchmaker, lottery *services.LotteryService) {
	b.cron = cron.New()

	evictionSpec := fmt.Sprintf("@every %ds", b.config.EvictionIntervalSeconds)
	if _, err := b.cron.AddJob(evictionSpec, jobs.NewQueueEvictionJob(matchmaker, b)); err != nil {
		logger.Error("Failed to schedule queue eviction", "error", err)
	}

	if _, err := b.cron.AddJob(b.config.LotteryDrawSpec, jobs.NewLotteryDrawJob(lottery, b, b.config.LotteryPayout)); err != nil {
		logger.Error("Failed to schedule lottery draw", "error", err)
	}

	b.cron.Start()
	logger.Info("Scheduler started", "eviction", evictionSpec, "lottery", b.config.LotteryDrawSpec)
}

func (b *Bot) startUpdateListener() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	logger.Info("Starting update listener...")
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-b.stop:
			return
		case update, ok := <-updates:
			if !ok {
				logger.Warn("Update channel closed")
				return
			}
			if update.Message == nil || update.Message.From == nil {
				continue
			}

			userID := update.Message.From.ID
			workerIdx := userID % int64(len(b.workerChans))
			if workerIdx < 0 {
				workerIdx = -workerIdx
			}
			b.workerChans[workerIdx] <- update
		}
	}
}

func (b *Bot) startWorker(updates chan tgbotapi.Update) {
	for update := range updates {
		b.handleUpdate(update)
	}
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Panic in handleUpdate", "error", r)
		}
	}()

	if update.Message != nil {
		b.handleMessage(update.Message)
	}
}

func (b *Bot) handleMessage(message *tgbotapi.Message) {
	userID := message.From.ID

	if !b.limiter.Allow(userID) {
		logger.Debug("Rate limited", "user_id", userID)
		return
	}

	// Every operation starts from an existing ledger row
	if !message.IsCommand() || message.Command() != "start" {
		if _, err := b.handlers.Economy.EnsureUser(userID, handleOf(message.From)); err != nil {
			logger.Error("Failed to ensure user", "user_id", userID, "error", err)
			b.SendMessage(userID, "❌ Something went wrong, please try again.", nil)
			return
		}
	}

	if message.IsCommand() {
		b.handleCommand(message.Command(), strings.Fields(message.CommandArguments()), message)
		return
	}

	if cmd, ok := buttonCommand(message.Text); ok {
		b.handleCommand(cmd, nil, message)
		return
	}

	// Anything else is chat content for the partner
	b.handlers.HandleChatMessage(message, b)
}

func (b *Bot) handleCommand(command string, args []string, message *tgbotapi.Message) {
	userID := message.From.ID

	logger.Debug("Handling command", "user_id", userID, "command", command)

	switch command {
	case "start":
		b.handlers.HandleStart(userID, handleOf(message.From), b)
		b.SendMessage(userID, "⌨️ Use the menu below or type commands directly.", MainMenuKeyboard())
	case "profile":
		b.handlers.HandleSetProfile(userID, args, b)
	case "match":
		b.handlers.HandleMatch(userID, args, b)
	case "fastmatch":
		b.handlers.HandleFastMatch(userID, b)
	case "leave", "cancel":
		b.handlers.HandleLeave(userID, b)
	case "balance":
		b.handlers.HandleBalance(userID, b)
	case "daily":
		b.handlers.HandleDaily(userID, b)
	case "gift":
		b.handlers.HandleGift(userID, args, b)
	case "ticket":
		b.handlers.HandleBuyTicket(userID, b)
	case "top":
		b.handlers.HandleTop(userID, b)
	case "history":
		b.handlers.HandleHistory(userID, b)
	case "draw":
		b.handlers.HandleDraw(userID, b.isAdmin(userID), b)
	case "vip":
		b.handlers.HandleSetVIP(userID, b.isAdmin(userID), args, b)
	case "help":
		b.SendMessage(userID, helpText, MainMenuKeyboard())
	default:
		b.SendMessage(userID, "🤔 Unknown command. Try /help.", nil)
	}
}

const helpText = `📖 Commands:
/match [gender] [age] — find a chat partner
/fastmatch — pay to skip the line
/leave — end the chat or stop searching
/profile <gender> <age> — set your profile (use - to clear)
/balance — your coins
/daily — claim the daily bonus
/gift <id> <amount> — send coins to a friend
/ticket — buy a lottery ticket
/top — coin leaderboard
/history — recent coin activity`

func (b *Bot) isAdmin(userID int64) bool {
	return b.config.AdminTgID != 0 && userID == b.config.AdminTgID
}

// SendMessage delivers a message best-effort: failures are logged and
// swallowed, never surfaced to the calling operation.
func (b *Bot) SendMessage(chatID int64, text string, keyboard interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	if keyboard != nil {
		msg.ReplyMarkup = keyboard
	}

	if _, err := b.api.Send(msg); err != nil {
		logger.Warn("Failed to send message", "chat_id", chatID, "error", err)
	}
}

// Notify implements jobs.Notifier
func (b *Bot) Notify(userID int64, text string) {
	b.SendMessage(userID, text, nil)
}

// GetAPI exposes the underlying client for media forwarding
func (b *Bot) GetAPI() interface{} {
	return b.api
}

// Stop shuts down the scheduler and the update loop
func (b *Bot) Stop() {
	if b.cron != nil {
		b.cron.Stop()
	}
	close(b.stop)
	b.api.StopReceivingUpdates()
}

func handleOf(user *tgbotapi.User) string {
	if user.UserName != "" {
		return user.UserName
	}
	return strings.TrimSpace(user.FirstName + " " + user.LastName)
}
