package matchmaking

import (
	"time"

	"github.com/crest365-hub/Telegram-bot/internal/config"
	"github.com/crest365-hub/Telegram-bot/internal/models"
	"github.com/crest365-hub/Telegram-bot/internal/repositories"
	"github.com/crest365-hub/Telegram-bot/internal/services"
	"github.com/crest365-hub/Telegram-bot/pkg/logger"
)

// MatchResult describes the outcome of a match request
type MatchResult struct {
	Matched   bool
	PartnerID int64

	// Previous pairing vacated by this request, so the caller can notify
	// the abandoned partner.
	HadPrevious     bool
	PreviousPartner int64
}

// Matchmaker drives the waiting queue and the pairing state. Queue
// decisions are atomic inside Queue; pairing mutations write through to
// the store and the in-memory pair table together.
type Matchmaker struct {
	cfg      *config.Config
	queue    *Queue
	pairs    *PairTable
	pairings *repositories.PairingRepository
	economy  *services.EconomyService
}

func NewMatchmaker(cfg *config.Config, pairings *repositories.PairingRepository, economy *services.EconomyService) *Matchmaker {
	return &Matchmaker{
		cfg:      cfg,
		queue:    NewQueue(),
		pairs:    NewPairTable(),
		pairings: pairings,
		economy:  economy,
	}
}

// LoadActivePairs rebuilds the routing map from persisted pairing rows.
// Called once at startup.
func (m *Matchmaker) LoadActivePairs() error {
	rows, err := m.pairings.All()
	if err != nil {
		return err
	}

	links := make(map[int64]int64, len(rows))
	for _, row := range rows {
		links[row.UserID] = row.PartnerID
	}
	m.pairs.Load(links)

	logger.Info("Restored active pairings", "count", len(rows)/2)
	return nil
}

// Compatible reports whether two waiting entries accept each other. Gender
// fits when either side asks for any or both explicit preferences are
// equal; age fits when either preference is absent or the gap is within
// the configured maximum.
func (m *Matchmaker) Compatible(a, b *WaitingEntry) bool {
	genderOK := a.GenderPref == "" || a.GenderPref == PrefAny ||
		b.GenderPref == "" || b.GenderPref == PrefAny ||
		a.GenderPref == b.GenderPref
	if !genderOK {
		return false
	}

	if a.AgePref == nil || b.AgePref == nil {
		return true
	}
	gap := *a.AgePref - *b.AgePref
	if gap < 0 {
		gap = -gap
	}
	return gap <= m.cfg.MaxAgeGap
}

// RequestMatch searches the waiting pool oldest-first for a compatible
// partner. On a match both users are paired; otherwise the requester waits
// at the tail. A user requesting a match leaves any current pairing first.
func (m *Matchmaker) RequestMatch(userID int64, genderPref string, agePref *int) (MatchResult, error) {
	result, err := m.leaveCurrent(userID)
	if err != nil {
		return result, err
	}

	entry := &WaitingEntry{
		UserID:     userID,
		GenderPref: genderPref,
		AgePref:    agePref,
		EnqueuedAt: time.Now(),
	}

	partner, matched := m.queue.MatchOrEnqueue(entry, m.Compatible)
	if !matched {
		return result, nil
	}

	if err := m.pair(userID, partner); err != nil {
		return result, err
	}

	result.Matched = true
	result.PartnerID = partner.UserID
	return result, nil
}

// FastMatch charges the fast-match fee, then pairs with the oldest waiting
// user regardless of preferences. With an empty pool the requester becomes
// the new queue head. Returns charged=false with no queue effect when the
// fee cannot be paid.
func (m *Matchmaker) FastMatch(userID int64) (result MatchResult, charged bool, err error) {
	charged, err = m.economy.Debit(userID, m.cfg.FastMatchCost, models.TxTypeFastMatch, "fast match fee")
	if err != nil || !charged {
		return MatchResult{}, charged, err
	}

	result, err = m.leaveCurrent(userID)
	if err != nil {
		return result, true, err
	}

	entry := &WaitingEntry{UserID: userID, EnqueuedAt: time.Now()}
	partner, matched := m.queue.TakeHeadOrEnqueueFront(entry)
	if !matched {
		return result, true, nil
	}

	if err := m.pair(userID, partner); err != nil {
		return result, true, err
	}

	result.Matched = true
	result.PartnerID = partner.UserID
	return result, true, nil
}

// Leave removes the user from any active pairing and from the waiting
// pool. Returns the vacated partner id so the caller can notify them; a
// user with no active state is a no-op.
func (m *Matchmaker) Leave(userID int64) (partnerID int64, hadPartner bool, err error) {
	m.queue.Remove(userID)

	partnerID, hadPartner, err = m.pairings.DeletePair(userID)
	if err != nil {
		return 0, false, err
	}
	if hadPartner {
		m.pairs.Delete(userID)
	}
	return partnerID, hadPartner, nil
}

// EvictStale removes waiting entries older than the configured staleness
// window and returns the evicted user ids.
func (m *Matchmaker) EvictStale() []int64 {
	cutoff := time.Now().Add(-m.cfg.QueueStaleWindow())
	evicted := m.queue.EvictBefore(cutoff)
	if len(evicted) > 0 {
		logger.Debug("Evicted stale queue entries", "count", len(evicted))
	}
	return evicted
}

// PartnerOf returns the active partner for message routing
func (m *Matchmaker) PartnerOf(userID int64) (int64, bool) {
	return m.pairs.Partner(userID)
}

// Waiting reports whether the user is in the queue
func (m *Matchmaker) Waiting(userID int64) bool {
	return m.queue.Contains(userID)
}

// QueueLen returns the current waiting pool size
func (m *Matchmaker) QueueLen() int {
	return m.queue.Len()
}

func (m *Matchmaker) leaveCurrent(userID int64) (MatchResult, error) {
	prev, had, err := m.Leave(userID)
	if err != nil {
		return MatchResult{}, err
	}
	return MatchResult{HadPrevious: had, PreviousPartner: prev}, nil
}

// pair persists the new link and updates the routing map. On a store
// failure the vacated partner is put back at the queue head so they are
// not silently dropped.
func (m *Matchmaker) pair(userID int64, partner *WaitingEntry) error {
	if err := m.pairings.CreatePair(userID, partner.UserID, time.Now()); err != nil {
		m.queue.EnqueueFront(partner)
		return err
	}
	m.pairs.Set(userID, partner.UserID)
	logger.Info("Users paired", "user", userID, "partner", partner.UserID)
	return nil
}
