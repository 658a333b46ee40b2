package store

import (
	"log/slog"
	"net/url"
	"time"

	"github.com/layarproject/layar/internal/domain"
)

const (
	unlockKey = "share_unlock"

	// UnlockDuration is how long one completed share keeps content open.
	UnlockDuration = 24 * time.Hour

	// DefaultRevealDelay is how long after mount the share prompt stays
	// hidden.
	DefaultRevealDelay = 120 * time.Second

	// DefaultConfirmCountdown is the friction window between clicking a
	// share action and being allowed to confirm it.
	DefaultConfirmCountdown = 8 * time.Second
)

type unlockRecord struct {
	Timestamp int64 `json:"timestamp"` // epoch milliseconds
}

// Unlock is the time-gated share-unlock flag: a single timestamp record that
// counts as unlocked for 24 hours. Expired records are lazily deleted on read.
type Unlock struct {
	store    Store
	logger   *slog.Logger
	duration time.Duration
	now      func() time.Time
}

// NewUnlock creates the unlock flag over the given store.
func NewUnlock(s Store, logger *slog.Logger) *Unlock {
	if logger == nil {
		logger = slog.Default()
	}
	return &Unlock{store: s, logger: logger, duration: UnlockDuration, now: time.Now}
}

// Unlocked reports whether a share completed within the unlock window. A
// stale record is deleted on the way out.
func (u *Unlock) Unlocked() bool {
	var rec unlockRecord
	if !u.store.Get(unlockKey, &rec) {
		return false
	}
	if u.now().UnixMilli()-rec.Timestamp > u.duration.Milliseconds() {
		u.store.Delete(unlockKey)
		return false
	}
	return true
}

// Set stamps the unlock record with the current time, starting a fresh
// 24-hour window.
func (u *Unlock) Set() {
	rec := unlockRecord{Timestamp: u.now().UnixMilli()}
	if err := u.store.Set(unlockKey, rec); err != nil {
		u.logger.Error("failed to save unlock state", "error", err)
	}
}

// ShareTarget is one of the social share actions the gate offers.
type ShareTarget string

const (
	ShareWhatsApp ShareTarget = "whatsapp"
	ShareFacebook ShareTarget = "facebook"
	ShareTwitter  ShareTarget = "twitter"
)

const shareText = "Watch free movies and series on Layar!"

// ShareURL builds the social-share URL for a target, pointing at siteURL.
func ShareURL(target ShareTarget, siteURL string) string {
	switch target {
	case ShareWhatsApp:
		return "https://wa.me/?text=" + url.QueryEscape(shareText+"\n"+siteURL)
	case ShareFacebook:
		return "https://www.facebook.com/sharer/sharer.php?u=" + url.QueryEscape(siteURL)
	case ShareTwitter:
		return "https://twitter.com/intent/tweet?text=" + url.QueryEscape(shareText) +
			"&url=" + url.QueryEscape(siteURL)
	default:
		return siteURL
	}
}

// GateState is the share-gate lifecycle:
// hidden -> visible -> awaiting confirmation -> unlocked.
type GateState int

const (
	GateHidden GateState = iota
	GateVisible
	GateAwaitingConfirm
	GateUnlocked
)

// Gate drives the share-to-unlock flow. The prompt stays hidden for a reveal
// delay after mount; clicking a share action starts a confirm countdown, and
// confirming only succeeds once the countdown has elapsed. Confirmation is a
// deliberate friction step, not a verification that anything was shared.
type Gate struct {
	unlock           *Unlock
	siteURL          string
	revealDelay      time.Duration
	confirmCountdown time.Duration
	now              func() time.Time

	mountedAt time.Time
	sharedAt  time.Time
	awaiting  bool
}

// NewGate mounts a share gate. Zero durations use the defaults.
func NewGate(unlock *Unlock, siteURL string, revealDelay, confirmCountdown time.Duration) *Gate {
	if revealDelay <= 0 {
		revealDelay = DefaultRevealDelay
	}
	if confirmCountdown <= 0 {
		confirmCountdown = DefaultConfirmCountdown
	}
	g := &Gate{
		unlock:           unlock,
		siteURL:          siteURL,
		revealDelay:      revealDelay,
		confirmCountdown: confirmCountdown,
		now:              unlock.now,
	}
	g.mountedAt = g.now()
	return g
}

// State returns the current gate state.
func (g *Gate) State() GateState {
	if g.unlock.Unlocked() {
		return GateUnlocked
	}
	if g.awaiting {
		return GateAwaitingConfirm
	}
	if g.now().Sub(g.mountedAt) >= g.revealDelay {
		return GateVisible
	}
	return GateHidden
}

// Share records a share action and returns the URL to open. It moves the
// gate into the awaiting-confirmation state and restarts the countdown.
func (g *Gate) Share(target ShareTarget) string {
	g.sharedAt = g.now()
	g.awaiting = true
	return ShareURL(target, g.siteURL)
}

// ConfirmRemaining returns how long until Confirm may succeed. Zero means the
// countdown has elapsed.
func (g *Gate) ConfirmRemaining() time.Duration {
	if !g.awaiting {
		return g.confirmCountdown
	}
	remaining := g.confirmCountdown - g.now().Sub(g.sharedAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Confirm completes the flow, granting the 24-hour unlock. It fails with
// domain.ErrShareNotConfirmed while the countdown is still running, and is
// only valid in the awaiting-confirmation state.
func (g *Gate) Confirm() error {
	if !g.awaiting {
		return domain.ErrShareNotConfirmed
	}
	if g.now().Sub(g.sharedAt) < g.confirmCountdown {
		return domain.ErrShareNotConfirmed
	}
	g.awaiting = false
	g.unlock.Set()
	return nil
}
