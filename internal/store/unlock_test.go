package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layarproject/layar/internal/domain"
	"github.com/layarproject/layar/internal/log"
)

func newMemUnlock(t *testing.T) *Unlock {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return NewUnlock(s, log.NullLogger())
}

func TestUnlockedDefaultsFalse(t *testing.T) {
	assert.False(t, newMemUnlock(t).Unlocked())
}

func TestUnlockedWithinWindow(t *testing.T) {
	u := newMemUnlock(t)
	base := time.Now()
	u.now = func() time.Time { return base }
	u.Set()

	u.now = func() time.Time { return base.Add(23 * time.Hour) }
	assert.True(t, u.Unlocked())
}

func TestUnlockedExpiresAndDeletes(t *testing.T) {
	u := newMemUnlock(t)
	base := time.Now()
	u.now = func() time.Time { return base }
	u.Set()

	u.now = func() time.Time { return base.Add(UnlockDuration + time.Minute) }
	assert.False(t, u.Unlocked())

	// The stale record was deleted, not just ignored.
	var rec unlockRecord
	assert.False(t, u.store.Get(unlockKey, &rec))
}

func TestSetRestartsWindow(t *testing.T) {
	u := newMemUnlock(t)
	base := time.Now()
	u.now = func() time.Time { return base }
	u.Set()

	u.now = func() time.Time { return base.Add(20 * time.Hour) }
	u.Set()

	u.now = func() time.Time { return base.Add(30 * time.Hour) }
	assert.True(t, u.Unlocked(), "second share started a fresh 24h window")
}

func TestShareURL(t *testing.T) {
	site := "https://layar.example"
	assert.Contains(t, ShareURL(ShareWhatsApp, site), "https://wa.me/?text=")
	assert.Contains(t, ShareURL(ShareWhatsApp, site), "layar.example")
	assert.Contains(t, ShareURL(ShareFacebook, site), "facebook.com/sharer")
	assert.Contains(t, ShareURL(ShareTwitter, site), "twitter.com/intent/tweet")
	assert.Equal(t, site, ShareURL(ShareTarget("unknown"), site))
}

func TestGateLifecycle(t *testing.T) {
	u := newMemUnlock(t)
	base := time.Now()
	clock := base
	u.now = func() time.Time { return clock }

	g := NewGate(u, "https://layar.example", 120*time.Second, 8*time.Second)
	assert.Equal(t, GateHidden, g.State())

	clock = base.Add(119 * time.Second)
	assert.Equal(t, GateHidden, g.State())

	clock = base.Add(120 * time.Second)
	assert.Equal(t, GateVisible, g.State())

	shareURL := g.Share(ShareWhatsApp)
	assert.Contains(t, shareURL, "wa.me")
	assert.Equal(t, GateAwaitingConfirm, g.State())
	assert.Equal(t, 8*time.Second, g.ConfirmRemaining())

	// Confirming early is rejected and does not unlock.
	clock = clock.Add(5 * time.Second)
	assert.ErrorIs(t, g.Confirm(), domain.ErrShareNotConfirmed)
	assert.Equal(t, 3*time.Second, g.ConfirmRemaining())
	assert.False(t, u.Unlocked())

	clock = clock.Add(3 * time.Second)
	assert.Zero(t, g.ConfirmRemaining())
	require.NoError(t, g.Confirm())
	assert.Equal(t, GateUnlocked, g.State())
	assert.True(t, u.Unlocked())
}

func TestGateConfirmWithoutShare(t *testing.T) {
	u := newMemUnlock(t)
	g := NewGate(u, "https://layar.example", 0, 0)
	assert.ErrorIs(t, g.Confirm(), domain.ErrShareNotConfirmed)
	assert.False(t, u.Unlocked())
}

func TestGateShareRestartsCountdown(t *testing.T) {
	u := newMemUnlock(t)
	base := time.Now()
	clock := base
	u.now = func() time.Time { return clock }

	g := NewGate(u, "https://layar.example", time.Second, 8*time.Second)
	g.Share(ShareFacebook)

	clock = base.Add(6 * time.Second)
	g.Share(ShareTwitter)
	assert.Equal(t, 8*time.Second, g.ConfirmRemaining())
	assert.ErrorIs(t, g.Confirm(), domain.ErrShareNotConfirmed)
}

func TestGateAlreadyUnlocked(t *testing.T) {
	u := newMemUnlock(t)
	u.Set()
	g := NewGate(u, "https://layar.example", time.Hour, time.Hour)
	assert.Equal(t, GateUnlocked, g.State())
}
