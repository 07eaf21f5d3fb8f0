// Package feed implements the discovery deck: a candidate list presented
// sequentially, exhausted linearly from the front.
package feed

import (
	"sync"

	"github.com/desertthunder/duet/internal/models"
)

// LikeFunc is invoked when the user likes the active candidate. The deck does
// not await the underlying mutation: implementations are expected to fire the
// like-creation request and let it settle in the background (optimistic
// advance, no rollback).
type LikeFunc func(profile models.UserProfile)

// Deck presents discovery candidates one at a time.
//
// The candidate list is fetched once and never refilled; the index only moves
// forward and is clamped at the last position. Acting on the last candidate
// exhausts the deck; any further action is a no-op.
type Deck struct {
	mu        sync.Mutex
	profiles  []models.UserProfile
	index     int
	exhausted bool
	like      LikeFunc
}

// NewDeck creates a deck over profiles. A nil like function makes Like advance
// without side effects, same as Skip.
func NewDeck(profiles []models.UserProfile, like LikeFunc) *Deck {
	return &Deck{
		profiles:  profiles,
		exhausted: len(profiles) == 0,
		like:      like,
	}
}

// Current returns the active candidate. ok is false when the deck is empty or
// exhausted, which renders the terminal empty state.
func (d *Deck) Current() (models.UserProfile, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.exhausted {
		return models.UserProfile{}, false
	}
	return d.profiles[d.index], true
}

// Like fires the like mutation for the active candidate and advances.
// No-op once the deck is exhausted.
func (d *Deck) Like() {
	d.mu.Lock()
	if d.exhausted {
		d.mu.Unlock()
		return
	}
	profile := d.profiles[d.index]
	like := d.like
	d.advanceLocked()
	d.mu.Unlock()

	if like != nil {
		like(profile)
	}
}

// Skip advances past the active candidate without a backend call.
// No-op once the deck is exhausted.
func (d *Deck) Skip() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.exhausted {
		return
	}
	d.advanceLocked()
}

// advanceLocked moves to the next candidate, clamping the index at len-1.
// Acting on the last candidate marks the deck exhausted instead of moving.
func (d *Deck) advanceLocked() {
	if d.index < len(d.profiles)-1 {
		d.index++
	} else {
		d.exhausted = true
	}
}

// Index returns the active position, clamped to [0, len-1].
func (d *Deck) Index() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.index
}

// Len returns the total number of candidates in the deck.
func (d *Deck) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.profiles)
}

// Exhausted reports whether every candidate has been acted upon.
func (d *Deck) Exhausted() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.exhausted
}

// Remaining returns how many candidates have not been acted upon yet,
// including the active one.
func (d *Deck) Remaining() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.exhausted {
		return 0
	}
	return len(d.profiles) - d.index
}
