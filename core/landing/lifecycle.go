// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package landing

import (
	"sync"
	"sync/atomic"
)

// Phase is the mount state of a page.
type Phase uint8

const (
	// Unmounted is the state of the first paint.
	Unmounted Phase = iota

	// Mounted is terminal; the entrance transition has been applied.
	Mounted
)

func (p Phase) String() string {
	if p == Mounted {
		return "mounted"
	}

	return "unmounted"
}

// Hero transition classes. The base classes are always present; one of the
// phase sets is added on top.
const (
	heroBase      = "transition-all duration-1000"
	heroUnmounted = "opacity-0 translate-y-8"
	heroMounted   = "opacity-100 translate-y-0"
)

// HeroPhaseClass returns the classes specific to a phase.
func HeroPhaseClass(p Phase) string {
	if p == Mounted {
		return heroMounted
	}

	return heroUnmounted
}

// HeroClass returns the full class list of the hero wrapper in phase p.
func HeroClass(p Phase) string {
	return heroBase + " " + HeroPhaseClass(p)
}

// Lifecycle is a one-shot mount flag.
//
// The zero value is Unmounted and ready to use. Lifecycle is safe for
// concurrent use.
type Lifecycle struct {
	mounted atomic.Bool

	mu      sync.Mutex
	onReady []func()
}

// Phase reports the current phase.
func (l *Lifecycle) Phase() Phase {
	if l.mounted.Load() {
		return Mounted
	}

	return Unmounted
}

// OnReady registers fn to run once when the lifecycle becomes Mounted.
// If it is already Mounted, fn runs immediately.
func (l *Lifecycle) OnReady(fn func()) {
	l.mu.Lock()

	if !l.mounted.Load() {
		l.onReady = append(l.onReady, fn)
		l.mu.Unlock()

		return
	}

	l.mu.Unlock()

	fn()
}

// Ready moves the lifecycle to Mounted and runs the registered callbacks.
// It returns true only for the call that performed the transition.
func (l *Lifecycle) Ready() bool {
	l.mu.Lock()

	if !l.mounted.CompareAndSwap(false, true) {
		l.mu.Unlock()

		return false
	}

	callbacks := l.onReady
	l.onReady = nil
	l.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}

	return true
}
