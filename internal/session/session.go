// Package session keeps the per-session input state of both estimators. State
// lives only as long as the session; nothing here is durable.
package session

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/Simplici0/estimator/internal/pricing/videotech"
	"github.com/Simplici0/estimator/internal/pricing/webmobile"
)

var ErrNotFound = errors.New("session not found")

// Panels records which estimators are shown. Both start hidden.
type Panels struct {
	VideoTech bool `json:"videoTech"`
	WebMobile bool `json:"webMobile"`
}

// State is everything a session owns.
type State struct {
	ID        string           `json:"id"`
	Panels    Panels           `json:"panels"`
	VideoTech videotech.Inputs `json:"videoTech"`
	WebMobile webmobile.Inputs `json:"webMobile"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// NewState returns a state with a fresh id and default inputs.
func NewState(now time.Time) State {
	return State{
		ID:        uuid.NewString(),
		VideoTech: videotech.DefaultInputs(),
		WebMobile: webmobile.DefaultInputs(),
		UpdatedAt: now,
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	s.WebMobile.ThirdPartyItems = slices.Clone(s.WebMobile.ThirdPartyItems)
	return s
}

// Store persists session state for its idle lifetime. Get and Save both
// extend the lifetime.
type Store interface {
	Create(ctx context.Context) (State, error)
	Get(ctx context.Context, id string) (State, error)
	Save(ctx context.Context, s State) error
	Delete(ctx context.Context, id string) error
}
