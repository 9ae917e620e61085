package media

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"mediaUserApp/internal/logging"
)

// State of the Deck's current item.
type State int

const (
	StateIdle State = iota
	StatePrepared
	StatePlaying
	StatePaused
)

func (s State) String() string {
	switch s {
	case StatePrepared:
		return "prepared"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "idle"
	}
}

// Loaded describes the item currently open in the Deck.
type Loaded struct {
	Content Content
	Kind    Kind
}

// Deck holds at most one open media item. It is driven from the UI thread
// and is not safe for concurrent use.
type Deck struct {
	player Player
	access Access
	log    log.FieldLogger

	handle  Handle
	current Loaded
	state   State
}

func NewDeck(player Player, access Access, logger log.FieldLogger) *Deck {
	return &Deck{
		player: player,
		access: access,
		log:    logging.OrDiscard(logger).WithField("component", "media"),
	}
}

// Load asks for storage access, lets the user pick a file, classifies it and
// opens it. Any previously open item is released first.
func (d *Deck) Load(ctx context.Context) (Loaded, error) {
	granted, err := d.access.RequestAccess(ctx)
	if err != nil {
		return Loaded{}, fmt.Errorf("request access: %w", err)
	}
	if !granted {
		return Loaded{}, ErrAccessDenied
	}
	c, err := d.access.PickFile(ctx)
	if err != nil {
		return Loaded{}, err
	}
	kind, err := Classify(c)
	if err != nil {
		return Loaded{}, err
	}
	if err := d.Release(); err != nil {
		return Loaded{}, err
	}
	h, err := d.player.Open(ctx, c, kind)
	if err != nil {
		return Loaded{}, fmt.Errorf("%w: open %s: %w", ErrPlayback, c.Name, err)
	}
	d.handle = h
	d.current = Loaded{Content: c, Kind: kind}
	d.state = StatePrepared
	d.log.WithFields(log.Fields{"name": c.Name, "kind": kind}).Info("media loaded")
	return d.current, nil
}

// Toggle plays a prepared or paused item and pauses a playing one.
// It returns whether the item is playing afterwards.
func (d *Deck) Toggle() (bool, error) {
	if d.handle == nil {
		return false, ErrNoMedia
	}
	if d.state == StatePlaying {
		if err := d.player.Pause(d.handle); err != nil {
			return true, fmt.Errorf("%w: pause: %w", ErrPlayback, err)
		}
		d.state = StatePaused
		return false, nil
	}
	if err := d.player.Play(d.handle); err != nil {
		return false, fmt.Errorf("%w: play: %w", ErrPlayback, err)
	}
	d.state = StatePlaying
	return true, nil
}

// Stop halts playback and releases the item; the Deck returns to idle.
func (d *Deck) Stop() error {
	if d.handle == nil {
		return ErrNoMedia
	}
	return d.Release()
}

// Release frees the current item, stopping it first if it is playing or
// paused. Releasing an empty Deck is a no-op. The Deck is idle afterwards
// even when the player reports an error.
func (d *Deck) Release() error {
	if d.handle == nil {
		return nil
	}
	h := d.handle
	var stopErr error
	if d.state == StatePlaying || d.state == StatePaused {
		stopErr = d.player.Stop(h)
	}
	relErr := d.player.Release(h)
	d.handle = nil
	d.current = Loaded{}
	d.state = StateIdle
	if err := errors.Join(stopErr, relErr); err != nil {
		d.log.WithError(err).Warn("media release")
		return fmt.Errorf("%w: release: %w", ErrPlayback, err)
	}
	return nil
}

// Current returns the open item and whether there is one.
func (d *Deck) Current() (Loaded, bool) {
	return d.current, d.handle != nil
}

func (d *Deck) State() State { return d.state }
