package testutil

import (
	"context"
	"fmt"

	"mediaUserApp/internal/media"
)

// FakeHandle is the media.Handle returned by FakePlayer.
type FakeHandle struct {
	ID   int
	kind media.Kind
}

func (h *FakeHandle) Kind() media.Kind { return h.kind }

// FakePlayer records the calls a media.Deck makes. OpenErr and ReleaseErr
// inject failures.
type FakePlayer struct {
	Calls      []string
	Opened     int
	Released   int
	OpenErr    error
	ReleaseErr error
}

func (p *FakePlayer) Open(ctx context.Context, c media.Content, kind media.Kind) (media.Handle, error) {
	if p.OpenErr != nil {
		return nil, p.OpenErr
	}
	p.Opened++
	h := &FakeHandle{ID: p.Opened, kind: kind}
	p.Calls = append(p.Calls, fmt.Sprintf("open %d %s", h.ID, c.Name))
	return h, nil
}

func (p *FakePlayer) Play(h media.Handle) error  { return p.record("play", h) }
func (p *FakePlayer) Pause(h media.Handle) error { return p.record("pause", h) }
func (p *FakePlayer) Stop(h media.Handle) error  { return p.record("stop", h) }

func (p *FakePlayer) Release(h media.Handle) error {
	p.Released++
	_ = p.record("release", h)
	return p.ReleaseErr
}

// Outstanding is the number of opened handles not yet released.
func (p *FakePlayer) Outstanding() int { return p.Opened - p.Released }

func (p *FakePlayer) record(op string, h media.Handle) error {
	fh, ok := h.(*FakeHandle)
	if !ok {
		return fmt.Errorf("%s: foreign handle %T", op, h)
	}
	p.Calls = append(p.Calls, fmt.Sprintf("%s %d", op, fh.ID))
	return nil
}

// FakeAccess returns a fixed permission answer and the next queued file.
type FakeAccess struct {
	Denied bool
	Files  []media.Content
}

func (a *FakeAccess) RequestAccess(ctx context.Context) (bool, error) {
	return !a.Denied, nil
}

func (a *FakeAccess) PickFile(ctx context.Context) (media.Content, error) {
	if len(a.Files) == 0 {
		return media.Content{}, media.ErrCancelled
	}
	c := a.Files[0]
	a.Files = a.Files[1:]
	return c, nil
}
