// Package media defines the contracts of the platform playback and file
// access services, and the Deck that holds the one media item a playback
// screen has open.
package media

import (
	"context"
	"errors"
	"path"
	"strings"
)

var (
	// ErrUnsupportedFormat is returned for content that is neither audio nor video.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrAccessDenied is returned when the user refuses storage access.
	ErrAccessDenied = errors.New("storage access denied")
	// ErrCancelled is returned by PickFile when the user backs out.
	ErrCancelled = errors.New("file selection cancelled")
	// ErrNoMedia is returned by playback controls when nothing is loaded.
	ErrNoMedia = errors.New("no media loaded")
	// ErrPlayback wraps failures reported by the Player.
	ErrPlayback = errors.New("playback failed")
)

// Kind classifies content.
type Kind int

const (
	KindUnknown Kind = iota
	KindAudio
	KindVideo
)

func (k Kind) String() string {
	switch k {
	case KindAudio:
		return "audio"
	case KindVideo:
		return "video"
	default:
		return "unknown"
	}
}

// Content identifies a file chosen from device storage.
type Content struct {
	URI      string
	Name     string
	MIMEType string
}

// Handle is an opened media item owned by the Player.
type Handle interface {
	Kind() Kind
}

// Player is the platform media playback service.
type Player interface {
	Open(ctx context.Context, c Content, kind Kind) (Handle, error)
	Play(h Handle) error
	Pause(h Handle) error
	Stop(h Handle) error
	Release(h Handle) error
}

// Access is the platform file and permission service.
type Access interface {
	// RequestAccess reports whether storage access was granted.
	RequestAccess(ctx context.Context) (bool, error)
	// PickFile returns ErrCancelled when the user backs out.
	PickFile(ctx context.Context) (Content, error)
}

var extKinds = map[string]Kind{
	".mp3": KindAudio, ".wav": KindAudio, ".ogg": KindAudio, ".m4a": KindAudio,
	".aac": KindAudio, ".flac": KindAudio, ".opus": KindAudio,
	".mp4": KindVideo, ".mkv": KindVideo, ".webm": KindVideo, ".3gp": KindVideo,
	".avi": KindVideo, ".mov": KindVideo,
}

// Classify decides audio or video from the MIME type reported by the
// platform, falling back to the file name extension when none was reported.
func Classify(c Content) (Kind, error) {
	mt := strings.ToLower(strings.TrimSpace(c.MIMEType))
	switch {
	case strings.HasPrefix(mt, "audio/"):
		return KindAudio, nil
	case strings.HasPrefix(mt, "video/"):
		return KindVideo, nil
	case mt != "" && mt != "application/octet-stream":
		return KindUnknown, ErrUnsupportedFormat
	}
	if k, ok := extKinds[strings.ToLower(path.Ext(c.Name))]; ok {
		return k, nil
	}
	return KindUnknown, ErrUnsupportedFormat
}
