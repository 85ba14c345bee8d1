package domain

import (
	"time"

	"github.com/google/uuid"
)

// TvKind classifies a feed entry at creation time. Presentation must never
// infer significance from the narrative text.
type TvKind string

const (
	TvGame   TvKind = "game"
	TvSocial TvKind = "social"
	TvVote   TvKind = "vote"
	TvTwist  TvKind = "twist"
	TvDiary  TvKind = "diary"
)

// ValidTvKind reports whether k is one of the enumerated feed kinds.
func ValidTvKind(k TvKind) bool {
	switch k {
	case TvGame, TvSocial, TvVote, TvTwist, TvDiary:
		return true
	}
	return false
}

// TvEvent is a single narrative feed entry.
type TvEvent struct {
	ID        string
	Text      string
	Kind      TvKind
	Timestamp int64
}

// TvFeedCap bounds the feed to the most recent entries.
const TvFeedCap = 50

// AppendTv pushes a new entry onto the front of the feed and trims it to
// TvFeedCap. Ids are uuids so same-millisecond bursts never collide.
func (g *GameState) AppendTv(kind TvKind, text string) {
	entry := TvEvent{
		ID:        uuid.NewString(),
		Text:      text,
		Kind:      kind,
		Timestamp: time.Now().UnixMilli(),
	}
	g.TvFeed = append([]TvEvent{entry}, g.TvFeed...)
	if len(g.TvFeed) > TvFeedCap {
		g.TvFeed = g.TvFeed[:TvFeedCap]
	}
}
