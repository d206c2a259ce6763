package game

import "time"

// EventKind categorizes a log entry for presentation. Presentation may
// map kinds to sounds or haptics; nothing here depends on that.
type EventKind string

const (
	EventInfo        EventKind = "info"
	EventStory       EventKind = "story"
	EventCombat      EventKind = "combat"
	EventCombo       EventKind = "combo"
	EventVictory     EventKind = "victory"
	EventDefeat      EventKind = "defeat"
	EventAchievement EventKind = "achievement"
	EventError       EventKind = "error"
)

// Event is one entry in the ledger's ordered notification stream.
type Event struct {
	Kind    EventKind `json:"kind"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// maxLogEntries bounds the in-memory log; older entries are dropped.
const maxLogEntries = 200

func (s *State) appendEvent(kind EventKind, msg string) {
	ev := Event{Kind: kind, Message: msg, At: time.Now()}
	s.Log = append(s.Log, ev)
	if len(s.Log) > maxLogEntries {
		s.Log = s.Log[len(s.Log)-maxLogEntries:]
	}
	if s.EventSink != nil {
		s.EventSink(ev)
	}
}
