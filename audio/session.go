package audio

import (
	"github.com/google/uuid"
)

// Session is the bookkeeping record for one Play invocation: the sink
// it owns and the loop flag set at creation. There is no per-session
// stop; a session ends when its sink drains and it is not looping.
type Session struct {
	ID      uuid.UUID
	Source  string
	Looping bool

	sink Sink
}

func newSession(source string, looping bool, sink Sink) *Session {
	return &Session{
		ID:      uuid.New(),
		Source:  source,
		Looping: looping,
		sink:    sink,
	}
}
