package chat

// Log is the ordered, append-only record of turns accumulated by one
// pipeline run. Insertion order is semantically significant: it is the
// context every later stage reads.
//
// A Log is exclusively owned by its run. Runs never share a Log and no
// stage writes concurrently, so there is no locking here. Persisting a
// Log beyond the run is the embedder's concern.
type Log struct {
	turns []Turn
}

// NewLog creates a Log seeded with prior conversation history. The prior
// slice is copied so later appends cannot alias the caller's backing
// array.
func NewLog(prior []Turn) *Log {
	l := &Log{}
	if len(prior) > 0 {
		l.turns = make([]Turn, len(prior))
		copy(l.turns, prior)
	}
	return l
}

// Append adds turns to the end of the log in the order given. Appends
// always succeed; the log grows monotonically and is never reordered or
// truncated mid-run.
func (l *Log) Append(turns ...Turn) {
	l.turns = append(l.turns, turns...)
}

// Snapshot returns a read-only copy of the full history accumulated so
// far. Stages receive snapshots, so no stage can observe a future turn
// or mutate the log through the returned slice.
func (l *Log) Snapshot() []Turn {
	out := make([]Turn, len(l.turns))
	copy(out, l.turns)
	return out
}

// Len returns the number of turns in the log.
func (l *Log) Len() int {
	return len(l.turns)
}

// Last returns the most recent turn and true, or a zero Turn and false
// when the log is empty.
func (l *Log) Last() (Turn, bool) {
	if len(l.turns) == 0 {
		return Turn{}, false
	}
	return l.turns[len(l.turns)-1], true
}
