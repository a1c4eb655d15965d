package state

import (
	"log/slog"
	"sync"
)

// Kind names a backend resource whose list responses can go stale.
type Kind string

const (
	KindFiles        Kind = "files"
	KindSessions     Kind = "sessions"
	KindSessionInfo  Kind = "sessionInfo"
	KindAnalysis     Kind = "analysis"
	KindSessionFiles Kind = "sessionFiles"
)

// Ticket identifies one outstanding read of a resource.
type Ticket struct {
	Kind Kind
	Gen  uint64
}

// Sequencer drops responses that were overtaken by a later read or by a
// mutation of the same resource. Tickets are issued on the UI goroutine but
// checked from wherever the response lands, hence the lock.
type Sequencer struct {
	mu   sync.Mutex
	gens map[Kind]uint64
}

func NewSequencer() *Sequencer {
	return &Sequencer{gens: make(map[Kind]uint64)}
}

// Issue starts a new read of kind, making every older ticket stale.
func (s *Sequencer) Issue(kind Kind) Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gens[kind]++
	return Ticket{Kind: kind, Gen: s.gens[kind]}
}

// Invalidate marks every outstanding ticket of the given kinds stale.
func (s *Sequencer) Invalidate(kinds ...Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, k := range kinds {
		s.gens[k]++
	}
}

// Current reports whether t is still the latest ticket of its kind.
func (s *Sequencer) Current(t Ticket) bool {
	s.mu.Lock()
	current := s.gens[t.Kind] == t.Gen
	s.mu.Unlock()

	if !current {
		slog.Debug("Dropping stale response", "kind", t.Kind, "gen", t.Gen)
	}
	return current
}

// Mutation lists the resources an action changes.
type Mutation string

const (
	MutationClearFiles    Mutation = "clear files"
	MutationDeleteFile    Mutation = "delete file"
	MutationUpload        Mutation = "upload"
	MutationLoadSession   Mutation = "load session"
	MutationDeleteSession Mutation = "delete session"
	MutationSaveSession   Mutation = "save session"
	MutationClearChat     Mutation = "clear chat"
	MutationProjectPath   Mutation = "project path"
)

var affected = map[Mutation][]Kind{
	MutationClearFiles:    {KindFiles, KindSessionInfo},
	MutationDeleteFile:    {KindFiles, KindSessionInfo},
	MutationUpload:        {KindFiles, KindSessionInfo},
	MutationLoadSession:   {KindFiles, KindSessionInfo, KindSessionFiles, KindAnalysis},
	MutationDeleteSession: {KindSessions},
	MutationSaveSession:   {KindSessions},
	MutationClearChat:     {KindSessionInfo},
	MutationProjectPath:   {KindAnalysis, KindSessionInfo},
}

// Affects returns the kinds invalidated by m.
func (m Mutation) Affects() []Kind {
	return affected[m]
}

// Mutate invalidates everything m affects.
func (s *Sequencer) Mutate(m Mutation) {
	s.Invalidate(m.Affects()...)
}
