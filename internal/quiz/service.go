package quiz

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"vocabquiz/internal/question"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrSessionNotFound = errors.New("quiz session not found")
	ErrBusy            = errors.New("quiz session is busy")
	ErrNothingToRetry  = errors.New("no wrong answers to retry")
	ErrStaleRound      = errors.New("quiz round has changed")
)

type snapshotter interface {
	Snapshot(ctx context.Context) ([]question.Record, error)
}

type ServiceConfig struct {
	SessionTTL   time.Duration
	DefaultCount string
	Rand         Rand
	// OnGraded is called once per round, after its first grading.
	OnGraded func(*Result)
}

type Service struct {
	bank         snapshotter
	ttl          time.Duration
	defaultCount string
	rng          Rand
	rngMu        sync.Mutex
	onGraded     func(*Result)
	now          func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// GradeInput carries one submission. Round 0 skips the stale-round check.
type GradeInput struct {
	SessionID string
	Round     int
	Answers   []string
}

func NewService(bank snapshotter, cfg ServiceConfig) *Service {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 120 * time.Minute
	}
	if cfg.DefaultCount == "" {
		cfg.DefaultCount = DefaultCount
	}
	if cfg.Rand == nil {
		cfg.Rand = globalRand{}
	}
	return &Service{
		bank:         bank,
		ttl:          cfg.SessionTTL,
		defaultCount: cfg.DefaultCount,
		rng:          cfg.Rand,
		onGraded:     cfg.OnGraded,
		now:          time.Now,
		sessions:     make(map[string]*Session),
	}
}

func (s *Service) DefaultCount() Count {
	return ParseCount(s.defaultCount)
}

func (s *Service) Start(ctx context.Context, count Count) (*View, error) {
	sample, err := s.sample(ctx, count)
	if err != nil {
		return nil, err
	}

	now := s.now()
	sess := newSession(uuid.NewString(), count, sample, now)

	s.mu.Lock()
	s.pruneLocked(now)
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.viewLocked(), nil
}

func (s *Service) Get(ctx context.Context, id string) (*View, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.touchedAt = s.now()
	return sess.viewLocked(), nil
}

// Grade scores the current round. Grading an already graded round returns
// the stored result unchanged.
func (s *Service) Grade(ctx context.Context, in GradeInput) (*Result, error) {
	sess, err := s.lookup(in.SessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	if in.Round > 0 && in.Round != sess.round {
		sess.mu.Unlock()
		return nil, ErrStaleRound
	}
	if len(in.Answers) > len(sess.questions) {
		sess.mu.Unlock()
		return nil, fmt.Errorf("%w: %d answers for %d questions", ErrInvalidInput, len(in.Answers), len(sess.questions))
	}
	first := !sess.graded
	sess.touchedAt = s.now()
	res := sess.grade(in.Answers)
	sess.mu.Unlock()

	if first && s.onGraded != nil {
		s.onGraded(res)
	}
	return res, nil
}

// RetryWrong starts a new round containing only the wrongly answered records.
func (s *Service) RetryWrong(ctx context.Context, id string) (*View, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	if sess.regenerating.Load() {
		return nil, ErrBusy
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !sess.graded {
		return nil, fmt.Errorf("%w: round %d is not graded", ErrInvalidInput, sess.round)
	}
	wrong := sess.wrongRecords()
	if len(wrong) == 0 {
		return nil, ErrNothingToRetry
	}
	sess.startRound(wrong, s.now())
	return sess.viewLocked(), nil
}

// Regenerate replaces the session's questions with a fresh sample. A second
// call while one is still loading fails with ErrBusy.
func (s *Service) Regenerate(ctx context.Context, id string, count Count) (*View, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	if !sess.regenerating.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer sess.regenerating.Store(false)

	sample, err := s.sample(ctx, count)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.count = count
	sess.startRound(sample, s.now())
	return sess.viewLocked(), nil
}

// Prune drops sessions idle for longer than the TTL and reports how many.
func (s *Service) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pruneLocked(s.now())
}

func (s *Service) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Service) sample(ctx context.Context, count Count) ([]question.Record, error) {
	records, err := s.bank.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return SampleWith(s.rng, records, count), nil
}

func (s *Service) lookup(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (s *Service) pruneLocked(now time.Time) int {
	removed := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		idle := now.Sub(sess.touchedAt)
		sess.mu.Unlock()
		if idle > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
