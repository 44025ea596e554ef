// Package report aggregates graded quiz rounds for the summary endpoint.
package report

import (
	"slices"
	"sync"
	"time"

	"vocabquiz/internal/quiz"
)

const topMissed = 10

type Service struct {
	mu        sync.Mutex
	rounds    int
	sumPct    float64
	highest   float64
	lowest    float64
	misses    map[string]int
	prompts   map[string]string
	lastRound time.Time
	now       func() time.Time
}

// Summary describes every round graded since the process started.
type Summary struct {
	Rounds       int          `json:"rounds"`
	AverageScore float64      `json:"average_score"`
	HighestScore float64      `json:"highest_score"`
	LowestScore  float64      `json:"lowest_score"`
	MostMissed   []MissedItem `json:"most_missed"`
	LastGradedAt *time.Time   `json:"last_graded_at,omitempty"`
}

type MissedItem struct {
	ID     string `json:"id"`
	Prompt string `json:"prompt"`
	Misses int    `json:"misses"`
}

func NewService() *Service {
	return &Service{
		misses:  make(map[string]int),
		prompts: make(map[string]string),
		now:     time.Now,
	}
}

// Record adds one graded round. Scores are percentages of Total.
func (s *Service) Record(res *quiz.Result) {
	if res == nil || res.Total == 0 {
		return
	}
	pct := float64(res.Score) * 100 / float64(res.Total)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rounds == 0 || pct > s.highest {
		s.highest = pct
	}
	if s.rounds == 0 || pct < s.lowest {
		s.lowest = pct
	}
	s.rounds++
	s.sumPct += pct
	for _, w := range res.Wrong {
		id := w.Record.ID()
		s.misses[id]++
		s.prompts[id] = w.Record.Prompt()
	}
	s.lastRound = s.now()
}

func (s *Service) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := Summary{
		Rounds:       s.rounds,
		HighestScore: s.highest,
		LowestScore:  s.lowest,
		MostMissed:   make([]MissedItem, 0, len(s.misses)),
	}
	if s.rounds > 0 {
		out.AverageScore = s.sumPct / float64(s.rounds)
		last := s.lastRound
		out.LastGradedAt = &last
	}
	for id, n := range s.misses {
		out.MostMissed = append(out.MostMissed, MissedItem{ID: id, Prompt: s.prompts[id], Misses: n})
	}
	slices.SortFunc(out.MostMissed, func(a, b MissedItem) int {
		if a.Misses != b.Misses {
			return b.Misses - a.Misses
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
	if len(out.MostMissed) > topMissed {
		out.MostMissed = out.MostMissed[:topMissed]
	}
	return out
}
