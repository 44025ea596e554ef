package quiz

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"vocabquiz/internal/question"
)

// Session is one learner's quiz: the current sample, whether it has been
// graded, and the grading history of the current round.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	round     int
	count     Count
	questions []question.Record
	graded    bool
	history   []GradeEntry
	touchedAt time.Time

	regenerating atomic.Bool
}

type GradeEntry struct {
	Index    int             `json:"index"`
	Record   question.Record `json:"record"`
	User     string          `json:"user"`
	Correct  bool            `json:"correct"`
	Accepted []string        `json:"accepted"`
}

type Result struct {
	Round int          `json:"round"`
	Total int          `json:"total"`
	Score int          `json:"score"`
	Items []GradeEntry `json:"items"`
	Wrong []GradeEntry `json:"wrong"`
}

func (r *Result) AllCorrect() bool {
	return r != nil && r.Total > 0 && len(r.Wrong) == 0
}

type QuestionView struct {
	Index  int    `json:"index"`
	ID     string `json:"id"`
	Prompt string `json:"prompt"`
	Unit   string `json:"unit,omitempty"`
}

// View is a point-in-time copy of a session safe to render or encode.
type View struct {
	ID        string         `json:"id"`
	Round     int            `json:"round"`
	Count     Count          `json:"count"`
	Questions []QuestionView `json:"questions"`
	Graded    bool           `json:"graded"`
	Result    *Result        `json:"result,omitempty"`
	MetaText  string         `json:"meta_text"`
	ScoreText string         `json:"score_text"`
}

func newSession(id string, count Count, questions []question.Record, now time.Time) *Session {
	return &Session{
		ID:        id,
		CreatedAt: now,
		round:     1,
		count:     count,
		questions: questions,
		touchedAt: now,
	}
}

// grade must be called with s.mu held.
func (s *Session) grade(answers []string) *Result {
	if s.graded {
		return s.resultLocked()
	}
	history := make([]GradeEntry, 0, len(s.questions))
	for i, rec := range s.questions {
		user := ""
		if i < len(answers) {
			user = answers[i]
		}
		accepted := rec.Accepted()
		history = append(history, GradeEntry{
			Index:    i,
			Record:   rec,
			User:     user,
			Correct:  accepted.Contains(user),
			Accepted: accepted.Sorted(),
		})
	}
	s.history = history
	s.graded = true
	return s.resultLocked()
}

func (s *Session) resultLocked() *Result {
	if !s.graded {
		return nil
	}
	res := &Result{
		Round: s.round,
		Total: len(s.history),
		Items: append([]GradeEntry(nil), s.history...),
		Wrong: []GradeEntry{},
	}
	for _, e := range s.history {
		if e.Correct {
			res.Score++
			continue
		}
		res.Wrong = append(res.Wrong, e)
	}
	return res
}

func (s *Session) wrongRecords() []question.Record {
	out := make([]question.Record, 0)
	for _, e := range s.history {
		if !e.Correct {
			out = append(out, e.Record)
		}
	}
	return out
}

func (s *Session) startRound(questions []question.Record, now time.Time) {
	s.round++
	s.questions = questions
	s.graded = false
	s.history = nil
	s.touchedAt = now
}

func (s *Session) viewLocked() *View {
	qs := make([]QuestionView, 0, len(s.questions))
	for i, rec := range s.questions {
		qs = append(qs, QuestionView{Index: i, ID: rec.ID(), Prompt: rec.Prompt(), Unit: rec.Unit()})
	}
	v := &View{
		ID:        s.ID,
		Round:     s.round,
		Count:     s.count,
		Questions: qs,
		Graded:    s.graded,
		Result:    s.resultLocked(),
		MetaText:  fmt.Sprintf("Questions: %d", len(s.questions)),
		ScoreText: "ungraded",
	}
	if v.Result != nil {
		v.ScoreText = fmt.Sprintf("Correct: %d / %d", v.Result.Score, v.Result.Total)
	}
	return v
}
