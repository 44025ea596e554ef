// Package worksheet builds printable question sheets from the question bank.
package worksheet

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"vocabquiz/internal/question"
	"vocabquiz/internal/quiz"
)

type Mode string

const (
	// ModeA prints the prompt with a line for the answer.
	ModeA Mode = "A"
	// ModeB prints the answer with a box for an explanation.
	ModeB Mode = "B"
)

func ParseMode(raw string) Mode {
	if strings.EqualFold(strings.TrimSpace(raw), string(ModeB)) {
		return ModeB
	}
	return ModeA
}

type Item struct {
	No     int    `json:"no"`
	ID     string `json:"id"`
	Prompt string `json:"prompt"`
	Answer string `json:"answer"`
	Unit   string `json:"unit,omitempty"`
}

// Lead is the text printed on the question sheet for this item.
func (it Item) Lead(mode Mode) string {
	if mode == ModeB {
		return it.Answer
	}
	return it.Prompt
}

// Sheet is one generated worksheet. The same Seed over the same bank
// reproduces the same items, so mode and answer toggles never resample.
type Sheet struct {
	Seed        uint64     `json:"seed,string"`
	Count       quiz.Count `json:"count"`
	Mode        Mode       `json:"mode"`
	ShowAnswers bool       `json:"show_answers"`
	CreatedAt   time.Time  `json:"created_at"`
	Items       []Item     `json:"items"`
}

func (s *Sheet) IsModeB() bool { return s.Mode == ModeB }

func (s *Sheet) CountLabel() string {
	if s.Count.IsAll() {
		return "all questions"
	}
	return s.Count.String()
}

func (s *Sheet) MetaText() string {
	return fmt.Sprintf("Questions: %s / Mode: %s / Created: %s",
		s.CountLabel(), s.Mode, s.CreatedAt.Format("2006-01-02 15:04"))
}

func (s *Sheet) SeedString() string {
	return strconv.FormatUint(s.Seed, 10)
}

type GenerateInput struct {
	Count       quiz.Count
	Mode        Mode
	ShowAnswers bool
	// Seed zero draws a fresh sheet.
	Seed uint64
}

type snapshotter interface {
	Snapshot(ctx context.Context) ([]question.Record, error)
}

type Service struct {
	bank snapshotter
	now  func() time.Time
	seed func() uint64
}

func NewService(bank snapshotter) *Service {
	return &Service{
		bank: bank,
		now:  time.Now,
		seed: newSeed,
	}
}

func (s *Service) Generate(ctx context.Context, in GenerateInput) (*Sheet, error) {
	records, err := s.bank.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}

	seed := in.Seed
	if seed == 0 {
		seed = s.seed()
	}
	mode := in.Mode
	if mode != ModeB {
		mode = ModeA
	}

	picked := quiz.SampleWith(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), records, in.Count)
	items := make([]Item, 0, len(picked))
	for i, rec := range picked {
		items = append(items, Item{
			No:     i + 1,
			ID:     rec.ID(),
			Prompt: rec.Prompt(),
			Answer: rec.Answer(),
			Unit:   rec.Unit(),
		})
	}

	return &Sheet{
		Seed:        seed,
		Count:       in.Count,
		Mode:        mode,
		ShowAnswers: in.ShowAnswers,
		CreatedAt:   s.now(),
		Items:       items,
	}, nil
}

func newSeed() uint64 {
	for {
		if v := rand.Uint64(); v != 0 {
			return v
		}
	}
}

// ParseSeed reads a seed query value; anything unparsable means "new sheet".
func ParseSeed(raw string) uint64 {
	v, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0
	}
	return v
}
