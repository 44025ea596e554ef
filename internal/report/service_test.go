package report

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"vocabquiz/internal/question"
	"vocabquiz/internal/quiz"
)

func wrong(id, prompt string) quiz.GradeEntry {
	return quiz.GradeEntry{Record: question.Record{"id": id, "prompt": prompt, "answer": "x"}}
}

func TestSummary(t *testing.T) {
	s := NewService()
	if got := s.Summary(); got.Rounds != 0 || got.LastGradedAt != nil || len(got.MostMissed) != 0 {
		t.Fatalf("expected empty summary, got %+v", got)
	}

	s.Record(&quiz.Result{Total: 4, Score: 2, Wrong: []quiz.GradeEntry{wrong("T-001", "dog"), wrong("T-002", "cat")}})
	s.Record(&quiz.Result{Total: 2, Score: 2})
	s.Record(&quiz.Result{Total: 4, Score: 3, Wrong: []quiz.GradeEntry{wrong("T-002", "cat")}})
	s.Record(&quiz.Result{Total: 0})
	s.Record(nil)

	got := s.Summary()
	if got.Rounds != 3 {
		t.Fatalf("expected 3 rounds, got %d", got.Rounds)
	}
	if got.HighestScore != 100 || got.LowestScore != 50 || got.AverageScore != 75 {
		t.Fatalf("unexpected scores %+v", got)
	}
	if len(got.MostMissed) != 2 || got.MostMissed[0].ID != "T-002" || got.MostMissed[0].Misses != 2 {
		t.Fatalf("unexpected most missed %+v", got.MostMissed)
	}
	if got.LastGradedAt == nil {
		t.Fatalf("expected last graded time")
	}
}

func TestHandlerSummary(t *testing.T) {
	s := NewService()
	s.Record(&quiz.Result{Total: 1, Score: 1})
	w := httptest.NewRecorder()
	NewHandler(s).Summary(w, httptest.NewRequest(http.MethodGet, "/api/v1/report/summary", nil))

	var env struct {
		OK   bool    `json:"ok"`
		Data Summary `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !env.OK || env.Data.Rounds != 1 || env.Data.AverageScore != 100 {
		t.Fatalf("unexpected response %+v", env)
	}
}
