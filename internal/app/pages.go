package app

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"vocabquiz/internal/changelog"
	"vocabquiz/internal/question"
	"vocabquiz/internal/quiz"
	"vocabquiz/internal/settings"
	"vocabquiz/internal/worksheet"

	"github.com/go-chi/chi/v5"
)

// FeedbackNotConfigured is shown in place of the feedback form.
const FeedbackNotConfigured = "feedback form URL is not configured"

var countOptions = []string{"5", "10", "20", "30", "all"}

type pages struct {
	cfg       Config
	tmpl      *template.Template
	svcs      *Services
	worksheet *worksheet.Handler
	quizCount quiz.CountResolver
}

type pageData struct {
	Title              string
	Page               string
	CSRFToken          string
	FeedbackURL        string
	FeedbackConfigured bool
	FeedbackMessage    string
	Error              string
	Notice             string
	Data               any
}

type homeData struct {
	Count        string
	CountOptions []string
}

type historyData struct {
	Log *changelog.Log
}

func parseTemplates() *template.Template {
	tmpl := template.Must(template.New("").Funcs(template.FuncMap{
		"inc": func(i int) int { return i + 1 },
	}).ParseGlob("web/templates/layout/*.html"))
	return template.Must(tmpl.ParseGlob("web/templates/pages/*.html"))
}

func (p *pages) render(w http.ResponseWriter, r *http.Request, status int, name string, data pageData) {
	data.Page = name
	data.CSRFToken = CSRFToken(r)
	data.FeedbackURL = p.cfg.FeedbackEmbedURL
	data.FeedbackConfigured = p.cfg.FeedbackConfigured()
	data.FeedbackMessage = FeedbackNotConfigured
	if data.Notice == "" {
		data.Notice = r.URL.Query().Get("notice")
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := p.tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("render %s: %v", name, err)
	}
}

func (p *pages) Home(w http.ResponseWriter, r *http.Request) {
	saved, err := p.svcs.Settings.Load(r.Context(), settings.KeyFor(settings.ClientID(w, r)))
	if err != nil {
		log.Printf("home settings: %v", err)
		saved = settings.Settings{}
	}
	count := saved.String("count")
	if count == "" {
		count = p.cfg.DefaultCount
	}
	p.render(w, r, http.StatusOK, "home", pageData{
		Title: "Vocabulary Quiz",
		Data:  homeData{Count: count, CountOptions: countOptions},
	})
}

func (p *pages) SaveSettings(w http.ResponseWriter, r *http.Request) {
	count := strings.TrimSpace(r.PostFormValue("count"))
	if count != quiz.AllKeyword {
		if n, err := strconv.Atoi(count); err != nil || n <= 0 {
			http.Redirect(w, r, "/?notice="+url.QueryEscape("invalid question count"), http.StatusSeeOther)
			return
		}
	}
	key := settings.KeyFor(settings.ClientID(w, r))
	if _, err := p.svcs.Settings.Merge(r.Context(), key, settings.Settings{"count": count}); err != nil {
		log.Printf("save settings: %v", err)
		http.Redirect(w, r, "/?notice="+url.QueryEscape("could not save settings"), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/?notice="+url.QueryEscape("settings saved"), http.StatusSeeOther)
}

func (p *pages) StartQuiz(w http.ResponseWriter, r *http.Request) {
	view, err := p.svcs.Quiz.Start(r.Context(), p.quizCount(r))
	if err != nil {
		p.renderQuizError(w, r, err)
		return
	}
	http.Redirect(w, r, "/quiz/"+view.ID, http.StatusSeeOther)
}

func (p *pages) ShowQuiz(w http.ResponseWriter, r *http.Request) {
	view, err := p.svcs.Quiz.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		p.renderQuizError(w, r, err)
		return
	}
	p.render(w, r, http.StatusOK, "quiz", pageData{Title: "Quiz", Data: view})
}

func (p *pages) GradeQuiz(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	view, err := p.svcs.Quiz.Get(r.Context(), id)
	if err != nil {
		p.renderQuizError(w, r, err)
		return
	}
	round, _ := strconv.Atoi(r.PostFormValue("round"))
	answers := make([]string, len(view.Questions))
	for i := range answers {
		answers[i] = r.PostFormValue("answer_" + strconv.Itoa(i))
	}

	_, err = p.svcs.Quiz.Grade(r.Context(), quiz.GradeInput{SessionID: id, Round: round, Answers: answers})
	switch {
	case err == nil:
		http.Redirect(w, r, "/quiz/"+id+"#result", http.StatusSeeOther)
	case errors.Is(err, quiz.ErrStaleRound):
		http.Redirect(w, r, "/quiz/"+id+"?notice="+url.QueryEscape("the questions changed; please answer again"), http.StatusSeeOther)
	default:
		p.renderQuizError(w, r, err)
	}
}

func (p *pages) RetryWrong(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	_, err := p.svcs.Quiz.RetryWrong(r.Context(), id)
	switch {
	case err == nil:
		http.Redirect(w, r, "/quiz/"+id, http.StatusSeeOther)
	case errors.Is(err, quiz.ErrNothingToRetry):
		http.Redirect(w, r, "/quiz/"+id+"?notice="+url.QueryEscape("all answers were correct"), http.StatusSeeOther)
	default:
		p.renderQuizError(w, r, err)
	}
}

func (p *pages) RegenerateQuiz(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	_, err := p.svcs.Quiz.Regenerate(r.Context(), id, p.quizCount(r))
	if err != nil {
		p.renderQuizError(w, r, err)
		return
	}
	http.Redirect(w, r, "/quiz/"+id, http.StatusSeeOther)
}

func (p *pages) renderQuizError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := pageError(err)
	p.render(w, r, status, "quiz", pageData{Title: "Quiz", Error: msg})
}

func (p *pages) Worksheet(w http.ResponseWriter, r *http.Request) {
	in := p.worksheet.InputFromRequest(r)
	sheet, err := p.svcs.Worksheet.Generate(r.Context(), in)
	if err != nil {
		status, msg := pageError(err)
		p.render(w, r, status, "worksheet", pageData{Title: "Worksheet", Error: msg})
		return
	}
	if in.Seed == 0 {
		// Pin the sample so mode and answer toggles keep the same items.
		q := r.URL.Query()
		q.Set("seed", sheet.SeedString())
		q.Set("count", sheet.Count.String())
		http.Redirect(w, r, "/worksheet?"+q.Encode(), http.StatusFound)
		return
	}
	p.render(w, r, http.StatusOK, "worksheet", pageData{Title: "Worksheet", Data: sheet})
}

func (p *pages) History(w http.ResponseWriter, r *http.Request) {
	l, err := changelog.Load(p.cfg.ChangelogPath)
	if err != nil {
		log.Printf("history: %v", err)
		p.render(w, r, http.StatusOK, "history", pageData{Title: "Update history", Error: changelog.LoadFailedMessage})
		return
	}
	p.render(w, r, http.StatusOK, "history", pageData{Title: "Update history", Data: historyData{Log: l}})
}

func pageError(err error) (int, string) {
	switch {
	case errors.Is(err, quiz.ErrSessionNotFound):
		return http.StatusNotFound, "this quiz has expired; start a new one"
	case errors.Is(err, quiz.ErrBusy):
		return http.StatusConflict, "questions are still being generated"
	case errors.Is(err, quiz.ErrInvalidInput):
		return http.StatusBadRequest, "the submitted answers do not match this quiz"
	}
	if _, ok := question.IsLoadError(err); ok {
		return http.StatusBadGateway, question.LoadFailedMessage
	}
	log.Printf("page error: %v", err)
	return http.StatusInternalServerError, "something went wrong"
}
