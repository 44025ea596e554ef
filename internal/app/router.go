package app

import (
	"net/http"
	"time"

	"vocabquiz/internal/app/observability"
	"vocabquiz/internal/changelog"
	"vocabquiz/internal/question"
	"vocabquiz/internal/quiz"
	"vocabquiz/internal/report"
	"vocabquiz/internal/settings"
	"vocabquiz/internal/worksheet"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg Config, svcs *Services) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	collector := observability.NewCollector(svcs.DB)
	collector.Gauge("question_bank_records", func() float64 { return float64(svcs.Bank.Stats().Count) })
	collector.Gauge("quiz_active_sessions", func() float64 { return float64(svcs.Quiz.ActiveSessions()) })
	r.Use(collector.Middleware)
	r.Use(CSRFCookieMiddleware)

	quizCount := svcs.countResolver(cfg.DefaultCount, "quizCount", "count")
	wsCount := svcs.countResolver(cfg.DefaultCount, "wsCount", "count")

	questionHandler := question.NewHandler(svcs.Bank)
	quizHandler := quiz.NewHandler(svcs.Quiz, quizCount)
	worksheetHandler := worksheet.NewHandler(svcs.Worksheet, wsCount)
	settingsHandler := settings.NewHandler(svcs.Settings)
	changelogHandler := changelog.NewHandler(cfg.ChangelogPath)
	reportHandler := report.NewHandler(svcs.Report)

	p := &pages{
		cfg:       cfg,
		tmpl:      parseTemplates(),
		svcs:      svcs,
		worksheet: worksheetHandler,
		quizCount: quizCount,
	}

	gradeLimiter := RateLimitMiddleware(NewIPRateLimiter(cfg.GradeRateLimitPerMin, time.Minute))
	csrf := CSRFMiddleware(cfg.CSRFEnforced)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	r.Get("/metrics", collector.MetricsHandler)

	r.Get("/", p.Home)
	r.Get("/quiz", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/", http.StatusFound)
	})
	r.Get("/quiz/{id}", p.ShowQuiz)
	r.Get("/worksheet", p.Worksheet)
	r.Get("/worksheet.xlsx", worksheetHandler.ExportXLSX)
	r.Get("/history", p.History)

	r.Group(func(forms chi.Router) {
		forms.Use(csrf)
		forms.Post("/settings", p.SaveSettings)
		forms.Post("/quiz", p.StartQuiz)
		forms.With(gradeLimiter).Post("/quiz/{id}", p.GradeQuiz)
		forms.Post("/quiz/{id}/retry", p.RetryWrong)
		forms.Post("/quiz/{id}/regenerate", p.RegenerateQuiz)
	})

	r.Route("/api/v1", func(api chi.Router) {
		api.Get("/questions", questionHandler.List)
		api.Get("/worksheet", worksheetHandler.Get)
		api.Get("/settings", settingsHandler.Get)
		api.Get("/changelog", changelogHandler.Get)
		api.Get("/report/summary", reportHandler.Summary)
		api.Get("/quiz/sessions/{id}", quizHandler.Get)

		api.Group(func(mut chi.Router) {
			mut.Use(csrf)
			mut.Put("/settings", settingsHandler.Put)
			mut.Post("/quiz/sessions", quizHandler.Start)
			mut.With(gradeLimiter).Post("/quiz/sessions/{id}/grade", quizHandler.Grade)
			mut.Post("/quiz/sessions/{id}/retry-wrong", quizHandler.RetryWrong)
			mut.Post("/quiz/sessions/{id}/regenerate", quizHandler.Regenerate)
		})

		api.With(ReloadTokenMiddleware(cfg.ReloadTokenHash)).Post("/admin/reload", questionHandler.Reload)
	})

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))

	return r
}
