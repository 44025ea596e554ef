package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	"vocabquiz/internal/db"
	"vocabquiz/internal/question"
	"vocabquiz/internal/quiz"
	"vocabquiz/internal/report"
	"vocabquiz/internal/settings"
	"vocabquiz/internal/worksheet"
)

// Services holds everything the router serves. DB is nil with the file
// settings backend.
type Services struct {
	Bank      *question.Bank
	Quiz      *quiz.Service
	Worksheet *worksheet.Service
	Settings  *settings.Service
	Report    *report.Service
	DB        *sql.DB
}

func NewServices(ctx context.Context, cfg Config) (*Services, error) {
	src := question.NewSource(cfg.QuestionsSource, nil)
	bank := question.NewBank(question.NewLoader(src), cfg.QuestionsMaxAge())
	rep := report.NewService()

	out := &Services{
		Bank:   bank,
		Report: rep,
		Quiz: quiz.NewService(bank, quiz.ServiceConfig{
			SessionTTL:   cfg.QuizSessionTTL(),
			DefaultCount: cfg.DefaultCount,
			OnGraded:     rep.Record,
		}),
		Worksheet: worksheet.NewService(bank),
	}

	switch cfg.SettingsBackend {
	case SettingsBackendPostgres:
		conn, err := db.OpenPostgres(ctx, db.PostgresConfig{
			DSN:             cfg.DBDSN,
			MaxOpenConns:    cfg.DBMaxOpenConns,
			MaxIdleConns:    cfg.DBMaxIdleConns,
			ConnMaxLifetime: time.Duration(cfg.DBConnMaxLifeMins) * time.Minute,
		})
		if err != nil {
			return nil, err
		}
		if err := db.EnsureSettingsSchema(ctx, conn); err != nil {
			_ = conn.Close()
			return nil, err
		}
		out.DB = conn
		out.Settings = settings.NewService(settings.NewPGStore(conn))
	case SettingsBackendFile, "":
		store, err := settings.NewFileStore(cfg.SettingsDir)
		if err != nil {
			return nil, err
		}
		out.Settings = settings.NewService(store)
	default:
		return nil, fmt.Errorf("unknown SETTINGS_BACKEND %q", cfg.SettingsBackend)
	}

	log.Printf("questions from %s, settings backend %s", src.Name(), cfg.SettingsBackend)
	return out, nil
}

func (s *Services) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

// countResolver reads the caller's saved count, trying keys in order.
func (s *Services) countResolver(def string, keys ...string) quiz.CountResolver {
	return func(r *http.Request) quiz.Count {
		id, ok := settings.ClientIDFromRequest(r)
		if !ok {
			return quiz.CountOrDefault("", def)
		}
		saved, err := s.Settings.Load(r.Context(), settings.KeyFor(id))
		if err != nil {
			log.Printf("settings lookup failed: %v", err)
			return quiz.CountOrDefault("", def)
		}
		return quiz.CountOrDefault(saved.String(keys...), def)
	}
}
