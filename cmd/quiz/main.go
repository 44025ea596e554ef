package main

import (
	"flag"
	"io"
	"log"
	"os"

	"vocabquiz/internal/app"
	"vocabquiz/internal/question"
	"vocabquiz/internal/quiz"
	"vocabquiz/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	app.LoadDotEnv(".env")
	cfg := app.LoadConfig()

	source := flag.String("source", cfg.QuestionsSource, "question CSV path, xlsx path or http(s) URL")
	count := flag.String("count", cfg.DefaultCount, `number of questions or "all"`)
	noColor := flag.Bool("no-color", os.Getenv("NO_COLOR") != "", "disable colors")
	logPath := flag.String("log", "", "write logs to this file instead of discarding them")
	flag.Parse()

	// Log lines would corrupt the alternate screen.
	if *logPath != "" {
		f, err := tea.LogToFile(*logPath, "quiz")
		if err != nil {
			log.Printf("open log: %v", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	bank := question.NewBank(question.NewLoader(question.NewSource(*source, nil)), cfg.QuestionsMaxAge())
	svc := quiz.NewService(bank, quiz.ServiceConfig{
		SessionTTL:   cfg.QuizSessionTTL(),
		DefaultCount: cfg.DefaultCount,
	})

	model := tui.NewModel(svc, tui.Options{
		Count:   quiz.CountOrDefault(*count, cfg.DefaultCount),
		NoColor: *noColor,
	})
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		log.Printf("quiz: %v", err)
		os.Exit(1)
	}
}
