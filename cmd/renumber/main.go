package main

import (
	"flag"
	"log"
	"os"

	"vocabquiz/internal/question"
)

func main() {
	path := flag.String("file", "data/t.csv", "question CSV to renumber in place")
	dryRun := flag.Bool("dry-run", false, "print the result instead of writing it")
	flag.Parse()

	log.Printf("target path: %s", *path)
	b, err := os.ReadFile(*path)
	if err != nil {
		log.Printf("read error: %v", err)
		os.Exit(1)
	}
	log.Printf("byte length: %d", len(b))

	text, enc, err := question.DecodeLegacyText(b)
	if err != nil {
		log.Printf("decode error: %v", err)
		os.Exit(1)
	}
	log.Printf("decoded using %s", enc)

	out, n, err := question.RenumberIDs(text)
	if err != nil {
		log.Printf("renumber: %v", err)
		os.Exit(1)
	}

	if *dryRun {
		_, _ = os.Stdout.WriteString(out)
		return
	}
	if err := os.WriteFile(*path, []byte(out), 0o644); err != nil {
		log.Printf("write error: %v", err)
		os.Exit(1)
	}
	log.Printf("updated %s with %d ids", *path, n)
}
