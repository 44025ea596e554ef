package question

import (
	"context"
	"log"
)

// Loader runs fetch, parse, validate and filter against one source.
type Loader struct {
	src Source
}

func NewLoader(src Source) *Loader {
	return &Loader{src: src}
}

func (l *Loader) Source() Source {
	return l.src
}

// Load returns the usable records in file order. A missing required column
// is only logged; records are filtered individually regardless.
func (l *Loader) Load(ctx context.Context) ([]Record, error) {
	table, err := l.src.Table(ctx)
	if err != nil {
		return nil, err
	}

	items := Records(table)
	for _, key := range MissingRequired(items) {
		log.Printf("question source %s: header is missing required column %q", l.src.Name(), key)
	}

	out := Filter(items)
	if dropped := len(items) - len(out); dropped > 0 {
		log.Printf("question source %s: dropped %d incomplete rows", l.src.Name(), dropped)
	}
	return out, nil
}
