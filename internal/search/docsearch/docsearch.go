// Package docsearch provides keyword retrieval over a directory of markdown
// policy documents. Scoring is term overlap, which is plenty for a small
// curated corpus.
package docsearch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zero-touch-cx/server/internal/cx/flows"
)

const maxPassageLen = 800

type document struct {
	title string
	text  string
	terms map[string]int
}

// Searcher holds the loaded corpus. Build once at startup; Search is
// read-only and safe for concurrent use.
type Searcher struct {
	docs []document
}

// NewFromDir loads every .md file under dir, one document per file. The
// first heading line becomes the title, falling back to the file name.
func NewFromDir(dir string) (*Searcher, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no markdown documents under %s", dir)
	}

	s := &Searcher{}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		text := string(data)
		s.docs = append(s.docs, document{
			title: titleOf(text, path),
			text:  truncate(text, maxPassageLen),
			terms: termCounts(text),
		})
	}
	return s, nil
}

// Search returns up to topK passages ordered by descending term overlap with
// the query. Documents with no overlap are omitted.
func (s *Searcher) Search(_ context.Context, query string, topK int) ([]flows.Passage, error) {
	if topK <= 0 {
		topK = 3
	}
	queryTerms := termCounts(query)

	var passages []flows.Passage
	for _, d := range s.docs {
		score := 0
		for term := range queryTerms {
			score += d.terms[term]
		}
		if score == 0 {
			continue
		}
		passages = append(passages, flows.Passage{
			Title: d.title,
			Text:  d.text,
			Score: float64(score),
		})
	}
	sort.SliceStable(passages, func(i, j int) bool { return passages[i].Score > passages[j].Score })
	if len(passages) > topK {
		passages = passages[:topK]
	}
	return passages, nil
}

func titleOf(text, path string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			return strings.TrimSpace(strings.TrimLeft(line, "#"))
		}
	}
	return strings.TrimSuffix(filepath.Base(path), ".md")
}

func truncate(text string, n int) string {
	text = strings.TrimSpace(text)
	if len(text) <= n {
		return text
	}
	return text[:n]
}

func termCounts(text string) map[string]int {
	counts := map[string]int{}
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.Trim(w, ".,;:!?()[]#*\"'")
		if len(w) < 3 {
			continue
		}
		counts[w]++
	}
	return counts
}
