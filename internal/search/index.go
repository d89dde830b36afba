// Package search provides BM25 keyword search over the content snapshot.
// It backs the REST endpoints' search query parameter; the chat assistant
// renders the full snapshot and does not consult this index.
package search

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"

	bm25 "github.com/iwilltry42/bm25-go/bm25"
	"golang.org/x/text/cases"

	"github.com/aimldept/deptbot-go/internal/content"
	"github.com/aimldept/deptbot-go/internal/logger"
)

// Domain scopes search results to one content type.
type Domain string

const (
	DomainFaculty Domain = "faculty"
	DomainCourse  Domain = "course"
	DomainLab     Domain = "lab"
)

// Result is one scored search hit.
type Result struct {
	ID     string  // record id, course code or lab name
	Domain Domain
	Title  string
	Score  float64 // BM25 score, higher is better
	Rank   int     // 1-indexed rank within the result set
}

type document struct {
	id     string
	domain Domain
	title  string
}

// Index is a BM25 index over faculty, courses and labs. Built once at
// startup from the immutable snapshot; safe for concurrent searches.
type Index struct {
	okapi *bm25.BM25Okapi
	docs  []document
	mu    sync.RWMutex
	log   *logger.Logger
}

// NewIndex builds the index from the content snapshot.
func NewIndex(snap *content.Snapshot, log *logger.Logger) (*Index, error) {
	var corpus []string
	var docs []document

	for _, f := range snap.Faculty {
		text := strings.Join([]string{
			f.Name, f.Designation, f.Qualification,
			strings.Join(f.Specialization, " "),
			strings.Join(f.ResearchAreas, " "),
			strings.Join(f.Courses, " "),
		}, " ")
		corpus = append(corpus, text)
		docs = append(docs, document{id: f.ID, domain: DomainFaculty, title: f.Name})
	}

	for _, c := range snap.Courses {
		text := strings.Join([]string{
			c.Name, c.Code, c.Description, c.Instructor, c.CourseType,
			strings.Join(c.Topics, " "),
			strings.Join(c.Objectives, " "),
			strings.Join(c.Prerequisites, " "),
		}, " ")
		corpus = append(corpus, text)
		docs = append(docs, document{id: c.Code, domain: DomainCourse, title: c.Name})
	}

	for _, lab := range snap.Labs() {
		var equipment []string
		for _, eq := range lab.Equipment {
			equipment = append(equipment, eq.Name)
		}
		text := strings.Join([]string{
			lab.Name, lab.Location, lab.Description,
			strings.Join(lab.Facilities, " "),
			strings.Join(equipment, " "),
		}, " ")
		corpus = append(corpus, text)
		docs = append(docs, document{id: lab.Name, domain: DomainLab, title: lab.Name})
	}

	// k1=1.5, b=0.75 are standard BM25 parameters.
	okapi, err := bm25.NewBM25Okapi(corpus, tokenize, 1.5, 0.75, nil)
	if err != nil {
		return nil, fmt.Errorf("build search index: %w", err)
	}

	idx := &Index{
		okapi: okapi,
		docs:  docs,
		log:   log.WithModule("search"),
	}
	idx.log.Info("Search index built", "documents", len(docs))
	return idx, nil
}

// Search returns the top hits for the query within a domain, sorted by
// score descending. An empty query or a query with no token overlap
// returns nil.
func (idx *Index) Search(query string, domain Domain, topN int) ([]Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	tokens := tokenize(query)
	if len(tokens) == 0 {
		return nil, nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	scores, err := idx.okapi.GetScores(tokens)
	if err != nil {
		return nil, fmt.Errorf("score query: %w", err)
	}

	var results []Result
	for docID, score := range scores {
		if score <= 0 || docID >= len(idx.docs) {
			continue
		}
		doc := idx.docs[docID]
		if domain != "" && doc.domain != domain {
			continue
		}
		results = append(results, Result{
			ID:     doc.id,
			Domain: doc.domain,
			Title:  doc.title,
			Score:  score,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	for i := range results {
		results[i].Rank = i + 1
	}

	if topN > 0 && len(results) > topN {
		results = results[:topN]
	}
	return results, nil
}

// MatchSet returns the IDs of all hits for the query within a domain,
// for filtering list endpoints.
func (idx *Index) MatchSet(query string, domain Domain) (map[string]bool, error) {
	results, err := idx.Search(query, domain, 0)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(results))
	for _, r := range results {
		set[r.ID] = true
	}
	return set, nil
}

var foldCaser = cases.Fold()

// tokenize splits on non-alphanumeric runes and case-folds each token.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		tokens = append(tokens, foldCaser.String(f))
	}
	return tokens
}
