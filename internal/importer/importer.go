// Package importer turns bank and fintrack CSV files into transactions and
// creates them on the backend.
package importer

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fintrack-dev/fintrack/internal/model"
)

// Record is one parsed CSV row. Amount is always positive; Type carries the
// direction.
type Record struct {
	Date        model.Timestamp
	Description string
	Amount      decimal.Decimal
	Type        model.TransactionType
	Category    string // optional category name
}

// Parser converts a CSV file into Records.
type Parser interface {
	Parse(r io.Reader) ([]Record, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Formats lists the registered formats, sorted.
func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.parsers))
	for k := range r.parsers {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&FintrackParser{})
	r.Register(&ChaseParser{})
	return r
}

// Creator creates transactions on the backend.
type Creator interface {
	CreateTransaction(ctx context.Context, in model.TransactionCreate) (*model.Transaction, error)
}

// Service creates parsed records on the backend, mapping category names to
// ids and skipping rows that already exist.
type Service struct {
	creator    Creator
	categories map[string]int
	existing   map[string]int // dedupe key -> existing transactions not yet matched
	log        *zap.Logger
}

// NewService creates an import service. existing seeds duplicate detection.
func NewService(creator Creator, categories []model.Category, existing []model.Transaction, log *zap.Logger) *Service {
	s := &Service{
		creator:    creator,
		categories: make(map[string]int, len(categories)),
		existing:   make(map[string]int, len(existing)),
		log:        log,
	}
	for _, c := range categories {
		s.categories[strings.ToLower(c.Name)] = c.ID
	}
	for _, t := range existing {
		s.existing[dedupeKey(t.TransactionDate.Date(), t.Amount, t.Description)]++
	}
	return s
}

// Result summarizes an import.
type Result struct {
	Created int
	Skipped int
}

// Import creates every record not already present. Each existing
// transaction absorbs at most one matching record, so repeated rows in a
// file are kept beyond what the backend already holds. It stops at the
// first backend failure; Result counts what was done before it.
func (s *Service) Import(ctx context.Context, records []Record) (Result, error) {
	var res Result
	for i, rec := range records {
		key := dedupeKey(rec.Date.Date(), rec.Amount, rec.Description)
		if s.existing[key] > 0 {
			s.existing[key]--
			s.log.Debug("skipping duplicate", zap.Int("row", i+2), zap.String("description", rec.Description))
			res.Skipped++
			continue
		}
		if _, err := s.creator.CreateTransaction(ctx, s.toCreate(rec)); err != nil {
			return res, fmt.Errorf("creating row %d: %w", i+2, err)
		}
		res.Created++
	}
	return res, nil
}

func (s *Service) toCreate(rec Record) model.TransactionCreate {
	in := model.TransactionCreate{
		Amount:          rec.Amount,
		Description:     rec.Description,
		TransactionDate: rec.Date,
		Type:            rec.Type,
	}
	if id, ok := s.categories[strings.ToLower(rec.Category)]; ok && rec.Category != "" {
		in.CategoryID = &id
	}
	return in
}

func dedupeKey(d model.Date, amount decimal.Decimal, desc string) string {
	return d.String() + "|" + amount.StringFixed(2) + "|" + strings.ToLower(strings.TrimSpace(desc))
}
