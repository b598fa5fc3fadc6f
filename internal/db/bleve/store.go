package bleve

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	blevesearch "github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/kailas-cloud/companysearch/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

var errClosed = errors.New("bleve store closed")

// Config holds bleve store parameters.
type Config struct {
	// Path is the directory holding one sub-directory per index. Empty means in-memory.
	Path string
}

// Store implements db.Store on embedded bleve indexes.
type Store struct {
	path string

	mu      sync.RWMutex
	closed  bool
	indexes map[string]*index
}

type index struct {
	bleve blevesearch.Index
	def   *db.IndexDefinition

	synMu    sync.RWMutex
	synonyms map[string][]string // group id -> lower-cased terms
}

// NewStore creates an empty store. Indexes are created with CreateIndex.
func NewStore(cfg Config) (*Store, error) {
	if cfg.Path != "" {
		if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
			return nil, fmt.Errorf("create index dir: %w", err)
		}
	}
	return &Store{path: cfg.Path, indexes: make(map[string]*index)}, nil
}

// Ping reports whether the store is open.
func (s *Store) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return &db.Error{Op: db.OpPing, Err: errClosed}
	}
	return nil
}

// WaitForReady returns immediately: an embedded store is ready once opened.
func (s *Store) WaitForReady(ctx context.Context, _ time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.Ping(ctx)
}

// Close closes every open index.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, idx := range s.indexes {
		_ = idx.bleve.Close()
	}
	s.indexes = map[string]*index{}
	s.closed = true
}

// CreateIndex builds a bleve mapping from the definition and opens the index.
// With an on-disk path an existing index is reopened.
func (s *Store) CreateIndex(_ context.Context, def *db.IndexDefinition) error {
	if err := def.Validate(); err != nil {
		return &db.Error{Op: db.OpCreateIndex, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return &db.Error{Op: db.OpCreateIndex, Err: errClosed}
	}
	if _, ok := s.indexes[def.Name]; ok {
		return db.ErrIndexExists
	}

	bi, err := s.open(def)
	if err != nil {
		return &db.Error{Op: db.OpCreateIndex, Err: err}
	}
	s.indexes[def.Name] = &index{bleve: bi, def: def, synonyms: make(map[string][]string)}
	return nil
}

func (s *Store) open(def *db.IndexDefinition) (blevesearch.Index, error) {
	m := buildMapping(def)
	if s.path == "" {
		return blevesearch.NewMemOnly(m)
	}
	dir := filepath.Join(s.path, def.Name)
	bi, err := blevesearch.Open(dir)
	if err == nil {
		return bi, nil
	}
	if errors.Is(err, blevesearch.ErrorIndexPathDoesNotExist) {
		return blevesearch.New(dir, m)
	}
	return nil, fmt.Errorf("open %s: %w", dir, err)
}

// DropIndex closes an index and removes its files.
func (s *Store) DropIndex(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, ok := s.indexes[name]
	if !ok {
		return db.ErrIndexNotFound
	}
	delete(s.indexes, name)
	if err := idx.bleve.Close(); err != nil {
		return &db.Error{Op: db.OpDropIndex, Err: err}
	}
	if s.path != "" {
		if err := os.RemoveAll(filepath.Join(s.path, name)); err != nil {
			return &db.Error{Op: db.OpDropIndex, Err: err}
		}
	}
	return nil
}

// IndexExists reports whether the index is open in this store.
func (s *Store) IndexExists(_ context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.indexes[name]
	return ok, nil
}

// UpdateSynonyms replaces a synonym group. Groups apply to fields flagged Synonyms.
func (s *Store) UpdateSynonyms(_ context.Context, name, groupID string, terms []string) error {
	if len(terms) == 0 {
		return errors.New("synonym group requires at least one term")
	}
	idx, err := s.get(name)
	if err != nil {
		return err
	}
	idx.synMu.Lock()
	defer idx.synMu.Unlock()
	idx.synonyms[groupID] = normalizeTerms(terms)
	return nil
}

func (s *Store) get(name string) (*index, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, errClosed
	}
	idx, ok := s.indexes[name]
	if !ok {
		return nil, db.ErrIndexNotFound
	}
	return idx, nil
}

func buildMapping(def *db.IndexDefinition) mapping.IndexMapping {
	im := blevesearch.NewIndexMapping()
	dm := blevesearch.NewDocumentMapping()
	dm.Dynamic = false

	for _, f := range def.Fields {
		var fm *mapping.FieldMapping
		switch f.Type {
		case db.IndexFieldNumeric:
			fm = blevesearch.NewNumericFieldMapping()
		case db.IndexFieldTag:
			fm = blevesearch.NewTextFieldMapping()
			fm.Analyzer = keyword.Name
		case db.IndexFieldText:
			fm = blevesearch.NewTextFieldMapping()
			fm.Analyzer = standard.Name
		default:
			fm = blevesearch.NewTextFieldMapping()
			fm.Index = false
			fm.DocValues = false
		}
		fm.Store = true
		fm.IncludeInAll = false
		dm.AddFieldMappingsAt(f.Name, fm)
	}

	im.DefaultMapping = dm
	im.DefaultAnalyzer = standard.Name
	return im
}
