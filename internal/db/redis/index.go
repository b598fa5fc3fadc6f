package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/kailas-cloud/companysearch/internal/db"
)

// CreateIndex runs FT.CREATE. An existing index yields db.ErrIndexExists.
func (s *Store) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	args, err := createArgs(def)
	if err != nil {
		return err
	}
	if err := s.do(ctx, s.b().Arbitrary(db.OpCreateIndex).Args(args...).Build()).Error(); err != nil {
		return indexErr(db.OpCreateIndex, err)
	}
	return nil
}

// DropIndex runs FT.DROPINDEX, keeping the documents.
func (s *Store) DropIndex(ctx context.Context, name string) error {
	if err := s.do(ctx, s.b().Arbitrary(db.OpDropIndex).Args(name).Build()).Error(); err != nil {
		return indexErr(db.OpDropIndex, err)
	}
	return nil
}

// IndexExists checks the index with FT.INFO.
func (s *Store) IndexExists(ctx context.Context, name string) (bool, error) {
	err := s.do(ctx, s.b().Arbitrary(db.OpIndexInfo).Args(name).Build()).Error()
	if err == nil {
		return true, nil
	}
	if err = indexErr(db.OpIndexInfo, err); errors.Is(err, db.ErrIndexNotFound) {
		return false, nil
	}
	return false, err
}

// UpdateSynonyms replaces one synonym group. Groups apply to every TEXT field of the index.
func (s *Store) UpdateSynonyms(ctx context.Context, index, groupID string, terms []string) error {
	if len(terms) == 0 {
		return errors.New("synonym group requires at least one term")
	}
	args := append([]string{index, groupID}, terms...)
	if err := s.do(ctx, s.b().Arbitrary(db.OpSynUpdate).Args(args...).Build()).Error(); err != nil {
		return indexErr(db.OpSynUpdate, err)
	}
	return nil
}

// createArgs renders FT.CREATE arguments:
// <name> ON HASH [PREFIX n p...] SCHEMA <field>...
func createArgs(def *db.IndexDefinition) ([]string, error) {
	if def.Name == "" {
		return nil, errors.New("index name is required")
	}
	if len(def.Fields) == 0 {
		return nil, errors.New("at least one field is required")
	}

	storage := def.StorageType
	if storage == "" {
		storage = db.StorageHash
	}
	args := []string{def.Name, "ON", string(storage)}
	if n := len(def.Prefixes); n > 0 {
		args = append(args, "PREFIX", strconv.Itoa(n))
		args = append(args, def.Prefixes...)
	}
	args = append(args, "SCHEMA")

	indexed := 0
	for i := range def.Fields {
		fa, err := fieldArgs(&def.Fields[i])
		if err != nil {
			return nil, err
		}
		if fa != nil {
			indexed++
			args = append(args, fa...)
		}
	}
	if indexed == 0 {
		return nil, errors.New("at least one indexed field is required")
	}
	return args, nil
}

// fieldArgs returns nil for stored-only fields; FT.AGGREGATE LOAD reads hash fields outside the schema too.
func fieldArgs(f *db.IndexField) ([]string, error) {
	if f.Name == "" {
		return nil, errors.New("field name is required")
	}
	var fa []string
	switch f.Type {
	case db.IndexFieldStored:
		return nil, nil
	case db.IndexFieldNumeric:
		fa = []string{f.Name, "NUMERIC"}
	case db.IndexFieldText:
		fa = []string{f.Name, "TEXT"}
		if f.Weight > 0 {
			fa = append(fa, "WEIGHT", strconv.FormatFloat(f.Weight, 'f', -1, 64))
		}
	case db.IndexFieldTag:
		fa = []string{f.Name, "TAG"}
		if f.TagSeparator != "" {
			fa = append(fa, "SEPARATOR", f.TagSeparator)
		}
		if f.TagCaseSensitive {
			fa = append(fa, "CASESENSITIVE")
		}
	default:
		return nil, fmt.Errorf("field %q: unknown type %d", f.Name, f.Type)
	}
	if f.Sortable {
		fa = append(fa, "SORTABLE")
	}
	return fa, nil
}
