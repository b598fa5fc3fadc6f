package bleve

import (
	"context"
	"strconv"
	"strings"

	"github.com/kailas-cloud/companysearch/internal/db"
)

// PutDocuments indexes records in one batch, keyed by Record.Key.
func (s *Store) PutDocuments(_ context.Context, name string, items []db.Record) error {
	idx, err := s.get(name)
	if err != nil {
		return &db.Error{Op: db.OpHSet, Err: err}
	}

	batch := idx.bleve.NewBatch()
	for _, item := range items {
		if len(item.Fields) == 0 {
			continue
		}
		if err := batch.Index(item.Key, toDocument(idx.def, item.Fields)); err != nil {
			return &db.Error{Op: db.OpHSet, Err: err}
		}
	}
	if err := idx.bleve.Batch(batch); err != nil {
		return &db.Error{Op: db.OpHSet, Err: err}
	}
	return nil
}

// toDocument converts flat string fields to typed bleve values. Numeric fields
// that fail to parse are left out so they count as missing.
func toDocument(def *db.IndexDefinition, fields map[string]string) map[string]any {
	doc := make(map[string]any, len(fields))
	for name, raw := range fields {
		f, ok := def.Field(name)
		if !ok {
			continue
		}
		switch f.Type {
		case db.IndexFieldNumeric:
			v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				continue
			}
			doc[name] = v
		case db.IndexFieldTag:
			if f.TagSeparator != "" {
				parts := splitTag(raw, f)
				if len(parts) > 0 {
					doc[name] = parts
				}
				continue
			}
			if v := tagValue(raw, f); v != "" {
				doc[name] = v
			}
		default:
			doc[name] = raw
		}
	}
	return doc
}

// fromHit flattens stored bleve values back to strings.
func fromHit(def *db.IndexDefinition, stored map[string]any) map[string]string {
	out := make(map[string]string, len(stored))
	for name, v := range stored {
		switch val := v.(type) {
		case string:
			out[name] = val
		case float64:
			out[name] = strconv.FormatFloat(val, 'f', -1, 64)
		case []any:
			sep := ","
			if f, ok := def.Field(name); ok && f.TagSeparator != "" {
				sep = f.TagSeparator
			}
			parts := make([]string, 0, len(val))
			for _, p := range val {
				switch pv := p.(type) {
				case string:
					parts = append(parts, pv)
				case float64:
					parts = append(parts, strconv.FormatFloat(pv, 'f', -1, 64))
				}
			}
			out[name] = strings.Join(parts, sep)
		}
	}
	return out
}

func tagValue(raw string, f db.IndexField) string {
	v := strings.TrimSpace(raw)
	if !f.TagCaseSensitive {
		v = strings.ToLower(v)
	}
	return v
}

func splitTag(raw string, f db.IndexField) []string {
	var out []string
	for _, p := range strings.Split(raw, f.TagSeparator) {
		if v := tagValue(p, f); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func normalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	seen := make(map[string]bool, len(terms))
	for _, t := range terms {
		t = strings.Join(strings.Fields(strings.ToLower(t)), " ")
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
