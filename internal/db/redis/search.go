package redis

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/companysearch/internal/db"
	"github.com/kailas-cloud/companysearch/internal/domain/search/query"
)

// Pipeline fields of the search aggregation.
const (
	keyField     = "__key"
	scoreField   = "__score"
	presentField = "__present"
)

// Search runs a structured boolean query through FT.AGGREGATE ADDSCORES.
// Hits are ordered by the sort field (documents missing it last in either
// direction), then score desc, then key asc. The total comes from an
// FT.SEARCH LIMIT 0 0 sent in the same round trip.
func (s *Store) Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error) {
	if q.Index == "" {
		return nil, fmt.Errorf("index name is required")
	}
	if q.Limit < 0 || q.Offset < 0 {
		return nil, fmt.Errorf("offset and limit must not be negative")
	}

	qs := buildQuery(q.Query)
	cmds := []rueidis.Completed{
		s.b().Arbitrary("FT.SEARCH").Args(q.Index, qs, "LIMIT", "0", "0", "DIALECT", "2").Build(),
	}
	if q.Limit > 0 {
		cmds = append(cmds, s.b().Arbitrary("FT.AGGREGATE").Args(searchArgs(q, qs)...).Build())
	}
	res := s.client.DoMulti(ctx, cmds...)

	counted, err := res[0].ToArray()
	if err != nil {
		return nil, queryError(db.OpSearch, err)
	}
	total, err := parseTotal(counted)
	if err != nil {
		return nil, err
	}
	if len(res) < 2 || total == 0 {
		return &db.SearchResult{Total: total}, nil
	}

	rows, err := res[1].ToArray()
	if err != nil {
		return nil, queryError(db.OpSearch, err)
	}
	return &db.SearchResult{Total: total, Entries: parseSearchRows(rows)}, nil
}

// searchArgs builds the FT.AGGREGATE arguments for one result window.
func searchArgs(q *db.SearchQuery, qs string) []string {
	load := []string{"@" + keyField}
	for _, f := range q.Return {
		load = append(load, "@"+f)
	}
	if f := q.Sort.Field; f != "" && !slices.Contains(q.Return, f) {
		load = append(load, "@"+f)
	}

	args := []string{q.Index, qs, "ADDSCORES", "LOAD", strconv.Itoa(len(load))}
	args = append(args, load...)

	order := []string{"@" + scoreField, "DESC", "@" + keyField, "ASC"}
	if f := q.Sort.Field; f != "" {
		dir := "ASC"
		if q.Sort.Desc {
			dir = "DESC"
		}
		args = append(args, "APPLY", "exists(@"+f+")", "AS", presentField)
		order = append([]string{"@" + presentField, "DESC", "@" + f, dir}, order...)
	}
	args = append(args, "SORTBY", strconv.Itoa(len(order)))
	args = append(args, order...)

	return append(args,
		"MAX", strconv.Itoa(q.Offset+q.Limit),
		"LIMIT", strconv.Itoa(q.Offset), strconv.Itoa(q.Limit),
		"DIALECT", "2",
	)
}

// Aggregate counts matches per field value via FT.AGGREGATE GROUPBY/REDUCE COUNT.
// Groups come back ordered by count desc, value asc. A label is the FIRST_VALUE
// of the label field within the group.
func (s *Store) Aggregate(ctx context.Context, q *db.AggregateQuery) ([]db.Bucket, error) {
	if q.Index == "" || q.Field == "" {
		return nil, fmt.Errorf("index and field are required")
	}
	if q.Limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}

	field := "@" + q.Field
	args := []string{q.Index, buildQuery(q.Query)}
	if q.Label != "" {
		label := "@" + q.Label
		args = append(args,
			"LOAD", "2", field, label,
			"GROUPBY", "1", field,
			"REDUCE", "COUNT", "0", "AS", "count",
			"REDUCE", "FIRST_VALUE", "1", label, "AS", "label",
		)
	} else {
		args = append(args,
			"LOAD", "1", field,
			"GROUPBY", "1", field,
			"REDUCE", "COUNT", "0", "AS", "count",
		)
	}
	args = append(args,
		"SORTBY", "4", "@count", "DESC", field, "ASC",
		"LIMIT", "0", strconv.Itoa(q.Limit),
		"DIALECT", "2",
	)

	cmd := s.b().Arbitrary("FT.AGGREGATE").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, queryError(db.OpAggregate, err)
	}

	return parseAggregateResult(raw, q.Field)
}

// queryError marks server-side query errors as rejected so callers do not
// retry them; transport failures stay plain.
func queryError(op string, err error) error {
	if isRedisErr(err, "unknown index name") || isRedisErr(err, "no such index") {
		return &db.Error{Op: op, Err: fmt.Errorf("%w: %w", db.ErrIndexNotFound, err)}
	}
	if _, ok := rueidis.IsRedisErr(err); ok {
		return &db.Error{Op: op, Err: fmt.Errorf("%w: %w", db.ErrQueryRejected, err)}
	}
	return &db.Error{Op: op, Err: err}
}

// --- Result parsing ---

func parseTotal(raw []rueidis.RedisMessage) (int, error) {
	if len(raw) == 0 {
		return 0, nil
	}
	total, err := raw[0].AsInt64()
	if err != nil {
		return 0, fmt.Errorf("parse total: %w", err)
	}
	return int(total), nil
}

// parseSearchRows reads [num, [k, v, ...], ...] aggregation rows into entries.
// Rows without a key are skipped.
func parseSearchRows(raw []rueidis.RedisMessage) []db.SearchEntry {
	if len(raw) < 2 {
		return nil
	}
	entries := make([]db.SearchEntry, 0, len(raw)-1)
	for _, row := range raw[1:] {
		pairs, err := row.ToArray()
		if err != nil {
			continue
		}
		m := parseFieldPairs(pairs)
		key := m[keyField]
		if key == "" {
			continue
		}
		score, _ := strconv.ParseFloat(m[scoreField], 64)
		delete(m, keyField)
		delete(m, scoreField)
		delete(m, presentField)
		entries = append(entries, db.SearchEntry{Key: key, Score: score, Fields: m})
	}
	return entries
}

func parseAggregateResult(raw []rueidis.RedisMessage, field string) ([]db.Bucket, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	// [num_groups, [field, value, "count", n, ("label", l)], ...]
	buckets := make([]db.Bucket, 0, len(raw)-1)
	for _, row := range raw[1:] {
		pairs, err := row.ToArray()
		if err != nil {
			return nil, fmt.Errorf("parse group: %w", err)
		}
		m := parseFieldPairs(pairs)
		value, ok := m[field]
		if !ok || value == "" {
			continue
		}
		count, err := strconv.ParseInt(m["count"], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse count for %q: %w", value, err)
		}
		buckets = append(buckets, db.Bucket{Value: value, Label: m["label"], Count: count})
	}
	return buckets, nil
}

func parseFieldPairs(fields []rueidis.RedisMessage) map[string]string {
	m := make(map[string]string, len(fields)/2)
	for j := 0; j+1 < len(fields); j += 2 {
		name, err := fields[j].ToString()
		if err != nil {
			continue
		}
		value, err := fields[j+1].ToString()
		if err != nil {
			continue
		}
		m[name] = value
	}
	return m
}

// --- Query building ---

// buildQuery translates a query.Bool into FT.SEARCH syntax. Filter clauses
// and the should group intersect; inside the group the text clauses are a union.
func buildQuery(b query.Bool) string {
	if b.IsMatchAll() {
		return "*"
	}

	parts := make([]string, 0, len(b.Filter())+1)
	for _, c := range b.Filter() {
		if clause := buildClause(c); clause != "" {
			parts = append(parts, clause)
		}
	}

	if group := buildShouldGroup(b.Should()); group != "" {
		parts = append(parts, group)
	}

	if len(parts) == 0 {
		return "*"
	}
	return strings.Join(parts, " ")
}

func buildClause(c query.Clause) string {
	switch c.Kind {
	case query.Terms:
		return buildTagFilter(string(c.Field), c.Values)
	case query.Range:
		return buildNumericFilter(string(c.Field), c.Min, c.Max)
	case query.Prefix:
		if c.Prefix == "" {
			return ""
		}
		return fmt.Sprintf("@%s:{%s*}", c.Field, tagEscaper.Replace(c.Prefix))
	default:
		return ""
	}
}

func buildShouldGroup(texts []query.Text) string {
	parts := make([]string, 0, len(texts))
	for _, t := range texts {
		terms := strings.Fields(t.Text)
		if len(terms) == 0 {
			continue
		}
		for i, term := range terms {
			terms[i] = escapeQuery(term)
		}
		clause := fmt.Sprintf("@%s:(%s)", t.Field, strings.Join(terms, "|"))
		if t.Boost > 0 {
			clause += "=>{$weight:" + strconv.FormatFloat(t.Boost, 'f', -1, 64) + "}"
		}
		parts = append(parts, clause)
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " | ") + ")"
}

func buildTagFilter(key string, values []string) string {
	escaped := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		escaped = append(escaped, tagEscaper.Replace(v))
	}
	if len(escaped) == 0 {
		return ""
	}
	return fmt.Sprintf("@%s:{%s}", key, strings.Join(escaped, " | "))
}

func buildNumericFilter(key string, lower, upper *float64) string {
	minBound := "-inf"
	maxBound := "+inf"
	if lower != nil {
		minBound = strconv.FormatFloat(*lower, 'f', -1, 64)
	}
	if upper != nil {
		maxBound = strconv.FormatFloat(*upper, 'f', -1, 64)
	}
	return fmt.Sprintf("@%s:[%s %s]", key, minBound, maxBound)
}

// --- Query helpers ---

var tagEscaper = strings.NewReplacer(
	`\`, `\\`,
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"|", "\\|",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	"/", "\\/",
	" ", "\\ ",
)

func escapeQuery(s string) string {
	return queryEscaper.Replace(s)
}

var queryEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`"`, `\"`,
	`@`, `\@`,
	`{`, `\{`,
	`}`, `\}`,
	`(`, `\(`,
	`)`, `\)`,
	`|`, `\|`,
	`-`, `\-`,
	`~`, `\~`,
	`*`, `\*`,
	`[`, `\[`,
	`]`, `\]`,
	`!`, `\!`,
	`%`, `\%`,
	`^`, `\^`,
	`$`, `\$`,
	`<`, `\<`,
	`>`, `\>`,
	`=`, `\=`,
	`;`, `\;`,
	`+`, `\+`,
	`:`, `\:`,
	`&`, `\&`,
	`.`, `\.`,
	`,`, `\,`,
)
