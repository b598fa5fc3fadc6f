package request

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/companysearch/internal/domain"
	"github.com/kailas-cloud/companysearch/internal/domain/search/filter"
	"github.com/kailas-cloud/companysearch/internal/domain/search/sortkey"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed free-text length.
	MaxQueryLength  = 512
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Request is a validated search request. Region scope is kept as given; the
// merger resolves it against the declared region set.
type Request struct {
	query       string
	filters     filter.Set
	regionScope string
	locale      string
	page        int
	size        int
	sort        sortkey.Key
}

// Params carries raw request values. Zero page, size and sort select defaults.
type Params struct {
	Query       string
	Filters     filter.Set
	RegionScope string
	Locale      string
	Page        int
	Size        int
	Sort        sortkey.Key
}

// New validates and normalizes search parameters.
// Defaults: page=1, size=20, sort=relevance. Size above the maximum is rejected, not clamped.
func New(p Params) (Request, error) {
	q := strings.TrimSpace(p.Query)
	if utf8.RuneCountInString(q) > MaxQueryLength {
		return Request{}, domain.NewValidation("query", "too long (max %d chars)", MaxQueryLength)
	}

	page := p.Page
	if page == 0 {
		page = 1
	}
	if page < 1 {
		return Request{}, domain.NewValidation("page", "must be >= 1")
	}

	size := p.Size
	if size == 0 {
		size = DefaultPageSize
	}
	if size < 1 || size > MaxPageSize {
		return Request{}, domain.NewValidation("size", "must be between 1 and %d", MaxPageSize)
	}
	if page > math.MaxInt/size {
		return Request{}, domain.NewValidation("page", "too large for page size %d", size)
	}

	sk := p.Sort
	if sk == "" {
		sk = sortkey.Relevance
	}
	if !sk.IsValid() {
		return Request{}, domain.NewValidation("sort", "unknown sort key %q", string(sk))
	}

	filters, err := p.Filters.Normalize()
	if err != nil {
		return Request{}, err
	}

	return Request{
		query:       q,
		filters:     filters,
		regionScope: strings.TrimSpace(p.RegionScope),
		locale:      strings.TrimSpace(p.Locale),
		page:        page,
		size:        size,
		sort:        sk,
	}, nil
}

// Query returns the trimmed free text (may be empty).
func (r *Request) Query() string { return r.query }

// Filters returns the explicit, normalized filter set.
func (r *Request) Filters() filter.Set { return r.filters }

// RegionScope returns the requested region input, empty for global.
func (r *Request) RegionScope() string { return r.regionScope }

// Locale returns the requested number-formatting locale.
func (r *Request) Locale() string { return r.locale }

// Page returns the 1-based page number.
func (r *Request) Page() int { return r.page }

// Size returns the page size.
func (r *Request) Size() int { return r.size }

// Sort returns the sort key.
func (r *Request) Sort() sortkey.Key { return r.sort }

// Window returns the number of leading results needed to serve the page.
func (r *Request) Window() int { return r.page * r.size }
