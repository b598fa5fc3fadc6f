package tag

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/kailas-cloud/companysearch/internal/domain"
	"github.com/kailas-cloud/companysearch/internal/domain/search/filter"
)

// MaxNameLength is the maximum tag name length in characters.
const MaxNameLength = 100

// Snapshot is a saved filter set and region scope.
type Snapshot struct {
	Filters     filter.Set
	RegionScope string
}

// Tag is a named saved filter snapshot owned by one user.
type Tag struct {
	id        string
	userID    string
	name      string
	snapshot  Snapshot
	createdAt time.Time
}

// New validates and creates a Tag. The snapshot must already be normalized.
func New(id, userID, name string, snapshot Snapshot, createdAt time.Time) (Tag, error) {
	if id == "" {
		return Tag{}, fmt.Errorf("tag id is required")
	}
	if err := ValidateUserID(userID); err != nil {
		return Tag{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Tag{}, domain.NewValidation("name", "is required")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return Tag{}, domain.NewValidation("name", "too long (max %d chars)", MaxNameLength)
	}
	return Tag{id: id, userID: userID, name: name, snapshot: snapshot, createdAt: createdAt.UTC()}, nil
}

// Reconstruct creates a Tag without validation (storage hydration).
func Reconstruct(id, userID, name string, snapshot Snapshot, createdAt time.Time) Tag {
	return Tag{id: id, userID: userID, name: name, snapshot: snapshot, createdAt: createdAt.UTC()}
}

// ValidateUserID checks a tag owner identifier.
func ValidateUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return domain.NewValidation("user_id", "is required")
	}
	if len(userID) > 256 {
		return domain.NewValidation("user_id", "too long (max 256)")
	}
	return nil
}

// ID returns the tag identifier.
func (t *Tag) ID() string { return t.id }

// UserID returns the owner.
func (t *Tag) UserID() string { return t.userID }

// Name returns the user-chosen name.
func (t *Tag) Name() string { return t.name }

// Snapshot returns the saved filters and region scope.
func (t *Tag) Snapshot() Snapshot { return t.snapshot }

// CreatedAt returns the creation time in UTC.
func (t *Tag) CreatedAt() time.Time { return t.createdAt }

// SameName reports whether two names collide. Names compare case-insensitively.
func SameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
