package pagination

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100

	OrderASC  = "ASC"
	OrderDESC = "DESC"

	dateLayout = "2006-01-02"
)

var ErrInvalid = errors.New("invalid pagination")

// Query is the raw listing input as it arrives from a request.
type Query struct {
	PageNumber int
	Limit      int
	OrderBy    string
	Order      string
	Date       string
}

// Page is a validated window over a listing.
type Page struct {
	Skip int
	Take int

	// OrderColumn is the SQL column chosen from the listing whitelist; empty
	// means the listing's default order applies.
	OrderColumn string
	Order       string

	// Date restricts rows to those created on that UTC day.
	Date *time.Time
}

func Paginate(pageNumber, limit int) (Page, error) {
	if pageNumber < 1 {
		return Page{}, fmt.Errorf("%w: pageNumber must be >= 1", ErrInvalid)
	}
	if limit < 1 {
		return Page{}, fmt.Errorf("%w: limit must be >= 1", ErrInvalid)
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	// Postgres OFFSET is a bigint, but keeping it in int32 range also keeps
	// the multiplication from overflowing on any platform.
	if pageNumber-1 > math.MaxInt32/limit {
		return Page{}, fmt.Errorf("%w: pageNumber is too large", ErrInvalid)
	}
	return Page{Skip: (pageNumber - 1) * limit, Take: limit}, nil
}

// Resolve validates q against the sortable columns of one listing. Ordering is
// applied only when both OrderBy and Order are present.
func Resolve(q Query, columns map[string]string) (Page, error) {
	p, err := Paginate(q.PageNumber, q.Limit)
	if err != nil {
		return Page{}, err
	}

	orderBy := strings.TrimSpace(q.OrderBy)
	order := strings.ToUpper(strings.TrimSpace(q.Order))
	if order != "" && order != OrderASC && order != OrderDESC {
		return Page{}, fmt.Errorf("%w: order must be ASC or DESC", ErrInvalid)
	}
	if orderBy != "" && order != "" {
		col, ok := columns[orderBy]
		if !ok {
			return Page{}, fmt.Errorf("%w: cannot order by %q", ErrInvalid, orderBy)
		}
		p.OrderColumn = col
		p.Order = order
	}

	if d := strings.TrimSpace(q.Date); d != "" {
		t, err := time.Parse(dateLayout, d)
		if err != nil {
			return Page{}, fmt.Errorf("%w: the date is invalid, use YYYY-MM-DD", ErrInvalid)
		}
		p.Date = &t
	}

	return p, nil
}

// OrderClause renders " ORDER BY ..." using the page order or the fallback.
func (p Page) OrderClause(fallback string) string {
	if p.OrderColumn != "" && p.Order != "" {
		return " ORDER BY " + p.OrderColumn + " " + p.Order
	}
	if fallback == "" {
		return ""
	}
	return " ORDER BY " + fallback
}
