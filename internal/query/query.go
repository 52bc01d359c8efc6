// Package query computes one page of filtered, sorted user records.
//
// The engine is stateless and pure: it never touches storage and trusts the
// caller to pass page 1 whenever a filter value changes.
package query

import (
	"slices"
	"strings"

	"github.com/louisbranch/userdesk/internal/user"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// PageSize is the fixed number of records per page.
const PageSize = 6

// SortKey selects the ordering of the result sequence.
type SortKey string

const (
	SortIDAsc         SortKey = "id"
	SortIDDesc        SortKey = "id desc"
	SortLastNameAsc   SortKey = "lastName"
	SortLastNameDesc  SortKey = "lastName desc"
	SortFirstNameAsc  SortKey = "firstName"
	SortFirstNameDesc SortKey = "firstName desc"
)

// Params describe one listing request.
type Params struct {
	// Sort orders the filtered sequence. Unknown or empty keys fall back to
	// ascending id.
	Sort SortKey
	// FirstName keeps records whose first name contains this substring.
	// Case-sensitive; empty means no filtering on the field.
	FirstName string
	// LastName keeps records whose last name contains this substring.
	LastName string
	// Page is 1-based. Non-positive values default to 1.
	Page int
}

// Page is one window of the filtered, sorted sequence plus pagination metadata.
type Page struct {
	Users       []user.User
	Index       int
	TotalCount  int
	TotalPages  int
	HasPrevious bool
	HasNext     bool
}

// Run slices one page out of the given collection.
//
// The collection is expected in its stored order (ascending id); ties under
// any sort key keep that relative order.
func Run(users []user.User, params Params) Page {
	page := params.Page
	if page < 1 {
		page = 1
	}

	filtered := filter(users, params.FirstName, params.LastName)
	sortUsers(filtered, params.Sort)

	totalCount := len(filtered)
	totalPages := (totalCount + PageSize - 1) / PageSize

	start := (page - 1) * PageSize
	end := start + PageSize
	window := []user.User{}
	if start < totalCount {
		if end > totalCount {
			end = totalCount
		}
		window = filtered[start:end]
	}

	return Page{
		Users:       window,
		Index:       page,
		TotalCount:  totalCount,
		TotalPages:  totalPages,
		HasPrevious: page > 1,
		HasNext:     page < totalPages,
	}
}

func filter(users []user.User, firstName, lastName string) []user.User {
	kept := make([]user.User, 0, len(users))
	for _, u := range users {
		if firstName != "" && !strings.Contains(u.FirstName, firstName) {
			continue
		}
		if lastName != "" && !strings.Contains(u.LastName, lastName) {
			continue
		}
		kept = append(kept, u)
	}
	return kept
}

// sortUsers applies the sort key with a stable order. Name comparisons use
// the Czech collation the source data was authored under, so "Černý" sorts
// with C rather than after Z.
func sortUsers(users []user.User, key SortKey) {
	switch key {
	case SortIDDesc:
		slices.SortStableFunc(users, func(a, b user.User) int {
			return compareInt64(b.ID, a.ID)
		})
	case SortLastNameAsc:
		c := newCollator()
		slices.SortStableFunc(users, func(a, b user.User) int {
			return c.CompareString(a.LastName, b.LastName)
		})
	case SortLastNameDesc:
		c := newCollator()
		slices.SortStableFunc(users, func(a, b user.User) int {
			return c.CompareString(b.LastName, a.LastName)
		})
	case SortFirstNameAsc:
		c := newCollator()
		slices.SortStableFunc(users, func(a, b user.User) int {
			return c.CompareString(a.FirstName, b.FirstName)
		})
	case SortFirstNameDesc:
		c := newCollator()
		slices.SortStableFunc(users, func(a, b user.User) int {
			return c.CompareString(b.FirstName, a.FirstName)
		})
	default:
		slices.SortStableFunc(users, func(a, b user.User) int {
			return compareInt64(a.ID, b.ID)
		})
	}
}

// newCollator returns a fresh collator per sort; collators carry internal
// buffers and are not safe for shared use.
func newCollator() *collate.Collator {
	return collate.New(language.Czech)
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
