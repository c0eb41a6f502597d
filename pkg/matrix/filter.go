package matrix

import (
	"errors"
	"fmt"
	"strings"
)

// Issue selects rows by problem kind.
type Issue string

const (
	IssueNone         Issue = ""
	IssueAny          Issue = "any"
	IssueMissing      Issue = "missing"
	IssuePlaceholders Issue = "placeholders"
	IssueEmpty        Issue = "empty"
)

var ErrUnknownIssue = errors.New("matrix: unknown issue filter")

// ParseIssue validates an issue filter value.
func ParseIssue(s string) (Issue, error) {
	switch i := Issue(s); i {
	case IssueNone, IssueAny, IssueMissing, IssuePlaceholders, IssueEmpty:
		return i, nil
	default:
		return IssueNone, fmt.Errorf("%w: %q", ErrUnknownIssue, s)
	}
}

// Filter narrows the rows of a matrix. Zero fields match everything; a zero
// Limit means no limit.
type Filter struct {
	Namespace string
	Query     string
	Issues    Issue
	Offset    int
	Limit     int
}

// Filter returns the matching rows in matrix order and the number of matches
// before pagination.
func (m *Matrix) Filter(f Filter) ([]Row, int) {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	matched := make([]Row, 0, len(m.Rows))
	for _, r := range m.Rows {
		if f.Namespace != "" && r.Namespace != f.Namespace {
			continue
		}
		if !f.Issues.matches(r) {
			continue
		}
		if query != "" && !r.contains(query) {
			continue
		}
		matched = append(matched, r)
	}

	total := len(matched)
	offset := min(max(f.Offset, 0), total)
	end := total
	if f.Limit > 0 && f.Limit < total-offset {
		end = offset + f.Limit
	}
	return matched[offset:end], total
}

func (i Issue) matches(r Row) bool {
	switch i {
	case IssueMissing:
		return r.Missing()
	case IssuePlaceholders:
		return r.HasPlaceholderIssues()
	case IssueEmpty:
		return r.HasEmpty()
	case IssueAny:
		return r.Missing() || r.HasPlaceholderIssues() || r.HasEmpty()
	default:
		return true
	}
}

func (r Row) contains(query string) bool {
	if strings.Contains(strings.ToLower(r.DotKey), query) {
		return true
	}
	for _, c := range r.Cells {
		if c != nil && strings.Contains(strings.ToLower(c.Value), query) {
			return true
		}
	}
	return false
}
