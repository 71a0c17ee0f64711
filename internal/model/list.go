package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// StringList is an ordered list of strings stored as a JSON column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	return scanJSON(src, (*[]string)(l))
}

// Clone returns a copy that shares no backing array with l.
func (l StringList) Clone() StringList {
	if l == nil {
		return nil
	}
	out := make(StringList, len(l))
	copy(out, l)
	return out
}

// NormalizeSkills trims entries, drops empty ones and removes case-insensitive
// duplicates, keeping the first spelling seen.
func NormalizeSkills(skills []string) StringList {
	out := make(StringList, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}

// ParseSkills splits a comma-separated skill string and normalizes it.
func ParseSkills(csv string) StringList {
	return NormalizeSkills(strings.Split(csv, ","))
}

// IDList is a set of user ids kept in insertion order and stored as a JSON column.
type IDList []uuid.UUID

// Value implements driver.Valuer.
func (l IDList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]uuid.UUID(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *IDList) Scan(src any) error {
	return scanJSON(src, (*[]uuid.UUID)(l))
}

// Contains reports whether id is a member of the list.
func (l IDList) Contains(id uuid.UUID) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// With returns a copy of l with id appended, or a plain copy when id is already present.
func (l IDList) With(id uuid.UUID) IDList {
	out := l.Clone()
	if out == nil {
		out = IDList{}
	}
	if l.Contains(id) {
		return out
	}
	return append(out, id)
}

// Clone returns a copy that shares no backing array with l.
func (l IDList) Clone() IDList {
	if l == nil {
		return nil
	}
	out := make(IDList, len(l))
	copy(out, l)
	return out
}

func scanJSON(src any, dst any) error {
	var b []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported json column type %T", src)
	}
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, dst)
}
