package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Store key namespaces.
const (
	StatusKeyPrefix   = "status:"
	PropertyKeyPrefix = "property:"
)

// PropertyID is a tagged identifier: either a numeric catalog id or a
// "u"-prefixed user id. Parsing happens once at the boundary so the rest of
// the code never inspects prefixes.
type PropertyID struct {
	catalog int64
	user    string
}

func CatalogID(n int64) PropertyID { return PropertyID{catalog: n} }

func UserID(s string) PropertyID { return PropertyID{user: s} }

// ParsePropertyID accepts a decimal catalog id or a "u"-prefixed user id.
func ParsePropertyID(s string) (PropertyID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return PropertyID{}, fmt.Errorf("empty property id")
	}
	if strings.HasPrefix(s, "u") {
		return UserID(s), nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return PropertyID{}, fmt.Errorf("property id %q: not numeric and not u-prefixed", s)
	}
	return CatalogID(n), nil
}

func (id PropertyID) IsUser() bool { return id.user != "" }

func (id PropertyID) String() string {
	if id.user != "" {
		return id.user
	}
	return strconv.FormatInt(id.catalog, 10)
}

func (id PropertyID) StatusKey() string { return StatusKeyPrefix + id.String() }

func (id PropertyID) PropertyKey() string { return PropertyKeyPrefix + id.String() }
