// Package validate checks decoded JSON request bodies against declarative
// per-field constraints, collecting every violation rather than stopping
// at the first.
package validate

import (
	"strings"
	"unicode"

	"github.com/todoflow-labs/list-service/internal/apperr"
)

// Type names a JSON type a field must decode to.
type Type string

const (
	String  Type = "string"
	Boolean Type = "boolean"
)

// Rule is the set of checks declared for one field.
type Rule struct {
	Field    string
	Presence bool
	Type     Type
}

// Constraints is an ordered rule set for one operation's request body.
type Constraints []Rule

// Check evaluates the constraints against a decoded JSON object and
// returns a validation error listing every violation, or nil.
func (c Constraints) Check(values map[string]any) *apperr.Error {
	fields := map[string][]string{}
	for _, rule := range c {
		value, present := values[rule.Field]
		label := humanize(rule.Field)

		if rule.Presence && isBlank(value, present) {
			fields[rule.Field] = append(fields[rule.Field], label+" can't be blank")
			continue
		}
		if rule.Type == "" || !present || value == nil {
			continue
		}
		if !isType(value, rule.Type) {
			fields[rule.Field] = append(fields[rule.Field], label+" must be of type "+string(rule.Type))
		}
	}
	if len(fields) > 0 {
		return apperr.Validation(fields)
	}
	return nil
}

func isBlank(value any, present bool) bool {
	if !present || value == nil {
		return true
	}
	s, ok := value.(string)
	return ok && strings.TrimSpace(s) == ""
}

func isType(value any, t Type) bool {
	switch t {
	case String:
		_, ok := value.(string)
		return ok
	case Boolean:
		_, ok := value.(bool)
		return ok
	}
	return false
}

// humanize turns a camelCase field name into the label used in
// violation messages: "listId" becomes "List Id".
func humanize(field string) string {
	var b strings.Builder
	for i, r := range field {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteByte(' ')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
