// Package patch turns a JSON partial-update body into a MongoDB $set/$unset
// pair, accepting only an explicit allow-list of mutable fields.
package patch

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/dalemusser/familytree/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
)

// Kind is the value type a field accepts.
type Kind int

const (
	// Text is an optional string. null or "" removes the field.
	Text Kind = iota
	// RequiredText is a string that may not be null or blank.
	RequiredText
	// Bool is a boolean. null is rejected.
	Bool
	// Date is a models.Date. null removes the field.
	Date
	// Enum is a string from Field.Options. null is rejected.
	Enum
	// Attributes is a models.Attributes map. null removes the field.
	Attributes
)

// Field describes one mutable field.
type Field struct {
	Name    string
	Kind    Kind
	Options []string            // allowed values for Enum
	Clean   func(string) string // applied to text kinds before checks
}

// Spec is the full update contract for one document type.
type Spec struct {
	Fields   []Field
	ReadOnly []string // known fields that exist on the document but cannot change
}

// Changes is the outcome of Apply.
type Changes struct {
	Set   bson.M
	Unset bson.M
}

// Empty reports whether Apply produced nothing to write.
func (c Changes) Empty() bool { return len(c.Set) == 0 && len(c.Unset) == 0 }

// Update renders the changes as a MongoDB update document.
func (c Changes) Update() bson.M {
	u := bson.M{}
	if len(c.Set) > 0 {
		u["$set"] = c.Set
	}
	if len(c.Unset) > 0 {
		u["$unset"] = c.Unset
	}
	return u
}

// Error is a rejected field. Its message is safe to return to the caller.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Message }

// Apply validates body against the field table. Fields are checked in name order so
// the first reported error is deterministic.
func (s Spec) Apply(body map[string]json.RawMessage) (Changes, error) {
	ch := Changes{Set: bson.M{}, Unset: bson.M{}}

	byName := make(map[string]Field, len(s.Fields))
	for _, f := range s.Fields {
		byName[f.Name] = f
	}
	readOnly := make(map[string]bool, len(s.ReadOnly))
	for _, n := range s.ReadOnly {
		readOnly[n] = true
	}

	keys := make([]string, 0, len(body))
	for k := range body {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		f, ok := byName[k]
		if !ok {
			if readOnly[k] {
				return Changes{}, &Error{Field: k, Message: fmt.Sprintf("%s cannot be changed.", k)}
			}
			return Changes{}, &Error{Field: k, Message: fmt.Sprintf("%s is not an updatable field.", k)}
		}
		if err := f.apply(body[k], &ch); err != nil {
			return Changes{}, err
		}
	}
	return ch, nil
}

func isNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}

func (f Field) fail(format string, args ...any) error {
	return &Error{Field: f.Name, Message: f.Name + " " + fmt.Sprintf(format, args...)}
}

func (f Field) text(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", f.fail("must be a string.")
	}
	if f.Clean != nil {
		s = f.Clean(s)
	}
	return s, nil
}

func (f Field) apply(raw json.RawMessage, ch *Changes) error {
	switch f.Kind {
	case Text:
		if isNull(raw) {
			ch.Unset[f.Name] = ""
			return nil
		}
		s, err := f.text(raw)
		if err != nil {
			return err
		}
		if s == "" {
			ch.Unset[f.Name] = ""
			return nil
		}
		ch.Set[f.Name] = s

	case RequiredText:
		if isNull(raw) {
			return f.fail("is required.")
		}
		s, err := f.text(raw)
		if err != nil {
			return err
		}
		if s == "" {
			return f.fail("is required.")
		}
		ch.Set[f.Name] = s

	case Bool:
		var b bool
		if isNull(raw) || json.Unmarshal(raw, &b) != nil {
			return f.fail("must be true or false.")
		}
		ch.Set[f.Name] = b

	case Date:
		if isNull(raw) {
			ch.Unset[f.Name] = ""
			return nil
		}
		var d models.Date
		if err := json.Unmarshal(raw, &d); err != nil {
			return f.fail("must be a date (YYYY-MM-DD).")
		}
		ch.Set[f.Name] = d

	case Enum:
		if isNull(raw) {
			return f.fail("must be one of: %s.", strings.Join(f.Options, ", "))
		}
		s, err := f.text(raw)
		if err != nil {
			return err
		}
		for _, o := range f.Options {
			if s == o {
				ch.Set[f.Name] = s
				return nil
			}
		}
		return f.fail("must be one of: %s.", strings.Join(f.Options, ", "))

	case Attributes:
		if isNull(raw) {
			ch.Unset[f.Name] = ""
			return nil
		}
		var a models.Attributes
		if err := json.Unmarshal(raw, &a); err != nil {
			return f.fail("must be an object.")
		}
		if err := a.Validate(); err != nil {
			return &Error{Field: f.Name, Message: err.Error()}
		}
		ch.Set[f.Name] = a

	default:
		return f.fail("has an unsupported type.")
	}
	return nil
}
