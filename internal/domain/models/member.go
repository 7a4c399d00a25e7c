// internal/domain/models/member.go
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Member is a person inside a family tree.
//
// TreeID is set on creation and never changes afterwards. IsRoot marks the
// anchor person a client renders the tree from.
type Member struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	TreeID     primitive.ObjectID `bson:"tree_id" json:"tree_id"`
	FirstName  string             `bson:"first_name" json:"first_name"`
	LastName   string             `bson:"last_name" json:"last_name"`
	Gender     string             `bson:"gender,omitempty" json:"gender,omitempty"`
	BirthDate  *Date              `bson:"birth_date,omitempty" json:"birth_date,omitempty"`
	DeathDate  *Date              `bson:"death_date,omitempty" json:"death_date,omitempty"`
	PhotoURL   string             `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
	IsRoot     bool               `bson:"is_root" json:"is_root"`
	Attributes Attributes         `bson:"attributes,omitempty" json:"attributes,omitempty"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}

// Attributes is the open key/value map attached to a member. Values are kept
// opaque: scalars, arrays and nested objects are stored as sent. JSON numbers
// are decoded as json.Number so large integers keep their precision; BSON
// stores them as int64 when they are integral and as double otherwise.
type Attributes map[string]any

// ErrInvalidAttribute is returned by Attributes.Validate.
var ErrInvalidAttribute = errors.New("invalid attribute")

// UnmarshalJSON decodes the map with UseNumber.
func (a *Attributes) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return err
	}
	*a = m
	return nil
}

// Validate rejects keys MongoDB cannot store through an update: keys starting
// with "$", at any depth.
func (a Attributes) Validate() error {
	return validateKeys("", a)
}

func validateKeys(prefix string, v any) error {
	switch t := v.(type) {
	case Attributes:
		return validateMap(prefix, t)
	case map[string]any:
		return validateMap(prefix, t)
	case primitive.M:
		return validateMap(prefix, t)
	case []any:
		for _, item := range t {
			if err := validateKeys(prefix, item); err != nil {
				return err
			}
		}
	case primitive.A:
		return validateKeys(prefix, []any(t))
	}
	return nil
}

func validateMap(prefix string, m map[string]any) error {
	for k, v := range m {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		if strings.HasPrefix(k, "$") {
			return fmt.Errorf("%w: %q may not start with $", ErrInvalidAttribute, path)
		}
		if err := validateKeys(path, v); err != nil {
			return err
		}
	}
	return nil
}
