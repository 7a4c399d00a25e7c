// internal/domain/models/relationship.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Relationship natures.
const (
	NatureBiological = "biological"
	NatureAdopted    = "adopted"
)

// Natures lists the allowed values for Relationship.Nature.
var Natures = []string{NatureBiological, NatureAdopted}

// Relationship links two members of the same tree.
//
// RelationshipType is free-form ("parent-child", "spouse", ...). The order of
// Person1ID and Person2ID carries direction only by convention (for
// "parent-child", person1 is the parent). The tuple
// (tree_id, person1_id, person2_id, relationship_type) is unique.
type Relationship struct {
	ID               primitive.ObjectID `bson:"_id" json:"id"`
	TreeID           primitive.ObjectID `bson:"tree_id" json:"tree_id"`
	Person1ID        primitive.ObjectID `bson:"person1_id" json:"person1_id"`
	Person2ID        primitive.ObjectID `bson:"person2_id" json:"person2_id"`
	RelationshipType string             `bson:"relationship_type" json:"relationship_type"`
	MarriageDate     *Date              `bson:"marriage_date,omitempty" json:"marriage_date,omitempty"`
	DivorceDate      *Date              `bson:"divorce_date,omitempty" json:"divorce_date,omitempty"`
	Nature           string             `bson:"nature" json:"nature"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
}

// IsValidNature reports whether s is one of Natures.
func IsValidNature(s string) bool {
	for _, n := range Natures {
		if s == n {
			return true
		}
	}
	return false
}
