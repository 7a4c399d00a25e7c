// internal/domain/models/familytree.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FamilyTree is a named collection of members and relationships owned by one user.
//
// UserID is an opaque identifier supplied by the caller; there is no users
// collection behind it.
type FamilyTree struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	UserID      string             `bson:"user_id" json:"user_id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
