// internal/app/features/relationships/types.go
package relationships

import (
	"github.com/dalemusser/familytree/internal/app/system/htmlsanitize"
	"github.com/dalemusser/familytree/internal/app/system/normalize"
	"github.com/dalemusser/familytree/internal/app/system/patch"
	"github.com/dalemusser/familytree/internal/domain/models"
)

// duplicateMessage is returned with 409 for a repeated
// (tree_id, person1_id, person2_id, relationship_type).
const duplicateMessage = "Relationship already exists."

type createRelationshipInput struct {
	TreeID           string       `json:"tree_id" validate:"required,objectid"`
	Person1ID        string       `json:"person1_id" validate:"required,objectid"`
	Person2ID        string       `json:"person2_id" validate:"required,objectid"`
	RelationshipType string       `json:"relationship_type" validate:"required"`
	MarriageDate     *models.Date `json:"marriage_date"`
	DivorceDate      *models.Date `json:"divorce_date"`
	Nature           string       `json:"nature" validate:"omitempty,oneof=biological adopted"`
}

func (in *createRelationshipInput) normalize() {
	in.TreeID = normalize.ID(in.TreeID)
	in.Person1ID = normalize.ID(in.Person1ID)
	in.Person2ID = normalize.ID(in.Person2ID)
	in.RelationshipType = cleanType(in.RelationshipType)
	in.Nature = normalize.Keyword(in.Nature)
}

func cleanType(s string) string {
	return htmlsanitize.PlainText(normalize.Name(s))
}

// updateSpec is the allow-list for PUT /relationships/{id}.
var updateSpec = patch.Spec{
	Fields: []patch.Field{
		{Name: "relationship_type", Kind: patch.RequiredText, Clean: cleanType},
		{Name: "marriage_date", Kind: patch.Date},
		{Name: "divorce_date", Kind: patch.Date},
		{Name: "nature", Kind: patch.Enum, Options: models.Natures, Clean: normalize.Keyword},
	},
	ReadOnly: []string{"id", "_id", "tree_id", "person1_id", "person2_id", "created_at"},
}
