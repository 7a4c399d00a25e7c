// internal/app/features/members/types.go
package members

import (
	"github.com/dalemusser/familytree/internal/app/system/htmlsanitize"
	"github.com/dalemusser/familytree/internal/app/system/normalize"
	"github.com/dalemusser/familytree/internal/app/system/patch"
	"github.com/dalemusser/familytree/internal/domain/models"
)

type createMemberInput struct {
	TreeID     string            `json:"tree_id" validate:"required,objectid"`
	FirstName  string            `json:"first_name" validate:"required"`
	LastName   string            `json:"last_name" validate:"required"`
	Gender     string            `json:"gender"`
	BirthDate  *models.Date      `json:"birth_date"`
	DeathDate  *models.Date      `json:"death_date"`
	PhotoURL   string            `json:"photo_url"`
	IsRoot     bool              `json:"is_root"`
	Attributes models.Attributes `json:"attributes"`
}

func (in *createMemberInput) normalize() {
	in.TreeID = normalize.ID(in.TreeID)
	in.FirstName = cleanName(in.FirstName)
	in.LastName = cleanName(in.LastName)
	in.Gender = normalize.Gender(in.Gender)
	in.PhotoURL = normalize.Text(in.PhotoURL)
}

func cleanName(s string) string {
	return htmlsanitize.PlainText(normalize.Name(s))
}

// updateSpec is the allow-list for PUT /members/{id}.
var updateSpec = patch.Spec{
	Fields: []patch.Field{
		{Name: "first_name", Kind: patch.RequiredText, Clean: cleanName},
		{Name: "last_name", Kind: patch.RequiredText, Clean: cleanName},
		{Name: "gender", Kind: patch.Text, Clean: normalize.Gender},
		{Name: "birth_date", Kind: patch.Date},
		{Name: "death_date", Kind: patch.Date},
		{Name: "photo_url", Kind: patch.Text, Clean: normalize.Text},
		{Name: "is_root", Kind: patch.Bool},
		{Name: "attributes", Kind: patch.Attributes},
	},
	ReadOnly: []string{"id", "_id", "tree_id", "created_at", "updated_at"},
}
