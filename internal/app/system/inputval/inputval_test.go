package inputval

import "testing"

func TestIsValidObjectID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"507f1f77bcf86cd799439011", true},
		{"FFFFFFFFFFFFFFFFFFFFFFFF", true},
		{"  507f1f77bcf86cd799439011  ", true},
		{"", false},
		{"507f1f77bcf86cd79943901", false},
		{"507f1f77bcf86cd79943901g", false},
		{"not-a-valid-id", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := IsValidObjectID(tt.id); got != tt.want {
				t.Errorf("IsValidObjectID(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	type input struct {
		TreeID string `json:"tree_id" validate:"required,objectid"`
		Name   string `json:"name" validate:"required,max=10" label:"Name"`
		Nature string `json:"nature" validate:"omitempty,oneof=biological adopted"`
	}

	tests := []struct {
		name      string
		in        input
		wantFirst string
	}{
		{"valid", input{TreeID: "507f1f77bcf86cd799439011", Name: "Jane"}, ""},
		{"valid nature", input{TreeID: "507f1f77bcf86cd799439011", Name: "Jane", Nature: "adopted"}, ""},
		{"missing tree", input{Name: "Jane"}, "tree_id is required."},
		{"bad tree", input{TreeID: "nope", Name: "Jane"}, "tree_id must be a valid id."},
		{"long name", input{TreeID: "507f1f77bcf86cd799439011", Name: "Bartholomew Jr"}, "Name must be at most 10 characters."},
		{"bad nature", input{TreeID: "507f1f77bcf86cd799439011", Name: "Jane", Nature: "step"}, "nature must be one of: biological, adopted."},
		{"missing both", input{}, "tree_id is required."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.in)
			if tt.wantFirst == "" {
				if res.HasErrors() {
					t.Fatalf("unexpected errors: %s", res.All())
				}
				return
			}
			if res.First() != tt.wantFirst {
				t.Errorf("First() = %q, want %q", res.First(), tt.wantFirst)
			}
		})
	}
}

func TestResult_All(t *testing.T) {
	r := &Result{Errors: []FieldError{{Message: "Error 1"}, {Message: "Error 2"}}}
	if r.All() != "Error 1; Error 2" {
		t.Errorf("All() = %q", r.All())
	}
	if (&Result{}).All() != "" {
		t.Error("All() on empty result should be empty")
	}
}

func TestValidate_NonStruct(t *testing.T) {
	if res := Validate("x"); !res.HasErrors() {
		t.Error("expected error for non-struct input")
	}
}
