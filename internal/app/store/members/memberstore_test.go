package memberstore_test

import (
	"errors"
	"testing"
	"time"

	memberstore "github.com/dalemusser/familytree/internal/app/store/members"
	"github.com/dalemusser/familytree/internal/app/system/patch"
	"github.com/dalemusser/familytree/internal/domain/models"
	"github.com/dalemusser/familytree/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create_Defaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	treeID := primitive.NewObjectID()
	birth := models.NewDate(1950, time.March, 4)
	created, err := store.Create(ctx, models.Member{
		TreeID:    treeID,
		FirstName: "Ada",
		LastName:  "Smith",
		BirthDate: &birth,
		Attributes: models.Attributes{
			"occupation": "engineer",
			"languages":  []any{"en", "fr"},
		},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.IsRoot {
		t.Error("expected IsRoot to default to false")
	}
	if created.CreatedAt.IsZero() || !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Errorf("expected equal non-zero timestamps, got %v / %v", created.CreatedAt, created.UpdatedAt)
	}

	found, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if found.TreeID != treeID {
		t.Errorf("TreeID: got %s, want %s", found.TreeID.Hex(), treeID.Hex())
	}
	if found.BirthDate == nil || found.BirthDate.String() != "1950-03-04" {
		t.Errorf("BirthDate: got %v", found.BirthDate)
	}
	if found.DeathDate != nil {
		t.Errorf("DeathDate: expected nil, got %v", found.DeathDate)
	}
	if found.Attributes["occupation"] != "engineer" {
		t.Errorf("Attributes: got %v", found.Attributes)
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.GetByID(ctx, primitive.NewObjectID())
	if !errors.Is(err, memberstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_ListByTree(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tree := fx.CreateTree(ctx, "u1", "T")
	other := fx.CreateTree(ctx, "u1", "Other")
	fx.CreateMember(ctx, tree.ID, "A", "One")
	fx.CreateMember(ctx, tree.ID, "B", "Two")
	fx.CreateMember(ctx, other.ID, "C", "Three")

	members, err := store.ListByTree(ctx, tree.ID)
	if err != nil {
		t.Fatalf("ListByTree failed: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}
	for _, m := range members {
		if m.TreeID != tree.ID {
			t.Errorf("member %s belongs to tree %s", m.ID.Hex(), m.TreeID.Hex())
		}
	}

	none, err := store.ListByTree(ctx, primitive.NewObjectID())
	if err != nil {
		t.Fatalf("ListByTree failed: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", none)
	}
}

func TestStore_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tree := fx.CreateTree(ctx, "u1", "T")
	m := fx.CreateMember(ctx, tree.ID, "Ada", "Smith")
	time.Sleep(5 * time.Millisecond)

	updated, err := store.Update(ctx, m.ID, patch.Changes{
		Set:   bson.M{"first_name": "Adeline", "is_root": true},
		Unset: bson.M{"gender": ""},
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.FirstName != "Adeline" || !updated.IsRoot {
		t.Errorf("update not applied: %+v", updated)
	}
	if updated.LastName != "Smith" {
		t.Errorf("LastName should be unchanged, got %q", updated.LastName)
	}
	if updated.TreeID != tree.ID {
		t.Errorf("TreeID should be unchanged")
	}
	if !updated.UpdatedAt.After(m.UpdatedAt) {
		t.Errorf("UpdatedAt not refreshed: %v vs %v", updated.UpdatedAt, m.UpdatedAt)
	}
}

func TestStore_Update_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Update(ctx, primitive.NewObjectID(), patch.Changes{Set: bson.M{"first_name": "X"}})
	if !errors.Is(err, memberstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tree := fx.CreateTree(ctx, "u1", "T")
	m := fx.CreateMember(ctx, tree.ID, "Ada", "Smith")

	n, err := store.Delete(ctx, m.ID)
	if err != nil || n != 1 {
		t.Fatalf("Delete: got %d, %v", n, err)
	}
	n, err = store.Delete(ctx, m.ID)
	if err != nil || n != 0 {
		t.Errorf("second Delete: got %d, %v", n, err)
	}
}
