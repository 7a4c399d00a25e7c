package trees_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apierr "github.com/dalemusser/familytree/internal/app/features/errors"
	"github.com/dalemusser/familytree/internal/app/features/trees"
	"github.com/dalemusser/familytree/internal/domain/models"
	"github.com/dalemusser/familytree/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*trees.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	handler := trees.NewHandler(db, apierr.NewErrorLogger(logger), logger)
	return handler, testutil.NewFixtures(t, db)
}

func serve(h *trees.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	trees.Routes(h).ServeHTTP(rec, req)
	return rec
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var b apierr.Body
	if err := json.Unmarshal(rec.Body.Bytes(), &b); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return b.Message
}

func TestHandleCreate_ThenList(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := serve(h, http.MethodPost, "/", `{"user_id":"u1","name":"  Smiths  ","description":"Our family"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("create: status %d, body %s", rec.Code, rec.Body.String())
	}
	var created models.FamilyTree
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if created.ID == primitive.NilObjectID {
		t.Error("expected generated id")
	}
	if created.Name != "Smiths" {
		t.Errorf("Name: got %q, want trimmed %q", created.Name, "Smiths")
	}

	rec = serve(h, http.MethodGet, "/?userId=u1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status %d", rec.Code)
	}
	var list []models.FamilyTree
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	count := 0
	for _, tr := range list {
		if tr.ID == created.ID {
			count++
		}
	}
	if count != 1 {
		t.Errorf("created tree appears %d times in list, want 1", count)
	}
}

func TestHandleCreate_StripsMarkupFromName(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := serve(h, http.MethodPost, "/", `{"user_id":"u1","name":"<b>Smiths</b>"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}
	var created models.FamilyTree
	_ = json.Unmarshal(rec.Body.Bytes(), &created)
	if created.Name != "Smiths" {
		t.Errorf("Name: got %q", created.Name)
	}
}

func TestHandleCreate_BadRequest(t *testing.T) {
	h, _ := newTestHandler(t)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing user", `{"name":"Smiths"}`, "user_id is required."},
		{"missing name", `{"user_id":"u1"}`, "name is required."},
		{"blank name", `{"user_id":"u1","name":"   "}`, "name is required."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			trees.Routes(h).ServeHTTP(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status: got %d, want 400", rec.Code)
			}
			if got := message(t, rec); got != tt.want {
				t.Errorf("message: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHandleCreate_UnparsableBodyIsInternalError(t *testing.T) {
	h, _ := newTestHandler(t)

	for _, body := range []string{`{"user_id":`, ``, `"just a string"`, `{"user_id":"u1","name":42}`} {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		rec := httptest.NewRecorder()
		trees.Routes(h).ServeHTTP(rec, req)
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("%q: status got %d, want 500", body, rec.Code)
		}
		if got := message(t, rec); got != apierr.InternalMessage {
			t.Errorf("%q: message got %q, want %q", body, got, apierr.InternalMessage)
		}
	}
}

func TestHandleCreate_TextRoundTrips(t *testing.T) {
	h, _ := newTestHandler(t)

	const desc = "Tom & Jerry's, 5 < 6"
	rec := serve(h, http.MethodPost, "/", `{"user_id":"u-text","name":"<Unknown>","description":"Tom & Jerry's, 5 < 6"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("create: status %d, body %s", rec.Code, rec.Body.String())
	}

	rec = serve(h, http.MethodGet, "/?userId=u-text", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status %d", rec.Code)
	}
	var list []models.FamilyTree
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("got %d trees, want 1", len(list))
	}
	if list[0].Description != desc {
		t.Errorf("Description: got %q, want %q", list[0].Description, desc)
	}
	if list[0].Name != "<Unknown>" {
		t.Errorf("Name: got %q, want %q", list[0].Name, "<Unknown>")
	}
}

func TestHandleList_RequiresUserID(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := serve(h, http.MethodGet, "/", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
	if got := message(t, rec); got != "userId is required." {
		t.Errorf("message: got %q", got)
	}
}

func TestHandleList_EmptyIsArray(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := serve(h, http.MethodGet, "/?userId=nobody", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("body: got %s, want []", got)
	}
}

func TestHandleDetail(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tree := fx.CreateTree(ctx, "u1", "Smiths")
	other := fx.CreateTree(ctx, "u1", "Joneses")
	a := fx.CreateMember(ctx, tree.ID, "Jane", "Smith")
	b := fx.CreateMember(ctx, tree.ID, "John", "Smith")
	c := fx.CreateMember(ctx, tree.ID, "Jill", "Smith")
	x := fx.CreateMember(ctx, other.ID, "Jack", "Jones")
	fx.CreateRelationship(ctx, tree.ID, a.ID, b.ID, "spouse")
	fx.CreateRelationship(ctx, tree.ID, a.ID, c.ID, "parent-child")
	fx.CreateRelationship(ctx, other.ID, x.ID, x.ID, "self")

	rec := serve(h, http.MethodGet, "/"+tree.ID.Hex(), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}

	var got struct {
		Tree          models.FamilyTree     `json:"tree"`
		Members       []models.Member       `json:"members"`
		Relationships []models.Relationship `json:"relationships"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Tree.ID != tree.ID {
		t.Errorf("tree id: got %s", got.Tree.ID.Hex())
	}
	if len(got.Members) != 3 {
		t.Errorf("members: got %d, want 3", len(got.Members))
	}
	if len(got.Relationships) != 2 {
		t.Errorf("relationships: got %d, want 2", len(got.Relationships))
	}
	for _, m := range got.Members {
		if m.TreeID != tree.ID {
			t.Errorf("member %s has tree %s", m.ID.Hex(), m.TreeID.Hex())
		}
	}
	for _, rel := range got.Relationships {
		if rel.TreeID != tree.ID {
			t.Errorf("relationship %s has tree %s", rel.ID.Hex(), rel.TreeID.Hex())
		}
	}
}

func TestHandleDetail_EmptyTreeHasArrays(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tree := fx.CreateTree(ctx, "u1", "Empty")
	rec := serve(h, http.MethodGet, "/"+tree.ID.Hex(), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"members":[]`) || !strings.Contains(body, `"relationships":[]`) {
		t.Errorf("expected empty arrays, got %s", body)
	}
}

func TestHandleDetail_NotFound(t *testing.T) {
	h, _ := newTestHandler(t)

	for _, id := range []string{primitive.NewObjectID().Hex(), "not-an-id"} {
		rec := serve(h, http.MethodGet, "/"+id, "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s: status got %d, want 404", id, rec.Code)
		}
	}
}
