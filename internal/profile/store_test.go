package profile

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"resumeforge/internal/database"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:profile_"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&database.Profile{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewStore(db)
}

func TestGet_NoProfile(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), 1)
	if !errors.Is(err, ErrNoProfile) {
		t.Fatalf("expected ErrNoProfile, got %v", err)
	}
}

func TestSave_RoundTripsSequencesInOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	in := Profile{
		FullName:    "Ada Lovelace",
		Email:       "ada@example.com",
		Phone:       "123-456-7890",
		College:     "Analytical University",
		Degree:      "B.Sc. Mathematics",
		PassingYear: "1842",
		Skills:      []string{"Go", "Rust", "TS"},
		Projects: []Project{
			{Title: "Engine", Link: "https://example.com/engine", Description: "Difference engine notes"},
		},
		Experience: []string{"Babbage & Co - Analyst - 2y", "Royal Society - Fellow - 1y"},
	}
	if err := store.Save(ctx, 1, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := store.Get(ctx, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !reflect.DeepEqual(out.Skills, in.Skills) {
		t.Fatalf("skills mismatch: got %v want %v", out.Skills, in.Skills)
	}
	if !reflect.DeepEqual(out.Experience, in.Experience) {
		t.Fatalf("experience mismatch: got %v want %v", out.Experience, in.Experience)
	}
	if !reflect.DeepEqual(out.Projects, in.Projects) {
		t.Fatalf("projects mismatch: got %+v want %+v", out.Projects, in.Projects)
	}
	if out.FullName != in.FullName || out.PassingYear != in.PassingYear {
		t.Fatalf("scalar fields mismatch: got %+v", out)
	}
}

func TestSave_OverwritesWholesale(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := Profile{
		FullName: "Ada Lovelace",
		Skills:   []string{"Go", "Rust"},
		Projects: []Project{{Title: "Engine"}},
	}
	if err := store.Save(ctx, 1, first); err != nil {
		t.Fatalf("first save: %v", err)
	}

	second := Profile{
		FullName:   "Ada King",
		Skills:     []string{"Python"},
		Experience: []string{"Somewhere - Engineer - 3y"},
	}
	if err := store.Save(ctx, 1, second); err != nil {
		t.Fatalf("second save: %v", err)
	}

	out, err := store.Get(ctx, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if out.FullName != "Ada King" {
		t.Fatalf("expected overwritten name, got %q", out.FullName)
	}
	if !reflect.DeepEqual(out.Skills, []string{"Python"}) {
		t.Fatalf("expected skills replaced, got %v", out.Skills)
	}
	if len(out.Projects) != 0 {
		t.Fatalf("expected projects discarded, got %+v", out.Projects)
	}

	var count int64
	if err := store.db.Model(&database.Profile{}).Where("user_id = ?", 1).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one profile row, got %d", count)
	}
}

func TestSave_NormalizesProjects(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	in := Profile{
		Projects: []Project{
			{Title: "  ", Link: "https://example.com", Description: "dropped, no title"},
			{Title: "Linkless", Link: "", Description: "kept"},
			{Title: " Portfolio ", Link: " https://example.com/p ", Description: " site "},
		},
	}
	if err := store.Save(ctx, 7, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := store.Get(ctx, 7)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	want := []Project{
		{Title: "Linkless", Link: "", Description: "kept"},
		{Title: "Portfolio", Link: "https://example.com/p", Description: "site"},
	}
	if !reflect.DeepEqual(out.Projects, want) {
		t.Fatalf("projects mismatch: got %+v want %+v", out.Projects, want)
	}
}

func TestSave_StoresLinkSentinel(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, 3, Profile{Projects: []Project{{Title: "Linkless"}}}); err != nil {
		t.Fatalf("save: %v", err)
	}

	// 哨兵值只存在于存储编码中，读取方永远看不到 "none"。
	var record database.Profile
	if err := store.db.Where("user_id = ?", 3).First(&record).Error; err != nil {
		t.Fatalf("load raw record: %v", err)
	}
	var stored []storedProject
	if err := unmarshalJSON(record.Projects, &stored); err != nil {
		t.Fatalf("decode raw projects: %v", err)
	}
	if len(stored) != 1 || stored[0].Link != linkSentinel {
		t.Fatalf("expected stored link sentinel, got %+v", stored)
	}

	out, err := store.Get(ctx, 3)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if out.Projects[0].Link != "" {
		t.Fatalf("expected decoded empty link, got %q", out.Projects[0].Link)
	}
}

func TestSave_DropsEmptySequenceEntries(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	in := Profile{
		Skills:     []string{" Go ", "", "  ", "SQL"},
		Experience: []string{"", "Acme - Dev - 1y"},
	}
	if err := store.Save(ctx, 9, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := store.Get(ctx, 9)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !reflect.DeepEqual(out.Skills, []string{"Go", "SQL"}) {
		t.Fatalf("skills mismatch: got %v", out.Skills)
	}
	if !reflect.DeepEqual(out.Experience, []string{"Acme - Dev - 1y"}) {
		t.Fatalf("experience mismatch: got %v", out.Experience)
	}
}

func TestSave_RequiresUserID(t *testing.T) {
	store := newTestStore(t)
	if err := store.Save(context.Background(), 0, Profile{}); err == nil {
		t.Fatal("expected error for missing user id")
	}
}
