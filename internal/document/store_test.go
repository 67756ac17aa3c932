package document

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"resumeforge/internal/database"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:document_"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&database.Document{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewStore(db)
}

func backdate(t *testing.T, store *Store, id uint, at time.Time) {
	t.Helper()
	if err := store.db.Model(&database.Document{}).
		Where("id = ?", id).
		UpdateColumn("updated_at", at).Error; err != nil {
		t.Fatalf("backdate document %d: %v", id, err)
	}
}

func TestCreate_Validation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Create(ctx, 1, "  ", "<p>body</p>"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for empty name, got %v", err)
	}
	if _, err := store.Create(ctx, 1, "My Resume", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for empty content, got %v", err)
	}
}

func TestOwnershipIsolation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	doc, err := store.Create(ctx, 1, "My Resume", "<p>body</p>")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// 其他用户的读取、更新、删除都必须表现为"不存在"。
	if _, err := store.GetByID(ctx, doc.ID, 2); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get by other owner: expected ErrNotFound, got %v", err)
	}
	if _, err := store.Update(ctx, doc.ID, 2, "Stolen", "<p>x</p>"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update by other owner: expected ErrNotFound, got %v", err)
	}
	if err := store.Delete(ctx, doc.ID, 2); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete by other owner: expected ErrNotFound, got %v", err)
	}

	got, err := store.GetByID(ctx, doc.ID, 1)
	if err != nil {
		t.Fatalf("owner get: %v", err)
	}
	if got.Name != "My Resume" || got.Content != "<p>body</p>" {
		t.Fatalf("document mutated: %+v", got)
	}
}

func TestGetByID_UnknownID(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.GetByID(context.Background(), 999, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListForOwner_OrdersByRecency(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	d1, err := store.Create(ctx, 1, "First", "<p>1</p>")
	if err != nil {
		t.Fatalf("create d1: %v", err)
	}
	d2, err := store.Create(ctx, 1, "Second", "<p>2</p>")
	if err != nil {
		t.Fatalf("create d2: %v", err)
	}
	if _, err := store.Create(ctx, 2, "Other", "<p>o</p>"); err != nil {
		t.Fatalf("create other: %v", err)
	}

	base := time.Now().Add(-time.Hour)
	backdate(t, store, d1.ID, base)
	backdate(t, store, d2.ID, base.Add(time.Minute))

	// 更新 D1 后它应当排到最前。
	if _, err := store.Update(ctx, d1.ID, 1, "First v2", "<p>1b</p>"); err != nil {
		t.Fatalf("update d1: %v", err)
	}

	list, err := store.ListForOwner(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(list))
	}
	if list[0].ID != d1.ID || list[1].ID != d2.ID {
		t.Fatalf("unexpected order: %+v", list)
	}
	if list[0].Name != "First v2" {
		t.Fatalf("expected updated name, got %q", list[0].Name)
	}
}

func TestUpdate_RefreshesTimestampAndValidates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	doc, err := store.Create(ctx, 1, "Doc", "<p>v1</p>")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	backdate(t, store, doc.ID, time.Now().Add(-time.Hour))
	before, err := store.GetByID(ctx, doc.ID, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if _, err := store.Update(ctx, doc.ID, 1, "", "<p>v2</p>"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	updated, err := store.Update(ctx, doc.ID, 1, "Doc v2", "<p>v2</p>")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.UpdatedAt.After(before.UpdatedAt) {
		t.Fatalf("expected updated_at refreshed: before=%v after=%v", before.UpdatedAt, updated.UpdatedAt)
	}
	if updated.Content != "<p>v2</p>" {
		t.Fatalf("content not updated: %q", updated.Content)
	}
}

func TestDelete_RemovesRow(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	doc, err := store.Create(ctx, 1, "Doc", "<p>v1</p>")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.Delete(ctx, doc.ID, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.GetByID(ctx, doc.ID, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	// 硬删除：行应当彻底消失。
	var count int64
	if err := store.db.Model(&database.Document{}).Where("id = ?", doc.ID).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected row removed, found %d", count)
	}
}

func TestSetExported(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	doc, err := store.Create(ctx, 1, "Doc", "<p>v1</p>")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.SetExported(ctx, doc.ID, "generated-documents/1/abc.pdf"); err != nil {
		t.Fatalf("set exported: %v", err)
	}
	got, err := store.GetByID(ctx, doc.ID, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.PdfUrl != "generated-documents/1/abc.pdf" || got.Status != "completed" {
		t.Fatalf("unexpected export state: %+v", got)
	}
}
