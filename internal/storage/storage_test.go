package storage

import (
	"context"
	"testing"
)

func openTestDB(t *testing.T) *BoardRepo {
	t.Helper()
	db, err := Open(context.Background())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewBoardRepo(db)
}

func TestBoardInsertAssignsIncreasingIDs(t *testing.T) {
	ctx := context.Background()
	repo := openTestDB(t)

	var last int64
	for i, title := range []string{"a", "b", "c"} {
		id, err := repo.Insert(ctx, KanbanInsert{Title: title, Status: "backlog", Priority: "med"})
		if err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
		if id <= last {
			t.Fatalf("id=%d, want > %d", id, last)
		}
		last = id
	}

	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len=%d, want 3", len(all))
	}
	if all[0].Title != "a" || all[2].Title != "c" {
		t.Fatalf("unexpected order: %+v", all)
	}
}

func TestBoardSeedOnlyWhenEmpty(t *testing.T) {
	ctx := context.Background()
	repo := openTestDB(t)

	seed := []KanbanInsert{
		{Title: "one", Status: "backlog", Priority: "high"},
		{Title: "two", Status: "live", Priority: "low"},
	}
	ok, err := repo.Seed(ctx, seed)
	if err != nil || !ok {
		t.Fatalf("first seed ok=%v err=%v", ok, err)
	}
	ok, err = repo.Seed(ctx, seed)
	if err != nil || ok {
		t.Fatalf("second seed ok=%v err=%v, want false/nil", ok, err)
	}

	counts, err := repo.CountByStatus(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if counts["backlog"] != 1 || counts["live"] != 1 || counts["design"] != 0 {
		t.Fatalf("counts=%v", counts)
	}
}

func TestBoardUpdateStatusCompareAndSet(t *testing.T) {
	ctx := context.Background()
	repo := openTestDB(t)

	id, err := repo.Insert(ctx, KanbanInsert{Title: "x", Status: "backlog", Priority: "med"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	changed, err := repo.UpdateStatus(ctx, id, "design", "upload")
	if err != nil || changed {
		t.Fatalf("stale update changed=%v err=%v", changed, err)
	}
	changed, err = repo.UpdateStatus(ctx, id, "backlog", "design")
	if err != nil || !changed {
		t.Fatalf("update changed=%v err=%v", changed, err)
	}

	got, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != "design" {
		t.Fatalf("status=%q, want design", got.Status)
	}

	missing, err := repo.Get(ctx, id+100)
	if err != nil || missing != nil {
		t.Fatalf("missing=%v err=%v, want nil/nil", missing, err)
	}
}

func TestChecklistToggleAndSet(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	repo := NewChecklistRepo(db)

	done, err := repo.Toggle(ctx, "m1-1")
	if err != nil || !done {
		t.Fatalf("toggle on done=%v err=%v", done, err)
	}
	done, err = repo.Toggle(ctx, "m1-1")
	if err != nil || done {
		t.Fatalf("toggle off done=%v err=%v", done, err)
	}
	if err := repo.Set(ctx, "m2-3", true); err != nil {
		t.Fatalf("set: %v", err)
	}

	m, err := repo.CompletedMap(ctx)
	if err != nil {
		t.Fatalf("map: %v", err)
	}
	if m["m1-1"] {
		t.Fatalf("m1-1 should be false")
	}
	if !m["m2-3"] {
		t.Fatalf("m2-3 should be true")
	}
	if _, ok := m["m3-1"]; ok {
		t.Fatalf("untouched item should be absent")
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	a := openTestDB(t)
	b := openTestDB(t)

	if _, err := a.Insert(ctx, KanbanInsert{Title: "only in a", Status: "backlog", Priority: "med"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	items, err := b.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("session b sees %d items, want 0", len(items))
	}
}
