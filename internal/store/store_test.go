package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"enrichly/internal/core"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func seedTestArticle(t *testing.T, store *Store, id, content, status string, published bool) {
	t.Helper()
	now := time.Now().UTC()
	err := store.SeedArticle(core.Article{
		ID:        id,
		Title:     "Article " + id,
		Content:   content,
		Summary:   "Summary of " + id,
		Status:    status,
		Published: published,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("SeedArticle failed: %v", err)
	}
}

func TestNewStore(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewStore(tmpDir)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	defer func() { _ = store.Close() }()

	if store.db == nil {
		t.Error("Store database should not be nil")
	}

	dbPath := filepath.Join(tmpDir, "enrichly.db")
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file should be created")
	}
}

func TestNewStore_InvalidDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	invalidPath := filepath.Join(tmpDir, "file.txt")
	_ = os.WriteFile(invalidPath, []byte("test"), 0644)

	_, err := NewStore(invalidPath)
	if err == nil {
		t.Error("Expected error when creating store in invalid directory")
	}
}

func TestGetArticle(t *testing.T) {
	store := newTestStore(t)
	seedTestArticle(t, store, "a1", "Some article content.", core.StatusPublished, true)

	article, err := store.GetArticle("a1")
	if err != nil {
		t.Fatalf("GetArticle failed: %v", err)
	}

	if article.ID != "a1" {
		t.Errorf("Expected ID a1, got %s", article.ID)
	}
	if article.Content != "Some article content." {
		t.Errorf("Unexpected content: %s", article.Content)
	}
	if article.Status != core.StatusPublished {
		t.Errorf("Expected status published, got %s", article.Status)
	}
	if !article.Published {
		t.Error("Expected Published to be true")
	}
}

func TestGetArticle_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetArticle("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got: %v", err)
	}
}

func TestUpdateArticleContent(t *testing.T) {
	store := newTestStore(t)
	seedTestArticle(t, store, "a1", "Original.", core.StatusDraft, false)

	updatedAt := time.Now().UTC().Add(time.Minute)
	if err := store.UpdateArticleContent("a1", "Updated content.", "Updated summary.", updatedAt); err != nil {
		t.Fatalf("UpdateArticleContent failed: %v", err)
	}

	article, err := store.GetArticle("a1")
	if err != nil {
		t.Fatalf("GetArticle failed: %v", err)
	}
	if article.Content != "Updated content." {
		t.Errorf("Content not updated, got: %s", article.Content)
	}
	if article.Summary != "Updated summary." {
		t.Errorf("Summary not updated, got: %s", article.Summary)
	}
}

func TestUpdateArticleContent_NotFound(t *testing.T) {
	store := newTestStore(t)

	err := store.UpdateArticleContent("missing", "content", "summary", time.Now().UTC())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got: %v", err)
	}
}

func TestVersionNumbering(t *testing.T) {
	store := newTestStore(t)
	seedTestArticle(t, store, "a1", "Content.", core.StatusDraft, false)

	latest, err := store.LatestVersionNumber("a1")
	if err != nil {
		t.Fatalf("LatestVersionNumber failed: %v", err)
	}
	if latest != 0 {
		t.Errorf("Expected 0 for article without versions, got %d", latest)
	}

	if err := store.AppendVersion("a1", 1, "v1 content"); err != nil {
		t.Fatalf("AppendVersion failed: %v", err)
	}
	if err := store.AppendVersion("a1", 2, "v2 content"); err != nil {
		t.Fatalf("AppendVersion failed: %v", err)
	}

	latest, err = store.LatestVersionNumber("a1")
	if err != nil {
		t.Fatalf("LatestVersionNumber failed: %v", err)
	}
	if latest != 2 {
		t.Errorf("Expected latest version 2, got %d", latest)
	}
}

func TestSaveRewrite_VersionMonotonicity(t *testing.T) {
	store := newTestStore(t)
	seedTestArticle(t, store, "a1", "Original content.", core.StatusDraft, false)

	// Each successful rewrite must get number = max(existing) + 1.
	for i := 1; i <= 3; i++ {
		content := fmt.Sprintf("Rewritten content, pass %d.", i)
		number, err := store.SaveRewrite("a1", content, "A new summary.")
		if err != nil {
			t.Fatalf("SaveRewrite %d failed: %v", i, err)
		}
		if number != i {
			t.Errorf("Expected version number %d, got %d", i, number)
		}
	}

	versions, err := store.ListVersions("a1")
	if err != nil {
		t.Fatalf("ListVersions failed: %v", err)
	}
	if len(versions) != 3 {
		t.Fatalf("Expected 3 versions, got %d", len(versions))
	}
	for i, v := range versions {
		if v.Number != i+1 {
			t.Errorf("Version %d has number %d", i, v.Number)
		}
	}

	article, err := store.GetArticle("a1")
	if err != nil {
		t.Fatalf("GetArticle failed: %v", err)
	}
	if !strings.Contains(article.Content, "pass 3") {
		t.Errorf("Article content should reflect last rewrite, got: %s", article.Content)
	}
}

func TestSaveRewrite_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.SaveRewrite("missing", "content", "summary")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got: %v", err)
	}

	// The failed transaction must not leave a stray version row behind.
	versions, err := store.ListVersions("missing")
	if err != nil {
		t.Fatalf("ListVersions failed: %v", err)
	}
	if len(versions) != 0 {
		t.Errorf("Expected no versions for missing article, got %d", len(versions))
	}
}

func TestQueryCandidates_StatusWhitelist(t *testing.T) {
	store := newTestStore(t)

	seedTestArticle(t, store, "pub", "content", core.StatusPublished, true)
	seedTestArticle(t, store, "appr", "content", core.StatusApproved, true)
	seedTestArticle(t, store, "draft", "content", core.StatusDraft, false)
	seedTestArticle(t, store, "pending", "content", core.StatusPendingReview, true)
	seedTestArticle(t, store, "rejected", "content", core.StatusRejected, true)
	seedTestArticle(t, store, "empty", "", core.StatusPublished, true)

	candidates, err := store.QueryCandidates(50, false)
	if err != nil {
		t.Fatalf("QueryCandidates failed: %v", err)
	}

	got := make(map[string]bool)
	for _, c := range candidates {
		got[c.ID] = true
	}

	for _, id := range []string{"pub", "appr", "draft", "pending"} {
		if !got[id] {
			t.Errorf("Expected %s to be a candidate", id)
		}
	}
	if got["rejected"] {
		t.Error("Rejected article should not be a candidate")
	}
	if got["empty"] {
		t.Error("Empty-content article should not be a candidate")
	}
}

func TestQueryCandidates_AllStatuses(t *testing.T) {
	store := newTestStore(t)

	seedTestArticle(t, store, "rejected", "content", core.StatusRejected, true)
	seedTestArticle(t, store, "draftpub", "content", core.StatusDraft, true)

	candidates, err := store.QueryCandidates(50, true)
	if err != nil {
		t.Fatalf("QueryCandidates failed: %v", err)
	}
	if len(candidates) != 2 {
		t.Errorf("Expected all non-empty articles with includeAllStatuses, got %d", len(candidates))
	}
}

func TestQueryCandidates_OldestFirst(t *testing.T) {
	store := newTestStore(t)

	base := time.Now().UTC()
	for i, id := range []string{"newest", "middle", "oldest"} {
		err := store.SeedArticle(core.Article{
			ID:        id,
			Title:     id,
			Content:   "content",
			Status:    core.StatusPendingReview,
			CreatedAt: base,
			UpdatedAt: base.Add(-time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("SeedArticle failed: %v", err)
		}
	}

	candidates, err := store.QueryCandidates(50, false)
	if err != nil {
		t.Fatalf("QueryCandidates failed: %v", err)
	}
	if len(candidates) != 3 {
		t.Fatalf("Expected 3 candidates, got %d", len(candidates))
	}
	if candidates[0].ID != "oldest" || candidates[2].ID != "newest" {
		t.Errorf("Candidates not ordered oldest-updated-first: %v", []string{candidates[0].ID, candidates[1].ID, candidates[2].ID})
	}
}

func TestQueryCandidates_Limit(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 10; i++ {
		seedTestArticle(t, store, fmt.Sprintf("a%d", i), "content", core.StatusPendingReview, false)
	}

	candidates, err := store.QueryCandidates(4, false)
	if err != nil {
		t.Fatalf("QueryCandidates failed: %v", err)
	}
	if len(candidates) != 4 {
		t.Errorf("Expected limit of 4 candidates, got %d", len(candidates))
	}
}

func TestLockArticle(t *testing.T) {
	store := newTestStore(t)

	unlock := store.LockArticle("a1")

	acquired := make(chan struct{})
	go func() {
		u := store.LockArticle("a1")
		close(acquired)
		u()
	}()

	select {
	case <-acquired:
		t.Fatal("Second lock on same article should block until first is released")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("Second lock should acquire after release")
	}
}

func TestGetStats(t *testing.T) {
	store := newTestStore(t)
	seedTestArticle(t, store, "a1", "content", core.StatusDraft, false)
	seedTestArticle(t, store, "a2", "content", core.StatusDraft, false)
	if _, err := store.SaveRewrite("a1", "Rewritten.", "Summary."); err != nil {
		t.Fatalf("SaveRewrite failed: %v", err)
	}

	stats, err := store.GetStats()
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.ArticleCount != 2 {
		t.Errorf("Expected 2 articles, got %d", stats.ArticleCount)
	}
	if stats.VersionCount != 1 {
		t.Errorf("Expected 1 version, got %d", stats.VersionCount)
	}
}
