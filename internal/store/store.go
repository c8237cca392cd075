package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"enrichly/internal/core"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when an article id does not exist in the store.
var ErrNotFound = errors.New("article not found")

// Store is the SQLite-backed content store holding articles and their
// version history.
type Store struct {
	db   *sql.DB
	path string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewStore creates a new store instance with SQLite database
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "enrichly.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{
		db:    db,
		path:  dbPath,
		locks: make(map[string]*sync.Mutex),
	}

	if err := store.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

// initialize creates the necessary tables
func (s *Store) initialize() error {
	articlesTable := `
	CREATE TABLE IF NOT EXISTS articles (
		id TEXT PRIMARY KEY,
		title TEXT,
		content TEXT,
		summary TEXT,
		status TEXT,
		published INTEGER,
		created_at DATETIME,
		updated_at DATETIME
	);`

	versionsTable := `
	CREATE TABLE IF NOT EXISTS article_versions (
		article_id TEXT NOT NULL,
		version_number INTEGER NOT NULL,
		content TEXT,
		created_at DATETIME,
		PRIMARY KEY (article_id, version_number),
		FOREIGN KEY (article_id) REFERENCES articles (id)
	);`

	tables := []string{articlesTable, versionsTable}
	for _, table := range tables {
		if _, err := s.db.Exec(table); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// LockArticle serializes access to a single article id. Concurrent rewrites
// of the same article would otherwise interleave version numbers or lose
// updates. The returned func releases the lock.
func (s *Store) LockArticle(id string) (unlock func()) {
	s.mu.Lock()
	m, ok := s.locks[id]
	if !ok {
		m = &sync.Mutex{}
		s.locks[id] = m
	}
	s.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// GetArticle fetches an article by id. Returns ErrNotFound if it does not exist.
func (s *Store) GetArticle(id string) (*core.Article, error) {
	query := `
	SELECT id, title, content, summary, status, published, created_at, updated_at
	FROM articles WHERE id = ?`

	var article core.Article
	var published int
	err := s.db.QueryRow(query, id).Scan(
		&article.ID,
		&article.Title,
		&article.Content,
		&article.Summary,
		&article.Status,
		&published,
		&article.CreatedAt,
		&article.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query article %s: %w", id, err)
	}

	article.Published = published != 0
	return &article, nil
}

// UpdateArticleContent updates an article's content, summary, and updated
// timestamp. Returns ErrNotFound when the id does not exist.
func (s *Store) UpdateArticleContent(id, content, summary string, updatedAt time.Time) error {
	result, err := s.db.Exec(
		`UPDATE articles SET content = ?, summary = ?, updated_at = ? WHERE id = ?`,
		content, summary, updatedAt, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update article %s: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result for %s: %w", id, err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// LatestVersionNumber returns the highest version number recorded for an
// article, or 0 if it has no versions yet.
func (s *Store) LatestVersionNumber(articleID string) (int, error) {
	var number int
	err := s.db.QueryRow(
		`SELECT COALESCE(MAX(version_number), 0) FROM article_versions WHERE article_id = ?`,
		articleID,
	).Scan(&number)
	if err != nil {
		return 0, fmt.Errorf("failed to query latest version for %s: %w", articleID, err)
	}
	return number, nil
}

// AppendVersion records an immutable content snapshot with the given number.
func (s *Store) AppendVersion(articleID string, number int, content string) error {
	_, err := s.db.Exec(
		`INSERT INTO article_versions (article_id, version_number, content, created_at) VALUES (?, ?, ?, ?)`,
		articleID, number, content, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to append version %d for %s: %w", number, articleID, err)
	}
	return nil
}

// SaveRewrite persists a successful rewrite as a single unit of work: the
// article update and the version append happen in one transaction, with the
// new version number computed as max+1 inside it. Returns the version number.
func (s *Store) SaveRewrite(id, content, summary string) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var latest int
	err = tx.QueryRow(
		`SELECT COALESCE(MAX(version_number), 0) FROM article_versions WHERE article_id = ?`,
		id,
	).Scan(&latest)
	if err != nil {
		return 0, fmt.Errorf("failed to query latest version for %s: %w", id, err)
	}
	number := latest + 1

	result, err := tx.Exec(
		`UPDATE articles SET content = ?, summary = ?, updated_at = ? WHERE id = ?`,
		content, summary, time.Now().UTC(), id,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update article %s: %w", id, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check update result for %s: %w", id, err)
	}
	if rows == 0 {
		return 0, ErrNotFound
	}

	_, err = tx.Exec(
		`INSERT INTO article_versions (article_id, version_number, content, created_at) VALUES (?, ?, ?, ?)`,
		id, number, content, time.Now().UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to append version %d for %s: %w", number, id, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit rewrite for %s: %w", id, err)
	}
	return number, nil
}

// QueryCandidates returns non-empty articles ordered oldest-updated-first.
// Unless includeAllStatuses is set, only status/publication combinations
// considered safe to rewrite are returned: published+published,
// approved+published, draft+unpublished, and pending_review regardless of
// publication flag.
func (s *Store) QueryCandidates(limit int, includeAllStatuses bool) ([]core.CandidateArticle, error) {
	query := `
	SELECT id, content, updated_at FROM articles
	WHERE content != ''`

	if !includeAllStatuses {
		query += `
	AND (
		(status = 'published' AND published = 1) OR
		(status = 'approved' AND published = 1) OR
		(status = 'draft' AND published = 0) OR
		(status = 'pending_review')
	)`
	}

	query += `
	ORDER BY updated_at ASC
	LIMIT ?`

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidate articles: %w", err)
	}
	defer rows.Close()

	var candidates []core.CandidateArticle
	for rows.Next() {
		var c core.CandidateArticle
		if err := rows.Scan(&c.ID, &c.Content, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan candidate row: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate candidate rows: %w", err)
	}

	return candidates, nil
}

// ListVersions returns all versions for an article ordered by number.
func (s *Store) ListVersions(articleID string) ([]core.Version, error) {
	rows, err := s.db.Query(
		`SELECT article_id, version_number, content, created_at
		FROM article_versions WHERE article_id = ? ORDER BY version_number ASC`,
		articleID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query versions for %s: %w", articleID, err)
	}
	defer rows.Close()

	var versions []core.Version
	for rows.Next() {
		var v core.Version
		if err := rows.Scan(&v.ArticleID, &v.Number, &v.Content, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan version row: %w", err)
		}
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate version rows: %w", err)
	}

	return versions, nil
}

// SeedArticle inserts or replaces an article. Used by the seed command and tests.
func (s *Store) SeedArticle(article core.Article) error {
	published := 0
	if article.Published {
		published = 1
	}

	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO articles
		(id, title, content, summary, status, published, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		article.ID,
		article.Title,
		article.Content,
		article.Summary,
		article.Status,
		published,
		article.CreatedAt,
		article.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to seed article %s: %w", article.ID, err)
	}
	return nil
}

// Stats represents store-level counts used by CLI output.
type Stats struct {
	ArticleCount int `json:"article_count"`
	VersionCount int `json:"version_count"`
}

// GetStats returns counts of stored articles and versions.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{}

	if err := s.db.QueryRow(`SELECT COUNT(*) FROM articles`).Scan(&stats.ArticleCount); err != nil {
		return nil, fmt.Errorf("failed to count articles: %w", err)
	}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM article_versions`).Scan(&stats.VersionCount); err != nil {
		return nil, fmt.Errorf("failed to count versions: %w", err)
	}

	return stats, nil
}
