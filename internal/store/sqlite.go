package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// ErrDuplicateUser is returned when a profile already exists for a uid.
var ErrDuplicateUser = fmt.Errorf("user profile already exists")

// ErrEchoNotFound is returned when a glimmer targets an unknown echo id.
var ErrEchoNotFound = fmt.Errorf("echo not found")

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dataSourceName string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err = store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS users (
        uid TEXT PRIMARY KEY, -- identity provider's id
        email TEXT NOT NULL,
        anonymous_username TEXT NOT NULL,
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );

    CREATE TABLE IF NOT EXISTS posts (
        id TEXT PRIMARY KEY, -- UUID
        author_uid TEXT NOT NULL,
        author_username TEXT NOT NULL,
        content TEXT NOT NULL,
        timestamp DATETIME NOT NULL,
        sentiment_score REAL NOT NULL DEFAULT 0,
        sentiment_magnitude REAL NOT NULL DEFAULT 0,
        FOREIGN KEY (author_uid) REFERENCES users (uid)
    );
    CREATE INDEX IF NOT EXISTS idx_posts_timestamp ON posts (timestamp DESC);
    CREATE INDEX IF NOT EXISTS idx_posts_score ON posts (sentiment_score DESC);

    CREATE TABLE IF NOT EXISTS echoes (
        id TEXT PRIMARY KEY, -- UUID
        author_uid TEXT NOT NULL,
        audio_url TEXT NOT NULL,
        transcript TEXT NOT NULL,
        glimmer_count INTEGER NOT NULL DEFAULT 0,
        timestamp DATETIME NOT NULL,
        FOREIGN KEY (author_uid) REFERENCES users (uid)
    );
    CREATE INDEX IF NOT EXISTS idx_echoes_timestamp ON echoes (timestamp DESC);
    `
	_, err := s.db.Exec(schema)
	return err
}

// User methods

func (s *SQLiteStore) CreateUser(ctx context.Context, uid, email, anonymousUsername string) (*UserProfile, error) {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (uid, email, anonymous_username, created_at) VALUES (?, ?, ?, ?)",
		uid, email, anonymousUsername, now)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return &UserProfile{UID: uid, Email: email, AnonymousUsername: anonymousUsername, CreatedAt: now}, nil
}

func (s *SQLiteStore) GetUserByUID(ctx context.Context, uid string) (*UserProfile, error) {
	var user UserProfile
	err := s.db.QueryRowContext(ctx,
		"SELECT uid, email, anonymous_username, created_at FROM users WHERE uid = ?", uid).
		Scan(&user.UID, &user.Email, &user.AnonymousUsername, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}

// Post methods

func (s *SQLiteStore) CreatePost(ctx context.Context, post *Post) error {
	post.ID = uuid.NewString()
	post.Timestamp = time.Now().UTC()

	stmt, err := s.db.PrepareContext(ctx,
		"INSERT INTO posts (id, author_uid, author_username, content, timestamp, sentiment_score, sentiment_magnitude) VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare post insert: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, post.ID, post.AuthorUID, post.AuthorUsername, post.Content,
		post.Timestamp, post.SentimentScore, post.SentimentMagnitude)
	if err != nil {
		return fmt.Errorf("failed to execute post insert: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListPosts(ctx context.Context, limit int) ([]Post, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, author_uid, author_username, content, timestamp, sentiment_score, sentiment_magnitude FROM posts ORDER BY timestamp DESC LIMIT ?",
		limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()
	return scanPosts(rows)
}

// ListPositivePosts returns up to limit posts whose sentiment score is
// strictly greater than minScore, best scores first.
func (s *SQLiteStore) ListPositivePosts(ctx context.Context, minScore float64, limit int) ([]Post, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, author_uid, author_username, content, timestamp, sentiment_score, sentiment_magnitude FROM posts WHERE sentiment_score > ? ORDER BY sentiment_score DESC LIMIT ?",
		minScore, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query positive posts: %w", err)
	}
	defer rows.Close()
	return scanPosts(rows)
}

func scanPosts(rows *sql.Rows) ([]Post, error) {
	var posts []Post
	for rows.Next() {
		var post Post
		if err := rows.Scan(&post.ID, &post.AuthorUID, &post.AuthorUsername, &post.Content,
			&post.Timestamp, &post.SentimentScore, &post.SentimentMagnitude); err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// Echo methods

func (s *SQLiteStore) CreateEcho(ctx context.Context, echo *Echo) error {
	if echo.ID == "" {
		echo.ID = uuid.NewString()
	}
	echo.Timestamp = time.Now().UTC()

	stmt, err := s.db.PrepareContext(ctx,
		"INSERT INTO echoes (id, author_uid, audio_url, transcript, glimmer_count, timestamp) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare echo insert: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, echo.ID, echo.AuthorUID, echo.AudioURL, echo.Transcript,
		echo.GlimmerCount, echo.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to execute echo insert: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListEchoes(ctx context.Context, limit int) ([]Echo, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, author_uid, audio_url, transcript, glimmer_count, timestamp FROM echoes ORDER BY timestamp DESC LIMIT ?",
		limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query echoes: %w", err)
	}
	defer rows.Close()

	var echoes []Echo
	for rows.Next() {
		var echo Echo
		if err := rows.Scan(&echo.ID, &echo.AuthorUID, &echo.AudioURL, &echo.Transcript,
			&echo.GlimmerCount, &echo.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan echo row: %w", err)
		}
		echoes = append(echoes, echo)
	}
	return echoes, rows.Err()
}

func (s *SQLiteStore) GetEchoByID(ctx context.Context, echoID string) (*Echo, error) {
	var echo Echo
	err := s.db.QueryRowContext(ctx,
		"SELECT id, author_uid, audio_url, transcript, glimmer_count, timestamp FROM echoes WHERE id = ?", echoID).
		Scan(&echo.ID, &echo.AuthorUID, &echo.AudioURL, &echo.Transcript, &echo.GlimmerCount, &echo.Timestamp)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to query echo: %w", err)
	}
	return &echo, nil
}

// AddGlimmer increments an echo's glimmer count by one. The increment
// happens inside the database so concurrent reactions never lose updates.
func (s *SQLiteStore) AddGlimmer(ctx context.Context, echoID string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE echoes SET glimmer_count = glimmer_count + 1 WHERE id = ?", echoID)
	if err != nil {
		return fmt.Errorf("failed to execute glimmer update: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrEchoNotFound
	}
	return nil
}
