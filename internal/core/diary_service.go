package core

import (
	"context"
	"fmt"
	"log"
	"strings"

	"solace.app/backend/internal/store"
)

const diaryPageSize = 50

// DiaryStore is the slice of the document store the diary service needs.
type DiaryStore interface {
	GetUserByUID(ctx context.Context, uid string) (*store.UserProfile, error)
	CreatePost(ctx context.Context, post *store.Post) error
	ListPosts(ctx context.Context, limit int) ([]store.Post, error)
}

type DiaryService struct {
	store    DiaryStore
	analyzer SentimentAnalyzer
}

func NewDiaryService(s DiaryStore, analyzer SentimentAnalyzer) *DiaryService {
	return &DiaryService{store: s, analyzer: analyzer}
}

// CreatePost scores the content and appends it to the diary. The author's
// anonymous username is read from their profile, never from the request.
// A scorer failure degrades to zero scores rather than rejecting the post.
func (s *DiaryService) CreatePost(ctx context.Context, uid, content string) (*store.Post, error) {
	if uid == "" {
		return nil, validationf("uid is required")
	}
	if strings.TrimSpace(content) == "" {
		return nil, validationf("content is required")
	}

	profile, err := s.store.GetUserByUID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to look up author: %w", err)
	}
	if profile == nil {
		return nil, validationf("no profile exists for this uid")
	}

	score, magnitude, err := s.analyzer.AnalyzeSentiment(ctx, content)
	if err != nil {
		// Availability over accuracy: the post still goes in unscored.
		log.Printf("Could not analyze sentiment for post by %s: %v", profile.AnonymousUsername, err)
		score, magnitude = 0.0, 0.0
	}

	post := &store.Post{
		AuthorUID:          uid,
		AuthorUsername:     profile.AnonymousUsername,
		Content:            content,
		SentimentScore:     score,
		SentimentMagnitude: magnitude,
	}
	if err := s.store.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to store post: %w", err)
	}
	return post, nil
}

// ListPosts returns the newest entries, most recent first.
func (s *DiaryService) ListPosts(ctx context.Context) ([]store.Post, error) {
	return s.store.ListPosts(ctx, diaryPageSize)
}
