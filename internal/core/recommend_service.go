package core

import (
	"context"
	"fmt"

	"solace.app/backend/internal/store"
)

const maxRecommendationCandidates = 10

// RecommendStore is the slice of the document store the empathy engine needs.
type RecommendStore interface {
	ListPositivePosts(ctx context.Context, minScore float64, limit int) ([]store.Post, error)
}

// RecommendService matches a negative post to a stored highly positive one
// via the generative picker.
type RecommendService struct {
	store  RecommendStore
	picker SupportivePicker

	// Posts must score strictly above this to be candidates.
	positiveThreshold float64
}

func NewRecommendService(s RecommendStore, picker SupportivePicker, positiveThreshold float64) *RecommendService {
	return &RecommendService{store: s, picker: picker, positiveThreshold: positiveThreshold}
}

// Recommend returns the picked post, or found=false when no positive
// candidates exist (the picker is never invoked in that case).
func (s *RecommendService) Recommend(ctx context.Context, negativeContent string) (*store.Post, bool, error) {
	if negativeContent == "" {
		return nil, false, validationf("original post content is required")
	}

	candidates, err := s.store.ListPositivePosts(ctx, s.positiveThreshold, maxRecommendationCandidates)
	if err != nil {
		return nil, false, fmt.Errorf("failed to fetch candidate posts: %w", err)
	}
	if len(candidates) == 0 {
		return nil, false, nil
	}

	// The prompt enumerates candidates 1-based in exactly this order; the
	// picked index must map back into the same slice.
	texts := make([]string, len(candidates))
	for i, candidate := range candidates {
		texts[i] = candidate.Content
	}

	index, err := s.picker.PickSupportivePost(ctx, negativeContent, texts)
	if err != nil {
		return nil, false, err
	}
	if index < 0 || index >= len(candidates) {
		return nil, false, fmt.Errorf("%w: index %d out of range", ErrBadRecommendation, index)
	}
	return &candidates[index], true, nil
}
