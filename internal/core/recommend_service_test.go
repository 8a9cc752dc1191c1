package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"solace.app/backend/internal/store"
)

type stubRecommendStore struct {
	positive []store.Post
}

func (s *stubRecommendStore) ListPositivePosts(ctx context.Context, minScore float64, limit int) ([]store.Post, error) {
	if len(s.positive) > limit {
		return s.positive[:limit], nil
	}
	return s.positive, nil
}

// stubPicker replies like the model would ("Post N") and runs the reply
// through the same guarded parse as the real picker.
type stubPicker struct {
	reply string
	calls int
}

func (p *stubPicker) PickSupportivePost(ctx context.Context, sadContent string, candidates []string) (int, error) {
	p.calls++
	return ParsePostLabel(p.reply, len(candidates))
}

func TestRecommend_NoCandidatesSkipsPicker(t *testing.T) {
	picker := &stubPicker{reply: "Post 1"}
	svc := NewRecommendService(&stubRecommendStore{}, picker, 0.7)

	post, found, err := svc.Recommend(context.Background(), "everything is grey")
	require.NoError(t, err)
	require.False(t, found)
	require.Nil(t, post)
	require.Zero(t, picker.calls, "the picker must not be invoked without candidates")
}

func TestRecommend_PickedLabelMapsToCandidateOrder(t *testing.T) {
	st := &stubRecommendStore{positive: []store.Post{
		{ID: "a", Content: "A", SentimentScore: 0.95},
		{ID: "b", Content: "B", SentimentScore: 0.85},
	}}
	picker := &stubPicker{reply: "Post 2"}
	svc := NewRecommendService(st, picker, 0.7)

	post, found, err := svc.Recommend(context.Background(), "feeling low")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "B", post.Content)
	require.Equal(t, 1, picker.calls)
}

func TestRecommend_UnparseableReplyIsExplicitError(t *testing.T) {
	st := &stubRecommendStore{positive: []store.Post{{ID: "a", Content: "A", SentimentScore: 0.9}}}

	for _, reply := range []string{"the first one", "Post 7", ""} {
		picker := &stubPicker{reply: reply}
		svc := NewRecommendService(st, picker, 0.7)

		_, _, err := svc.Recommend(context.Background(), "feeling low")
		require.ErrorIs(t, err, ErrBadRecommendation, "reply %q must not produce a silent pick", reply)
	}
}

func TestRecommend_EmptyContentIsValidationError(t *testing.T) {
	svc := NewRecommendService(&stubRecommendStore{}, &stubPicker{}, 0.7)
	_, _, err := svc.Recommend(context.Background(), "")
	require.True(t, IsValidation(err))
}
