package store

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", filepath.Join(t.TempDir(), "solace_test.db"))
	s, err := NewSQLiteStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreateUser_DuplicateUIDRejected(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	profile, err := s.CreateUser(ctx, "uid-1", "a@b.c", "QuietMoon123")
	require.NoError(t, err)
	require.Equal(t, "QuietMoon123", profile.AnonymousUsername)

	_, err = s.CreateUser(ctx, "uid-1", "other@b.c", "SilentStar999")
	require.ErrorIs(t, err, ErrDuplicateUser)

	got, err := s.GetUserByUID(ctx, "uid-1")
	require.NoError(t, err)
	require.Equal(t, "QuietMoon123", got.AnonymousUsername, "the first assignment is immutable")

	missing, err := s.GetUserByUID(ctx, "uid-nope")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestListPosts_CapAndOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateUser(ctx, "uid-1", "a@b.c", "QuietMoon123")
	require.NoError(t, err)

	for i := 0; i < 60; i++ {
		post := &Post{
			AuthorUID:      "uid-1",
			AuthorUsername: "QuietMoon123",
			Content:        fmt.Sprintf("entry %d", i),
		}
		require.NoError(t, s.CreatePost(ctx, post))
	}

	posts, err := s.ListPosts(ctx, 50)
	require.NoError(t, err)
	require.Len(t, posts, 50)
	for i := 1; i < len(posts); i++ {
		require.False(t, posts[i].Timestamp.After(posts[i-1].Timestamp),
			"posts must be ordered newest first")
	}
}

func TestListPositivePosts_StrictThresholdAndScoreOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateUser(ctx, "uid-1", "a@b.c", "QuietMoon123")
	require.NoError(t, err)

	scores := []float64{0.9, 0.7, 0.75, -0.4, 0.95, 0.1}
	for i, score := range scores {
		post := &Post{
			AuthorUID:      "uid-1",
			AuthorUsername: "QuietMoon123",
			Content:        fmt.Sprintf("entry %d", i),
			SentimentScore: score,
		}
		require.NoError(t, s.CreatePost(ctx, post))
	}

	posts, err := s.ListPositivePosts(ctx, 0.7, 10)
	require.NoError(t, err)
	require.Len(t, posts, 3, "0.7 itself must be excluded (strictly greater)")
	require.Equal(t, 0.95, posts[0].SentimentScore)
	require.Equal(t, 0.9, posts[1].SentimentScore)
	require.Equal(t, 0.75, posts[2].SentimentScore)
}

func TestAddGlimmer_ConcurrentIncrementsAreExact(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateUser(ctx, "uid-1", "a@b.c", "QuietMoon123")
	require.NoError(t, err)

	echo := &Echo{AuthorUID: "uid-1", AudioURL: "https://cdn/x.mp3", Transcript: "hello"}
	require.NoError(t, s.CreateEcho(ctx, echo))

	const n = 25
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.AddGlimmer(ctx, echo.ID)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := s.GetEchoByID(ctx, echo.ID)
	require.NoError(t, err)
	require.EqualValues(t, n, got.GlimmerCount, "no increments may be lost")
}

func TestAddGlimmer_UnknownEcho(t *testing.T) {
	s := newTestStore(t)
	err := s.AddGlimmer(context.Background(), "no-such-echo")
	require.ErrorIs(t, err, ErrEchoNotFound)
}

func TestListEchoes_NewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateUser(ctx, "uid-1", "a@b.c", "QuietMoon123")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		echo := &Echo{AuthorUID: "uid-1", AudioURL: fmt.Sprintf("https://cdn/%d.mp3", i), Transcript: "t"}
		require.NoError(t, s.CreateEcho(ctx, echo))
	}

	echoes, err := s.ListEchoes(ctx, 100)
	require.NoError(t, err)
	require.Len(t, echoes, 5)
	for i := 1; i < len(echoes); i++ {
		require.False(t, echoes[i].Timestamp.After(echoes[i-1].Timestamp))
	}
	require.NotEmpty(t, echoes[0].ID)
}
