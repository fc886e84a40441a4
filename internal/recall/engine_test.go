package recall_test

import (
	"context"
	"fmt"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_recall "github.com/worddiary/worddiary/internal/mocks/recall"
	mock_word "github.com/worddiary/worddiary/internal/mocks/word"
	"github.com/worddiary/worddiary/internal/recall"
	"github.com/worddiary/worddiary/internal/word"
)

func fixedNow() time.Time {
	return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
}

func newTestEngine(t *testing.T, now func() time.Time, seed int64) (*recall.Engine, word.Store, recall.SessionStore) {
	t.Helper()

	tmpDir := t.TempDir()
	words := word.NewDiaryStore(filepath.Join(tmpDir, "diary.yml"))
	sessions := recall.NewFileSessionStore(filepath.Join(tmpDir, "session.yml"))

	rnd := rand.New(rand.NewSource(seed))
	engine := recall.NewEngine(
		words,
		sessions,
		recall.NewSelector(recall.DailyRecallCount, now, rnd),
		recall.NewQuestionFactory(rnd),
		recall.NewStatsUpdater(words, now),
		now,
	)
	return engine, words, sessions
}

func testDiary(n int) []word.Word {
	words := make([]word.Word, 0, n)
	for i := 0; i < n; i++ {
		words = append(words, word.Word{
			ID:   fmt.Sprintf("w%d", i),
			Word: fmt.Sprintf("word%d", i),
			Senses: []word.Sense{{
				PartOfSpeech: "noun",
				Definitions:  []word.Definition{{Text: fmt.Sprintf("definition %d", i)}},
			}},
			AddedAt: fixedNow().Add(-48 * time.Hour).UnixMilli(),
		})
	}
	return words
}

func TestEngine_GetOrCreateTodaysSession(t *testing.T) {
	ctx := context.Background()

	t.Run("empty diary yields no session", func(t *testing.T) {
		engine, _, sessions := newTestEngine(t, fixedNow, 1)

		session, err := engine.GetOrCreateTodaysSession(ctx)
		require.NoError(t, err)
		assert.Nil(t, session)

		stored, err := sessions.Read(ctx)
		require.NoError(t, err)
		assert.Nil(t, stored, "absent session must not be persisted")
	})

	t.Run("creates and persists a session", func(t *testing.T) {
		engine, words, sessions := newTestEngine(t, fixedNow, 1)
		require.NoError(t, words.WriteAll(ctx, testDiary(3)))

		session, err := engine.GetOrCreateTodaysSession(ctx)
		require.NoError(t, err)
		require.NotNil(t, session)
		assert.Equal(t, "2025-06-15", session.Date)
		assert.Len(t, session.Questions, 3)
		assert.Equal(t, 0, session.Cursor)
		assert.Equal(t, 0, session.Score)
		assert.False(t, session.Completed)

		stored, err := sessions.Read(ctx)
		require.NoError(t, err)
		assert.Equal(t, session, stored)
	})

	t.Run("caps a large diary at ten questions", func(t *testing.T) {
		engine, words, _ := newTestEngine(t, fixedNow, 1)
		require.NoError(t, words.WriteAll(ctx, testDiary(12)))

		session, err := engine.GetOrCreateTodaysSession(ctx)
		require.NoError(t, err)
		require.NotNil(t, session)
		assert.Len(t, session.Questions, 10)

		seen := make(map[string]bool)
		for _, q := range session.Questions {
			assert.False(t, seen[q.SourceWordID], "word %s questioned twice", q.SourceWordID)
			seen[q.SourceWordID] = true
		}
	})

	t.Run("idempotent within the same day", func(t *testing.T) {
		engine, words, _ := newTestEngine(t, fixedNow, 1)
		require.NoError(t, words.WriteAll(ctx, testDiary(5)))

		first, err := engine.GetOrCreateTodaysSession(ctx)
		require.NoError(t, err)
		second, err := engine.GetOrCreateTodaysSession(ctx)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("drops words that cannot yield a question", func(t *testing.T) {
		engine, words, _ := newTestEngine(t, fixedNow, 1)
		diary := testDiary(2)
		diary = append(diary, word.Word{ID: "senseless", Word: "senseless", AddedAt: fixedNow().UnixMilli()})
		require.NoError(t, words.WriteAll(ctx, diary))

		session, err := engine.GetOrCreateTodaysSession(ctx)
		require.NoError(t, err)
		require.NotNil(t, session)
		assert.Len(t, session.Questions, 2)
		for _, q := range session.Questions {
			assert.NotEqual(t, "senseless", q.SourceWordID)
		}
	})

	t.Run("a new day discards the previous session", func(t *testing.T) {
		now := fixedNow()
		clock := func() time.Time { return now }
		engine, words, _ := newTestEngine(t, clock, 1)
		require.NoError(t, words.WriteAll(ctx, testDiary(2)))

		first, err := engine.GetOrCreateTodaysSession(ctx)
		require.NoError(t, err)
		require.NotNil(t, first)

		now = now.Add(24 * time.Hour)
		second, err := engine.GetOrCreateTodaysSession(ctx)
		require.NoError(t, err)
		require.NotNil(t, second)
		assert.Equal(t, "2025-06-16", second.Date)
		assert.NotEqual(t, first.Date, second.Date)
	})
}

func TestEngine_Answer(t *testing.T) {
	ctx := context.Background()

	t.Run("single word answered correctly completes the session", func(t *testing.T) {
		engine, words, _ := newTestEngine(t, fixedNow, 1)
		require.NoError(t, words.WriteAll(ctx, testDiary(1)))

		session, err := engine.GetOrCreateTodaysSession(ctx)
		require.NoError(t, err)
		require.Len(t, session.Questions, 1)

		result, err := engine.Answer(ctx, 0, session.Questions[0].CorrectAnswer)
		require.NoError(t, err)
		assert.True(t, result.Correct)
		assert.Equal(t, 0, result.Index)
		assert.Equal(t, session.Questions[0], result.Question)
		assert.Equal(t, 1, result.Session.Score)
		assert.Equal(t, 1, result.Session.Cursor)
		assert.True(t, result.Session.Completed)

		updated, err := words.ReadAll(ctx)
		require.NoError(t, err)
		require.Len(t, updated, 1)
		assert.Equal(t, 1, updated[0].RecallCount)
		assert.Equal(t, 1, updated[0].CorrectCount)
		require.NotNil(t, updated[0].LastRecallAt)
		assert.Equal(t, fixedNow().UnixMilli(), *updated[0].LastRecallAt)
	})

	t.Run("wrong answer advances the cursor without scoring", func(t *testing.T) {
		engine, words, _ := newTestEngine(t, fixedNow, 1)
		require.NoError(t, words.WriteAll(ctx, testDiary(2)))

		_, err := engine.GetOrCreateTodaysSession(ctx)
		require.NoError(t, err)

		result, err := engine.Answer(ctx, 0, "definitely not the answer")
		require.NoError(t, err)
		assert.False(t, result.Correct)
		assert.Equal(t, 0, result.Session.Score)
		assert.Equal(t, 1, result.Session.Cursor)
		assert.False(t, result.Session.Completed)

		updated, err := words.ReadAll(ctx)
		require.NoError(t, err)
		for _, w := range updated {
			if w.ID == result.Question.SourceWordID {
				assert.Equal(t, 1, w.RecallCount)
				assert.Equal(t, 0, w.CorrectCount)
			}
		}
	})

	t.Run("stale cursor is rejected after a successful answer", func(t *testing.T) {
		engine, words, _ := newTestEngine(t, fixedNow, 1)
		require.NoError(t, words.WriteAll(ctx, testDiary(2)))

		session, err := engine.GetOrCreateTodaysSession(ctx)
		require.NoError(t, err)

		_, err = engine.Answer(ctx, 0, session.Questions[0].CorrectAnswer)
		require.NoError(t, err)

		_, err = engine.Answer(ctx, 0, session.Questions[0].CorrectAnswer)
		assert.ErrorIs(t, err, recall.ErrInvalidState)
	})

	t.Run("no session", func(t *testing.T) {
		engine, _, _ := newTestEngine(t, fixedNow, 1)

		_, err := engine.Answer(ctx, 0, "anything")
		assert.ErrorIs(t, err, recall.ErrInvalidState)
	})

	t.Run("completed session rejects further answers", func(t *testing.T) {
		engine, words, _ := newTestEngine(t, fixedNow, 1)
		require.NoError(t, words.WriteAll(ctx, testDiary(1)))

		session, err := engine.GetOrCreateTodaysSession(ctx)
		require.NoError(t, err)

		result, err := engine.Answer(ctx, 0, session.Questions[0].CorrectAnswer)
		require.NoError(t, err)
		require.True(t, result.Session.Completed)

		_, err = engine.Answer(ctx, 1, "anything")
		assert.ErrorIs(t, err, recall.ErrInvalidState)
	})
}

func TestEngine_PersistenceFailures(t *testing.T) {
	ctx := context.Background()
	rnd := rand.New(rand.NewSource(1))

	newMockedEngine := func(words word.Store, sessions recall.SessionStore) *recall.Engine {
		return recall.NewEngine(
			words,
			sessions,
			recall.NewSelector(recall.DailyRecallCount, fixedNow, rnd),
			recall.NewQuestionFactory(rnd),
			recall.NewStatsUpdater(words, fixedNow),
			fixedNow,
		)
	}

	t.Run("session write failure aborts creation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockWords := mock_word.NewMockStore(ctrl)
		mockSessions := mock_recall.NewMockSessionStore(ctrl)

		mockSessions.EXPECT().Read(gomock.Any()).Return(nil, nil)
		mockWords.EXPECT().ReadAll(gomock.Any()).Return(testDiary(2), nil)
		mockSessions.EXPECT().Write(gomock.Any(), gomock.Any()).Return(fmt.Errorf("disk full"))

		engine := newMockedEngine(mockWords, mockSessions)
		session, err := engine.GetOrCreateTodaysSession(ctx)
		assert.Error(t, err)
		assert.Nil(t, session)
	})

	t.Run("session write failure aborts the answer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockWords := mock_word.NewMockStore(ctrl)
		mockSessions := mock_recall.NewMockSessionStore(ctrl)

		diary := testDiary(1)
		stored := &recall.Session{
			Date: "2025-06-15",
			Questions: []recall.Question{{
				SourceWordID:  diary[0].ID,
				Prompt:        `What is the meaning of "word0"?`,
				Kind:          recall.KindDefinition,
				CorrectAnswer: "definition 0",
				Options:       []string{"definition 0"},
			}},
		}

		mockSessions.EXPECT().Read(gomock.Any()).Return(stored, nil)
		mockWords.EXPECT().ReadAll(gomock.Any()).Return(diary, nil)
		mockWords.EXPECT().WriteAll(gomock.Any(), gomock.Any()).Return(nil)
		mockSessions.EXPECT().Write(gomock.Any(), gomock.Any()).Return(fmt.Errorf("disk full"))

		engine := newMockedEngine(mockWords, mockSessions)
		result, err := engine.Answer(ctx, 0, "definition 0")
		assert.Error(t, err)
		assert.Nil(t, result)
	})

	t.Run("word store failure surfaces from answer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockWords := mock_word.NewMockStore(ctrl)
		mockSessions := mock_recall.NewMockSessionStore(ctrl)

		stored := &recall.Session{
			Date: "2025-06-15",
			Questions: []recall.Question{{
				SourceWordID:  "w0",
				Kind:          recall.KindDefinition,
				CorrectAnswer: "definition 0",
			}},
		}
		mockSessions.EXPECT().Read(gomock.Any()).Return(stored, nil)
		mockWords.EXPECT().ReadAll(gomock.Any()).Return(nil, fmt.Errorf("connection refused"))

		engine := newMockedEngine(mockWords, mockSessions)
		_, err := engine.Answer(ctx, 0, "definition 0")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, recall.ErrInvalidState)
	})
}
