package recall

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/worddiary/worddiary/internal/word"
)

// ErrInvalidState is returned by Answer when no session exists or the
// submitted cursor no longer matches the stored one. The caller must
// re-fetch the session and retry with the cursor it observes there.
var ErrInvalidState = errors.New("invalid session state")

// AnswerResult reports the outcome of one answered question. It carries the
// answered question and its index so callers never have to re-derive them
// from the advanced cursor.
type AnswerResult struct {
	Correct  bool
	Question Question
	Index    int
	Session  *Session
}

// Engine owns the daily session state machine.
type Engine struct {
	words    word.Store
	sessions SessionStore
	selector *Selector
	factory  *QuestionFactory
	stats    *StatsUpdater
	now      func() time.Time
}

func NewEngine(
	words word.Store,
	sessions SessionStore,
	selector *Selector,
	factory *QuestionFactory,
	stats *StatsUpdater,
	now func() time.Time,
) *Engine {
	return &Engine{
		words:    words,
		sessions: sessions,
		selector: selector,
		factory:  factory,
		stats:    stats,
		now:      now,
	}
}

// GetOrCreateTodaysSession returns the stored session when it belongs to
// today, otherwise builds and persists a fresh one. A (nil, nil) result
// means there is nothing to review. Repeated calls on the same day never
// regenerate questions.
func (e *Engine) GetOrCreateTodaysSession(ctx context.Context) (*Session, error) {
	todayString := today(e.now())

	existing, err := e.sessions.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("sessions.Read() > %w", err)
	}
	if existing != nil && existing.Date == todayString {
		return existing, nil
	}

	all, err := e.words.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("words.ReadAll() > %w", err)
	}

	selected := e.selector.SelectForToday(all)
	if len(selected) == 0 {
		return nil, nil
	}

	var questions []Question
	for _, w := range selected {
		// Words that can't yield any question kind degrade the session
		// instead of failing it.
		if q := e.factory.Build(w); q != nil {
			questions = append(questions, *q)
		}
	}
	if len(questions) == 0 {
		return nil, nil
	}
	questions = e.factory.EnrichOptions(questions, selected)

	session := &Session{
		Date:      todayString,
		Questions: questions,
	}
	if err := e.sessions.Write(ctx, session); err != nil {
		return nil, fmt.Errorf("sessions.Write() > %w", err)
	}
	return session, nil
}

// Answer grades the question at expectedCursor, records the word's recall
// statistics, advances the session, and persists it. The in-memory result
// is only reported once the persisted write succeeds.
func (e *Engine) Answer(ctx context.Context, expectedCursor int, answerText string) (*AnswerResult, error) {
	session, err := e.sessions.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("sessions.Read() > %w", err)
	}
	if session == nil {
		return nil, fmt.Errorf("no session exists: %w", ErrInvalidState)
	}
	if session.Completed || session.Cursor != expectedCursor {
		return nil, fmt.Errorf("cursor %d does not match session cursor %d: %w",
			expectedCursor, session.Cursor, ErrInvalidState)
	}

	question := session.Questions[expectedCursor]
	correct := answerText == question.CorrectAnswer

	if err := e.stats.Record(ctx, question.SourceWordID, correct); err != nil {
		return nil, fmt.Errorf("stats.Record(%s) > %w", question.SourceWordID, err)
	}

	if correct {
		session.Score++
	}
	session.Cursor++
	session.Completed = session.Cursor == len(session.Questions)

	if err := e.sessions.Write(ctx, session); err != nil {
		return nil, fmt.Errorf("sessions.Write() > %w", err)
	}

	return &AnswerResult{
		Correct:  correct,
		Question: question,
		Index:    expectedCursor,
		Session:  session,
	}, nil
}
