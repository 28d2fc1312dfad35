package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"superagent/internal/models/chat_models"
)

// ctxState is what a sink observed about its context at call time.
type ctxState struct {
	err         error
	hasDeadline bool
}

type fakeSheetRepo struct {
	mu         sync.Mutex
	appendErr  error
	markErr    error
	nextRow    int
	appended   []chat_models.CompletionRecord
	marked     map[int]time.Time
	appendSeen []ctxState
}

func newFakeSheetRepo() *fakeSheetRepo {
	return &fakeSheetRepo{nextRow: 2, marked: make(map[int]time.Time)}
}

func (f *fakeSheetRepo) EnsureHeader(ctx context.Context) error { return nil }

func (f *fakeSheetRepo) AppendRow(ctx context.Context, record chat_models.CompletionRecord) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, hasDeadline := ctx.Deadline()
	f.appendSeen = append(f.appendSeen, ctxState{err: ctx.Err(), hasDeadline: hasDeadline})
	if f.appendErr != nil {
		return 0, f.appendErr
	}
	f.appended = append(f.appended, record)
	row := f.nextRow
	f.nextRow++
	return row, nil
}

func (f *fakeSheetRepo) MarkNotified(ctx context.Context, rowIndex int, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.markErr != nil {
		return f.markErr
	}
	f.marked[rowIndex] = at
	return nil
}

type sentSummary struct {
	to     string
	record chat_models.CompletionRecord
	plan   *chat_models.PlanSnapshot
}

type fakeMailer struct {
	mu     sync.Mutex
	result bool
	sent   []sentSummary
}

func (f *fakeMailer) SendSummary(ctx context.Context, to string, record chat_models.CompletionRecord, plan *chat_models.PlanSnapshot) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentSummary{to: to, record: record, plan: plan})
	return f.result
}

type fakeCompletion struct {
	mu       sync.Mutex
	sessions []chat_models.Session
}

func (f *fakeCompletion) Complete(ctx context.Context, session chat_models.Session) CompletionOutcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions = append(f.sessions, session)
	return CompletionOutcome{}
}

func (f *fakeCompletion) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sessions)
}

var errSinkDown = errors.New("sink down")
