package testutil

import (
	"context"
	"sync"
)

type MockDrawNotifier struct {
	NotifyDrawPerformedFunc func(ctx context.Context, groupID string, memberIDs []string) error

	mu    sync.Mutex
	calls []string
}

func (m *MockDrawNotifier) NotifyDrawPerformed(ctx context.Context, groupID string, memberIDs []string) error {
	m.mu.Lock()
	m.calls = append(m.calls, groupID)
	m.mu.Unlock()

	if m.NotifyDrawPerformedFunc != nil {
		return m.NotifyDrawPerformedFunc(ctx, groupID, memberIDs)
	}

	return nil
}

// Calls returns the group ids notified so far.
func (m *MockDrawNotifier) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]string(nil), m.calls...)
}
