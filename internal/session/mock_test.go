package session

import (
	"context"
	"time"

	"github.com/abhisek/arbor/internal/store"
)

// mockEventRepo records appended events. Methods the session never calls
// panic through the nil embedded interface.
type mockEventRepo struct {
	store.EventRepo
	accuracy    []store.ModeAccuracy
	accuracyErr error
	answers     []store.AnswerEventData
	sessions    []store.SessionEventData
	diagnoses   []store.DiagnosisEventData
}

func (m *mockEventRepo) AccuracyByMode(_ context.Context) ([]store.ModeAccuracy, error) {
	return m.accuracy, m.accuracyErr
}

func (m *mockEventRepo) AppendAnswerEvent(_ context.Context, data store.AnswerEventData) error {
	m.answers = append(m.answers, data)
	return nil
}

func (m *mockEventRepo) AppendSessionEvent(_ context.Context, data store.SessionEventData) error {
	m.sessions = append(m.sessions, data)
	return nil
}

func (m *mockEventRepo) AppendDiagnosisEvent(_ context.Context, data store.DiagnosisEventData) error {
	m.diagnoses = append(m.diagnoses, data)
	return nil
}

type mockSnapshotRepo struct {
	snapshots []*store.Snapshot
	pruned    int
}

func (m *mockSnapshotRepo) Save(_ context.Context, snap *store.Snapshot) error {
	m.snapshots = append(m.snapshots, snap)
	return nil
}

func (m *mockSnapshotRepo) Latest(_ context.Context) (*store.Snapshot, error) {
	if len(m.snapshots) == 0 {
		return nil, nil
	}
	return m.snapshots[len(m.snapshots)-1], nil
}

func (m *mockSnapshotRepo) Prune(_ context.Context, keep int) error {
	m.pruned = keep
	return nil
}

type mockProgressRepo struct {
	values map[string]string
}

func (m *mockProgressRepo) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *mockProgressRepo) Set(_ context.Context, key, value string) error {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = value
	return nil
}

func (m *mockProgressRepo) All(_ context.Context) (map[string]string, error) {
	return m.values, nil
}

func (m *mockProgressRepo) Clear(_ context.Context) error {
	m.values = nil
	return nil
}

var fixedTime = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
