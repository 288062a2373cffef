package audit

import (
	"context"
	"errors"
	"testing"

	common_models "go-reporting/internal/common/models"

	"go.uber.org/zap"
)

type memoryRepository struct {
	logs []common_models.AuditLog
	err  error
}

func (m *memoryRepository) Create(ctx context.Context, log common_models.AuditLog) error {
	if m.err != nil {
		return m.err
	}
	m.logs = append(m.logs, log)
	return nil
}

func (m *memoryRepository) List(ctx context.Context, filters map[string]interface{}, limit, offset int64) ([]common_models.AuditLog, error) {
	return m.logs, nil
}

func TestLogChangeRecordsActor(t *testing.T) {
	repo := &memoryRepository{}
	svc := NewAuditService(repo, zap.NewNop())

	ctx := context.WithValue(context.Background(), ActorKey, "alice")
	err := svc.LogChange(ctx, common_models.AuditActionCreate, "views", "nightly/l2add", map[string]common_models.Change{
		"filters": {New: map[string]any{"type": "L2ADD"}},
	})
	if err != nil {
		t.Fatalf("LogChange() error = %v", err)
	}

	if len(repo.logs) != 1 {
		t.Fatalf("logs = %d, want 1", len(repo.logs))
	}
	got := repo.logs[0]
	if got.ActorID != "alice" || got.RecordID != "nightly/l2add" || got.Action != common_models.AuditActionCreate {
		t.Errorf("unexpected entry: %+v", got)
	}
	if got.ID.IsZero() || got.Timestamp.IsZero() {
		t.Errorf("id/timestamp not set: %+v", got)
	}
}

func TestLogChangeDefaultsToSystem(t *testing.T) {
	repo := &memoryRepository{}
	svc := NewAuditService(repo, zap.NewNop())

	_ = svc.LogChange(context.Background(), common_models.AuditActionDelete, "views", "old", nil)

	if repo.logs[0].ActorID != "system" {
		t.Errorf("ActorID = %q, want system", repo.logs[0].ActorID)
	}
}

func TestLogChangePropagatesRepositoryError(t *testing.T) {
	svc := NewAuditService(&memoryRepository{err: errors.New("down")}, zap.NewNop())
	if err := svc.LogChange(context.Background(), common_models.AuditActionMove, "views", "a", nil); err == nil {
		t.Fatal("expected repository error")
	}
}

func TestNoopRepository(t *testing.T) {
	repo := NewAuditRepository(nil)
	if err := repo.Create(context.Background(), common_models.AuditLog{}); err != nil {
		t.Fatalf("noop Create() error = %v", err)
	}
	logs, err := repo.List(context.Background(), nil, 10, 0)
	if err != nil || len(logs) != 0 {
		t.Fatalf("noop List() = %v, %v", logs, err)
	}
}
