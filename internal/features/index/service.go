package index

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	common_models "go-reporting/internal/common/models"
	"go-reporting/internal/config"
	"go-reporting/internal/features/audit"
	"go-reporting/internal/search"

	"go.uber.org/zap"
)

// StepResult is the outcome of one best-effort bootstrap step. A non-nil Err is
// logged and never returned to callers.
type StepResult struct {
	Step string
	Err  error
}

func (r StepResult) Ignored() bool { return r.Err != nil }

func (r StepResult) Reason() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

type BootstrapResult struct {
	Template StepResult
	Index    StepResult
}

type IndexService interface {
	// EnsureReady registers the index template and creates the index. It never fails.
	EnsureReady(ctx context.Context) BootstrapResult
	// EnsureOnce runs EnsureReady the first time it is called in the process.
	EnsureOnce(ctx context.Context)
}

type IndexServiceImpl struct {
	Client       search.Client
	AuditService audit.AuditService
	Logger       *zap.Logger

	index        string
	templateName string
	templatePath string
	once         sync.Once
}

func NewIndexService(cfg *config.Config, client search.Client, auditService audit.AuditService, logger *zap.Logger) IndexService {
	return &IndexServiceImpl{
		Client:       client,
		AuditService: auditService,
		Logger:       logger,
		index:        cfg.Index,
		templateName: cfg.TemplateName,
		templatePath: cfg.TemplatePath,
	}
}

func (s *IndexServiceImpl) EnsureReady(ctx context.Context) BootstrapResult {
	result := BootstrapResult{
		Template: StepResult{Step: "template " + s.templateName, Err: s.putTemplate(ctx)},
		Index:    StepResult{Step: "index " + s.index, Err: s.Client.CreateIndex(ctx, s.index)},
	}

	for _, step := range []StepResult{result.Template, result.Index} {
		if step.Ignored() {
			// Already existing templates/indexes end up here too.
			s.Logger.Debug("Bootstrap step ignored", zap.String("step", step.Step), zap.Error(step.Err))
			continue
		}
		s.Logger.Info("Bootstrap step done", zap.String("step", step.Step))
	}

	if s.AuditService != nil && !result.Index.Ignored() {
		_ = s.AuditService.LogChange(ctx, common_models.AuditActionBootstrap, audit.ModuleIndex, s.index, nil)
	}
	return result
}

// ensureTimeout bounds the one-time bootstrap independently of the caller.
const ensureTimeout = 30 * time.Second

// EnsureOnce runs EnsureReady on the first call only. The bootstrap keeps the
// caller's values but not its cancellation, so an aborted request does not use
// up the single attempt.
func (s *IndexServiceImpl) EnsureOnce(ctx context.Context) {
	s.once.Do(func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ensureTimeout)
		defer cancel()
		s.EnsureReady(ctx)
	})
}

func (s *IndexServiceImpl) putTemplate(ctx context.Context) error {
	body, err := os.ReadFile(s.templatePath)
	if err != nil {
		return fmt.Errorf("read template: %w", err)
	}
	return s.Client.PutTemplate(ctx, s.templateName, body)
}
