package view

import (
	"context"
	"errors"
	"fmt"

	common_models "go-reporting/internal/common/models"
	"go-reporting/internal/features/audit"

	"go.uber.org/zap"
)

type ViewService interface {
	ListViews(ctx context.Context, path string) (*Listing, error)
	// ReadView returns the filters of a view. With strict false a missing view or a
	// folder yields an empty map instead of an error.
	ReadView(ctx context.Context, view string, strict bool) (map[string]any, error)
	CreateView(ctx context.Context, payload map[string]any) (*SaveRequest, error)
	UpdateView(ctx context.Context, payload map[string]any) (*SaveRequest, error)
	DeleteView(ctx context.Context, path string) error
	MoveView(ctx context.Context, src, dest string) error
	IsDuplicate(ctx context.Context, folder, name string) (bool, error)
}

type ViewServiceImpl struct {
	ViewRepo     ViewRepository
	AuditService audit.AuditService
	Logger       *zap.Logger
}

func NewViewService(viewRepo ViewRepository, auditService audit.AuditService, logger *zap.Logger) ViewService {
	return &ViewServiceImpl{
		ViewRepo:     viewRepo,
		AuditService: auditService,
		Logger:       logger,
	}
}

func (s *ViewServiceImpl) ListViews(ctx context.Context, path string) (*Listing, error) {
	return s.ViewRepo.List(path)
}

func (s *ViewServiceImpl) ReadView(ctx context.Context, view string, strict bool) (map[string]any, error) {
	filters, err := s.ViewRepo.Read(view)
	if err != nil {
		if !strict && (errors.Is(err, ErrNotFound) || errors.Is(err, ErrIsAFolder)) {
			return map[string]any{}, nil
		}
		return nil, err
	}
	return filters, nil
}

func (s *ViewServiceImpl) CreateView(ctx context.Context, payload map[string]any) (*SaveRequest, error) {
	req, err := Validate(payload)
	if err != nil {
		return nil, err
	}

	dup, err := s.ViewRepo.Exists(req.Folder, req.View)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, fmt.Errorf("%w: a view with same name already exists: %s", ErrDuplicateView, req.Path())
	}

	if err := s.save(req); err != nil {
		return nil, err
	}
	s.audit(ctx, common_models.AuditActionCreate, req.Path(), map[string]common_models.Change{
		"filters": {New: req.Filters},
	})
	return req, nil
}

// UpdateView overwrites unconditionally; it differs from CreateView only by the
// missing duplicate check.
func (s *ViewServiceImpl) UpdateView(ctx context.Context, payload map[string]any) (*SaveRequest, error) {
	req, err := Validate(payload)
	if err != nil {
		return nil, err
	}

	old, _ := s.ViewRepo.Read(req.Path())
	if err := s.save(req); err != nil {
		return nil, err
	}
	s.audit(ctx, common_models.AuditActionUpdate, req.Path(), map[string]common_models.Change{
		"filters": {Old: old, New: req.Filters},
	})
	return req, nil
}

func (s *ViewServiceImpl) DeleteView(ctx context.Context, path string) error {
	if err := s.ViewRepo.Delete(path); err != nil {
		return err
	}
	s.audit(ctx, common_models.AuditActionDelete, path, nil)
	return nil
}

func (s *ViewServiceImpl) MoveView(ctx context.Context, src, dest string) error {
	if err := s.ViewRepo.Move(src, dest); err != nil {
		return err
	}
	s.audit(ctx, common_models.AuditActionMove, src, map[string]common_models.Change{
		"path": {Old: src, New: dest},
	})
	return nil
}

func (s *ViewServiceImpl) IsDuplicate(ctx context.Context, folder, name string) (bool, error) {
	return s.ViewRepo.Exists(folder, name)
}

func (s *ViewServiceImpl) save(req *SaveRequest) error {
	if req.Folder != "" {
		s.Logger.Info("Saving view", zap.String("folder", req.Folder), zap.String("view", req.View))
	}
	return s.ViewRepo.Write(req.Folder, req.View, req.Filters)
}

// audit failures never undo a completed filesystem change.
func (s *ViewServiceImpl) audit(ctx context.Context, action common_models.AuditAction, path string, changes map[string]common_models.Change) {
	if s.AuditService == nil {
		return
	}
	_ = s.AuditService.LogChange(ctx, action, audit.ModuleViews, path, changes)
}
