package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/campushub/gradebook-api/internal/models"
	appErrors "github.com/campushub/gradebook-api/pkg/errors"
)

type studentRepo interface {
	ListByClass(ctx context.Context, filter models.RosterFilter) ([]models.Student, int, error)
	FindByID(ctx context.Context, id string) (*models.Student, error)
}

// StudentService serves class rosters.
type StudentService struct {
	repo            studentRepo
	defaultPageSize int
	logger          *zap.Logger
}

func NewStudentService(repo studentRepo, defaultPageSize int, logger *zap.Logger) *StudentService {
	if defaultPageSize <= 0 {
		defaultPageSize = 20
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, defaultPageSize: defaultPageSize, logger: logger}
}

// Roster returns one page of a class roster with pagination metadata.
func (s *StudentService) Roster(ctx context.Context, filter models.RosterFilter) ([]models.Student, *models.Pagination, error) {
	if filter.ClassID == "" {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "class id required")
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = s.defaultPageSize
	}
	students, total, err := s.repo.ListByClass(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	path := fmt.Sprintf("/classes/%s/students/", filter.ClassID)
	return students, models.NewPagination(path, filter.Page, filter.PageSize, total), nil
}

// Get returns one student by id.
func (s *StudentService) Get(ctx context.Context, id string) (*models.Student, error) {
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student id required")
	}
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch student")
	}
	return student, nil
}
