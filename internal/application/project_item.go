package application

import (
	"context"

	"github.com/tamilsociety/tls-platform/internal/apierrors"
	"github.com/tamilsociety/tls-platform/internal/domain/project"
	"github.com/tamilsociety/tls-platform/internal/repository"
	"github.com/tamilsociety/tls-platform/pkg/response"
)

type ProjectItemPage = response.Page[project.ProjectItem, struct{}]

type ProjectItemService struct {
	Repos *repository.Repos
}

func NewProjectItemService(repos *repository.Repos) *ProjectItemService {
	return &ProjectItemService{
		Repos: repos,
	}
}

func (s *ProjectItemService) Create(ctx context.Context, in project.CreateProjectItemDTO) (*project.ProjectItem, error) {
	p := &project.ProjectItem{
		Title:       in.Title.Or(),
		Description: in.Description.Or(),
		Category:    in.Category,
	}
	if p.Title.Sanitized().IsZero() {
		return nil, apierrors.Validation("title is required")
	}
	if err := s.Repos.ProjectItem.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProjectItemService) Get(ctx context.Context, id string) (*project.ProjectItem, error) {
	p, err := s.Repos.ProjectItem.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrProjectNotFound)
	}
	return p, nil
}

func (s *ProjectItemService) List(ctx context.Context, q project.ListQuery) (*ProjectItemPage, error) {
	q.Page, q.Limit = repository.NormalizePage(q.Page, q.Limit)
	items, total, err := s.Repos.ProjectItem.List(ctx, q)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []project.ProjectItem{}
	}
	return &ProjectItemPage{Items: items, Total: total, Page: q.Page, Limit: q.Limit}, nil
}
