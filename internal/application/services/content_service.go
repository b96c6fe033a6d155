package services

import (
	"context"

	"github.com/brightlane/sitecms/internal/domain/collection"
	"github.com/brightlane/sitecms/internal/domain/entities"
	"github.com/brightlane/sitecms/internal/infrastructure/logger"
	"github.com/brightlane/sitecms/internal/ports"
)

// ServiceCatalog handles the services collection
type ServiceCatalog struct {
	store    *recordSet[entities.Service]
	logger   *logger.Logger
	recorder MutationRecorder
}

// NewServiceCatalog creates a new service catalog. recorder may be nil.
func NewServiceCatalog(repo ports.CollectionRepository, logger *logger.Logger, recorder MutationRecorder) *ServiceCatalog {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &ServiceCatalog{
		store: &recordSet[entities.Service]{
			name:     entities.CollectionServices,
			repo:     repo,
			defaults: entities.DefaultServices,
		},
		logger:   logger.WithComponent("services"),
		recorder: recorder,
	}
}

var _ ports.ServiceCatalog = (*ServiceCatalog)(nil)

// List returns every service in stored order
func (s *ServiceCatalog) List(ctx context.Context) ([]entities.Service, error) {
	return s.store.load(ctx)
}

// Get returns one service
func (s *ServiceCatalog) Get(ctx context.Context, id int) (entities.Service, error) {
	services, err := s.store.load(ctx)
	if err != nil {
		return entities.Service{}, err
	}
	svc, ok := collection.Find(services, id)
	if !ok {
		return entities.Service{}, entities.ErrNotFound
	}
	return svc, nil
}

// Create appends a service with the next free id
func (s *ServiceCatalog) Create(ctx context.Context, req entities.ServicePayload) (entities.Service, error) {
	var created entities.Service
	err := s.store.mutate(ctx, func(services []entities.Service) ([]entities.Service, error) {
		var out []entities.Service
		out, created = collection.Add(services, req.Service())
		return out, nil
	})
	if err != nil {
		return entities.Service{}, err
	}

	s.recorder.CountMutation(entities.CollectionServices, "create")
	s.logger.LogMutation(entities.CollectionServices, "create", created.ID)
	return created, nil
}

// Update replaces every field of a service except its id
func (s *ServiceCatalog) Update(ctx context.Context, id int, req entities.ServicePayload) (entities.Service, error) {
	var updated entities.Service
	err := s.store.mutate(ctx, func(services []entities.Service) ([]entities.Service, error) {
		var (
			out []entities.Service
			err error
		)
		out, updated, err = collection.Update(services, id, req.Service())
		return out, err
	})
	if err != nil {
		return entities.Service{}, err
	}

	s.recorder.CountMutation(entities.CollectionServices, "update")
	s.logger.LogMutation(entities.CollectionServices, "update", id)
	return updated, nil
}

// Delete removes a service. Deleting an unknown id succeeds.
func (s *ServiceCatalog) Delete(ctx context.Context, id int) error {
	err := s.store.mutate(ctx, func(services []entities.Service) ([]entities.Service, error) {
		return collection.Delete(services, id), nil
	})
	if err != nil {
		return err
	}

	s.recorder.CountMutation(entities.CollectionServices, "delete")
	s.logger.LogMutation(entities.CollectionServices, "delete", id)
	return nil
}

// BlogService handles the blogs collection
type BlogService struct {
	store    *recordSet[entities.Blog]
	logger   *logger.Logger
	recorder MutationRecorder
}

// NewBlogService creates a new blog service. recorder may be nil.
func NewBlogService(repo ports.CollectionRepository, logger *logger.Logger, recorder MutationRecorder) *BlogService {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &BlogService{
		store: &recordSet[entities.Blog]{
			name:     entities.CollectionBlogs,
			repo:     repo,
			defaults: entities.DefaultBlogs,
		},
		logger:   logger.WithComponent("blogs"),
		recorder: recorder,
	}
}

var _ ports.BlogService = (*BlogService)(nil)

// List returns every blog post in stored order
func (s *BlogService) List(ctx context.Context) ([]entities.Blog, error) {
	return s.store.load(ctx)
}

// ListStarred returns the posts shown on the home page
func (s *BlogService) ListStarred(ctx context.Context) ([]entities.Blog, error) {
	blogs, err := s.store.load(ctx)
	if err != nil {
		return nil, err
	}
	return collection.Starred(blogs), nil
}

// Get returns one blog post
func (s *BlogService) Get(ctx context.Context, id int) (entities.Blog, error) {
	blogs, err := s.store.load(ctx)
	if err != nil {
		return entities.Blog{}, err
	}
	b, ok := collection.Find(blogs, id)
	if !ok {
		return entities.Blog{}, entities.ErrNotFound
	}
	return b, nil
}

// Create appends a blog post with the next free id. Posts are unstarred unless
// the payload says otherwise.
func (s *BlogService) Create(ctx context.Context, req entities.BlogPayload) (entities.Blog, error) {
	var created entities.Blog
	err := s.store.mutate(ctx, func(blogs []entities.Blog) ([]entities.Blog, error) {
		var out []entities.Blog
		out, created = collection.Add(blogs, req.Blog())
		return out, nil
	})
	if err != nil {
		return entities.Blog{}, err
	}

	s.recorder.CountMutation(entities.CollectionBlogs, "create")
	s.logger.LogMutation(entities.CollectionBlogs, "create", created.ID)
	return created, nil
}

// Update replaces a blog post, keeping its starred flag when the payload omits one
func (s *BlogService) Update(ctx context.Context, id int, req entities.BlogPayload) (entities.Blog, error) {
	var updated entities.Blog
	err := s.store.mutate(ctx, func(blogs []entities.Blog) ([]entities.Blog, error) {
		var (
			out []entities.Blog
			err error
		)
		out, updated, err = collection.UpdateBlog(blogs, id, req)
		return out, err
	})
	if err != nil {
		return entities.Blog{}, err
	}

	s.recorder.CountMutation(entities.CollectionBlogs, "update")
	s.logger.LogMutation(entities.CollectionBlogs, "update", id)
	return updated, nil
}

// Delete removes a blog post. Deleting an unknown id succeeds.
func (s *BlogService) Delete(ctx context.Context, id int) error {
	err := s.store.mutate(ctx, func(blogs []entities.Blog) ([]entities.Blog, error) {
		return collection.Delete(blogs, id), nil
	})
	if err != nil {
		return err
	}

	s.recorder.CountMutation(entities.CollectionBlogs, "delete")
	s.logger.LogMutation(entities.CollectionBlogs, "delete", id)
	return nil
}

// ToggleStar flips the starred flag and returns the new value
func (s *BlogService) ToggleStar(ctx context.Context, id int) (bool, error) {
	var starred bool
	err := s.store.mutate(ctx, func(blogs []entities.Blog) ([]entities.Blog, error) {
		var (
			out []entities.Blog
			err error
		)
		out, starred, err = collection.ToggleStar(blogs, id)
		return out, err
	})
	if err != nil {
		return false, err
	}

	s.recorder.CountMutation(entities.CollectionBlogs, "toggle_star")
	s.logger.LogMutation(entities.CollectionBlogs, "toggle_star", id)
	return starred, nil
}

// Seed materializes both collections, writing the defaults where nothing is stored yet
func Seed(ctx context.Context, catalog *ServiceCatalog, blogs *BlogService) error {
	if _, err := catalog.List(ctx); err != nil {
		return err
	}
	_, err := blogs.List(ctx)
	return err
}
