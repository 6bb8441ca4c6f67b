// Package content содержит логику бизнес-уровня для контента лендинга:
// агрегат публичного бандла с кэшем в redis и CRUD-операции админки
// с инвалидацией кэша на каждой мутации.
package content

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/crypto-academy/internal/lib/sl"
	"github.com/magabrotheeeer/crypto-academy/internal/models"
)

// BundleCacheKey ключ кэша агрегата публичного контента.
const BundleCacheKey = "content:bundle"

// bundleCacheTTL короткий TTL: контент меняется редко, но инвалидация
// на мутациях делает устаревание практически невозможным.
const bundleCacheTTL = time.Minute

// Repository описывает контракт хранилища контента.
type Repository interface {
	ListPackages(ctx context.Context) ([]models.Package, error)
	CreatePackage(ctx context.Context, p models.Package) (int, error)
	UpdatePackage(ctx context.Context, id int, p models.Package) (int, error)
	DeletePackage(ctx context.Context, id int) (int, error)

	ListFeatures(ctx context.Context) ([]models.Feature, error)
	CreateFeature(ctx context.Context, f models.Feature) (int, error)
	UpdateFeature(ctx context.Context, id int, f models.Feature) (int, error)
	DeleteFeature(ctx context.Context, id int) (int, error)

	ListTestimonials(ctx context.Context) ([]models.Testimonial, error)
	CreateTestimonial(ctx context.Context, t models.Testimonial) (int, error)
	UpdateTestimonial(ctx context.Context, id int, t models.Testimonial) (int, error)
	DeleteTestimonial(ctx context.Context, id int) (int, error)

	ListFAQs(ctx context.Context) ([]models.FAQ, error)
	CreateFAQ(ctx context.Context, f models.FAQ) (int, error)
	UpdateFAQ(ctx context.Context, id int, f models.FAQ) (int, error)
	DeleteFAQ(ctx context.Context, id int) (int, error)

	GetHeroContent(ctx context.Context) (*models.HeroContent, error)
	UpdateHeroContent(ctx context.Context, h models.HeroContent) error
}

// Cache описывает контракт кэша бандла.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Service сервис контента лендинга.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// NewService создаёт сервис контента.
func NewService(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// GetBundle собирает агрегат публичного контента, при возможности из кэша.
// Отказ кэша деградирует до прямого чтения из базы и только логируется.
func (s *Service) GetBundle(ctx context.Context) (*models.ContentBundle, error) {
	const op = "content.GetBundle"

	if s.cache != nil {
		var cached models.ContentBundle
		found, err := s.cache.Get(ctx, BundleCacheKey, &cached)
		if err != nil {
			s.log.Warn("content cache read failed", slog.String("op", op), sl.Err(err))
		}
		if found {
			return &cached, nil
		}
	}

	hero, err := s.repo.GetHeroContent(ctx)
	if err != nil {
		// Лендинг без hero-строки отрисовывается, бандл отдаём с null.
		s.log.Warn("hero content missing", slog.String("op", op), sl.Err(err))
		hero = nil
	}
	features, err := s.repo.ListFeatures(ctx)
	if err != nil {
		return nil, err
	}
	packages, err := s.repo.ListPackages(ctx)
	if err != nil {
		return nil, err
	}
	testimonials, err := s.repo.ListTestimonials(ctx)
	if err != nil {
		return nil, err
	}
	faqs, err := s.repo.ListFAQs(ctx)
	if err != nil {
		return nil, err
	}

	bundle := &models.ContentBundle{
		HeroContent:  hero,
		Features:     features,
		Packages:     packages,
		Testimonials: testimonials,
		FAQs:         faqs,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, BundleCacheKey, bundle, bundleCacheTTL); err != nil {
			s.log.Warn("content cache write failed", slog.String("op", op), sl.Err(err))
		}
	}
	return bundle, nil
}

// invalidateBundle сбрасывает кэш после мутации контента.
func (s *Service) invalidateBundle(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, BundleCacheKey); err != nil {
		s.log.Warn("content cache invalidation failed", sl.Err(err))
	}
}

// ListPackages возвращает все пакеты.
func (s *Service) ListPackages(ctx context.Context) ([]models.Package, error) {
	return s.repo.ListPackages(ctx)
}

// CreatePackage создаёт пакет.
func (s *Service) CreatePackage(ctx context.Context, p models.Package) (int, error) {
	id, err := s.repo.CreatePackage(ctx, p)
	if err != nil {
		return 0, err
	}
	s.invalidateBundle(ctx)
	return id, nil
}

// UpdatePackage обновляет пакет.
func (s *Service) UpdatePackage(ctx context.Context, id int, p models.Package) (int, error) {
	n, err := s.repo.UpdatePackage(ctx, id, p)
	if err != nil {
		return 0, err
	}
	s.invalidateBundle(ctx)
	return n, nil
}

// DeletePackage удаляет пакет.
func (s *Service) DeletePackage(ctx context.Context, id int) (int, error) {
	n, err := s.repo.DeletePackage(ctx, id)
	if err != nil {
		return 0, err
	}
	s.invalidateBundle(ctx)
	return n, nil
}

// ListFeatures возвращает карточки преимуществ.
func (s *Service) ListFeatures(ctx context.Context) ([]models.Feature, error) {
	return s.repo.ListFeatures(ctx)
}

// CreateFeature создаёт карточку.
func (s *Service) CreateFeature(ctx context.Context, f models.Feature) (int, error) {
	id, err := s.repo.CreateFeature(ctx, f)
	if err != nil {
		return 0, err
	}
	s.invalidateBundle(ctx)
	return id, nil
}

// UpdateFeature обновляет карточку.
func (s *Service) UpdateFeature(ctx context.Context, id int, f models.Feature) (int, error) {
	n, err := s.repo.UpdateFeature(ctx, id, f)
	if err != nil {
		return 0, err
	}
	s.invalidateBundle(ctx)
	return n, nil
}

// DeleteFeature удаляет карточку.
func (s *Service) DeleteFeature(ctx context.Context, id int) (int, error) {
	n, err := s.repo.DeleteFeature(ctx, id)
	if err != nil {
		return 0, err
	}
	s.invalidateBundle(ctx)
	return n, nil
}

// ListTestimonials возвращает отзывы.
func (s *Service) ListTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	return s.repo.ListTestimonials(ctx)
}

// CreateTestimonial создаёт отзыв.
func (s *Service) CreateTestimonial(ctx context.Context, t models.Testimonial) (int, error) {
	id, err := s.repo.CreateTestimonial(ctx, t)
	if err != nil {
		return 0, err
	}
	s.invalidateBundle(ctx)
	return id, nil
}

// UpdateTestimonial обновляет отзыв.
func (s *Service) UpdateTestimonial(ctx context.Context, id int, t models.Testimonial) (int, error) {
	n, err := s.repo.UpdateTestimonial(ctx, id, t)
	if err != nil {
		return 0, err
	}
	s.invalidateBundle(ctx)
	return n, nil
}

// DeleteTestimonial удаляет отзыв.
func (s *Service) DeleteTestimonial(ctx context.Context, id int) (int, error) {
	n, err := s.repo.DeleteTestimonial(ctx, id)
	if err != nil {
		return 0, err
	}
	s.invalidateBundle(ctx)
	return n, nil
}

// ListFAQs возвращает вопросы-ответы.
func (s *Service) ListFAQs(ctx context.Context) ([]models.FAQ, error) {
	return s.repo.ListFAQs(ctx)
}

// CreateFAQ создаёт вопрос-ответ.
func (s *Service) CreateFAQ(ctx context.Context, f models.FAQ) (int, error) {
	id, err := s.repo.CreateFAQ(ctx, f)
	if err != nil {
		return 0, err
	}
	s.invalidateBundle(ctx)
	return id, nil
}

// UpdateFAQ обновляет вопрос-ответ.
func (s *Service) UpdateFAQ(ctx context.Context, id int, f models.FAQ) (int, error) {
	n, err := s.repo.UpdateFAQ(ctx, id, f)
	if err != nil {
		return 0, err
	}
	s.invalidateBundle(ctx)
	return n, nil
}

// DeleteFAQ удаляет вопрос-ответ.
func (s *Service) DeleteFAQ(ctx context.Context, id int) (int, error) {
	n, err := s.repo.DeleteFAQ(ctx, id)
	if err != nil {
		return 0, err
	}
	s.invalidateBundle(ctx)
	return n, nil
}

// GetHero возвращает hero-блок.
func (s *Service) GetHero(ctx context.Context) (*models.HeroContent, error) {
	return s.repo.GetHeroContent(ctx)
}

// UpdateHero перезаписывает hero-блок.
func (s *Service) UpdateHero(ctx context.Context, h models.HeroContent) error {
	if err := s.repo.UpdateHeroContent(ctx, h); err != nil {
		return err
	}
	s.invalidateBundle(ctx)
	return nil
}
