package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"localehub/internal/cache"
	apperrors "localehub/internal/errors"
	"localehub/internal/model"
	"localehub/internal/repository"
)

const (
	// PageSize is the fixed number of translations per listing page.
	PageSize = 50

	exportCacheKey = "translations:export"
	exportCacheTTL = 5 * time.Minute
)

// Page is one page of a translation listing.
type Page struct {
	CurrentPage int                 `json:"current_page"`
	Data        []model.Translation `json:"data"`
	PerPage     int                 `json:"per_page"`
	Total       int64               `json:"total"`
	LastPage    int                 `json:"last_page"`
}

// CreateInput carries the fields for a new translation.
type CreateInput struct {
	Key          string
	Translations model.LocaleMap
	Tags         model.TagList
}

// UpdateInput carries the fields for a translation update. Nil fields are left
// untouched; supplied fields fully replace the stored value, no merging.
type UpdateInput struct {
	Key          *string
	Translations model.LocaleMap
	Tags         *model.TagList
}

// TranslationService exposes translation domain operations.
type TranslationService interface {
	List(ctx context.Context, filter repository.ListFilter, page int) (*Page, error)
	Create(ctx context.Context, input CreateInput) (*model.Translation, error)
	Update(ctx context.Context, id uint, input UpdateInput) (*model.Translation, error)
	Export(ctx context.Context) (map[string]map[string]string, error)
}

type translationService struct {
	repo  repository.TranslationRepository
	cache *cache.Client
}

// NewTranslationService builds a TranslationService with repository and cache.
func NewTranslationService(repo repository.TranslationRepository, cache *cache.Client) TranslationService {
	return &translationService{repo: repo, cache: cache}
}

// List returns one page of translations matching the filter, in insertion
// order.
func (s *translationService) List(ctx context.Context, filter repository.ListFilter, page int) (*Page, error) {
	if page < 1 {
		page = 1
	}

	items, total, err := s.repo.List(ctx, filter, (page-1)*PageSize, PageSize)
	if err != nil {
		return nil, fmt.Errorf("list translations: %w", err)
	}
	if items == nil {
		items = []model.Translation{}
	}

	lastPage := int((total + PageSize - 1) / PageSize)
	if lastPage < 1 {
		lastPage = 1
	}

	return &Page{
		CurrentPage: page,
		Data:        items,
		PerPage:     PageSize,
		Total:       total,
		LastPage:    lastPage,
	}, nil
}

// Create stores a new translation. The key must be globally unique.
func (s *translationService) Create(ctx context.Context, input CreateInput) (*model.Translation, error) {
	if len(input.Translations) == 0 {
		return nil, apperrors.ErrEmptyTranslations
	}

	taken, err := s.repo.KeyExists(ctx, input.Key, 0)
	if err != nil {
		return nil, fmt.Errorf("check key: %w", err)
	}
	if taken {
		return nil, apperrors.ErrKeyTaken
	}

	tr := &model.Translation{
		Key:          input.Key,
		Translations: input.Translations,
		Tags:         input.Tags,
	}
	if tr.Tags == nil {
		tr.Tags = model.TagList{}
	}

	if err := s.repo.Create(ctx, tr); err != nil {
		if isDuplicateEntry(err) {
			return nil, apperrors.ErrKeyTaken
		}
		return nil, fmt.Errorf("create translation: %w", err)
	}

	_ = s.cache.Delete(ctx, exportCacheKey)
	return tr, nil
}

// Update replaces the supplied fields of an existing translation. A supplied
// key must not collide with any other record; the record may keep its own key.
func (s *translationService) Update(ctx context.Context, id uint, input UpdateInput) (*model.Translation, error) {
	tr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTranslationNotFound
		}
		return nil, fmt.Errorf("find translation: %w", err)
	}

	if input.Key != nil && *input.Key != tr.Key {
		taken, err := s.repo.KeyExists(ctx, *input.Key, tr.ID)
		if err != nil {
			return nil, fmt.Errorf("check key: %w", err)
		}
		if taken {
			return nil, apperrors.ErrKeyTaken
		}
		tr.Key = *input.Key
	}
	if input.Translations != nil {
		if len(input.Translations) == 0 {
			return nil, apperrors.ErrEmptyTranslations
		}
		tr.Translations = input.Translations
	}
	if input.Tags != nil {
		tr.Tags = *input.Tags
		if tr.Tags == nil {
			tr.Tags = model.TagList{}
		}
	}

	if err := s.repo.Save(ctx, tr); err != nil {
		if isDuplicateEntry(err) {
			return nil, apperrors.ErrKeyTaken
		}
		return nil, fmt.Errorf("save translation: %w", err)
	}

	_ = s.cache.Delete(ctx, exportCacheKey)
	return tr, nil
}

// Export reshapes every stored translation from key -> {locale: text} into
// locale -> {key: text}. The full dump is cached briefly; create and update
// invalidate it.
func (s *translationService) Export(ctx context.Context) (map[string]map[string]string, error) {
	if data, _ := s.cache.Get(ctx, exportCacheKey); data != nil {
		var cached map[string]map[string]string
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load translations: %w", err)
	}

	out := make(map[string]map[string]string)
	for _, tr := range items {
		for locale, text := range tr.Translations {
			if out[locale] == nil {
				out[locale] = make(map[string]string)
			}
			out[locale][tr.Key] = text
		}
	}

	if payload, err := json.Marshal(out); err == nil {
		_ = s.cache.Set(ctx, exportCacheKey, payload, exportCacheTTL)
	}
	return out, nil
}
