package repository

import (
	"context"

	"gorm.io/gorm"

	"localehub/internal/model"
)

// ListFilter narrows a translation listing. Zero-value fields are ignored;
// populated fields compose with AND.
type ListFilter struct {
	// Tag matches records whose tag set contains this exact tag.
	Tag string
	// Key matches by case-sensitive substring containment.
	Key string
	// Content matches against the serialized translations blob, deliberately
	// coarse rather than per-locale.
	Content string
}

// TranslationRepository defines translation persistence operations.
type TranslationRepository interface {
	Create(ctx context.Context, tr *model.Translation) error
	Save(ctx context.Context, tr *model.Translation) error
	FindByID(ctx context.Context, id uint) (*model.Translation, error)
	KeyExists(ctx context.Context, key string, excludeID uint) (bool, error)
	List(ctx context.Context, filter ListFilter, offset, limit int) ([]model.Translation, int64, error)
	FindAll(ctx context.Context) ([]model.Translation, error)
	CreateBatch(ctx context.Context, trs []model.Translation, batchSize int) error
}

type translationRepository struct {
	db *gorm.DB
}

// NewTranslationRepository creates a new translation repository.
func NewTranslationRepository(db *gorm.DB) TranslationRepository {
	return &translationRepository{db: db}
}

// Create inserts a new translation. Key uniqueness is backed by a unique
// index, so concurrent inserts of the same key cannot both succeed.
func (r *translationRepository) Create(ctx context.Context, tr *model.Translation) error {
	return r.db.WithContext(ctx).Create(tr).Error
}

// Save persists all fields of an existing translation.
func (r *translationRepository) Save(ctx context.Context, tr *model.Translation) error {
	return r.db.WithContext(ctx).Save(tr).Error
}

// FindByID finds a translation by ID.
func (r *translationRepository) FindByID(ctx context.Context, id uint) (*model.Translation, error) {
	var tr model.Translation
	if err := r.db.WithContext(ctx).First(&tr, id).Error; err != nil {
		return nil, err
	}
	return &tr, nil
}

// KeyExists reports whether another record already holds the given key.
// excludeID carves the record itself out of the check on update; pass zero
// for creation.
func (r *translationRepository) KeyExists(ctx context.Context, key string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&model.Translation{}).Where("`key` = ?", key)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns one page of translations matching the filter in insertion
// order, along with the total number of matches.
func (r *translationRepository) List(ctx context.Context, filter ListFilter, offset, limit int) ([]model.Translation, int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []model.Translation
	if err := r.filtered(ctx, filter).Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *translationRepository) filtered(ctx context.Context, filter ListFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.Translation{})
	if filter.Tag != "" {
		q = q.Where("JSON_CONTAINS(tags, JSON_QUOTE(?))", filter.Tag)
	}
	if filter.Key != "" {
		q = q.Where("`key` LIKE ?", "%"+filter.Key+"%")
	}
	if filter.Content != "" {
		q = q.Where("translations LIKE ?", "%"+filter.Content+"%")
	}
	return q
}

// FindAll returns every translation, for the export dump.
func (r *translationRepository) FindAll(ctx context.Context) ([]model.Translation, error) {
	var items []model.Translation
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CreateBatch bulk-inserts translations in batches, used by the seeder.
func (r *translationRepository) CreateBatch(ctx context.Context, trs []model.Translation, batchSize int) error {
	return r.db.WithContext(ctx).CreateInBatches(trs, batchSize).Error
}
