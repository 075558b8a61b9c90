package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "localehub/internal/errors"
	"localehub/internal/model"
	"localehub/internal/repository"
)

// MockTranslationRepository is a mock implementation of TranslationRepository.
type MockTranslationRepository struct {
	mock.Mock
}

func (m *MockTranslationRepository) Create(ctx context.Context, tr *model.Translation) error {
	args := m.Called(ctx, tr)
	return args.Error(0)
}

func (m *MockTranslationRepository) Save(ctx context.Context, tr *model.Translation) error {
	args := m.Called(ctx, tr)
	return args.Error(0)
}

func (m *MockTranslationRepository) FindByID(ctx context.Context, id uint) (*model.Translation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Translation), args.Error(1)
}

func (m *MockTranslationRepository) KeyExists(ctx context.Context, key string, excludeID uint) (bool, error) {
	args := m.Called(ctx, key, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTranslationRepository) List(ctx context.Context, filter repository.ListFilter, offset, limit int) ([]model.Translation, int64, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.Translation), args.Get(1).(int64), args.Error(2)
}

func (m *MockTranslationRepository) FindAll(ctx context.Context) ([]model.Translation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Translation), args.Error(1)
}

func (m *MockTranslationRepository) CreateBatch(ctx context.Context, trs []model.Translation, batchSize int) error {
	args := m.Called(ctx, trs, batchSize)
	return args.Error(0)
}

func TestTranslationService_Create(t *testing.T) {
	tests := []struct {
		name          string
		input         CreateInput
		setupMock     func(*MockTranslationRepository)
		expectedError error
	}{
		{
			name: "successful creation",
			input: CreateInput{
				Key:          "welcome",
				Translations: model.LocaleMap{"en": "Welcome", "fr": "Bienvenue"},
				Tags:         model.TagList{"web"},
			},
			setupMock: func(m *MockTranslationRepository) {
				m.On("KeyExists", mock.Anything, "welcome", uint(0)).Return(false, nil)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Translation")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name: "missing tags default to empty set",
			input: CreateInput{
				Key:          "goodbye",
				Translations: model.LocaleMap{"en": "Goodbye"},
			},
			setupMock: func(m *MockTranslationRepository) {
				m.On("KeyExists", mock.Anything, "goodbye", uint(0)).Return(false, nil)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Translation")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name: "duplicate key",
			input: CreateInput{
				Key:          "welcome",
				Translations: model.LocaleMap{"en": "Welcome"},
			},
			setupMock: func(m *MockTranslationRepository) {
				m.On("KeyExists", mock.Anything, "welcome", uint(0)).Return(true, nil)
			},
			expectedError: apperrors.ErrKeyTaken,
		},
		{
			name: "empty translations rejected before any write",
			input: CreateInput{
				Key:          "welcome",
				Translations: model.LocaleMap{},
			},
			setupMock:     func(m *MockTranslationRepository) {},
			expectedError: apperrors.ErrEmptyTranslations,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockTranslationRepository)
			tt.setupMock(mockRepo)

			svc := NewTranslationService(mockRepo, nil)
			tr, err := svc.Create(context.Background(), tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, tr)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, tr)
				assert.Equal(t, tt.input.Key, tr.Key)
				assert.Equal(t, tt.input.Translations, tr.Translations)
				assert.NotNil(t, tr.Tags)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestTranslationService_Update(t *testing.T) {
	stored := func() *model.Translation {
		return &model.Translation{
			ID:           3,
			Key:          "greeting",
			Translations: model.LocaleMap{"en": "Hello"},
			Tags:         model.TagList{"web"},
		}
	}
	newKey := "salutation"
	takenKey := "welcome"
	emptyTags := model.TagList{}

	tests := []struct {
		name          string
		id            uint
		input         UpdateInput
		setupMock     func(*MockTranslationRepository)
		expectedError error
		check         func(*testing.T, *model.Translation)
	}{
		{
			name:  "not found",
			id:    99,
			input: UpdateInput{},
			setupMock: func(m *MockTranslationRepository) {
				m.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrTranslationNotFound,
		},
		{
			name:  "new key collides with another record",
			id:    3,
			input: UpdateInput{Key: &takenKey},
			setupMock: func(m *MockTranslationRepository) {
				m.On("FindByID", mock.Anything, uint(3)).Return(stored(), nil)
				m.On("KeyExists", mock.Anything, takenKey, uint(3)).Return(true, nil)
			},
			expectedError: apperrors.ErrKeyTaken,
		},
		{
			name:  "record may keep its own key",
			id:    3,
			input: UpdateInput{Key: ptr("greeting"), Translations: model.LocaleMap{"en": "Hi", "fr": "Salut"}},
			setupMock: func(m *MockTranslationRepository) {
				m.On("FindByID", mock.Anything, uint(3)).Return(stored(), nil)
				// No KeyExists call: the unchanged key skips the uniqueness check.
				m.On("Save", mock.Anything, mock.AnythingOfType("*model.Translation")).Return(nil)
			},
			check: func(t *testing.T, tr *model.Translation) {
				assert.Equal(t, "greeting", tr.Key)
				assert.Equal(t, model.LocaleMap{"en": "Hi", "fr": "Salut"}, tr.Translations)
				assert.Equal(t, model.TagList{"web"}, tr.Tags)
			},
		},
		{
			name:  "supplied fields replace, absent fields persist",
			id:    3,
			input: UpdateInput{Key: &newKey, Tags: &emptyTags},
			setupMock: func(m *MockTranslationRepository) {
				m.On("FindByID", mock.Anything, uint(3)).Return(stored(), nil)
				m.On("KeyExists", mock.Anything, newKey, uint(3)).Return(false, nil)
				m.On("Save", mock.Anything, mock.AnythingOfType("*model.Translation")).Return(nil)
			},
			check: func(t *testing.T, tr *model.Translation) {
				assert.Equal(t, newKey, tr.Key)
				assert.Equal(t, model.LocaleMap{"en": "Hello"}, tr.Translations)
				assert.Equal(t, model.TagList{}, tr.Tags)
			},
		},
		{
			name:  "empty translations map rejected",
			id:    3,
			input: UpdateInput{Translations: model.LocaleMap{}},
			setupMock: func(m *MockTranslationRepository) {
				m.On("FindByID", mock.Anything, uint(3)).Return(stored(), nil)
			},
			expectedError: apperrors.ErrEmptyTranslations,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockTranslationRepository)
			tt.setupMock(mockRepo)

			svc := NewTranslationService(mockRepo, nil)
			tr, err := svc.Update(context.Background(), tt.id, tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, tr)
			} else {
				assert.NoError(t, err)
				if tt.check != nil {
					tt.check(t, tr)
				}
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestTranslationService_List(t *testing.T) {
	mockRepo := new(MockTranslationRepository)
	filter := repository.ListFilter{Tag: "web"}
	items := []model.Translation{{ID: 1, Key: "welcome"}}
	mockRepo.On("List", mock.Anything, filter, 100, PageSize).Return(items, int64(120), nil)

	svc := NewTranslationService(mockRepo, nil)
	page, err := svc.List(context.Background(), filter, 3)

	assert.NoError(t, err)
	assert.Equal(t, 3, page.CurrentPage)
	assert.Equal(t, PageSize, page.PerPage)
	assert.Equal(t, int64(120), page.Total)
	assert.Equal(t, 3, page.LastPage)
	assert.Equal(t, items, page.Data)
	mockRepo.AssertExpectations(t)
}

func TestTranslationService_List_DefaultsPageAndData(t *testing.T) {
	mockRepo := new(MockTranslationRepository)
	mockRepo.On("List", mock.Anything, repository.ListFilter{}, 0, PageSize).Return(nil, int64(0), nil)

	svc := NewTranslationService(mockRepo, nil)
	page, err := svc.List(context.Background(), repository.ListFilter{}, 0)

	assert.NoError(t, err)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 1, page.LastPage)
	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
}

func TestTranslationService_Export(t *testing.T) {
	mockRepo := new(MockTranslationRepository)
	mockRepo.On("FindAll", mock.Anything).Return([]model.Translation{
		{Key: "welcome", Translations: model.LocaleMap{"en": "Welcome", "fr": "Bienvenue"}},
		{Key: "goodbye", Translations: model.LocaleMap{"en": "Goodbye"}},
	}, nil)

	svc := NewTranslationService(mockRepo, nil)
	out, err := svc.Export(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, map[string]map[string]string{
		"en": {"welcome": "Welcome", "goodbye": "Goodbye"},
		"fr": {"welcome": "Bienvenue"},
	}, out)
	// "fr" has no entry for goodbye and no empty placeholder appears.
	_, ok := out["fr"]["goodbye"]
	assert.False(t, ok)
}

func ptr(s string) *string { return &s }
