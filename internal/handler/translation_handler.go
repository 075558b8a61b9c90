package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "localehub/internal/errors"
	"localehub/internal/model"
	"localehub/internal/repository"
	"localehub/internal/service"
)

// TranslationHandler handles translation CRUD and export endpoints.
type TranslationHandler struct {
	svc service.TranslationService
}

// NewTranslationHandler creates a new translation handler.
func NewTranslationHandler(svc service.TranslationService) *TranslationHandler {
	return &TranslationHandler{svc: svc}
}

// CreateTranslationRequest represents a translation creation request.
type CreateTranslationRequest struct {
	Key          string            `json:"key" validate:"required,max=255"`
	Translations map[string]string `json:"translations" validate:"required,min=1"`
	Tags         []string          `json:"tags"`
}

// UpdateTranslationRequest represents a translation update request. Absent
// fields keep their stored value; present fields are replaced wholesale.
type UpdateTranslationRequest struct {
	Key          *string           `json:"key" validate:"omitempty,max=255"`
	Translations map[string]string `json:"translations" validate:"omitempty,min=1"`
	Tags         *[]string         `json:"tags"`
}

// List godoc
// @Summary List translations with optional filters
// @Tags translations
// @Produce json
// @Security BearerAuth
// @Param tag query string false "Exact tag to filter by (e.g. mobile, web)"
// @Param key query string false "Substring of the translation key"
// @Param content query string false "Substring of the translated content"
// @Param page query int false "Page number, 50 records per page"
// @Success 200 {object} service.Page
// @Failure 401 {object} errors.ErrorResponse
// @Router /translations [get]
func (h *TranslationHandler) List(c echo.Context) error {
	filter := repository.ListFilter{
		Tag:     c.QueryParam("tag"),
		Key:     c.QueryParam("key"),
		Content: c.QueryParam("content"),
	}
	page, _ := strconv.Atoi(c.QueryParam("page"))

	result, err := h.svc.List(c.Request().Context(), filter, page)
	if err != nil {
		he := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, result)
}

// Create godoc
// @Summary Create a new translation
// @Tags translations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTranslationRequest true "Translation payload"
// @Success 201 {object} model.Translation
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ValidationFailure
// @Router /translations [post]
func (h *TranslationHandler) Create(c echo.Context) error {
	var req CreateTranslationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, validationFailure(err))
	}

	tr, err := h.svc.Create(c.Request().Context(), service.CreateInput{
		Key:          req.Key,
		Translations: model.LocaleMap(req.Translations),
		Tags:         model.TagList(req.Tags),
	})
	if err != nil {
		return translationError(c, err)
	}
	return c.JSON(http.StatusCreated, tr)
}

// Update godoc
// @Summary Update an existing translation
// @Tags translations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Translation ID"
// @Param request body UpdateTranslationRequest true "Fields to replace"
// @Success 200 {object} model.Translation
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ValidationFailure
// @Router /translations/{id} [put]
func (h *TranslationHandler) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		he := apperrors.MapErrorToHTTP(apperrors.ErrTranslationNotFound)
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}

	var req UpdateTranslationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, validationFailure(err))
	}

	input := service.UpdateInput{Key: req.Key}
	if req.Translations != nil {
		input.Translations = model.LocaleMap(req.Translations)
	}
	if req.Tags != nil {
		tags := model.TagList(*req.Tags)
		input.Tags = &tags
	}

	tr, err := h.svc.Update(c.Request().Context(), uint(id), input)
	if err != nil {
		return translationError(c, err)
	}
	return c.JSON(http.StatusOK, tr)
}

// Export godoc
// @Summary Export all translations grouped by locale
// @Tags translations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Router /translations/export [get]
func (h *TranslationHandler) Export(c echo.Context) error {
	data, err := h.svc.Export(c.Request().Context())
	if err != nil {
		he := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, data)
}

// translationError renders service failures, turning key and shape violations
// into per-field 422 payloads.
func translationError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, apperrors.ErrKeyTaken):
		return c.JSON(http.StatusUnprocessableEntity, apperrors.NewValidationFailure("key", err.Error()))
	case errors.Is(err, apperrors.ErrEmptyTranslations):
		return c.JSON(http.StatusUnprocessableEntity, apperrors.NewValidationFailure("translations", err.Error()))
	default:
		he := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}
}
