package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"medcast/internal/category"
	apperrors "medcast/internal/errors"
	"medcast/internal/models"
	"medcast/internal/services"
)

// CategoryHandler handles category-hierarchy requests.
type CategoryHandler struct {
	coordinator  *category.Coordinator
	auditService services.AuditServicer
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(coordinator *category.Coordinator, auditService services.AuditServicer) *CategoryHandler {
	return &CategoryHandler{coordinator: coordinator, auditService: auditService}
}

// CreateCategoryRequest represents the request payload for creating a category.
type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=100"`
	Description string  `json:"description" binding:"max=500"`
	Color       string  `json:"color" binding:"omitempty,hex_color"`
	Icon        string  `json:"icon" binding:"max=50"`
	ParentID    *string `json:"parent_id"`
	SortOrder   int     `json:"sort_order" binding:"gte=0"`
	IsActive    *bool   `json:"is_active"`
}

// UpdateCategoryRequest represents the request payload for updating a category.
type UpdateCategoryRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=100"`
	Description string  `json:"description" binding:"max=500"`
	Color       string  `json:"color" binding:"omitempty,hex_color"`
	Icon        string  `json:"icon" binding:"max=50"`
	ParentID    *string `json:"parent_id"`
	SortOrder   int     `json:"sort_order" binding:"gte=0"`
	IsActive    *bool   `json:"is_active"`
}

// DeleteCategoriesRequest represents the request payload for deleting categories.
type DeleteCategoriesRequest struct {
	IDs          []string `json:"ids" binding:"required,min=1,dive,uuid"`
	Force        bool     `json:"force"`
	Cascade      bool     `json:"cascade"`
	UpdateAudios bool     `json:"update_audios"`
}

// BatchStatusRequest represents the request payload for batch status updates.
type BatchStatusRequest struct {
	IDs      []string `json:"ids" binding:"required,min=1,dive,uuid"`
	IsActive *bool    `json:"is_active" binding:"required"`
}

// ReorderRequest represents the request payload for reordering categories.
type ReorderRequest struct {
	Items []ReorderItem `json:"items" binding:"required,min=1,dive"`
}

// ReorderItem is a single category position in a reorder request.
type ReorderItem struct {
	ID        string `json:"id" binding:"required,uuid"`
	SortOrder int    `json:"sort_order" binding:"gte=0"`
}

// CategoryResponse represents a category in the response.
type CategoryResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Color       string               `json:"color"`
	Icon        string               `json:"icon"`
	ParentID    *string              `json:"parent_id"`
	Level       models.CategoryLevel `json:"level"`
	SortOrder   int                  `json:"sort_order"`
	IsActive    bool                 `json:"is_active"`
	AudioCount  int64                `json:"audio_count"`
}

func (r CreateCategoryRequest) toInput() category.Input {
	return category.Input{
		Name:        r.Name,
		Description: r.Description,
		Color:       r.Color,
		Icon:        r.Icon,
		ParentID:    r.ParentID,
		SortOrder:   r.SortOrder,
		IsActive:    r.IsActive,
	}
}

func joinIDs(ids []string) string {
	return strings.Join(ids, ",")
}

func (r UpdateCategoryRequest) toInput() category.Input {
	return category.Input{
		Name:        r.Name,
		Description: r.Description,
		Color:       r.Color,
		Icon:        r.Icon,
		ParentID:    r.ParentID,
		SortOrder:   r.SortOrder,
		IsActive:    r.IsActive,
	}
}

// ListCategories returns the flat category collection.
// @Summary     List categories
// @Description List all categories ordered by sort order, with audio counts
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} CategoryResponse "Categories"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories": h.coordinator.Categories(),
		"degraded":   h.coordinator.Degraded(),
	})
}

// GetCategory returns a single category.
// @Summary     Get a category
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Category ID"
// @Success     200 {object} CategoryResponse "Category"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /categories/{id} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	cat, ok := h.coordinator.Get(id)
	if !ok {
		respondWithError(c, apperrors.ErrCategoryNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": cat})
}

// GetTree returns the full two-level category tree.
// @Summary     Get the category tree
// @Description Full hierarchy including inactive categories, for admin views
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Tree"
// @Router      /categories/tree [get]
func (h *CategoryHandler) GetTree(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"tree":     h.coordinator.Tree(),
		"degraded": h.coordinator.Degraded(),
	})
}

// GetPublicTree returns the active-only tree for listener-facing surfaces.
// @Summary     Get the public category tree
// @Description Active categories only, inactive subtrees pruned
// @Tags        categories
// @Produce     json
// @Success     200 {object} map[string]interface{} "Tree"
// @Router      /public/categories/tree [get]
func (h *CategoryHandler) GetPublicTree(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tree": h.coordinator.PublicTree()})
}

// GetStats returns aggregate category statistics.
// @Summary     Get category statistics
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} category.Stats "Statistics"
// @Router      /categories/stats [get]
func (h *CategoryHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stats": h.coordinator.Stats()})
}

// GetOptions returns select options for category pickers.
// @Summary     Get category select options
// @Description Active categories in tree order, optionally filtered by level
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       level query string false "Filter by level" Enums(primary, secondary)
// @Success     200 {array} category.SelectOption "Options"
// @Failure     400 {object} ErrorResponse "Invalid level"
// @Router      /categories/options [get]
func (h *CategoryHandler) GetOptions(c *gin.Context) {
	var level *models.CategoryLevel
	if raw := c.Query("level"); raw != "" {
		l := models.CategoryLevel(raw)
		if l != models.LevelPrimary && l != models.LevelSecondary {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid level"))
			return
		}
		level = &l
	}
	c.JSON(http.StatusOK, gin.H{"options": h.coordinator.Options(level)})
}

// GetSubcategoryOptions returns select options for a primary's children.
// @Summary     Get subcategory select options
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Parent category ID"
// @Success     200 {array} category.SelectOption "Options"
// @Failure     400 {object} ErrorResponse "Invalid id"
// @Router      /categories/{id}/subcategories [get]
func (h *CategoryHandler) GetSubcategoryOptions(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"options": h.coordinator.SubcategoryOptions(id)})
}

// GetPath returns the display path for a category pair.
// @Summary     Resolve a category display path
// @Description Builds a "Primary / Secondary" breadcrumb for audio metadata
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       category_id query string true "Primary category ID"
// @Param       subcategory_id query string false "Subcategory ID"
// @Success     200 {object} map[string]string "Path"
// @Router      /categories/path [get]
func (h *CategoryHandler) GetPath(c *gin.Context) {
	path := h.coordinator.Path(c.Query("category_id"), c.Query("subcategory_id"))
	c.JSON(http.StatusOK, gin.H{"path": path})
}

// CreateCategory creates a category.
// @Summary     Create a category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateCategoryRequest true "Category details"
// @Success     201 {object} CategoryResponse "Category created"
// @Failure     400 {object} ErrorResponse "Validation failed"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Duplicate sibling name"
// @Failure     503 {object} ErrorResponse "Backing store unavailable"
// @Router      /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	cat, err := h.coordinator.Create(c.Request.Context(), req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_CATEGORY", "category", cat.ID, c.ClientIP(),
		map[string]interface{}{"name": cat.Name, "level": cat.Level})

	c.JSON(http.StatusCreated, gin.H{"category": cat})
}

// UpdateCategory updates a category.
// @Summary     Update a category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Category ID"
// @Param       request body UpdateCategoryRequest true "Category details"
// @Success     200 {object} CategoryResponse "Category updated"
// @Failure     400 {object} ErrorResponse "Validation failed"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     409 {object} ErrorResponse "Duplicate sibling name"
// @Router      /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	cat, err := h.coordinator.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_CATEGORY", "category", cat.ID, c.ClientIP(),
		map[string]interface{}{"name": cat.Name, "is_active": cat.IsActive})

	c.JSON(http.StatusOK, gin.H{"category": cat})
}

// PreviewDelete reports what a delete would affect without mutating anything.
// @Summary     Preview a category deletion
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body DeleteCategoriesRequest true "Target ids"
// @Success     200 {object} category.DeleteImpact "Impact"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /categories/delete-impact [post]
func (h *CategoryHandler) PreviewDelete(c *gin.Context) {
	var req DeleteCategoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"impact": h.coordinator.PreviewDelete(req.IDs)})
}

// DeleteCategories deletes one or more categories.
// @Summary     Delete categories
// @Description Deletes categories, blocked for non-empty targets unless forced
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body DeleteCategoriesRequest true "Target ids and options"
// @Success     200 {object} category.DeleteImpact "Deleted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     409 {object} ErrorResponse "Category not empty"
// @Router      /categories/delete [post]
func (h *CategoryHandler) DeleteCategories(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req DeleteCategoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	opts := category.DeleteOptions{
		Force:        req.Force,
		Cascade:      req.Cascade,
		UpdateAudios: req.UpdateAudios,
	}
	impact, err := h.coordinator.Delete(c.Request.Context(), req.IDs, opts)
	if err != nil {
		// Unsafe targets come back with the impact so clients can prompt
		// for a forced retry.
		var appErr *apperrors.AppError
		if impact != nil && errors.As(err, &appErr) {
			c.JSON(appErr.StatusCode, gin.H{
				"error": gin.H{
					"code":    appErr.Code,
					"message": appErr.Message,
				},
				"impact": impact,
			})
			return
		}
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_CATEGORY", "category", joinIDs(req.IDs), c.ClientIP(),
		map[string]interface{}{"force": req.Force, "cascade": req.Cascade, "update_audios": req.UpdateAudios})

	c.JSON(http.StatusOK, gin.H{"impact": impact})
}

// BatchUpdateStatus activates or deactivates a batch of categories.
// @Summary     Batch update category status
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body BatchStatusRequest true "Target ids and status"
// @Success     200 {object} map[string]interface{} "Updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /categories/status [patch]
func (h *CategoryHandler) BatchUpdateStatus(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req BatchStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.coordinator.SetStatus(c.Request.Context(), req.IDs, *req.IsActive); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_CATEGORY_STATUS", "category", joinIDs(req.IDs), c.ClientIP(),
		map[string]interface{}{"is_active": *req.IsActive, "count": len(req.IDs)})

	c.JSON(http.StatusOK, gin.H{"updated": len(req.IDs)})
}

// ReorderCategories persists new sort positions.
// @Summary     Reorder categories
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ReorderRequest true "New positions"
// @Success     200 {object} map[string]interface{} "Reordered"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /categories/reorder [put]
func (h *CategoryHandler) ReorderCategories(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	reqs := make([]category.ReorderRequest, 0, len(req.Items))
	for _, item := range req.Items {
		reqs = append(reqs, category.ReorderRequest{ID: item.ID, SortOrder: item.SortOrder})
	}

	if err := h.coordinator.Reorder(c.Request.Context(), reqs); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "REORDER_CATEGORIES", "category", "", c.ClientIP(),
		map[string]interface{}{"count": len(req.Items)})

	c.JSON(http.StatusOK, gin.H{"reordered": len(req.Items)})
}
