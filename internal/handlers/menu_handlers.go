package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"teahouse_backend/internal/models"
	"teahouse_backend/internal/services"
	"teahouse_backend/pkg/utils"
)

// MenuHandler holds the menu service.
type MenuHandler struct {
	menuService *services.MenuService
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(ms *services.MenuService) *MenuHandler {
	return &MenuHandler{menuService: ms}
}

// GetCategories lists the menu categories for the terminal.
func (h *MenuHandler) GetCategories(c *gin.Context) {
	categories, err := h.menuService.GetCategories()
	if err != nil {
		utils.LogError(err, "GetCategories: Error from menuService.GetCategories")
		utils.RespondWithServiceError(c, err)
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	c.JSON(http.StatusOK, categories)
}

// GetMenuByCategory lists menu items for one category.
func (h *MenuHandler) GetMenuByCategory(c *gin.Context) {
	categoryID, err := utils.ParseID(c.Query("category_id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, "Invalid category id", err.Error()))
		return
	}

	items, err := h.menuService.GetMenuByCategory(categoryID)
	if err != nil {
		utils.LogError(err, "GetMenuByCategory: Error from menuService.GetMenuByCategory")
		utils.RespondWithServiceError(c, err)
		return
	}
	if items == nil {
		items = []models.MenuItem{}
	}
	c.JSON(http.StatusOK, items)
}

// GetMenuItems lists the whole menu.
func (h *MenuHandler) GetMenuItems(c *gin.Context) {
	items, err := h.menuService.GetMenuItems()
	if err != nil {
		utils.LogError(err, "GetMenuItems: Error from menuService.GetMenuItems")
		utils.RespondWithServiceError(c, err)
		return
	}
	if items == nil {
		items = []models.MenuItem{}
	}
	c.JSON(http.StatusOK, items)
}

// GetMenuItem returns one menu item.
func (h *MenuHandler) GetMenuItem(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, "Invalid menu item id", err.Error()))
		return
	}

	item, err := h.menuService.GetMenuItem(id)
	if err != nil {
		utils.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateMenuItem adds a menu item.
func (h *MenuHandler) CreateMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, "Invalid request payload", err.Error()))
		return
	}

	id, err := h.menuService.CreateMenuItem(&item)
	if err != nil {
		utils.LogError(err, "CreateMenuItem: Error from menuService.CreateMenuItem")
		utils.RespondWithServiceError(c, err)
		return
	}
	item.ID = id
	c.JSON(http.StatusCreated, item)
}

// UpdateMenuItem edits a menu item.
func (h *MenuHandler) UpdateMenuItem(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, "Invalid menu item id", err.Error()))
		return
	}

	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, "Invalid request payload", err.Error()))
		return
	}
	item.ID = id

	if err := h.menuService.UpdateMenuItem(&item); err != nil {
		utils.LogError(err, "UpdateMenuItem: Error from menuService.UpdateMenuItem")
		utils.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteMenuItem removes a menu item.
func (h *MenuHandler) DeleteMenuItem(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, "Invalid menu item id", err.Error()))
		return
	}

	if err := h.menuService.DeleteMenuItem(id); err != nil {
		utils.LogError(err, "DeleteMenuItem: Error from menuService.DeleteMenuItem")
		utils.RespondWithServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetIngredients lists every ingredient.
func (h *MenuHandler) GetIngredients(c *gin.Context) {
	ingredients, err := h.menuService.GetIngredients()
	if err != nil {
		utils.LogError(err, "GetIngredients: Error from menuService.GetIngredients")
		utils.RespondWithServiceError(c, err)
		return
	}
	if ingredients == nil {
		ingredients = []models.Ingredient{}
	}
	c.JSON(http.StatusOK, ingredients)
}

// GetIngredient returns one ingredient.
func (h *MenuHandler) GetIngredient(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, "Invalid ingredient id", err.Error()))
		return
	}

	ing, err := h.menuService.GetIngredient(id)
	if err != nil {
		utils.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ing)
}

// CreateIngredient adds an ingredient.
func (h *MenuHandler) CreateIngredient(c *gin.Context) {
	var ing models.Ingredient
	if err := c.ShouldBindJSON(&ing); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, "Invalid request payload", err.Error()))
		return
	}

	id, err := h.menuService.CreateIngredient(&ing)
	if err != nil {
		utils.LogError(err, "CreateIngredient: Error from menuService.CreateIngredient")
		utils.RespondWithServiceError(c, err)
		return
	}
	ing.ID = id
	c.JSON(http.StatusCreated, ing)
}

// UpdateIngredient edits an ingredient.
func (h *MenuHandler) UpdateIngredient(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, "Invalid ingredient id", err.Error()))
		return
	}

	var ing models.Ingredient
	if err := c.ShouldBindJSON(&ing); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, "Invalid request payload", err.Error()))
		return
	}
	ing.ID = id

	if err := h.menuService.UpdateIngredient(&ing); err != nil {
		utils.LogError(err, "UpdateIngredient: Error from menuService.UpdateIngredient")
		utils.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ing)
}

// DeleteIngredient removes an ingredient.
func (h *MenuHandler) DeleteIngredient(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, "Invalid ingredient id", err.Error()))
		return
	}

	if err := h.menuService.DeleteIngredient(id); err != nil {
		utils.LogError(err, "DeleteIngredient: Error from menuService.DeleteIngredient")
		utils.RespondWithServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
