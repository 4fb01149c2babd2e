package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dkurvas/almacen-api/internal/application/dto"
	"github.com/dkurvas/almacen-api/internal/application/usecase"
	"github.com/dkurvas/almacen-api/internal/domain"
)

// ProductHandler maneja el catálogo de productos y variaciones (protegido).
type ProductHandler struct {
	products   *usecase.ProductUseCase
	categories *usecase.CategoryUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(products *usecase.ProductUseCase, categories *usecase.CategoryUseCase) *ProductHandler {
	return &ProductHandler{products: products, categories: categories}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "sku, name, precios, umbral de alerta"
// @Success      201   {object}  dto.ProductDetailResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.products.Create(in)
	if err != nil {
		return catalogError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar catálogo con stock y semáforo
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        category_id  query  string  false  "Filtrar por categoría"
// @Param        all          query  bool    false  "Incluir inactivos"
// @Success      200  {array}  dto.ProductListItemResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	onlyActive := !c.QueryBool("all")
	items, err := h.products.List(c.Query("category_id"), onlyActive)
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(items)
}

// GetByID godoc
// @Summary      Ficha de producto con cifras derivadas
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.products.GetDetail(c.Params("id"))
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(out)
}

// CreateVariation godoc
// @Summary      Crear variación (stock inicia en 0)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del producto"
// @Param        body  body  dto.CreateVariationRequest  true  "sku_variant, size, color"
// @Success      201   {object}  dto.VariationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/variations [post]
func (h *ProductHandler) CreateVariation(c *fiber.Ctx) error {
	var in dto.CreateVariationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.products.CreateVariation(c.Params("id"), in)
	if err != nil {
		return catalogError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateCategory godoc
// @Summary      Crear categoría
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *ProductHandler) CreateCategory(c *fiber.Ctx) error {
	var in struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cat, err := h.categories.Create(in.Name, in.Description)
	if err != nil {
		return catalogError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cat)
}

// ListCategories godoc
// @Summary      Listar categorías
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.Category
// @Router       /api/categories [get]
func (h *ProductHandler) ListCategories(c *fiber.Ctx) error {
	cats, err := h.categories.List()
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(cats)
}

func catalogError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidCost):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_COST", Message: "los precios no pueden ser negativos"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el recurso ya existe"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
