package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/topicosweb/backend/internal/core/domain"
	"github.com/topicosweb/backend/internal/core/ports"
)

// ProductHandler serves /api/products.
type ProductHandler struct {
	resource[domain.Product, ports.ProductFilter, ports.ProductInput]
	products ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{resource[domain.Product, ports.ProductFilter, ports.ProductInput]{
		service: service,
		name:    "product",
		filter:  productFilter,
	}, service}
}

// List handles GET /api/products.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page (1-based)"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200    {object}  ports.ListResult[domain.Product]
// @Failure      400    {object}  errorResponse
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error { return h.list(c) }

// Get handles GET /api/products/:id.
//
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "product id"
// @Success      200  {object}  dataResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error { return h.get(c) }

// Create handles POST /api/products.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      ports.ProductInput  true  "product"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error { return h.create(c) }

// Update handles PUT /api/products/:id. Only the fields present in the body change.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "product id"
// @Param        body  body      ports.ProductInput  true  "Fields to change"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error { return h.update(c) }

// Delete handles DELETE /api/products/:id.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "product id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error { return h.delete(c) }

// Find handles GET /api/products/find?category=&name=.
//
// @Summary      Search products by category or name
// @Tags         products
// @Produce      json
// @Param        category  query     string  false  "Category (case-insensitive)"
// @Param        name      query     string  false  "Name fragment (case-insensitive)"
// @Success      200       {object}  dataResponse
// @Failure      400       {object}  errorResponse
// @Router       /products/find [get]
func (h *ProductHandler) Find(c echo.Context) error {
	f, err := productFilter(c)
	if err != nil {
		return err
	}

	products, err := h.products.Search(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: products})
}

func productFilter(c echo.Context) (ports.ProductFilter, error) {
	return ports.ProductFilter{
		Name:     query(c, "name"),
		Category: query(c, "category"),
	}, nil
}
