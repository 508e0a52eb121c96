package echo

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	app "github.com/mohammadpnp/product-importer/internal/application/catalog"
)

type productService interface {
	List(ctx context.Context, in app.ListProductsInput) ([]app.ProductOutput, error)
	Get(ctx context.Context, id int64) (app.ProductOutput, error)
	Create(ctx context.Context, in app.ProductInput) (app.ProductOutput, error)
	Update(ctx context.Context, id int64, in app.ProductInput) (app.ProductOutput, error)
	Delete(ctx context.Context, id int64) error
}

type ProductHandler struct {
	products productService
	bulk     app.BulkDeleteProducts
}

func NewProductHandler(products productService, bulk app.BulkDeleteProducts) *ProductHandler {
	return &ProductHandler{products: products, bulk: bulk}
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	in := app.ListProductsInput{
		SKU:         c.QueryParam("sku"),
		Name:        c.QueryParam("name"),
		Description: c.QueryParam("description"),
	}
	if raw := c.QueryParam("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "bad_request",
				Message: "active must be a boolean",
			}})
		}
		in.Active = &active
	}
	if raw := c.QueryParam("skip"); raw != "" {
		skip, err := strconv.Atoi(raw)
		if err != nil || skip < 0 {
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "bad_request",
				Message: "skip must be a non-negative integer",
			}})
		}
		in.Skip = skip
	}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "bad_request",
				Message: "limit must be a non-negative integer",
			}})
		}
		in.Limit = limit
	}

	out, err := h.products.List(c.Request().Context(), in)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to list products",
		}})
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, ok := h.productID(c)
	if !ok {
		return nil
	}

	out, err := h.products.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, app.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, apiResponse{Error: &errorBody{
				Code:    "not_found",
				Message: "product not found",
			}})
		}
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to get product",
		}})
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req app.ProductInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "bad_request",
			Message: "invalid request body",
		}})
	}

	out, err := h.products.Create(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidProduct):
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "invalid_product",
				Message: "sku is required",
			}})
		case errors.Is(err, app.ErrDuplicateSKU):
			return c.JSON(http.StatusConflict, apiResponse{Error: &errorBody{
				Code:    "duplicate_sku",
				Message: "a product with this SKU already exists",
			}})
		}
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to create product",
		}})
	}
	return c.JSON(http.StatusCreated, apiResponse{Data: out})
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, ok := h.productID(c)
	if !ok {
		return nil
	}

	var req app.ProductInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "bad_request",
			Message: "invalid request body",
		}})
	}

	out, err := h.products.Update(c.Request().Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidProduct):
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "invalid_product",
				Message: "sku is required",
			}})
		case errors.Is(err, app.ErrDuplicateSKU):
			return c.JSON(http.StatusConflict, apiResponse{Error: &errorBody{
				Code:    "duplicate_sku",
				Message: "a product with this SKU already exists",
			}})
		case errors.Is(err, app.ErrProductNotFound):
			return c.JSON(http.StatusNotFound, apiResponse{Error: &errorBody{
				Code:    "not_found",
				Message: "product not found",
			}})
		}
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to update product",
		}})
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, ok := h.productID(c)
	if !ok {
		return nil
	}

	if err := h.products.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, app.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, apiResponse{Error: &errorBody{
				Code:    "not_found",
				Message: "product not found",
			}})
		}
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to delete product",
		}})
	}
	return c.NoContent(http.StatusNoContent)
}

// BulkDeleteProducts clears the whole catalog. Small catalogs are deleted in
// the request; larger ones come back with a task handle to poll.
func (h *ProductHandler) BulkDeleteProducts(c echo.Context) error {
	out, err := h.bulk.Execute(c.Request().Context())
	if err != nil {
		if errors.Is(err, app.ErrNothingToDelete) {
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "nothing_to_delete",
				Message: "no products to delete",
			}})
		}
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to delete products",
		}})
	}

	status := http.StatusOK
	if out.TaskID != "" {
		status = http.StatusAccepted
	}
	return c.JSON(status, apiResponse{Data: out})
}

func (h *ProductHandler) productID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		_ = c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "invalid_product_id",
			Message: "id must be a positive integer",
		}})
		return 0, false
	}
	return id, true
}
