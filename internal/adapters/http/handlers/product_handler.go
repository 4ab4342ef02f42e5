package handlers

import (
	"rewardhub/internal/core/services"
	"rewardhub/internal/pkg/pagination"
	"rewardhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles the catalog and purchases
type ProductHandler struct {
	productService  *services.ProductService
	purchaseService *services.PurchaseService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *services.ProductService, purchaseService *services.PurchaseService) *ProductHandler {
	return &ProductHandler{
		productService:  productService,
		purchaseService: purchaseService,
	}
}

// ListAvailable returns products on sale
// @Summary List products
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /products [get]
func (h *ProductHandler) ListAvailable(c *fiber.Ctx) error {
	products, err := h.productService.ListAvailable(c.Context())
	if err != nil {
		return respondError(c, err, "Failed to list products")
	}

	return response.Success(c, "Products retrieved successfully", fiber.Map{
		"products": products,
	})
}

// Purchase buys a product with the recharge wallet
// @Summary Purchase product
// @Description Debits the recharge wallet, creates a holding and pays the referrer's first-purchase bonus
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 201 {object} response.Response
// @Failure 402 {object} response.Response
// @Failure 410 {object} response.Response
// @Router /products/{id}/purchase [post]
func (h *ProductHandler) Purchase(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	productID, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid product ID")
	}

	result, err := h.purchaseService.PurchaseProduct(c.Context(), userID, productID)
	if err != nil {
		return respondError(c, err, "Failed to purchase product")
	}

	return response.Created(c, "Product purchased successfully", result)
}

// List returns every product including withdrawn ones
// @Summary List all products (Admin)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /admin/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	result, err := h.productService.List(c.Context(), pagination.GetParams(c))
	if err != nil {
		return respondError(c, err, "Failed to list products")
	}
	return response.Success(c, "Products retrieved successfully", result)
}

// Get returns one product
// @Summary Get product (Admin)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/products/{id} [get]
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid product ID")
	}

	product, err := h.productService.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err, "Failed to get product")
	}
	return response.Success(c, "Product retrieved successfully", product)
}

// Create adds a product
// @Summary Create product (Admin)
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ProductInput true "Product"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req services.ProductInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	product, err := h.productService.Create(c.Context(), &req)
	if err != nil {
		return respondError(c, err, "Failed to create product")
	}
	return response.Created(c, "Product created successfully", product)
}

// Update changes a product; existing holdings keep their terms
// @Summary Update product (Admin)
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param body body services.ProductInput true "Product"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid product ID")
	}

	var req services.ProductInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	product, err := h.productService.Update(c.Context(), id, &req)
	if err != nil {
		return respondError(c, err, "Failed to update product")
	}
	return response.Success(c, "Product updated successfully", product)
}

// Delete withdraws a product from sale
// @Summary Delete product (Admin)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid product ID")
	}

	if err := h.productService.Delete(c.Context(), id); err != nil {
		return respondError(c, err, "Failed to delete product")
	}
	return response.Success(c, "Product deleted successfully", nil)
}
