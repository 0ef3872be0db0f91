package handlers

import (
	"github.com/gin-gonic/gin"

	"inventra-system/internal/database/models"
	"inventra-system/internal/gateway/middleware"
	"inventra-system/internal/services/inventory"
)

type InventoryHTTPHandler struct {
	inventory *inventory.Service
}

func NewInventoryHTTPHandler(svc *inventory.Service) *InventoryHTTPHandler {
	return &InventoryHTTPHandler{inventory: svc}
}

// Product endpoints

func (s *InventoryHTTPHandler) CreateProduct(c *gin.Context) {
	var req inventory.CreateProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}
	req.ActorID = middleware.UserID(c)

	product, err := s.inventory.CreateProduct(c.Request.Context(), req)
	if err != nil {
		serviceError(c, err)
		return
	}
	created(c, product)
}

func (s *InventoryHTTPHandler) CreateBulkProducts(c *gin.Context) {
	var req inventory.BulkCreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}
	req.ActorID = middleware.UserID(c)

	products, err := s.inventory.CreateBulkProducts(c.Request.Context(), req)
	if err != nil {
		serviceError(c, err)
		return
	}
	created(c, products)
}

func (s *InventoryHTTPHandler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	product, err := s.inventory.GetProduct(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err)
		return
	}
	success(c, product)
}

func (s *InventoryHTTPHandler) GetProductByCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		badRequest(c, "invalid code")
		return
	}
	product, err := s.inventory.GetProductByCode(c.Request.Context(), code)
	if err != nil {
		serviceError(c, err)
		return
	}
	success(c, product)
}

func (s *InventoryHTTPHandler) ListProducts(c *gin.Context) {
	page, pageSize := parsePagination(c)
	filter := inventory.ProductFilter{
		TypeID:     parseInt64Query(c, "type_id"),
		SearchTerm: c.Query("search"),
		Page:       page,
		PageSize:   pageSize,
	}
	if status := c.Query("status"); status != "" {
		st := models.ProductStatus(status)
		filter.Status = &st
	}

	products, total, err := s.inventory.ListProducts(c.Request.Context(), filter)
	if err != nil {
		serviceError(c, err)
		return
	}
	paginated(c, products, total, page, pageSize)
}

func (s *InventoryHTTPHandler) UpdateProductStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status"`
		Owner  *int64 `json:"currentOwner"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := s.inventory.UpdateProductStatus(c.Request.Context(), id,
		models.ProductStatus(req.Status), req.Owner, middleware.UserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	success(c, product)
}

func (s *InventoryHTTPHandler) HandOverProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		EmployeeID int64 `json:"employeeId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.EmployeeID <= 0 {
		badRequest(c, "employeeId is required")
		return
	}

	product, err := s.inventory.HandOverProduct(c.Request.Context(), id, req.EmployeeID, middleware.UserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	success(c, product)
}

func (s *InventoryHTTPHandler) ReturnProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := s.inventory.ReturnProduct(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	success(c, product)
}

func (s *InventoryHTTPHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := s.inventory.DeleteProduct(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		serviceError(c, err)
		return
	}
	success(c, gin.H{"deleted": true})
}

// Stock endpoints

func (s *InventoryHTTPHandler) AddStock(c *gin.Context) {
	var req struct {
		TypeID        int64  `json:"typeId"`
		Quantity      int64  `json:"quantity"`
		RequisitionID *int64 `json:"requisitionId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	record, err := s.inventory.AddStock(c.Request.Context(), req.TypeID, req.Quantity,
		middleware.UserID(c), req.RequisitionID)
	if err != nil {
		serviceError(c, err)
		return
	}
	success(c, record)
}

func (s *InventoryHTTPHandler) UseStock(c *gin.Context) {
	var req struct {
		TypeID   int64 `json:"typeId"`
		Quantity int64 `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	record, err := s.inventory.UseStock(c.Request.Context(), req.TypeID, req.Quantity, middleware.UserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	success(c, record)
}

func (s *InventoryHTTPHandler) GetLedger(c *gin.Context) {
	typeID, ok := parseIDParam(c, "typeId")
	if !ok {
		return
	}
	record, err := s.inventory.GetLedger(c.Request.Context(), typeID)
	if err != nil {
		serviceError(c, err)
		return
	}
	success(c, record)
}

func (s *InventoryHTTPHandler) ListEmployeeAssets(c *gin.Context) {
	employeeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	products, err := s.inventory.ListEmployeeAssets(c.Request.Context(), employeeID)
	if err != nil {
		serviceError(c, err)
		return
	}
	success(c, products)
}
