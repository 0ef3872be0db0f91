package handlers

import (
	"github.com/gin-gonic/gin"

	"inventra-system/internal/services/catalog"
)

type CatalogHTTPHandler struct {
	catalog *catalog.Service
}

func NewCatalogHTTPHandler(svc *catalog.Service) *CatalogHTTPHandler {
	return &CatalogHTTPHandler{catalog: svc}
}

// Categories

func (s *CatalogHTTPHandler) CreateCategory(c *gin.Context) {
	var req struct {
		Name        string  `json:"name"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	category, err := s.catalog.CreateCategory(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		serviceError(c, err)
		return
	}
	created(c, category)
}

func (s *CatalogHTTPHandler) ListCategories(c *gin.Context) {
	categories, err := s.catalog.ListCategories(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	success(c, categories)
}

// Vendors

func (s *CatalogHTTPHandler) CreateVendor(c *gin.Context) {
	var req catalog.VendorInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	vendor, err := s.catalog.CreateVendor(c.Request.Context(), req)
	if err != nil {
		serviceError(c, err)
		return
	}
	created(c, vendor)
}

func (s *CatalogHTTPHandler) ListVendors(c *gin.Context) {
	vendors, err := s.catalog.ListVendors(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	success(c, vendors)
}

// Item types

func (s *CatalogHTTPHandler) CreateType(c *gin.Context) {
	var req catalog.TypeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	itemType, err := s.catalog.CreateType(c.Request.Context(), req)
	if err != nil {
		serviceError(c, err)
		return
	}
	created(c, itemType)
}

func (s *CatalogHTTPHandler) UpdateType(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req catalog.TypeUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	itemType, err := s.catalog.UpdateType(c.Request.Context(), id, req)
	if err != nil {
		serviceError(c, err)
		return
	}
	success(c, itemType)
}

func (s *CatalogHTTPHandler) GetType(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	itemType, err := s.catalog.GetType(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err)
		return
	}
	success(c, itemType)
}

func (s *CatalogHTTPHandler) ListTypes(c *gin.Context) {
	itemTypes, err := s.catalog.ListTypes(c.Request.Context(), c.Query("search"))
	if err != nil {
		serviceError(c, err)
		return
	}
	success(c, itemTypes)
}
