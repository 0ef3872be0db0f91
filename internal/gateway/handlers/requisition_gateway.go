package handlers

import (
	"github.com/gin-gonic/gin"

	"inventra-system/internal/gateway/middleware"
	"inventra-system/internal/services/requisition"
)

type RequisitionHTTPHandler struct {
	requisitions *requisition.Service
}

func NewRequisitionHTTPHandler(svc *requisition.Service) *RequisitionHTTPHandler {
	return &RequisitionHTTPHandler{requisitions: svc}
}

func (s *RequisitionHTTPHandler) Create(c *gin.Context) {
	var req requisition.CreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}
	req.RequestedByID = middleware.UserID(c)

	result, err := s.requisitions.Create(c.Request.Context(), req)
	if err != nil {
		serviceError(c, err)
		return
	}
	created(c, result)
}

func (s *RequisitionHTTPHandler) Approve(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Items []requisition.ApproveItemInput `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := s.requisitions.Approve(c.Request.Context(), id, middleware.UserID(c), req.Items)
	if err != nil {
		serviceError(c, err)
		return
	}
	success(c, result)
}

func (s *RequisitionHTTPHandler) Reject(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := s.requisitions.Reject(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	success(c, result)
}

func (s *RequisitionHTTPHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := s.requisitions.Get(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err)
		return
	}
	success(c, result)
}

func (s *RequisitionHTTPHandler) GetByNumber(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		badRequest(c, "invalid number")
		return
	}

	result, err := s.requisitions.GetByNumber(c.Request.Context(), number)
	if err != nil {
		serviceError(c, err)
		return
	}
	success(c, result)
}

func (s *RequisitionHTTPHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)
	results, total, err := s.requisitions.List(c.Request.Context(), c.Query("status"), page, pageSize)
	if err != nil {
		serviceError(c, err)
		return
	}
	paginated(c, results, total, page, pageSize)
}
