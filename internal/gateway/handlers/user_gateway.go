package handlers

import (
	"github.com/gin-gonic/gin"

	"inventra-system/internal/services/user"
)

type UserHTTPHandler struct {
	users *user.Service
}

func NewUserHTTPHandler(svc *user.Service) *UserHTTPHandler {
	return &UserHTTPHandler{users: svc}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *UserHTTPHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := s.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		serviceError(c, err)
		return
	}
	success(c, result)
}

func (s *UserHTTPHandler) Register(c *gin.Context) {
	var req user.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	account, err := s.users.Register(c.Request.Context(), req)
	if err != nil {
		serviceError(c, err)
		return
	}
	created(c, account)
}

// Employees

func (s *UserHTTPHandler) CreateEmployee(c *gin.Context) {
	var req user.EmployeeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	employee, err := s.users.CreateEmployee(c.Request.Context(), req)
	if err != nil {
		serviceError(c, err)
		return
	}
	created(c, employee)
}

func (s *UserHTTPHandler) GetEmployee(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	employee, err := s.users.GetEmployee(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err)
		return
	}
	success(c, employee)
}

func (s *UserHTTPHandler) ListEmployees(c *gin.Context) {
	page, pageSize := parsePagination(c)
	employees, total, err := s.users.ListEmployees(c.Request.Context(), page, pageSize)
	if err != nil {
		serviceError(c, err)
		return
	}
	paginated(c, employees, total, page, pageSize)
}
