package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"inventra-system/internal/services/serviceerr"
)

// Helper functions shared by all HTTP handlers.

func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

func created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    data,
	})
}

func paginated(c *gin.Context, data interface{}, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"data":     data,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   message,
	})
}

// serviceError translates a service failure into the HTTP envelope. The
// capacity hint on conflicts rides along as "message".
func serviceError(c *gin.Context, err error) {
	body := gin.H{
		"success": false,
		"error":   serviceerr.PublicMessage(err),
	}
	if hint := serviceerr.HintOf(err); hint != "" {
		body["message"] = hint
	}
	c.JSON(serviceerr.HTTPStatus(err), body)
}

func parseIDParam(c *gin.Context, param string) (int64, bool) {
	val, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || val <= 0 {
		badRequest(c, "invalid "+param)
		return 0, false
	}
	return val, true
}

func parseInt64Query(c *gin.Context, param string) *int64 {
	str := c.Query(param)
	if str == "" {
		return nil
	}
	val, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return nil
	}
	return &val
}

func parsePagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
