package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseID 解析路径中的id参数，非法值返回0
func parseID(c *gin.Context) uint {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}
