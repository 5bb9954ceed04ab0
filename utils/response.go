package utils

import "github.com/gin-gonic/gin"

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

// JSONError writes {"success":false,"error":{"code":..,"message":..}}; extra keys are merged into error.
func JSONError(c *gin.Context, status int, code, message string, extra gin.H) {
	body := gin.H{"code": code, "message": message}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, gin.H{"success": false, "error": body})
}
