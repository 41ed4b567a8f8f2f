package resp

import (
	"log"
	"net/http"

	"github.com/spywithcode/ReStro/pkg/apperr"

	"github.com/gin-gonic/gin"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}
func OKMessage(c *gin.Context, msg string, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": msg, "data": data})
}
func Created(c *gin.Context, msg string, data any) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": msg, "data": data})
}
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
}
func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": msg})
}
func Forbidden(c *gin.Context, msg string) {
	c.JSON(http.StatusForbidden, gin.H{"success": false, "message": msg})
}
// ServerError ซ่อนรายละเอียด internal จาก client, log ไว้ฝั่ง server
func ServerError(c *gin.Context, err error) {
	if err != nil {
		log.Printf("resp: internal error: %v", err)
	}
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
}

// Error maps an apperr onto the wire shape; unknown errors become 500.
func Error(c *gin.Context, err error) {
	if e, ok := apperr.As(err); ok {
		body := gin.H{"success": false, "message": e.Message}
		if len(e.Fields) > 0 {
			body["errors"] = e.Fields
		}
		c.JSON(e.Status, body)
		return
	}
	ServerError(c, err)
}
