package controllers

import (
	"strconv"

	"github.com/spywithcode/ReStro/pkg/resp"
	"github.com/spywithcode/ReStro/repository"
	"github.com/spywithcode/ReStro/services"

	"github.com/gin-gonic/gin"
)

type TableController struct {
	Service *services.TableService
}

func NewTableController(service *services.TableService) *TableController {
	return &TableController{Service: service}
}

func tableNoParam(c *gin.Context) (int, bool) {
	no, err := strconv.Atoi(c.Param("tableId"))
	if err != nil || no < 1 {
		resp.BadRequest(c, "Table ID must be a positive integer")
		return 0, false
	}
	return no, true
}

// GET /tables?restaurantId=&status=
func (tc *TableController) List(c *gin.Context) {
	f := repository.TableFilter{
		RestaurantID: c.Query("restaurantId"),
		Status:       c.Query("status"),
	}
	tables, err := tc.Service.List(c.Request.Context(), f)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, tables)
}

// POST /tables (admin) — สร้างพร้อม QR URL
func (tc *TableController) Create(c *gin.Context) {
	var in services.TableIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, "Invalid request body")
		return
	}
	t, err := tc.Service.Create(c.Request.Context(), &in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, "Table created successfully", t)
}

type TableStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PUT /tables/:restaurantId/:tableId/status (admin)
func (tc *TableController) UpdateStatus(c *gin.Context) {
	no, ok := tableNoParam(c)
	if !ok {
		return
	}
	var req TableStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Status is required")
		return
	}
	t, err := tc.Service.UpdateStatus(c.Request.Context(), c.Param("restaurantId"), no, req.Status)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OKMessage(c, "Table updated successfully", t)
}

// DELETE /tables/:restaurantId/:tableId (admin escape hatch)
func (tc *TableController) Delete(c *gin.Context) {
	no, ok := tableNoParam(c)
	if !ok {
		return
	}
	if err := tc.Service.Delete(c.Request.Context(), c.Param("restaurantId"), no); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OKMessage(c, "Table deleted successfully", nil)
}

// GET /tables/:restaurantId/:tableId/qrcode → PNG 256px
func (tc *TableController) QRCode(c *gin.Context) {
	no, ok := tableNoParam(c)
	if !ok {
		return
	}
	png, err := tc.Service.QRCodePNG(c.Request.Context(), c.Param("restaurantId"), no)
	if err != nil {
		resp.Error(c, err)
		return
	}
	c.Data(200, "image/png", png)
}
