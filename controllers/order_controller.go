package controllers

import (
	"strconv"

	"github.com/spywithcode/ReStro/pkg/resp"
	"github.com/spywithcode/ReStro/repository"
	"github.com/spywithcode/ReStro/services"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	Service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{Service: service}
}

// GET /orders?restaurantId=&status=&tableNumber=
func (oc *OrderController) List(c *gin.Context) {
	f := repository.OrderFilter{
		RestaurantID: c.Query("restaurantId"),
		Status:       c.Query("status"),
	}
	if v := c.Query("tableNumber"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.TableNumber = n
		}
	}
	orders, err := oc.Service.List(c.Request.Context(), f)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, orders)
}

// GET /orders/:id
func (oc *OrderController) Detail(c *gin.Context) {
	order, err := oc.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, order)
}

// POST /orders — public (ลูกค้าสั่งเอง) total และ id คิดฝั่ง server
func (oc *OrderController) Create(c *gin.Context) {
	var req services.CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Invalid request body")
		return
	}
	order, err := oc.Service.Create(c.Request.Context(), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, "Order created successfully", order)
}

type OrderStatusRequest struct {
	Status        string `json:"status" binding:"required"`
	PaymentMethod string `json:"paymentMethod"`
}

// PUT /orders/:id/status (admin) — เดินหน้าทีละขั้นเท่านั้น
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	var req OrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Status is required")
		return
	}
	order, err := oc.Service.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, req.PaymentMethod)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OKMessage(c, "Order updated successfully", order)
}

// DELETE /orders/:id (admin)
func (oc *OrderController) Delete(c *gin.Context) {
	if err := oc.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OKMessage(c, "Order deleted successfully", nil)
}
