package controllers

import (
	"github.com/spywithcode/ReStro/pkg/resp"
	"github.com/spywithcode/ReStro/repository"
	"github.com/spywithcode/ReStro/services"

	"github.com/gin-gonic/gin"
)

type RestaurantController struct {
	Service *services.RestaurantService
}

func NewRestaurantController(service *services.RestaurantService) *RestaurantController {
	return &RestaurantController{Service: service}
}

// GET /restaurants?isActive=true
func (rc *RestaurantController) List(c *gin.Context) {
	var f repository.RestaurantFilter
	if v := c.Query("isActive"); v != "" {
		active := v == "true"
		f.IsActive = &active
	}
	out, err := rc.Service.List(c.Request.Context(), f)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /restaurants/:id
func (rc *RestaurantController) Detail(c *gin.Context) {
	rest, err := rc.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, rest)
}

// POST /restaurants (admin)
func (rc *RestaurantController) Create(c *gin.Context) {
	var in services.RestaurantIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, "Invalid request body")
		return
	}
	rest, err := rc.Service.Create(c.Request.Context(), &in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, "Restaurant created successfully", rest)
}

// PUT /restaurants/:id (admin)
func (rc *RestaurantController) Update(c *gin.Context) {
	var in services.RestaurantIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, "Invalid request body")
		return
	}
	in.RestaurantID = c.Param("id")
	rest, err := rc.Service.Update(c.Request.Context(), &in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OKMessage(c, "Restaurant updated successfully", rest)
}

// DELETE /restaurants/:id (admin)
// ปกติ = ปิดร้าน (soft), ?hard=true = ลบจริง (escape hatch)
func (rc *RestaurantController) Delete(c *gin.Context) {
	restID := c.Param("id")
	if c.Query("hard") == "true" {
		if err := rc.Service.Delete(c.Request.Context(), restID); err != nil {
			resp.Error(c, err)
			return
		}
		resp.OKMessage(c, "Restaurant deleted successfully", nil)
		return
	}
	if err := rc.Service.Deactivate(c.Request.Context(), restID); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OKMessage(c, "Restaurant deactivated successfully", nil)
}
