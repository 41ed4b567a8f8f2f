package controllers

import (
	"github.com/spywithcode/ReStro/pkg/resp"
	"github.com/spywithcode/ReStro/repository"
	"github.com/spywithcode/ReStro/services"

	"github.com/gin-gonic/gin"
)

type MenuController struct {
	Service *services.MenuService
}

func NewMenuController(service *services.MenuService) *MenuController {
	return &MenuController{Service: service}
}

// GET /menu?restaurantId=&category=&isAvailable=
// ฝั่งลูกค้า filter isAvailable=true เอง ฝั่ง admin เห็นหมด
func (mc *MenuController) List(c *gin.Context) {
	f := repository.MenuFilter{
		RestaurantID: c.Query("restaurantId"),
		Category:     c.Query("category"),
	}
	if v := c.Query("isAvailable"); v != "" {
		avail := v == "true"
		f.IsAvailable = &avail
	}
	items, err := mc.Service.List(c.Request.Context(), f)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, items)
}

// GET /menu/:restaurantId/:itemId
func (mc *MenuController) Detail(c *gin.Context) {
	item, err := mc.Service.Get(c.Request.Context(), c.Param("restaurantId"), c.Param("itemId"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, item)
}

// POST /menu (admin)
func (mc *MenuController) Create(c *gin.Context) {
	var in services.MenuItemIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, "Invalid request body")
		return
	}
	item, err := mc.Service.Create(c.Request.Context(), &in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, "Menu item created successfully", item)
}

// PUT /menu/:restaurantId/:itemId (admin)
func (mc *MenuController) Update(c *gin.Context) {
	var in services.MenuItemIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, "Invalid request body")
		return
	}
	in.RestaurantID = c.Param("restaurantId")
	in.ItemID = c.Param("itemId")
	item, err := mc.Service.Update(c.Request.Context(), &in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OKMessage(c, "Menu item updated successfully", item)
}

// DELETE /menu/:restaurantId/:itemId (admin)
func (mc *MenuController) Delete(c *gin.Context) {
	err := mc.Service.Delete(c.Request.Context(), c.Param("restaurantId"), c.Param("itemId"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OKMessage(c, "Menu item deleted successfully", nil)
}
