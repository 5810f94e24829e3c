package controllers

import (
	"strconv"

	"qrmenu/pkg/resp"
	"qrmenu/services"

	"github.com/gin-gonic/gin"
)

type MenuController struct {
	Menu   *services.MenuService
	Orders *services.OrderService
	Tables *services.TableService
}

func NewMenuController(menu *services.MenuService, orders *services.OrderService, tables *services.TableService) *MenuController {
	return &MenuController{Menu: menu, Orders: orders, Tables: tables}
}

// GET /menu/:token?locale=pt serves the page a scanned QR code lands on.
func (mc *MenuController) ByToken(c *gin.Context) {
	out, err := mc.Menu.GetMenuByToken(c.Param("token"), c.Query("locale"))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /menu/:token/orders: the table's recent orders, so the customer
// page can show live status after submitting.
func (mc *MenuController) OrdersForTable(c *gin.Context) {
	table, err := mc.Tables.GetByToken(c.Param("token"))
	if err != nil {
		fail(c, err)
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	items, err := mc.Orders.ListForTable(table.ID, limit)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}
