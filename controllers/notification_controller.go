package controllers

import (
	"strconv"

	"qrmenu/pkg/resp"
	"qrmenu/services"
	"qrmenu/utils"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	Notifs *services.NotificationService
	Tables *services.TableService
}

func NewNotificationController(notifs *services.NotificationService, tables *services.TableService) *NotificationController {
	return &NotificationController{Notifs: notifs, Tables: tables}
}

// GET /staff/notifications?target=kitchen&unread=true
func (nc *NotificationController) ListForStaff(c *gin.Context) {
	restID := utils.CurrentRestaurantID(c)
	target := c.Query("target")
	if target == "" {
		target = utils.CurrentRole(c)
	}
	unread := c.Query("unread") == "true"
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	items, err := nc.Notifs.ListForTarget(restID, target, unread, limit)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// GET /menu/:token/notifications: the customer's own feed, keyed by the
// scanned QR token.
func (nc *NotificationController) ListForTable(c *gin.Context) {
	table, err := nc.Tables.GetByToken(c.Param("token"))
	if err != nil {
		fail(c, err)
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	items, err := nc.Notifs.ListForTable(table.ID, limit)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// PATCH /menu/:token/notifications/:id/read: customer mark-read, the
// scanned QR token scopes the id to the table's own feed.
func (nc *NotificationController) MarkReadForTable(c *gin.Context) {
	table, err := nc.Tables.GetByToken(c.Param("token"))
	if err != nil {
		fail(c, err)
		return
	}
	id, _ := strconv.Atoi(c.Param("id"))
	if err := nc.Notifs.MarkReadForTable(table.ID, uint(id)); err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"read": true})
}

// PATCH /staff/notifications/:id/read
func (nc *NotificationController) MarkRead(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	if err := nc.Notifs.MarkReadForRestaurant(utils.CurrentRestaurantID(c), uint(id)); err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"read": true})
}
