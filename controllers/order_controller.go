package controllers

import (
	"strconv"

	"qrmenu/pkg/resp"
	"qrmenu/services"
	"qrmenu/utils"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

func orderID(c *gin.Context) uint {
	id, _ := strconv.Atoi(c.Param("id"))
	return uint(id)
}

// POST /orders: customer submits a cart. Public: the scanned QR token in
// the body is the customer's credential.
func (oc *OrderController) Submit(c *gin.Context) {
	var req services.SubmitOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := oc.Orders.SubmitOrder(&req)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, out)
}

// GET /staff/orders?status= lists orders for the board, newest first.
func (oc *OrderController) List(c *gin.Context) {
	restID := utils.CurrentRestaurantID(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	items, err := oc.Orders.ListForRestaurant(restID, c.Query("status"), limit)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// GET /staff/orders/:id
func (oc *OrderController) Detail(c *gin.Context) {
	out, err := oc.Orders.Detail(utils.CurrentRestaurantID(c), orderID(c), c.Query("locale"))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /staff/orders/:id/history
func (oc *OrderController) History(c *gin.Context) {
	rows, err := oc.Orders.History(utils.CurrentRestaurantID(c), orderID(c))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"items": rows})
}

// ----- Transitions -----

type acceptReq struct {
	PrepTimeMinutes int `json:"prepTimeMinutes" binding:"required"`
}

// PATCH /staff/orders/:id/accept
func (oc *OrderController) Accept(c *gin.Context) {
	var req acceptReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := oc.Orders.AcceptOrder(utils.CurrentRestaurantID(c), utils.CurrentUserID(c), orderID(c), req.PrepTimeMinutes); err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"status": "in_preparation"})
}

type refuseReq struct {
	Reason string `json:"reason"`
}

// PATCH /staff/orders/:id/refuse
func (oc *OrderController) Refuse(c *gin.Context) {
	var req refuseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := oc.Orders.RefuseOrder(utils.CurrentRestaurantID(c), utils.CurrentUserID(c), orderID(c), req.Reason); err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"status": "cancelled"})
}

// PATCH /staff/orders/:id/ready
func (oc *OrderController) Ready(c *gin.Context) {
	if err := oc.Orders.MarkOrderReady(utils.CurrentRestaurantID(c), utils.CurrentUserID(c), orderID(c)); err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"status": "ready"})
}

type statusReq struct {
	Status string `json:"status" binding:"required"`
}

// PATCH /staff/orders/:id/status: generic guarded advance (received,
// delivered, manual cancel).
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := oc.Orders.UpdateOrderStatus(utils.CurrentRestaurantID(c), utils.CurrentUserID(c), orderID(c), req.Status); err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"status": req.Status})
}

// PATCH /staff/orders/:id/reopen
func (oc *OrderController) Reopen(c *gin.Context) {
	if err := oc.Orders.ReopenOrder(utils.CurrentRestaurantID(c), utils.CurrentUserID(c), orderID(c)); err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"status": "pending"})
}

// DELETE /staff/orders/:id: owner cleanup, irreversible.
func (oc *OrderController) Delete(c *gin.Context) {
	if err := oc.Orders.DeleteOrder(utils.CurrentRestaurantID(c), orderID(c)); err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": true})
}
