package controllers

import (
	"strconv"

	"qrmenu/pkg/resp"
	"qrmenu/services"
	"qrmenu/utils"

	"github.com/gin-gonic/gin"
)

type TableController struct {
	Tables *services.TableService
}

func NewTableController(tables *services.TableService) *TableController {
	return &TableController{Tables: tables}
}

type createTableReq struct {
	Number int `json:"number"`
}

// POST /staff/tables
func (tc *TableController) Create(c *gin.Context) {
	var req createTableReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	t, err := tc.Tables.Create(utils.CurrentRestaurantID(c), req.Number)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, t)
}

// GET /staff/tables
func (tc *TableController) List(c *gin.Context) {
	items, err := tc.Tables.List(utils.CurrentRestaurantID(c))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// POST /staff/tables/:id/regenerate issues a new QR token; printed codes with
// the old one stop working.
func (tc *TableController) RegenerateToken(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	t, err := tc.Tables.RegenerateToken(utils.CurrentRestaurantID(c), uint(id))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, t)
}
