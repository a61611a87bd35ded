package main

import (
	"eticket/src/common"
	"eticket/src/types"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func loyaltyHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/users/:id/points", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			balance, err := common.GetPointBalance(params.ID)
			if err != nil {
				respondServiceError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"user_id": params.ID, "balance": balance})
		}).
		GET("/users/:id/points/history", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
			history, err := common.GetPointHistory(params.ID, limit)
			if err != nil {
				respondServiceError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": history})
		})
	return g
}
