package main

import (
	"eticket/src/common"
	"eticket/src/types"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func orderHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/orders", func(ctx *gin.Context) {
			var body types.CreateOrderRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			summary, err := common.CreateOrder(&body, body.UserID)
			if err != nil {
				log.Printf("error creating order: %s\n", err.Error())
				respondServiceError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": summary})
		}).
		GET("/orders/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			order, err := common.GetOrderByID(params.ID)
			if err != nil {
				respondServiceError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": order})
		}).
		GET("/payments/:orderNumber", func(ctx *gin.Context) {
			var params types.OrderNumberURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			order, err := common.GetOrderByNumber(params.OrderNumber)
			if err != nil {
				respondServiceError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": order})
		}).
		GET("/payments/:orderNumber/status", func(ctx *gin.Context) {
			var params types.OrderNumberURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			status, err := common.GetOrderPaymentStatus(params.OrderNumber)
			if err != nil {
				respondServiceError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"payment_status": status})
		}).
		DELETE("/payments/:orderNumber", func(ctx *gin.Context) {
			var params types.OrderNumberURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if err := common.CancelOrder(params.OrderNumber); err != nil {
				log.Printf("error cancelling order %s: %s\n", params.OrderNumber, err.Error())
				respondServiceError(ctx, err)
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
