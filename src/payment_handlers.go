package main

import (
	"eticket/src/common"
	"eticket/src/types"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func paymentHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/orders/:id/confirm", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.ConfirmPaymentRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			operatorID := ctx.GetUint("id")
			outcome, err := common.ConfirmPayment(params.ID, operatorID, &body)
			if err != nil {
				log.Printf("error confirming order %d: %s\n", params.ID, err.Error())
				respondServiceError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": outcome})
		}).
		POST("/orders/:id/resend", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			outcome, err := common.ResendTickets(params.ID)
			if err != nil {
				log.Printf("error resending tickets for order %d: %s\n", params.ID, err.Error())
				respondServiceError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": outcome})
		})
	return g
}
