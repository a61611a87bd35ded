package main

import (
	"eticket/src/common"
	"eticket/src/types"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func checkinHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/tickets/:ticketNumber", func(ctx *gin.Context) {
			var params types.TicketNumberURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ticket, err := common.GetTicketInfo(params.TicketNumber)
			if err != nil {
				respondServiceError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": ticket})
		}).
		POST("/checkin", func(ctx *gin.Context) {
			var body types.CheckInRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			operatorID := ctx.GetUint("id")
			outcome, err := common.CheckIn(body.TicketNumber, operatorID, body.Notes)
			if err != nil {
				log.Printf("error checking in ticket %s: %s\n", body.TicketNumber, err.Error())
				respondServiceError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": outcome})
		}).
		GET("/events/:id/checkins", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			logs, err := common.ListEventCheckIns(params.ID)
			if err != nil {
				respondServiceError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": logs})
		})
	return g
}
