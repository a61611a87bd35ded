package main

import (
	"eticket/src/common"
	"eticket/src/types"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func eventHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/events", func(ctx *gin.Context) {
			events, err := common.ListEvents()
			if err != nil {
				log.Printf("Error retrieving Events: %s\n", err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": events})
		}).
		GET("/events/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			event, err := common.GetEvent(params.ID)
			if err != nil {
				respondServiceError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": event})
		}).
		GET("/events/:id/ticket-types", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ticketTypes, err := common.ListTicketTypes(params.ID)
			if err != nil {
				respondServiceError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": ticketTypes})
		})
	return g
}

func adminEventHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/events", func(ctx *gin.Context) {
			var body types.CreateEventRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			event, err := common.CreateEvent(&body)
			if err != nil {
				log.Printf("error creating event: %s\n", err.Error())
				respondServiceError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"id": event.ID, "slug": event.Slug})
		})
	return g
}
