package main

import (
	"eticket/src/middlewares"

	"github.com/gin-gonic/gin"
)

func publicRoutes(g *gin.Engine) *gin.RouterGroup {
	apiv1 := g.Group(apiPrefix)
	eventHandlers(apiv1)
	orderHandlers(apiv1)
	loyaltyHandlers(apiv1)
	return apiv1
}

// operatorRoutes gates payment confirmation, check-in and the event seed
// surface behind operator auth.
func operatorRoutes(g *gin.Engine) *gin.RouterGroup {
	operator := g.Group(apiPrefix + "/operator")
	operator.Use(middlewares.OperatorAuth)
	paymentHandlers(operator)
	checkinHandlers(operator)
	adminEventHandlers(operator)
	return operator
}
