package main

import (
	"errors"
	"eticket/src/boot"
	"eticket/src/config"
	"eticket/src/types"
	"log"
	"net/http"
	"os"
	"regexp"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	apiPrefix string = "/api/v1"
)

var futureDateValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	datetime, err := time.Parse(config.TIME_PARSE_FORMAT, date)
	if err != nil {
		return false
	}
	return time.Now().Before(datetime)
}

func setupRouter() *gin.Engine {
	router := gin.Default()
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, "ok")
	})
	return router
}

func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("futuredate", futureDateValidatorFunc)
	}
}

// respondServiceError maps service errors onto the HTTP surface. Conflict
// style outcomes carry their context in the response body.
func respondServiceError(ctx *gin.Context, err error) {
	var insufficientErr *types.InsufficientInventoryError
	if errors.As(err, &insufficientErr) {
		ctx.JSON(http.StatusConflict, gin.H{
			"error":          err.Error(),
			"ticket_type_id": insufficientErr.TicketTypeID,
			"requested":      insufficientErr.Requested,
			"remaining":      insufficientErr.Remaining,
		})
		return
	}
	var usedErr *types.TicketAlreadyUsedError
	if errors.As(err, &usedErr) {
		ctx.JSON(http.StatusConflict, gin.H{
			"error":         err.Error(),
			"ticket_number": usedErr.TicketNumber,
			"checked_in_at": usedErr.CheckedInAt,
			"checked_in_by": usedErr.CheckedInBy,
		})
		return
	}
	var earlyErr *types.CheckInTooEarlyError
	if errors.As(err, &earlyErr) {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":    err.Error(),
			"opens_at": earlyErr.OpensAt,
		})
		return
	}
	switch {
	case errors.Is(err, types.ErrEventNotFound),
		errors.Is(err, types.ErrTicketTypeNotFound),
		errors.Is(err, types.ErrOrderNotFound),
		errors.Is(err, types.ErrTicketNotFound),
		errors.Is(err, types.ErrUserNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, types.ErrOrderExpired),
		errors.Is(err, types.ErrOrderNotPending),
		errors.Is(err, types.ErrOrderNotPaid),
		errors.Is(err, types.ErrSaleClosed),
		errors.Is(err, types.ErrEventEnded),
		errors.Is(err, types.ErrTicketCancelled),
		errors.Is(err, types.ErrTicketExpired):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("unhandled service error: %s\n", err.Error())
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

func main() {
	boot.InitDb()
	boot.InitScheduler()

	router := setupRouter()

	apiEnv := os.Getenv("API_ENV")
	appHost := os.Getenv("APP_HOST")
	if apiEnv == "local" {
		router.Use(cors.Default())
	} else {
		cc := cors.DefaultConfig()
		cc.AllowMethods = append(cc.AllowMethods, "GET", "POST", "PATCH", "DELETE")
		cc.AllowHeaders = append(cc.AllowHeaders, "Origin", "Authorization")
		cc.AllowOriginFunc = func(origin string) bool {
			match, _ := regexp.MatchString(appHost, origin)
			return match
		}
		cc.AllowCredentials = true
		cc.AllowAllOrigins = false
		router.Use(cors.New(cc))
	}

	registerValidators()

	publicRoutes(router)
	operatorRoutes(router)

	if err := router.Run(":9090"); err != nil {
		log.Fatalf("error starting server: %s", err.Error())
	}
}
