package middlewares

import (
	"errors"
	"eticket/src/db"
	"eticket/src/models"
	"eticket/src/types"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

var jwtKey = []byte(os.Getenv("JWT_SECRET"))

// OperatorAuth gates the operator surface (payment confirmation, check-in,
// admin seed). It validates the bearer token, resolves the operator row and
// stores id/email/role on the context.
func OperatorAuth(ctx *gin.Context) {
	bearerToken := ctx.Request.Header.Get("Authorization")
	if !strings.HasPrefix(bearerToken, "Bearer ") {
		ctx.AbortWithStatus(401)
		return
	}
	reqToken := strings.TrimPrefix(bearerToken, "Bearer ")
	if reqToken == "" {
		ctx.AbortWithStatus(401)
		return
	}
	claims := &types.Claims{}
	tkn, err := jwt.ParseWithClaims(reqToken, claims, func(t *jwt.Token) (any, error) {
		return jwtKey, nil
	})
	if err != nil {
		log.Printf("token error: %s\n", err.Error())
		ctx.AbortWithStatus(401)
		return
	}
	if !tkn.Valid {
		ctx.AbortWithStatus(401)
		return
	}

	uid, err := strconv.Atoi(claims.Subject)
	if err != nil {
		log.Printf("error parsing claims: %s\n", err.Error())
		ctx.AbortWithStatus(401)
		return
	}
	conn := db.GetDb()
	var user models.User
	if err := conn.Where(&models.User{ID: uint(uid)}).First(&user).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("error loading operator: %s\n", err.Error())
		}
		ctx.AbortWithStatus(401)
		return
	}
	if user.Role != "operator" && user.Role != "admin" {
		ctx.AbortWithStatus(403)
		return
	}
	ctx.Set("id", user.ID)
	ctx.Set("email", user.Email)
	ctx.Set("role", user.Role)
}
