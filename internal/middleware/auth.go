package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
	ContextBarberID = "barberID"
)

// bearerToken lê o header Authorization. ?token= só vale no upgrade de
// websocket, onde o browser não consegue mandar header.
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		if !isWebSocketUpgrade(c) {
			return "", false
		}
		if t := c.Query("token"); t != "" {
			return t, true
		}
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func isWebSocketUpgrade(c *gin.Context) bool {
	return strings.EqualFold(c.GetHeader("Upgrade"), "websocket")
}

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error_code": "missing_authorization_header"})
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {

			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error_code": "invalid_token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error_code": "invalid_token_claims"})
			return
		}

		userID, ok1 := claims["sub"].(float64)
		roleStr, _ := claims["role"].(string)
		role, ok2 := domain.ParseRole(roleStr)
		if !ok1 || !ok2 || role == domain.RoleCustomer {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error_code": "invalid_token_payload"})
			return
		}

		c.Set(ContextUserID, uint(userID))
		c.Set(ContextUserRole, string(role))
		if barberID, ok := claims["barberId"].(float64); ok && barberID > 0 {
			c.Set(ContextBarberID, uint(barberID))
		}

		c.Next()
	}
}

// RequireRole barra quem não tem um dos papéis informados.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := domain.Role(c.GetString(ContextUserRole))
		if !slices.Contains(roles, role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error_code": "forbidden"})
			return
		}
		c.Next()
	}
}

// Actor monta o ator a partir do token já verificado. Sem token é cliente.
func Actor(c *gin.Context) domain.Actor {
	role, ok := domain.ParseRole(c.GetString(ContextUserRole))
	if !ok {
		return domain.CustomerActor()
	}

	a := domain.Actor{Role: role}
	if v, ok := c.Get(ContextUserID); ok {
		id := v.(uint)
		a.UserID = &id
	}
	if v, ok := c.Get(ContextBarberID); ok {
		id := v.(uint)
		a.BarberID = &id
	}
	return a
}
