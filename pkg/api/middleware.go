package routing

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/golang-jwt/jwt/v5"
)

// authMiddleware checks the bearer token of operations that declare bearerAuth.
// Without ISBN_JWT_SECRET, those operations are refused.
func authMiddleware(api huma.API) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		isAuthorizationRequired := false
		if op := ctx.Operation(); op != nil {
			for _, opScheme := range op.Security {
				if _, ok := opScheme["bearerAuth"]; ok {
					isAuthorizationRequired = true
					break
				}
			}
		}

		if !isAuthorizationRequired {
			next(ctx)
			return
		}

		secret := os.Getenv("ISBN_JWT_SECRET")
		if secret == "" {
			huma.WriteErr(api, ctx, http.StatusUnauthorized, "authentication is not configured")
			return
		}

		tokenString := strings.TrimPrefix(ctx.Header("Authorization"), "Bearer ")
		if tokenString == "" {
			tokenString = ctx.Query("jwt")
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(secret), nil
		})

		if err != nil {
			huma.WriteErr(api, ctx, http.StatusUnauthorized, "invalid token", err)
			return
		}
		if !token.Valid {
			huma.WriteErr(api, ctx, http.StatusUnauthorized, "invalid token")
			return
		}

		next(ctx)
	}
}
