package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"merchant-kita.onboarding/internal/domain/entities"
	"merchant-kita.onboarding/internal/domain/repositories"
	"merchant-kita.onboarding/internal/usecases"
	"merchant-kita.onboarding/pkg/logger"
)

// MerchantCodeKey is the context key for the selected merchant code
const MerchantCodeKey = "merchantCode"

// apiPrefix is stripped before the gate sees the path so route rules match
// the logical screen paths.
const apiPrefix = "/api/v1"

// GateMiddleware assembles the access decision for each request from the
// session claims, the persisted merchant selection and the remote compliance
// progress. Redirects are issued as 307 responses; admitted requests carry
// the selected merchant code in the gin context for the handlers.
func GateMiddleware(gate *usecases.Gate, merchants *usecases.MerchantUsecase, client repositories.RecordClient, allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		userID, sessionValid := GetUserID(c)
		role, _ := GetUserRole(c)

		in := usecases.GateInput{
			SessionValid: sessionValid,
			SessionID:    userID.String(),
			Role:         role,
			AllowedRoles: allowedRoles,
			Path:         gatePath(c.Request.URL.Path),
			RawQuery:     c.Request.URL.RawQuery,
		}

		merchantCode := ""
		if sessionValid {
			available := make([]entities.Merchant, 0, len(GetMerchants(c)))
			for _, m := range GetMerchants(c) {
				available = append(available, entities.Merchant{
					MerchantCode: m.MerchantCode,
					MerchantName: m.MerchantName,
				})
			}

			selection, err := merchants.Selection(ctx, available)
			if err != nil {
				logger.Warn(ctx, "merchant selection unavailable", zap.Error(err))
			} else if sel := selection.Selected(); sel != nil {
				merchantCode = sel.MerchantCode
				in.HasMerchant = true
			}
		}

		if in.HasMerchant {
			record, err := client.Fetch(ctx, merchantCode)
			if err != nil {
				logger.Warn(ctx, "compliance record load failed",
					zap.String("merchant_code", merchantCode), zap.Error(err))
				in.LoadFailed = true
			} else {
				in.Progress = record.Progress
			}
		}

		decision := gate.Decide(in)
		if !decision.Allow {
			c.Redirect(http.StatusTemporaryRedirect, decision.Redirect)
			c.Abort()
			return
		}

		c.Set(MerchantCodeKey, merchantCode)
		c.Next()
	}
}

// GetMerchantCode gets the selected merchant code from context
func GetMerchantCode(c *gin.Context) (string, bool) {
	code, exists := c.Get(MerchantCodeKey)
	if !exists {
		return "", false
	}
	s := code.(string)
	return s, s != ""
}

func gatePath(path string) string {
	if strings.HasPrefix(path, apiPrefix) {
		path = strings.TrimPrefix(path, apiPrefix)
	}
	if path == "" {
		return "/"
	}
	// Wizard endpoints back the compliance screen.
	if strings.HasPrefix(path, "/wizard") {
		return "/compliance" + path
	}
	return path
}
