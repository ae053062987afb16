package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"merchant-kita.onboarding/internal/interfaces/http/handlers"
)

type routeDeps struct {
	wizardHandler      *handlers.WizardHandler
	complianceHandler  *handlers.ComplianceHandler
	merchantHandler    *handlers.MerchantHandler
	environmentHandler *handlers.EnvironmentHandler
	authMiddleware     gin.HandlerFunc
	gateMiddleware     gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	v1.Use(d.authMiddleware, d.gateMiddleware)
	{
		// Compliance record and screen routing
		compliance := v1.Group("/compliance")
		{
			compliance.GET("", d.complianceHandler.GetRecord)
			compliance.GET("/screen", d.complianceHandler.GetScreen)
		}

		// Onboarding wizard
		wizard := v1.Group("/wizard")
		{
			wizard.GET("", d.wizardHandler.GetState)
			wizard.POST("/next", d.wizardHandler.Next)
			wizard.POST("/back", d.wizardHandler.Back)
			wizard.POST("/submit", d.wizardHandler.Submit)
			wizard.PUT("/draft", d.wizardHandler.UpdateDraft)
			wizard.POST("/owners/:id/edit", d.wizardHandler.EditOwner)
			wizard.DELETE("/owners/:id", d.wizardHandler.RemoveOwner)
		}

		// Merchant selection
		merchants := v1.Group("/merchants")
		{
			merchants.GET("/selection", d.merchantHandler.GetSelection)
			merchants.PUT("/selection", d.merchantHandler.PutSelection)
		}

		// Environment mode
		environment := v1.Group("/environment")
		{
			environment.GET("", d.environmentHandler.GetMode)
			environment.PUT("", d.environmentHandler.PutMode)
		}
	}
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "merchant-onboarding",
			"version": "0.1.0",
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}
