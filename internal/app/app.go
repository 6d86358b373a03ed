package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abolfazl-babaei01/love-code-learn-api/internal/config"
	httpx "github.com/abolfazl-babaei01/love-code-learn-api/internal/http"
	"github.com/abolfazl-babaei01/love-code-learn-api/internal/http/handlers"
)

// Run wires the container and serves the API until the listener fails.
func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	c, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.RedisClient.Ping(context.Background()).Err(); err != nil {
		return err
	}

	authH := handlers.NewAuthHandlers(c.AuthSvc, c.OTPSvc)
	courseH := handlers.NewCourseHandlers(c.CatalogSvc)
	cartH := handlers.NewCartHandlers(c.CartSvc, c.CheckoutSvc)
	orderH := handlers.NewOrderHandlers(c.OrderRepo, c.EnrollRepo)

	r := httpx.BuildRouter(authH, courseH, cartH, orderH, c.TokenSvc, c.SessionRepo)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
