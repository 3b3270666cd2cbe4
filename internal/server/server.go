package server

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mocktailx/exchange/internal/catalog"
	"github.com/mocktailx/exchange/internal/orders"
	"github.com/mocktailx/exchange/internal/store"
	"github.com/mocktailx/exchange/pkg/models"
)

// Server represents the HTTP server
type Server struct {
	logger         *zap.Logger
	catalogSvc     catalog.CatalogService
	orderSvc       orders.OrderService
	ticker         *PriceTicker
	allowedOrigins []string
}

// NewServer creates a new HTTP server
func NewServer(
	logger *zap.Logger,
	catalogSvc catalog.CatalogService,
	orderSvc orders.OrderService,
	ticker *PriceTicker,
	allowedOrigins []string,
) *Server {
	return &Server{
		logger:         logger,
		catalogSvc:     catalogSvc,
		orderSvc:       orderSvc,
		ticker:         ticker,
		allowedOrigins: allowedOrigins,
	}
}

// Router creates a new HTTP router
func (s *Server) Router() *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(ginzap.Ginzap(s.logger, "2006-01-02T15:04:05Z07:00", true))
	router.Use(ginzap.RecoveryWithZap(s.logger, true))

	corsConfig := cors.DefaultConfig()
	if len(s.allowedOrigins) > 0 {
		corsConfig.AllowOrigins = s.allowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	// Add health check and metrics
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Add API routes
	router.GET("/prices", s.handleGetPrices)
	router.POST("/order", s.handlePlaceOrder)

	// Add WebSocket route for the live price ticker
	if s.ticker != nil {
		router.GET("/ws/prices", s.handleWebSocketPrices)
	}

	return router
}

// handleGetPrices returns the current price of every drink
func (s *Server) handleGetPrices(c *gin.Context) {
	prices, err := s.catalogSvc.GetPrices(c.Request.Context())
	if err != nil {
		s.logger.Error("Failed to get prices", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load prices"})
		return
	}

	c.JSON(http.StatusOK, prices)
}

// handlePlaceOrder places an order for a drink
func (s *Server) handlePlaceOrder(c *gin.Context) {
	var req models.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order payload"})
		return
	}
	if req.Qty == 0 {
		req.Qty = 1
	}

	confirmation, err := s.orderSvc.PlaceOrder(c.Request.Context(), req.Drink, req.Qty)
	if err != nil {
		// Unknown drinks answer 200 with an error body, matching the
		// contract the original frontend was built against.
		if errors.Is(err, store.ErrDrinkNotFound) {
			c.JSON(http.StatusOK, gin.H{"error": "Drink not available"})
			return
		}
		s.logger.Error("Failed to place order",
			zap.String("drink", req.Drink), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to place order"})
		return
	}

	c.JSON(http.StatusOK, confirmation)
}

// handleWebSocketPrices handles WebSocket connections for price updates
func (s *Server) handleWebSocketPrices(c *gin.Context) {
	s.ticker.ServeWS(c.Writer, c.Request)
}
