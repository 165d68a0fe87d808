// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/EduardoxDev/Digital-Banking-System/internal/accountdelivery"
	"github.com/EduardoxDev/Digital-Banking-System/internal/accountrepo"
	"github.com/EduardoxDev/Digital-Banking-System/internal/accountservice"
	"github.com/EduardoxDev/Digital-Banking-System/internal/middleware"
	"github.com/EduardoxDev/Digital-Banking-System/internal/transferdelivery"
	"github.com/EduardoxDev/Digital-Banking-System/internal/transferrepo"
	"github.com/EduardoxDev/Digital-Banking-System/internal/transferservice"
	"github.com/EduardoxDev/Digital-Banking-System/pkg/configpkg"
	"github.com/EduardoxDev/Digital-Banking-System/pkg/moneypkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, notifier transferservice.Notifier, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	accountRepo := accountrepo.NewRepoPGS(conn)
	transferRepo := transferrepo.NewRepoPGS(conn)

	accountService := accountservice.New(accountRepo)
	transferService := transferservice.New(
		transferRepo,
		accountService,
		notifier,
		config.TransferMaxRetries,
		config.TransferRetryInterval,
	)

	accountHandler := accountdelivery.NewHandler(accountService)
	transferHandler := transferdelivery.NewHandler(transferService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("money", moneypkg.ValidAmount); err != nil {
			return nil, errors.New("cannot register money validator")
		}
	}

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/accounts", accountHandler.Create)
	engine.GET("/accounts/:id", accountHandler.Get)
	engine.GET("/accounts", accountHandler.List)

	engine.POST("/transfers", transferHandler.Create)
	engine.POST("/deposits", transferHandler.Deposit)
	engine.POST("/withdrawals", transferHandler.Withdraw)

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
