// Package httpserver manages server creation and api routing.
package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/ledgerflow/ledgerflow/internal/accountdelivery"
	"github.com/ledgerflow/ledgerflow/internal/accountrepo"
	"github.com/ledgerflow/ledgerflow/internal/accountservice"
	"github.com/ledgerflow/ledgerflow/internal/middleware"
	"github.com/ledgerflow/ledgerflow/internal/transferdelivery"
	"github.com/ledgerflow/ledgerflow/internal/transferservice"
	"github.com/ledgerflow/ledgerflow/pkg/configpkg"
)

// Server holds the account directory, handlers router and configuration.
type Server struct {
	Accounts *accountrepo.RepoMem
	Engine   *gin.Engine
	Config   configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	accountRepo := accountrepo.NewRepoMem(config.BranchCode)

	accountService := accountservice.New(accountRepo)
	transferService := transferservice.New(accountService)

	accountHandler := accountdelivery.NewHandler(accountService)
	transferHandler := transferdelivery.NewHandler(transferService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/accounts", accountHandler.Create)
	engine.GET("/accounts", accountHandler.List)
	engine.GET("/accounts/:number", accountHandler.Get)
	engine.POST("/accounts/:number/deposits", accountHandler.Deposit)
	engine.POST("/accounts/:number/withdrawals", accountHandler.Withdraw)
	engine.POST("/accounts/:number/yield", accountHandler.AccrueYield)
	engine.GET("/accounts/:number/transactions", accountHandler.Transactions)
	engine.GET("/accounts/:number/statement", accountHandler.Statement)

	engine.POST("/transfers", transferHandler.Create)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("accountkind", accountdelivery.ValidKind)
		if err != nil {
			return nil, errors.New("cannot register account kind validator")
		}
	}

	server := &Server{
		Accounts: accountRepo,
		Engine:   engine,
		Config:   config,
	}

	return server, nil
}
