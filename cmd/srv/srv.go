package main

import (
	"context"
	"log"

	"github.com/pastevault/backend/config"
	"github.com/pastevault/backend/internal/domain"
	"github.com/pastevault/backend/internal/entity"
	"github.com/pastevault/backend/internal/middleware"
	"github.com/pastevault/backend/internal/repository"
	"github.com/pastevault/backend/pkg/authenticator"
	"github.com/pastevault/backend/pkg/logger"
	"github.com/pastevault/backend/pkg/router"
	"github.com/pastevault/backend/pkg/storage"
	"github.com/pastevault/backend/pkg/xcontext"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	cfg    config.Configs
	logger logger.Logger
	db     *gorm.DB

	storage storage.Storage

	userRepo        repository.UserRepository
	accessTokenRepo repository.AccessTokenRepository
	actionLogRepo   repository.ActionLogRepository

	oauth2Services []authenticator.IOAuth2Service

	authDomain        domain.AuthDomain
	accessTokenDomain domain.AccessTokenDomain

	router *router.Router
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if s.cfg.Env == "local" {
		level = logger.DEBUG
	}

	s.logger = logger.NewLogger(level)
}

func (s *srv) loadDatabase() {
	db, err := gorm.Open(mysql.Open(s.cfg.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		log.Fatal(err)
	}

	s.db = db
}

func (s *srv) loadStorage() {
	s.storage = storage.NewS3Storage(s.cfg.Storage)
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.accessTokenRepo = repository.NewAccessTokenRepository()
	s.actionLogRepo = repository.NewActionLogRepository()
}

func (s *srv) loadAuthenticators(ctx context.Context) {
	if s.cfg.Auth.GitHub.ClientID != "" {
		s.oauth2Services = append(s.oauth2Services,
			authenticator.NewOAuth2Service(s.cfg.Auth.GitHub))
	}

	if s.cfg.Auth.GitLab.ClientID != "" {
		s.oauth2Services = append(s.oauth2Services,
			authenticator.NewOAuth2Service(s.cfg.Auth.GitLab))
	}

	if s.cfg.Auth.Google.ClientID != "" {
		google, err := authenticator.NewOIDCService(ctx, s.cfg.Auth.Google)
		if err != nil {
			log.Fatal(err)
		}

		s.oauth2Services = append(s.oauth2Services, google)
	}
}

func (s *srv) loadDomains() {
	s.authDomain = domain.NewAuthDomain(
		s.userRepo, s.accessTokenRepo, s.actionLogRepo, s.storage, s.oauth2Services...)
	s.accessTokenDomain = domain.NewAccessTokenDomain(s.accessTokenRepo, s.actionLogRepo)
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, s.cfg, s.logger)
	s.router.After(middleware.AllowCors())
	s.router.AddCloser(middleware.Logger())

	authVerifier := middleware.NewAuthVerifier(s.accessTokenRepo)

	// The oauth flow answers with redirects, sessions and cookies.
	oauthRouter := s.router.Branch()
	oauthRouter.After(middleware.HandleSaveSession())
	oauthRouter.After(middleware.HandleSetCookie())
	oauthRouter.After(middleware.HandleRedirect())
	router.GET(oauthRouter, "/oauth2/login", s.authDomain.Login)
	router.GET(oauthRouter, "/oauth2/callback", s.authDomain.Callback)
	router.POST(oauthRouter, "/register", s.authDomain.Register)
	router.GET(oauthRouter, "/logout", s.authDomain.Logout)

	userRouter := s.router.Branch()
	userRouter.Before(authVerifier.WithScopes(entity.ScopeUser, entity.ScopeUserRead).Middleware())
	router.GET(userRouter, "/getMe", s.authDomain.GetMe)

	tokenRouter := s.router.Branch()
	tokenRouter.Before(authVerifier.WithScopes(entity.ScopeUserAccessTokens).Middleware())
	router.POST(tokenRouter, "/generateAccessToken", s.accessTokenDomain.Generate)
	router.GET(tokenRouter, "/getAccessTokens", s.accessTokenDomain.GetList)
	router.POST(tokenRouter, "/deleteAccessToken", s.accessTokenDomain.Delete)
}

func (s *srv) newContext(ctx context.Context) context.Context {
	ctx = xcontext.WithConfigs(ctx, s.cfg)
	ctx = xcontext.WithLogger(ctx, s.logger)
	ctx = xcontext.WithDB(ctx, s.db)
	return ctx
}
