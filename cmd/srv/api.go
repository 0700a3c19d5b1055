package main

import (
	"fmt"
	"net/http"

	"github.com/pastevault/backend/migration"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(cliCtx *cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.loadStorage()
	s.loadRepos()
	s.loadAuthenticators(cliCtx.Context)
	s.loadDomains()
	s.loadRouter()

	address := fmt.Sprintf("%s:%s", s.cfg.ApiServer.Host, s.cfg.ApiServer.Port)
	server := &http.Server{
		Addr:    address,
		Handler: s.router.Handler(),
	}

	s.logger.Infof("Starting the api server on %s", address)
	if s.cfg.ApiServer.Cert != "" {
		return server.ListenAndServeTLS(s.cfg.ApiServer.Cert, s.cfg.ApiServer.Key)
	}

	return server.ListenAndServe()
}

func (s *srv) migrate(cliCtx *cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()

	return migration.Migrate(s.newContext(cliCtx.Context))
}
