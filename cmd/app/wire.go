//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/pikacalc/internal/bootstrap"
	"github.com/yanqian/pikacalc/internal/domain/calculator"
	"github.com/yanqian/pikacalc/internal/domain/roster"
	"github.com/yanqian/pikacalc/internal/infra/config"
	"github.com/yanqian/pikacalc/internal/infra/pokeapi"
	httpiface "github.com/yanqian/pikacalc/internal/interface/http"
	"github.com/yanqian/pikacalc/pkg/logger"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		provideRosterConfig,
		provideCalculatorConfig,
		providePokeAPIClient,
		provideRosterStore,
		provideSessionStore,
		roster.NewService,
		calculator.NewService,
		wire.Bind(new(roster.Source), new(*pokeapi.Client)),
		wire.Bind(new(calculator.SpeciesLookup), new(roster.Service)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
