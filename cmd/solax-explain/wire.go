//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/tamzrod/solax-explain/internal/config"
	"github.com/tamzrod/solax-explain/internal/explain"
)

func InitRunner(cfg *config.Config) (*explain.Runner, func(), error) {
	wire.Build(
		explain.New,
		ProvideTable,
		ProvideFetcher,
		ProvidePublisher,
		ProvideOutput,
		ProvideOptions,
	)
	return nil, nil, nil // wire will generate the result
}
