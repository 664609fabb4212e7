// cmd/solax-explain/providers.go
package main

import (
	"io"
	"os"

	"github.com/tamzrod/solax-explain/internal/config"
	"github.com/tamzrod/solax-explain/internal/explain"
	"github.com/tamzrod/solax-explain/internal/publish"
	"github.com/tamzrod/solax-explain/internal/source"
	"github.com/tamzrod/solax-explain/internal/table"
)

// ProvideTable returns the custom table when one is configured,
// otherwise the built-in table of the configured model.
func ProvideTable(cfg *config.Config) (*table.Table, error) {
	if cfg.Device.Table != "" {
		return table.LoadFile(cfg.Device.Table)
	}
	m, err := table.ParseModel(cfg.Device.Model)
	if err != nil {
		return nil, err
	}
	return table.ForModel(m)
}

func ProvideFetcher(cfg *config.Config, t *table.Table) (source.Fetcher, func(), error) {
	return source.Build(cfg.Source, t.Length)
}

func ProvidePublisher(cfg *config.Config) (publish.Publisher, func(), error) {
	return publish.Build(cfg.MQTT)
}

func ProvideOutput() io.Writer {
	return os.Stdout
}

func ProvideOptions(cfg *config.Config) explain.Options {
	return explain.Options{
		Host:     cfg.Source.Host,
		Password: cfg.Source.Password,
	}
}
