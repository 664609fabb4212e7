// internal/mocks/generate.go
package mocks

//go:generate mockgen -destination=mock_fetcher.go -package=mocks github.com/tamzrod/solax-explain/internal/source Fetcher
//go:generate mockgen -destination=mock_publisher.go -package=mocks github.com/tamzrod/solax-explain/internal/publish Publisher
