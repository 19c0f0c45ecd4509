// Package mocks holds gomock doubles for the collaborator interfaces.
package mocks

//go:generate mockgen -destination=./mock_fetcher.go -package=mocks IDXScreener/internal/collector Fetcher,UniverseSource
//go:generate mockgen -destination=./mock_notifier.go -package=mocks IDXScreener/internal/notifier Notifier
//go:generate mockgen -destination=./mock_pipeline.go -package=mocks IDXScreener/internal/screener Pipeline
