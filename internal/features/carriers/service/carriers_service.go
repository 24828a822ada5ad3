package service

import (
	"context"

	"trackmate/internal/features/carriers/domain"
	"trackmate/internal/features/tracking/ports"
)

// CarriersService exposes the carrier directory and the upstream roster.
type CarriersService struct {
	fetcher ports.Fetcher
}

// NewCarriersService creates a new CarriersService.
func NewCarriersService(fetcher ports.Fetcher) *CarriersService {
	return &CarriersService{fetcher: fetcher}
}

// Directory returns the supported carriers in listing order.
func (s *CarriersService) Directory() []domain.Carrier {
	return domain.All()
}

// UpstreamCompanies returns every carrier the upstream source can query,
// beyond the curated directory. The adapter caches the roster.
func (s *CarriersService) UpstreamCompanies(ctx context.Context) ([]ports.Company, error) {
	return s.fetcher.CompanyList(ctx)
}
