// Package shipping holds the city/district/ward cascade and the last computed
// fee quote. Invalidation cascades on assignment: changing a city clears
// districts, wards and the quote synchronously, before the replacement list
// is even requested, so stale lower-level geography is never attributed to a
// new parent.
package shipping

import (
	"context"
	"sync"

	"storefront-engine/internal/domain"
)

type gatewayAPI interface {
	Cities(ctx context.Context) ([]domain.City, error)
	Districts(ctx context.Context, cityCode string) ([]domain.District, error)
	Wards(ctx context.Context, districtCode string) ([]domain.Ward, error)
	ShippingFee(ctx context.Context, req domain.FeeRequest) (domain.ShippingQuote, error)
}

// Store is the shipping quote store.
type Store struct {
	mu        sync.Mutex
	gw        gatewayAPI
	cities    []domain.City
	districts []domain.District
	wards     []domain.Ward

	cityCode     string
	districtCode string
	wardCode     string

	quote *domain.ShippingQuote

	// Fee-calculation status only. Geography loads are reference-data
	// fetches and never flip this.
	feeStatus domain.Status
	feeErr    *domain.RemoteError
}

func New(gw gatewayAPI) *Store {
	return &Store{gw: gw, feeStatus: domain.StatusIdle}
}

// LoadCities populates the top-level list. Cached for the process lifetime.
func (s *Store) LoadCities(ctx context.Context) error {
	s.mu.Lock()
	if len(s.cities) > 0 {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	cities, err := s.gw.Cities(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	if len(s.cities) == 0 {
		s.cities = append([]domain.City(nil), cities...)
	}
	s.mu.Unlock()
	return nil
}

// SelectCity clears districts, wards and the quote, then loads the city's
// district list.
func (s *Store) SelectCity(ctx context.Context, cityCode string) error {
	s.mu.Lock()
	s.cityCode = cityCode
	s.districtCode = ""
	s.wardCode = ""
	s.districts = nil
	s.wards = nil
	s.quote = nil
	s.mu.Unlock()

	districts, err := s.gw.Districts(ctx, cityCode)
	if err != nil {
		return err
	}
	s.mu.Lock()
	// A later city selection supersedes this response.
	if s.cityCode == cityCode {
		s.districts = append([]domain.District(nil), districts...)
	}
	s.mu.Unlock()
	return nil
}

// SelectDistrict clears wards and the quote, then loads the district's wards.
func (s *Store) SelectDistrict(ctx context.Context, districtCode string) error {
	s.mu.Lock()
	s.districtCode = districtCode
	s.wardCode = ""
	s.wards = nil
	s.quote = nil
	s.mu.Unlock()

	wards, err := s.gw.Wards(ctx, districtCode)
	if err != nil {
		return err
	}
	s.mu.Lock()
	if s.districtCode == districtCode {
		s.wards = append([]domain.Ward(nil), wards...)
	}
	s.mu.Unlock()
	return nil
}

// SelectWard records the ward. The quote derives from the full triple, so a
// ward change still invalidates it.
func (s *Store) SelectWard(wardCode string) {
	s.mu.Lock()
	s.wardCode = wardCode
	s.quote = nil
	s.mu.Unlock()
}

// CalculateFee computes a quote for the selected address and the given parcel.
// On failure any prior quote is cleared: a stale fee must never be shown
// against a failed recalculation.
func (s *Store) CalculateFee(ctx context.Context, parcel domain.Parcel, cashOnDelivery bool, amount int64) (domain.ShippingQuote, error) {
	s.mu.Lock()
	if s.cityCode == "" || s.districtCode == "" || s.wardCode == "" {
		rerr := domain.GeneralError("address is not fully selected")
		s.quote = nil
		s.feeStatus = domain.StatusFailed
		s.feeErr = rerr
		s.mu.Unlock()
		return domain.ShippingQuote{}, rerr
	}
	req := domain.FeeRequest{
		CityCode:       s.cityCode,
		DistrictCode:   s.districtCode,
		WardCode:       s.wardCode,
		Parcel:         parcel,
		CashOnDelivery: cashOnDelivery,
		Amount:         amount,
	}
	s.feeStatus = domain.StatusLoading
	s.feeErr = nil
	s.mu.Unlock()

	quote, err := s.gw.ShippingFee(ctx, req)
	if err != nil {
		rerr := domain.AsRemote(err)
		s.mu.Lock()
		s.quote = nil
		s.feeStatus = domain.StatusFailed
		s.feeErr = rerr
		s.mu.Unlock()
		return domain.ShippingQuote{}, rerr
	}

	s.mu.Lock()
	s.quote = &quote
	s.feeStatus = domain.StatusSucceeded
	s.mu.Unlock()
	return quote, nil
}

// Cities returns the cached city list.
func (s *Store) Cities() []domain.City {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.City(nil), s.cities...)
}

// Districts returns the current city's district list.
func (s *Store) Districts() []domain.District {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.District(nil), s.districts...)
}

// Wards returns the current district's ward list.
func (s *Store) Wards() []domain.Ward {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Ward(nil), s.wards...)
}

// Selection returns the selected (city, district, ward) codes.
func (s *Store) Selection() (cityCode, districtCode, wardCode string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cityCode, s.districtCode, s.wardCode
}

// Quote returns the last computed quote, or nil.
func (s *Store) Quote() *domain.ShippingQuote {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.quote == nil {
		return nil
	}
	quote := *s.quote
	return &quote
}

// FeeStatus returns the fee-calculation status and error.
func (s *Store) FeeStatus() (domain.Status, *domain.RemoteError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.feeStatus, s.feeErr
}
