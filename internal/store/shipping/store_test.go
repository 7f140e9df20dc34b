package shipping

import (
	"context"
	"testing"
	"time"

	"storefront-engine/internal/domain"
)

type stubGateway struct {
	cities    []domain.City
	citiesErr error
	cityCalls int

	districts    []domain.District
	districtsErr error

	wards    []domain.Ward
	wardsErr error

	quote   domain.ShippingQuote
	feeErr  error
	lastReq domain.FeeRequest
}

func (g *stubGateway) Cities(_ context.Context) ([]domain.City, error) {
	g.cityCalls++
	return g.cities, g.citiesErr
}

func (g *stubGateway) Districts(_ context.Context, _ string) ([]domain.District, error) {
	return g.districts, g.districtsErr
}

func (g *stubGateway) Wards(_ context.Context, _ string) ([]domain.Ward, error) {
	return g.wards, g.wardsErr
}

func (g *stubGateway) ShippingFee(_ context.Context, req domain.FeeRequest) (domain.ShippingQuote, error) {
	g.lastReq = req
	return g.quote, g.feeErr
}

func selectFullAddress(t *testing.T, s *Store) {
	t.Helper()
	if err := s.SelectCity(context.Background(), "HCM"); err != nil {
		t.Fatalf("select city: %v", err)
	}
	if err := s.SelectDistrict(context.Background(), "D1"); err != nil {
		t.Fatalf("select district: %v", err)
	}
	s.SelectWard("W1")
}

func TestLoadCitiesCachesForProcessLifetime(t *testing.T) {
	gw := &stubGateway{cities: []domain.City{{Code: "HCM", Name: "Ho Chi Minh"}}}
	s := New(gw)

	if err := s.LoadCities(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.LoadCities(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gw.cityCalls != 1 {
		t.Fatalf("cities must be fetched once, got %d calls", gw.cityCalls)
	}
	if len(s.Cities()) != 1 {
		t.Fatalf("unexpected cities: %+v", s.Cities())
	}
}

func TestSelectCityLoadsDistricts(t *testing.T) {
	gw := &stubGateway{districts: []domain.District{{Code: "D1", CityCode: "HCM"}}}
	s := New(gw)

	if err := s.SelectCity(context.Background(), "HCM"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Districts()) != 1 {
		t.Fatalf("unexpected districts: %+v", s.Districts())
	}
	city, district, ward := s.Selection()
	if city != "HCM" || district != "" || ward != "" {
		t.Fatalf("unexpected selection: %s/%s/%s", city, district, ward)
	}
}

func TestCityChangeCascadesInvalidation(t *testing.T) {
	gw := &stubGateway{
		districts: []domain.District{{Code: "D1"}},
		wards:     []domain.Ward{{Code: "W1"}},
		quote:     domain.ShippingQuote{Fee: 30000, Carrier: "ghn"},
	}
	s := New(gw)
	selectFullAddress(t, s)

	if _, err := s.CalculateFee(context.Background(), domain.Parcel{WeightGrams: 500}, false, 100000); err != nil {
		t.Fatalf("fee: %v", err)
	}
	if s.Quote() == nil {
		t.Fatal("quote should be set before the city change")
	}

	// Changing city must clear district, ward and quote no matter how many
	// fee calculations succeeded before.
	if err := s.SelectCity(context.Background(), "HN"); err != nil {
		t.Fatalf("select city: %v", err)
	}
	city, district, ward := s.Selection()
	if city != "HN" || district != "" || ward != "" {
		t.Fatalf("district and ward must be cleared, got %s/%s/%s", city, district, ward)
	}
	if len(s.Wards()) != 0 {
		t.Fatalf("wards must be cleared, got %+v", s.Wards())
	}
	if s.Quote() != nil {
		t.Fatal("quote must be cleared on city change")
	}
}

func TestDistrictChangeClearsWardAndQuote(t *testing.T) {
	gw := &stubGateway{
		districts: []domain.District{{Code: "D1"}},
		wards:     []domain.Ward{{Code: "W1"}},
		quote:     domain.ShippingQuote{Fee: 20000},
	}
	s := New(gw)
	selectFullAddress(t, s)
	if _, err := s.CalculateFee(context.Background(), domain.Parcel{WeightGrams: 100}, false, 50000); err != nil {
		t.Fatalf("fee: %v", err)
	}

	if err := s.SelectDistrict(context.Background(), "D2"); err != nil {
		t.Fatalf("select district: %v", err)
	}
	_, district, ward := s.Selection()
	if district != "D2" || ward != "" {
		t.Fatalf("ward must be cleared, got %s/%s", district, ward)
	}
	if s.Quote() != nil {
		t.Fatal("quote must be cleared on district change")
	}
}

func TestCalculateFeeRequiresFullAddress(t *testing.T) {
	gw := &stubGateway{districts: []domain.District{{Code: "D1"}}}
	s := New(gw)
	if err := s.SelectCity(context.Background(), "HCM"); err != nil {
		t.Fatalf("select city: %v", err)
	}

	if _, err := s.CalculateFee(context.Background(), domain.Parcel{}, false, 0); err == nil {
		t.Fatal("expected error for incomplete address")
	}
	status, rerr := s.FeeStatus()
	if status != domain.StatusFailed || rerr == nil {
		t.Fatalf("unexpected fee status: %s %+v", status, rerr)
	}
}

func TestCalculateFeeStoresQuoteAndRequest(t *testing.T) {
	gw := &stubGateway{
		districts: []domain.District{{Code: "D1"}},
		wards:     []domain.Ward{{Code: "W1"}},
		quote:     domain.ShippingQuote{Fee: 42000, Carrier: "ghn", EstimatedDelivery: "2d"},
	}
	s := New(gw)
	selectFullAddress(t, s)

	quote, err := s.CalculateFee(context.Background(), domain.Parcel{WeightGrams: 900}, true, 750000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Fee != 42000 {
		t.Fatalf("unexpected quote: %+v", quote)
	}
	req := gw.lastReq
	if req.CityCode != "HCM" || req.DistrictCode != "D1" || req.WardCode != "W1" {
		t.Fatalf("unexpected address in request: %+v", req)
	}
	if !req.CashOnDelivery || req.Amount != 750000 || req.Parcel.WeightGrams != 900 {
		t.Fatalf("unexpected parcel fields: %+v", req)
	}
	if status, _ := s.FeeStatus(); status != domain.StatusSucceeded {
		t.Fatalf("unexpected status: %s", status)
	}
}

func TestCalculateFeeFailureClearsPriorQuote(t *testing.T) {
	gw := &stubGateway{
		districts: []domain.District{{Code: "D1"}},
		wards:     []domain.Ward{{Code: "W1"}},
		quote:     domain.ShippingQuote{Fee: 30000},
	}
	s := New(gw)
	selectFullAddress(t, s)
	if _, err := s.CalculateFee(context.Background(), domain.Parcel{WeightGrams: 100}, false, 10000); err != nil {
		t.Fatalf("fee: %v", err)
	}

	gw.feeErr = domain.NetworkError("carrier unreachable")
	if _, err := s.CalculateFee(context.Background(), domain.Parcel{WeightGrams: 100}, false, 10000); err == nil {
		t.Fatal("expected error")
	}
	if s.Quote() != nil {
		t.Fatal("a stale fee must never survive a failed recalculation")
	}
	status, rerr := s.FeeStatus()
	if status != domain.StatusFailed || rerr.Kind != domain.ErrorNetwork {
		t.Fatalf("unexpected status: %s %+v", status, rerr)
	}
}

// gatedGateway blocks the first district fetch until released, so a second
// selection can land while the first is still in flight.
type gatedGateway struct {
	stubGateway
	gate chan struct{}
}

func (g *gatedGateway) Districts(_ context.Context, cityCode string) ([]domain.District, error) {
	if cityCode == "HCM" {
		<-g.gate
		return []domain.District{{Code: "D-old", CityCode: cityCode}}, nil
	}
	return []domain.District{{Code: "D-new", CityCode: cityCode}}, nil
}

func TestStaleDistrictResponseIgnoredAfterCityChange(t *testing.T) {
	gw := &gatedGateway{gate: make(chan struct{})}
	s := New(gw)

	done := make(chan error, 1)
	go func() { done <- s.SelectCity(context.Background(), "HCM") }()
	for {
		if city, _, _ := s.Selection(); city == "HCM" {
			break
		}
		time.Sleep(time.Millisecond)
	}

	// The second selection settles first; the gated response for HCM must
	// not be attributed to HN.
	if err := s.SelectCity(context.Background(), "HN"); err != nil {
		t.Fatalf("select city: %v", err)
	}
	close(gw.gate)
	if err := <-done; err != nil {
		t.Fatalf("select city: %v", err)
	}

	districts := s.Districts()
	if len(districts) != 1 || districts[0].Code != "D-new" {
		t.Fatalf("superseded response must be dropped, got %+v", districts)
	}
}
