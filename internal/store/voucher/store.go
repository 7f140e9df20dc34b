// Package voucher holds the admin voucher catalog and the single voucher
// applied to the current checkout session. Failures settle into one of two
// channels: a field-keyed validation map for inline form feedback, or a
// general error for toast-style notification. Callers render both from the
// same store without conflating them.
package voucher

import (
	"context"
	"sync"

	"storefront-engine/internal/domain"
	"storefront-engine/internal/gateway"
)

type gatewayAPI interface {
	ListVouchers(ctx context.Context) ([]domain.Voucher, error)
	CreateVoucher(ctx context.Context, in gateway.VoucherInput) (domain.Voucher, error)
	UpdateVoucher(ctx context.Context, code string, in gateway.VoucherInput) (domain.Voucher, error)
	DeleteVoucher(ctx context.Context, code string) error
	ApplyVoucher(ctx context.Context, code string, orderTotal int64) (domain.AppliedDiscount, error)
}

// Store is the voucher state store.
type Store struct {
	mu      sync.Mutex
	gw      gatewayAPI
	catalog []domain.Voucher
	applied *domain.AppliedDiscount
	status  domain.Status
	fields  map[string][]string
	general *domain.RemoteError
}

func New(gw gatewayAPI) *Store {
	return &Store{gw: gw, status: domain.StatusIdle}
}

// Catalog returns a snapshot of the voucher catalog, newest first.
func (s *Store) Catalog() []domain.Voucher {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Voucher(nil), s.catalog...)
}

// Applied returns the currently applied discount, or nil.
func (s *Store) Applied() *domain.AppliedDiscount {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.applied == nil {
		return nil
	}
	applied := *s.applied
	return &applied
}

// Status returns the shared operation status.
func (s *Store) Status() domain.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// FieldErrors returns the validation channel.
func (s *Store) FieldErrors() map[string][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string][]string, len(s.fields))
	for k, v := range s.fields {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// GeneralError returns the general channel, or nil.
func (s *Store) GeneralError() *domain.RemoteError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.general
}

// ListAll replaces the catalog with the platform's list.
func (s *Store) ListAll(ctx context.Context) error {
	s.begin()
	vouchers, err := s.gw.ListVouchers(ctx)
	if err != nil {
		return s.fail(err)
	}
	s.mu.Lock()
	s.catalog = append([]domain.Voucher(nil), vouchers...)
	s.status = domain.StatusSucceeded
	s.mu.Unlock()
	return nil
}

// Create adds a voucher and prepends it, keeping newest-first display order.
func (s *Store) Create(ctx context.Context, in gateway.VoucherInput) (domain.Voucher, error) {
	s.begin()
	created, err := s.gw.CreateVoucher(ctx, in)
	if err != nil {
		return domain.Voucher{}, s.fail(err)
	}
	s.mu.Lock()
	s.catalog = append([]domain.Voucher{created}, s.catalog...)
	s.status = domain.StatusSucceeded
	s.mu.Unlock()
	return created, nil
}

// Update replaces the voucher in place by code.
func (s *Store) Update(ctx context.Context, code string, in gateway.VoucherInput) (domain.Voucher, error) {
	s.begin()
	updated, err := s.gw.UpdateVoucher(ctx, code, in)
	if err != nil {
		return domain.Voucher{}, s.fail(err)
	}
	s.mu.Lock()
	for i := range s.catalog {
		if s.catalog[i].Code == code {
			s.catalog[i] = updated
			break
		}
	}
	s.status = domain.StatusSucceeded
	s.mu.Unlock()
	return updated, nil
}

// Delete removes the voucher by code.
func (s *Store) Delete(ctx context.Context, code string) error {
	s.begin()
	if err := s.gw.DeleteVoucher(ctx, code); err != nil {
		return s.fail(err)
	}
	s.mu.Lock()
	for i := range s.catalog {
		if s.catalog[i].Code == code {
			s.catalog = append(s.catalog[:i], s.catalog[i+1:]...)
			break
		}
	}
	s.status = domain.StatusSucceeded
	s.mu.Unlock()
	return nil
}

// Apply resolves a code against the given order total. The platform owns the
// rules: a below-minimum total comes back on the validation channel, an
// unknown, expired or exhausted code on the general channel. Exactly one
// voucher is applied at a time; a new code replaces the previous one.
func (s *Store) Apply(ctx context.Context, code string, orderTotal int64) (domain.AppliedDiscount, error) {
	s.begin()
	applied, err := s.gw.ApplyVoucher(ctx, code, orderTotal)
	if err != nil {
		return domain.AppliedDiscount{}, s.fail(err)
	}
	s.mu.Lock()
	s.applied = &applied
	s.status = domain.StatusSucceeded
	s.mu.Unlock()
	return applied, nil
}

// ClearApplied drops the applied voucher (e.g. when the selection changes and
// the discount no longer matches the total it was resolved against).
func (s *Store) ClearApplied() {
	s.mu.Lock()
	s.applied = nil
	s.mu.Unlock()
}

// ClearErrors resets both channels and the status to idle. Invoke before
// opening a create/edit form so a previous operation's field errors do not
// leak into a new form instance.
func (s *Store) ClearErrors() {
	s.mu.Lock()
	s.fields = nil
	s.general = nil
	s.status = domain.StatusIdle
	s.mu.Unlock()
}

func (s *Store) begin() {
	s.mu.Lock()
	s.status = domain.StatusLoading
	s.mu.Unlock()
}

// fail routes the error to its channel. The first rejection since the last
// ClearErrors wins; later ones keep the recorded channels intact.
func (s *Store) fail(err error) error {
	rerr := domain.AsRemote(err)
	s.mu.Lock()
	if s.status != domain.StatusFailed {
		s.status = domain.StatusFailed
		if rerr.Kind == domain.ErrorValidation {
			s.fields = rerr.Fields
			s.general = nil
		} else {
			s.general = rerr
			s.fields = nil
		}
	}
	s.mu.Unlock()
	return rerr
}
