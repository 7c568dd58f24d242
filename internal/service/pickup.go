package service

import (
	"time"

	"github.com/Erhan1706/microservice-ordering-system/internal/domain"
)

// PickupTimeValidator validates requested pickup times against the wall
// clock. The clock is injectable so tests can pin "now".
type PickupTimeValidator struct {
	now func() time.Time
}

// NewPickupTimeValidator creates a validator; a nil clock uses time.Now.
func NewPickupTimeValidator(now func() time.Time) *PickupTimeValidator {
	if now == nil {
		now = time.Now
	}
	return &PickupTimeValidator{now: now}
}

// Validate computes the pickup timestamp for today or tomorrow at the given
// hour and minute. The candidate may not lie strictly before now, and a
// pickup time is meaningless for a basket without pizzas.
func (v *PickupTimeValidator) Validate(basket *domain.Basket, tomorrow bool, hour, minute int) (time.Time, error) {
	if basket == nil || len(basket.Pizzas) == 0 {
		return time.Time{}, ErrEmptyBasket
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return time.Time{}, domain.Invalid("basket.selectTime", "hour must be 0-23 and minute 0-59")
	}

	now := v.now()
	year, month, day := now.Date()
	if tomorrow {
		day++
	}
	candidate := time.Date(year, month, day, hour, minute, 0, 0, now.Location())
	if candidate.Before(now) {
		return time.Time{}, ErrPastPickupTime
	}
	return candidate, nil
}
