package domain

import "testing"

func TestValidCouponCode(t *testing.T) {
	valid := []string{"DISC10", "disc10", "AbCd99", "BOGO01"}
	for _, code := range valid {
		if !ValidCouponCode(code) {
			t.Errorf("ValidCouponCode(%q) = false, want true", code)
		}
	}

	invalid := []string{"", "DISC1", "DISC100", "D1SC10", "DISCXX", "DISC 10", "12DISC"}
	for _, code := range invalid {
		if ValidCouponCode(code) {
			t.Errorf("ValidCouponCode(%q) = true, want false", code)
		}
	}
}
