package rest

import "context"

// Mock is a test double for the peer-service client. Unset functions fall
// back to permissive defaults so tests only stub what they exercise.
type Mock struct {
	VerifyStoreIDFunc func(ctx context.Context, id int) (bool, error)
	AllergiesFunc     func(ctx context.Context, token string) ([]int64, error)
}

func (m *Mock) VerifyStoreID(ctx context.Context, id int) (bool, error) {
	if m.VerifyStoreIDFunc != nil {
		return m.VerifyStoreIDFunc(ctx, id)
	}
	return true, nil
}

func (m *Mock) Allergies(ctx context.Context, token string) ([]int64, error) {
	if m.AllergiesFunc != nil {
		return m.AllergiesFunc(ctx, token)
	}
	return nil, nil
}
