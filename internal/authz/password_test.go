package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/VanMinhNguyen21/api-web/internal/models"
)

func ptr(v int64) *int64 { return &v }

func TestDecidePasswordChange(t *testing.T) {
	tests := []struct {
		name       string
		caller     Caller
		targetID   *int64
		wantOut    Outcome
		wantTarget int64
	}{
		{
			name:       "admin naming another user gets override",
			caller:     Caller{ID: 1, Role: models.RoleAdmin},
			targetID:   ptr(2),
			wantOut:    AdminOverride,
			wantTarget: 2,
		},
		{
			name:       "admin naming their own id still takes the override branch",
			caller:     Caller{ID: 1, Role: models.RoleAdmin},
			targetID:   ptr(1),
			wantOut:    AdminOverride,
			wantTarget: 1,
		},
		{
			name:       "non-admin naming themselves is self-service",
			caller:     Caller{ID: 2, Role: models.RoleUser},
			targetID:   ptr(2),
			wantOut:    SelfService,
			wantTarget: 2,
		},
		{
			name:     "non-admin naming another user is denied",
			caller:   Caller{ID: 2, Role: models.RoleUser},
			targetID: ptr(3),
			wantOut:  Denied,
		},
		{
			name:     "non-admin with odd role naming another user is denied",
			caller:   Caller{ID: 2, Role: "manager"},
			targetID: ptr(3),
			wantOut:  Denied,
		},
		{
			name:       "no target means self-service on the caller",
			caller:     Caller{ID: 7, Role: models.RoleUser},
			targetID:   nil,
			wantOut:    SelfService,
			wantTarget: 7,
		},
		{
			name:       "admin with no target is plain self-service",
			caller:     Caller{ID: 1, Role: models.RoleAdmin},
			targetID:   nil,
			wantOut:    SelfService,
			wantTarget: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := DecidePasswordChange(tt.caller, tt.targetID)
			assert.Equal(t, tt.wantOut, d.Outcome)
			if tt.wantOut != Denied {
				assert.Equal(t, tt.wantTarget, d.TargetID)
			}
		})
	}
}
