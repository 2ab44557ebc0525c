package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/fieldsafe-service/internal/auth"
	"github.com/spec-kit/fieldsafe-service/internal/config"
	"github.com/spec-kit/fieldsafe-service/internal/domain"
)

func testAuthConfig() config.Config {
	return config.Config{Auth: config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 60,
		ExtendedTokenTTLHours: 720,
		BcryptCost:            4,
	}}
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := auth.HashPassword(password, 4)
	require.NoError(t, err)
	return hash
}

func TestLoginStaff(t *testing.T) {
	staff := &domain.StaffMember{
		ID:           "staff-1",
		TenantID:     "T1",
		Name:         "Dana",
		Email:        "dana@example.com",
		PasswordHash: hashFor(t, "hunter2"),
		Role:         domain.StaffRoleElevated,
		Locale:       "en",
		Active:       true,
	}
	svc := NewAuthService(testAuthConfig(), AuthDependencies{
		StaffRepo:       newFakeStaffRepo(staff),
		FieldworkerRepo: newFakeFieldworkerRepo(),
	})

	principal, token, exp, err := svc.LoginStaff(context.Background(), "dana@example.com", "hunter2", false)
	require.NoError(t, err)
	assert.Equal(t, domain.KindStaff, principal.Kind)
	assert.Equal(t, "T1", principal.TenantID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	decoded, err := svc.Codec().Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "staff-1", decoded.ID)
	assert.Equal(t, domain.StaffRoleElevated, decoded.Role)
}

func TestLoginStaffRememberExtendsTTL(t *testing.T) {
	staff := &domain.StaffMember{
		ID:           "staff-1",
		TenantID:     "T1",
		Email:        "dana@example.com",
		PasswordHash: hashFor(t, "hunter2"),
		Role:         domain.StaffRoleMember,
		Active:       true,
	}
	svc := NewAuthService(testAuthConfig(), AuthDependencies{
		StaffRepo:       newFakeStaffRepo(staff),
		FieldworkerRepo: newFakeFieldworkerRepo(),
	})

	_, _, exp, err := svc.LoginStaff(context.Background(), "dana@example.com", "hunter2", true)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(720*time.Hour), exp, 5*time.Second)
}

func TestLoginStaffRejections(t *testing.T) {
	staff := &domain.StaffMember{
		ID:           "staff-1",
		TenantID:     "T1",
		Email:        "dana@example.com",
		PasswordHash: hashFor(t, "hunter2"),
		Role:         domain.StaffRoleMember,
		Active:       true,
	}
	inactive := &domain.StaffMember{
		ID:           "staff-2",
		TenantID:     "T1",
		Email:        "gone@example.com",
		PasswordHash: hashFor(t, "hunter2"),
		Role:         domain.StaffRoleMember,
		Active:       false,
	}
	svc := NewAuthService(testAuthConfig(), AuthDependencies{
		StaffRepo:       newFakeStaffRepo(staff, inactive),
		FieldworkerRepo: newFakeFieldworkerRepo(),
	})

	_, _, _, err := svc.LoginStaff(context.Background(), "dana@example.com", "wrong", false)
	assert.Error(t, err)

	_, _, _, err = svc.LoginStaff(context.Background(), "unknown@example.com", "hunter2", false)
	assert.Error(t, err)

	_, _, _, err = svc.LoginStaff(context.Background(), "gone@example.com", "hunter2", false)
	assert.Error(t, err)
}

func TestLoginFieldworker(t *testing.T) {
	worker := &domain.Fieldworker{
		ID:           "worker-1",
		TenantID:     "T1",
		Name:         "Sam",
		Email:        "sam@example.com",
		PasswordHash: hashFor(t, "hardhat"),
		Role:         domain.FieldRoleCrewLead,
		Locale:       "es",
		Active:       true,
	}
	svc := NewAuthService(testAuthConfig(), AuthDependencies{
		StaffRepo:       newFakeStaffRepo(),
		FieldworkerRepo: newFakeFieldworkerRepo(worker),
	})

	principal, token, _, err := svc.LoginFieldworker(context.Background(), "sam@example.com", "hardhat", false)
	require.NoError(t, err)
	assert.Equal(t, domain.KindFieldworker, principal.Kind)
	assert.Equal(t, domain.FieldRoleCrewLead, principal.Role)
	assert.Equal(t, "es", principal.Locale)

	decoded, err := svc.Codec().Decode(token)
	require.NoError(t, err)
	assert.Equal(t, domain.KindFieldworker, decoded.Kind)
}
