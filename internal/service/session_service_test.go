package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/fieldsafe-service/internal/auth"
	"github.com/spec-kit/fieldsafe-service/internal/domain"
)

func issueToken(t *testing.T, codec *auth.Codec, principal *domain.Principal) string {
	t.Helper()
	token, _, err := codec.Issue(principal, time.Minute)
	require.NoError(t, err)
	return token
}

// An out-of-band locale change must be visible on the next revalidation.
func TestRevalidateOverlaysLocale(t *testing.T) {
	codec := auth.NewCodec("test-secret")
	worker := &domain.Fieldworker{
		ID:       "worker-1",
		TenantID: "T1",
		Name:     "Sam",
		Email:    "sam@example.com",
		Role:     domain.FieldRoleWorker,
		Locale:   "es",
		Active:   true,
	}
	svc := NewSessionService(codec, newFakeStaffRepo(), newFakeFieldworkerRepo(worker), nil, 0, zap.NewNop())

	embedded := worker.Principal()
	embedded.Locale = "en"
	token := issueToken(t, codec, embedded)

	principal, err := svc.Revalidate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "es", principal.Locale)
	assert.Equal(t, "T1", principal.TenantID)
}

// A failed directory lookup falls back to the token-embedded locale instead
// of failing the revalidation.
func TestRevalidateFallsBackOnLookupFailure(t *testing.T) {
	codec := auth.NewCodec("test-secret")
	workers := newFakeFieldworkerRepo()
	workers.failAll = true
	svc := NewSessionService(codec, newFakeStaffRepo(), workers, nil, 0, zap.NewNop())

	token := issueToken(t, codec, &domain.Principal{
		Kind:     domain.KindFieldworker,
		ID:       "worker-gone",
		TenantID: "T1",
		Role:     domain.FieldRoleWorker,
		Locale:   "en",
	})

	principal, err := svc.Revalidate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "en", principal.Locale)
}

// A deleted record behaves the same as a lookup failure.
func TestRevalidateFallsBackOnMissingRecord(t *testing.T) {
	codec := auth.NewCodec("test-secret")
	svc := NewSessionService(codec, newFakeStaffRepo(), newFakeFieldworkerRepo(), nil, 0, zap.NewNop())

	token := issueToken(t, codec, &domain.Principal{
		Kind:     domain.KindStaff,
		ID:       "staff-deleted",
		TenantID: "T1",
		Role:     domain.StaffRoleMember,
		Locale:   "fr",
	})

	principal, err := svc.Revalidate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "fr", principal.Locale)
}

func TestRevalidateRejectsInvalidToken(t *testing.T) {
	svc := NewSessionService(auth.NewCodec("test-secret"), newFakeStaffRepo(), newFakeFieldworkerRepo(), nil, 0, zap.NewNop())

	_, err := svc.Revalidate(context.Background(), "garbage")
	assert.ErrorIs(t, err, auth.ErrInvalidCredential)
}

func TestRevalidateStaffLocale(t *testing.T) {
	codec := auth.NewCodec("test-secret")
	staff := &domain.StaffMember{
		ID:       "staff-1",
		TenantID: "T1",
		Name:     "Dana",
		Email:    "dana@example.com",
		Role:     domain.StaffRoleElevated,
		Locale:   "de",
		Active:   true,
	}
	svc := NewSessionService(codec, newFakeStaffRepo(staff), newFakeFieldworkerRepo(), nil, 0, zap.NewNop())

	embedded := staff.Principal()
	embedded.Locale = "en"
	token := issueToken(t, codec, embedded)

	principal, err := svc.Revalidate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "de", principal.Locale)
	assert.Equal(t, domain.KindStaff, principal.Kind)
}
