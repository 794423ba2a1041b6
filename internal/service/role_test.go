package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/roktoseba/ui-gateway/internal/domain/auth"
	mockauth "github.com/roktoseba/ui-gateway/internal/mocks/auth"
)

func newRoleResolver(t *testing.T, reader *mockauth.FakeRoleReader, metrics Metrics) *RoleResolver {
	t.Helper()
	resolver := NewRoleResolver(RoleResolverOptions{Reader: reader, Metrics: metrics})
	t.Cleanup(resolver.Close)
	return resolver
}

func TestRoleResolver_NoEmailNoCall(t *testing.T) {
	reader := &mockauth.FakeRoleReader{
		Record: domainauth.UserRecord{Role: string(domainauth.RoleAdmin)},
	}
	resolver := newRoleResolver(t, reader, nil)

	assert.Nil(t, resolver.Role(context.Background()))
	assert.Zero(t, reader.Calls())
}

func TestRoleResolver_ResolvesAndCaches(t *testing.T) {
	reader := &mockauth.FakeRoleReader{
		Record: domainauth.UserRecord{Role: string(domainauth.RoleAdmin)},
	}
	resolver := newRoleResolver(t, reader, nil)
	resolver.SetEmail("admin@example.com")

	role := resolver.Role(context.Background())
	require.NotNil(t, role)
	assert.Equal(t, domainauth.RoleAdmin, *role)

	// A second read is served from the cache.
	role = resolver.Role(context.Background())
	require.NotNil(t, role)
	assert.Equal(t, domainauth.RoleAdmin, *role)
	assert.Equal(t, 1, reader.Calls())
}

func TestRoleResolver_UnknownRoleCoercedToDonor(t *testing.T) {
	metrics := newCountingMetrics()
	reader := &mockauth.FakeRoleReader{
		Record: domainauth.UserRecord{Role: "superuser"},
	}
	resolver := newRoleResolver(t, reader, metrics)
	resolver.SetEmail("donor@example.com")

	role := resolver.Role(context.Background())
	require.NotNil(t, role)
	assert.Equal(t, domainauth.RoleDonor, *role)
	assert.Equal(t, 1, metrics.Count("role.fetch.coerced"))
}

func TestRoleResolver_FetchFailureFallsBackUncached(t *testing.T) {
	metrics := newCountingMetrics()
	reader := &mockauth.FakeRoleReader{
		Record: domainauth.UserRecord{Role: string(domainauth.RoleVolunteer)},
		Err:    assert.AnError,
	}
	resolver := newRoleResolver(t, reader, metrics)
	resolver.SetEmail("volunteer@example.com")

	role := resolver.Role(context.Background())
	require.NotNil(t, role)
	assert.Equal(t, domainauth.RoleDonor, *role)
	assert.Equal(t, 1, metrics.Count("role.fetch.fallback"))

	// The fallback is not cached; once the backend recovers the next read
	// picks up the real role.
	reader.Err = nil
	role = resolver.Role(context.Background())
	require.NotNil(t, role)
	assert.Equal(t, domainauth.RoleVolunteer, *role)
	assert.Equal(t, 2, reader.Calls())
}

func TestRoleResolver_SameEmailKeepsCache(t *testing.T) {
	reader := &mockauth.FakeRoleReader{
		Record: domainauth.UserRecord{Role: string(domainauth.RoleVolunteer)},
	}
	resolver := newRoleResolver(t, reader, nil)
	resolver.SetEmail("volunteer@example.com")

	require.NotNil(t, resolver.Role(context.Background()))

	// Re-applying the identical email must not invalidate the cache.
	resolver.SetEmail("volunteer@example.com")
	require.NotNil(t, resolver.Role(context.Background()))
	assert.Equal(t, 1, reader.Calls())
}

func TestRoleResolver_EmailChangeDropsCache(t *testing.T) {
	reader := &mockauth.FakeRoleReader{
		Record: domainauth.UserRecord{Role: string(domainauth.RoleAdmin)},
	}
	resolver := newRoleResolver(t, reader, nil)
	resolver.SetEmail("first@example.com")
	require.NotNil(t, resolver.Role(context.Background()))

	resolver.SetEmail("second@example.com")
	role := resolver.Role(context.Background())
	require.NotNil(t, role)
	assert.Equal(t, 2, reader.Calls())

	// Clearing the email drops the role entirely.
	resolver.SetEmail("")
	assert.Nil(t, resolver.Role(context.Background()))
	assert.Equal(t, 2, reader.Calls())
}

func TestRoleResolver_ConcurrentReadsCoalesce(t *testing.T) {
	reader := &mockauth.FakeRoleReader{
		Record: domainauth.UserRecord{Role: string(domainauth.RoleAdmin)},
		Delay:  30 * time.Millisecond,
	}
	resolver := newRoleResolver(t, reader, nil)
	resolver.SetEmail("admin@example.com")

	results := make(chan *domainauth.Role, 4)
	for i := 0; i < 4; i++ {
		go func() {
			results <- resolver.Role(context.Background())
		}()
	}
	for i := 0; i < 4; i++ {
		role := <-results
		require.NotNil(t, role)
		assert.Equal(t, domainauth.RoleAdmin, *role)
	}
	assert.Equal(t, 1, reader.Calls())
}

func TestRoleResolver_CallerCancellationFallsBack(t *testing.T) {
	reader := &mockauth.FakeRoleReader{
		Record: domainauth.UserRecord{Role: string(domainauth.RoleAdmin)},
		Delay:  200 * time.Millisecond,
	}
	resolver := newRoleResolver(t, reader, nil)
	resolver.SetEmail("admin@example.com")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	// An impatient caller gets the fail-open answer instead of blocking.
	role := resolver.Role(ctx)
	require.NotNil(t, role)
	assert.Equal(t, domainauth.RoleDonor, *role)
}
