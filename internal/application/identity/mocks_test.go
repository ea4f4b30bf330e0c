package identity

import (
	"time"

	"github.com/kitabayar/backend/internal/domain/identity"
	"github.com/kitabayar/backend/internal/infrastructure/auth"
	"github.com/kitabayar/backend/internal/infrastructure/cache"
	"github.com/kitabayar/backend/internal/infrastructure/config"
	"github.com/kitabayar/backend/tests/testutil"
)

type (
	MockUserRepository     = testutil.MockUserRepository
	MockResidentRepository = testutil.MockResidentRepository
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:                 "test-secret-key-for-kitabayar-unit-tests",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "kitabayar-test",
		MaxRefreshCount:        3,
	}
}

func newBlacklist() *auth.StoreBlacklist {
	return auth.NewStoreBlacklist(cache.NewMemoryStore(0))
}

func mustUser(email, password string, role identity.Role) *identity.User {
	u, err := identity.NewUser(email, password, role)
	if err != nil {
		panic(err)
	}
	return u
}
