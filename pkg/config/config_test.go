package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
	assert.Equal(t, MultiVendorReject, cfg.MultiVendorPolicy)
	assert.False(t, cfg.DecrementStock)
	assert.Equal(t, "admin@admin", cfg.AdminEmail)
	assert.Equal(t, int64(86400), cfg.JWTExpiry)
	assert.Equal(t, uint64(3), cfg.StoreRetryAttempts)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("CHECKOUT_MULTI_VENDOR", "SPLIT")
	t.Setenv("CHECKOUT_DECREMENT_STOCK", "true")
	t.Setenv("ENVIRONMENT", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
	assert.Equal(t, MultiVendorSplit, cfg.MultiVendorPolicy)
	assert.True(t, cfg.DecrementStock)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadRejectsFirestoreWithoutProject(t *testing.T) {
	t.Setenv("STORE_DRIVER", "firestore")
	t.Setenv("FIREBASE_PROJECT_ID", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsUnknownPolicy(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("CHECKOUT_MULTI_VENDOR", "merge")

	_, err := Load()
	assert.Error(t, err)
}

func setFirestoreEnv(t *testing.T) {
	t.Helper()
	t.Setenv("STORE_DRIVER", "firestore")
	t.Setenv("FIREBASE_PROJECT_ID", "storefront-test")
	t.Setenv("JWT_SECRET", "a-real-secret")
	t.Setenv("ADMIN_PASSWORD", "s3cret-admin")
}

func TestLoadFirestoreWithCredentials(t *testing.T) {
	setFirestoreEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreDriverFirestore, cfg.StoreDriver)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoadFirestoreRejectsDefaultJWTSecret(t *testing.T) {
	setFirestoreEnv(t)
	t.Setenv("JWT_SECRET", "your-secret-key")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadFirestoreRejectsDefaultAdminPassword(t *testing.T) {
	setFirestoreEnv(t)
	t.Setenv("ADMIN_PASSWORD", "admin")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_PASSWORD")
}

func TestLoadFirestoreOnlyProjectSetIsRejected(t *testing.T) {
	t.Setenv("STORE_DRIVER", "firestore")
	t.Setenv("FIREBASE_PROJECT_ID", "storefront-test")
	t.Setenv("JWT_SECRET", "your-secret-key")
	t.Setenv("ADMIN_PASSWORD", "admin")

	_, err := Load()
	assert.Error(t, err)
}
