package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/wims/backend/internal/domain/partner"
	"github.com/wims/backend/internal/domain/shared"
)

func setupCustomerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE customers (
			id TEXT PRIMARY KEY,
			tenant_id TEXT NOT NULL,
			created_by TEXT,
			version INTEGER NOT NULL DEFAULT 1,
			name TEXT NOT NULL,
			phone TEXT NOT NULL,
			address TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			UNIQUE(tenant_id, phone)
		)
	`).Error
	require.NoError(t, err)

	return db
}

func mustCustomer(t *testing.T, tenantID uuid.UUID, name, phone string) *partner.Customer {
	t.Helper()
	customer, err := partner.NewCustomer(tenantID, name, phone, "12 Dock Road")
	require.NoError(t, err)
	return customer
}

func TestGormCustomerRepository_SaveAndFind(t *testing.T) {
	db := setupCustomerTestDB(t)
	repo := NewGormCustomerRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	customer := mustCustomer(t, tenantID, "Acme Traders", "5550001")
	require.NoError(t, repo.Save(ctx, customer))

	found, err := repo.FindByIDForTenant(ctx, tenantID, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Traders", found.Name)
	assert.Equal(t, "5550001", found.Phone)
}

func TestGormCustomerRepository_FindByPhone(t *testing.T) {
	db := setupCustomerTestDB(t)
	repo := NewGormCustomerRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	customer := mustCustomer(t, tenantID, "Acme Traders", "5550002")
	require.NoError(t, repo.Save(ctx, customer))

	found, err := repo.FindByPhone(ctx, tenantID, "5550002")
	require.NoError(t, err)
	assert.Equal(t, customer.ID, found.ID)

	_, err = repo.FindByPhone(ctx, tenantID, "no-such-phone")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormCustomerRepository_TenantIsolation(t *testing.T) {
	db := setupCustomerTestDB(t)
	repo := NewGormCustomerRepository(db)
	ctx := context.Background()
	tenantA := uuid.New()
	tenantB := uuid.New()

	customer := mustCustomer(t, tenantA, "Acme Traders", "5550003")
	require.NoError(t, repo.Save(ctx, customer))

	_, err := repo.FindByIDForTenant(ctx, tenantB, customer.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	err = repo.DeleteForTenant(ctx, tenantB, customer.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormCustomerRepository_ListWithSearch(t *testing.T) {
	db := setupCustomerTestDB(t)
	repo := NewGormCustomerRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	require.NoError(t, repo.Save(ctx, mustCustomer(t, tenantID, "Acme Traders", "5550004")))
	require.NoError(t, repo.Save(ctx, mustCustomer(t, tenantID, "Harbor Supply", "5550005")))

	filter := shared.DefaultFilter()
	filter.Search = "Harbor"

	customers, err := repo.FindAllForTenant(ctx, tenantID, filter)
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "Harbor Supply", customers[0].Name)

	count, err := repo.CountForTenant(ctx, tenantID, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGormCustomerRepository_Delete(t *testing.T) {
	db := setupCustomerTestDB(t)
	repo := NewGormCustomerRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	customer := mustCustomer(t, tenantID, "Acme Traders", "5550006")
	require.NoError(t, repo.Save(ctx, customer))
	require.NoError(t, repo.DeleteForTenant(ctx, tenantID, customer.ID))

	_, err := repo.FindByIDForTenant(ctx, tenantID, customer.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
