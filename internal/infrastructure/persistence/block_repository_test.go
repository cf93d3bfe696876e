package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wims/backend/internal/domain/shared"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDB creates a GORM connection backed by sqlmock
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestGormBlockRepository_FindByIDForTenant(t *testing.T) {
	t.Run("finds existing block", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormBlockRepository(db)

		blockID := uuid.New()
		tenantID := uuid.New()
		warehouseID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "tenant_id", "warehouse_id", "code", "capacity", "available"}).
			AddRow(blockID, tenantID, warehouseID, "A1", int64(100), int64(40))

		mock.ExpectQuery(`SELECT \* FROM "blocks" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, blockID, 1).
			WillReturnRows(rows)

		block, err := repo.FindByIDForTenant(context.Background(), tenantID, blockID)

		assert.NoError(t, err)
		require.NotNil(t, block)
		assert.Equal(t, "A1", block.Code)
		assert.Equal(t, int64(100), block.Capacity)
		assert.Equal(t, int64(40), block.Available)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing block to ErrNotFound", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormBlockRepository(db)

		blockID := uuid.New()
		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "blocks" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, blockID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		block, err := repo.FindByIDForTenant(context.Background(), tenantID, blockID)

		assert.Nil(t, block)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormBlockRepository_FindByIDForUpdate(t *testing.T) {
	t.Run("acquires a row lock", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormBlockRepository(db)

		blockID := uuid.New()
		tenantID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "tenant_id", "warehouse_id", "code", "capacity", "available"}).
			AddRow(blockID, tenantID, uuid.New(), "B2", int64(50), int64(50))

		mock.ExpectQuery(`SELECT \* FROM "blocks" WHERE tenant_id = \$1 AND id = \$2 .* FOR UPDATE`).
			WithArgs(tenantID, blockID, 1).
			WillReturnRows(rows)

		block, err := repo.FindByIDForUpdate(context.Background(), tenantID, blockID)

		assert.NoError(t, err)
		require.NotNil(t, block)
		assert.Equal(t, "B2", block.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormBlockRepository_FindByWarehouseForUpdate(t *testing.T) {
	t.Run("locks blocks in code order", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormBlockRepository(db)

		tenantID := uuid.New()
		warehouseID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "tenant_id", "warehouse_id", "code", "capacity", "available"}).
			AddRow(uuid.New(), tenantID, warehouseID, "A1", int64(10), int64(5)).
			AddRow(uuid.New(), tenantID, warehouseID, "A2", int64(20), int64(20))

		mock.ExpectQuery(`SELECT \* FROM "blocks" WHERE tenant_id = \$1 AND warehouse_id = \$2 ORDER BY code ASC FOR UPDATE`).
			WithArgs(tenantID, warehouseID).
			WillReturnRows(rows)

		blocks, err := repo.FindByWarehouseForUpdate(context.Background(), tenantID, warehouseID)

		assert.NoError(t, err)
		require.Len(t, blocks, 2)
		assert.Equal(t, "A1", blocks[0].Code)
		assert.Equal(t, "A2", blocks[1].Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInventoryRepository_SumQuantityByBlock(t *testing.T) {
	t.Run("sums quantity held inside a block", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormInventoryRepository(db)

		tenantID := uuid.New()
		blockID := uuid.New()

		mock.ExpectQuery(`SELECT COALESCE\(SUM\(quantity\), 0\) as total FROM "inventories" WHERE tenant_id = \$1 AND block_id = \$2`).
			WithArgs(tenantID, blockID).
			WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(int64(37)))

		total, err := repo.SumQuantityByBlock(context.Background(), tenantID, blockID)

		assert.NoError(t, err)
		assert.Equal(t, int64(37), total)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
