package postgres_test

import (
	"context"
	"os"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/ventas-pos/internal/domain"
	"github.com/jhoicas/ventas-pos/internal/domain/entity"
	"github.com/jhoicas/ventas-pos/internal/domain/repository"
	"github.com/jhoicas/ventas-pos/internal/infrastructure/postgres"
	"github.com/jhoicas/ventas-pos/pkg/password"
)

// Estos tests necesitan un PostgreSQL real: TEST_DATABASE_URL=postgres://... go test ./...
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	password.Cost = bcrypt.MinCost
	ctx := context.Background()
	pool, err := postgres.NewPoolFromDSN(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.EnsureSchema(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE users, inventario, receipt_sequences`)
	require.NoError(t, err)
	return pool
}

func TestCredentialRepo(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := postgres.NewCredentialRepository(pool)

	for _, u := range []struct {
		name, pass string
		admin      bool
	}{{"jefe", "admin123", true}, {"cajero", "caja", false}} {
		h, err := password.Hash(u.pass)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, &entity.User{Name: u.name, PasswordHash: h, IsAdmin: u.admin, CreatedAt: time.Now()}))
	}

	err := repo.Create(ctx, &entity.User{Name: "jefe", PasswordHash: "x", CreatedAt: time.Now()})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	u, err := repo.FindByUsername(ctx, "jefe")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.True(t, u.IsAdmin)

	u, err = repo.FindByUsername(ctx, "nadie")
	require.NoError(t, err)
	assert.Nil(t, u)

	n, err := repo.CountAdminsWithPassword(ctx, "admin123")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = repo.CountAdminsWithPassword(ctx, "caja")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestInventoryRepoYTxRunner(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := postgres.NewInventoryRepository(pool)

	require.NoError(t, repo.Insert(ctx, &entity.InventoryItem{ID: 2, Name: "Leche", UnitPrice: decimal.RequireFromString("3.10"), Quantity: 4}))
	require.NoError(t, repo.Insert(ctx, &entity.InventoryItem{ID: 1, Name: "Arroz", UnitPrice: decimal.RequireFromString("2.50"), Quantity: 10}))
	assert.ErrorIs(t, repo.Insert(ctx, &entity.InventoryItem{ID: 1, Name: "Otro"}), domain.ErrDuplicate)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(1), list[0].ID)
	assert.True(t, list[0].UnitPrice.Equal(decimal.RequireFromString("2.50")))

	it, err := repo.GetByName(ctx, "leche")
	require.NoError(t, err)
	require.NotNil(t, it)
	assert.Equal(t, int64(2), it.ID)

	assert.ErrorIs(t, repo.Update(ctx, &entity.InventoryItem{ID: 99, Name: "x"}), domain.ErrItemNotFound)

	tx := postgres.NewTxRunner(pool)
	err = tx.Run(ctx, func(r repository.InventoryRepository) error {
		item, err := r.GetByIDForUpdate(ctx, 1)
		if err != nil {
			return err
		}
		return r.UpdateQuantity(ctx, item.ID, item.Quantity-3)
	})
	require.NoError(t, err)

	err = tx.Run(ctx, func(r repository.InventoryRepository) error {
		return r.UpdateQuantity(ctx, 1, -1)
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	it, err = repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(7), it.Quantity)
}

func TestReceiptSequenceRepo_ConcurrenteSinDuplicados(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := postgres.NewReceiptSequenceRepository(pool)

	const n = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	var got []int
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seq, err := repo.Next(ctx, "20240101", 1)
			assert.NoError(t, err)
			mu.Lock()
			got = append(got, seq)
			mu.Unlock()
		}()
	}
	wg.Wait()
	sort.Ints(got)
	for i, s := range got {
		assert.Equal(t, i+1, s)
	}

	seq, err := repo.Next(ctx, "20240101", 50)
	require.NoError(t, err)
	assert.Equal(t, 50, seq, "respeta el piso de los archivos existentes")

	seq, err = repo.Next(ctx, "20240102", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, seq, "cada fecha empieza en 1")
}
