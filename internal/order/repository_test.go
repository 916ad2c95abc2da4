package order

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrder() *Order {
	return &Order{
		Email:      "buyer@example.com",
		TotalCents: 10500,
		Status:     StatusPending,
		Items: []OrderItem{
			{ProductID: teeID, Quantity: 2, PriceCents: 2500},
			{ProductID: hoodieID, Quantity: 1, PriceCents: 5500},
		},
	}
}

func TestRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		created := time.Now()
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO orders \(id, email, total_cents, status\)\s+VALUES \(\$1, \$2, \$3, \$4\)\s+RETURNING created_at`).
			WithArgs(sqlmock.AnyArg(), "buyer@example.com", int64(10500), StatusPending).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))
		mock.ExpectExec(`INSERT INTO order_items`).
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), 0, teeID, 2, int64(2500)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO order_items`).
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), 1, hoodieID, 1, int64(5500)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		o := newOrder()
		require.NoError(t, repo.Create(ctx, o))

		assert.NotEmpty(t, o.ID)
		assert.True(t, created.Equal(o.CreatedAt))
		for _, it := range o.Items {
			assert.NotEmpty(t, it.ID)
			assert.Equal(t, o.ID, it.OrderID)
		}
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RollbackOnItemError", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO orders`).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
		mock.ExpectExec(`INSERT INTO order_items`).
			WillReturnError(errors.New("fk violation"))
		mock.ExpectRollback()

		err = repo.Create(ctx, newOrder())
		assert.ErrorContains(t, err, "insert order item")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("BeginError", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin().WillReturnError(errors.New("tx error"))

		err = NewRepository(db).Create(ctx, newOrder())
		assert.ErrorContains(t, err, "begin order tx")
	})
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, email, total_cents, status, created_at\s+FROM orders\s+WHERE id = \$1`).
			WithArgs(ghostID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "total_cents", "status", "created_at"}).
				AddRow(ghostID, "buyer@example.com", 10500, "PENDING", time.Now()))
		// Item ids are random uuids, so cart order comes from the position column.
		mock.ExpectQuery(`SELECT .* FROM order_items oi\s+JOIN products p ON p.id = oi.product_id\s+WHERE oi.order_id = \$1\s+ORDER BY oi.position`).
			WithArgs(ghostID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "product_id", "name", "quantity", "price_cents"}).
				AddRow("f0000000-0000-0000-0000-000000000000", ghostID, teeID, "Classic Tee", 2, 2500).
				AddRow("0a000000-0000-0000-0000-000000000000", ghostID, hoodieID, "Hoodie", 1, 5500))

		o, err := repo.GetByID(ctx, ghostID)
		require.NoError(t, err)
		assert.Equal(t, StatusPending, o.Status)
		require.Len(t, o.Items, 2)
		assert.Equal(t, "Classic Tee", o.Items[0].ProductName)
		assert.Equal(t, "Hoodie", o.Items[1].ProductName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM orders`).
			WithArgs(ghostID).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(ctx, ghostID)
		assert.Equal(t, ErrOrderNotFound, err)
	})
}
