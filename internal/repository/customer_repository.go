package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	appErrors "github.com/unclebandit/recommend-gateway/internal/errors"
	"github.com/unclebandit/recommend-gateway/internal/model"
)

// CustomerRepositoryInterface defines methods used by service
type CustomerRepositoryInterface interface {
	GetProductCode(ctx context.Context, customerID string) (*model.CustomerRecord, error)
	Ping(ctx context.Context) error
}

// CustomerRepository reads the customer product code table.
type CustomerRepository struct {
	DB *sql.DB
}

const getProductCodeQuery = `
        SELECT product_code
        FROM cm_cust_product_code
        WHERE customer_id = $1
    `

// GetProductCode runs one point query on a dedicated connection, which is
// returned to the pool before the method returns. A missing row is
// ErrCustomerNotFound, never an empty record.
func (r *CustomerRepository) GetProductCode(ctx context.Context, customerID string) (*model.CustomerRecord, error) {
	conn, err := r.DB.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	rec := model.CustomerRecord{CustomerID: customerID}
	if err := conn.QueryRowContext(ctx, getProductCodeQuery, customerID).Scan(&rec.ProductCode); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NewCustomerNotFound(customerID)
		}
		return nil, fmt.Errorf("query product code: %w", err)
	}
	return &rec, nil
}

// Ping checks the record store is reachable.
func (r *CustomerRepository) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}

var _ CustomerRepositoryInterface = (*CustomerRepository)(nil)
