package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/lib/pq"
	"gorm.io/gorm"

	appErrors "github.com/unclebandit/customer-service/internal/errors"
	"github.com/unclebandit/customer-service/internal/model"
)

// CustomerRepositoryInterface defines methods used by service
type CustomerRepositoryInterface interface {
	ListAll(ctx context.Context) ([]model.Customer, error)
}

// customerRecord maps the Customer table. Column names are case sensitive.
type customerRecord struct {
	CusID     int64  `gorm:"column:CusID;primaryKey;autoIncrement"`
	FirstName string `gorm:"column:FirstName"`
	LastName  string `gorm:"column:LastName"`
	Address   string `gorm:"column:Address"`
	City      string `gorm:"column:City"`
}

func (customerRecord) TableName() string { return "Customer" }

func (c customerRecord) toModel() model.Customer {
	return model.Customer{
		ID:        c.CusID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Address:   c.Address,
		City:      c.City,
	}
}

// CustomerRepository is the concrete implementation
type CustomerRepository struct {
	DB *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

// ListAll fetches every customer row. No ordering is applied.
func (r *CustomerRepository) ListAll(ctx context.Context) ([]model.Customer, error) {
	var records []customerRecord
	if err := r.DB.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, classifyStoreError(err)
	}

	customers := make([]model.Customer, 0, len(records))
	for _, rec := range records {
		customers = append(customers, rec.toModel())
	}
	return customers, nil
}

// EnsureSchema declares the Customer table from its mapping if it is missing.
func EnsureSchema(db *gorm.DB) error {
	return db.AutoMigrate(&customerRecord{})
}

func classifyStoreError(err error) error {
	if isConnectionError(err) {
		return appErrors.NewStoreUnavailable(err)
	}
	return appErrors.NewStoreError(err)
}

func isConnectionError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// class 08: connection exception
		if pqErr.Code.Class() == "08" {
			return true
		}
		switch pqErr.Code {
		case "57P01", "57P02", "57P03": // admin_shutdown, crash_shutdown, cannot_connect_now
			return true
		}
	}
	return false
}

var _ CustomerRepositoryInterface = (*CustomerRepository)(nil)
