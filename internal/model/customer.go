// internal/model/customer.go
package model

// Customer is one stored customer record as it is served over HTTP.
// Column mapping lives in the repository package.
type Customer struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	City      string `json:"city"`
}
