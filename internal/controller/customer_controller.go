// internal/controller/customer_controller.go
package controller

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	appErrors "github.com/unclebandit/customer-service/internal/errors"
	"github.com/unclebandit/customer-service/internal/service"
)

// ResetAccountMessage is the fixed body of /resetAcc. The trailing space is part of it.
const ResetAccountMessage = "Your Account has been Unlocked Successfully "

type CustomerController struct {
	CustomerService *service.CustomerService
	Logger          *zap.Logger
}

func NewCustomerController(svc *service.CustomerService, logger *zap.Logger) *CustomerController {
	return &CustomerController{CustomerService: svc, Logger: logger}
}

// GetCustomers serves GET /getcustomer
func (c *CustomerController) GetCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := c.CustomerService.GetCustomers(r.Context())
	if err != nil {
		c.Logger.Error("failed to list customers",
			zap.String("kind", appErrors.Kind(err)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	c.Logger.Debug("listing customers", zap.Int("count", len(customers)))
	writeJSON(w, http.StatusOK, customers)
}

// ResetAccount serves GET /resetAcc. It only answers with the fixed message.
func (c *CustomerController) ResetAccount(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, ResetAccountMessage)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
