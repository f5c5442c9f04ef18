package zaincash

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/netwave-iq/netwave-backend/pkg/enums"
	pkgerrors "github.com/netwave-iq/netwave-backend/pkg/errors"
)

var filsPerDinar = decimal.NewFromInt(1000)

// CreateTransactionParams describes a payment intent. Amount is in Iraqi
// dinars; the fils conversion happens inside the client.
type CreateTransactionParams struct {
	Amount      decimal.Decimal
	ServiceType string
	OrderID     string
	RedirectURL string
	Lang        enums.Locale
}

func (p CreateTransactionParams) validate() error {
	if p.Amount.Sign() <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "payment amount must be positive")
	}
	if strings.TrimSpace(p.OrderID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	if strings.TrimSpace(p.RedirectURL) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "redirect url is required")
	}
	if strings.TrimSpace(p.ServiceType) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "service type is required")
	}
	return nil
}

// Transaction is the gateway's view of a freshly created payment intent.
type Transaction struct {
	ID     string
	Status enums.TransactionStatus
	URL    string
}

// VerificationResult is the normalized outcome of a transaction lookup.
type VerificationResult struct {
	TransactionID string
	Status        enums.TransactionStatus
	Message       string
}
