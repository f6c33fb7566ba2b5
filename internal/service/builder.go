package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/cloud-wave-best-zizon/till-service/internal/domain"
	"github.com/spf13/cast"
)

// ServiceLookup resolves an office service definition by name.
type ServiceLookup func(name string) (domain.ServiceDefinition, bool)

// BuildSale validates a sale and returns the ledger draft with the stock
// movement it implies. ID and timestamp are assigned by the ledger.
func BuildSale(product domain.Product, quantity int, performer string) (domain.Transaction, domain.StockDeduction, error) {
	deduction, err := ApplySale(product, quantity)
	if err != nil {
		return domain.Transaction{}, domain.StockDeduction{}, err
	}
	amount, err := lineAmount(product.Price, quantity)
	if err != nil {
		return domain.Transaction{}, domain.StockDeduction{}, err
	}

	tx := domain.Transaction{
		Type:          domain.TransactionSale,
		Description:   fmt.Sprintf("%s x%d", product.Name, quantity),
		Amount:        amount,
		Flow:          domain.FlowIn,
		Quantity:      quantity,
		RelatedID:     product.ID,
		PerformerName: performer,
	}
	return tx, deduction, nil
}

// BuildService turns a money, bill, office or other service request into a
// ledger draft. Every path ends in the same positive-amount gate.
func BuildService(req domain.ServiceRequest, lookup ServiceLookup, performer string) (domain.Transaction, error) {
	operator := strings.TrimSpace(req.Operator)
	tx := domain.Transaction{
		Flow:          domain.FlowIn,
		Operator:      operator,
		PerformerName: performer,
	}

	var amount int64
	var err error

	switch req.Kind {
	case domain.ServiceMoney:
		if operator == "" {
			return domain.Transaction{}, domain.ErrMissingOperator
		}
		flow := req.Flow
		if flow == "" {
			flow = domain.FlowIn
		}
		if !flow.Valid() {
			return domain.Transaction{}, fmt.Errorf("flow %q: %w", flow, domain.ErrUnknownCategory)
		}
		tx.Type = domain.TransactionMoneyTransfer
		tx.Flow = flow
		tx.Description = fmt.Sprintf("%s - %s", operator, transferLabel(flow))
		amount, err = ParseAmount(req.Amount)

	case domain.ServiceBills:
		if operator == "" {
			return domain.Transaction{}, domain.ErrMissingOperator
		}
		tx.Type = domain.TransactionBillPayment
		tx.Description = "Paiement " + operator
		amount, err = ParseAmount(req.Amount)

	case domain.ServiceOffice:
		if operator == "" {
			return domain.Transaction{}, domain.ErrMissingOperator
		}
		tx.Type = domain.TransactionServiceOffice
		if def, ok := lookup(operator); ok {
			if req.Quantity < 1 {
				return domain.Transaction{}, domain.ErrInvalidQuantity
			}
			if amount, err = lineAmount(def.Price, req.Quantity); err != nil {
				return domain.Transaction{}, err
			}
			tx.Description = fmt.Sprintf("%s x%d", def.Name, req.Quantity)
		} else {
			tx.Description = operator
			amount, err = ParseAmount(req.Amount)
		}

	case domain.ServiceOther:
		tx.Type = domain.TransactionServiceOther
		tx.Description = strings.TrimSpace(req.Details)
		if tx.Description == "" {
			tx.Description = "Service"
		}
		amount, err = ParseAmount(req.Amount)

	default:
		return domain.Transaction{}, fmt.Errorf("%q: %w", req.Kind, domain.ErrUnknownCategory)
	}

	if err != nil {
		return domain.Transaction{}, err
	}
	if amount <= 0 {
		return domain.Transaction{}, domain.ErrInvalidAmount
	}
	tx.Amount = amount
	return tx, nil
}

// ParseAmount reads a decimal integer amount as typed on the till. Leading
// zeros are decimal, not octal.
func ParseAmount(raw string) (int64, error) {
	s := strings.TrimPrefix(strings.TrimSpace(raw), "+")
	s = strings.TrimLeft(s, "0")
	if s == "" || strings.ContainsAny(s, "xXoObB_") {
		return 0, domain.ErrInvalidAmount
	}

	amount, err := cast.ToInt64E(s)
	if err != nil || amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	return amount, nil
}

func transferLabel(flow domain.Flow) string {
	if flow == domain.FlowOut {
		return "Retrait"
	}
	return "Dépôt"
}

// lineAmount is price * quantity, rejecting negative prices and products
// that do not fit in an int64.
func lineAmount(price int64, quantity int) (int64, error) {
	if price < 0 || (quantity > 0 && price > math.MaxInt64/int64(quantity)) {
		return 0, domain.ErrInvalidAmount
	}
	return price * int64(quantity), nil
}
