package domain

import "time"

type TransactionType string

const (
	TransactionSale          TransactionType = "SALE"
	TransactionMoneyTransfer TransactionType = "MONEY_TRANSFER"
	TransactionBillPayment   TransactionType = "BILL_PAYMENT"
	TransactionServiceOffice TransactionType = "SERVICE_OFFICE"
	TransactionServiceOther  TransactionType = "SERVICE_OTHER"
)

// Label returns the till screen name of the type.
func (t TransactionType) Label() string {
	switch t {
	case TransactionSale:
		return "Vente Boutique"
	case TransactionMoneyTransfer:
		return "Mobile Money"
	case TransactionBillPayment:
		return "Paiement Facture"
	case TransactionServiceOffice:
		return "Bureautique"
	case TransactionServiceOther:
		return "Autre Service"
	}
	return string(t)
}

// Flow is the cash direction relative to the till.
type Flow string

const (
	FlowIn  Flow = "IN"
	FlowOut Flow = "OUT"
)

func (f Flow) Valid() bool {
	return f == FlowIn || f == FlowOut
}

// Transaction is immutable once appended to the ledger. Description and
// Amount are frozen at creation time.
type Transaction struct {
	ID            string          `json:"id"`
	Type          TransactionType `json:"type"`
	Description   string          `json:"description"`
	Amount        int64           `json:"amount"`
	Flow          Flow            `json:"flow"`
	Quantity      int             `json:"quantity,omitempty"`
	Timestamp     time.Time       `json:"timestamp"`
	RelatedID     string          `json:"related_id,omitempty"`
	Operator      string          `json:"operator,omitempty"`
	PerformerName string          `json:"performer_name"`
}

// ServiceKind selects a non-sale transaction path.
type ServiceKind string

const (
	ServiceMoney  ServiceKind = "money"
	ServiceBills  ServiceKind = "bills"
	ServiceOffice ServiceKind = "office"
	ServiceOther  ServiceKind = "other"
)

// ServiceRequest carries a pending non-sale action as entered on the till.
// Amount is the raw operator input; it is parsed and validated by the core.
type ServiceRequest struct {
	Kind     ServiceKind
	Operator string
	Amount   string
	Quantity int
	Flow     Flow
	Details  string
}

var (
	MoneyOperators = []string{"Wave", "Orange Money", "Free Money", "Wizall", "Ecobank", "Autre"}
	BillOperators  = []string{"Woyofal", "Senelec", "Seneau", "Canal+", "Rapido", "Autre"}
)
