package domain

// LowStockThreshold is the fixed policy: a product is low when stock <= 4.
const LowStockThreshold = 4

type Product struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Stock    int    `json:"stock"`
	Category string `json:"category,omitempty"`
}

func (p Product) IsLowStock() bool {
	return p.Stock <= LowStockThreshold
}

// StockDeduction describes the stock movement produced by one sale.
type StockDeduction struct {
	ProductID     string `json:"product_id"`
	PreviousStock int    `json:"previous_stock"`
	NewStock      int    `json:"new_stock"`
	Deducted      int    `json:"deducted"`
}

type ServiceCategory string

const (
	ServiceCategoryOffice ServiceCategory = "office"
	ServiceCategoryOther  ServiceCategory = "other"
)

// ServiceDefinition is a configurable fixed-price service, selected by name.
type ServiceDefinition struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    int64           `json:"price"`
	Category ServiceCategory `json:"category"`
}
