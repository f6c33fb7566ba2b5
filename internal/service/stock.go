package service

import "github.com/cloud-wave-best-zizon/till-service/internal/domain"

// ApplySale computes the stock left after selling quantity units. It never
// mutates the product; the caller writes NewStock back together with the
// ledger append.
func ApplySale(product domain.Product, quantity int) (domain.StockDeduction, error) {
	if quantity < 1 {
		return domain.StockDeduction{}, domain.ErrInvalidQuantity
	}
	if product.Stock < quantity {
		return domain.StockDeduction{}, &domain.InsufficientStockError{
			ProductID: product.ID,
			Available: product.Stock,
			Requested: quantity,
		}
	}

	return domain.StockDeduction{
		ProductID:     product.ID,
		PreviousStock: product.Stock,
		NewStock:      product.Stock - quantity,
		Deducted:      quantity,
	}, nil
}
