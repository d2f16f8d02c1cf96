package product

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrProductIsNotConstructed is returned when a Product instance was not
	// created through the NewProduct or RestoreProduct factory methods.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

	// ErrInsufficientStock is returned when a decrement would take stock below
	// zero. Under the strict policy the whole operation is rejected and no
	// stock is touched.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrNameIsRequired is returned when creating a product without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
)

// Product owns the per-product stock count. Stock is mutated exclusively by
// the inventory ledger, which pairs every change with exactly one Movement in
// the same transaction. initialStock is kept so the ledger conservation
// invariant (sum of movement deltas == stock - initialStock) stays checkable.
type Product struct {
	id           kernel.UUID
	name         string
	sku          string
	stock        int
	initialStock int
	price        decimal.Decimal
	cost         decimal.Decimal

	guard guard.ConstructorGuard
}

// NewProduct creates a product with its opening stock level.
func NewProduct(id kernel.UUID, name, sku string, initialStock int, price, cost decimal.Decimal) (*Product, error) {
	p := &Product{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setInitialStock(initialStock),
		p.setPrice(price),
		p.setCost(cost),
	); err != nil {
		return nil, err
	}

	p.sku = sku
	p.stock = initialStock
	return p, nil
}

// RestoreProduct reconstructs a product from persistent storage with its
// current stock level.
func RestoreProduct(id kernel.UUID, name, sku string, stock, initialStock int, price, cost decimal.Decimal) (*Product, error) {
	p, err := NewProduct(id, name, sku, initialStock, price, cost)
	if err != nil {
		return nil, err
	}

	p.stock = stock
	return p, nil
}

// Validate ensures the product was created through a factory method.
func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// Name returns the product name.
func (p *Product) Name() string {
	return p.name
}

// SKU returns the stock keeping unit code, empty when not set.
func (p *Product) SKU() string {
	return p.sku
}

// Stock returns the current stock count.
func (p *Product) Stock() int {
	return p.stock
}

// InitialStock returns the stock level at product creation.
func (p *Product) InitialStock() int {
	return p.initialStock
}

// Price returns the selling price.
func (p *Product) Price() decimal.Decimal {
	return p.price
}

// Cost returns the acquisition cost.
func (p *Product) Cost() decimal.Decimal {
	return p.cost
}

// CanDecrement reports whether qty units can be removed without going negative.
func (p *Product) CanDecrement(qty int) bool {
	return qty > 0 && p.stock-qty >= 0
}

// Decrement removes qty units of stock under the strict policy: a decrement
// below zero is rejected with ErrInsufficientStock and nothing changes.
// Only the inventory ledger calls this.
func (p *Product) Decrement(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidError("quantity must be greater than 0")
	}

	if p.stock-qty < 0 {
		return fmt.Errorf("%w: product %s has %d, requested %d", ErrInsufficientStock, p.id, p.stock, qty)
	}

	p.stock -= qty
	return nil
}

// Increment adds qty units of stock. Only the inventory ledger calls this.
func (p *Product) Increment(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidError("quantity must be greater than 0")
	}

	p.stock += qty
	return nil
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	p.name = name
	return nil
}

func (p *Product) setInitialStock(initialStock int) error {
	if initialStock < 0 {
		return errs.NewValueIsInvalidError("initial stock must not be negative")
	}
	p.initialStock = initialStock
	return nil
}

func (p *Product) setPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidError("price must not be negative")
	}
	p.price = price
	return nil
}

func (p *Product) setCost(cost decimal.Decimal) error {
	if cost.IsNegative() {
		return errs.NewValueIsInvalidError("cost must not be negative")
	}
	p.cost = cost
	return nil
}
