package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateProductCommandIsNotConstructed = errors.New(
	"CreateProductCommand must be created via NewCreateProductCommand constructor",
)

// CreateProductCommand represents a request to register a new product with its
// opening stock level. The opening stock becomes the base of the movement
// conservation check.
type CreateProductCommand struct { //nolint:recvcheck //using for validation
	productID    kernel.UUID
	name         string
	sku          string
	initialStock int
	price        decimal.Decimal
	cost         decimal.Decimal

	guard guard.ConstructorGuard
}

// NewCreateProductCommand creates a command to register a new product.
// Name must not be empty, initial stock must not be negative, price and cost
// must not be negative.
func NewCreateProductCommand(
	productID kernel.UUID,
	name, sku string,
	initialStock int,
	price, cost decimal.Decimal,
) (CreateProductCommand, error) {
	cmd := CreateProductCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setProductID(productID),
		cmd.setName(name),
		cmd.setInitialStock(initialStock),
		cmd.setPrice(price),
		cmd.setCost(cost),
	); err != nil {
		return CreateProductCommand{}, err
	}

	cmd.sku = sku
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateProductCommand) Validate() error {
	return c.guard.Validate(ErrCreateProductCommandIsNotConstructed)
}

// ProductID returns the identifier for the new product.
func (c CreateProductCommand) ProductID() kernel.UUID {
	return c.productID
}

// Name returns the product name.
func (c CreateProductCommand) Name() string {
	return c.name
}

// SKU returns the optional stock keeping unit code.
func (c CreateProductCommand) SKU() string {
	return c.sku
}

// InitialStock returns the opening stock level.
func (c CreateProductCommand) InitialStock() int {
	return c.initialStock
}

// Price returns the selling price.
func (c CreateProductCommand) Price() decimal.Decimal {
	return c.price
}

// Cost returns the acquisition cost.
func (c CreateProductCommand) Cost() decimal.Decimal {
	return c.cost
}

func (c *CreateProductCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	c.productID = productID
	return nil
}

func (c *CreateProductCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	c.name = name
	return nil
}

func (c *CreateProductCommand) setInitialStock(initialStock int) error {
	if initialStock < 0 {
		return errs.NewValueIsInvalidError("initial stock must not be negative")
	}

	c.initialStock = initialStock
	return nil
}

func (c *CreateProductCommand) setPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidError("price must not be negative")
	}

	c.price = price
	return nil
}

func (c *CreateProductCommand) setCost(cost decimal.Decimal) error {
	if cost.IsNegative() {
		return errs.NewValueIsInvalidError("cost must not be negative")
	}

	c.cost = cost
	return nil
}
