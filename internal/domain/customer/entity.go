package customer

import (
	"errors"
	"strings"

	"tillpoint/internal/domain/money"

	"github.com/google/uuid"
)

var ErrEmptyName = errors.New("customer name cannot be empty")

type Customer struct {
	id            uuid.UUID
	name          string
	email         string
	contactNumber string
	storeCredit   money.Money
}

func NewCustomer(id uuid.UUID, name, email, contactNumber string, storeCredit money.Money) (*Customer, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if storeCredit.IsNegative() {
		return nil, money.ErrNegativeAmount
	}
	if id == uuid.Nil {
		id = uuid.New()
	}

	return &Customer{
		id:            id,
		name:          name,
		email:         email,
		contactNumber: contactNumber,
		storeCredit:   storeCredit,
	}, nil
}

func (c *Customer) ID() uuid.UUID            { return c.id }
func (c *Customer) Name() string             { return c.name }
func (c *Customer) Email() string            { return c.email }
func (c *Customer) ContactNumber() string    { return c.contactNumber }
func (c *Customer) StoreCredit() money.Money { return c.storeCredit }
