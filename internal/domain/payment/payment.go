package payment

import (
	"errors"
	"regexp"
	"time"

	"tillpoint/internal/domain/money"

	"github.com/google/uuid"
)

var (
	ErrInvalidMethod    = errors.New("invalid payment method")
	ErrNonPositiveValue = errors.New("payment amount must be positive")
	ErrAuthRefRequired  = errors.New("authorization reference required for card payments")
	ErrInvalidAuthRef   = errors.New("malformed authorization reference")
)

type Method string

const (
	MethodCash        Method = "cash"
	MethodCard        Method = "card"
	MethodStoreCredit Method = "store_credit"
)

func (m Method) String() string {
	return string(m)
}

func (m Method) IsValid() bool {
	switch m {
	case MethodCash, MethodCard, MethodStoreCredit:
		return true
	default:
		return false
	}
}

func NewMethod(s string) (Method, error) {
	m := Method(s)
	if !m.IsValid() {
		return "", ErrInvalidMethod
	}
	return m, nil
}

// Auth references are opaque gateway identifiers; only the shape is
// checked, no gateway call is made.
var authRefPattern = regexp.MustCompile(`^[A-Za-z0-9-]{6,64}$`)

// Record is a single payment against an order. An order may carry several
// records (split payment); finalize validates the aggregate.
type Record struct {
	id        uuid.UUID
	orderID   uuid.UUID
	method    Method
	amount    money.Money
	authRef   *string
	createdAt time.Time
}

func NewRecord(orderID uuid.UUID, method Method, amount money.Money, authRef *string, now time.Time) (*Record, error) {
	if !method.IsValid() {
		return nil, ErrInvalidMethod
	}
	if amount.Cents() <= 0 {
		return nil, ErrNonPositiveValue
	}
	if method == MethodCard {
		if authRef == nil || *authRef == "" {
			return nil, ErrAuthRefRequired
		}
		if !authRefPattern.MatchString(*authRef) {
			return nil, ErrInvalidAuthRef
		}
	}

	return &Record{
		id:        uuid.New(),
		orderID:   orderID,
		method:    method,
		amount:    amount,
		authRef:   authRef,
		createdAt: now,
	}, nil
}

func ReconstructRecord(id, orderID uuid.UUID, method Method, amount money.Money, authRef *string, createdAt time.Time) *Record {
	return &Record{
		id:        id,
		orderID:   orderID,
		method:    method,
		amount:    amount,
		authRef:   authRef,
		createdAt: createdAt,
	}
}

func (r *Record) ID() uuid.UUID       { return r.id }
func (r *Record) OrderID() uuid.UUID  { return r.orderID }
func (r *Record) Method() Method      { return r.method }
func (r *Record) Amount() money.Money { return r.amount }
func (r *Record) AuthRef() *string    { return r.authRef }
func (r *Record) CreatedAt() time.Time { return r.createdAt }

// Sum totals a set of records; finalize requires the sum to equal the
// order's grand total to the cent.
func Sum(records []*Record) money.Money {
	total := money.New(0)
	for _, r := range records {
		total = total.Add(r.amount)
	}
	return total
}
