package order

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// State is an order status name as stored in order_history.
type State string

const (
	StateAwaitingPayment State = "awaiting_payment"
	StateCanceled        State = "canceled"
)

type Order struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CustomerEmail string    `json:"customer_email"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Note          string    `json:"note"`
	CurrentState  *State    `json:"current_state,omitempty" gorm:"column:current_state"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (o *Order) TableName() string {
	return "orders"
}

// IsNew reports whether the order has not entered any state yet.
func (o *Order) IsNew() bool {
	return o.CurrentState == nil
}

type History struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `json:"order_id" gorm:"type:uuid"`
	State     State     `json:"state"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *History) TableName() string {
	return "order_history"
}

func New(email, firstName, lastName, note string) *Order {
	now := time.Now()
	return &Order{
		ID:            uuid.New(),
		CustomerEmail: email,
		FirstName:     firstName,
		LastName:      lastName,
		Note:          note,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// StateChanger moves an existing order to a new state.
//
//go:generate mockery --name=StateChanger --dir=. --output=./mocks --filename=state_changer_mock.go --case=underscore --with-expecter
type StateChanger interface {
	ChangeState(ctx context.Context, o *Order, state State) error
}

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=repository_mock.go --case=underscore --with-expecter
type Repository interface {
	StateChanger
	Create(ctx context.Context, o *Order) error
	Get(ctx context.Context, id uuid.UUID) (*Order, error)
}
