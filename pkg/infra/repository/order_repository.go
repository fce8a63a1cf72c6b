package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/NeuralTrust/SpamShield/pkg/domain"
	"github.com/NeuralTrust/SpamShield/pkg/domain/order"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) order.Repository {
	return &OrderRepository{
		db: db,
	}
}

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	if err := r.db.WithContext(ctx).Create(o).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *OrderRepository) Get(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	entity := new(order.Order)
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("order", id)
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return entity, nil
}

// ChangeState records the transition in order_history and moves the order
// to state in a single transaction.
func (r *OrderRepository) ChangeState(ctx context.Context, o *order.Order, state order.State) error {
	now := time.Now()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		history := &order.History{
			ID:        uuid.New(),
			OrderID:   o.ID,
			State:     state,
			CreatedAt: now,
		}
		if err := tx.Create(history).Error; err != nil {
			return err
		}
		return tx.Model(&order.Order{}).
			Where("id = ?", o.ID).
			Updates(map[string]interface{}{
				"current_state": state,
				"updated_at":    now,
			}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to change order %s state to %s: %w", o.ID, state, err)
	}
	o.CurrentState = &state
	o.UpdatedAt = now
	return nil
}
