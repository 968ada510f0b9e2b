package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sweetshop/inventory-api/internal/core/domain"
	"github.com/sweetshop/inventory-api/internal/core/ports"
)

// IdempotencyStore remembers purchase results by key (Redis or in-memory).
// Load returns nil, nil when the key is unknown or expired.
type IdempotencyStore interface {
	Load(ctx context.Context, key string) (*ports.StockChangeResult, error)
	Save(ctx context.Context, key string, result *ports.StockChangeResult) error
}

type InventoryService struct {
	sweets    ports.SweetRepository
	movements ports.MovementRepository
	idem      IdempotencyStore
	log       zerolog.Logger
	now       func() time.Time
}

// NewInventoryService wires the inventory use cases. idem may be nil, in
// which case Idempotency-Key headers are ignored.
func NewInventoryService(
	sweets ports.SweetRepository,
	movements ports.MovementRepository,
	idem IdempotencyStore,
	log zerolog.Logger,
) *InventoryService {
	return &InventoryService{
		sweets:    sweets,
		movements: movements,
		idem:      idem,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Purchase decrements stock by in.Quantity. The sufficiency check and the
// decrement happen in one conditional write at the store, so concurrent
// purchases cannot oversell.
func (s *InventoryService) Purchase(ctx context.Context, in ports.StockChangeInput) (*ports.StockChangeResult, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	// 1. Replay a previous result for the same key.
	key := s.idempotencyKey(in)
	if key != "" {
		prev, err := s.idem.Load(ctx, key)
		if err != nil {
			s.log.Warn().Err(err).Str("sweet_id", in.SweetID).Msg("idempotency lookup failed, processing anyway")
		} else if prev != nil {
			replay := *prev
			replay.Replayed = true
			s.log.Info().Str("sweet_id", in.SweetID).Str("idempotency_key", in.IdempotencyKey).Msg("idempotent replay")
			return &replay, nil
		}
	}

	// 2. Atomic decrement-if-sufficient.
	sweet, err := s.sweets.AdjustQuantity(ctx, in.SweetID, -in.Quantity)
	if err != nil {
		return nil, fmt.Errorf("purchase: %w", err)
	}

	// 3. Audit trail (non-fatal on failure).
	s.record(ctx, sweet, in, domain.MovementPurchase)

	result := &ports.StockChangeResult{
		Sweet:   *sweet,
		Message: fmt.Sprintf("Successfully purchased %d %s(s)", in.Quantity, sweet.Name),
	}

	if key != "" {
		if err := s.idem.Save(ctx, key, result); err != nil {
			s.log.Warn().Err(err).Str("sweet_id", in.SweetID).Msg("failed to store idempotency result")
		}
	}

	s.log.Info().
		Str("sweet_id", sweet.ID).
		Str("user_id", in.UserID).
		Int("quantity", in.Quantity).
		Int("remaining", sweet.Quantity).
		Msg("sweet purchased")

	return result, nil
}

// Restock increments stock by in.Quantity. The only upper bound is the
// range of int; an overflowing restock is ErrInvalidQuantity.
func (s *InventoryService) Restock(ctx context.Context, in ports.StockChangeInput) (*ports.StockChangeResult, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	sweet, err := s.sweets.AdjustQuantity(ctx, in.SweetID, in.Quantity)
	if err != nil {
		return nil, fmt.Errorf("restock: %w", err)
	}

	s.record(ctx, sweet, in, domain.MovementRestock)

	s.log.Info().
		Str("sweet_id", sweet.ID).
		Str("user_id", in.UserID).
		Int("quantity", in.Quantity).
		Int("stock", sweet.Quantity).
		Msg("sweet restocked")

	return &ports.StockChangeResult{
		Sweet:   *sweet,
		Message: fmt.Sprintf("Successfully restocked %d %s(s)", in.Quantity, sweet.Name),
	}, nil
}

// Movements lists the audit trail of an existing sweet, newest first.
func (s *InventoryService) Movements(ctx context.Context, sweetID string) ([]domain.StockMovement, error) {
	if _, err := s.sweets.FindByID(ctx, sweetID); err != nil {
		return nil, fmt.Errorf("movements: %w", err)
	}
	list, err := s.movements.ListBySweet(ctx, sweetID)
	if err != nil {
		return nil, fmt.Errorf("movements: %w", err)
	}
	return list, nil
}

func (s *InventoryService) record(ctx context.Context, sweet *domain.Sweet, in ports.StockChangeInput, kind domain.MovementKind) {
	m := &domain.StockMovement{
		SweetID:           sweet.ID,
		UserID:            in.UserID,
		Kind:              kind,
		Quantity:          in.Quantity,
		ResultingQuantity: sweet.Quantity,
		At:                s.now(),
	}
	if err := s.movements.Insert(ctx, m); err != nil {
		s.log.Warn().Err(err).Str("sweet_id", sweet.ID).Str("kind", string(kind)).Msg("failed to record stock movement")
	}
}

// idempotencyKey scopes a client key to the caller and the sweet so keys
// from different users never collide.
func (s *InventoryService) idempotencyKey(in ports.StockChangeInput) string {
	if s.idem == nil || in.IdempotencyKey == "" {
		return ""
	}
	return fmt.Sprintf("purchase:%s:%s:%s", in.UserID, in.SweetID, in.IdempotencyKey)
}
