package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/raisket/marketplace/internal/domain"
	"github.com/raisket/marketplace/internal/logging"
	"go.uber.org/zap"
)

// ComparisonServiceConfig holds configuration for the comparison service
type ComparisonServiceConfig struct {
	MaxItems int
}

// ComparisonService manages the per-session comparison set.
// Each operation loads the persisted set, applies a transition, persists the
// result and then emits a notice. Operations on one session are serialized.
type ComparisonService struct {
	products domain.ProductRepository
	store    domain.SessionStore
	notifier domain.Notifier
	logger   *zap.Logger
	maxItems int
	locks    *keyedMutex
}

// NewComparisonService creates a new comparison service with dependencies.
// notifier may be nil.
func NewComparisonService(
	products domain.ProductRepository,
	store domain.SessionStore,
	notifier domain.Notifier,
	logger *zap.Logger,
	config ComparisonServiceConfig,
) *ComparisonService {
	maxItems := config.MaxItems
	if maxItems <= 0 {
		maxItems = domain.MaxCompareItems
	}
	logger = logging.OrNop(logger)

	return &ComparisonService{
		products: products,
		store:    store,
		notifier: notifier,
		logger:   logger,
		maxItems: maxItems,
		locks:    newKeyedMutex(),
	}
}

// MaxItems returns the capacity of a comparison set
func (s *ComparisonService) MaxItems() int {
	return s.maxItems
}

// Add resolves productID in the catalog and appends it to the session's set.
// An unknown ID returns domain.ErrProductNotFound. A duplicate or a full set
// is reported through the result outcome, not as an error.
func (s *ComparisonService) Add(ctx context.Context, session, productID string) (*domain.ComparisonResult, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(session)
	defer unlock()

	set, err := s.load(ctx, session)
	if err != nil {
		return nil, err
	}

	next, outcome := domain.AddToComparison(set, *product, s.maxItems)
	return s.commit(ctx, session, next, outcome, product)
}

// Remove drops productID from the session's set. Removing an absent ID is a
// silent no-op.
func (s *ComparisonService) Remove(ctx context.Context, session, productID string) (*domain.ComparisonResult, error) {
	unlock := s.locks.Lock(session)
	defer unlock()

	set, err := s.load(ctx, session)
	if err != nil {
		return nil, err
	}

	next, outcome, removed := domain.RemoveFromComparison(set, productID)
	return s.commit(ctx, session, next, outcome, removed)
}

// Clear empties the session's set
func (s *ComparisonService) Clear(ctx context.Context, session string) (*domain.ComparisonResult, error) {
	unlock := s.locks.Lock(session)
	defer unlock()

	set, err := s.load(ctx, session)
	if err != nil {
		return nil, err
	}

	next, outcome := domain.ClearComparison(set)
	return s.commit(ctx, session, next, outcome, nil)
}

// Contains reports whether productID is in the session's set
func (s *ComparisonService) Contains(ctx context.Context, session, productID string) (bool, error) {
	set, err := s.List(ctx, session)
	if err != nil {
		return false, err
	}
	return set.Contains(productID), nil
}

// List returns the session's set in insertion order
func (s *ComparisonService) List(ctx context.Context, session string) (domain.ComparisonSet, error) {
	unlock := s.locks.Lock(session)
	defer unlock()

	return s.load(ctx, session)
}

// Table builds the side-by-side comparison view of the session's set
func (s *ComparisonService) Table(ctx context.Context, session string) (*domain.ComparisonTable, error) {
	set, err := s.List(ctx, session)
	if err != nil {
		return nil, err
	}
	return BuildComparisonTable(set), nil
}

// commit persists a changed set and dispatches the outcome notice
func (s *ComparisonService) commit(
	ctx context.Context,
	session string,
	set domain.ComparisonSet,
	outcome domain.Outcome,
	product *domain.Product,
) (*domain.ComparisonResult, error) {
	if outcome.Changed() {
		if err := s.save(ctx, session, set); err != nil {
			return nil, err
		}
	}

	result := &domain.ComparisonResult{Items: set, Outcome: outcome}
	if notice, ok := domain.ComparisonNotice(outcome, product, s.maxItems); ok {
		result.Notice = &notice
		if s.notifier != nil {
			s.notifier.Notify(ctx, session, notice)
		}
	}

	s.logger.Debug("comparison updated",
		zap.String("session", session),
		zap.String("outcome", string(outcome)),
		zap.Strings("items", set.IDs()),
	)
	return result, nil
}

// load reads the persisted set. Unreadable data is discarded and the set
// starts empty.
func (s *ComparisonService) load(ctx context.Context, session string) (domain.ComparisonSet, error) {
	raw, err := s.store.GetItem(ctx, session, domain.CompareStorageKey)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return domain.ComparisonSet{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load comparison set: %w", err)
	}

	var set domain.ComparisonSet
	if err := json.Unmarshal([]byte(raw), &set); err != nil {
		s.logger.Warn("discarding unreadable comparison set",
			zap.String("session", session),
			zap.Error(err),
		)
		if err := s.store.RemoveItem(ctx, session, domain.CompareStorageKey); err != nil {
			s.logger.Warn("failed to remove unreadable comparison set",
				zap.String("session", session),
				zap.Error(err),
			)
		}
		return domain.ComparisonSet{}, nil
	}

	return domain.NormalizeComparison(set, s.maxItems), nil
}

func (s *ComparisonService) save(ctx context.Context, session string, set domain.ComparisonSet) error {
	if set == nil {
		set = domain.ComparisonSet{}
	}
	raw, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("failed to encode comparison set: %w", err)
	}
	if err := s.store.SetItem(ctx, session, domain.CompareStorageKey, string(raw)); err != nil {
		return fmt.Errorf("failed to save comparison set: %w", err)
	}
	return nil
}
