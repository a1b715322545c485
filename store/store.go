package store

import (
	"context"
	"sync"

	"github.com/jsphweid/vexvoice/constants"
	"github.com/jsphweid/vexvoice/model"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var ErrNotFound = errors.New("score not found")

type Store interface {
	Put(ctx context.Context, id string, s model.ScoreSummary) error
	Get(ctx context.Context, id string) (model.ScoreSummary, error)
}

type MemoryStore struct {
	mu     sync.RWMutex
	scores map[string]model.ScoreSummary
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{scores: make(map[string]model.ScoreSummary)}
}

func (m *MemoryStore) Put(ctx context.Context, id string, s model.ScoreSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores[id] = s
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, id string) (model.ScoreSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.scores[id]
	if !ok {
		return s, errors.Wrapf(ErrNotFound, "id %v", id)
	}
	return s, nil
}

// FromEnv uses DynamoDB when DYNAMODB_ENDPOINT is set and memory otherwise.
func FromEnv() (Store, error) {
	endpoint := constants.GetDynamoEndpoint()
	if endpoint == "" {
		log.Info("Keeping scores in memory")
		return NewMemoryStore(), nil
	}
	log.WithFields(log.Fields{
		"endpoint": endpoint,
		"table":    constants.GetDynamoTable(),
	}).Info("Keeping scores in DynamoDB")
	return NewDynamoStore(endpoint, constants.GetAWSRegion(), constants.GetDynamoTable())
}
