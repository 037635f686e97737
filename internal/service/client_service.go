package service

import (
	"client-service/internal/entity"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/segmentio/kafka-go"
)

var ErrDuplicateRequest = errors.New("idempotent key already exists")

const (
	idempotentKeyTTL = 24 * time.Hour
	publishTimeout   = 5 * time.Second
)

type ClientRepository interface {
	GetClients(ctx context.Context) ([]entity.Client, error)
	GetParts(ctx context.Context) ([]entity.Part, error)
	GetPartsByClientID(ctx context.Context, clientID int64) ([]entity.Part, error)
	GetProperties(ctx context.Context) ([]entity.Property, error)
	GetPropertiesByPartID(ctx context.Context, partID int64) ([]entity.Property, error)
	CreateClient(ctx context.Context, payload *entity.ClientPayload) (clientID, partID int64, err error)
	UpdateClient(ctx context.Context, clientID, partID int64, payload *entity.ClientPayload) error
	DeleteClient(ctx context.Context, clientID int64) error
	Ping(ctx context.Context) error
}

// KeyStore is the subset of *redis.Client used to claim idempotent keys.
type KeyStore interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// EventWriter is satisfied by *kafka.Writer.
type EventWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// ClientService manages clients together with their parts and part properties.
type ClientService struct {
	repo   ClientRepository
	keys   KeyStore    // nil disables idempotent keys
	events EventWriter // nil disables event publishing
}

// NewClientService creates a new instance of ClientService. keys and events may be nil.
func NewClientService(repo ClientRepository, keys KeyStore, events EventWriter) *ClientService {
	return &ClientService{
		repo:   repo,
		keys:   keys,
		events: events,
	}
}

func (s *ClientService) GetClients(ctx context.Context) ([]entity.Client, error) {
	clients, err := s.repo.GetClients(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error getting clients")
		return nil, err
	}
	return clients, nil
}

func (s *ClientService) GetParts(ctx context.Context) ([]entity.Part, error) {
	parts, err := s.repo.GetParts(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error getting parts")
		return nil, err
	}
	return parts, nil
}

func (s *ClientService) GetPartsByClientID(ctx context.Context, clientID int64) ([]entity.Part, error) {
	parts, err := s.repo.GetPartsByClientID(ctx, clientID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error getting parts for client %d", clientID)
		return nil, err
	}
	return parts, nil
}

func (s *ClientService) GetProperties(ctx context.Context) ([]entity.Property, error) {
	properties, err := s.repo.GetProperties(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error getting part properties")
		return nil, err
	}
	return properties, nil
}

func (s *ClientService) GetPropertiesByPartID(ctx context.Context, partID int64) ([]entity.Property, error) {
	properties, err := s.repo.GetPropertiesByPartID(ctx, partID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error getting properties for part %d", partID)
		return nil, err
	}
	return properties, nil
}

// CreateClient writes a client, its part and the part's property. A non-empty
// idempotentKey that was already used within the last 24h yields ErrDuplicateRequest.
func (s *ClientService) CreateClient(ctx context.Context, idempotentKey string, payload *entity.ClientPayload) (int64, error) {
	redisKey, err := s.claimIdempotentKey(ctx, idempotentKey)
	if err != nil {
		return 0, err
	}

	clientID, partID, err := s.repo.CreateClient(ctx, payload)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating client")
		s.releaseIdempotentKey(ctx, redisKey)
		return 0, err
	}

	s.publishClientEvent(ctx, entity.EventClientCreated, clientID, partID)
	return clientID, nil
}

func (s *ClientService) UpdateClient(ctx context.Context, clientID, partID int64, payload *entity.ClientPayload) error {
	if err := s.repo.UpdateClient(ctx, clientID, partID, payload); err != nil {
		logger.Error().Err(err).Msgf("Error updating client %d part %d", clientID, partID)
		return err
	}

	s.publishClientEvent(ctx, entity.EventClientUpdated, clientID, partID)
	return nil
}

func (s *ClientService) DeleteClient(ctx context.Context, clientID int64) error {
	if err := s.repo.DeleteClient(ctx, clientID); err != nil {
		logger.Error().Err(err).Msgf("Error deleting client %d", clientID)
		return err
	}

	s.publishClientEvent(ctx, entity.EventClientDeleted, clientID, 0)
	return nil
}

// Ping reports whether the database is reachable.
func (s *ClientService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// claimIdempotentKey returns the redis key it claimed, or "" when no claim was made.
func (s *ClientService) claimIdempotentKey(ctx context.Context, key string) (string, error) {
	if key == "" || s.keys == nil {
		return "", nil
	}

	redisKey := fmt.Sprintf("idempotent-key:%s", key)
	ok, err := s.keys.SetNX(ctx, redisKey, "exists", idempotentKeyTTL).Result()
	if err != nil {
		logger.Error().Err(err).Msgf("Error claiming idempotent key %s", key)
		return "", err
	}
	if !ok {
		logger.Warn().Msgf("Idempotent key %s already used", key)
		return "", ErrDuplicateRequest
	}
	return redisKey, nil
}

// releaseIdempotentKey frees a key whose write failed so the request can be retried.
// The write may have failed because ctx was cancelled, so the release does not use it.
func (s *ClientService) releaseIdempotentKey(ctx context.Context, redisKey string) {
	if redisKey == "" {
		return
	}
	if err := s.keys.Del(context.WithoutCancel(ctx), redisKey).Err(); err != nil {
		logger.Error().Err(err).Msgf("Error releasing idempotent key %s", redisKey)
	}
}

// publishClientEvent is best effort: the write is already committed. It outlives a
// cancelled request but waits at most publishTimeout for the broker.
func (s *ClientService) publishClientEvent(ctx context.Context, eventType string, clientID, partID int64) {
	if s.events == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	event := entity.ClientEvent{
		Type:       eventType,
		ClientID:   clientID,
		PartID:     partID,
		OccurredAt: time.Now().UTC(),
	}
	value, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msg("Error marshalling client event")
		return
	}

	// client-created-1, client-deleted-7
	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("client-%s-%d", eventType, clientID)),
		Value: value,
	}
	if err := s.events.WriteMessages(ctx, msg); err != nil {
		logger.Error().Err(err).Msgf("Error publishing client %s event for client %d", eventType, clientID)
	}
}
