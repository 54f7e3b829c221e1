package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/codygriffin/cardboard/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	instanceKeyPrefix  = "card_instance:"
	userCardsPrefix    = "user_cards:"
	userCardsSeqPrefix = "user_cards_seq:"
)

// ErrCardNotFound is returned when an inventory row is not found
var ErrCardNotFound = errors.New("inventory row not found")

// Config holds configuration for the Redis inventory repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// row is the canonical durable shape of one inventory entry. Rows are
// decoded into models.CardInstance at this boundary and nowhere else.
type row struct {
	UserID     string    `json:"user_id"`
	CardID     string    `json:"card_id"`
	ObtainedAt time.Time `json:"obtained_at"`
	InstanceID string    `json:"instance_id"`
}

// NewRedis creates a new Redis-backed inventory repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// AddCard inserts an inventory row for a user
func (r *redisRepository) AddCard(ctx context.Context, input *AddCardInput) error {
	if input == nil || input.Instance == nil {
		return errors.New("input and instance cannot be nil")
	}

	if input.UserID == "" {
		return errors.New("user ID cannot be empty")
	}

	instance := input.Instance
	if instance.InstanceID == "" {
		return errors.New("instance ID cannot be empty")
	}

	rowJSON, err := json.Marshal(&row{
		UserID:     input.UserID,
		CardID:     instance.CardID,
		ObtainedAt: instance.ObtainedAt,
		InstanceID: instance.InstanceID,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal inventory row: %w", err)
	}

	// Acquisition order comes from a per-user sequence, not the obtained
	// timestamp: a pack inserts several rows with the same timestamp.
	seqKey := fmt.Sprintf("%s%s", userCardsSeqPrefix, input.UserID)
	seq, err := r.client.Incr(ctx, seqKey).Result()
	if err != nil {
		return fmt.Errorf("failed to advance inventory sequence: %w", err)
	}

	pipe := r.client.Pipeline()

	instanceKey := fmt.Sprintf("%s%s:%s", instanceKeyPrefix, input.UserID, instance.InstanceID)
	pipe.Set(ctx, instanceKey, rowJSON, 0)

	userCardsKey := fmt.Sprintf("%s%s", userCardsPrefix, input.UserID)
	pipe.ZAdd(ctx, userCardsKey, redis.Z{
		Score:  float64(seq),
		Member: instance.InstanceID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to add inventory row: %w", err)
	}

	return nil
}

// GetCards retrieves all inventory rows for a user in acquisition order
func (r *redisRepository) GetCards(ctx context.Context, input *GetCardsInput) (*GetCardsOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	userCardsKey := fmt.Sprintf("%s%s", userCardsPrefix, input.UserID)
	instanceIDs, err := r.client.ZRange(ctx, userCardsKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get instance IDs for user: %w", err)
	}

	if len(instanceIDs) == 0 {
		return &GetCardsOutput{
			Instances: []*models.CardInstance{},
		}, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringCmd, 0, len(instanceIDs))

	for _, instanceID := range instanceIDs {
		instanceKey := fmt.Sprintf("%s%s:%s", instanceKeyPrefix, input.UserID, instanceID)
		cmds = append(cmds, pipe.Get(ctx, instanceKey))
	}

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get inventory rows: %w", err)
	}

	instances := make([]*models.CardInstance, 0, len(instanceIDs))
	for i, cmd := range cmds {
		rowJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				// Row deleted between the index read and the fetch
				continue
			}
			return nil, fmt.Errorf("failed to get inventory row %s: %w", instanceIDs[i], err)
		}

		var stored row
		if err := json.Unmarshal([]byte(rowJSON), &stored); err != nil {
			return nil, fmt.Errorf("failed to unmarshal inventory row %s: %w", instanceIDs[i], err)
		}

		instances = append(instances, &models.CardInstance{
			CardID:     stored.CardID,
			ObtainedAt: stored.ObtainedAt,
			InstanceID: stored.InstanceID,
		})
	}

	return &GetCardsOutput{
		Instances: instances,
	}, nil
}

// DeleteCard deletes an inventory row matched by (userID, instanceID)
func (r *redisRepository) DeleteCard(ctx context.Context, input *DeleteCardInput) error {
	if input == nil || input.UserID == "" || input.InstanceID == "" {
		return errors.New("input, user ID and instance ID cannot be empty")
	}

	instanceKey := fmt.Sprintf("%s%s:%s", instanceKeyPrefix, input.UserID, input.InstanceID)
	userCardsKey := fmt.Sprintf("%s%s", userCardsPrefix, input.UserID)

	pipe := r.client.Pipeline()
	delCmd := pipe.Del(ctx, instanceKey)
	pipe.ZRem(ctx, userCardsKey, input.InstanceID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete inventory row: %w", err)
	}

	if delCmd.Val() == 0 {
		return ErrCardNotFound
	}

	return nil
}

// DeleteCardByObtained deletes the first inventory row matched by
// (userID, cardID, obtainedAt)
func (r *redisRepository) DeleteCardByObtained(ctx context.Context, input *DeleteCardByObtainedInput) error {
	if input == nil || input.UserID == "" || input.CardID == "" {
		return errors.New("input, user ID and card ID cannot be empty")
	}

	cards, err := r.GetCards(ctx, &GetCardsInput{UserID: input.UserID})
	if err != nil {
		return err
	}

	for _, instance := range cards.Instances {
		if instance.CardID == input.CardID && instance.ObtainedAt.Equal(input.ObtainedAt) {
			return r.DeleteCard(ctx, &DeleteCardInput{
				UserID:     input.UserID,
				InstanceID: instance.InstanceID,
			})
		}
	}

	return ErrCardNotFound
}
