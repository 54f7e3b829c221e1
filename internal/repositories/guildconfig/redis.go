package guildconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	// Key prefix for Redis
	guildChannelKeyPrefix = "guild_channel:"
)

// ErrNotConfigured is returned when a guild has no channel restriction
var ErrNotConfigured = errors.New("guild has no configured channel")

// Config holds configuration for the Redis guild config repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed guild config repository
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

// GetChannel retrieves the channel a guild has restricted the bot to
func (r *redisRepository) GetChannel(ctx context.Context, input *GetChannelInput) (*GetChannelOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	guildKey := fmt.Sprintf("%s%s", guildChannelKeyPrefix, input.GuildID)
	channelID, err := r.client.Get(ctx, guildKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotConfigured
		}
		return nil, fmt.Errorf("failed to get guild channel: %w", err)
	}

	return &GetChannelOutput{
		ChannelID: channelID,
	}, nil
}

// SetChannel restricts the bot to a single channel for a guild
func (r *redisRepository) SetChannel(ctx context.Context, input *SetChannelInput) error {
	if input == nil || input.GuildID == "" || input.ChannelID == "" {
		return errors.New("input, guild ID and channel ID cannot be empty")
	}

	guildKey := fmt.Sprintf("%s%s", guildChannelKeyPrefix, input.GuildID)
	if err := r.client.Set(ctx, guildKey, input.ChannelID, 0).Err(); err != nil {
		return fmt.Errorf("failed to set guild channel: %w", err)
	}

	return nil
}
