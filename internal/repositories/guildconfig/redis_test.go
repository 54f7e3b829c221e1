package guildconfig

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	repo   Repository
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) TestSetAndGetChannel() {
	err := s.repo.SetChannel(context.Background(), &SetChannelInput{
		GuildID:   "guild-1",
		ChannelID: "channel-1",
	})
	s.Require().NoError(err)

	out, err := s.repo.GetChannel(context.Background(), &GetChannelInput{
		GuildID: "guild-1",
	})
	s.Require().NoError(err)
	s.Equal("channel-1", out.ChannelID)
}

func (s *RedisRepositoryTestSuite) TestGetChannelNotConfigured() {
	_, err := s.repo.GetChannel(context.Background(), &GetChannelInput{
		GuildID: "guild-1",
	})
	s.ErrorIs(err, ErrNotConfigured)
}

func (s *RedisRepositoryTestSuite) TestSetChannelOverwrites() {
	ctx := context.Background()

	s.Require().NoError(s.repo.SetChannel(ctx, &SetChannelInput{GuildID: "guild-1", ChannelID: "channel-1"}))
	s.Require().NoError(s.repo.SetChannel(ctx, &SetChannelInput{GuildID: "guild-1", ChannelID: "channel-2"}))

	out, err := s.repo.GetChannel(ctx, &GetChannelInput{GuildID: "guild-1"})
	s.Require().NoError(err)
	s.Equal("channel-2", out.ChannelID)
}
