package user

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/codygriffin/cardboard/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	// Create a new miniredis server for each test
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

	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetUser() {
	user := &models.User{
		ID:       "test-user-id",
		LastDraw: s.testNow,
		LastPack: s.testNow.Add(-10 * time.Minute),
	}

	err := s.repo.SaveUser(context.Background(), &SaveUserInput{
		User: user,
	})
	s.Require().NoError(err)

	retrieved, err := s.repo.GetUser(context.Background(), &GetUserInput{
		UserID: "test-user-id",
	})
	s.Require().NoError(err)
	s.Equal(user.ID, retrieved.ID)
	s.True(user.LastDraw.Equal(retrieved.LastDraw))
	s.True(user.LastPack.Equal(retrieved.LastPack))
	s.True(retrieved.LastPick.IsZero())
}

func (s *RedisRepositoryTestSuite) TestGetUserNotFound() {
	_, err := s.repo.GetUser(context.Background(), &GetUserInput{
		UserID: "missing-user",
	})
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *RedisRepositoryTestSuite) TestSaveUserUpserts() {
	user := &models.User{ID: "test-user-id"}

	err := s.repo.SaveUser(context.Background(), &SaveUserInput{User: user})
	s.Require().NoError(err)

	// Update a cooldown and save again
	user.LastPick = s.testNow
	err = s.repo.SaveUser(context.Background(), &SaveUserInput{User: user})
	s.Require().NoError(err)

	retrieved, err := s.repo.GetUser(context.Background(), &GetUserInput{
		UserID: "test-user-id",
	})
	s.Require().NoError(err)
	s.True(s.testNow.Equal(retrieved.LastPick))
}

func (s *RedisRepositoryTestSuite) TestSaveUserValidation() {
	s.Error(s.repo.SaveUser(context.Background(), nil))
	s.Error(s.repo.SaveUser(context.Background(), &SaveUserInput{User: &models.User{}}))
}
