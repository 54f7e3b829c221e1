package inventory

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

func (s *RedisRepositoryTestSuite) addCard(userID, cardID, instanceID string, obtained time.Time) {
	err := s.repo.AddCard(context.Background(), &AddCardInput{
		UserID: userID,
		Instance: &models.CardInstance{
			CardID:     cardID,
			ObtainedAt: obtained,
			InstanceID: instanceID,
		},
	})
	s.Require().NoError(err)
}

func (s *RedisRepositoryTestSuite) TestAddAndGetCardsRoundTrip() {
	s.addCard("user-1", "ember-fox", "po1a2b", s.testNow)

	cards, err := s.repo.GetCards(context.Background(), &GetCardsInput{
		UserID: "user-1",
	})
	s.Require().NoError(err)
	s.Require().Len(cards.Instances, 1)
	s.Equal("ember-fox", cards.Instances[0].CardID)
	s.Equal("po1a2b", cards.Instances[0].InstanceID)
	s.True(s.testNow.Equal(cards.Instances[0].ObtainedAt))
}

func (s *RedisRepositoryTestSuite) TestGetCardsPreservesAcquisitionOrder() {
	// A pack inserts several rows with the same obtained time; order must
	// still be insertion order.
	s.addCard("user-1", "ember-fox", "po1111", s.testNow)
	s.addCard("user-1", "crystal-owl", "po0001", s.testNow)
	s.addCard("user-1", "tide-turtle", "pozzzz", s.testNow)

	cards, err := s.repo.GetCards(context.Background(), &GetCardsInput{
		UserID: "user-1",
	})
	s.Require().NoError(err)
	s.Require().Len(cards.Instances, 3)
	s.Equal("po1111", cards.Instances[0].InstanceID)
	s.Equal("po0001", cards.Instances[1].InstanceID)
	s.Equal("pozzzz", cards.Instances[2].InstanceID)
}

func (s *RedisRepositoryTestSuite) TestGetCardsEmpty() {
	cards, err := s.repo.GetCards(context.Background(), &GetCardsInput{
		UserID: "user-1",
	})
	s.Require().NoError(err)
	s.Empty(cards.Instances)
}

func (s *RedisRepositoryTestSuite) TestDeleteCard() {
	s.addCard("user-1", "ember-fox", "po1a2b", s.testNow)
	s.addCard("user-1", "crystal-owl", "po3c4d", s.testNow)

	err := s.repo.DeleteCard(context.Background(), &DeleteCardInput{
		UserID:     "user-1",
		InstanceID: "po1a2b",
	})
	s.Require().NoError(err)

	cards, err := s.repo.GetCards(context.Background(), &GetCardsInput{
		UserID: "user-1",
	})
	s.Require().NoError(err)
	s.Require().Len(cards.Instances, 1)
	s.Equal("po3c4d", cards.Instances[0].InstanceID)
}

func (s *RedisRepositoryTestSuite) TestDeleteCardNotFound() {
	err := s.repo.DeleteCard(context.Background(), &DeleteCardInput{
		UserID:     "user-1",
		InstanceID: "po1a2b",
	})
	s.ErrorIs(err, ErrCardNotFound)
}

func (s *RedisRepositoryTestSuite) TestDeleteCardByObtained() {
	s.addCard("user-1", "ember-fox", "po1a2b", s.testNow)
	s.addCard("user-1", "ember-fox", "po3c4d", s.testNow.Add(time.Minute))

	err := s.repo.DeleteCardByObtained(context.Background(), &DeleteCardByObtainedInput{
		UserID:     "user-1",
		CardID:     "ember-fox",
		ObtainedAt: s.testNow.Add(time.Minute),
	})
	s.Require().NoError(err)

	cards, err := s.repo.GetCards(context.Background(), &GetCardsInput{
		UserID: "user-1",
	})
	s.Require().NoError(err)
	s.Require().Len(cards.Instances, 1)
	s.Equal("po1a2b", cards.Instances[0].InstanceID)
}

func (s *RedisRepositoryTestSuite) TestDeleteCardByObtainedNoMatch() {
	s.addCard("user-1", "ember-fox", "po1a2b", s.testNow)

	err := s.repo.DeleteCardByObtained(context.Background(), &DeleteCardByObtainedInput{
		UserID:     "user-1",
		CardID:     "ember-fox",
		ObtainedAt: s.testNow.Add(time.Hour),
	})
	s.ErrorIs(err, ErrCardNotFound)
}

func (s *RedisRepositoryTestSuite) TestInventoriesAreIsolatedPerUser() {
	s.addCard("user-1", "ember-fox", "po1a2b", s.testNow)
	s.addCard("user-2", "crystal-owl", "po3c4d", s.testNow)

	cards, err := s.repo.GetCards(context.Background(), &GetCardsInput{
		UserID: "user-2",
	})
	s.Require().NoError(err)
	s.Require().Len(cards.Instances, 1)
	s.Equal("crystal-owl", cards.Instances[0].CardID)
}
