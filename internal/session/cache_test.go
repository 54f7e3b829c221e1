package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/codygriffin/cardboard/internal/models"
	"github.com/codygriffin/cardboard/internal/repositories/inventory"
	inventoryMocks "github.com/codygriffin/cardboard/internal/repositories/inventory/mocks"
	"github.com/codygriffin/cardboard/internal/repositories/user"
	userMocks "github.com/codygriffin/cardboard/internal/repositories/user/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type CacheTestSuite struct {
	suite.Suite
	mockCtrl          *gomock.Controller
	mockUserRepo      *userMocks.MockRepository
	mockInventoryRepo *inventoryMocks.MockRepository
	cache             *Cache
	ctx               context.Context

	testTime   time.Time
	testUserID string
}

func (s *CacheTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUserRepo = userMocks.NewMockRepository(s.mockCtrl)
	s.mockInventoryRepo = inventoryMocks.NewMockRepository(s.mockCtrl)
	s.ctx = context.Background()

	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.testUserID = "test-user-id"

	cache, err := New(&Config{
		UserRepo:      s.mockUserRepo,
		InventoryRepo: s.mockInventoryRepo,
		Logger:        zap.NewNop().Sugar(),
	})
	s.Require().NoError(err)
	s.cache = cache
}

func (s *CacheTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCacheTestSuite(t *testing.T) {
	suite.Run(t, new(CacheTestSuite))
}

func (s *CacheTestSuite) TestGetOrLoadHydratesExistingUser() {
	s.mockUserRepo.EXPECT().GetUser(s.ctx, &user.GetUserInput{UserID: s.testUserID}).Return(&models.User{
		ID:       s.testUserID,
		LastDraw: s.testTime,
	}, nil)
	s.mockInventoryRepo.EXPECT().GetCards(s.ctx, &inventory.GetCardsInput{UserID: s.testUserID}).Return(&inventory.GetCardsOutput{
		Instances: []*models.CardInstance{
			{CardID: "ember-fox", ObtainedAt: s.testTime, InstanceID: "po1a2b"},
		},
	}, nil)

	sess, err := s.cache.GetOrLoad(s.ctx, s.testUserID)
	s.Require().NoError(err)
	s.Equal(s.testUserID, sess.UserID)
	s.True(s.testTime.Equal(sess.LastDraw))
	s.Require().Len(sess.Inventory, 1)
	s.Equal("po1a2b", sess.Inventory[0].InstanceID)
}

func (s *CacheTestSuite) TestGetOrLoadCreatesDefaultRecordForNewUser() {
	s.mockUserRepo.EXPECT().GetUser(s.ctx, gomock.Any()).Return(nil, user.ErrUserNotFound)
	s.mockUserRepo.EXPECT().SaveUser(s.ctx, &user.SaveUserInput{
		User: &models.User{ID: s.testUserID},
	}).Return(nil)
	s.mockInventoryRepo.EXPECT().GetCards(s.ctx, gomock.Any()).Return(&inventory.GetCardsOutput{
		Instances: []*models.CardInstance{},
	}, nil)

	sess, err := s.cache.GetOrLoad(s.ctx, s.testUserID)
	s.Require().NoError(err)
	s.True(sess.LastDraw.IsZero())
	s.True(sess.LastPack.IsZero())
	s.True(sess.LastPick.IsZero())
	s.Empty(sess.Inventory)
}

func (s *CacheTestSuite) TestGetOrLoadServedFromMemoryAfterFirstAccess() {
	s.mockUserRepo.EXPECT().GetUser(s.ctx, gomock.Any()).Return(&models.User{ID: s.testUserID}, nil).Times(1)
	s.mockInventoryRepo.EXPECT().GetCards(s.ctx, gomock.Any()).Return(&inventory.GetCardsOutput{
		Instances: []*models.CardInstance{},
	}, nil).Times(1)

	first, err := s.cache.GetOrLoad(s.ctx, s.testUserID)
	s.Require().NoError(err)

	// Mutations on the returned session are visible to the next access
	// without touching the repositories again.
	first.Inventory = append(first.Inventory, &models.CardInstance{InstanceID: "po1a2b"})

	second, err := s.cache.GetOrLoad(s.ctx, s.testUserID)
	s.Require().NoError(err)
	s.Same(first, second)
	s.Len(second.Inventory, 1)
}

func (s *CacheTestSuite) TestGetOrLoadDegradesOnUserReadError() {
	s.mockUserRepo.EXPECT().GetUser(s.ctx, gomock.Any()).Return(nil, errors.New("redis down"))

	sess, err := s.cache.GetOrLoad(s.ctx, s.testUserID)
	s.Require().NoError(err)
	s.True(sess.LastDraw.IsZero())
	s.Empty(sess.Inventory)
}

func (s *CacheTestSuite) TestGetOrLoadDegradesOnInventoryReadError() {
	s.mockUserRepo.EXPECT().GetUser(s.ctx, gomock.Any()).Return(&models.User{
		ID:       s.testUserID,
		LastPack: s.testTime,
	}, nil)
	s.mockInventoryRepo.EXPECT().GetCards(s.ctx, gomock.Any()).Return(nil, errors.New("redis down"))

	sess, err := s.cache.GetOrLoad(s.ctx, s.testUserID)
	s.Require().NoError(err)
	// Cooldowns survived, inventory degraded to empty
	s.True(s.testTime.Equal(sess.LastPack))
	s.Empty(sess.Inventory)
}

func (s *CacheTestSuite) TestEvictForcesReload() {
	s.mockUserRepo.EXPECT().GetUser(s.ctx, gomock.Any()).Return(&models.User{ID: s.testUserID}, nil).Times(2)
	s.mockInventoryRepo.EXPECT().GetCards(s.ctx, gomock.Any()).Return(&inventory.GetCardsOutput{
		Instances: []*models.CardInstance{},
	}, nil).Times(2)

	first, err := s.cache.GetOrLoad(s.ctx, s.testUserID)
	s.Require().NoError(err)

	s.cache.Evict(s.testUserID)

	second, err := s.cache.GetOrLoad(s.ctx, s.testUserID)
	s.Require().NoError(err)
	s.NotSame(first, second)
}

func TestSessionFindInstance(t *testing.T) {
	sess := &Session{
		Inventory: []*models.CardInstance{
			{InstanceID: "po1a2b"},
			{InstanceID: "po3c4d"},
		},
	}

	if got := sess.FindInstance("po3c4d"); got != 1 {
		t.Fatalf("expected index 1, got %d", got)
	}
	if got := sess.FindInstance("missing"); got != -1 {
		t.Fatalf("expected -1, got %d", got)
	}
}
