package collection

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/codygriffin/cardboard/internal/catalog"
	clockMocks "github.com/codygriffin/cardboard/internal/common/clock/mocks"
	idgenMocks "github.com/codygriffin/cardboard/internal/common/idgen/mocks"
	"github.com/codygriffin/cardboard/internal/common/metrics"
	"github.com/codygriffin/cardboard/internal/models"
	inventoryRepo "github.com/codygriffin/cardboard/internal/repositories/inventory"
	inventoryMocks "github.com/codygriffin/cardboard/internal/repositories/inventory/mocks"
	userRepo "github.com/codygriffin/cardboard/internal/repositories/user"
	userMocks "github.com/codygriffin/cardboard/internal/repositories/user/mocks"
	"github.com/codygriffin/cardboard/internal/session"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type CollectionServiceTestSuite struct {
	suite.Suite
	mockCtrl          *gomock.Controller
	mockUserRepo      *userMocks.MockRepository
	mockInventoryRepo *inventoryMocks.MockRepository
	mockClock         *clockMocks.MockClock
	mockIDGen         *idgenMocks.MockGenerator
	sessions          *session.Cache
	ctx               context.Context

	testTime   time.Time
	testUserID string
	nextID     int
}

func (s *CollectionServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUserRepo = userMocks.NewMockRepository(s.mockCtrl)
	s.mockInventoryRepo = inventoryMocks.NewMockRepository(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockIDGen = idgenMocks.NewMockGenerator(s.mockCtrl)
	s.ctx = context.Background()

	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.testUserID = "test-user-id"
	s.nextID = 0

	// Sessions start fresh: the first access creates a default record
	s.mockUserRepo.EXPECT().GetUser(gomock.Any(), gomock.Any()).Return(nil, userRepo.ErrUserNotFound).AnyTimes()
	s.mockUserRepo.EXPECT().SaveUser(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	s.mockInventoryRepo.EXPECT().GetCards(gomock.Any(), gomock.Any()).Return(&inventoryRepo.GetCardsOutput{
		Instances: []*models.CardInstance{},
	}, nil).AnyTimes()

	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()
	s.mockIDGen.EXPECT().NewInstanceID().DoAndReturn(func() string {
		s.nextID++
		return fmt.Sprintf("po%04d", s.nextID)
	}).AnyTimes()

	cache, err := session.New(&session.Config{
		UserRepo:      s.mockUserRepo,
		InventoryRepo: s.mockInventoryRepo,
		Logger:        zap.NewNop().Sugar(),
	})
	s.Require().NoError(err)
	s.sessions = cache
}

func (s *CollectionServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCollectionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CollectionServiceTestSuite))
}

func (s *CollectionServiceTestSuite) newService(draw, pack, pick time.Duration) Service {
	cards := []*models.CardDefinition{
		{ID: "crystal-owl", Name: "Crystal Owl", Rarity: "rare", Set: "aurora", ImageURL: "https://cards.example/crystal-owl.png"},
		{ID: "ember-fox", Name: "Ember Fox", Rarity: "common", Set: "aurora", ImageURL: "https://cards.example/ember-fox.png"},
		{ID: "tide-turtle", Name: "Tide Turtle", Rarity: "uncommon", Set: "depths", ImageURL: "https://cards.example/tide-turtle.png"},
	}
	cat, err := catalog.New(&catalog.Config{Cards: cards, Seed: 7})
	s.Require().NoError(err)

	svc, err := New(&Config{
		Sessions:      s.sessions,
		UserRepo:      s.mockUserRepo,
		InventoryRepo: s.mockInventoryRepo,
		Catalog:       cat,
		IDGen:         s.mockIDGen,
		Clock:         s.mockClock,
		Logger:        zap.NewNop().Sugar(),
		Metrics:       metrics.New(),
		DrawCooldown:  draw,
		PackCooldown:  pack,
		PickCooldown:  pick,
	})
	s.Require().NoError(err)
	return svc
}

func (s *CollectionServiceTestSuite) TestDrawPackTrashScenario() {
	svc := s.newService(0, 0, 0)

	s.mockInventoryRepo.EXPECT().AddCard(gomock.Any(), gomock.Any()).Return(nil).Times(6)

	// Draw: inventory grows to 1
	drawOut, err := svc.Draw(s.ctx, &DrawInput{UserID: s.testUserID})
	s.Require().NoError(err)
	s.True(drawOut.Persisted)
	s.Equal("po0001", drawOut.Instance.InstanceID)

	collection, err := svc.GetCollection(s.ctx, &GetCollectionInput{UserID: s.testUserID})
	s.Require().NoError(err)
	s.Len(collection.Cards, 1)

	// Pack: five more cards, inventory grows to 6
	packOut, err := svc.OpenPack(s.ctx, &OpenPackInput{UserID: s.testUserID})
	s.Require().NoError(err)
	s.Len(packOut.Cards, PackSize)
	s.True(packOut.Persisted)

	collection, err = svc.GetCollection(s.ctx, &GetCollectionInput{UserID: s.testUserID})
	s.Require().NoError(err)
	s.Len(collection.Cards, 6)

	// Trash index 0: the original draw comes back out
	s.mockInventoryRepo.EXPECT().DeleteCard(gomock.Any(), &inventoryRepo.DeleteCardInput{
		UserID:     s.testUserID,
		InstanceID: "po0001",
	}).Return(nil)

	trashOut, err := svc.Trash(s.ctx, &TrashInput{UserID: s.testUserID, Index: 0})
	s.Require().NoError(err)
	s.Equal(drawOut.Instance.InstanceID, trashOut.Instance.InstanceID)
	s.Equal(drawOut.Card.ID, trashOut.Card.ID)

	collection, err = svc.GetCollection(s.ctx, &GetCollectionInput{UserID: s.testUserID})
	s.Require().NoError(err)
	s.Len(collection.Cards, 5)
}

func (s *CollectionServiceTestSuite) TestDrawDeniedOnCooldown() {
	svc := s.newService(15*time.Minute, 0, 0)

	s.mockInventoryRepo.EXPECT().AddCard(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	_, err := svc.Draw(s.ctx, &DrawInput{UserID: s.testUserID})
	s.Require().NoError(err)

	// Clock has not advanced, so the second draw is denied with the full
	// cooldown remaining.
	_, err = svc.Draw(s.ctx, &DrawInput{UserID: s.testUserID})
	s.Require().Error(err)

	var cooldownErr *CooldownError
	s.Require().ErrorAs(err, &cooldownErr)
	s.Equal("draw", cooldownErr.Action)
	s.Equal(15*time.Minute, cooldownErr.Remaining)
}

func (s *CollectionServiceTestSuite) TestDrawProceedsWhenDurableWriteFails() {
	svc := s.newService(0, 0, 0)

	s.mockInventoryRepo.EXPECT().AddCard(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	out, err := svc.Draw(s.ctx, &DrawInput{UserID: s.testUserID})
	s.Require().NoError(err)
	s.False(out.Persisted)

	// The in-memory inventory still gained the card
	collection, err := svc.GetCollection(s.ctx, &GetCollectionInput{UserID: s.testUserID})
	s.Require().NoError(err)
	s.Len(collection.Cards, 1)
}

func (s *CollectionServiceTestSuite) TestPackDeniedOnCooldown() {
	svc := s.newService(0, 10*time.Minute, 0)

	s.mockInventoryRepo.EXPECT().AddCard(gomock.Any(), gomock.Any()).Return(nil).Times(PackSize)

	_, err := svc.OpenPack(s.ctx, &OpenPackInput{UserID: s.testUserID})
	s.Require().NoError(err)

	_, err = svc.OpenPack(s.ctx, &OpenPackInput{UserID: s.testUserID})
	var cooldownErr *CooldownError
	s.Require().ErrorAs(err, &cooldownErr)
	s.Equal("pack", cooldownErr.Action)
}

func (s *CollectionServiceTestSuite) TestTrashIndexOutOfRange() {
	svc := s.newService(0, 0, 0)

	_, err := svc.Trash(s.ctx, &TrashInput{UserID: s.testUserID, Index: 0})
	s.ErrorIs(err, ErrIndexOutOfRange)

	_, err = svc.Trash(s.ctx, &TrashInput{UserID: s.testUserID, Index: -1})
	s.ErrorIs(err, ErrIndexOutOfRange)
}

func (s *CollectionServiceTestSuite) TestStartPickOffersThreeChoices() {
	svc := s.newService(0, 0, 0)

	out, err := svc.StartPick(s.ctx, &StartPickInput{UserID: s.testUserID})
	s.Require().NoError(err)
	s.Len(out.Choices, PickSize)
	for _, choice := range out.Choices {
		s.NotEmpty(choice.ID)
	}
}

func (s *CollectionServiceTestSuite) TestResolvePickExhaustsSession() {
	svc := s.newService(0, 0, 0)

	started, err := svc.StartPick(s.ctx, &StartPickInput{UserID: s.testUserID})
	s.Require().NoError(err)

	s.mockInventoryRepo.EXPECT().AddCard(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	resolved, err := svc.ResolvePick(s.ctx, &ResolvePickInput{UserID: s.testUserID, Slot: 1})
	s.Require().NoError(err)
	s.Equal(started.Choices[1].ID, resolved.Card.ID)

	// Exactly one card was gained
	collection, err := svc.GetCollection(s.ctx, &GetCollectionInput{UserID: s.testUserID})
	s.Require().NoError(err)
	s.Len(collection.Cards, 1)

	// Resolving again fails: the pick is spent
	_, err = svc.ResolvePick(s.ctx, &ResolvePickInput{UserID: s.testUserID, Slot: 1})
	s.ErrorIs(err, ErrNoActivePick)

	collection, err = svc.GetCollection(s.ctx, &GetCollectionInput{UserID: s.testUserID})
	s.Require().NoError(err)
	s.Len(collection.Cards, 1)
}

func (s *CollectionServiceTestSuite) TestResolvePickWithoutStart() {
	svc := s.newService(0, 0, 0)

	_, err := svc.ResolvePick(s.ctx, &ResolvePickInput{UserID: s.testUserID, Slot: 0})
	s.ErrorIs(err, ErrNoActivePick)
}

func (s *CollectionServiceTestSuite) TestResolvePickSlotOutOfRange() {
	svc := s.newService(0, 0, 0)

	_, err := svc.StartPick(s.ctx, &StartPickInput{UserID: s.testUserID})
	s.Require().NoError(err)

	_, err = svc.ResolvePick(s.ctx, &ResolvePickInput{UserID: s.testUserID, Slot: PickSize})
	s.ErrorIs(err, ErrIndexOutOfRange)
}

func (s *CollectionServiceTestSuite) TestStartPickOverwritesPriorPick() {
	svc := s.newService(0, 0, 0)

	_, err := svc.StartPick(s.ctx, &StartPickInput{UserID: s.testUserID})
	s.Require().NoError(err)

	second, err := svc.StartPick(s.ctx, &StartPickInput{UserID: s.testUserID})
	s.Require().NoError(err)

	s.mockInventoryRepo.EXPECT().AddCard(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	resolved, err := svc.ResolvePick(s.ctx, &ResolvePickInput{UserID: s.testUserID, Slot: 0})
	s.Require().NoError(err)
	s.Equal(second.Choices[0].ID, resolved.Card.ID)

	// The inventory gained exactly one card despite two picks started
	collection, err := svc.GetCollection(s.ctx, &GetCollectionInput{UserID: s.testUserID})
	s.Require().NoError(err)
	s.Len(collection.Cards, 1)
}

func (s *CollectionServiceTestSuite) TestGetCooldowns() {
	svc := s.newService(15*time.Minute, 10*time.Minute, 30*time.Minute)

	s.mockInventoryRepo.EXPECT().AddCard(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	_, err := svc.Draw(s.ctx, &DrawInput{UserID: s.testUserID})
	s.Require().NoError(err)

	out, err := svc.GetCooldowns(s.ctx, &GetCooldownsInput{UserID: s.testUserID})
	s.Require().NoError(err)
	s.Equal(15*time.Minute, out.DrawRemaining)
	s.Zero(out.PackRemaining)
	s.Zero(out.PickRemaining)
}
