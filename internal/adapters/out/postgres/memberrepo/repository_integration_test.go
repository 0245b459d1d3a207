package memberrepo_test

import (
	"context"
	"testing"
	"time"

	"freight/internal/adapters/out/postgres/memberrepo"
	"freight/internal/adapters/out/postgres/orderrepo"
	"freight/internal/adapters/out/postgres/triprepo"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/model/trip"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(_ kernel.UUID, _ any) {}

type MemberRepositoryTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *memberrepo.GormMemberRepository

	organizationID kernel.UUID
}

func (suite *MemberRepositoryTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&memberrepo.MemberDTO{},
		&orderrepo.OrderDTO{},
		&triprepo.TripDTO{},
		&triprepo.StatusRecordDTO{},
		&triprepo.DriverExpenseDTO{},
	)
	suite.Require().NoError(err)

	suite.repo = memberrepo.NewGormMemberRepository(db)
}

func (suite *MemberRepositoryTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *MemberRepositoryTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE organization_members, orders, trips CASCADE").Error
	suite.Require().NoError(err)

	suite.organizationID = kernel.NewUUID()
}

func (suite *MemberRepositoryTestSuite) TestGetMemberIDsByRoles_FiltersByOrganizationAndRole() {
	dispatcher := suite.addMember("dispatcher")
	admin := suite.addMember("admin")
	suite.addMember("driver")

	otherOrg := kernel.NewUUID()
	suite.addMemberIn(otherOrg, "dispatcher")

	ids, err := suite.repo.GetMemberIDsByRoles(
		context.Background(), suite.organizationID, []string{"admin", "dispatcher"},
	)

	suite.Require().NoError(err)
	suite.ElementsMatch([]kernel.UUID{dispatcher, admin}, ids)
}

func (suite *MemberRepositoryTestSuite) TestGetMemberIDsByRoles_NoRoles_ReturnsEmptySlice() {
	suite.addMember("admin")

	ids, err := suite.repo.GetMemberIDsByRoles(context.Background(), suite.organizationID, nil)

	suite.Require().NoError(err)
	suite.NotNil(ids)
	suite.Empty(ids)
}

func (suite *MemberRepositoryTestSuite) TestGetParticipantIDs_OrderID_ReturnsCreatorAndDrivers() {
	creator := kernel.NewUUID()
	driver := kernel.NewUUID()
	aggregate := suite.createOrder(creator)

	assigned := suite.createTrip(aggregate.ID(), creator, "TRIP-001")
	err := assigned.Edit(&driver, nil, 0, 0, 0, creator, time.Now())
	suite.Require().NoError(err)
	unassigned := suite.createTrip(aggregate.ID(), creator, "TRIP-002")

	suite.saveOrder(aggregate)
	suite.saveTrip(assigned)
	suite.saveTrip(unassigned)

	ids, err := suite.repo.GetParticipantIDs(context.Background(), aggregate.ID())

	suite.Require().NoError(err)
	suite.ElementsMatch([]kernel.UUID{creator, driver}, ids)
}

func (suite *MemberRepositoryTestSuite) TestGetParticipantIDs_TripID_IncludesParentOrderCreator() {
	orderCreator := kernel.NewUUID()
	tripCreator := kernel.NewUUID()
	driver := kernel.NewUUID()

	aggregate := suite.createOrder(orderCreator)
	assigned := suite.createTrip(aggregate.ID(), tripCreator, "TRIP-001")
	err := assigned.Edit(&driver, nil, 0, 0, 0, tripCreator, time.Now())
	suite.Require().NoError(err)

	suite.saveOrder(aggregate)
	suite.saveTrip(assigned)

	ids, err := suite.repo.GetParticipantIDs(context.Background(), assigned.ID())

	suite.Require().NoError(err)
	suite.ElementsMatch([]kernel.UUID{orderCreator, tripCreator, driver}, ids)
}

func (suite *MemberRepositoryTestSuite) TestGetParticipantIDs_UnknownEntity_ReturnsEmptySlice() {
	ids, err := suite.repo.GetParticipantIDs(context.Background(), kernel.NewUUID())

	suite.Require().NoError(err)
	suite.NotNil(ids)
	suite.Empty(ids)
}

func (suite *MemberRepositoryTestSuite) addMember(role string) kernel.UUID {
	return suite.addMemberIn(suite.organizationID, role)
}

func (suite *MemberRepositoryTestSuite) addMemberIn(organizationID kernel.UUID, role string) kernel.UUID {
	userID := kernel.NewUUID()
	dto := memberrepo.MemberDTO{
		ID:             kernel.NewUUID().Bytes(),
		OrganizationID: organizationID.Bytes(),
		UserID:         userID.Bytes(),
		Role:           role,
		CreatedAt:      time.Now(),
	}
	err := suite.db.Create(&dto).Error
	suite.Require().NoError(err)
	return userID
}

func (suite *MemberRepositoryTestSuite) createOrder(creator kernel.UUID) *order.Order {
	aggregate, err := order.NewOrder(
		kernel.NewUUID(),
		suite.organizationID,
		"ORD-100",
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		500.0,
		false,
		creator,
		time.Now(),
	)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *MemberRepositoryTestSuite) createTrip(orderID, creator kernel.UUID, code string) *trip.Trip {
	aggregate, err := trip.NewTrip(
		kernel.NewUUID(),
		orderID,
		suite.organizationID,
		code,
		250.0,
		creator,
		time.Now(),
	)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *MemberRepositoryTestSuite) saveOrder(aggregate *order.Order) {
	repo := orderrepo.NewGormOrderRepository(suite.db, noopTracker{})
	err := repo.Add(context.Background(), aggregate)
	suite.Require().NoError(err)
}

func (suite *MemberRepositoryTestSuite) saveTrip(aggregate *trip.Trip) {
	repo := triprepo.NewGormTripRepository(suite.db, noopTracker{})
	err := repo.Add(context.Background(), aggregate)
	suite.Require().NoError(err)
}

func TestMemberRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(MemberRepositoryTestSuite))
}
