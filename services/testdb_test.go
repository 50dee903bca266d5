package services

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"stayhub-backend/models"
	"stayhub-backend/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixedClock struct {
	day time.Time
}

func (c *fixedClock) Today() time.Time { return c.day }

func (c *fixedClock) set(t *testing.T, s string) {
	t.Helper()
	day, err := utils.ParseDate(s)
	require.NoError(t, err)
	c.day = day
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	day, err := utils.ParseDate(s)
	require.NoError(t, err)
	return day
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Branch{},
		&models.RoomCategory{},
		&models.RoomType{},
		&models.Room{},
		&models.Customer{},
		&models.Event{},
		&models.PriceAdjustment{},
		&models.Booking{},
		&models.BookingRoom{},
	))
	return db
}

// inventory is the shared fixture: one branch, two categories, two typed
// rooms in the standard category, one premium room and one room without a
// type.
type inventory struct {
	branch   models.Branch
	standard models.RoomCategory
	premium  models.RoomCategory
	stdType  models.RoomType
	dlxType  models.RoomType
	room101  models.Room
	room102  models.Room
	room301  models.Room
	loose    models.Room
}

func seedInventory(t *testing.T, db *gorm.DB) *inventory {
	t.Helper()
	inv := &inventory{}

	inv.branch = models.Branch{Name: "Central"}
	require.NoError(t, db.Create(&inv.branch).Error)

	inv.standard = models.RoomCategory{BranchID: inv.branch.ID, Name: "Standard"}
	inv.premium = models.RoomCategory{BranchID: inv.branch.ID, Name: "Premium"}
	require.NoError(t, db.Create(&inv.standard).Error)
	require.NoError(t, db.Create(&inv.premium).Error)

	inv.stdType = models.RoomType{BranchID: inv.branch.ID, RoomCategoryID: &inv.standard.ID, TypeName: "Standard", MaxGuests: 2}
	inv.dlxType = models.RoomType{BranchID: inv.branch.ID, RoomCategoryID: &inv.premium.ID, TypeName: "Deluxe", MaxGuests: 4}
	require.NoError(t, db.Create(&inv.stdType).Error)
	require.NoError(t, db.Create(&inv.dlxType).Error)

	inv.room101 = newRoom(inv.branch.ID, &inv.stdType.ID, "101", 1000000, 0)
	inv.room102 = newRoom(inv.branch.ID, &inv.stdType.ID, "102", 2000, 10)
	inv.room301 = newRoom(inv.branch.ID, &inv.dlxType.ID, "301", 2600, 0)
	inv.loose = newRoom(inv.branch.ID, nil, "901", 800, 0)
	for _, rm := range []*models.Room{&inv.room101, &inv.room102, &inv.room301, &inv.loose} {
		require.NoError(t, db.Create(rm).Error)
	}
	return inv
}

// addRoomType grows the fixture with another type in the given category plus
// one room per number, base price 1500.
func addRoomType(t *testing.T, db *gorm.DB, inv *inventory, categoryID *uint, name string, numbers ...string) (models.RoomType, []models.Room) {
	t.Helper()
	rt := models.RoomType{BranchID: inv.branch.ID, RoomCategoryID: categoryID, TypeName: name, MaxGuests: 2}
	require.NoError(t, db.Create(&rt).Error)

	rooms := make([]models.Room, 0, len(numbers))
	for _, number := range numbers {
		rm := newRoom(inv.branch.ID, &rt.ID, number, 1500, 0)
		require.NoError(t, db.Create(&rm).Error)
		rooms = append(rooms, rm)
	}
	return rt, rooms
}

func newRoom(branchID uint, typeID *uint, number string, base, discount float64) models.Room {
	return models.Room{
		BranchID:                branchID,
		RoomTypeID:              typeID,
		RoomNumber:              number,
		BasePrice:               base,
		StandingDiscountPercent: discount,
		DisplayPrice:            StandingPrice(base, discount),
		Status:                  "AVAILABLE",
		MaxOccupancy:            2,
	}
}

func displayOf(t *testing.T, db *gorm.DB, roomID uint) float64 {
	t.Helper()
	var room models.Room
	require.NoError(t, db.First(&room, roomID).Error)
	return room.DisplayPrice
}

// pricingEnv bundles the pricing services over one in-memory database with a
// controllable clock.
type pricingEnv struct {
	db        *gorm.DB
	clock     *fixedClock
	inv       *inventory
	events    *EventService
	reconcile *ReconcileService
}

func newPricingEnv(t *testing.T, today string) *pricingEnv {
	t.Helper()
	db := openTestDB(t)
	log := testLogger()
	clock := &fixedClock{}
	clock.set(t, today)

	resolver := NewTargetResolver(db, log)
	events := NewEventService(db, resolver, clock, log)
	reconcile := NewReconcileService(db, events, clock, log)

	return &pricingEnv{
		db:        db,
		clock:     clock,
		inv:       seedInventory(t, db),
		events:    events,
		reconcile: reconcile,
	}
}
