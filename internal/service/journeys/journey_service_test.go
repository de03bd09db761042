package journeys

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/zvrva/journeys/internal/domain"
)

type MockFlightEventRepository struct {
	mock.Mock
}

func (m *MockFlightEventRepository) ListAll(ctx context.Context) ([]domain.FlightEvent, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.FlightEvent), args.Error(1)
}

func (m *MockFlightEventRepository) FindDepartures(ctx context.Context, day time.Time, originCode string) ([]domain.FlightEvent, error) {
	args := m.Called(ctx, day, originCode)
	return args.Get(0).([]domain.FlightEvent), args.Error(1)
}

func (m *MockFlightEventRepository) FindConnections(ctx context.Context, originCode, destinationCode string, after time.Time) ([]domain.FlightEvent, error) {
	args := m.Called(ctx, originCode, destinationCode, after)
	return args.Get(0).([]domain.FlightEvent), args.Error(1)
}

func (m *MockFlightEventRepository) Create(ctx context.Context, event domain.FlightEvent) (int64, error) {
	args := m.Called(ctx, event)
	return args.Get(0).(int64), args.Error(1)
}

type MockCityRepository struct {
	mock.Mock
}

func (m *MockCityRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockCityRepository) Create(ctx context.Context, city domain.City) (int64, error) {
	args := m.Called(ctx, city)
	return args.Get(0).(int64), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetFlightEvents(ctx context.Context) ([]domain.FlightEvent, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.FlightEvent), args.Error(1)
}

func (m *MockCache) SetFlightEvents(ctx context.Context, events []domain.FlightEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

var day = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

func directEvent() domain.FlightEvent {
	return domain.FlightEvent{
		ID:            1,
		FlightNumber:  "AA1234",
		From:          "BUE",
		To:            "MAD",
		DepartureTime: time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC),
		ArrivalTime:   time.Date(2025, 3, 3, 14, 0, 0, 0, time.UTC),
	}
}

func allowCities(mockCities *MockCityRepository, codes ...string) {
	for _, code := range codes {
		mockCities.On("ExistsByCode", mock.Anything, code).Return(true, nil)
	}
}

func TestJourneyService_Search_Direct(t *testing.T) {
	mockEvents := &MockFlightEventRepository{}
	mockCities := &MockCityRepository{}
	service := NewJourneyService(mockEvents, mockCities, nil)

	ctx := context.Background()
	allowCities(mockCities, "BUE", "MAD")
	mockEvents.On("FindDepartures", ctx, day, "BUE").Return([]domain.FlightEvent{directEvent()}, nil)

	views, err := service.Search(ctx, SearchQuery{Date: "2025-03-03", From: "BUE", To: "MAD", MaxWaitHours: 4})

	assert.NoError(t, err)
	assert.Len(t, views, 1)
	assert.Equal(t, 0, views[0].Connections)
	assert.Equal(t, []LegView{{
		FlightNumber:  "AA1234",
		From:          "BUE",
		To:            "MAD",
		DepartureTime: "2025-03-03 10:00",
		ArrivalTime:   "2025-03-03 14:00",
	}}, views[0].Path)

	mockEvents.AssertNotCalled(t, "FindConnections")
	mockEvents.AssertExpectations(t)
}

func TestJourneyService_Search_NormalizesCityCodes(t *testing.T) {
	mockEvents := &MockFlightEventRepository{}
	mockCities := &MockCityRepository{}
	service := NewJourneyService(mockEvents, mockCities, nil)

	ctx := context.Background()
	allowCities(mockCities, "BUE", "MAD")
	mockEvents.On("FindDepartures", ctx, day, "BUE").Return([]domain.FlightEvent{directEvent()}, nil)

	views, err := service.Search(ctx, SearchQuery{Date: "2025-03-03", From: "bue", To: "mad", MaxWaitHours: 4})

	assert.NoError(t, err)
	assert.Len(t, views, 1)
	mockCities.AssertExpectations(t)
}

func TestJourneyService_Search_InvalidDate(t *testing.T) {
	mockEvents := &MockFlightEventRepository{}
	mockCities := &MockCityRepository{}
	service := NewJourneyService(mockEvents, mockCities, nil)

	views, err := service.Search(context.Background(), SearchQuery{Date: "invalid-date", From: "BUE", To: "MAD"})

	assert.Nil(t, views)
	var formatErr *domain.FormatError
	assert.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "Invalid date format. Should be YYYY-MM-DD.", err.Error())
	mockCities.AssertNotCalled(t, "ExistsByCode")
}

func TestJourneyService_Search_UnknownOrigin(t *testing.T) {
	mockEvents := &MockFlightEventRepository{}
	mockCities := &MockCityRepository{}
	service := NewJourneyService(mockEvents, mockCities, nil)

	mockCities.On("ExistsByCode", mock.Anything, "XYZ").Return(false, nil)

	views, err := service.Search(context.Background(), SearchQuery{Date: "2025-03-03", From: "XYZ", To: "MAD"})

	assert.Nil(t, views)
	var notFoundErr *domain.NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, `City with code "XYZ" does not exist.`, err.Error())
	mockEvents.AssertNotCalled(t, "FindDepartures")
}

func TestJourneyService_Search_UnknownDestination(t *testing.T) {
	mockEvents := &MockFlightEventRepository{}
	mockCities := &MockCityRepository{}
	service := NewJourneyService(mockEvents, mockCities, nil)

	mockCities.On("ExistsByCode", mock.Anything, "BUE").Return(true, nil)
	mockCities.On("ExistsByCode", mock.Anything, "XYZ").Return(false, nil)

	_, err := service.Search(context.Background(), SearchQuery{Date: "2025-03-03", From: "BUE", To: "XYZ"})

	var notFoundErr *domain.NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, `City with code "XYZ" does not exist.`, err.Error())
}

func TestJourneyService_Search_NoResults(t *testing.T) {
	mockEvents := &MockFlightEventRepository{}
	mockCities := &MockCityRepository{}
	service := NewJourneyService(mockEvents, mockCities, nil)

	ctx := context.Background()
	allowCities(mockCities, "BUE", "MAD")
	mockEvents.On("FindDepartures", ctx, day, "BUE").Return([]domain.FlightEvent{}, nil)

	views, err := service.Search(ctx, SearchQuery{Date: "2025-03-03", From: "BUE", To: "MAD", MaxWaitHours: 4})

	assert.NoError(t, err)
	assert.NotNil(t, views)
	assert.Empty(t, views)
}

func connectionLegs() (domain.FlightEvent, domain.FlightEvent) {
	leg1 := directEvent() // BUE -> MAD, 10:00 -> 14:00
	leg2 := domain.FlightEvent{
		ID:            2,
		FlightNumber:  "IB5678",
		From:          "MAD",
		To:            "BCN",
		DepartureTime: time.Date(2025, 3, 3, 15, 0, 0, 0, time.UTC),
		ArrivalTime:   time.Date(2025, 3, 3, 17, 0, 0, 0, time.UTC),
	}
	return leg1, leg2
}

func TestJourneyService_FindJourneys_Connection(t *testing.T) {
	mockEvents := &MockFlightEventRepository{}
	service := NewJourneyService(mockEvents, &MockCityRepository{}, nil)

	ctx := context.Background()
	leg1, leg2 := connectionLegs()
	mockEvents.On("FindDepartures", ctx, day, "BUE").Return([]domain.FlightEvent{leg1}, nil)
	mockEvents.On("FindConnections", ctx, "MAD", "BCN", leg1.ArrivalTime).Return([]domain.FlightEvent{leg2}, nil)

	journeys, err := service.FindJourneys(ctx, day, "BUE", "BCN", 5*time.Hour)

	assert.NoError(t, err)
	assert.Len(t, journeys, 1)
	assert.Equal(t, 2, journeys[0].Connections())
	assert.Equal(t, []domain.FlightEvent{leg1, leg2}, journeys[0].Legs)
}

func TestJourneyService_FindJourneys_ConnectionExceedsMaxWait(t *testing.T) {
	mockEvents := &MockFlightEventRepository{}
	service := NewJourneyService(mockEvents, &MockCityRepository{}, nil)

	ctx := context.Background()
	leg1, leg2 := connectionLegs()
	mockEvents.On("FindDepartures", ctx, day, "BUE").Return([]domain.FlightEvent{leg1}, nil)
	mockEvents.On("FindConnections", ctx, "MAD", "BCN", leg1.ArrivalTime).Return([]domain.FlightEvent{leg2}, nil)

	journeys, err := service.FindJourneys(ctx, day, "BUE", "BCN", 0)

	assert.NoError(t, err)
	assert.Empty(t, journeys)
}

func TestJourneyService_FindJourneys_ConnectionExceedsTotalDuration(t *testing.T) {
	mockEvents := &MockFlightEventRepository{}
	service := NewJourneyService(mockEvents, &MockCityRepository{}, nil)

	ctx := context.Background()
	leg1, leg2 := connectionLegs()
	leg2.DepartureTime = leg1.ArrivalTime.Add(2 * time.Hour)
	leg2.ArrivalTime = leg1.DepartureTime.Add(25 * time.Hour)
	mockEvents.On("FindDepartures", ctx, day, "BUE").Return([]domain.FlightEvent{leg1}, nil)
	mockEvents.On("FindConnections", ctx, "MAD", "BCN", leg1.ArrivalTime).Return([]domain.FlightEvent{leg2}, nil)

	journeys, err := service.FindJourneys(ctx, day, "BUE", "BCN", 5*time.Hour)

	assert.NoError(t, err)
	assert.Empty(t, journeys)
}

func TestJourneyService_FindJourneys_DirectBeforeConnections(t *testing.T) {
	mockEvents := &MockFlightEventRepository{}
	service := NewJourneyService(mockEvents, &MockCityRepository{}, nil)

	ctx := context.Background()
	leg1, leg2 := connectionLegs()
	direct := domain.FlightEvent{
		ID:            3,
		FlightNumber:  "AR9999",
		From:          "BUE",
		To:            "BCN",
		DepartureTime: time.Date(2025, 3, 3, 20, 0, 0, 0, time.UTC),
		ArrivalTime:   time.Date(2025, 3, 3, 23, 0, 0, 0, time.UTC),
	}
	// Store returns the connecting leg before the direct one; directs must
	// still come first in the result.
	mockEvents.On("FindDepartures", ctx, day, "BUE").Return([]domain.FlightEvent{leg1, direct}, nil)
	mockEvents.On("FindConnections", ctx, "MAD", "BCN", leg1.ArrivalTime).Return([]domain.FlightEvent{leg2}, nil)

	journeys, err := service.FindJourneys(ctx, day, "BUE", "BCN", 5*time.Hour)

	assert.NoError(t, err)
	assert.Len(t, journeys, 2)
	assert.Equal(t, 0, journeys[0].Connections())
	assert.Equal(t, direct, journeys[0].Legs[0])
	assert.Equal(t, 2, journeys[1].Connections())
}

func TestJourneyService_FindJourneys_StoreError(t *testing.T) {
	mockEvents := &MockFlightEventRepository{}
	service := NewJourneyService(mockEvents, &MockCityRepository{}, nil)

	ctx := context.Background()
	expectedErr := errors.New("database error")
	mockEvents.On("FindDepartures", ctx, day, "BUE").Return([]domain.FlightEvent{}, expectedErr)

	journeys, err := service.FindJourneys(ctx, day, "BUE", "BCN", 4*time.Hour)

	assert.Nil(t, journeys)
	assert.Equal(t, expectedErr, err)
}

func TestJourneyService_ListFlightEvents_CacheMiss(t *testing.T) {
	mockEvents := &MockFlightEventRepository{}
	mockCache := &MockCache{}
	service := NewJourneyService(mockEvents, &MockCityRepository{}, mockCache)

	ctx := context.Background()
	events := []domain.FlightEvent{directEvent()}

	mockCache.On("GetFlightEvents", ctx).Return(([]domain.FlightEvent)(nil), nil).Once()
	mockEvents.On("ListAll", ctx).Return(events, nil).Once()
	mockCache.On("SetFlightEvents", ctx, events).Return(nil).Once()

	views, err := service.ListFlightEvents(ctx)

	assert.NoError(t, err)
	assert.Len(t, views, 1)
	assert.Equal(t, "AA1234", views[0].FlightNumber)
	assert.Equal(t, "BUE", views[0].From)
	assert.Equal(t, "MAD", views[0].To)

	mockCache.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
}

func TestJourneyService_ListFlightEvents_CacheHit(t *testing.T) {
	mockEvents := &MockFlightEventRepository{}
	mockCache := &MockCache{}
	service := NewJourneyService(mockEvents, &MockCityRepository{}, mockCache)

	ctx := context.Background()
	events := []domain.FlightEvent{directEvent()}

	mockCache.On("GetFlightEvents", ctx).Return(events, nil).Once()

	views, err := service.ListFlightEvents(ctx)

	assert.NoError(t, err)
	assert.Len(t, views, 1)
	mockEvents.AssertNotCalled(t, "ListAll")
	mockCache.AssertNotCalled(t, "SetFlightEvents")
}

func TestJourneyService_ListFlightEvents_CacheError(t *testing.T) {
	mockEvents := &MockFlightEventRepository{}
	mockCache := &MockCache{}
	service := NewJourneyService(mockEvents, &MockCityRepository{}, mockCache)

	ctx := context.Background()
	events := []domain.FlightEvent{directEvent()}

	mockCache.On("GetFlightEvents", ctx).Return(([]domain.FlightEvent)(nil), errors.New("cache error")).Once()
	mockEvents.On("ListAll", ctx).Return(events, nil).Once()
	mockCache.On("SetFlightEvents", ctx, events).Return(nil).Once()

	views, err := service.ListFlightEvents(ctx)

	assert.NoError(t, err)
	assert.Len(t, views, 1)
	mockEvents.AssertExpectations(t)
}
