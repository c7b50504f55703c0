package services

import (
	"fmt"
	"math"
	"time"

	"hotel-pms/models"

	"gorm.io/gorm"
)

type DashboardService struct {
	DB *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{DB: db}
}

type DashboardStats struct {
	TotalRooms        int64   `json:"totalRooms"`
	AvailableRooms    int64   `json:"availableRooms"`
	OccupiedRooms     int64   `json:"occupiedRooms"`
	TotalReservations int64   `json:"totalReservations"`
	TodayCheckins     int64   `json:"todayCheckins"`
	TodayCheckouts    int64   `json:"todayCheckouts"`
	CurrentGuests     int64   `json:"currentGuests"`
	Revenue           float64 `json:"revenue"`
	OccupancyRate     float64 `json:"occupancyRate"`
}

// Stats aggregates the dashboard counters for the given moment. Today's
// check-ins are CONFIRMED reservations arriving today; today's check-outs are
// CHECKED_IN reservations leaving today. Revenue sums the total price of
// reservations that actually reached the property (CHECKED_IN, CHECKED_OUT).
func (s *DashboardService) Stats(now time.Time) (*DashboardStats, error) {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfDay := startOfDay.AddDate(0, 0, 1)

	stats := &DashboardStats{}

	counts := []struct {
		dst *int64
		q   *gorm.DB
	}{
		{&stats.TotalRooms, s.DB.Model(&models.Room{})},
		{&stats.AvailableRooms, s.DB.Model(&models.Room{}).Where("status = ?", models.RoomAvailable)},
		{&stats.OccupiedRooms, s.DB.Model(&models.Room{}).Where("status = ?", models.RoomOccupied)},
		{&stats.TotalReservations, s.DB.Model(&models.Reservation{})},
		{&stats.TodayCheckins, s.DB.Model(&models.Reservation{}).
			Where("status = ?", models.ReservationConfirmed).
			Where("check_in >= ? AND check_in < ?", startOfDay, endOfDay)},
		{&stats.TodayCheckouts, s.DB.Model(&models.Reservation{}).
			Where("status = ?", models.ReservationCheckedIn).
			Where("check_out >= ? AND check_out < ?", startOfDay, endOfDay)},
		{&stats.CurrentGuests, s.DB.Model(&models.Reservation{}).
			Where("status = ?", models.ReservationCheckedIn)},
	}
	for _, c := range counts {
		if err := c.q.Count(c.dst).Error; err != nil {
			return nil, fmt.Errorf("failed to aggregate dashboard stats: %w", err)
		}
	}

	var revenue *float64
	err := s.DB.Model(&models.Reservation{}).
		Where("status IN ?", []models.ReservationStatus{models.ReservationCheckedIn, models.ReservationCheckedOut}).
		Select("SUM(total_price)").
		Scan(&revenue).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate revenue: %w", err)
	}
	if revenue != nil {
		stats.Revenue = *revenue
	}

	if stats.TotalRooms > 0 {
		rate := float64(stats.OccupiedRooms) / float64(stats.TotalRooms) * 100
		stats.OccupancyRate = math.Round(rate*100) / 100
	}

	return stats, nil
}
