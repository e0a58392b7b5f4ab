package rest

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/location"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/schedule"
)

type locationRequest struct {
	Name          string `json:"name" binding:"required"`
	Address       string `json:"address"`
	AddressMapURL string `json:"address_map_url"`
}

type locationResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	AddressMapURL string `json:"address_map_url"`
}

type scheduleRequest struct {
	DayOfWeek           string `json:"day_of_week" binding:"required"`
	Time                string `json:"time" binding:"required"`
	DurationMinutes     int    `json:"duration_minutes"`
	LocationID          string `json:"location_id"`
	VotingInAdvanceDays int    `json:"voting_in_advance_days"`
	VotingTime          string `json:"voting_time" binding:"required"`
	PlayersCount        int    `json:"players_count" binding:"required"`
}

type scheduleUpdateRequest struct {
	DayOfWeek           *string `json:"day_of_week"`
	Time                *string `json:"time"`
	DurationMinutes     *int    `json:"duration_minutes"`
	LocationID          *string `json:"location_id"`
	VotingInAdvanceDays *int    `json:"voting_in_advance_days"`
	VotingTime          *string `json:"voting_time"`
	PlayersCount        *int    `json:"players_count"`
	State               *string `json:"state"`
}

type scheduleResponse struct {
	ID                  string `json:"id"`
	DayOfWeek           string `json:"day_of_week"`
	Time                string `json:"time"`
	DurationMinutes     int    `json:"duration_minutes"`
	LocationID          string `json:"location_id"`
	VotingInAdvanceDays int    `json:"voting_in_advance_days"`
	VotingTime          string `json:"voting_time"`
	PlayersCount        int    `json:"players_count"`
	State               string `json:"state"`
}

func toLocationResponse(loc location.Location) locationResponse {
	return locationResponse{ID: string(loc.ID), Name: loc.Name, Address: loc.Address, AddressMapURL: loc.AddressMapURL}
}

func toScheduleResponse(sch schedule.GameSchedule) scheduleResponse {
	return scheduleResponse{
		ID:                  string(sch.ID),
		DayOfWeek:           schedule.FormatWeekday(sch.DayOfWeek),
		Time:                sch.Time.String(),
		DurationMinutes:     int(sch.Duration / time.Minute),
		LocationID:          string(sch.LocationID),
		VotingInAdvanceDays: sch.VotingInAdvanceDays,
		VotingTime:          sch.VotingTime.String(),
		PlayersCount:        sch.PlayersCount,
		State:               string(sch.State),
	}
}

func (s *server) listLocations(c *gin.Context) {
	locations, err := s.Locations.List(c.Request.Context())
	if err != nil {
		s.logger.Error("list locations failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch locations"})
		return
	}
	out := make([]locationResponse, 0, len(locations))
	for _, loc := range locations {
		out = append(out, toLocationResponse(loc))
	}
	c.JSON(http.StatusOK, out)
}

func (s *server) createLocation(c *gin.Context) {
	var req locationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	loc, err := s.Locations.Create(c.Request.Context(), location.CreateLocationInput{
		Name:          req.Name,
		Address:       req.Address,
		AddressMapURL: req.AddressMapURL,
	})
	if errors.Is(err, location.ErrNameRequired) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		s.logger.Error("create location failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create location"})
		return
	}
	c.JSON(http.StatusCreated, toLocationResponse(*loc))
}

func (s *server) listSchedules(c *gin.Context) {
	schedules, err := s.Schedules.List(c.Request.Context())
	if err != nil {
		s.logger.Error("list schedules failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch schedules"})
		return
	}
	out := make([]scheduleResponse, 0, len(schedules))
	for _, sch := range schedules {
		out = append(out, toScheduleResponse(sch))
	}
	c.JSON(http.StatusOK, out)
}

func (s *server) createSchedule(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	day, err := schedule.ParseWeekday(req.DayOfWeek)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	at, err := schedule.ParseTimeOfDay(req.Time)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	votingAt, err := schedule.ParseTimeOfDay(req.VotingTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sch, err := s.Schedules.Create(c.Request.Context(), schedule.CreateScheduleInput{
		DayOfWeek:           day,
		Time:                at,
		Duration:            time.Duration(req.DurationMinutes) * time.Minute,
		LocationID:          location.LocationID(req.LocationID),
		VotingInAdvanceDays: req.VotingInAdvanceDays,
		VotingTime:          votingAt,
		PlayersCount:        req.PlayersCount,
	})
	if err != nil {
		s.scheduleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toScheduleResponse(*sch))
}

func (s *server) updateSchedule(c *gin.Context) {
	var req scheduleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sch, err := s.Schedules.Update(c.Request.Context(), schedule.ScheduleID(c.Param("id")), in)
	if err != nil {
		s.scheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toScheduleResponse(*sch))
}

func (req scheduleUpdateRequest) toInput() (schedule.UpdateScheduleInput, error) {
	var in schedule.UpdateScheduleInput
	if req.DayOfWeek != nil {
		day, err := schedule.ParseWeekday(*req.DayOfWeek)
		if err != nil {
			return in, err
		}
		in.DayOfWeek = &day
	}
	if req.Time != nil {
		at, err := schedule.ParseTimeOfDay(*req.Time)
		if err != nil {
			return in, err
		}
		in.Time = &at
	}
	if req.VotingTime != nil {
		at, err := schedule.ParseTimeOfDay(*req.VotingTime)
		if err != nil {
			return in, err
		}
		in.VotingTime = &at
	}
	if req.DurationMinutes != nil {
		d := time.Duration(*req.DurationMinutes) * time.Minute
		in.Duration = &d
	}
	if req.LocationID != nil {
		id := location.LocationID(*req.LocationID)
		in.LocationID = &id
	}
	if req.State != nil {
		st := schedule.State(*req.State)
		in.State = &st
	}
	in.VotingInAdvanceDays = req.VotingInAdvanceDays
	in.PlayersCount = req.PlayersCount
	return in, nil
}

func (s *server) scheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, schedule.ErrScheduleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, schedule.ErrInvalidDayOfWeek),
		errors.Is(err, schedule.ErrPlayersCountInvalid),
		errors.Is(err, schedule.ErrVotingInAdvanceInvalid),
		errors.Is(err, schedule.ErrInvalidState):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		s.logger.Error("schedule operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save schedule"})
	}
}
