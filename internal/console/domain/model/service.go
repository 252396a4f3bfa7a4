package model

import (
	"strings"

	"betogether-admin/internal/shared/validation"
)

// Schedule types as the console names them.
const (
	ScheduleOneTime   = "one-time"
	ScheduleRecurring = "recurring"
)

// Location is a named point.
type Location struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DeleteRequestInfo is set while the owner has asked for the service to be removed.
type DeleteRequestInfo struct {
	Reason      string    `json:"reason,omitempty"`
	RequestedAt Timestamp `json:"requestedAt"`
}

// Service is a listing offered on the marketplace, in the shape the edit screen uses.
type Service struct {
	ID                string             `json:"id"`
	Title             string             `json:"title"`
	Description       string             `json:"description"`
	Language          string             `json:"language"`
	Location          *Location          `json:"location,omitempty"`
	IsFree            bool               `json:"isFree"`
	Price             float64            `json:"price"`
	City              string             `json:"city"`
	IsDoorstepService bool               `json:"isDoorstepService"`
	MaxParticipants   int                `json:"maxParticipants"`
	ScheduleType      string             `json:"scheduleType"`
	Date              string             `json:"date"`
	StartTime         string             `json:"startTime"`
	EndTime           string             `json:"endTime"`
	RecurringDays     []string           `json:"recurringDays"`
	Tags              TagSet             `json:"tags"`
	Image             string             `json:"image,omitempty"`
	DeleteRequest     *DeleteRequestInfo `json:"deleteRequest,omitempty"`
}

// GeoPoint is a GeoJSON point; coordinates are [longitude, latitude].
type GeoPoint struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// ScheduleSlot is one entry of a recurring schedule.
type ScheduleSlot struct {
	Day       string `json:"day"`
	Date      string `json:"date,omitempty"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
}

// ServiceRecord is a service as the backend stores it.
type ServiceRecord struct {
	ID                string         `json:"_id"`
	Title             string         `json:"title"`
	Description       string         `json:"description"`
	Language          string         `json:"Language"`
	Location          *GeoPoint      `json:"location"`
	LocationName      string         `json:"location_name"`
	IsFree            bool           `json:"isFree"`
	Price             Number         `json:"price"`
	City              string         `json:"city"`
	IsDoorstepService bool           `json:"isDoorstepService"`
	MaxParticipants   Number         `json:"max_participants"`
	ServiceType       string         `json:"service_type"`
	Date              string         `json:"date"`
	StartTime         string         `json:"start_time"`
	EndTime           string         `json:"end_time"`
	RecurringSchedule []ScheduleSlot `json:"recurring_schedule"`
	Tags              TagSet         `json:"tags"`
	Image             string         `json:"image"`
	DeleteReason      string         `json:"deleteReason"`
	DeleteRequestedAt Timestamp      `json:"deleteRequestedAt"`
}

// Service converts the stored record into the edit-screen shape.
func (r ServiceRecord) Service() Service {
	s := Service{
		ID:                r.ID,
		Title:             r.Title,
		Description:       r.Description,
		Language:          r.Language,
		IsFree:            r.IsFree,
		Price:             r.Price.Float(),
		City:              r.City,
		IsDoorstepService: r.IsDoorstepService,
		MaxParticipants:   int(r.MaxParticipants),
		ScheduleType:      ScheduleOneTime,
		Date:              r.Date,
		StartTime:         r.StartTime,
		EndTime:           r.EndTime,
		RecurringDays:     make([]string, 0, len(r.RecurringSchedule)),
		Tags:              NewTagSet(r.Tags...),
		Image:             r.Image,
	}
	if r.ServiceType == "recurring" {
		s.ScheduleType = ScheduleRecurring
	}
	if r.Location != nil && len(r.Location.Coordinates) >= 2 {
		s.Location = &Location{
			Name:      r.LocationName,
			Latitude:  r.Location.Coordinates[1],
			Longitude: r.Location.Coordinates[0],
		}
	}
	for _, slot := range r.RecurringSchedule {
		s.RecurringDays = append(s.RecurringDays, slot.Day)
	}
	if !r.DeleteRequestedAt.IsZero() || r.DeleteReason != "" {
		s.DeleteRequest = &DeleteRequestInfo{Reason: r.DeleteReason, RequestedAt: r.DeleteRequestedAt}
	}
	return s
}

// ServiceInput is the edit-service form.
type ServiceInput struct {
	Title             string    `json:"title" validate:"notblank" message:"Title is required"`
	Description       string    `json:"description"`
	Language          string    `json:"language"`
	Location          *Location `json:"location"`
	IsFree            bool      `json:"isFree"`
	Price             float64   `json:"price" validate:"gte=0" message:"Price cannot be negative"`
	City              string    `json:"city"`
	IsDoorstepService bool      `json:"isDoorstepService"`
	MaxParticipants   int       `json:"maxParticipants" validate:"gte=0" message:"Max participants cannot be negative"`
	ScheduleType      string    `json:"scheduleType" validate:"oneof=one-time recurring" message:"Schedule type must be one-time or recurring"`
	Date              string    `json:"date"`
	StartTime         string    `json:"startTime"`
	EndTime           string    `json:"endTime"`
	RecurringDays     []string  `json:"recurringDays" validate:"dive,oneof=MON TUE WED THU FRI SAT SUN" message:"Unknown day in recurring schedule"`
	Tags              TagSet    `json:"tags"`
	Image             *Upload   `json:"-"`
}

// Validate checks the form before it is sent. An empty schedule type means one-time.
func (in *ServiceInput) Validate() error {
	if strings.TrimSpace(in.ScheduleType) == "" {
		in.ScheduleType = ScheduleOneTime
	}
	return validation.Default().Struct(in)
}

// Recurring reports whether the input describes a recurring service.
func (in ServiceInput) Recurring() bool { return in.ScheduleType == ScheduleRecurring }

// Schedule expands the selected days into backend schedule slots sharing the form's
// date and times.
func (in ServiceInput) Schedule() []ScheduleSlot {
	slots := make([]ScheduleSlot, 0, len(in.RecurringDays))
	for _, day := range in.RecurringDays {
		slots = append(slots, ScheduleSlot{Day: day, Date: in.Date, StartTime: in.StartTime, EndTime: in.EndTime})
	}
	return slots
}

// BackendType is the service_type value the update endpoint expects.
func (in ServiceInput) BackendType() string {
	if in.Recurring() {
		return "recurring"
	}
	return "one_time"
}
