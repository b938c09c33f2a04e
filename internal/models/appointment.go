package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Appointment statuses as scheduled by the advising subsystem.
const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCancelled = "cancelled"
)

// Layouts for the wall-clock date and time fields.
const (
	AppointmentDateLayout = "2006-01-02"
	AppointmentTimeLayout = "15:04"
)

// Appointment represents a scheduled advising meeting between a student and an
// advisor. The chat module treats appointments as read-only context: a chat bound
// to an appointment only accepts messages inside a window around its start instant.
type Appointment struct {
	gorm.Model

	StudentID string `gorm:"type:text;not null;index:idx_appt_pair" json:"student_id"`
	AdvisorID string `gorm:"type:text;not null;index:idx_appt_pair" json:"advisor_id"`
	// Date is the local wall-clock date ("2006-01-02").
	Date string `gorm:"type:text;not null" json:"date"`
	// Time is the local wall-clock start time ("15:04").
	Time string `gorm:"type:text;not null" json:"time"`
	// Status is one of AppointmentPending, AppointmentConfirmed, AppointmentCancelled.
	Status string `gorm:"type:text;not null;index" json:"status"`
}

// StartsAt об'єднує Date та Time у єдиний момент часу в заданому часовому поясі.
func (a *Appointment) StartsAt(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(
		AppointmentDateLayout+" "+AppointmentTimeLayout,
		a.Date+" "+a.Time,
		loc,
	)
	if err != nil {
		return time.Time{}, fmt.Errorf("appointment %d has malformed schedule %q %q: %w", a.ID, a.Date, a.Time, err)
	}
	return t, nil
}
