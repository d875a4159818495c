package notify

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/akademix/jadwal-api/internal/models"
)

// Role selects the message template used by a RoleObserver.
type Role string

const (
	RoleStudent  Role = "student"
	RoleLecturer Role = "lecturer"
	RoleAdmin    Role = "admin"
)

// ValidRole reports whether the role is one of the built-in variants.
func ValidRole(role Role) bool {
	switch role {
	case RoleStudent, RoleLecturer, RoleAdmin:
		return true
	}
	return false
}

// RoleObserver logs schedule events with role-specific wording. The three
// built-in variants differ only in their message templates.
type RoleObserver struct {
	ID     string
	Role   Role
	Name   string
	Email  string
	logger *zap.Logger
}

// NewRoleObserver builds an observer for the given role.
func NewRoleObserver(id string, role Role, name, email string, logger *zap.Logger) *RoleObserver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoleObserver{ID: id, Role: role, Name: name, Email: email, logger: logger}
}

// Update implements Observer.
func (o *RoleObserver) Update(event models.EventType, data map[string]any) {
	o.logger.Info("schedule notification",
		zap.String("role", string(o.Role)),
		zap.String("recipient", o.Name),
		zap.String("email", o.Email),
		zap.String("event", string(event)),
		zap.String("message", o.formatMessage(event, data)))
}

func (o *RoleObserver) formatMessage(event models.EventType, data map[string]any) string {
	course, _ := data["course_name"].(string)
	description, _ := data["description"].(string)

	switch o.Role {
	case RoleLecturer:
		switch event {
		case models.EventScheduleCreated:
			return fmt.Sprintf("You have a new class: %s", course)
		case models.EventScheduleUpdated:
			return fmt.Sprintf("Your class schedule has been updated: %s", course)
		case models.EventScheduleDeleted:
			return fmt.Sprintf("Your class has been cancelled: %s", course)
		case models.EventConflictDetected:
			return fmt.Sprintf("ALERT: Schedule conflict detected: %s", description)
		case models.EventScheduleResolved:
			return fmt.Sprintf("Schedule conflict has been resolved: %s", description)
		}
	case RoleAdmin:
		switch event {
		case models.EventScheduleCreated:
			return fmt.Sprintf("New schedule created: %s", course)
		case models.EventScheduleUpdated:
			return fmt.Sprintf("Schedule updated: %s", course)
		case models.EventScheduleDeleted:
			return fmt.Sprintf("Schedule deleted: %s", course)
		case models.EventConflictDetected:
			return fmt.Sprintf("CONFLICT ALERT: %s", description)
		case models.EventScheduleResolved:
			return fmt.Sprintf("Conflict resolved: %s", description)
		}
	default:
		switch event {
		case models.EventScheduleCreated:
			return fmt.Sprintf("New schedule created: %s", course)
		case models.EventScheduleUpdated:
			return fmt.Sprintf("Schedule updated for: %s", course)
		case models.EventScheduleDeleted:
			return fmt.Sprintf("Schedule deleted: %s", course)
		case models.EventConflictDetected:
			return fmt.Sprintf("Schedule conflict detected: %s", description)
		case models.EventScheduleResolved:
			return fmt.Sprintf("Schedule conflict resolved: %s", description)
		}
	}
	return fmt.Sprintf("Schedule event: %s", event)
}
