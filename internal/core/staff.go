package core

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"fpoconsole/pkg/domain"
)

// AddStaffMember registers a staff member. A moderator must name a cluster;
// any cluster supplied for another role is discarded.
func (s *Service) AddStaffMember(ctx context.Context, draft domain.StaffDraft) (Staff, Result, error) {
	var created Staff
	res, err := s.run(ctx, "add_staff_member", domain.EntityStaff, func(tx Transaction) (string, error) {
		draft.Name = strings.TrimSpace(draft.Name)
		draft.Phone = strings.TrimSpace(draft.Phone)
		draft.Email = strings.TrimSpace(draft.Email)
		draft.Cluster = strings.TrimSpace(draft.Cluster)
		if draft.Role != domain.RoleModerator {
			draft.Cluster = ""
		}
		if err := s.validator.Draft(domain.EntityStaff, draft); err != nil {
			return "", err
		}
		member := Staff{
			Name:           draft.Name,
			Role:           draft.Role,
			Phone:          draft.Phone,
			Email:          draft.Email,
			Cluster:        draft.Cluster,
			Status:         draft.Status,
			TasksAssigned:  draft.TasksAssigned,
			TasksCompleted: draft.TasksCompleted,
		}
		if member.Status == "" {
			member.Status = domain.StaffActive
		}
		var err error
		created, err = tx.CreateStaff(member)
		return created.ID, err
	})
	if err != nil {
		return Staff{}, res, err
	}
	return created, res, nil
}

// UpdateStaffTasks replaces the task counters. Completed may not exceed assigned.
func (s *Service) UpdateStaffTasks(ctx context.Context, id string, assigned, completed int) (Staff, Result, error) {
	return s.updateStaff(ctx, "update_staff_tasks", id, func(m *Staff) error {
		switch {
		case assigned < 0:
			return domain.NewValidationError(domain.EntityStaff, "tasks_assigned", "must not be less than 0")
		case completed < 0:
			return domain.NewValidationError(domain.EntityStaff, "tasks_completed", "must not be less than 0")
		case completed > assigned:
			return domain.NewValidationError(domain.EntityStaff, "tasks_completed", "must not exceed TasksAssigned")
		}
		m.TasksAssigned = assigned
		m.TasksCompleted = completed
		return nil
	})
}

// SetStaffStatus marks a staff member active or inactive.
func (s *Service) SetStaffStatus(ctx context.Context, id string, status domain.StaffStatus) (Staff, Result, error) {
	return s.updateStaff(ctx, "set_staff_status", id, func(m *Staff) error {
		if status != domain.StaffActive && status != domain.StaffInactive {
			return domain.NewValidationError(domain.EntityStaff, "status", fmt.Sprintf("unknown status %q", status))
		}
		m.Status = status
		return nil
	})
}

// MarkAttendance records presence for the calendar day of at. Marking the
// same day again overwrites the earlier mark.
func (s *Service) MarkAttendance(ctx context.Context, id string, at time.Time, present bool) (Staff, Result, error) {
	if at.IsZero() {
		at = s.now()
	}
	y, mo, d := at.Date()
	day := time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
	return s.updateStaff(ctx, "mark_attendance", id, func(m *Staff) error {
		i, found := slices.BinarySearchFunc(m.Attendance, day, func(mark domain.AttendanceMark, t time.Time) int {
			return mark.Date.Compare(t)
		})
		if found {
			m.Attendance[i].Present = present
			return nil
		}
		m.Attendance = slices.Insert(m.Attendance, i, domain.AttendanceMark{Date: day, Present: present})
		return nil
	})
}

func (s *Service) updateStaff(ctx context.Context, op, id string, mutator func(*Staff) error) (Staff, Result, error) {
	var updated Staff
	res, err := s.run(ctx, op, domain.EntityStaff, func(tx Transaction) (string, error) {
		var err error
		updated, err = tx.UpdateStaff(id, mutator)
		return id, err
	})
	if err != nil {
		return Staff{}, res, err
	}
	return updated, res, nil
}
