package aggregate

import "fpoconsole/pkg/domain"

// PerformanceRatio is completed over assigned tasks, undefined when nothing
// was assigned.
func PerformanceRatio(s domain.Staff) Ratio {
	return NewRatio(s.TasksCompleted, s.TasksAssigned)
}

// AttendanceRate is the share of marked days on which the member was present.
func AttendanceRate(s domain.Staff) Ratio {
	present := 0
	for _, m := range s.Attendance {
		if m.Present {
			present++
		}
	}
	return NewRatio(present, len(s.Attendance))
}

// StaffScore is one row of the team performance table.
type StaffScore struct {
	StaffID     string             `json:"staff_id"`
	Name        string             `json:"name"`
	Role        domain.StaffRole   `json:"role"`
	Cluster     string             `json:"cluster,omitempty"`
	Status      domain.StaffStatus `json:"status"`
	Assigned    int                `json:"tasks_assigned"`
	Completed   int                `json:"tasks_completed"`
	Performance Ratio              `json:"performance"`
	Attendance  Ratio              `json:"attendance"`
}

// StaffPerformance scores every staff member, keeping input order.
func StaffPerformance(staff []domain.Staff) []StaffScore {
	out := make([]StaffScore, 0, len(staff))
	for _, s := range staff {
		out = append(out, StaffScore{
			StaffID:     s.ID,
			Name:        s.Name,
			Role:        s.Role,
			Cluster:     s.Cluster,
			Status:      s.Status,
			Assigned:    s.TasksAssigned,
			Completed:   s.TasksCompleted,
			Performance: PerformanceRatio(s),
			Attendance:  AttendanceRate(s),
		})
	}
	return out
}

// TeamPerformance pools every member's tasks into one ratio.
func TeamPerformance(staff []domain.Staff) Ratio {
	var done, assigned int
	for _, s := range staff {
		done += s.TasksCompleted
		assigned += s.TasksAssigned
	}
	return NewRatio(done, assigned)
}
