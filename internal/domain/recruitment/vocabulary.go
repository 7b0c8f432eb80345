package recruitment

import "strings"

type Role string

const (
	RoleCrew         Role = "crew"
	RoleParticipants Role = "participants"
	RoleVolunteer    Role = "volunteer"
)

// Status is the canonical review status stored on a response.
type Status string

const (
	StatusPending    Status = "pending"
	StatusReviewed   Status = "reviewed"
	StatusAccepted   Status = "accepted"
	StatusRejected   Status = "rejected"
	StatusWaitlisted Status = "waitlisted"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Inbound vocabularies. The admin UI says approved/shortlisted/submitted and
// the public site says participant; both land on the canonical values here.
var (
	roleAliases = map[string]Role{
		"crew":         RoleCrew,
		"participants": RoleParticipants,
		"participant":  RoleParticipants,
		"volunteer":    RoleVolunteer,
		"volunteers":   RoleVolunteer,
	}

	statusAliases = map[string]Status{
		"pending":     StatusPending,
		"submitted":   StatusPending,
		"reviewed":    StatusReviewed,
		"accepted":    StatusAccepted,
		"approved":    StatusAccepted,
		"rejected":    StatusRejected,
		"waitlisted":  StatusWaitlisted,
		"shortlisted": StatusWaitlisted,
	}

	priorities = map[string]Priority{
		"low":    PriorityLow,
		"medium": PriorityMedium,
		"high":   PriorityHigh,
		"urgent": PriorityUrgent,
	}
)

// Outbound vocabularies.
var (
	applicantRoleNames = map[Role]string{
		RoleCrew:         "crew",
		RoleParticipants: "participant",
		RoleVolunteer:    "volunteer",
	}

	adminStatusNames = map[Status]string{
		StatusPending:    "pending",
		StatusReviewed:   "reviewed",
		StatusAccepted:   "approved",
		StatusRejected:   "rejected",
		StatusWaitlisted: "shortlisted",
	}
)

func ParseRole(s string) (Role, bool) {
	r, ok := roleAliases[strings.ToLower(strings.TrimSpace(s))]
	return r, ok
}

func ParseStatus(s string) (Status, bool) {
	st, ok := statusAliases[strings.ToLower(strings.TrimSpace(s))]
	return st, ok
}

func ParsePriority(s string) (Priority, bool) {
	p, ok := priorities[strings.ToLower(strings.TrimSpace(s))]
	return p, ok
}

// ApplicantName is the role as recorded on a response.
func (r Role) ApplicantName() string {
	if name, ok := applicantRoleNames[r]; ok {
		return name
	}
	return string(r)
}

// AdminName is the status as the admin dashboard labels it.
func (s Status) AdminName() string {
	if name, ok := adminStatusNames[s]; ok {
		return name
	}
	return string(s)
}
