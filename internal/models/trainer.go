package models

// Trainer represents a coach employed by the gym. LastName and
// Specialization may be absent.
type Trainer struct {
	ID             string  `json:"id"`
	FirstName      string  `json:"first_name"`
	LastName       *string `json:"last_name,omitempty"`
	Specialization *string `json:"specialization,omitempty"`
}

// TrainerAssignment is one trainer/member pair from the assignments
// projection. MembershipStatus is the member's latest membership status,
// derived from its end date; nil when the member has no membership yet.
type TrainerAssignment struct {
	TrainerID        string  `json:"trainer_id"`
	TrainerFirstName string  `json:"trainer_first_name"`
	TrainerLastName  *string `json:"trainer_last_name,omitempty"`
	Specialization   *string `json:"specialization,omitempty"`
	MemberID         string  `json:"member_id"`
	MemberFirstName  string  `json:"member_first_name"`
	MemberLastName   *string `json:"member_last_name,omitempty"`
	MemberEmail      string  `json:"member_email"`
	MembershipStatus *string `json:"membership_status,omitempty"`
}

// DummyAddTrainer receives the add-trainer JSON request.
type DummyAddTrainer struct {
	FullName       string `json:"full_name" validate:"required"`
	Specialization string `json:"specialization" validate:"required"`
}

// DummyAssignTrainer receives the assign-trainer JSON request.
type DummyAssignTrainer struct {
	Email     string `json:"email" validate:"required,email"`
	TrainerID string `json:"trainer_id" validate:"required"`
}

// DummyUnassignTrainer receives the unassign-trainer JSON request.
type DummyUnassignTrainer struct {
	Email string `json:"email" validate:"required,email"`
}
