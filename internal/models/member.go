package models

import "time"

// MemberRow is one row of the member listing: the user joined to its most
// recent membership and that membership's plan. Plan and membership fields
// are nil for members who never registered a membership.
type MemberRow struct {
	ID               string     `json:"id"`
	FirstName        string     `json:"first_name"`
	LastName         *string    `json:"last_name,omitempty"`
	Age              int        `json:"age"`
	Email            string     `json:"email"`
	PlanName         *string    `json:"plan_name,omitempty"`
	PriceCents       *int       `json:"price_cents,omitempty"`
	Price            *string    `json:"price,omitempty"`
	MembershipStatus *string    `json:"membership_status,omitempty"`
	StartDate        *time.Time `json:"start_date,omitempty"`
	EndDate          *time.Time `json:"end_date,omitempty"`
}

// RegisterResult carries the identifiers created (or reused, for the user)
// by a successful registration.
type RegisterResult struct {
	UserID       string `json:"user_id"`
	MembershipID string `json:"membership_id"`
	PaymentID    string `json:"payment_id"`
}

// DummyRegisterMember receives the register-member JSON request. FullName is
// split into first name plus optional last name by the member service.
type DummyRegisterMember struct {
	FullName string `json:"full_name" validate:"required"`
	Age      int    `json:"age" validate:"required,gt=0"`
	Email    string `json:"email" validate:"required,email"`
	PlanID   string `json:"plan_id" validate:"required"`
}

// MembershipReminder is the payload published for a membership that expires
// tomorrow, consumed by external notification workers.
type MembershipReminder struct {
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	PlanName  string    `json:"plan_name"`
	EndDate   time.Time `json:"end_date"`
}
