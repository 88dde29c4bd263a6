// Package models contains the domain row and result shapes shared by the
// storage layer, the services and the HTTP handlers, plus the Dummy* types
// used to receive data from JSON requests before validation.
package models

// Plan is a membership plan as stored. Read-only to this service;
// prices are always integer cents.
type Plan struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	DurationMonths int    `json:"duration_months"`
	PriceCents     int    `json:"price_cents"`
}
