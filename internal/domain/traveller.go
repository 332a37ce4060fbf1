// Package domain contains the core data types for the itinerary API.
// This package has zero external dependencies and is imported by every other
// internal package (repo, service, handler).
package domain

// Traveller is the identity anchor of the system. Clients always refer to a
// traveller by Email; ID never leaves the server except in the register response.
type Traveller struct {
	ID    int64
	Email string
	Name  string
}
