package domain

import "time"

// MaxShortDescriptionLen is the longest short description accepted, in characters.
const MaxShortDescriptionLen = 80

// Itinerary is a trip record owned by exactly one traveller.
// TravellerEmail is populated on reads by joining travellers; TravellerID is
// resolved from the email on writes and is never exposed to clients.
type Itinerary struct {
	ID                int64
	TravellerID       int64
	TravellerEmail    string
	Title             string
	Destination       string
	StartDate         time.Time
	EndDate           time.Time
	ShortDescription  string
	DetailDescription string
}

// ItinerarySummary is the list-view projection of an Itinerary.
type ItinerarySummary struct {
	ID               int64
	Title            string
	StartDate        time.Time
	EndDate          time.Time
	ShortDescription string
}

// ItineraryInput carries the client-supplied fields for create and update.
// Pointers distinguish "absent" from "empty" so the service can report a
// missing field instead of faulting on it.
type ItineraryInput struct {
	TravellerEmail    string
	Title             string
	Destination       string
	StartDate         *time.Time
	EndDate           *time.Time
	ShortDescription  *string
	DetailDescription string
}
