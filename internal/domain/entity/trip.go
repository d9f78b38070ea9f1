package entity

import "time"

// Trip form field names, shared by validation maps and the JSON wire format
const (
	FieldFullName       = "fullName"
	FieldEmail          = "email"
	FieldStartDate      = "startDate"
	FieldEndDate        = "endDate"
	FieldTravelLocation = "travelLocation"
	FieldClient         = "client"
	FieldProject        = "project"
	FieldPMO            = "pmo"
	FieldResourceType   = "resourceType"
	FieldAdditionalInfo = "additionalInfo"
)

// TripDetails is the trip metadata shared by the travel notification and the
// travel expense report
type TripDetails struct {
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
	DateDuration   int    `json:"dateDuration"`
	TravelLocation string `json:"travelLocation"`
	Client         string `json:"client"`
	Project        string `json:"project"`
	PMO            string `json:"pmo"`
	ResourceType   string `json:"resourceType"`
	AdditionalInfo string `json:"additionalInfo"`
}

// NewTripDetails returns the initial trip form: both dates set to today and a
// one day duration
func NewTripDetails(now time.Time) TripDetails {
	today := FormatDate(now)
	return TripDetails{
		StartDate:    today,
		EndDate:      today,
		DateDuration: 1,
	}
}

// Normalize recomputes the derived duration from the current dates
func (t TripDetails) Normalize() TripDetails {
	t.DateDuration = InclusiveDays(t.StartDate, t.EndDate)
	return t
}

// ChangedFields lists the editable fields whose values differ from other
func (t TripDetails) ChangedFields(other TripDetails) []string {
	var changed []string
	pairs := []struct {
		field string
		x, y  string
	}{
		{FieldFullName, t.FullName, other.FullName},
		{FieldEmail, t.Email, other.Email},
		{FieldStartDate, t.StartDate, other.StartDate},
		{FieldEndDate, t.EndDate, other.EndDate},
		{FieldTravelLocation, t.TravelLocation, other.TravelLocation},
		{FieldClient, t.Client, other.Client},
		{FieldProject, t.Project, other.Project},
		{FieldPMO, t.PMO, other.PMO},
		{FieldResourceType, t.ResourceType, other.ResourceType},
		{FieldAdditionalInfo, t.AdditionalInfo, other.AdditionalInfo},
	}
	for _, p := range pairs {
		if p.x != p.y {
			changed = append(changed, p.field)
		}
	}
	return changed
}
