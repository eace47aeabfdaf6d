package events

import "github.com/applyflow/applyflow/internal/entities"

var ApplicationSubmittedTopic = "ApplicationSubmittedEvent"

type ApplicationSubmitted struct {
	UserID        string
	ApplicationID int
	JobListingID  *int
}

var ApplicationStatusChangedTopic = "ApplicationStatusChangedEvent"

type ApplicationStatusChanged struct {
	UserID        string
	ApplicationID int
	Previous      entities.ApplicationStatus
	Current       entities.ApplicationStatus
}
