package services

import (
	"context"

	"github.com/applyflow/applyflow/internal/entities"
	"github.com/applyflow/applyflow/internal/events"
	"github.com/applyflow/applyflow/internal/logger"
	"github.com/applyflow/applyflow/internal/metrics"
	"github.com/applyflow/applyflow/internal/repositories"
	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type notifierPreferencesRepository interface {
	GetByUser(ctx context.Context, userID string) (*entities.UserPreferences, error)
}

// Notifier turns application events into notification records, honoring
// each user's alert preferences. Delivery channels (email digests, the
// web notification panel) consume what gets logged and counted here.
type Notifier struct {
	bus         EventBus.Bus
	preferences notifierPreferencesRepository
}

func NewNotifier(bus EventBus.Bus, preferences notifierPreferencesRepository) (*Notifier, error) {

	if bus == nil {
		return nil, errors.New("bus is nil")
	}
	if preferences == nil {
		return nil, errors.New("preferences repository is nil")
	}

	n := &Notifier{bus: bus, preferences: preferences}

	if err := bus.Subscribe(events.ApplicationSubmittedTopic, n.onApplicationSubmitted); err != nil {
		return nil, err
	}
	if err := bus.Subscribe(events.ApplicationStatusChangedTopic, n.onStatusChanged); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *Notifier) Stop() {
	_ = n.bus.Unsubscribe(events.ApplicationSubmittedTopic, n.onApplicationSubmitted)
	_ = n.bus.Unsubscribe(events.ApplicationStatusChangedTopic, n.onStatusChanged)
}

func (n *Notifier) onApplicationSubmitted(event events.ApplicationSubmitted) {

	if !n.alertsEnabled(event.UserID) {
		return
	}

	metrics.NotificationsEmitted.WithLabelValues("application_submitted").Inc()
	log.WithFields(log.Fields{
		"user_id":        event.UserID,
		"application_id": event.ApplicationID,
	}).Info("application submitted")
}

func (n *Notifier) onStatusChanged(event events.ApplicationStatusChanged) {

	if !n.alertsEnabled(event.UserID) {
		return
	}

	metrics.NotificationsEmitted.WithLabelValues("status_changed").Inc()
	log.WithFields(log.Fields{
		"user_id":        event.UserID,
		"application_id": event.ApplicationID,
		"previous":       event.Previous,
		"current":        event.Current,
	}).Info("application status changed")
}

// alertsEnabled defaults to true for users without saved preferences.
func (n *Notifier) alertsEnabled(userID string) bool {
	prefs, err := n.preferences.GetByUser(context.Background(), userID)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
				Errorf("failed to get preferences for notification: %v", err)
		}
		return true
	}
	return prefs.JobAlerts
}
