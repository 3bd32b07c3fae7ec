package event

import (
	"context"
	"fmt"
)

type Publisher interface {
	PublishNotification(ctx context.Context, event NotificationEventPushModel) error
}

// NotificationHelper provides convenient methods for publishing common notification types
type NotificationHelper struct {
	publisher Publisher
}

func NewNotificationHelper(publisher Publisher) *NotificationHelper {
	return &NotificationHelper{publisher: publisher}
}

// NotifyProfessionalAssessmentRequired tells the owner an assessment now needs a professional.
func (h *NotificationHelper) NotifyProfessionalAssessmentRequired(ctx context.Context, userID, assessmentID, reason string) error {
	return h.publisher.PublishNotification(ctx, NotificationEventPushModel{
		LstUserIds: []string{userID},
		Title:      "Professional Assessment Recommended",
		Body:       reason,
		Data: map[string]any{
			"type":          NotiTypeProfessionalRequired,
			"assessment_id": assessmentID,
		},
	})
}

func (h *NotificationHelper) NotifyProfessionalFollowUp(ctx context.Context, userID, assessmentID string, hoursPending int) error {
	return h.publisher.PublishNotification(ctx, NotificationEventPushModel{
		LstUserIds: []string{userID},
		Title:      "Reminder: Contact a Professional",
		Body: fmt.Sprintf("Your damage assessment has needed a professional evaluation for over %d hours. "+
			"Contacting an adjuster or contractor early helps your claim.", hoursPending),
		Data: map[string]any{
			"type":          NotiTypeProfessionalFollowUp,
			"assessment_id": assessmentID,
		},
	})
}

func (h *NotificationHelper) NotifyClaimDocumentReady(ctx context.Context, userID, fileName, url string) error {
	return h.publisher.PublishNotification(ctx, NotificationEventPushModel{
		LstUserIds: []string{userID},
		Title:      "Claim Document Ready",
		Body:       fmt.Sprintf("Your claim document %s is ready to download.", fileName),
		Data: map[string]any{
			"type":      NotiTypeClaimDocumentReady,
			"file_name": fileName,
			"url":       url,
		},
	})
}

func (h *NotificationHelper) NotifyClaimDocumentFailed(ctx context.Context, userID, fileName string) error {
	return h.publisher.PublishNotification(ctx, NotificationEventPushModel{
		LstUserIds: []string{userID},
		Title:      "Claim Document Failed",
		Body:       fmt.Sprintf("We could not generate %s. Please try again.", fileName),
		Data: map[string]any{
			"type":      NotiTypeClaimDocumentFailed,
			"file_name": fileName,
		},
	})
}
