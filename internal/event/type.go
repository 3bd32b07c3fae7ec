package event

// NotificationEventPushModel matches the payload consumed by the notification service:
// { lstUserIds?: string[], title: string, body: string, data?: any }
type NotificationEventPushModel struct {
	LstUserIds []string       `json:"lstUserIds,omitempty"`
	Title      string         `json:"title"`
	Body       string         `json:"body"`
	Data       map[string]any `json:"data,omitempty"`
}

const PushNotiQueue string = "push_noti_events"

// values for Data["type"]
const (
	NotiTypeProfessionalRequired = "damage_assessment.professional_required"
	NotiTypeProfessionalFollowUp = "damage_assessment.professional_follow_up"
	NotiTypeClaimDocumentReady   = "claim_document.ready"
	NotiTypeClaimDocumentFailed  = "claim_document.failed"
)
