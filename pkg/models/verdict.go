package models

// ViolationType identifies the category a message was flagged under
type ViolationType string

const (
	ViolationProfanity     ViolationType = "PROFANITY"
	ViolationHarassment    ViolationType = "HARASSMENT"
	ViolationOffensive     ViolationType = "OFFENSIVE"
	ViolationDiscordInvite ViolationType = "DISCORD_INVITE"
	ViolationSpamShouting  ViolationType = "SPAM"
	ViolationUnknown       ViolationType = "UNKNOWN"
)

// violationLabels maps each type to its Vietnamese display label,
// which is also the label persisted in violation records
var violationLabels = map[ViolationType]string{
	ViolationProfanity:     "Ngôn từ thô tục",
	ViolationHarassment:    "Quấy rối, gạ gẫm",
	ViolationOffensive:     "Nội dung xúc phạm",
	ViolationDiscordInvite: "Discord Invite Link",
	ViolationSpamShouting:  "Spam/Shouting",
	ViolationUnknown:       "Nội dung không phù hợp",
}

// Label returns the display label for the violation type
func (vt ViolationType) Label() string {
	if label, ok := violationLabels[vt]; ok {
		return label
	}
	return violationLabels[ViolationUnknown]
}

// TypeFromLabel resolves a display label back to its violation type.
// Labels the classifier invents map to ViolationUnknown.
func TypeFromLabel(label string) ViolationType {
	for vt, known := range violationLabels {
		if known == label {
			return vt
		}
	}
	return ViolationUnknown
}

// Verdict is the outcome of classifying a single message
type Verdict struct {
	IsViolation   bool          `json:"is_violation"`
	ViolationType ViolationType `json:"violation_type,omitempty"`
	Confidence    float64       `json:"confidence,omitempty"`
	Reason        string        `json:"reason,omitempty"`
}

// Clean is the verdict for a message that violates nothing
func Clean() Verdict {
	return Verdict{IsViolation: false}
}

// ClampConfidence forces the confidence into [0,1] regardless of what a
// classifier returned
func (v *Verdict) ClampConfidence() {
	if v.Confidence < 0 {
		v.Confidence = 0
	}
	if v.Confidence > 1 {
		v.Confidence = 1
	}
}
