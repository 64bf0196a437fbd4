package models

import "time"

// Setting keys read by the moderation pipeline
const (
	SettingMuteDuration       = "mute_duration"
	SettingInviteMuteDuration = "invite_mute_duration"
	SettingAIModeration       = "ai_moderation"
)

// BotSetting is a key-value pair in the "bot_settings" collection
type BotSetting struct {
	Key         string    `bson:"_id" json:"key"`
	Value       string    `bson:"value" json:"value"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}
