package database

import (
	"errors"
	"strconv"
	"time"

	"github.com/SaigonStudios/GuardBotGo/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
)

var ErrSettingsManagerNotInitialized = errors.New("settings data manager not initialized")

// settingDefaults are the values used when a key has never been stored
var settingDefaults = map[string]models.BotSetting{
	models.SettingMuteDuration: {
		Key:         models.SettingMuteDuration,
		Value:       "10",
		Description: "Minutes a member is timed out after a keyword or AI violation",
	},
	models.SettingInviteMuteDuration: {
		Key:         models.SettingInviteMuteDuration,
		Value:       "5",
		Description: "Minutes a member is timed out after posting an invite link",
	},
	models.SettingAIModeration: {
		Key:         models.SettingAIModeration,
		Value:       "true",
		Description: "Whether messages are sent to the AI classifier before keyword filtering",
	},
}

// GetSetting returns the stored setting for key, falling back to the
// built-in default. Unknown keys return nil.
func GetSetting(key string) (*models.BotSetting, error) {
	if GlobalSettingsDM == nil {
		return nil, ErrSettingsManagerNotInitialized
	}

	setting, err := GlobalSettingsDM.Get(bson.M{"_id": key})
	if err != nil {
		return nil, err
	}
	if setting != nil {
		return setting, nil
	}

	if def, ok := settingDefaults[key]; ok {
		return &def, nil
	}
	return nil, nil
}

// SetSetting stores a setting value, creating the key if needed
func SetSetting(key, value string) (*models.BotSetting, error) {
	if GlobalSettingsDM == nil {
		return nil, ErrSettingsManagerNotInitialized
	}

	description := ""
	if def, ok := settingDefaults[key]; ok {
		description = def.Description
	}

	return GlobalSettingsDM.Set(bson.M{"_id": key}, bson.M{
		"value":       value,
		"description": description,
		"updated_at":  time.Now().UTC(),
	})
}

// AllSettings returns every known setting as a flat key/value map,
// stored values layered over the defaults
func AllSettings() (map[string]string, error) {
	if GlobalSettingsDM == nil {
		return nil, ErrSettingsManagerNotInitialized
	}

	out := make(map[string]string, len(settingDefaults))
	for key, def := range settingDefaults {
		out[key] = def.Value
	}

	stored, err := GlobalSettingsDM.GetAll(bson.M{})
	if err != nil {
		return nil, err
	}
	for _, setting := range stored {
		out[setting.Key] = setting.Value
	}
	return out, nil
}

// settingInt reads a setting as an integer, falling back to the
// default when the stored value does not parse
func settingInt(key string) int {
	setting, err := GetSetting(key)
	if err != nil || setting == nil {
		if def, ok := settingDefaults[key]; ok {
			n, _ := strconv.Atoi(def.Value)
			return n
		}
		return 0
	}
	n, err := strconv.Atoi(setting.Value)
	if err != nil {
		n, _ = strconv.Atoi(settingDefaults[key].Value)
	}
	return n
}

// MuteDurationMinutes is the timeout applied for keyword and AI violations
func MuteDurationMinutes() int {
	return settingInt(models.SettingMuteDuration)
}

// InviteMuteDurationMinutes is the timeout applied for invite links
func InviteMuteDurationMinutes() int {
	return settingInt(models.SettingInviteMuteDuration)
}

// AIModerationEnabled reports whether the AI classifier should run
func AIModerationEnabled() bool {
	setting, err := GetSetting(models.SettingAIModeration)
	if err != nil || setting == nil {
		return true
	}
	return setting.Value != "false"
}
