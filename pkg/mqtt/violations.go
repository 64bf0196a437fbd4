package mqtt

import (
	"fmt"

	"github.com/SaigonStudios/GuardBotGo/pkg/logger"
	"github.com/SaigonStudios/GuardBotGo/pkg/models"
	"github.com/SaigonStudios/GuardBotGo/pkg/violations"
)

// ViolationPublisher pushes every recorded violation to the broker so
// external consumers can react in real time.
type ViolationPublisher struct {
	mc *MqttCommunicator
}

// NewViolationPublisher wires a communicator into a publisher. A nil or
// disconnected communicator produces a publisher that drops events.
func NewViolationPublisher(mc *MqttCommunicator) *ViolationPublisher {
	return &ViolationPublisher{mc: mc}
}

// ViolationRecorded publishes one violation to guardbot/violations/<guildID>
func (p *ViolationPublisher) ViolationRecorded(record models.ViolationRecord) {
	if p.mc == nil || !p.mc.IsConnected() {
		return
	}

	topic := fmt.Sprintf("guardbot/violations/%s", record.GuildID)
	if err := p.mc.Publish(topic, record); err != nil {
		logger.Warn(fmt.Sprintf("Failed to publish violation to %s: %v", topic, err), "MQTT")
	}
}

// RegisterStatsHandler serves violation statistics over the broker's
// request/response channel (topic guardbot/request/stats).
func RegisterStatsHandler(mc *MqttCommunicator, store *violations.Store) {
	if mc == nil {
		return
	}

	mc.On("stats", func(payload map[string]interface{}) (interface{}, error) {
		guildID, _ := payload["guild_id"].(string)
		days := 7
		if raw, ok := payload["days"].(float64); ok && raw > 0 {
			days = int(raw)
		}

		return store.Stats(guildID, days), nil
	})
}
