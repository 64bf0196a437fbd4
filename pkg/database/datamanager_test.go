package database

import (
	"testing"

	"github.com/SaigonStudios/GuardBotGo/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
)

// TestOfflineWritesQueue verifies that Set and Delete queue instead of
// touching the collection when the database never connected
func TestOfflineWritesQueue(t *testing.T) {
	db := NewDatabase()
	dm := NewDataManager[models.BotSetting]("bot_settings", db)

	setting, err := dm.Set(bson.M{"_id": "mute_duration"}, bson.M{"value": "15"})
	if err != nil {
		t.Fatalf("offline Set: %v", err)
	}
	if setting != nil {
		t.Errorf("offline Set returned %+v, want nil", setting)
	}

	if err := dm.Delete(bson.M{"_id": "mute_duration"}); err != nil {
		t.Fatalf("offline Delete: %v", err)
	}

	db.queueMu.Lock()
	queued := make([]QueuedOperation, len(db.writeQueue))
	copy(queued, db.writeQueue)
	db.queueMu.Unlock()

	if len(queued) != 2 {
		t.Fatalf("write queue holds %d operations, want 2", len(queued))
	}
	for _, op := range queued {
		if op.CollectionName != "bot_settings" {
			t.Errorf("queued operation names collection %q, want %q", op.CollectionName, "bot_settings")
		}
	}
	if queued[0].Operation != "set" || queued[1].Operation != "delete" {
		t.Errorf("queued operations are %q, %q, want set, delete", queued[0].Operation, queued[1].Operation)
	}
}

// TestOfflineGet verifies that a cache miss without a connection errors
// instead of panicking
func TestOfflineGet(t *testing.T) {
	db := NewDatabase()
	dm := NewDataManager[models.BotSetting]("guild_settings", db)

	result, err := dm.Get(bson.M{"_id": "missing"})
	if err == nil {
		t.Fatal("offline Get returned no error")
	}
	if result != nil {
		t.Errorf("offline Get returned %+v, want nil", result)
	}
}
