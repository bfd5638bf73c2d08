package persist

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/greenm01/ec4x/houses"
)

// TestGameSnapshotDocRoundTripsThroughBSON exercises the encode/decode path
// SaveSnapshot/LoadSnapshot rely on, without requiring a live Mongo
// deployment (CRUD against *mongo.Collection is exercised by the host's
// integration suite, not here).
func TestGameSnapshotDocRoundTripsThroughBSON(t *testing.T) {
	h := houses.New(1, "House Atreides", 1000)
	h.Prestige = 42
	doc := GameSnapshotDoc{
		GameID:     "game-1",
		Turn:       3,
		CapturedAt: time.Unix(0, 0).UTC(),
		Houses:     []houses.House{*h},
	}

	raw, err := bson.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded GameSnapshotDoc
	if err := bson.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.GameID != "game-1" || decoded.Turn != 3 {
		t.Fatalf("decoded = %+v, want GameID=game-1 Turn=3", decoded)
	}
	if len(decoded.Houses) != 1 || decoded.Houses[0].Prestige != 42 {
		t.Fatalf("decoded.Houses = %+v, want one house with Prestige=42", decoded.Houses)
	}
}

func TestSlotMappingDocRoundTripsThroughBSON(t *testing.T) {
	doc := SlotMappingDoc{GameID: "game-1", HouseID: 7, Pubkey: []byte{1, 2, 3, 4}}
	raw, err := bson.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded SlotMappingDoc
	if err := bson.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.HouseID != 7 || string(decoded.Pubkey) != string([]byte{1, 2, 3, 4}) {
		t.Fatalf("decoded = %+v, want HouseID=7 Pubkey=[1 2 3 4]", decoded)
	}
}
