package transport

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/greenm01/ec4x/ids"
)

// eventNamespace is a fixed UUID namespace so EventID is reproducible across
// runs (spec.md §4.12: "each event has a content-derived ID"). Generated
// once via uuid.NewString() at authoring time; never changes.
var eventNamespace = uuid.MustParse("7f2e9c2e-9b1c-4e9b-8f33-8a2e1c2c9a10")

// EventID derives a stable, content-based identifier for one publish call,
// so re-publishing the same (gameId, turn, house, kind, payload) after a
// retry or reconnect produces the identical ID the receiver has already
// seen, satisfying the transport's dedup contract.
func EventID(gameID string, turn int, house ids.HouseId, kind string, payload []byte) string {
	name := fmt.Sprintf("%s|%d|%d|%s|%x", gameID, turn, uint64(house), kind, payload)
	return uuid.NewSHA1(eventNamespace, []byte(name)).String()
}
