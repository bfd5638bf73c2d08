package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/greenm01/ec4x/ids"
)

func newTestAdapter(t *testing.T) (*Adapter, *websocket.Conn, func()) {
	t.Helper()
	upgrader := websocket.Upgrader{}
	var serverConn *websocket.Conn
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		serverConn = conn
	}))

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	clientConn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	time.Sleep(10 * time.Millisecond) // let the server-side upgrade complete

	a := NewAdapter()
	a.Register(1, serverConn)

	return a, clientConn, func() {
		clientConn.Close()
		srv.Close()
	}
}

func TestPublishFullStateDeliversOverWebsocket(t *testing.T) {
	a, clientConn, cleanup := newTestAdapter(t)
	defer cleanup()

	env := StateEnvelope{GameID: "game-1", Turn: 1, House: 1, EncryptedPayload: []byte("cipher"), EventID: "evt-1"}
	if err := a.PublishFullState(context.Background(), env); err != nil {
		t.Fatalf("PublishFullState: %v", err)
	}

	clientConn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := clientConn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if !strings.Contains(string(msg), "game-1") {
		t.Errorf("message = %s, want to contain gameId", msg)
	}
}

func TestPublishFullStateSuppressesDuplicateEventID(t *testing.T) {
	a, _, cleanup := newTestAdapter(t)
	defer cleanup()

	env := StateEnvelope{GameID: "game-1", Turn: 1, House: 1, EventID: "evt-dup"}
	if err := a.PublishFullState(context.Background(), env); err != nil {
		t.Fatalf("first publish: %v", err)
	}
	key := dedupKey{"game-1", ids.HouseId(1), "FullState", "evt-dup", DirectionOutbound}
	if !a.seen[key] {
		t.Fatal("expected event marked seen after first publish")
	}
	// Second publish of the same eventId must be silently dropped, not
	// attempted against the connection again (spec.md §6).
	if err := a.PublishFullState(context.Background(), env); err != nil {
		t.Errorf("duplicate publish should be silently dropped, got error: %v", err)
	}
}

func TestEventIDIsStableForIdenticalInput(t *testing.T) {
	id1 := EventID("game-1", 3, 1, "TurnDelta", []byte("payload"))
	id2 := EventID("game-1", 3, 1, "TurnDelta", []byte("payload"))
	if id1 != id2 {
		t.Errorf("EventID not stable: %s != %s", id1, id2)
	}
	id3 := EventID("game-1", 4, 1, "TurnDelta", []byte("payload"))
	if id1 == id3 {
		t.Error("EventID should differ when turn differs")
	}
}
