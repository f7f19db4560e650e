package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bellsync/model"

	"github.com/gorilla/websocket"
)

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub()
	go hub.Run()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.Serve(w, r, model.NoPanic())
	}))
	t.Cleanup(func() {
		hub.Stop()
		srv.Close()
	})
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() = %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON() = %v", err)
	}
	return msg
}

func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("ClientCount() = %d, want %d", hub.ClientCount(), want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestServeSendsHello(t *testing.T) {
	_, srv := startHub(t)
	conn := dial(t, srv)

	msg := readMessage(t, conn)
	if msg.Type != MsgTypeHello {
		t.Fatalf("Type = %q, want hello", msg.Type)
	}
	var rec model.PanicRecord
	if err := json.Unmarshal(msg.Data, &rec); err != nil {
		t.Fatalf("decode hello data: %v", err)
	}
	if rec.Status != model.PanicNone {
		t.Fatalf("hello status = %q, want NONE", rec.Status)
	}
}

func TestPublishReachesEveryClient(t *testing.T) {
	hub, srv := startHub(t)
	a := dial(t, srv)
	b := dial(t, srv)
	readMessage(t, a)
	readMessage(t, b)
	waitForClients(t, hub, 2)

	rec := model.PanicRecord{Filename: "panic_x.mp3", Timestamp: "2024-03-01T08:30:00.000000Z", Status: model.PanicNew}
	hub.PanicSubmitted(rec)

	for _, conn := range []*websocket.Conn{a, b} {
		msg := readMessage(t, conn)
		if msg.Type != MsgTypePanicSubmitted {
			t.Fatalf("Type = %q, want panic_submitted", msg.Type)
		}
		var got model.PanicRecord
		json.Unmarshal(msg.Data, &got)
		if got != rec {
			t.Fatalf("data = %+v, want %+v", got, rec)
		}
	}
}

func TestDataChangedHasNoData(t *testing.T) {
	hub, srv := startHub(t)
	conn := dial(t, srv)
	readMessage(t, conn)
	waitForClients(t, hub, 1)

	hub.DataChanged()
	msg := readMessage(t, conn)
	if msg.Type != MsgTypeDataChanged {
		t.Fatalf("Type = %q, want data_changed", msg.Type)
	}
	if len(msg.Data) != 0 {
		t.Fatalf("Data = %s, want empty", msg.Data)
	}
	if msg.Timestamp == 0 {
		t.Fatalf("Timestamp = 0, want set")
	}
}

func TestClientLeavingIsUnregistered(t *testing.T) {
	hub, srv := startHub(t)
	conn := dial(t, srv)
	readMessage(t, conn)
	waitForClients(t, hub, 1)

	conn.Close()
	waitForClients(t, hub, 0)
}

func TestPublishWithoutClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	hub.DataChanged()
	hub.PanicDelivered(model.NoPanic())
	if hub.ClientCount() != 0 {
		t.Fatalf("ClientCount() = %d, want 0", hub.ClientCount())
	}
}
