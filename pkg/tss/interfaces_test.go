package tss

import (
	"crypto/rand"
	"errors"
	"testing"

	"github.com/smallyu/go-dislog/pkg/ecgroup"
)

// MockPartyID implements PartyID for testing purposes.
type MockPartyID struct {
	id      string
	moniker string
	key     []byte
}

func (m *MockPartyID) ID() string {
	return m.id
}

func (m *MockPartyID) Moniker() string {
	return m.moniker
}

func (m *MockPartyID) Key() []byte {
	return m.key
}

// MockMessage implements Message for testing purposes.
type MockMessage struct {
	msgType     string
	from        PartyID
	to          []PartyID
	isBroadcast bool
	payload     []byte
	round       uint32
}

func (m *MockMessage) Type() string {
	return m.msgType
}

func (m *MockMessage) From() PartyID {
	return m.from
}

func (m *MockMessage) To() []PartyID {
	return m.to
}

func (m *MockMessage) IsBroadcast() bool {
	return m.isBroadcast
}

func (m *MockMessage) Payload() []byte {
	return m.payload
}

func (m *MockMessage) RoundNumber() uint32 {
	return m.round
}

func TestInterfaces(t *testing.T) {
	// Verify MockPartyID implements PartyID
	var _ PartyID = &MockPartyID{}

	// Verify MockMessage implements Message
	var _ Message = &MockMessage{}

	pid := &MockPartyID{id: "p1", moniker: "party1", key: []byte("key1")}
	if pid.ID() != "p1" {
		t.Errorf("expected p1, got %s", pid.ID())
	}

	msg := &MockMessage{
		msgType:     "test",
		from:        pid,
		isBroadcast: true,
		round:       1,
	}

	if msg.Type() != "test" {
		t.Errorf("expected test, got %s", msg.Type())
	}
	if !msg.IsBroadcast() {
		t.Error("expected broadcast message")
	}
}

func parties(ids ...string) []PartyID {
	out := make([]PartyID, len(ids))
	for i, id := range ids {
		out[i] = &MockPartyID{id: id}
	}
	return out
}

func TestParametersValidate(t *testing.T) {
	ps := parties("a", "b", "c")

	tests := []struct {
		name    string
		params  Parameters
		wantErr bool
	}{
		{"ok", Parameters{PartyID: ps[1], Parties: ps, Threshold: 1}, false},
		{"max threshold", Parameters{PartyID: ps[0], Parties: ps, Threshold: 2}, false},
		{"threshold too high", Parameters{PartyID: ps[0], Parties: ps, Threshold: 3}, true},
		{"zero threshold", Parameters{PartyID: ps[0], Parties: ps, Threshold: 0}, true},
		{"single party", Parameters{PartyID: ps[0], Parties: ps[:1], Threshold: 1}, true},
		{"no local party", Parameters{Parties: ps, Threshold: 1}, true},
		{"local party not listed", Parameters{PartyID: &MockPartyID{id: "z"}, Parties: ps, Threshold: 1}, true},
		{"duplicate", Parameters{PartyID: ps[0], Parties: append(parties("a"), ps...), Threshold: 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParametersShareID(t *testing.T) {
	ps := parties("a", "b", "c")
	params := &Parameters{PartyID: ps[0], Parties: ps, Threshold: 1, Curve: "secp256k1"}

	g, err := params.Group()
	if err != nil {
		t.Fatalf("Group() failed: %v", err)
	}
	if g.Name() != "secp256k1" {
		t.Errorf("expected secp256k1, got %s", g.Name())
	}

	id, err := params.ShareID(g, "c")
	if err != nil {
		t.Fatalf("ShareID failed: %v", err)
	}
	if !id.Equal(g.ScalarFromUint64(3)) {
		t.Errorf("expected share id 3, got %s", id.BigInt())
	}

	if _, err := params.ShareID(g, "z"); !errors.Is(err, ErrUnknownParty) {
		t.Errorf("expected ErrUnknownParty, got %v", err)
	}

	params.Curve = "p256"
	if _, err := params.Group(); !errors.Is(err, ecgroup.ErrUnknownCurve) {
		t.Errorf("expected ErrUnknownCurve, got %v", err)
	}

	if params.Reader() != rand.Reader {
		t.Error("expected crypto/rand as the default reader")
	}
}

func TestBlame(t *testing.T) {
	cause := errors.New("bad share")
	b := NewBlame(&MockPartyID{id: "p2"}, "vss share verification failed", cause)

	if b.Error() != "blame party p2: vss share verification failed: bad share" {
		t.Errorf("unexpected message %q", b.Error())
	}
	if !errors.Is(b, cause) {
		t.Error("expected Blame to unwrap to its cause")
	}

	var target *Blame
	if !errors.As(error(NewBlame(&MockPartyID{id: "p3"}, "x", nil)), &target) || target.PartyID.ID() != "p3" {
		t.Error("expected errors.As to find the blamed party")
	}
}
