package refresh

import (
	"github.com/smallyu/go-dislog/pkg/dislog"
	"github.com/smallyu/go-dislog/pkg/tss"
)

const (
	typeRound1VSS   = "RefreshRound1_VSS"
	typeRound1Share = "RefreshRound1_Share"
)

// RefreshMessage is the concrete message type for Key Refresh.
type RefreshMessage struct {
	FromParty  tss.PartyID
	ToParties  []tss.PartyID
	IsBcast    bool
	Data       []byte
	TypeString string
	RoundNum   uint32
}

func (m *RefreshMessage) Type() string {
	return m.TypeString
}

func (m *RefreshMessage) From() tss.PartyID {
	return m.FromParty
}

func (m *RefreshMessage) To() []tss.PartyID {
	return m.ToParties
}

func (m *RefreshMessage) IsBroadcast() bool {
	return m.IsBcast
}

func (m *RefreshMessage) Payload() []byte {
	return m.Data
}

func (m *RefreshMessage) RoundNumber() uint32 {
	return m.RoundNum
}

type vssPayload struct {
	Commitments []dislog.Bytes33 `json:"commitments"`
}
