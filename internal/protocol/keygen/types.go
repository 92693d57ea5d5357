package keygen

import (
	"github.com/smallyu/go-dislog/pkg/dislog"
	"github.com/smallyu/go-dislog/pkg/tss"
)

// Message types, one per round except round 2 which sends both.
const (
	typeRound1Commit   = "KeyGenRound1"
	typeRound2Decommit = "KeyGenRound2_Decommit"
	typeRound2Share    = "KeyGenRound2_Share"
	typeRound3Proof    = "KeyGenRound3_Proof"
)

// LocalPartySaveData contains the final result of the KeyGen protocol
// that needs to be persisted by the local party.
type LocalPartySaveData struct {
	LocalPartyID tss.PartyID
	Curve        string

	// Polynomial degree t; t+1 shares open the secret.
	Threshold int

	// Evaluation point of this party, its index in Parties plus one.
	ShareID dislog.Scalar

	// Private key share x_i = sum_j F_j(i)
	Xi dislog.Scalar

	// Group public key X = sum_j A_j,0
	PublicKey dislog.Point

	// X_j = x_j * G for every party, keyed by party ID.
	PublicShares map[string]dislog.Point

	// Our contribution to the secret (u_i)
	// This is the constant term of our polynomial F_i(x)
	Ui dislog.Scalar
}

// KeyGenMessage is a concrete implementation of tss.Message for KeyGen
type KeyGenMessage struct {
	FromParty  tss.PartyID
	ToParties  []tss.PartyID
	IsBcast    bool
	Data       []byte
	TypeString string
	RoundNum   uint32
}

func (m *KeyGenMessage) Type() string {
	return m.TypeString
}

func (m *KeyGenMessage) From() tss.PartyID {
	return m.FromParty
}

func (m *KeyGenMessage) To() []tss.PartyID {
	return m.ToParties
}

func (m *KeyGenMessage) IsBroadcast() bool {
	return m.IsBcast
}

func (m *KeyGenMessage) Payload() []byte {
	return m.Data
}

func (m *KeyGenMessage) RoundNumber() uint32 {
	return m.RoundNum
}

// decommitPayload opens the round 1 commitment: the Feldman commitments of
// the dealer's polynomial and a proof of knowledge of its constant term.
type decommitPayload struct {
	Salt        []byte           `json:"salt"`
	Commitments []dislog.Bytes33 `json:"commitments"`
	Proof       []byte           `json:"proof"`
}
