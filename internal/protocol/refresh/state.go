package refresh

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/smallyu/go-dislog/internal/crypto/polynomial"
	"github.com/smallyu/go-dislog/internal/protocol/keygen"
	"github.com/smallyu/go-dislog/pkg/dislog"
	"github.com/smallyu/go-dislog/pkg/tss"
)

type state struct {
	params     *tss.Parameters
	group      dislog.Group
	oldKeyData *keygen.LocalPartySaveData

	round    int
	saveData *keygen.LocalPartySaveData

	poly *polynomial.Polynomial
	vss  []dislog.Point

	receivedMsgs map[string][]tss.Message
}

// NewStateMachine initializes a new Key Refresh state machine. Every party
// re-randomizes its share; the group public key does not change.
func NewStateMachine(params *tss.Parameters, oldKeyData *keygen.LocalPartySaveData) (tss.StateMachine, []tss.Message, error) {
	if err := params.Validate(); err != nil {
		return nil, nil, err
	}
	g, err := params.Group()
	if err != nil {
		return nil, nil, err
	}
	if oldKeyData == nil || oldKeyData.Xi == nil || oldKeyData.PublicKey == nil {
		return nil, nil, errors.New("refresh: missing key data")
	}
	if oldKeyData.Curve != g.Name() {
		return nil, nil, errors.Errorf("refresh: key data is for %s, session uses %s", oldKeyData.Curve, g.Name())
	}
	if params.Threshold != oldKeyData.Threshold {
		return nil, nil, errors.Errorf("refresh: threshold %d differs from key generation threshold %d", params.Threshold, oldKeyData.Threshold)
	}
	if err := sameParties(params.Parties, oldKeyData.PublicShares); err != nil {
		return nil, nil, err
	}
	shareID, err := params.ShareID(g, params.PartyID.ID())
	if err != nil {
		return nil, nil, err
	}
	if !shareID.Equal(oldKeyData.ShareID) {
		return nil, nil, errors.New("refresh: party order differs from key generation")
	}

	s := &state{
		params:     params,
		group:      g,
		oldKeyData: oldKeyData,
		round:      1,
		saveData: &keygen.LocalPartySaveData{
			LocalPartyID: params.PartyID,
			Curve:        oldKeyData.Curve,
			Threshold:    oldKeyData.Threshold,
			ShareID:      oldKeyData.ShareID,
			// Public Key remains the same
			PublicKey: oldKeyData.PublicKey,
			Ui:        oldKeyData.Ui,
		},
		receivedMsgs: make(map[string][]tss.Message),
	}

	return s.round1()
}

// Initializer binds the key data to be refreshed, so a refresh session
// starts like any other protocol.
func Initializer(oldKeyData *keygen.LocalPartySaveData) tss.ProtocolInitializer {
	return func(params *tss.Parameters) (tss.StateMachine, []tss.Message, error) {
		return NewStateMachine(params, oldKeyData)
	}
}

// sameParties requires the session parties to be exactly the holders of
// the existing sharing.
func sameParties(parties []tss.PartyID, holders map[string]dislog.Point) error {
	if len(parties) != len(holders) {
		return errors.Errorf("refresh: session has %d parties, key is shared among %d", len(parties), len(holders))
	}
	for _, p := range parties {
		if _, ok := holders[p.ID()]; !ok {
			return errors.Errorf("refresh: party %s holds no share of this key", p.ID())
		}
	}
	return nil
}

func (s *state) Update(msg tss.Message) (tss.StateMachine, []tss.Message, error) {
	if msg.RoundNumber() != uint32(s.round) {
		return nil, nil, errors.Errorf("received message for round %d, expected %d", msg.RoundNumber(), s.round)
	}

	senderID := msg.From().ID()
	if senderID == s.params.PartyID.ID() {
		return s, nil, nil
	}
	if s.params.Index(senderID) < 0 {
		return nil, nil, errors.Wrap(tss.ErrUnknownParty, senderID)
	}
	if msg.Type() != typeRound1VSS && msg.Type() != typeRound1Share {
		return nil, nil, errors.Wrapf(tss.ErrInvalidMsg, "unexpected message type %s", msg.Type())
	}

	for _, existing := range s.receivedMsgs[senderID] {
		if existing.Type() == msg.Type() {
			return nil, nil, errors.Errorf("duplicate message type %s from party %s", msg.Type(), senderID)
		}
	}
	s.receivedMsgs[senderID] = append(s.receivedMsgs[senderID], msg)

	// Round 1: 1 Broadcast (VSS) + 1 P2P (Share)
	if len(s.receivedMsgs) < len(s.params.Parties)-1 {
		return s, nil, nil
	}
	for _, msgs := range s.receivedMsgs {
		if len(msgs) < 2 {
			return s, nil, nil
		}
	}

	return s.round2()
}

func (s *state) Result() interface{} {
	return nil
}

func (s *state) Details() string {
	return fmt.Sprintf("Refresh Round %d", s.round)
}

// Finished state
type finishedState struct {
	saveData *keygen.LocalPartySaveData
}

func (s *finishedState) Update(msg tss.Message) (tss.StateMachine, []tss.Message, error) {
	return nil, nil, tss.ErrProtocolDone
}

func (s *finishedState) Result() interface{} {
	return s.saveData
}

func (s *finishedState) Details() string {
	return "Refresh Finished"
}
