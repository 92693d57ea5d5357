package keygen

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/smallyu/go-dislog/pkg/dislog"
	"github.com/smallyu/go-dislog/pkg/tss"
)

// round2 records the peer commitments, then opens our own and sends each
// peer its share F_i(j).
func (s *state) round2() (tss.StateMachine, []tss.Message, error) {
	// 1. Process Round 1 Messages (Commitments)
	s.peerCommitments = make(map[string][]byte, len(s.receivedMsgs))
	for id := range s.receivedMsgs {
		s.peerCommitments[id] = messageOf(s.receivedMsgs, id, typeRound1Commit).Payload()
	}

	// 2a. Broadcast Decommitment
	payload := decommitPayload{
		Salt:        s.decommit,
		Commitments: make([]dislog.Bytes33, len(s.vss)),
		Proof:       s.proof.Bytes(),
	}
	for k, p := range s.vss {
		payload.Commitments[k] = p.Bytes()
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to encode decommitment")
	}

	outMsgs := []tss.Message{&KeyGenMessage{
		FromParty:  s.params.PartyID,
		ToParties:  nil,
		IsBcast:    true,
		Data:       data,
		TypeString: typeRound2Decommit,
		RoundNum:   2,
	}}

	// 2b. Send VSS Shares (P2P)
	for _, peer := range s.params.Parties {
		if peer.ID() == s.params.PartyID.ID() {
			continue
		}
		x, err := s.params.ShareID(s.group, peer.ID())
		if err != nil {
			return nil, nil, err
		}
		share := s.poly.Evaluate(x).Bytes()

		outMsgs = append(outMsgs, &KeyGenMessage{
			FromParty:  s.params.PartyID,
			ToParties:  []tss.PartyID{peer},
			IsBcast:    false,
			Data:       share[:],
			TypeString: typeRound2Share,
			RoundNum:   2,
		})
	}

	return s.advance(), outMsgs, nil
}
