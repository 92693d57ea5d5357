package keygen

import (
	"github.com/smallyu/go-dislog/internal/crypto/zk/schnorr"
	"github.com/smallyu/go-dislog/pkg/tss"
)

// round4 verifies every peer's proof of possession of x_j against X_j.
func (s *state) round4() (tss.StateMachine, []tss.Message, error) {
	g := s.group

	for _, party := range s.params.Parties {
		id := party.ID()
		if id == s.params.PartyID.ID() {
			continue
		}
		msg := messageOf(s.receivedMsgs, id, typeRound3Proof)

		proof, err := schnorr.ParseProof(g, msg.Payload())
		if err != nil {
			return nil, nil, tss.NewBlame(msg.From(), "invalid proof encoding", err)
		}
		ctx := proofContext(s.params.SessionID, typeRound3Proof, id)
		if !proof.Verify(g, s.saveData.PublicShares[id], ctx) {
			return nil, nil, tss.NewBlame(msg.From(), "schnorr proof verification failed", nil)
		}
	}

	// Protocol Finished!
	return &finishedState{data: s.saveData}, nil, nil
}
