package keygen

import (
	"github.com/pkg/errors"

	"github.com/smallyu/go-dislog/internal/crypto/commitment"
	"github.com/smallyu/go-dislog/internal/crypto/polynomial"
	"github.com/smallyu/go-dislog/internal/crypto/zk/schnorr"
	"github.com/smallyu/go-dislog/pkg/dislog"
	"github.com/smallyu/go-dislog/pkg/tss"
)

// round1 deals a random polynomial of degree t and broadcasts a commitment
// to its Feldman commitments and to a proof of knowledge of u_i.
func (s *state) round1() (tss.StateMachine, []tss.Message, error) {
	g := s.group
	rand := s.params.Reader()

	// 1. Generate VSS polynomial F_i with random u_i
	poly, err := polynomial.New(g, rand, s.params.Threshold, nil)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to generate polynomial")
	}
	s.poly = poly
	s.saveData.Ui = poly.Secret()

	// 2. Feldman commitments A_i,k = a_k * G
	s.vss = poly.Commit()

	// 3. Proof of knowledge of u_i for A_i,0
	ctx := proofContext(s.params.SessionID, typeRound1Commit, s.params.PartyID.ID())
	s.proof, err = schnorr.Prove(g, rand, poly.Secret(), s.vss[0], ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to prove knowledge of u_i")
	}

	// 4. C = H(salt || A_i,0 || ... || A_i,t || proof)
	comm, err := commitment.NewComplex(g.NewHash, rand, decommitParts(s.vss, s.proof.Bytes())...)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to create commitment")
	}
	s.decommit = comm.D

	msg := &KeyGenMessage{
		FromParty:  s.params.PartyID,
		ToParties:  nil, // Broadcast
		IsBcast:    true,
		Data:       comm.C,
		TypeString: typeRound1Commit,
		RoundNum:   1,
	}
	return s, []tss.Message{msg}, nil
}

// decommitParts lists the committed values in order.
func decommitParts(vss []dislog.Point, proof []byte) [][]byte {
	parts := make([][]byte, 0, len(vss)+1)
	for _, p := range vss {
		b := p.Bytes()
		parts = append(parts, b[:])
	}
	return append(parts, proof)
}
