package keygen

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/smallyu/go-dislog/internal/crypto/commitment"
	"github.com/smallyu/go-dislog/internal/crypto/polynomial"
	"github.com/smallyu/go-dislog/internal/crypto/zk/schnorr"
	"github.com/smallyu/go-dislog/pkg/dislog"
	"github.com/smallyu/go-dislog/pkg/tss"
)

// round3 checks every opening and share, derives x_i, X and the public
// shares, and broadcasts a proof of knowledge of x_i.
func (s *state) round3() (tss.StateMachine, []tss.Message, error) {
	g := s.group
	myID := s.params.PartyID.ID()

	// x_i starts with our own share F_i(i)
	xi := s.poly.Evaluate(s.saveData.ShareID)

	s.allVss = map[string][]dislog.Point{myID: s.vss}

	for _, party := range s.params.Parties {
		id := party.ID()
		if id == myID {
			continue
		}
		decommitMsg := messageOf(s.receivedMsgs, id, typeRound2Decommit)
		shareMsg := messageOf(s.receivedMsgs, id, typeRound2Share)

		vss, err := s.openDecommitment(id, decommitMsg.Payload())
		if err != nil {
			return nil, nil, tss.NewBlame(decommitMsg.From(), "invalid decommitment", err)
		}
		s.allVss[id] = vss

		share, err := parseShare(g, shareMsg.Payload())
		if err != nil {
			return nil, nil, tss.NewBlame(shareMsg.From(), "invalid share", err)
		}
		if !polynomial.VerifyShare(g, vss, s.saveData.ShareID, share) {
			return nil, nil, tss.NewBlame(shareMsg.From(), "vss share verification failed", nil)
		}

		xi = xi.Add(share)
	}

	// X = sum_j A_j,0 and X_j = sum_k F_k(j) * G
	constants := make([]dislog.Point, 0, len(s.allVss))
	for _, vss := range s.allVss {
		constants = append(constants, vss[0])
	}
	publicKey := dislog.SumPoints(g, constants...)
	if publicKey.IsIdentity() {
		return nil, nil, errors.New("keygen: public key is the identity")
	}

	publicShares := make(map[string]dislog.Point, len(s.params.Parties))
	for _, party := range s.params.Parties {
		x, err := s.params.ShareID(g, party.ID())
		if err != nil {
			return nil, nil, err
		}
		evals := make([]dislog.Point, 0, len(s.allVss))
		for _, vss := range s.allVss {
			evals = append(evals, polynomial.EvaluateCommitments(vss, x))
		}
		publicShares[party.ID()] = dislog.SumPoints(g, evals...)
	}
	if !g.BaseMul(xi).Equal(publicShares[myID]) {
		return nil, nil, errors.New("keygen: own share does not match public share")
	}

	s.saveData.Xi = xi
	s.saveData.PublicKey = publicKey
	s.saveData.PublicShares = publicShares

	// Proof of possession for X_i
	ctx := proofContext(s.params.SessionID, typeRound3Proof, myID)
	proof, err := schnorr.Prove(g, s.params.Reader(), xi, publicShares[myID], ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to generate schnorr proof")
	}

	msg := &KeyGenMessage{
		FromParty:  s.params.PartyID,
		ToParties:  nil,
		IsBcast:    true,
		Data:       proof.Bytes(),
		TypeString: typeRound3Proof,
		RoundNum:   3,
	}
	return s.advance(), []tss.Message{msg}, nil
}

// openDecommitment parses a round 2 broadcast from id and checks it against
// the round 1 commitment, returning the dealer's Feldman commitments.
func (s *state) openDecommitment(id string, data []byte) ([]dislog.Point, error) {
	g := s.group

	var payload decommitPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, errors.Wrap(tss.ErrInvalidMsg, err.Error())
	}
	if len(payload.Commitments) != s.params.Threshold+1 {
		return nil, errors.Wrapf(tss.ErrInvalidMsg, "got %d commitments, want %d", len(payload.Commitments), s.params.Threshold+1)
	}

	vss := make([]dislog.Point, len(payload.Commitments))
	for k, b := range payload.Commitments {
		p, err := g.PointFromBytes(b)
		if err != nil {
			return nil, errors.Wrapf(err, "commitment %d", k)
		}
		vss[k] = p
	}

	if !commitment.VerifyComplex(g.NewHash, s.peerCommitments[id], payload.Salt, decommitParts(vss, payload.Proof)...) {
		return nil, errors.New("commitment verification failed")
	}

	proof, err := schnorr.ParseProof(g, payload.Proof)
	if err != nil {
		return nil, err
	}
	if !proof.Verify(g, vss[0], proofContext(s.params.SessionID, typeRound1Commit, id)) {
		return nil, errors.New("schnorr proof verification failed")
	}
	return vss, nil
}

func parseShare(g dislog.Group, b []byte) (dislog.Scalar, error) {
	if len(b) != dislog.ScalarSize {
		return nil, errors.Wrapf(tss.ErrInvalidMsg, "share is %d bytes, want %d", len(b), dislog.ScalarSize)
	}
	return g.ScalarFromBytes(b)
}
