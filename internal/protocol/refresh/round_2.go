package refresh

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/smallyu/go-dislog/internal/crypto/polynomial"
	"github.com/smallyu/go-dislog/pkg/dislog"
	"github.com/smallyu/go-dislog/pkg/tss"
)

// round2 verifies the zero-hole sharings and adds them to the old shares.
func (s *state) round2() (tss.StateMachine, []tss.Message, error) {
	g := s.group
	myID := s.params.PartyID.ID()

	xi := s.oldKeyData.Xi.Add(s.poly.Evaluate(s.saveData.ShareID))
	allVss := [][]dislog.Point{s.vss}

	for _, party := range s.params.Parties {
		id := party.ID()
		if id == myID {
			continue
		}
		var vssMsg, shareMsg tss.Message
		for _, m := range s.receivedMsgs[id] {
			switch m.Type() {
			case typeRound1VSS:
				vssMsg = m
			case typeRound1Share:
				shareMsg = m
			}
		}

		vss, err := s.parseVSS(vssMsg.Payload())
		if err != nil {
			return nil, nil, tss.NewBlame(vssMsg.From(), "invalid commitments", err)
		}
		if !vss[0].IsIdentity() {
			return nil, nil, tss.NewBlame(vssMsg.From(), "refresh polynomial has a non-zero constant term", nil)
		}

		if len(shareMsg.Payload()) != dislog.ScalarSize {
			return nil, nil, tss.NewBlame(shareMsg.From(), "invalid share", tss.ErrInvalidMsg)
		}
		share, err := g.ScalarFromBytes(shareMsg.Payload())
		if err != nil {
			return nil, nil, tss.NewBlame(shareMsg.From(), "invalid share", err)
		}
		if !polynomial.VerifyShare(g, vss, s.saveData.ShareID, share) {
			return nil, nil, tss.NewBlame(shareMsg.From(), "vss share verification failed", nil)
		}

		xi = xi.Add(share)
		allVss = append(allVss, vss)
	}

	publicShares := make(map[string]dislog.Point, len(s.params.Parties))
	for _, party := range s.params.Parties {
		x, err := s.params.ShareID(g, party.ID())
		if err != nil {
			return nil, nil, err
		}
		old, ok := s.oldKeyData.PublicShares[party.ID()]
		if !ok {
			return nil, nil, errors.Wrapf(tss.ErrUnknownParty, "no public share for %s", party.ID())
		}
		terms := []dislog.Point{old}
		for _, vss := range allVss {
			terms = append(terms, polynomial.EvaluateCommitments(vss, x))
		}
		publicShares[party.ID()] = dislog.SumPoints(g, terms...)
	}
	if !g.BaseMul(xi).Equal(publicShares[myID]) {
		return nil, nil, errors.New("refresh: own share does not match public share")
	}

	s.saveData.Xi = xi
	s.saveData.PublicShares = publicShares
	return &finishedState{saveData: s.saveData}, nil, nil
}

func (s *state) parseVSS(data []byte) ([]dislog.Point, error) {
	var payload vssPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, errors.Wrap(tss.ErrInvalidMsg, err.Error())
	}
	if len(payload.Commitments) != s.params.Threshold+1 {
		return nil, errors.Wrapf(tss.ErrInvalidMsg, "got %d commitments, want %d", len(payload.Commitments), s.params.Threshold+1)
	}
	vss := make([]dislog.Point, len(payload.Commitments))
	for k, b := range payload.Commitments {
		p, err := s.group.PointFromBytes(b)
		if err != nil {
			return nil, errors.Wrapf(err, "commitment %d", k)
		}
		vss[k] = p
	}
	return vss, nil
}
