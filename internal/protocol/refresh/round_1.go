package refresh

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/smallyu/go-dislog/internal/crypto/polynomial"
	"github.com/smallyu/go-dislog/pkg/dislog"
	"github.com/smallyu/go-dislog/pkg/tss"
)

// round1 deals a zero-hole polynomial (constant term 0) and sends its
// Feldman commitments to everyone and F_i(j) to each peer.
func (s *state) round1() (tss.StateMachine, []tss.Message, error) {
	g := s.group

	poly, err := polynomial.New(g, s.params.Reader(), s.params.Threshold, g.ScalarZero())
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to generate polynomial")
	}
	s.poly = poly
	s.vss = poly.Commit()

	payload := vssPayload{Commitments: make([]dislog.Bytes33, len(s.vss))}
	for k, p := range s.vss {
		payload.Commitments[k] = p.Bytes()
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to encode commitments")
	}

	outMsgs := []tss.Message{&RefreshMessage{
		FromParty:  s.params.PartyID,
		ToParties:  nil,
		IsBcast:    true,
		Data:       data,
		TypeString: typeRound1VSS,
		RoundNum:   1,
	}}

	for _, peer := range s.params.Parties {
		if peer.ID() == s.params.PartyID.ID() {
			continue
		}
		x, err := s.params.ShareID(g, peer.ID())
		if err != nil {
			return nil, nil, err
		}
		share := poly.Evaluate(x).Bytes()
		outMsgs = append(outMsgs, &RefreshMessage{
			FromParty:  s.params.PartyID,
			ToParties:  []tss.PartyID{peer},
			IsBcast:    false,
			Data:       share[:],
			TypeString: typeRound1Share,
			RoundNum:   1,
		})
	}

	return s, outMsgs, nil
}
