package keygen

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"

	"github.com/smallyu/go-dislog/internal/crypto/polynomial"
	"github.com/smallyu/go-dislog/internal/crypto/zk/schnorr"
	"github.com/smallyu/go-dislog/pkg/dislog"
	"github.com/smallyu/go-dislog/pkg/tss"
)

// expectedTypes lists the messages every peer sends in each round.
var expectedTypes = map[int][]string{
	1: {typeRound1Commit},
	2: {typeRound2Decommit, typeRound2Share},
	3: {typeRound3Proof},
}

var _ tss.ProtocolInitializer = NewStateMachine

type state struct {
	params *tss.Parameters
	group  dislog.Group

	// Current round number (1-based)
	round int

	// Data being built up
	saveData *LocalPartySaveData

	// Carried between rounds
	poly            *polynomial.Polynomial
	vss             []dislog.Point
	proof           *schnorr.Proof
	decommit        []byte
	peerCommitments map[string][]byte
	allVss          map[string][]dislog.Point

	// Messages received in the current round
	// Map: PartyID.ID() -> Messages
	receivedMsgs map[string][]tss.Message
}

// NewStateMachine initializes a new KeyGen state machine.
// It immediately executes Round 1 logic to generate the first set of messages.
func NewStateMachine(params *tss.Parameters) (tss.StateMachine, []tss.Message, error) {
	if err := params.Validate(); err != nil {
		return nil, nil, err
	}
	g, err := params.Group()
	if err != nil {
		return nil, nil, err
	}
	shareID, err := params.ShareID(g, params.PartyID.ID())
	if err != nil {
		return nil, nil, err
	}

	s := &state{
		params: params,
		group:  g,
		round:  1,
		saveData: &LocalPartySaveData{
			LocalPartyID: params.PartyID,
			Curve:        g.Name(),
			Threshold:    params.Threshold,
			ShareID:      shareID,
		},
		receivedMsgs: make(map[string][]tss.Message),
	}

	return s.round1()
}

func (s *state) Update(msg tss.Message) (tss.StateMachine, []tss.Message, error) {
	if err := collect(s.params, s.round, expectedTypes[s.round], s.receivedMsgs, msg); err != nil {
		return nil, nil, err
	}
	if !complete(s.params, expectedTypes[s.round], s.receivedMsgs) {
		return s, nil, nil
	}
	return s.nextRound()
}

func (s *state) nextRound() (tss.StateMachine, []tss.Message, error) {
	switch s.round {
	case 1:
		return s.round2()
	case 2:
		return s.round3()
	case 3:
		return s.round4()
	default:
		return nil, nil, errors.Errorf("unknown round %d", s.round)
	}
}

// advance moves to the next round with an empty inbox.
func (s *state) advance() *state {
	s.round++
	s.receivedMsgs = make(map[string][]tss.Message)
	return s
}

func (s *state) Result() interface{} {
	return nil
}

func (s *state) Details() string {
	return fmt.Sprintf("KeyGen Round %d", s.round)
}

// Finished state
type finishedState struct {
	data *LocalPartySaveData
}

func (s *finishedState) Update(msg tss.Message) (tss.StateMachine, []tss.Message, error) {
	return nil, nil, tss.ErrProtocolDone
}

func (s *finishedState) Result() interface{} {
	return s.data
}

func (s *finishedState) Details() string {
	return "KeyGen Finished"
}

// collect validates msg against the current round and stores it. Messages
// looped back from the local party are dropped.
func collect(params *tss.Parameters, round int, types []string, received map[string][]tss.Message, msg tss.Message) error {
	if msg.RoundNumber() != uint32(round) {
		return errors.Errorf("received message for round %d, expected %d", msg.RoundNumber(), round)
	}

	senderID := msg.From().ID()
	if senderID == params.PartyID.ID() {
		return nil
	}
	if params.Index(senderID) < 0 {
		return errors.Wrap(tss.ErrUnknownParty, senderID)
	}

	known := false
	for _, t := range types {
		if msg.Type() == t {
			known = true
			break
		}
	}
	if !known {
		return errors.Wrapf(tss.ErrInvalidMsg, "unexpected message type %s in round %d", msg.Type(), round)
	}

	for _, existing := range received[senderID] {
		if existing.Type() == msg.Type() {
			return errors.Errorf("duplicate message type %s from party %s", msg.Type(), senderID)
		}
	}
	received[senderID] = append(received[senderID], msg)
	return nil
}

// complete reports whether every peer has sent every expected message.
func complete(params *tss.Parameters, types []string, received map[string][]tss.Message) bool {
	if len(received) < len(params.Parties)-1 {
		return false
	}
	for _, msgs := range received {
		if len(msgs) < len(types) {
			return false
		}
	}
	return true
}

// messageOf returns the message of the given type sent by id.
func messageOf(received map[string][]tss.Message, id, msgType string) tss.Message {
	for _, m := range received[id] {
		if m.Type() == msgType {
			return m
		}
	}
	return nil
}

// proofContext binds a Schnorr proof to the session, the protocol step and
// the prover.
func proofContext(sessionID []byte, step, partyID string) []byte {
	var out []byte
	for _, part := range [][]byte{sessionID, []byte(step), []byte(partyID)} {
		out = binary.BigEndian.AppendUint32(out, uint32(len(part)))
		out = append(out, part...)
	}
	return out
}
