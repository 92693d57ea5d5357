//go:build js && wasm

package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"syscall/js"

	"github.com/smallyu/go-dislog/internal/protocol/keygen"
	"github.com/smallyu/go-dislog/pkg/dislog"
	"github.com/smallyu/go-dislog/pkg/ecgroup"
	"github.com/smallyu/go-dislog/pkg/tss"
)

// Global map to store active state machines
// Key: session handle
var sessions = make(map[string]tss.StateMachine)

func main() {
	c := make(chan struct{})

	fmt.Println("go-dislog WASM Initialized")

	// Expose Go functions to JS
	js.Global().Set("GoDislog", map[string]interface{}{
		"Generator": js.FuncOf(Generator),
		"BaseMul":   js.FuncOf(BaseMul),
		"PointAdd":  js.FuncOf(PointAdd),
		"NewKeyGen": js.FuncOf(NewKeyGen),
		"Update":    js.FuncOf(Update),
		"Result":    js.FuncOf(Result),
	})

	<-c
}

func group(v js.Value) (dislog.Group, error) {
	return ecgroup.ByName(v.String())
}

// Generator returns the encoded base point.
// Arguments:
// 0: curve name
func Generator(this js.Value, args []js.Value) interface{} {
	if len(args) != 1 {
		return "error: expected 1 argument (curve)"
	}
	g, err := group(args[0])
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return g.Generator().String()
}

// BaseMul returns k * G.
// Arguments:
// 0: curve name
// 1: scalar, 64 hex digits little-endian
func BaseMul(this js.Value, args []js.Value) interface{} {
	if len(args) != 2 {
		return "error: expected 2 arguments (curve, scalar)"
	}
	g, err := group(args[0])
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	k, err := dislog.ScalarFromHex(g, args[1].String())
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return g.BaseMul(k).String()
}

// PointAdd returns P + Q.
// Arguments:
// 0: curve name
// 1, 2: points, 66 hex digits
func PointAdd(this js.Value, args []js.Value) interface{} {
	if len(args) != 3 {
		return "error: expected 3 arguments (curve, p, q)"
	}
	g, err := group(args[0])
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	p, err := dislog.PointFromHex(g, args[1].String())
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	q, err := dislog.PointFromHex(g, args[2].String())
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return p.Add(q).String()
}

// NewKeyGen initializes a new KeyGen session.
// Arguments:
// 0: JSON string of parameters
// Returns:
// JSON object { sessionID, messages } or an error string
func NewKeyGen(this js.Value, args []js.Value) interface{} {
	if len(args) != 1 {
		return "error: expected 1 argument (jsonParams)"
	}

	type ParamsInput struct {
		PartyID    string   `json:"partyID"`
		AllParties []string `json:"allParties"`
		Threshold  int      `json:"threshold"`
		Curve      string   `json:"curve"`
		SessionID  string   `json:"sessionID"`
	}

	var input ParamsInput
	if err := json.Unmarshal([]byte(args[0].String()), &input); err != nil {
		return fmt.Sprintf("error: invalid json: %v", err)
	}
	if input.Curve == "" {
		input.Curve = ecgroup.Default().Name()
	}

	parties := make([]tss.PartyID, len(input.AllParties))
	var localParty tss.PartyID
	for i, pid := range input.AllParties {
		p := &SimplePartyID{IDVal: pid, MonikerVal: pid}
		parties[i] = p
		if pid == input.PartyID {
			localParty = p
		}
	}
	if localParty == nil {
		return "error: local party ID not found in allParties"
	}

	params := &tss.Parameters{
		PartyID:   localParty,
		Parties:   parties,
		Threshold: input.Threshold,
		Curve:     input.Curve,
		SessionID: []byte(input.SessionID),
	}

	sm, outMsgs, err := keygen.NewStateMachine(params)
	if err != nil {
		return fmt.Sprintf("error: failed to create state machine: %v", err)
	}

	sessionHandle := fmt.Sprintf("%s-%s", input.PartyID, input.SessionID)
	sessions[sessionHandle] = sm

	resp := map[string]interface{}{
		"sessionID": sessionHandle,
		"messages":  encodeMessages(outMsgs),
	}
	respBytes, _ := json.Marshal(resp)
	return string(respBytes)
}

// MessageDTO is the JS form of a protocol message.
type MessageDTO struct {
	From        string   `json:"from"`
	To          []string `json:"to"`
	IsBroadcast bool     `json:"isBroadcast"`
	Data        string   `json:"data"` // Hex encoded
	Type        string   `json:"type"`
	Round       uint32   `json:"round"`
}

// Update processes an incoming message.
// Arguments:
// 0: Session ID (string)
// 1: JSON string of message
// Returns:
// JSON string of output messages (array)
func Update(this js.Value, args []js.Value) interface{} {
	if len(args) != 2 {
		return "error: expected 2 arguments (sessionID, jsonMsg)"
	}

	sessionID := args[0].String()
	sm, ok := sessions[sessionID]
	if !ok {
		return "error: session not found"
	}

	var dto MessageDTO
	if err := json.Unmarshal([]byte(args[1].String()), &dto); err != nil {
		return fmt.Sprintf("error: invalid message dto: %v", err)
	}
	dataBytes, err := hex.DecodeString(dto.Data)
	if err != nil {
		return fmt.Sprintf("error: invalid hex data: %v", err)
	}

	var toParties []tss.PartyID
	for _, t := range dto.To {
		toParties = append(toParties, &SimplePartyID{IDVal: t, MonikerVal: t})
	}

	msg := &keygen.KeyGenMessage{
		FromParty:  &SimplePartyID{IDVal: dto.From, MonikerVal: dto.From},
		ToParties:  toParties,
		IsBcast:    dto.IsBroadcast,
		Data:       dataBytes,
		TypeString: dto.Type,
		RoundNum:   dto.Round,
	}

	nextSm, outMsgs, err := sm.Update(msg)
	if err != nil {
		return fmt.Sprintf("error: update failed: %v", err)
	}
	if nextSm != nil {
		sessions[sessionID] = nextSm
	}

	return marshalMessages(outMsgs)
}

// Result returns the final result if available.
// Arguments:
// 0: Session ID (string)
// Returns:
// JSON string or null
func Result(this js.Value, args []js.Value) interface{} {
	if len(args) != 1 {
		return "error: expected 1 argument (sessionID)"
	}
	sm, ok := sessions[args[0].String()]
	if !ok {
		return "error: session not found"
	}

	res, ok := sm.Result().(*keygen.LocalPartySaveData)
	if !ok || res == nil {
		return nil // Not finished
	}

	// Points and scalars go out in their hex text form.
	publicShares := make(map[string]string, len(res.PublicShares))
	for id, p := range res.PublicShares {
		publicShares[id] = p.String()
	}
	out := map[string]interface{}{
		"partyID":      res.LocalPartyID.ID(),
		"curve":        res.Curve,
		"threshold":    res.Threshold,
		"shareID":      res.ShareID.String(),
		"xi":           res.Xi.String(),
		"publicKey":    res.PublicKey.String(),
		"publicShares": publicShares,
	}
	resBytes, err := json.Marshal(out)
	if err != nil {
		return fmt.Sprintf("error: marshal result failed: %v", err)
	}
	return string(resBytes)
}

// Helpers

type SimplePartyID struct {
	IDVal      string
	MonikerVal string
}

func (p *SimplePartyID) ID() string      { return p.IDVal }
func (p *SimplePartyID) Moniker() string { return p.MonikerVal }
func (p *SimplePartyID) Key() []byte     { return []byte(p.IDVal) }

func encodeMessages(msgs []tss.Message) []MessageDTO {
	out := make([]MessageDTO, 0, len(msgs))
	for _, m := range msgs {
		var to []string
		for _, p := range m.To() {
			to = append(to, p.ID())
		}
		out = append(out, MessageDTO{
			From:        m.From().ID(),
			To:          to,
			IsBroadcast: m.IsBroadcast(),
			Data:        hex.EncodeToString(m.Payload()),
			Type:        m.Type(),
			Round:       m.RoundNumber(),
		})
	}
	return out
}

func marshalMessages(msgs []tss.Message) string {
	b, _ := json.Marshal(encodeMessages(msgs))
	return string(b)
}
