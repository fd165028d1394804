package activity

import (
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// ErrDecode is returned when a log matches a known signature but its topics or data do not fit it.
var ErrDecode = errors.New("failed to decode log")

// knownEventsABI describes the events the pipeline decodes into typed payloads:
// the referral contract events and the ERC-20 token events.
const knownEventsABI = `[
	{"type":"event","name":"UserRegistered","anonymous":false,"inputs":[
		{"name":"user","type":"address","indexed":true},
		{"name":"referrer","type":"address","indexed":true}]},
	{"type":"event","name":"PackagePurchased","anonymous":false,"inputs":[
		{"name":"user","type":"address","indexed":true},
		{"name":"packageId","type":"uint256","indexed":true},
		{"name":"amount","type":"uint256","indexed":false},
		{"name":"referrer","type":"address","indexed":false}]},
	{"type":"event","name":"ReferralRewardPaid","anonymous":false,"inputs":[
		{"name":"referrer","type":"address","indexed":true},
		{"name":"user","type":"address","indexed":true},
		{"name":"amount","type":"uint256","indexed":false}]},
	{"type":"event","name":"AscensionBonusUnlocked","anonymous":false,"inputs":[
		{"name":"user","type":"address","indexed":true},
		{"name":"referralCount","type":"uint256","indexed":false}]},
	{"type":"event","name":"AscensionBonusClaimed","anonymous":false,"inputs":[
		{"name":"user","type":"address","indexed":true},
		{"name":"amount","type":"uint256","indexed":false}]},
	{"type":"event","name":"Transfer","anonymous":false,"inputs":[
		{"name":"from","type":"address","indexed":true},
		{"name":"to","type":"address","indexed":true},
		{"name":"value","type":"uint256","indexed":false}]},
	{"type":"event","name":"Approval","anonymous":false,"inputs":[
		{"name":"owner","type":"address","indexed":true},
		{"name":"spender","type":"address","indexed":true},
		{"name":"value","type":"uint256","indexed":false}]}
]`

type payloadBuilder func(v *fields) Payload

var builders = map[string]payloadBuilder{
	"UserRegistered": func(v *fields) Payload {
		return Registered{User: v.address("user"), Referrer: v.address("referrer")}
	},
	"PackagePurchased": func(v *fields) Payload {
		return PackagePurchased{
			User:      v.address("user"),
			PackageID: v.bigInt("packageId"),
			Amount:    v.bigInt("amount"),
			Referrer:  v.address("referrer"),
		}
	},
	"ReferralRewardPaid": func(v *fields) Payload {
		return ReferralRewardPaid{
			Referrer: v.address("referrer"),
			User:     v.address("user"),
			Amount:   v.bigInt("amount"),
		}
	},
	"AscensionBonusUnlocked": func(v *fields) Payload {
		return AscensionBonusUnlocked{User: v.address("user"), Referrals: v.bigInt("referralCount")}
	},
	"AscensionBonusClaimed": func(v *fields) Payload {
		return AscensionBonusClaimed{User: v.address("user"), Amount: v.bigInt("amount")}
	},
	"Transfer": func(v *fields) Payload {
		return Transfer{From: v.address("from"), To: v.address("to"), Value: v.bigInt("value")}
	},
	"Approval": func(v *fields) Payload {
		return Approval{Owner: v.address("owner"), Spender: v.address("spender"), Value: v.bigInt("value")}
	},
}

// EventSpec is one entry of the signature table.
type EventSpec struct {
	Name      string
	Signature string
	Topic     common.Hash

	event abi.Event
	build payloadBuilder
}

// Decode turns the topics and data of a log into the typed payload of this event.
func (s *EventSpec) Decode(topics []common.Hash, data []byte) (Payload, error) {
	if len(topics) == 0 || topics[0] != s.Topic {
		return nil, fmt.Errorf("%w: %s: first topic does not match signature", ErrDecode, s.Name)
	}

	var indexed abi.Arguments
	for _, arg := range s.event.Inputs {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}

	values := make(map[string]any, len(s.event.Inputs))
	if err := abi.ParseTopicsIntoMap(values, indexed, topics[1:]); err != nil {
		return nil, fmt.Errorf("%w: %s topics: %w", ErrDecode, s.Name, err)
	}
	if err := s.event.Inputs.UnpackIntoMap(values, data); err != nil {
		return nil, fmt.Errorf("%w: %s data: %w", ErrDecode, s.Name, err)
	}

	f := &fields{values: values}
	payload := s.build(f)
	if f.err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, s.Name, f.err)
	}

	return payload, nil
}

// SignatureTable maps the first topic of a log to a known event.
type SignatureTable struct {
	byTopic map[common.Hash]*EventSpec
}

// DefaultSignatureTable returns the table of every event the pipeline knows how to decode.
func DefaultSignatureTable() *SignatureTable {
	parsed, err := abi.JSON(strings.NewReader(knownEventsABI))
	if err != nil {
		panic(fmt.Sprintf("invalid built-in events ABI: %v", err))
	}

	table := &SignatureTable{byTopic: make(map[common.Hash]*EventSpec, len(parsed.Events))}
	for name, ev := range parsed.Events {
		build, ok := builders[name]
		if !ok {
			panic(fmt.Sprintf("no payload builder for event %s", name))
		}

		table.byTopic[ev.ID] = &EventSpec{
			Name:      name,
			Signature: ev.Sig,
			Topic:     ev.ID,
			event:     ev,
			build:     build,
		}
	}

	return table
}

// Lookup returns the event registered under topic.
func (t *SignatureTable) Lookup(topic common.Hash) (*EventSpec, bool) {
	spec, ok := t.byTopic[topic]
	return spec, ok
}

// Name resolves topic to an event name, UnknownEventName when absent.
func (t *SignatureTable) Name(topic common.Hash) string {
	if spec, ok := t.byTopic[topic]; ok {
		return spec.Name
	}
	return UnknownEventName
}

// Specs lists all entries sorted by name.
func (t *SignatureTable) Specs() []*EventSpec {
	specs := make([]*EventSpec, 0, len(t.byTopic))
	for _, s := range t.byTopic {
		specs = append(specs, s)
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].Name < specs[j].Name })
	return specs
}

// fields reads typed values out of an ABI unpack map, remembering the first mismatch.
type fields struct {
	values map[string]any
	err    error
}

func (f *fields) address(name string) common.Address {
	v, ok := f.values[name].(common.Address)
	if !ok && f.err == nil {
		f.err = fmt.Errorf("field %s: expected address, got %T", name, f.values[name])
	}
	return v
}

func (f *fields) bigInt(name string) *big.Int {
	v, ok := f.values[name].(*big.Int)
	if !ok {
		if f.err == nil {
			f.err = fmt.Errorf("field %s: expected uint256, got %T", name, f.values[name])
		}
		return nil
	}
	return v
}
