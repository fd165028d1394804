package store

import (
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/ChainActivity/pkg/activity"
	"github.com/shopspring/decimal"
)

// EventRow is one event attributed to one user. An event reaching three participants is stored as three rows.
type EventRow struct {
	ID               int64            `meddler:"id,pk" json:"id"`
	EventType        string           `meddler:"event_type" json:"event_type"`
	UserAddress      common.Address   `meddler:"user_address,address" json:"user_address"`
	PackageID        *decimal.Decimal `meddler:"package_id,decimal" json:"package_id,omitempty"`
	Amount           *decimal.Decimal `meddler:"amount,decimal" json:"amount,omitempty"`
	ReferrerAddress  *common.Address  `meddler:"referrer_address,address" json:"referrer_address,omitempty"`
	TransactionHash  common.Hash      `meddler:"transaction_hash,hash" json:"transaction_hash"`
	LogIndex         uint64           `meddler:"log_index" json:"log_index"`
	BlockNumber      uint64           `meddler:"block_number" json:"block_number"`
	Timestamp        uint64           `meddler:"timestamp" json:"timestamp"`
	ContractAddress  common.Address   `meddler:"contract_address,address" json:"contract_address"`
	SenderAddress    common.Address   `meddler:"sender_address,address" json:"sender_address"`
	RecipientAddress *common.Address  `meddler:"recipient_address,address" json:"recipient_address,omitempty"`
	Value            decimal.Decimal  `meddler:"value,decimal" json:"value"`
	GasUsed          uint64           `meddler:"gas_used" json:"gas_used"`
	Status           uint8            `meddler:"status" json:"status"`
	EventSignature   common.Hash      `meddler:"event_signature,hash" json:"event_signature"`
	EventData        string           `meddler:"event_data" json:"event_data"`
	CreatedAt        time.Time        `meddler:"created_at,utctime" json:"created_at"`
}

// NewEventRow builds the row storing ev for user.
func NewEventRow(ev *activity.Event, user common.Address) (*EventRow, error) {
	data, err := json.Marshal(ev.Payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload of %s: %w", ev.Key(), err)
	}

	row := &EventRow{
		EventType:        ev.Name,
		UserAddress:      user,
		TransactionHash:  ev.TxHash,
		LogIndex:         uint64(ev.LogIndex),
		BlockNumber:      ev.BlockNumber,
		Timestamp:        ev.Timestamp,
		ContractAddress:  ev.Contract,
		SenderAddress:    ev.From,
		RecipientAddress: ev.To,
		Value:            Decimal(ev.Value),
		Status:           uint8(ev.Status),
		EventSignature:   ev.Signature,
		EventData:        string(data),
	}
	if ev.GasUsed != nil {
		row.GasUsed = ev.GasUsed.Uint64()
	}

	switch p := ev.Payload.(type) {
	case activity.Registered:
		row.ReferrerAddress = nonZero(p.Referrer)
	case activity.PackagePurchased:
		row.PackageID = DecimalPtr(p.PackageID)
		row.Amount = DecimalPtr(p.Amount)
		row.ReferrerAddress = nonZero(p.Referrer)
	case activity.ReferralRewardPaid:
		row.Amount = DecimalPtr(p.Amount)
		row.ReferrerAddress = nonZero(p.Referrer)
	case activity.AscensionBonusClaimed:
		row.Amount = DecimalPtr(p.Amount)
	case activity.Transfer:
		row.Amount = DecimalPtr(p.Value)
	case activity.Approval:
		row.Amount = DecimalPtr(p.Value)
	}

	return row, nil
}

// Decimal converts an integer amount, nil maps to zero.
func Decimal(v *big.Int) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(v, 0)
}

// DecimalPtr converts an optional integer amount.
func DecimalPtr(v *big.Int) *decimal.Decimal {
	if v == nil {
		return nil
	}
	d := decimal.NewFromBigInt(v, 0)
	return &d
}

func nonZero(a common.Address) *common.Address {
	if a == (common.Address{}) {
		return nil
	}
	return &a
}
