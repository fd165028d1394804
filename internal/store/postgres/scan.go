package postgres

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/ChainActivity/pkg/store"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

func scanUser(row pgx.Row) (*store.UserRecord, error) {
	var (
		u                       store.UserRecord
		address                 string
		rewards, sales, claimed string
		createdAt, updatedAt    time.Time
	)

	err := row.Scan(&u.ID, &address, &u.TotalReferrals, &rewards, &u.IsRegistered, &u.AscensionBonusReferrals,
		&sales, &claimed, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	u.Address = common.HexToAddress(address)
	if err := parseDecimals(
		[]string{rewards, sales, claimed},
		[]*decimal.Decimal{&u.TotalRewards, &u.AscensionBonusSalesTotal, &u.AscensionBonusRewardsClaimed},
	); err != nil {
		return nil, err
	}
	u.CreatedAt, u.UpdatedAt = createdAt.UTC(), updatedAt.UTC()

	return &u, nil
}

func scanEventRow(row pgx.CollectableRow) (*store.EventRow, error) {
	var (
		e                                         store.EventRow
		user, txHash, contract, sender, signature string
		packageID, amount, referrer, recipient    *string
		value                                     string
		logIndex, block, timestamp, gasUsed       int64
		status                                    int16
		createdAt                                 time.Time
	)

	err := row.Scan(&e.ID, &e.EventType, &user, &packageID, &amount, &referrer, &txHash, &logIndex, &block,
		&timestamp, &contract, &sender, &recipient, &value, &gasUsed, &status, &signature, &e.EventData, &createdAt)
	if err != nil {
		return nil, err
	}

	e.UserAddress = common.HexToAddress(user)
	e.TransactionHash = common.HexToHash(txHash)
	e.ContractAddress = common.HexToAddress(contract)
	e.SenderAddress = common.HexToAddress(sender)
	e.EventSignature = common.HexToHash(signature)
	e.ReferrerAddress = parseOptionalAddress(referrer)
	e.RecipientAddress = parseOptionalAddress(recipient)
	e.LogIndex, e.BlockNumber, e.Timestamp, e.GasUsed = uint64(logIndex), uint64(block), uint64(timestamp), uint64(gasUsed) //nolint:gosec,lll
	e.Status = uint8(status)                                                                                                //nolint:gosec
	e.CreatedAt = createdAt.UTC()

	if e.Value, err = decimal.NewFromString(value); err != nil {
		return nil, fmt.Errorf("invalid value %q: %w", value, err)
	}
	if e.PackageID, err = parseOptionalDecimal(packageID); err != nil {
		return nil, err
	}
	if e.Amount, err = parseOptionalDecimal(amount); err != nil {
		return nil, err
	}

	return &e, nil
}

func parseDecimals(raw []string, dst []*decimal.Decimal) error {
	for i, s := range raw {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return fmt.Errorf("invalid decimal %q: %w", s, err)
		}
		*dst[i] = d
	}
	return nil
}

func parseOptionalDecimal(s *string) (*decimal.Decimal, error) {
	if s == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, fmt.Errorf("invalid decimal %q: %w", *s, err)
	}
	return &d, nil
}

func parseOptionalAddress(s *string) *common.Address {
	if s == nil {
		return nil
	}
	a := common.HexToAddress(*s)
	return &a
}

func optionalDecimal(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func optionalAddress(a *common.Address) *string {
	if a == nil {
		return nil
	}
	s := a.Hex()
	return &s
}
