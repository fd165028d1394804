package activity

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Payload is the decoded body of a log. The set of implementations is closed; logs whose
// signature is not recognized carry an Unknown payload with the raw signature, and logs of a known
// signature that do not decode carry an Undecoded payload.
type Payload interface {
	// Subject is the user the event is about, the zero address when there is none.
	Subject() common.Address

	isPayload()
}

// Registered is emitted when a user joins, optionally under a referrer.
type Registered struct {
	User     common.Address `json:"user"`
	Referrer common.Address `json:"referrer"`
}

// PackagePurchased is emitted when a user buys a package.
type PackagePurchased struct {
	User      common.Address `json:"user"`
	PackageID *big.Int       `json:"package_id"`
	Amount    *big.Int       `json:"amount"`
	Referrer  common.Address `json:"referrer"`
}

// ReferralRewardPaid is emitted when a referrer is paid for a referred user's activity.
type ReferralRewardPaid struct {
	Referrer common.Address `json:"referrer"`
	User     common.Address `json:"user"`
	Amount   *big.Int       `json:"amount"`
}

// AscensionBonusUnlocked is emitted when a user passes the referral threshold of the bonus tier.
type AscensionBonusUnlocked struct {
	User      common.Address `json:"user"`
	Referrals *big.Int       `json:"referrals"`
}

// AscensionBonusClaimed is emitted when a user withdraws an ascension bonus.
type AscensionBonusClaimed struct {
	User   common.Address `json:"user"`
	Amount *big.Int       `json:"amount"`
}

// Transfer is the ERC-20 Transfer event.
type Transfer struct {
	From  common.Address `json:"from"`
	To    common.Address `json:"to"`
	Value *big.Int       `json:"value"`
}

// Approval is the ERC-20 Approval event.
type Approval struct {
	Owner   common.Address `json:"owner"`
	Spender common.Address `json:"spender"`
	Value   *big.Int       `json:"value"`
}

// Unknown carries the raw signature of an unrecognized log. Logs without topics have a zero signature.
type Unknown struct {
	Signature common.Hash `json:"signature"`
}

// Undecoded is the payload of a log whose signature is known but whose topics or data do not fit it,
// for example an ERC-721 Transfer, which indexes its third argument. Reason holds the decode error.
type Undecoded struct {
	Signature common.Hash `json:"signature"`
	Reason    string      `json:"reason"`
}

func (p Registered) Subject() common.Address             { return p.User }
func (p PackagePurchased) Subject() common.Address       { return p.User }
func (p ReferralRewardPaid) Subject() common.Address     { return p.Referrer }
func (p AscensionBonusUnlocked) Subject() common.Address { return p.User }
func (p AscensionBonusClaimed) Subject() common.Address  { return p.User }
func (p Transfer) Subject() common.Address               { return p.From }
func (p Approval) Subject() common.Address               { return p.Owner }
func (p Unknown) Subject() common.Address                { return common.Address{} }
func (p Undecoded) Subject() common.Address              { return common.Address{} }

func (Registered) isPayload()             {}
func (PackagePurchased) isPayload()       {}
func (ReferralRewardPaid) isPayload()     {}
func (AscensionBonusUnlocked) isPayload() {}
func (AscensionBonusClaimed) isPayload()  {}
func (Transfer) isPayload()               {}
func (Approval) isPayload()               {}
func (Unknown) isPayload()                {}
func (Undecoded) isPayload()              {}
