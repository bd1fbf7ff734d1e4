package service

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// CalculateReward computes the consultant payout from the gross fee, the
// platform fee rate and the fixed transfer fee. The rate arrives as a string
// so the exact decimal representation from configuration is preserved; binary
// floating point never enters the calculation.
//
//	platform_fee = floor_toward_zero(gross_fee * rate / 100)
//	reward       = gross_fee - platform_fee - transfer_fee
func CalculateReward(grossFeeInYen int, platformFeeRate string, transferFeeInYen int) (int, error) {
	rate, err := decimal.NewFromString(platformFeeRate)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFeeRate, platformFeeRate)
	}
	gross := decimal.NewFromInt(int64(grossFeeInYen))
	platformFee := gross.Mul(rate).Div(oneHundred).Truncate(0)
	reward := gross.Sub(platformFee).Sub(decimal.NewFromInt(int64(transferFeeInYen)))
	return int(reward.IntPart()), nil
}
