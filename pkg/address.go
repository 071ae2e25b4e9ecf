package pkg

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// ValidateAddress checks that address is a bech32 account address with the
// given human readable prefix.
func ValidateAddress(address, prefix string) error {
	if prefix == "" {
		return fmt.Errorf("empty address prefix")
	}
	bz, err := sdk.GetFromBech32(address, prefix)
	if err != nil {
		return err
	}

	return sdk.VerifyAddressFormat(bz)
}
