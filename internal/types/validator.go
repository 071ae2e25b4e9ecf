package types

type ValidatorStatus string

const (
	ValidatorStatusActive   ValidatorStatus = "ACTIVE"
	ValidatorStatusInactive ValidatorStatus = "INACTIVE"
)

func (s ValidatorStatus) String() string {
	return string(s)
}

func ValidatorStatusFromActive(active bool) ValidatorStatus {
	if active {
		return ValidatorStatusActive
	}
	return ValidatorStatusInactive
}
