package types

type EventType string

func (e EventType) String() string {
	return string(e)
}

// Ledger event types, one per committed operation.
const (
	EventPoolInitialized      EventType = "POOL_INITIALIZED"
	EventValidatorRegistered  EventType = "VALIDATOR_REGISTERED"
	EventValidatorDeactivated EventType = "VALIDATOR_DEACTIVATED"
	EventValidatorActivated   EventType = "VALIDATOR_ACTIVATED"
	EventDeposit              EventType = "DEPOSIT"
	EventInstantWithdrawal    EventType = "INSTANT_WITHDRAWAL"
	EventDelegation           EventType = "DELEGATION"
	EventRewardsHarvested     EventType = "REWARDS_HARVESTED"
	EventRewardsUpdated       EventType = "REWARDS_UPDATED"
	EventRebalanced           EventType = "REBALANCED"
	EventFeesWithdrawn        EventType = "FEES_WITHDRAWN"
)
