package services

import (
	"context"

	"github.com/fluidstake/liquid-staking-pool/internal/db/model"
	"github.com/fluidstake/liquid-staking-pool/internal/pool"
	"github.com/fluidstake/liquid-staking-pool/internal/types"
	"github.com/fluidstake/liquid-staking-pool/pkg"
)

type empty struct{}

func (s *Service) InitializePool(ctx context.Context, authority string) *types.Error {
	_, err := execute(ctx, s, "initialize", authority,
		func(ctx context.Context) (empty, *model.LedgerEventDocument, error) {
			if err := s.ledger.Initialize(ctx, authority); err != nil {
				return empty{}, nil, err
			}
			return empty{}, &model.LedgerEventDocument{Type: types.EventPoolInitialized}, nil
		})
	return err
}

func (s *Service) RegisterValidator(
	ctx context.Context, caller, identity string, allocationPct uint32,
) (pool.ValidatorRecord, *types.Error) {
	return execute(ctx, s, "register_validator", caller,
		func(ctx context.Context) (pool.ValidatorRecord, *model.LedgerEventDocument, error) {
			rec, err := s.ledger.RegisterValidator(ctx, caller, identity, allocationPct)
			if err != nil {
				return rec, nil, err
			}
			return rec, &model.LedgerEventDocument{
				Type:           types.EventValidatorRegistered,
				ValidatorIndex: pkg.Ptr(rec.Index),
				Identity:       identity,
				Amounts:        map[string]uint64{"allocation_percentage": uint64(allocationPct)},
			}, nil
		})
}

func (s *Service) DeactivateValidator(ctx context.Context, caller string, index uint32) *types.Error {
	return s.setValidatorActive(ctx, caller, index, false)
}

func (s *Service) ActivateValidator(ctx context.Context, caller string, index uint32) *types.Error {
	return s.setValidatorActive(ctx, caller, index, true)
}

func (s *Service) setValidatorActive(ctx context.Context, caller string, index uint32, active bool) *types.Error {
	operation, eventType := "deactivate_validator", types.EventValidatorDeactivated
	if active {
		operation, eventType = "activate_validator", types.EventValidatorActivated
	}

	_, err := execute(ctx, s, operation, caller,
		func(ctx context.Context) (empty, *model.LedgerEventDocument, error) {
			var err error
			if active {
				err = s.ledger.ActivateValidator(ctx, caller, index)
			} else {
				err = s.ledger.DeactivateValidator(ctx, caller, index)
			}
			if err != nil {
				return empty{}, nil, err
			}
			return empty{}, &model.LedgerEventDocument{
				Type:           eventType,
				ValidatorIndex: pkg.Ptr(index),
			}, nil
		})
	return err
}

func (s *Service) Deposit(ctx context.Context, caller string, amount uint64) (uint64, *types.Error) {
	return execute(ctx, s, "deposit", caller,
		func(ctx context.Context) (uint64, *model.LedgerEventDocument, error) {
			minted, err := s.ledger.Deposit(ctx, caller, amount)
			if err != nil {
				return 0, nil, err
			}
			return minted, &model.LedgerEventDocument{
				Type: types.EventDeposit,
				Amounts: map[string]uint64{
					"amount":         amount,
					"receipt_minted": minted,
				},
			}, nil
		})
}

func (s *Service) Withdraw(ctx context.Context, caller string, receiptAmount uint64) (pool.WithdrawResult, *types.Error) {
	return execute(ctx, s, "instant_withdraw", caller,
		func(ctx context.Context) (pool.WithdrawResult, *model.LedgerEventDocument, error) {
			res, err := s.ledger.Withdraw(ctx, caller, receiptAmount)
			if err != nil {
				return res, nil, err
			}
			return res, &model.LedgerEventDocument{
				Type: types.EventInstantWithdrawal,
				Amounts: map[string]uint64{
					"receipt_burned": res.ReceiptBurned,
					"gross":          res.Gross,
					"fee":            res.Fee,
					"net":            res.Net,
				},
			}, nil
		})
}

func (s *Service) Delegate(
	ctx context.Context, caller string, index uint32, amount, slot uint64,
) (pool.DelegationRef, *types.Error) {
	return execute(ctx, s, "delegate", caller,
		func(ctx context.Context) (pool.DelegationRef, *model.LedgerEventDocument, error) {
			ref, err := s.ledger.Delegate(ctx, caller, index, amount, slot)
			if err != nil {
				return ref, nil, err
			}
			return ref, &model.LedgerEventDocument{
				Type:           types.EventDelegation,
				ValidatorIndex: pkg.Ptr(index),
				Identity:       ref.Target,
				Amounts: map[string]uint64{
					"amount": amount,
					"slot":   slot,
				},
			}, nil
		})
}

func (s *Service) HarvestRewards(ctx context.Context, caller string, index uint32) (pool.HarvestResult, *types.Error) {
	return execute(ctx, s, "harvest_rewards", caller,
		func(ctx context.Context) (pool.HarvestResult, *model.LedgerEventDocument, error) {
			res, err := s.ledger.HarvestRewards(ctx, caller, index)
			if err != nil || !res.Harvested {
				return res, nil, err
			}
			return res, &model.LedgerEventDocument{
				Type:           types.EventRewardsHarvested,
				ValidatorIndex: pkg.Ptr(index),
				Amounts: map[string]uint64{
					"observed_balance": res.ObservedBalance,
					"rewards":          res.Split.Total,
					"protocol_fee":     res.Split.ProtocolFee,
					"user_rewards":     res.Split.UserRewards,
				},
			}, nil
		})
}

func (s *Service) UpdateRewards(ctx context.Context, caller string, totalRewards uint64) (pool.RewardSplit, *types.Error) {
	return execute(ctx, s, "update_rewards", caller,
		func(ctx context.Context) (pool.RewardSplit, *model.LedgerEventDocument, error) {
			split, err := s.ledger.UpdateRewards(ctx, caller, totalRewards)
			if err != nil {
				return split, nil, err
			}
			return split, &model.LedgerEventDocument{
				Type: types.EventRewardsUpdated,
				Amounts: map[string]uint64{
					"rewards":      split.Total,
					"protocol_fee": split.ProtocolFee,
					"user_rewards": split.UserRewards,
				},
			}, nil
		})
}

func (s *Service) Rebalance(ctx context.Context, caller string) (pool.RebalanceReport, *types.Error) {
	return execute(ctx, s, "rebalance", caller,
		func(ctx context.Context) (pool.RebalanceReport, *model.LedgerEventDocument, error) {
			report, err := s.ledger.Rebalance(ctx, caller)
			if err != nil {
				return report, nil, err
			}
			return report, &model.LedgerEventDocument{
				Type: types.EventRebalanced,
				Amounts: map[string]uint64{
					"current_ratio":  report.CurrentRatio,
					"target_reserve": report.TargetReserve,
					"unstaked":       report.Unstaked,
					"shortfall":      report.Shortfall,
					"surplus":        report.Surplus,
				},
			}, nil
		})
}

func (s *Service) WithdrawFees(ctx context.Context, caller string, amount uint64) *types.Error {
	_, err := execute(ctx, s, "withdraw_fees", caller,
		func(ctx context.Context) (empty, *model.LedgerEventDocument, error) {
			if err := s.ledger.WithdrawFees(ctx, caller, amount); err != nil {
				return empty{}, nil, err
			}
			return empty{}, &model.LedgerEventDocument{
				Type:    types.EventFeesWithdrawn,
				Amounts: map[string]uint64{"amount": amount},
			}, nil
		})
	return err
}
