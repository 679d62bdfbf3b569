// Package protocol builds the fork schedule: the ordered list of protocol
// milestones and the rule set governing any given block height.
package protocol

import (
	"github.com/ethereum/go-ethereum/common"

	"veilchain/config"
	"veilchain/core/gas"
	"veilchain/core/privacy"
	"veilchain/core/types"
)

// ProcessorConstructor builds a private transaction processor bound to one
// fork's gas calculator. The node supplies the real execution engine; tests
// supply stubs.
type ProcessorConstructor func(calculator gas.Calculator) privacy.Processor

type milestone struct {
	name       string
	block      uint64
	calculator gas.Calculator
	processor  privacy.Processor
}

// Schedule maps block heights to the rule set active at that height.
// Milestones are ordered by activation block; the highest activated one wins.
type Schedule struct {
	milestones []milestone
}

// NewSchedule builds the schedule from the configured fork heights. The base
// milestone is live from genesis; Constantinople takes over at its configured
// block, which may be zero to run the newest rules from the start.
func NewSchedule(cfg *config.Config, newProcessor ProcessorConstructor) *Schedule {
	forks := []struct {
		name  string
		block uint64
		fork  gas.Fork
	}{
		{"byzantium", 0, gas.Byzantium},
		{"constantinople", cfg.Forks.ConstantinopleBlock, gas.Constantinople},
	}

	s := &Schedule{}
	for _, f := range forks {
		calculator := gas.ForFork(f.fork)
		s.milestones = append(s.milestones, milestone{
			name:       f.name,
			block:      f.block,
			calculator: calculator,
			processor:  newProcessor(calculator),
		})
	}
	return s
}

// RuleSetAt returns the rule set governing the given height.
func (s *Schedule) RuleSetAt(height uint64) privacy.RuleSet {
	active := s.milestones[0]
	for _, m := range s.milestones[1:] {
		if m.block <= height && m.block >= active.block {
			active = m
		}
	}
	return ruleSet{active}
}

type ruleSet struct {
	m milestone
}

func (r ruleSet) Name() string { return r.m.name }

func (r ruleSet) GasCalculator() gas.Calculator { return r.m.calculator }

func (r ruleSet) PrivateTransactionProcessor() privacy.Processor { return r.m.processor }

// Beneficiary names the account credited for a block. Simulated executions
// still need one for COINBASE.
func (r ruleSet) Beneficiary(header *types.BlockHeader) common.Address {
	return header.Coinbase
}
