package privacy

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"veilchain/core/state"
	"veilchain/core/types"
	"veilchain/observability"
	"veilchain/observability/logging"
)

// BlockSelector names the block a simulation anchors on, by hash or by
// canonical height.
type BlockSelector struct {
	hash   *common.Hash
	height *uint64
}

// ByHash selects the block with the given hash.
func ByHash(hash common.Hash) BlockSelector {
	return BlockSelector{hash: &hash}
}

// ByHeight selects the canonical block at the given height.
func ByHeight(height uint64) BlockSelector {
	return BlockSelector{height: &height}
}

func (s BlockSelector) resolve(chain Blockchain) (*types.BlockHeader, bool) {
	switch {
	case s.hash != nil:
		return chain.HeaderByHash(*s.hash)
	case s.height != nil:
		return chain.HeaderByNumber(*s.height)
	default:
		return chain.HeaderByHash(chain.Tip())
	}
}

// PrivacyParameters bundles the private-side collaborators of a node.
type PrivacyParameters struct {
	Directory      GroupDirectory
	PrivateArchive WorldStateArchive
	Ledger         StateRootLedger
}

// Simulator executes private transactions read-only against the private world
// state of a privacy group, anchored on a historical public block. It never
// commits anything: both world state views are disposable overlays.
//
// A Simulator is safe for concurrent use; each call builds its own overlays
// and tracer.
type Simulator struct {
	chain         Blockchain
	publicArchive WorldStateArchive
	schedule      Schedule
	privacy       PrivacyParameters
	logger        *slog.Logger
}

// NewSimulator wires a simulator over the node's chain, public archive, fork
// schedule and privacy collaborators.
func NewSimulator(chain Blockchain, publicArchive WorldStateArchive, schedule Schedule, privacy PrivacyParameters, logger *slog.Logger) *Simulator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Simulator{
		chain:         chain,
		publicArchive: publicArchive,
		schedule:      schedule,
		privacy:       privacy,
		logger:        logger,
	}
}

// Simulate runs one call inside the privacy group identified by groupID, as
// seen by the requester's enclave key, anchored on the selected block.
//
// The first return is nil, with a nil error, when the anchor cannot be
// established: the selected block is unknown or its public state is no longer
// resolvable. A non-member requester and an unknown group both produce the
// same rejected Result, so callers cannot probe for a group's existence. A
// non-nil error means the node's private state store is unavailable, which is
// an operational fault rather than an answer.
func (s *Simulator) Simulate(ctx context.Context, groupID, requester string, call CallParameter, selector BlockSelector) (*Result, error) {
	started := time.Now()
	_, span := otel.Tracer("veilchain/core/privacy").Start(ctx, "privacy.simulate",
		trace.WithAttributes(attribute.String("privacy.group", logging.Abbreviate(groupID))))
	defer span.End()

	header, ok := selector.resolve(s.chain)
	if !ok {
		s.logger.Debug("simulation anchor block not found")
		observability.Simulator().Observe("unresolved", time.Since(started))
		return nil, nil
	}

	result, err := s.simulateAt(header, groupID, requester, call)
	outcome := "unresolved"
	switch {
	case err != nil:
		outcome = "error"
	case result != nil:
		outcome = result.Status.String()
	}
	observability.Simulator().Observe(outcome, time.Since(started))
	if result != nil && result.ValidationReason != "" {
		observability.Simulator().RecordRejection(string(result.ValidationReason))
	}
	return result, err
}

func (s *Simulator) simulateAt(header *types.BlockHeader, groupID, requester string, call CallParameter) (*Result, error) {
	group, known := s.privacy.Directory.GroupByID(groupID)
	if !known || !group.HasMember(requester) {
		// Same answer for "no such group" and "not your group".
		rejected := InvalidResult(ReasonPrivacyGroupDoesNotExist)
		return &rejected, nil
	}
	groupBytes, err := decodeGroupID(groupID)
	if err != nil {
		rejected := InvalidResult(ReasonPrivacyGroupDoesNotExist)
		return &rejected, nil
	}

	publicState, ok := s.publicArchive.StateAt(header.StateRoot)
	if !ok {
		s.logger.Debug("public state unavailable for anchor block",
			"height", header.Height, "root", header.StateRoot)
		return nil, nil
	}

	privateRoot, _ := s.privacy.Ledger.LatestRoot(groupBytes)
	privateState, ok := s.privacy.PrivateArchive.StateAt(privateRoot)
	if !ok {
		return nil, fmt.Errorf("privacy: private state %s unavailable for group %s",
			privateRoot, logging.Abbreviate(groupID))
	}

	publicView := publicState.Updater()
	privateView := privateState.Updater()

	tx, err := s.synthesize(header, groupBytes, call, privateView)
	if err != nil {
		return nil, err
	}

	ruleSet := s.schedule.RuleSetAt(header.Height)
	s.logger.Debug("simulating private transaction",
		logging.MaskField("group", groupID),
		"height", header.Height,
		"rules", ruleSet.Name(),
		"creation", tx.IsContractCreation())

	result := ruleSet.PrivateTransactionProcessor().Execute(
		s.chain,
		publicView,
		privateView,
		header,
		tx,
		ruleSet.Beneficiary(header),
		NewDebugTracer(FullTraceOptions),
		NewBlockHashLookup(header, s.chain),
		groupBytes,
	)

	// Both views fall out of scope here unconditionally. Nothing the
	// processor did survives the call.
	return &result, nil
}

// synthesize turns the call parameters into a private transaction carrying
// the placeholder signature. The nonce comes from the sender's account in the
// group's private state.
func (s *Simulator) synthesize(header *types.BlockHeader, groupID []byte, call CallParameter, privateView *state.Updater) (*PrivateTransaction, error) {
	sender := call.sender()
	nonce, err := privateView.Nonce(sender)
	if err != nil {
		return nil, fmt.Errorf("privacy: read nonce for %s: %w", sender, err)
	}

	tx := &PrivateTransaction{
		Sender:         sender,
		Nonce:          nonce,
		GasLimit:       call.gasLimit(header.GasLimit),
		GasPrice:       call.gasPrice(),
		To:             call.To,
		Value:          call.value(),
		Payload:        append([]byte(nil), call.Payload...),
		PrivacyGroupID: groupID,
		Restricted:     true,
	}
	tx.applyPlaceholderSignature()
	return tx, nil
}
