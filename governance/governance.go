// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package governance

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/blinklabs-io/agora/analysis"
	"github.com/blinklabs-io/agora/database"
	"github.com/blinklabs-io/agora/database/models"
	"github.com/blinklabs-io/agora/event"
	"github.com/blinklabs-io/agora/submitter"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	defaultSubmitTimeout = 5 * time.Second
	defaultTotalPowerTTL = 30 * time.Second
)

// Params are the governance parameters. Quorum is a fraction of the
// total voting power; the proposal threshold gates non-emergency
// proposal creation.
type Params struct {
	VotingDelay           time.Duration
	VotingPeriod          time.Duration
	EmergencyVotingDelay  time.Duration
	EmergencyVotingPeriod time.Duration
	QuorumFraction        float64
	ProposalThreshold     uint64
	StalenessWindow       time.Duration
	SubmitTimeout         time.Duration
	TotalPowerTTL         time.Duration
}

type Config struct {
	Logger       *slog.Logger
	PromRegistry prometheus.Registerer
	EventBus     *event.EventBus
	Database     *database.Database
	PowerSource  PowerSource
	Submitter    submitter.Submitter
	Analyzer     analysis.Analyzer
	Params       Params
}

// Service is the governance orchestrator. It composes the proposal
// store, vote ledger, and delegation registry, serializes mutations
// per key, and invokes the chain submission and audit broadcast
// collaborators after the authoritative local commit. Collaborator
// failure is recorded as an unverified flag on the result, never
// returned as an error.
type Service struct {
	config      Config
	logger      *slog.Logger
	db          *database.Database
	eventBus    *event.EventBus
	submitter   submitter.Submitter
	analyzer    analysis.Analyzer
	proposals   *ProposalStore
	votes       *VoteLedger
	delegations *DelegationRegistry
	totalPower  *totalPowerCache
	metrics     *serviceMetrics
}

func NewService(config Config) *Service {
	s := &Service{
		config:    config,
		db:        config.Database,
		eventBus:  config.EventBus,
		submitter: config.Submitter,
		analyzer:  config.Analyzer,
	}
	if config.Logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		s.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	} else {
		s.logger = config.Logger
	}
	if s.config.Params.SubmitTimeout == 0 {
		s.config.Params.SubmitTimeout = defaultSubmitTimeout
	}
	if s.config.Params.TotalPowerTTL == 0 {
		s.config.Params.TotalPowerTTL = defaultTotalPowerTTL
	}
	s.proposals = NewProposalStore(config.Database)
	s.votes = NewVoteLedger(config.Database)
	s.delegations = NewDelegationRegistry(
		config.Database,
		config.PowerSource,
	)
	s.totalPower = newTotalPowerCache(
		config.PowerSource,
		s.config.Params.TotalPowerTTL,
	)
	s.metrics = newServiceMetrics(config.PromRegistry)
	return s
}

// CreateProposalParams is the canonical request shape for proposal
// creation. Proposer is the caller-supplied authenticated identity.
type CreateProposalParams struct {
	Proposer    string
	Title       string
	Description string
	Targets     []string
	Values      []uint64
	Calldatas   []string
	// Content is the optional full proposal payload; when present it is
	// stored content-addressed and its hash recorded on the proposal.
	// When absent, ContentHash is taken as an external reference.
	Content     []byte
	ContentHash string
	Emergency   bool
}

// ProposalReceipt is the result of proposal creation
type ProposalReceipt struct {
	ProposalId         string
	Status             Status
	StartTime          time.Time
	EndTime            time.Time
	TxId               string
	BlockchainVerified bool
}

const (
	minTitleLength       = 10
	minDescriptionLength = 50
)

// CreateProposal validates and records a new governance proposal. The
// voting window opens after the configured delay; emergency proposals
// use the shortened window and bypass the proposer power threshold.
// Chain submission is attempted but its failure only clears the
// verified flag.
func (s *Service) CreateProposal(
	ctx context.Context,
	params CreateProposalParams,
) (*ProposalReceipt, error) {
	if !ValidAddress(params.Proposer) {
		return nil, &InvalidAddressError{Address: params.Proposer}
	}
	if len(params.Title) < minTitleLength {
		return nil, &ValidationError{
			Field: "title",
			Reason: fmt.Sprintf(
				"must be at least %d characters",
				minTitleLength,
			),
		}
	}
	if len(params.Description) < minDescriptionLength {
		return nil, &ValidationError{
			Field: "description",
			Reason: fmt.Sprintf(
				"must be at least %d characters",
				minDescriptionLength,
			),
		}
	}
	if len(params.Targets) != len(params.Values) ||
		len(params.Targets) != len(params.Calldatas) {
		return nil, &ValidationError{
			Field:  "targets",
			Reason: "targets, values, and calldatas must have equal length",
		}
	}
	for _, target := range params.Targets {
		if !ValidAddress(target) {
			return nil, &InvalidAddressError{Address: target}
		}
	}
	if !params.Emergency {
		power, err := s.delegations.EffectivePower(ctx, params.Proposer)
		if err != nil {
			return nil, err
		}
		if power < s.config.Params.ProposalThreshold {
			return nil, &InsufficientProposalPowerError{
				Power:     power,
				Threshold: s.config.Params.ProposalThreshold,
			}
		}
	}
	contentHash := params.ContentHash
	if len(params.Content) > 0 {
		hash, err := s.db.PutContent(params.Content)
		if err != nil {
			return nil, fmt.Errorf("failed to store content: %w", err)
		}
		contentHash = hash
	}
	// Advisory analysis is optional and best-effort
	var analysisHash string
	if s.analyzer != nil {
		payload, err := s.analyzer.Analyze(ctx, analysis.Request{
			Title:       params.Title,
			Description: params.Description,
			Targets:     params.Targets,
			Calldatas:   params.Calldatas,
		})
		if err != nil {
			s.logger.Warn(
				"proposal analysis failed",
				"component", "governance",
				"error", err,
			)
		} else if len(payload) > 0 {
			hash, err := s.db.PutAnalysis(payload)
			if err != nil {
				s.logger.Warn(
					"failed to store analysis payload",
					"component", "governance",
					"error", err,
				)
			} else {
				analysisHash = hash
			}
		}
	}
	delay := s.config.Params.VotingDelay
	period := s.config.Params.VotingPeriod
	if params.Emergency {
		delay = s.config.Params.EmergencyVotingDelay
		period = s.config.Params.EmergencyVotingPeriod
	}
	now := time.Now()
	startTime := now.Add(delay)
	endTime := startTime.Add(period)
	// Chain submission happens before the local write only because the
	// chain may assign the canonical proposal id. Failure falls back to
	// a locally generated id and clears the verified flag; the logical
	// proposal exists regardless.
	proposalId := uuid.NewString()
	txId := ""
	verified := false
	submitResult := s.trySubmit("proposal", func(
		submitCtx context.Context,
	) (*submitter.Result, error) {
		return s.submitter.SubmitProposal(
			submitCtx,
			submitter.ProposalSubmission{
				Proposer:    params.Proposer,
				Title:       params.Title,
				Description: params.Description,
				Targets:     params.Targets,
				Values:      params.Values,
				Calldatas:   params.Calldatas,
				ContentHash: contentHash,
				Emergency:   params.Emergency,
			},
		)
	})
	if submitResult != nil {
		txId = submitResult.TxId
		verified = true
		if submitResult.AssignedId != "" {
			proposalId = submitResult.AssignedId
		}
	}
	targets, err := models.EncodeStringList(params.Targets)
	if err != nil {
		return nil, fmt.Errorf("failed to encode targets: %w", err)
	}
	values, err := models.EncodeUint64List(params.Values)
	if err != nil {
		return nil, fmt.Errorf("failed to encode values: %w", err)
	}
	calldatas, err := models.EncodeStringList(params.Calldatas)
	if err != nil {
		return nil, fmt.Errorf("failed to encode calldatas: %w", err)
	}
	proposal := &models.Proposal{
		ID:                 proposalId,
		Proposer:           params.Proposer,
		Title:              params.Title,
		Description:        params.Description,
		Targets:            targets,
		Values:             values,
		Calldatas:          calldatas,
		ContentHash:        contentHash,
		Emergency:          params.Emergency,
		Status:             StatusPending.String(),
		TxID:               txId,
		BlockchainVerified: verified,
		AnalysisHash:       analysisHash,
		CreatedAt:          now,
		StartTime:          startTime,
		EndTime:            endTime,
	}
	if err := s.proposals.Put(proposal, nil); err != nil {
		return nil, err
	}
	s.metrics.proposalsCreated.Inc()
	s.publishAudit(ProposalCreatedEventType, ProposalCreatedEvent{
		ProposalId: proposalId,
		Proposer:   params.Proposer,
		Title:      params.Title,
		Emergency:  params.Emergency,
		StartTime:  startTime,
		EndTime:    endTime,
		TxId:       txId,
		Verified:   verified,
	})
	s.logger.Info(
		"proposal created",
		"component", "governance",
		"proposal_id", proposalId,
		"proposer", params.Proposer,
		"emergency", params.Emergency,
		"verified", verified,
	)
	return &ProposalReceipt{
		ProposalId:         proposalId,
		Status:             StatusPending,
		StartTime:          startTime,
		EndTime:            endTime,
		TxId:               txId,
		BlockchainVerified: verified,
	}, nil
}

// VoteReceipt is the result of casting a vote
type VoteReceipt struct {
	ProposalId         string
	Voter              string
	Choice             VoteChoice
	Power              uint64
	Status             Status
	TxId               string
	BlockchainVerified bool
}

// CastVote records a vote with the voter's effective power snapshotted
// at cast time. The duplicate check, tally increment, and vote insert
// run under the proposal lock in one transaction; concurrent votes on
// the same proposal serialize, votes on different proposals do not.
func (s *Service) CastVote(
	ctx context.Context,
	proposalId string,
	voter string,
	choice VoteChoice,
	reason string,
) (*VoteReceipt, error) {
	if !ValidAddress(voter) {
		return nil, &InvalidAddressError{Address: voter}
	}
	if !choice.Valid() {
		return nil, &ValidationError{
			Field:  "choice",
			Reason: "must be for, against, or abstain",
		}
	}
	var receipt *VoteReceipt
	err := s.proposals.WithLock(proposalId, func() error {
		proposal, err := s.proposals.Get(proposalId, nil)
		if err != nil {
			return err
		}
		status, err := s.liveStatus(ctx, proposal)
		if err != nil {
			return err
		}
		if status != StatusActive {
			return &NotActiveError{
				ProposalId: proposalId,
				Status:     status,
			}
		}
		voted, err := s.votes.HasVoted(proposalId, voter, nil)
		if err != nil {
			return err
		}
		if voted {
			return &AlreadyVotedError{
				ProposalId: proposalId,
				Voter:      voter,
			}
		}
		power, err := s.delegations.EffectivePower(ctx, voter)
		if err != nil {
			return err
		}
		if power == 0 {
			return ErrNoVotingPower
		}
		txn := s.db.Transaction()
		defer txn.Rollback() //nolint:errcheck
		if _, err := s.votes.Record(
			proposalId,
			voter,
			choice,
			power,
			reason,
			txn,
		); err != nil {
			return err
		}
		ApplyVote(proposal, choice, power)
		proposal.Status = status.String()
		if err := s.proposals.Put(proposal, txn); err != nil {
			return err
		}
		if err := txn.Commit(); err != nil {
			return fmt.Errorf("failed to commit vote: %w", err)
		}
		receipt = &VoteReceipt{
			ProposalId: proposalId,
			Voter:      voter,
			Choice:     choice,
			Power:      power,
			Status:     status,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	submitResult := s.trySubmit("vote", func(
		submitCtx context.Context,
	) (*submitter.Result, error) {
		return s.submitter.SubmitVote(submitCtx, submitter.VoteSubmission{
			ProposalId: proposalId,
			Voter:      voter,
			Choice:     uint8(choice),
			Power:      receipt.Power,
			Reason:     reason,
		})
	})
	if submitResult != nil {
		receipt.TxId = submitResult.TxId
		receipt.BlockchainVerified = true
	}
	s.metrics.votesCast.Inc()
	s.publishAudit(VoteCastEventType, VoteCastEvent{
		ProposalId: proposalId,
		Voter:      voter,
		Choice:     choice.String(),
		Power:      receipt.Power,
		TxId:       receipt.TxId,
		Verified:   receipt.BlockchainVerified,
	})
	return receipt, nil
}

// DelegationReceipt is the result of a delegation mutation. For
// undelegation, Delegatee is the former delegatee and Power the freed
// snapshot.
type DelegationReceipt struct {
	Delegator          string
	Delegatee          string
	Power              uint64
	TxId               string
	BlockchainVerified bool
}

// DelegateVotingPower delegates the caller's base power to another
// participant, replacing any existing delegation
func (s *Service) DelegateVotingPower(
	ctx context.Context,
	delegator string,
	delegatee string,
) (*DelegationReceipt, error) {
	delegation, err := s.delegations.Delegate(ctx, delegator, delegatee)
	if err != nil {
		return nil, err
	}
	s.metrics.delegationsActive.Inc()
	receipt := &DelegationReceipt{
		Delegator: delegator,
		Delegatee: delegatee,
		Power:     delegation.Power,
	}
	submitResult := s.trySubmit("delegation", func(
		submitCtx context.Context,
	) (*submitter.Result, error) {
		return s.submitter.SubmitDelegation(
			submitCtx,
			submitter.DelegationSubmission{
				Delegator: delegator,
				Delegatee: delegatee,
				Power:     delegation.Power,
				Active:    true,
			},
		)
	})
	if submitResult != nil {
		receipt.TxId = submitResult.TxId
		receipt.BlockchainVerified = true
		delegation.TxID = submitResult.TxId
		if err := s.db.UpdateDelegation(delegation, nil); err != nil {
			s.logger.Warn(
				"failed to record delegation tx id",
				"component", "governance",
				"error", err,
			)
		}
	}
	s.publishAudit(DelegationChangeEventType, DelegationChangeEvent{
		Delegator: delegator,
		Delegatee: delegatee,
		Power:     delegation.Power,
		Active:    true,
		TxId:      receipt.TxId,
		Verified:  receipt.BlockchainVerified,
	})
	return receipt, nil
}

// UndelegateVotingPower deactivates the caller's active delegation and
// returns the freed power
func (s *Service) UndelegateVotingPower(
	ctx context.Context,
	delegator string,
) (*DelegationReceipt, error) {
	delegation, err := s.delegations.Undelegate(ctx, delegator)
	if err != nil {
		return nil, err
	}
	s.metrics.delegationsActive.Dec()
	receipt := &DelegationReceipt{
		Delegator: delegator,
		Delegatee: delegation.Delegatee,
		Power:     delegation.Power,
	}
	submitResult := s.trySubmit("delegation", func(
		submitCtx context.Context,
	) (*submitter.Result, error) {
		return s.submitter.SubmitDelegation(
			submitCtx,
			submitter.DelegationSubmission{
				Delegator: delegator,
				Power:     delegation.Power,
				Active:    false,
			},
		)
	})
	if submitResult != nil {
		receipt.TxId = submitResult.TxId
		receipt.BlockchainVerified = true
	}
	s.publishAudit(DelegationChangeEventType, DelegationChangeEvent{
		Delegator: delegator,
		Delegatee: delegation.Delegatee,
		Power:     delegation.Power,
		Active:    false,
		TxId:      receipt.TxId,
		Verified:  receipt.BlockchainVerified,
	})
	return receipt, nil
}

// ProposalDetail is a proposal record with its live status and votes
type ProposalDetail struct {
	Proposal *models.Proposal
	Status   Status
	Votes    []*models.Vote
}

// GetProposal returns a proposal with its status recomputed live and
// its full vote list
func (s *Service) GetProposal(
	ctx context.Context,
	proposalId string,
) (*ProposalDetail, error) {
	proposal, err := s.proposals.Get(proposalId, nil)
	if err != nil {
		return nil, err
	}
	status, err := s.liveStatus(ctx, proposal)
	if err != nil {
		return nil, err
	}
	if status.String() != proposal.Status {
		s.refreshCachedStatus(ctx, proposalId)
		proposal.Status = status.String()
	}
	votes, err := s.votes.VotesFor(proposalId)
	if err != nil {
		return nil, err
	}
	return &ProposalDetail{
		Proposal: proposal,
		Status:   status,
		Votes:    votes,
	}, nil
}

// ListProposalsParams is the canonical request shape for proposal
// listing. A nil Status or Emergency leaves that filter unset.
type ListProposalsParams struct {
	Status    *Status
	Proposer  string
	Emergency *bool
	Limit     int
	Offset    int
}

// ProposalSummary is a proposal record with its live status
type ProposalSummary struct {
	Proposal *models.Proposal
	Status   Status
}

const defaultListLimit = 50

// ListProposals returns proposals most recent first. The status filter
// is applied against the live recomputed status, not the stored cache.
func (s *Service) ListProposals(
	ctx context.Context,
	params ListProposalsParams,
) ([]ProposalSummary, error) {
	if params.Offset < 0 {
		return nil, &ValidationError{
			Field:  "offset",
			Reason: "must not be negative",
		}
	}
	if params.Limit < 0 {
		return nil, &ValidationError{
			Field:  "limit",
			Reason: "must not be negative",
		}
	}
	proposals, err := s.proposals.List(models.ProposalFilter{
		Proposer:  params.Proposer,
		Emergency: params.Emergency,
	})
	if err != nil {
		return nil, err
	}
	totalPower, err := s.totalPower.get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get total voting power: %w", err)
	}
	now := time.Now()
	summaries := make([]ProposalSummary, 0, len(proposals))
	for _, proposal := range proposals {
		status := ComputeStatus(
			proposal,
			now,
			totalPower,
			s.config.Params.QuorumFraction,
			s.config.Params.StalenessWindow,
		)
		if params.Status != nil && status != *params.Status {
			continue
		}
		summaries = append(summaries, ProposalSummary{
			Proposal: proposal,
			Status:   status,
		})
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	offset := min(params.Offset, len(summaries))
	end := min(offset+limit, len(summaries))
	return summaries[offset:end], nil
}

// GetVotingPower returns a participant's voting power breakdown
func (s *Service) GetVotingPower(
	ctx context.Context,
	address string,
) (*PowerBreakdown, error) {
	return s.delegations.Power(ctx, address)
}

// CancelProposal marks a proposal canceled. Only the proposer may
// cancel, and only from a non-terminal state.
func (s *Service) CancelProposal(
	ctx context.Context,
	proposalId string,
	caller string,
) (Status, error) {
	if !ValidAddress(caller) {
		return StatusCanceled, &InvalidAddressError{Address: caller}
	}
	return s.transition(
		ctx,
		proposalId,
		caller,
		StatusCanceled,
		func(proposal *models.Proposal, status Status) error {
			if proposal.Proposer != caller {
				return &NotAuthorizedError{
					ProposalId: proposalId,
					Caller:     caller,
				}
			}
			if status.Terminal() {
				return &InvalidTransitionError{
					ProposalId: proposalId,
					From:       status,
					To:         StatusCanceled,
				}
			}
			now := time.Now()
			proposal.CanceledAt = &now
			return nil
		},
	)
}

// QueueProposal moves a succeeded proposal into the execution queue
func (s *Service) QueueProposal(
	ctx context.Context,
	proposalId string,
	caller string,
) (Status, error) {
	if !ValidAddress(caller) {
		return StatusQueued, &InvalidAddressError{Address: caller}
	}
	return s.transition(
		ctx,
		proposalId,
		caller,
		StatusQueued,
		func(proposal *models.Proposal, status Status) error {
			if status != StatusSucceeded {
				return &InvalidTransitionError{
					ProposalId: proposalId,
					From:       status,
					To:         StatusQueued,
				}
			}
			now := time.Now()
			proposal.QueuedAt = &now
			return nil
		},
	)
}

// ExecuteProposal marks a queued proposal executed
func (s *Service) ExecuteProposal(
	ctx context.Context,
	proposalId string,
	caller string,
) (Status, error) {
	if !ValidAddress(caller) {
		return StatusExecuted, &InvalidAddressError{Address: caller}
	}
	return s.transition(
		ctx,
		proposalId,
		caller,
		StatusExecuted,
		func(proposal *models.Proposal, status Status) error {
			if status != StatusQueued {
				return &InvalidTransitionError{
					ProposalId: proposalId,
					From:       status,
					To:         StatusExecuted,
				}
			}
			now := time.Now()
			proposal.ExecutedAt = &now
			return nil
		},
	)
}

// transition applies an explicit lifecycle action under the proposal
// lock and broadcasts the update
func (s *Service) transition(
	ctx context.Context,
	proposalId string,
	caller string,
	target Status,
	apply func(proposal *models.Proposal, status Status) error,
) (Status, error) {
	err := s.proposals.WithLock(proposalId, func() error {
		proposal, err := s.proposals.Get(proposalId, nil)
		if err != nil {
			return err
		}
		status, err := s.liveStatus(ctx, proposal)
		if err != nil {
			return err
		}
		if err := apply(proposal, status); err != nil {
			return err
		}
		proposal.Status = target.String()
		return s.proposals.Put(proposal, nil)
	})
	if err != nil {
		return target, err
	}
	s.publishAudit(ProposalUpdatedEventType, ProposalUpdatedEvent{
		ProposalId: proposalId,
		Caller:     caller,
		Status:     target.String(),
	})
	s.logger.Info(
		"proposal transitioned",
		"component", "governance",
		"proposal_id", proposalId,
		"status", target.String(),
	)
	return target, nil
}

// liveStatus derives a proposal's current status from wall-clock time
// and the cached total voting power
func (s *Service) liveStatus(
	ctx context.Context,
	proposal *models.Proposal,
) (Status, error) {
	totalPower, err := s.totalPower.get(ctx)
	if err != nil {
		return StatusPending, fmt.Errorf(
			"failed to get total voting power: %w",
			err,
		)
	}
	return ComputeStatus(
		proposal,
		time.Now(),
		totalPower,
		s.config.Params.QuorumFraction,
		s.config.Params.StalenessWindow,
	), nil
}

// refreshCachedStatus re-derives and persists the cached status under
// the proposal lock. Best-effort: the live status is always recomputed
// on read, so a failed refresh only affects raw queries against the
// store.
func (s *Service) refreshCachedStatus(
	ctx context.Context,
	proposalId string,
) {
	err := s.proposals.WithLock(proposalId, func() error {
		proposal, err := s.proposals.Get(proposalId, nil)
		if err != nil {
			return err
		}
		status, err := s.liveStatus(ctx, proposal)
		if err != nil {
			return err
		}
		if proposal.Status == status.String() {
			return nil
		}
		proposal.Status = status.String()
		return s.proposals.Put(proposal, nil)
	})
	if err != nil {
		s.logger.Warn(
			"failed to refresh cached proposal status",
			"component", "governance",
			"proposal_id", proposalId,
			"error", err,
		)
	}
}

// trySubmit invokes a chain submission with a bounded timeout. A
// failed or unsuccessful submission logs, counts, and returns nil; it
// never propagates as an error to the logical operation.
func (s *Service) trySubmit(
	action string,
	submit func(ctx context.Context) (*submitter.Result, error),
) *submitter.Result {
	if s.submitter == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(
		context.Background(),
		s.config.Params.SubmitTimeout,
	)
	defer cancel()
	result, err := submit(ctx)
	if err != nil {
		s.logger.Warn(
			"chain submission failed",
			"component", "governance",
			"action", action,
			"error", err,
		)
		s.metrics.submitFailures.WithLabelValues(action).Inc()
		return nil
	}
	if result == nil || !result.Success {
		s.logger.Warn(
			"chain submission rejected",
			"component", "governance",
			"action", action,
		)
		s.metrics.submitFailures.WithLabelValues(action).Inc()
		return nil
	}
	return result
}

// publishAudit broadcasts an audit event fire-and-forget
func (s *Service) publishAudit(eventType event.EventType, data any) {
	if s.eventBus == nil {
		return
	}
	s.eventBus.PublishAsync(eventType, event.NewEvent(eventType, data))
}
