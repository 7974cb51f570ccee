// Package campaign implements the outreach campaign lifecycle: intake,
// validation, strategy selection, draft generation, review and dispatch,
// with cooperative cancellation and derived outcome statistics.
package campaign

import (
	"context"
	"time"

	"outreach-engine/internal/common/logger"
	"outreach-engine/internal/models"
	"outreach-engine/internal/store"
	"outreach-engine/internal/transport"
)

// LeadValidator classifies a whole lead batch in one call.
type LeadValidator interface {
	ValidateLeads(ctx context.Context, leads []models.Lead) ([]models.Lead, error)
}

// DraftGenerator produces content for one lead.
type DraftGenerator interface {
	GenerateDraft(ctx context.Context, lead models.Lead, senderIdentity, subjectTemplate, bodyTemplate string, mode models.CampaignMode) (models.DraftContent, error)
}

// IdentityVerifier resolves a sender credential to an email identity.
type IdentityVerifier interface {
	Verify(ctx context.Context, credential string) (string, error)
}

// VerifierFunc adapts a plain function to IdentityVerifier.
type VerifierFunc func(ctx context.Context, credential string) (string, error)

func (f VerifierFunc) Verify(ctx context.Context, credential string) (string, error) {
	return f(ctx, credential)
}

// Timeouts bound the individual collaborator calls. The orchestrator treats
// a timeout like any other per-item collaborator failure.
type Timeouts struct {
	Validator time.Duration
	Generator time.Duration
	Dispatch  time.Duration
}

func DefaultTimeouts() Timeouts {
	return Timeouts{
		Validator: 60 * time.Second,
		Generator: 30 * time.Second,
		Dispatch:  15 * time.Second,
	}
}

// Dependencies are the injected collaborators of the orchestrator.
type Dependencies struct {
	Validator LeadValidator
	Generator DraftGenerator
	Transport transport.Transport
	Campaigns store.CampaignStore
	Activity  store.ActivityStore
	Verifier  IdentityVerifier
	Logger    logger.Logger
	Timeouts  Timeouts
}

// Orchestrator owns campaign runs and the cross-run operations (history,
// detail, open tracking).
type Orchestrator struct {
	deps Dependencies
}

func NewOrchestrator(deps Dependencies) *Orchestrator {
	if deps.Timeouts == (Timeouts{}) {
		deps.Timeouts = DefaultTimeouts()
	}
	if deps.Logger == nil {
		deps.Logger = logger.NewNoOpLogger()
	}
	return &Orchestrator{deps: deps}
}

// NewRun starts a lifecycle for one operator session, beginning at HISTORY.
func (o *Orchestrator) NewRun(ownerID string) *Run {
	return &Run{
		orch:    o,
		state:   StateHistory,
		ownerID: ownerID,
		logger: o.deps.Logger.WithFields(map[string]interface{}{
			"ownerId": ownerID,
		}),
	}
}

// MarkOpened flips the opened flag of one send record. It is the integration
// point for the external open-tracking signal and is idempotent: the first
// call sets openedAt, later calls are no-ops returning the stored record.
func (o *Orchestrator) MarkOpened(ctx context.Context, recordID string, at time.Time) (*models.SendRecord, error) {
	return o.deps.Campaigns.MarkOpened(ctx, recordID, at)
}

// History lists an owner's persisted campaigns for the HISTORY view.
func (o *Orchestrator) History(ctx context.Context, ownerID string) ([]models.Campaign, error) {
	return o.deps.Campaigns.CampaignsByOwner(ctx, ownerID)
}

// CampaignDetail returns one campaign with stats recomputed from its send
// records. The stored snapshot is never trusted for live display.
func (o *Orchestrator) CampaignDetail(ctx context.Context, campaignID string) (*models.Campaign, Stats, error) {
	c, err := o.deps.Campaigns.CampaignByID(ctx, campaignID)
	if err != nil {
		return nil, Stats{}, err
	}
	records, err := o.deps.Campaigns.RecordsByCampaign(ctx, campaignID)
	if err != nil {
		return nil, Stats{}, err
	}
	return c, ComputeStats(records), nil
}

// Activities returns the owner's transmission log, newest first.
func (o *Orchestrator) Activities(ctx context.Context, ownerID string, limit int) ([]models.ActivityEntry, error) {
	return o.deps.Activity.ActivitiesByOwner(ctx, ownerID, limit)
}
