// internal/campaign/run.go
package campaign

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"outreach-engine/internal/common/errors"
	"outreach-engine/internal/common/logger"
	"outreach-engine/internal/common/metrics"
	"outreach-engine/internal/common/validation"
	"outreach-engine/internal/models"
	"outreach-engine/internal/transport"
)

// ProgressFunc receives live progress for the loop phases, as a whole
// percentage after each processed item.
type ProgressFunc func(phase string, percent int)

// Run is one operator session walking the campaign lifecycle. The run is the
// sole mutator of its in-memory working set; no locking is needed inside a
// session.
type Run struct {
	orch   *Orchestrator
	logger logger.Logger
	state  State

	ownerID        string
	senderIdentity string
	credential     string

	name            string
	leads           []models.Lead
	mode            models.CampaignMode
	subjectTemplate string
	bodyTemplate    string
	drafts          []models.Draft

	lastCampaignID string
	progress       ProgressFunc
}

// GenerateResult reports the outcome of the draft generation loop. Aborted
// is distinct from completed so callers can branch deterministically.
type GenerateResult struct {
	Aborted   bool
	Processed int
	Drafts    int
	Skipped   int
}

// DispatchResult reports the outcome of the dispatch loop.
type DispatchResult struct {
	Aborted    bool
	CampaignID string
	Processed  int
	Sent       int
	Failed     int
	Stats      Stats
}

// OnProgress registers the live progress callback.
func (r *Run) OnProgress(fn ProgressFunc) {
	r.progress = fn
}

func (r *Run) reportProgress(phase string, done, total int) {
	if r.progress == nil || total == 0 {
		return
	}
	r.progress(phase, int(math.Round(100*float64(done)/float64(total))))
}

// Begin starts a new campaign cycle from the history view. An already
// verified sender identity skips the auth gate.
func (r *Run) Begin() error {
	if err := r.requireState(StateHistory, "begin"); err != nil {
		return err
	}
	if r.senderIdentity == "" {
		return r.transition(StateAuthGate)
	}
	return r.transition(StateIntake)
}

// VerifyIdentity resolves the sender credential and passes the auth gate.
func (r *Run) VerifyIdentity(ctx context.Context, credential string) error {
	if err := r.requireState(StateAuthGate, "verify identity"); err != nil {
		return err
	}

	identity, err := r.orch.deps.Verifier.Verify(ctx, credential)
	if err != nil {
		return err
	}

	r.senderIdentity = identity
	r.credential = credential
	r.logger.Info("sender identity verified", map[string]interface{}{
		"sender": identity,
	})
	return r.transition(StateIntake)
}

// SetLeads loads the intake working set. Syntactically broken addresses are
// dropped, duplicate emails are collapsed with the first occurrence winning,
// and every kept lead starts UNCHECKED.
func (r *Run) SetLeads(leads []models.Lead) error {
	if err := r.requireState(StateIntake, "set leads"); err != nil {
		return err
	}

	seen := make(map[string]bool, len(leads))
	r.leads = r.leads[:0]
	for _, l := range leads {
		key := strings.ToLower(strings.TrimSpace(l.Email))
		if key == "" || seen[key] || !validation.ValidateEmail(key) {
			continue
		}
		seen[key] = true
		l.Email = strings.TrimSpace(l.Email)
		l.ValidationState = models.ValidationUnchecked
		l.ValidationReason = ""
		r.leads = append(r.leads, l)
	}
	return nil
}

// SetName sets the operator-supplied campaign name.
func (r *Run) SetName(name string) error {
	if err := r.requireState(StateIntake, "set name"); err != nil {
		return err
	}
	r.name = strings.TrimSpace(name)
	return nil
}

// Leads returns the current working set, validation state included.
func (r *Run) Leads() []models.Lead {
	out := make([]models.Lead, len(r.leads))
	copy(out, r.leads)
	return out
}

// Drafts returns the drafts pending review.
func (r *Run) Drafts() []models.Draft {
	out := make([]models.Draft, len(r.drafts))
	copy(out, r.drafts)
	return out
}

// RunValidation classifies the lead batch through the validator. A validator
// outage is not fatal: every lead degrades to UNCHECKED and the run proceeds
// treating the whole batch as usable.
func (r *Run) RunValidation(ctx context.Context) error {
	if err := r.requireState(StateIntake, "run validation"); err != nil {
		return err
	}
	if len(r.leads) == 0 {
		return errors.NewGuardViolationError("validation requires at least one lead")
	}
	if r.name == "" {
		return errors.NewGuardViolationError("validation requires a campaign name")
	}
	if err := r.transition(StateValidation); err != nil {
		return err
	}

	callCtx, cancel := context.WithTimeout(ctx, r.orch.deps.Timeouts.Validator)
	defer cancel()

	start := time.Now()
	classified, err := r.orch.deps.Validator.ValidateLeads(callCtx, r.Leads())
	metrics.RunDuration.WithLabelValues("validation").Observe(time.Since(start).Seconds())

	if err != nil {
		for i := range r.leads {
			r.leads[i].ValidationState = models.ValidationUnchecked
			r.leads[i].ValidationReason = ""
		}
		r.logger.Warn("validator unavailable, treating batch as unchecked", map[string]interface{}{
			"error": err.Error(),
			"leads": len(r.leads),
		})
		r.logActivity(ctx, models.ActivityValidatorDown, "", "", err.Error())
		return nil
	}

	r.leads = classified
	return nil
}

// ConfirmValidation acknowledges the validation results and moves on.
func (r *Run) ConfirmValidation() error {
	if err := r.requireState(StateValidation, "confirm validation"); err != nil {
		return err
	}
	return r.transition(StateOptions)
}

// ChooseMode selects the drafting strategy.
func (r *Run) ChooseMode(mode models.CampaignMode) error {
	if err := r.requireState(StateOptions, "choose mode"); err != nil {
		return err
	}
	if mode != models.ModeManual && mode != models.ModeAICustom {
		return errors.NewGuardViolationError("mode must be MANUAL or AI_CUSTOM")
	}
	r.mode = mode
	return r.transition(StateConfig)
}

// SetTemplates stores the subject/body templates. They are the content in
// MANUAL mode and the fallback in AI_CUSTOM mode.
func (r *Run) SetTemplates(subject, body string) error {
	if err := r.requireState(StateConfig, "set templates"); err != nil {
		return err
	}
	r.subjectTemplate = subject
	r.bodyTemplate = body
	return nil
}

// Generate walks every non-INVALID lead through the draft generator, one
// lead at a time. The cancellation token is honored at iteration boundaries
// only. An abort discards all drafts produced so far and returns the run to
// OPTIONS; a partial batch cannot be reviewed as a named campaign.
func (r *Run) Generate(ctx context.Context, cancel *Canceller) (*GenerateResult, error) {
	if err := r.requireState(StateConfig, "generate"); err != nil {
		return nil, err
	}
	if strings.TrimSpace(r.subjectTemplate) == "" || strings.TrimSpace(r.bodyTemplate) == "" {
		return nil, errors.NewGuardViolationError("generation requires subject and body templates")
	}
	if err := r.transition(StateGenerating); err != nil {
		return nil, err
	}

	eligible := make([]models.Lead, 0, len(r.leads))
	for _, l := range r.leads {
		if l.Eligible() {
			eligible = append(eligible, l)
		}
	}

	metrics.RunsActive.Inc()
	defer metrics.RunsActive.Dec()
	start := time.Now()
	defer func() {
		metrics.RunDuration.WithLabelValues("generation").Observe(time.Since(start).Seconds())
	}()

	result := &GenerateResult{}
	r.drafts = r.drafts[:0]

	for _, lead := range eligible {
		if cancel.Cancelled() {
			r.drafts = r.drafts[:0]
			r.logger.Info("draft generation aborted", map[string]interface{}{
				"processed": result.Processed,
				"eligible":  len(eligible),
			})
			r.logActivity(ctx, models.ActivityRunAborted, "", "", "draft generation interrupted by operator")
			result.Aborted = true
			if err := r.transition(StateOptions); err != nil {
				return nil, err
			}
			return result, nil
		}

		callCtx, cancelCall := context.WithTimeout(ctx, r.orch.deps.Timeouts.Generator)
		content, err := r.orch.deps.Generator.GenerateDraft(
			callCtx, lead, r.senderIdentity, r.subjectTemplate, r.bodyTemplate, r.mode)
		cancelCall()

		result.Processed++
		if err != nil {
			result.Skipped++
			metrics.DraftsSkipped.WithLabelValues(string(r.mode)).Inc()
			r.logger.Warn("draft generation failed for lead", map[string]interface{}{
				"recipient": lead.Email,
				"error":     err.Error(),
			})
			r.logActivity(ctx, models.ActivityDraftSkipped, "", lead.Email, err.Error())
		} else {
			r.drafts = append(r.drafts, models.Draft{
				ID:             uuid.New().String(),
				RecipientEmail: lead.Email,
				BusinessName:   lead.BusinessName,
				Website:        lead.Website,
				Subject:        content.Subject,
				Body:           content.Body,
			})
			result.Drafts++
			metrics.DraftsGenerated.WithLabelValues(string(r.mode)).Inc()
			r.logActivity(ctx, models.ActivityDraftGenerated, "", lead.Email, "")
		}

		r.reportProgress("generating", result.Processed, len(eligible))
	}

	if err := r.transition(StateReview); err != nil {
		return nil, err
	}
	return result, nil
}

// EditDraft lets the operator adjust a draft before dispatch. Drafts are
// immutable once dispatch begins, which the REVIEW state check enforces.
func (r *Run) EditDraft(id, subject, body string) error {
	if err := r.requireState(StateReview, "edit draft"); err != nil {
		return err
	}
	for i := range r.drafts {
		if r.drafts[i].ID == id {
			r.drafts[i].Subject = subject
			r.drafts[i].Body = body
			return nil
		}
	}
	return errors.NewRecordNotFoundError(id)
}

// Dispatch sends every draft, one at a time, writing one terminal SendRecord
// per attempt. An abort stops the loop after the in-flight item; records
// already written persist, but no campaign row is created, so the partial
// run surfaces only through the transmission log.
func (r *Run) Dispatch(ctx context.Context, cancel *Canceller) (*DispatchResult, error) {
	if err := r.requireState(StateReview, "dispatch"); err != nil {
		return nil, err
	}
	if len(r.drafts) == 0 {
		return nil, errors.NewGuardViolationError("dispatch requires at least one draft")
	}
	if err := r.transition(StateSending); err != nil {
		return nil, err
	}

	// The campaign id exists from dispatch-commit time so that send records
	// written before an abort stay queryable, even though the campaign row
	// itself is only created on full completion.
	campaignID := uuid.New().String()
	result := &DispatchResult{CampaignID: campaignID}
	provider := r.orch.deps.Transport.Provider()

	metrics.RunsActive.Inc()
	defer metrics.RunsActive.Dec()
	start := time.Now()
	defer func() {
		metrics.RunDuration.WithLabelValues("dispatch").Observe(time.Since(start).Seconds())
	}()

	for _, draft := range r.drafts {
		if cancel.Cancelled() {
			r.logger.Info("dispatch aborted", map[string]interface{}{
				"campaignId": campaignID,
				"processed":  result.Processed,
				"drafts":     len(r.drafts),
			})
			r.logActivity(ctx, models.ActivityRunAborted, campaignID, "", "dispatch interrupted by operator")
			result.Aborted = true
			if err := r.transition(StateSummary); err != nil {
				return nil, err
			}
			return result, nil
		}

		callCtx, cancelCall := context.WithTimeout(ctx, r.orch.deps.Timeouts.Dispatch)
		sent, err := r.orch.deps.Transport.Send(callCtx, transport.Message{
			To:         draft.RecipientEmail,
			Subject:    draft.Subject,
			Body:       draft.Body,
			Sender:     r.senderIdentity,
			Credential: r.credential,
		})
		cancelCall()

		record := models.SendRecord{
			CampaignID:     campaignID,
			RecipientEmail: draft.RecipientEmail,
			BusinessName:   draft.BusinessName,
			Website:        draft.Website,
			Subject:        draft.Subject,
			Body:           draft.Body,
			CreatedAt:      time.Now().UTC(),
		}

		if err != nil {
			record.ID = uuid.New().String()
			record.Outcome = models.OutcomeFailed
			record.Error = err.Error()
			result.Failed++
			metrics.EmailsFailed.WithLabelValues(provider).Inc()
			r.logger.Warn("dispatch attempt failed", map[string]interface{}{
				"recipient": draft.RecipientEmail,
				"error":     err.Error(),
			})
			r.logActivity(ctx, models.ActivitySendFailed, campaignID, draft.RecipientEmail, err.Error())
		} else {
			record.ID = sent.TransportID
			record.Outcome = models.OutcomeSent
			result.Sent++
			metrics.EmailsSent.WithLabelValues(provider).Inc()
			r.logActivity(ctx, models.ActivitySendOK, campaignID, draft.RecipientEmail, "")
		}

		if err := r.orch.deps.Campaigns.AppendRecord(ctx, record); err != nil {
			r.logger.Error("send record append failed", map[string]interface{}{
				"recipient": draft.RecipientEmail,
				"error":     err.Error(),
			})
		}

		result.Processed++
		r.reportProgress("sending", result.Processed, len(r.drafts))
	}

	campaign := models.Campaign{
		ID:             campaignID,
		OwnerID:        r.ownerID,
		Name:           r.name,
		Mode:           r.mode,
		SenderIdentity: r.senderIdentity,
		Status:         models.CampaignCompleted,
		Stats: models.CampaignStats{
			Total:  len(r.drafts),
			Sent:   result.Sent,
			Failed: result.Failed,
		},
		CreatedAt: time.Now().UTC(),
	}
	if err := r.orch.deps.Campaigns.AppendCampaign(ctx, campaign); err != nil {
		return nil, err
	}

	// Summary view uses live aggregation, not the just-written snapshot.
	records, err := r.orch.deps.Campaigns.RecordsByCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	result.Stats = ComputeStats(records)

	r.lastCampaignID = campaignID
	if err := r.transition(StateSummary); err != nil {
		return nil, err
	}
	return result, nil
}

// Schedule commits the drafts for later delivery. Only intent is persisted:
// one SCHEDULED record per draft and a SCHEDULED campaign row. No transport
// calls are made on this path.
func (r *Run) Schedule(ctx context.Context, at time.Time) (*DispatchResult, error) {
	if err := r.requireState(StateReview, "schedule"); err != nil {
		return nil, err
	}
	if len(r.drafts) == 0 {
		return nil, errors.NewGuardViolationError("scheduling requires at least one draft")
	}
	if !at.After(time.Now()) {
		return nil, errors.NewScheduleInvalidError("scheduled time must be in the future")
	}

	campaignID := uuid.New().String()
	scheduledFor := at.UTC()

	for _, draft := range r.drafts {
		record := models.SendRecord{
			ID:             uuid.New().String(),
			CampaignID:     campaignID,
			RecipientEmail: draft.RecipientEmail,
			BusinessName:   draft.BusinessName,
			Website:        draft.Website,
			Subject:        draft.Subject,
			Body:           draft.Body,
			Outcome:        models.OutcomeScheduled,
			CreatedAt:      time.Now().UTC(),
			ScheduledFor:   &scheduledFor,
		}
		if err := r.orch.deps.Campaigns.AppendRecord(ctx, record); err != nil {
			return nil, err
		}
	}

	campaign := models.Campaign{
		ID:             campaignID,
		OwnerID:        r.ownerID,
		Name:           r.name,
		Mode:           r.mode,
		SenderIdentity: r.senderIdentity,
		Status:         models.CampaignScheduled,
		ScheduledAt:    &scheduledFor,
		Stats: models.CampaignStats{
			Total:   len(r.drafts),
			Pending: len(r.drafts),
		},
		CreatedAt: time.Now().UTC(),
	}
	if err := r.orch.deps.Campaigns.AppendCampaign(ctx, campaign); err != nil {
		return nil, err
	}

	r.logActivity(ctx, models.ActivityRunScheduled, campaignID, "", scheduledFor.Format(time.RFC3339))
	r.logger.Info("campaign scheduled", map[string]interface{}{
		"campaignId":   campaignID,
		"drafts":       len(r.drafts),
		"scheduledFor": scheduledFor.Format(time.RFC3339),
	})

	records, err := r.orch.deps.Campaigns.RecordsByCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	result := &DispatchResult{
		CampaignID: campaignID,
		Processed:  len(r.drafts),
		Stats:      ComputeStats(records),
	}

	r.lastCampaignID = campaignID
	if err := r.transition(StateSummary); err != nil {
		return nil, err
	}
	return result, nil
}

// Dismiss closes the summary and returns to history, clearing the working
// set. The verified sender identity survives for the next cycle.
func (r *Run) Dismiss() error {
	if err := r.requireState(StateSummary, "dismiss"); err != nil {
		return err
	}
	r.name = ""
	r.leads = nil
	r.drafts = nil
	r.mode = ""
	r.subjectTemplate = ""
	r.bodyTemplate = ""
	return r.transition(StateHistory)
}

// OpenDetail shows one past campaign with recomputed stats.
func (r *Run) OpenDetail(ctx context.Context, campaignID string) (*models.Campaign, Stats, error) {
	if err := r.requireState(StateHistory, "open detail"); err != nil {
		return nil, Stats{}, err
	}
	c, stats, err := r.orch.CampaignDetail(ctx, campaignID)
	if err != nil {
		return nil, Stats{}, err
	}
	if err := r.transition(StateCampaignDetail); err != nil {
		return nil, Stats{}, err
	}
	return c, stats, nil
}

// Back returns from the campaign detail view.
func (r *Run) Back() error {
	if err := r.requireState(StateCampaignDetail, "back"); err != nil {
		return err
	}
	return r.transition(StateHistory)
}

// LastCampaignID returns the id of the campaign committed by this cycle, if
// any.
func (r *Run) LastCampaignID() string {
	return r.lastCampaignID
}

func (r *Run) logActivity(ctx context.Context, kind models.ActivityKind, campaignID, recipient, detail string) {
	entry := models.ActivityEntry{
		ID:         uuid.New().String(),
		OwnerID:    r.ownerID,
		CampaignID: campaignID,
		Kind:       kind,
		Recipient:  recipient,
		Detail:     detail,
		CreatedAt:  time.Now().UTC(),
	}
	if err := r.orch.deps.Activity.AppendActivity(ctx, entry); err != nil {
		r.logger.Error("activity append failed", map[string]interface{}{
			"kind":  string(kind),
			"error": err.Error(),
		})
	}
}
