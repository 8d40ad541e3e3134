package core

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/agentline/threadpulse-go/pkg/engine"
	"github.com/agentline/threadpulse-go/pkg/storage"
)

// sweepEvalConcurrency bounds the goroutines evaluating lifecycle
// decisions during a sweep. Evaluation is pure computation, so the bound
// only matters for very large thread sets.
const sweepEvalConcurrency = 8

// sweepDecision is one thread's computed lifecycle outcome, staged
// between the concurrent evaluation pass and the serialized write pass.
type sweepDecision struct {
	status engine.LifecycleStatus
	vit    engine.VitalityResult
}

// Sweep evaluates every open thread in scope against the lifecycle rules
// at a single instant.
//
// The sweep:
//  1. Lists the open threads in scope (all workspaces unless restricted)
//  2. Computes each thread's lifecycle decision concurrently
//  3. Serially persists the threads whose state changed: dormancy
//     watermarks set or cleared, stale scores refreshed, threads dormant
//     past the archival threshold moved to archived
//  4. Optionally finishes with a batch duplicate cleanse (WithCleanse)
//
// Every thread is evaluated against the same instant, so a sweep is a
// consistent snapshot of the scope. A failed write aborts the sweep;
// threads already written stay written.
//
// Parameters:
//   - ctx: Context for cancellation
//   - opts: Optional parameters (WorkspaceID, AgentID, SweepTime, Cleanse,
//     SweepRunID)
//
// Returns a SweepReport describing what the run did.
//
// Example:
//
//	report, err := client.Sweep(ctx,
//	    core.WithWorkspaceIDForSweep("ws_acme"),
//	    core.WithCleanse(),
//	)
//	fmt.Printf("archived %d of %d threads\n", report.Archived, report.Evaluated)
func (c *Client) Sweep(ctx context.Context, opts ...SweepOption) (*SweepReport, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sweepOpts := applySweepOptions(opts)
	at := sweepOpts.At
	if at.IsZero() {
		at = time.Now().UTC()
	}
	runID := sweepOpts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	started := time.Now()
	report := &SweepReport{
		RunID:       runID,
		EvaluatedAt: at,
	}

	records, err := c.openThreads(ctx, sweepOpts.WorkspaceID, sweepOpts.AgentID)
	if err != nil {
		return nil, NewThreadError("Sweep", err)
	}
	report.Evaluated = len(records)

	decisions := make([]sweepDecision, len(records))
	g := new(errgroup.Group)
	g.SetLimit(sweepEvalConcurrency)
	for i, rec := range records {
		i, rec := i, rec
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			status, vit := engine.ComputeLifecycleStatus(lifecycleInput(rec), at)
			decisions[i] = sweepDecision{status: status, vit: vit}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, NewThreadError("Sweep", err)
	}

	for i, rec := range records {
		plan := planLifecycle(rec, decisions[i].status, decisions[i].vit, at)
		if !plan.updated {
			continue
		}
		if _, err := c.store.SetLifecycle(ctx, rec.ID, &plan.update, &storage.UpdateOptions{
			WorkspaceID: sweepOpts.WorkspaceID,
			AgentID:     sweepOpts.AgentID,
		}); err != nil {
			return nil, NewThreadError("Sweep", err)
		}
		report.Updated++
		if plan.archived {
			report.Archived++
		}
		if plan.marked {
			report.DormantMarked++
		}
		if plan.cleared {
			report.DormantCleared++
		}
	}

	if sweepOpts.Cleanse {
		resolved, err := c.cleanseThreads(ctx, sweepOpts.WorkspaceID, sweepOpts.AgentID)
		if err != nil {
			return nil, NewThreadError("Sweep", err)
		}
		report.Cleansed = len(resolved)
	}

	report.Duration = time.Since(started)
	log.Printf("threadpulse: sweep %s: evaluated=%d updated=%d archived=%d cleansed=%d in %s",
		report.RunID, report.Evaluated, report.Updated, report.Archived, report.Cleansed, report.Duration)

	return report, nil
}

// Cleanse runs the batch duplicate cleanse over the open threads in scope.
//
// Threads are considered oldest-first, so the earliest thread of each
// duplicate group survives and later duplicates are closed as resolved.
// Their records are retained; nothing is deleted. The pass uses the text
// tiers only, never the embedding tier, and running it twice in a row
// changes nothing the second time.
//
// Parameters:
//   - ctx: Context for cancellation
//   - opts: Optional parameters (WorkspaceID, AgentID)
//
// Returns the IDs of the threads that were closed as duplicates.
//
// Example:
//
//	resolved, err := client.Cleanse(ctx, core.WithWorkspaceIDForCleanse("ws_acme"))
//	fmt.Printf("closed %d duplicate threads\n", len(resolved))
func (c *Client) Cleanse(ctx context.Context, opts ...CleanseOption) ([]int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cleanseOpts := applyCleanseOptions(opts)
	resolved, err := c.cleanseThreads(ctx, cleanseOpts.WorkspaceID, cleanseOpts.AgentID)
	if err != nil {
		return nil, NewThreadError("Cleanse", err)
	}
	return resolved, nil
}

// cleanseThreads closes open duplicate threads as resolved, keeping the
// oldest of each duplicate group. Returns the closed thread IDs. The
// caller must hold c.mu.
func (c *Client) cleanseThreads(ctx context.Context, workspaceID, agentID string) ([]int64, error) {
	records, err := c.openThreads(ctx, workspaceID, agentID)
	if err != nil {
		return nil, err
	}

	// Duplicates are judged within a workspace, never across tenants.
	// A scoped call yields a single group.
	groups := make(map[string][]engine.Candidate)
	for _, rec := range records {
		groups[rec.WorkspaceID] = append(groups[rec.WorkspaceID], toCandidate(rec))
	}

	survivors := make(map[string]struct{}, len(records))
	for _, group := range groups {
		for _, cand := range engine.DeduplicateCandidates(group) {
			survivors[cand.ID] = struct{}{}
		}
	}

	var resolved []int64
	for _, rec := range records {
		if _, ok := survivors[strconv.FormatInt(rec.ID, 10)]; ok {
			continue
		}
		// Threads whose text normalizes to nothing are skipped by the
		// batch pass, not judged duplicates; leave them open.
		if engine.NormalizeText(rec.Text) == "" {
			continue
		}
		if _, err := c.store.SetLifecycle(ctx, rec.ID, &storage.LifecycleUpdate{
			Status:        string(engine.StatusResolved),
			VitalityScore: rec.VitalityScore,
			DormantSince:  rec.DormantSince,
		}, &storage.UpdateOptions{
			WorkspaceID: workspaceID,
			AgentID:     agentID,
		}); err != nil {
			return nil, err
		}
		resolved = append(resolved, rec.ID)
	}

	if len(resolved) > 0 {
		log.Printf("threadpulse: cleanse: closed %d duplicate threads as resolved", len(resolved))
	}
	return resolved, nil
}
