// Package reconcile computes the IP list changes implied by observed traffic.
//
// A run takes a fixed snapshot (traffic flows plus the lists exported from the
// policy engine) and produces a Plan. The stages are plain functions over
// in-memory sets so each one can be exercised on its own:
//
//   - GroupKey derives a stable group key from a hostname.
//   - Aggregate folds flows into candidate groups, expanding hostnames to
//     their sibling availability zones.
//   - Merge folds groups with an identical address set into one list.
//   - Arbitrate leaves every address in exactly one list.
//   - Diff decides creates and updates, retaining addresses still backed by
//     DNS or by longer-window traffic.
//   - FindStale flags lists not seen for too long.
//
// Reconcile chains the stages. DNS and flow evidence are the only blocking
// collaborators; they are supplied through the Resolver and EvidenceSource
// interfaces and never fail the run.
//
// # Usage Example
//
//	spec := &reconcile.Spec{
//	    Resolver:          resolver.New(2*time.Second, logger),
//	    Naming:            reconcile.DefaultNaming(),
//	    AvailabilityZones: []string{"eu-fr-paris", "eu-fr-north"},
//	    StaleAfterDays:    21,
//	    RefreshUnchanged:  true,
//	}
//
//	plan, err := reconcile.Reconcile(ctx, spec, inputs, time.Now())
//	if err != nil {
//	    return err
//	}
//
//	executed, err := reconcile.ApplyPlan(ctx, plan, applier, reconcile.ApplyOptions{Confirmed: true})
package reconcile
