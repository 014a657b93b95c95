package mailscan

// Reconcile decides what to do with an extracted candidate given the user's
// existing applications that fuzzily match the candidate's company. Matches
// are expected most recently created first; the reconciler operates on the
// first one.
//
// Update rules:
//   - a low-information Applied signal never overwrites a richer existing
//     status, and identical statuses are no-ops;
//   - the recorded application date only ever moves earlier (the earliest
//     email evidence is the most reliable origin date), or is set when
//     absent;
//   - an empty patch yields NoOp so nothing is written.
func Reconcile(candidate ExtractedJobRecord, matches []StoredApplication) Action {
	if len(matches) == 0 {
		return Action{Kind: ActionCreate}
	}

	existing := matches[0]
	var patch Patch

	if candidate.Status != StatusApplied && candidate.Status != existing.Status {
		s := candidate.Status
		patch.Status = &s
	}

	if !candidate.EventTimestamp.IsZero() {
		if existing.DateApplied == nil || candidate.EventTimestamp.Before(*existing.DateApplied) {
			d := candidate.EventTimestamp
			patch.DateApplied = &d
		}
	}

	if patch.Empty() {
		return Action{Kind: ActionNone, TargetID: existing.ID}
	}
	return Action{Kind: ActionUpdate, TargetID: existing.ID, Patch: patch}
}
