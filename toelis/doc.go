// Package toelis reads, writes and processes time-of-event data.
//
// Time-of-event data are represented as ragged arrays: a [Unit] is a sequence
// of [Trial] values, and each trial is a sequence of event times recorded
// during one presentation of a stimulus. A toe_lis file stores one or more
// units that all share the same number of trials.
//
// # File Format
//
// A toe_lis file is ASCII text with exactly one number per line:
//
//	line 1                 number of units (n_units)
//	line 2                 number of trials per unit (n_repeats)
//	next n_units lines     pointer to the start of each unit's block
//	per unit, in order:
//	    n_repeats lines    number of events in each trial
//	    remaining lines    event times, trial by trial
//
// Pointers count lines from the start of the file, with the first unit's
// block expected at 3 + n_units. [Read] checks every pointer against the
// position it actually reaches and fails with a [*CorruptionError] on a
// mismatch; [Write] recomputes the pointers from the data.
//
// Event times are plain numbers in the file's native unit (milliseconds by
// convention). Rescaling is left to a [Converter] supplied by the caller; see
// the timescale subpackage.
//
// # Operations
//
// [Count], [Range], [Offset], [Subrange], [Merge] and [Rasterize] operate on
// units without modifying them. Offset, Subrange, Merge and Rasterize return
// lazy, single-pass sequences; use [Collect] to materialize a unit.
//
//	units, err := toelis.ReadFile("cell_3.toe_lis")
//	if err != nil {
//	    return err
//	}
//	shifted := toelis.Collect(toelis.Offset(units[0], 1000))
//	lo, hi, ok := toelis.Range(shifted)
package toelis
