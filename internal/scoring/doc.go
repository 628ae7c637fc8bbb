// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

// Package scoring evaluates one material against one requirements set.
//
// The overall score is a fixed weighted sum:
//
//	overall = 0.4*performance + 0.25*cost + 0.2*sustainability + 0.15*availability
//
// Performance is the mean of the non-zero mechanical, thermal and electrical
// match components (0.5 when none apply). The environmental match component
// is reported for diagnostics only.
//
// A zero material value or zero requirement bound is treated as absent, the
// same as nil. Every returned value is clamped to [0,1]. Score returns an
// error only for arithmetic failures; ScoreOrDegraded maps such errors to the
// Degraded sentinel so callers always get a usable score.
package scoring
