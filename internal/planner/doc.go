// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

// Package planner produces material selection strategies from high-level
// objectives such as "high strength" or "low cost".
//
// Planning is heuristic and does not learn. Sessions are numbered
// rl_session_0, rl_session_1, ... and kept in memory so that feedback can
// be attached to them later.
package planner
