// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

/*
Package services adapts MatTailor components to suture's Serve(ctx) error
lifecycle.

  - HTTPServerService: ListenAndServe with graceful Shutdown on cancel
  - CacheSweeperService: ticker-driven cache.Sweeper.CleanupExpired
  - EventRouterService: events.Router.Run; not restarted after an
    unexpected exit because a watermill router runs once

Every wrapper implements fmt.Stringer so supervisor logs name it.
*/
package services
