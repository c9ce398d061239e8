// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

/*
Package services adapts long-running components to suture.Service.

  - HTTPServerService: blocking ListenAndServe with graceful Shutdown on cancel
  - ProbeService: periodic graph provider lookup backing /health/ready and the
    upstream_up gauge

Each service returns ctx.Err() on cancellation and implements fmt.Stringer so
supervisor events name it.
*/
package services
