/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package plan

import (
	"fmt"
	"math"
	"time"
)

// FormatTime renders the local time of day, zero-padded.
func FormatTime(t time.Time) string {
	return t.Format("15:04")
}

// FormatDate renders day/month, zero-padded.
func FormatDate(t time.Time) string {
	return t.Format("02/01")
}

// FormatDuration renders minutes as "<H>h <M>m", floor-truncated.
// Non-finite or negative input renders as "0h 0m".
func FormatDuration(minutes float64) string {
	if math.IsNaN(minutes) || math.IsInf(minutes, 0) || minutes < 0 {
		return "0h 0m"
	}
	whole := int(minutes)
	return fmt.Sprintf("%dh %dm", whole/60, whole%60)
}
