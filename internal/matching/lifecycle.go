package matching

import (
	"strings"
	"time"

	"pitchside/internal/domain/fixture"
)

// Window around kickoff within which telemetry is trusted as evidence of
// a live match.
const liveWindow = 3 * time.Hour

// Window after kickoff within which a completed fixture is still treated
// as live-equivalent for display.
const recentlyFinishedWindow = 2 * time.Hour

var liveStatusTokens = map[string]struct{}{
	"live":        {},
	"in play":     {},
	"inplay":      {},
	"in progress": {},
	"playing":     {},
	"1h":          {},
	"2h":          {},
	"ht":          {},
	"half time":   {},
	"halftime":    {},
	"et":          {},
}

var finishedStatusTokens = map[string]struct{}{
	"ft":        {},
	"finished":  {},
	"full time": {},
	"fulltime":  {},
	"complete":  {},
	"completed": {},
	"ended":     {},
	"aet":       {},
	"pen":       {},
}

var notStartedStatusTokens = map[string]struct{}{
	"ns":          {},
	"not started": {},
	"scheduled":   {},
	"upcoming":    {},
	"incomplete":  {},
	"fixture":     {},
	"tbd":         {},
}

// Classify derives the lifecycle state of a fixture at the given instant.
// Pure function of its inputs: explicit live status always wins, then an
// explicit finished status, then telemetry near kickoff, then a future
// kickoff. A finished status is settled before the telemetry window is
// consulted, otherwise any final score inside the window would read as
// still live and RecentlyFinished could never trigger.
//
// The kickoff-window-plus-telemetry rule is a heuristic; a postponed or
// abandoned fixture that still carries telemetry can be misread as live.
func Classify(f fixture.Fixture, nowUnix int64) fixture.LifecycleState {
	status := strings.ToLower(strings.TrimSpace(f.Status))

	if _, ok := liveStatusTokens[status]; ok {
		return fixture.StateLive
	}

	sinceKickoff := time.Duration(nowUnix-f.KickoffUnix) * time.Second

	if _, finished := finishedStatusTokens[status]; finished {
		if sinceKickoff > 0 && sinceKickoff <= recentlyFinishedWindow && f.HasTelemetry() {
			return fixture.StateRecentlyFinished
		}
		return fixture.StateFinished
	}

	withinLiveWindow := sinceKickoff > -liveWindow && sinceKickoff < liveWindow
	if withinLiveWindow && f.HasNonZeroTelemetry() {
		return fixture.StateLive
	}

	if _, notStarted := notStartedStatusTokens[status]; notStarted && f.KickoffUnix > nowUnix {
		return fixture.StateUpcoming
	}

	return fixture.StateFinished
}
