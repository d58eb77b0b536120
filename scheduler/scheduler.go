// Package scheduler runs the two periodic tasks that drive a vehicle:
// the FSM tick and the radio service tick.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"time"

	"phototaxis.dev/radio"
	"phototaxis.dev/vehicle"
)

// Period is the default target interval for both tasks, used by
// Config zero values and by callers (cmd/simulate's trace ticker) that
// want the same cadence without constructing a Config.
const Period = 10 * time.Millisecond

// Config configures a scheduler run.
type Config struct {
	// FSMPeriod and RadioPeriod are the target intervals for the FSM
	// and radio tasks respectively. A zero value defaults to Period.
	FSMPeriod   time.Duration
	RadioPeriod time.Duration

	// Debug gates verbose per-tick logging.
	Debug bool
}

// Run starts the FSM task and the radio task and blocks until ctx is
// canceled or either task's body returns a fatal error. There is no
// restart policy: a task that errors stops the whole run, and Run
// returns that error to its caller rather than terminating the process
// itself — cmd/vehicle's main is the one place that turns it into a
// fatal exit.
func Run(ctx context.Context, v *vehicle.Context, svc *radio.Service, cfg Config) error {
	fsmPeriod, radioPeriod := cfg.FSMPeriod, cfg.RadioPeriod
	if fsmPeriod <= 0 {
		fsmPeriod = Period
	}
	if radioPeriod <= 0 {
		radioPeriod = Period
	}

	errc := make(chan error, 2)

	go runPeriodic(ctx, "fsm", fsmPeriod, cfg.Debug, errc, func() error {
		v.Tick()
		return nil
	})
	go runPeriodic(ctx, "radio", radioPeriod, cfg.Debug, errc, func() error {
		return svc.ServiceTick()
	})

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errc:
		return err
	}
}

// runPeriodic runs body every period, timing each iteration and
// sleeping the positive residual; a non-positive residual yields
// immediately instead of oversleeping into the next period.
func runPeriodic(ctx context.Context, name string, period time.Duration, debug bool, errc chan<- error, body func() error) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		start := time.Now()
		if err := body(); err != nil {
			errc <- fmt.Errorf("scheduler: %s task: %w", name, err)
			return
		}
		elapsed := time.Since(start)
		if debug {
			log.Printf("scheduler: %s task tick took %v", name, elapsed)
		}

		residual := period - elapsed
		if residual > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(residual):
			}
		} else {
			runtime.Gosched()
		}
	}
}
