package reactor

import (
	"context"
	"fmt"

	"github.com/calperin/fuelcycle-go/internal/application/common"
)

// Tick evaluates phase transitions at simulated time t.
//
// PROCESS ends when t reaches the stored end time: the reload count of
// batches is unloaded core → storage (transmuted to the output recipe) and
// the facility goes WAITING. WAITING re-enters PROCESS once the core holds a
// full complement and the refuel period has elapsed. INITIAL jumps straight
// to PROCESS if the core is already primed; it is never re-entered once left.
func (f *Facility) Tick(ctx context.Context, t int) error {
	logger := common.LoggerFromContext(ctx)
	logger.Log("DEBUG", "facility ticking", map[string]interface{}{
		"facility": f.name,
		"time":     t,
		"phase":    f.phase.String(),
	})

	switch f.phase {
	case PhaseProcess:
		if t == f.EndTime() {
			for i := 0; i < f.params.NLoad; i++ {
				if err := f.moveBatchOut(ctx); err != nil {
					return err
				}
			}
			f.setPhase(ctx, PhaseWaiting, t)
		}

	case PhaseWaiting:
		if f.core.Count() == f.params.NBatches && f.EndTime()+f.params.RefuelTime <= t {
			f.setPhase(ctx, PhaseProcess, t)
		}

	case PhaseInitial:
		// special case for a core primed to go
		if f.core.Count() == f.params.NBatches {
			f.setPhase(ctx, PhaseProcess, t)
		}
	}
	return nil
}

// Tock runs the refuel step at simulated time t when the facility is waiting
// on fuel. INITIAL tocks matter only before the primed-core shortcut fires,
// since Tick runs before Tock within a step.
func (f *Facility) Tock(ctx context.Context, t int) error {
	logger := common.LoggerFromContext(ctx)
	logger.Log("DEBUG", "facility tocking", map[string]interface{}{
		"facility": f.name,
		"time":     t,
		"phase":    f.phase.String(),
	})

	switch f.phase {
	case PhaseInitial, PhaseWaiting:
		return f.refuel(ctx)
	}
	return nil
}

// refuel moves whole batches reserves → core until the core holds a full
// complement or reserves runs out. Insufficient reserves is not an error:
// the core stays partially filled and a future tock continues the fill.
func (f *Facility) refuel(ctx context.Context) error {
	for f.core.Count() < f.params.NBatches && !f.reserves.IsEmpty() {
		if err := f.moveBatchIn(ctx); err != nil {
			return err
		}
	}
	return nil
}

// moveBatchIn moves one batch reserves → core, identity and quantity
// preserved
func (f *Facility) moveBatchIn(ctx context.Context) error {
	logger := common.LoggerFromContext(ctx)
	logger.Log("DEBUG", "facility loading a batch into its core", map[string]interface{}{
		"facility": f.name,
	})

	mat, err := f.reserves.Pop()
	if err != nil {
		return fmt.Errorf("facility %s: %w", f.name, err)
	}
	f.core.Push(mat)
	return nil
}

// moveBatchOut moves one batch core → storage, transmuted to the output
// recipe. Quantity is preserved across the transmutation.
func (f *Facility) moveBatchOut(ctx context.Context) error {
	logger := common.LoggerFromContext(ctx)
	logger.Log("DEBUG", "facility removing a batch from its core", map[string]interface{}{
		"facility": f.name,
	})

	mat, err := f.core.Pop()
	if err != nil {
		return fmt.Errorf("facility %s: %w", f.name, err)
	}
	if err := mat.Transmute(f.params.OutRecipe); err != nil {
		return fmt.Errorf("facility %s: %w", f.name, err)
	}
	f.storage.Push(mat)
	return nil
}
