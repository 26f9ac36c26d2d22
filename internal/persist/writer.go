package persist

import (
	"context"
	"time"
)

// run is the single writer. At most one write is in flight, and a snapshot
// still waiting is replaced by any newer one.
func (p *Persistor) run() {
	defer close(p.done)

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	stopTimer := func() {
		if timer != nil {
			timer.Stop()
			timerC = nil
		}
	}

	for {
		select {
		case <-p.wake:
			if p.cfg.Debounce <= 0 {
				p.writePending()
				continue
			}
			if timerC == nil {
				timer = time.NewTimer(p.cfg.Debounce)
				timerC = timer.C
			}
		case <-timerC:
			timerC = nil
			p.writePending()
		case reply := <-p.flushReq:
			stopTimer()
			p.writePending()
			close(reply)
		case <-p.stop:
			stopTimer()
			p.writePending()
			p.mu.Lock()
			p.closed = true
			p.mu.Unlock()
			return
		}
	}
}

func (p *Persistor) writePending() {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	p.mu.Lock()
	snap := p.pending
	p.pending = nil
	p.mu.Unlock()

	if snap == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.cfg.WriteTimeout)
	defer cancel()

	data, err := Encode(*snap, p.cfg.Whitelist)
	if err != nil {
		p.log.Error(ctx, "encode state failed", "err", err)
		return
	}
	if err := p.storage.Set(ctx, p.cfg.Key, data); err != nil {
		// The in-memory state stays authoritative; the next change retries.
		p.log.Error(ctx, "persist write failed", "bytes", len(data), "err", err)
		return
	}
	p.log.Debug(ctx, "state persisted", "bytes", len(data), "version", CurrentVersion)
}
