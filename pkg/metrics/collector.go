package metrics

import (
	"time"
)

// Collector mirrors the health registry into the component health gauge
type Collector struct {
	interval time.Duration
	stopCh   chan struct{}
}

// NewCollector creates a new collector refreshing every interval
func NewCollector(interval time.Duration) *Collector {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &Collector{
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins collecting metrics
func (c *Collector) Start() {
	ticker := time.NewTicker(c.interval)
	go func() {
		// Collect immediately on start
		c.collect()

		for {
			select {
			case <-ticker.C:
				c.collect()
			case <-c.stopCh:
				ticker.Stop()
				return
			}
		}
	}()
}

// Stop stops the collector
func (c *Collector) Stop() {
	close(c.stopCh)
}

func (c *Collector) collect() {
	healthChecker.mu.RLock()
	defer healthChecker.mu.RUnlock()

	for name, comp := range healthChecker.components {
		value := 0.0
		if comp.Healthy {
			value = 1.0
		}
		ComponentHealthy.WithLabelValues(name).Set(value)
	}
}
