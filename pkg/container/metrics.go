package container

import (
	"sync"
	"time"
)

// MetricsCollector collects per-component build metrics
type MetricsCollector interface {
	RecordDependencyCount(componentName string, count int)
	RecordInitDuration(componentName string, duration time.Duration)
	GetMetrics() map[string]*ComponentMetrics
}

// ComponentMetrics stores metrics for a component
type ComponentMetrics struct {
	Name            string
	InitDuration    time.Duration
	DependencyCount int
}

// defaultMetricsCollector implements MetricsCollector
type defaultMetricsCollector struct {
	metrics map[string]*ComponentMetrics
	mu      sync.RWMutex
	enabled bool
}

func newMetricsCollector(enabled bool) *defaultMetricsCollector {
	return &defaultMetricsCollector{
		metrics: make(map[string]*ComponentMetrics),
		enabled: enabled,
	}
}

func (c *defaultMetricsCollector) ensureMetricExists(componentName string) {
	if _, exists := c.metrics[componentName]; !exists {
		c.metrics[componentName] = &ComponentMetrics{
			Name: componentName,
		}
	}
}

func (c *defaultMetricsCollector) RecordDependencyCount(componentName string, count int) {
	if !c.enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureMetricExists(componentName)
	c.metrics[componentName].DependencyCount = count
}

func (c *defaultMetricsCollector) RecordInitDuration(componentName string, duration time.Duration) {
	if !c.enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureMetricExists(componentName)
	c.metrics[componentName].InitDuration = duration
}

func (c *defaultMetricsCollector) GetMetrics() map[string]*ComponentMetrics {
	c.mu.RLock()
	defer c.mu.RUnlock()

	// Return a copy to avoid concurrent access issues
	result := make(map[string]*ComponentMetrics, len(c.metrics))
	for name, m := range c.metrics {
		copied := *m
		result[name] = &copied
	}
	return result
}
