package database

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// PoolStatsCollector exports pgxpool connection statistics as Prometheus
// metrics. All metrics carry a constant "pool" label so multiple pools can
// be registered side by side.
type PoolStatsCollector struct {
	pool *pgxpool.Pool

	acquiredConns     *prometheus.Desc
	idleConns         *prometheus.Desc
	totalConns        *prometheus.Desc
	maxConns          *prometheus.Desc
	acquireCount      *prometheus.Desc
	acquireDuration   *prometheus.Desc
	emptyAcquires     *prometheus.Desc
	canceledAcquires  *prometheus.Desc
	newConnsCount     *prometheus.Desc
	lifetimeDestroyed *prometheus.Desc
	idleDestroyed     *prometheus.Desc
}

// NewPoolStatsCollector creates a collector for the given pool.
func NewPoolStatsCollector(pool *pgxpool.Pool, poolName string) *PoolStatsCollector {
	constLabels := prometheus.Labels{"pool": poolName}
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(name, help, nil, constLabels)
	}
	return &PoolStatsCollector{
		pool:              pool,
		acquiredConns:     desc("db_pool_acquired_connections", "Connections currently acquired from the pool"),
		idleConns:         desc("db_pool_idle_connections", "Connections currently idle in the pool"),
		totalConns:        desc("db_pool_total_connections", "Total connections managed by the pool"),
		maxConns:          desc("db_pool_max_connections", "Maximum connections the pool will open"),
		acquireCount:      desc("db_pool_acquire_count_total", "Total successful connection acquires"),
		acquireDuration:   desc("db_pool_acquire_duration_seconds_total", "Cumulative time spent acquiring connections"),
		emptyAcquires:     desc("db_pool_empty_acquire_count_total", "Acquires that had to wait for a free connection"),
		canceledAcquires:  desc("db_pool_canceled_acquire_count_total", "Acquires canceled before a connection was available"),
		newConnsCount:     desc("db_pool_new_connections_total", "New connections opened by the pool"),
		lifetimeDestroyed: desc("db_pool_max_lifetime_destroy_total", "Connections closed for exceeding max lifetime"),
		idleDestroyed:     desc("db_pool_max_idle_destroy_total", "Connections closed for exceeding max idle time"),
	}
}

// Describe implements prometheus.Collector.
func (c *PoolStatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.acquiredConns
	ch <- c.idleConns
	ch <- c.totalConns
	ch <- c.maxConns
	ch <- c.acquireCount
	ch <- c.acquireDuration
	ch <- c.emptyAcquires
	ch <- c.canceledAcquires
	ch <- c.newConnsCount
	ch <- c.lifetimeDestroyed
	ch <- c.idleDestroyed
}

// Collect implements prometheus.Collector. It reads a point-in-time snapshot
// of the pool statistics.
func (c *PoolStatsCollector) Collect(ch chan<- prometheus.Metric) {
	stat := c.pool.Stat()

	ch <- prometheus.MustNewConstMetric(c.acquiredConns, prometheus.GaugeValue, float64(stat.AcquiredConns()))
	ch <- prometheus.MustNewConstMetric(c.idleConns, prometheus.GaugeValue, float64(stat.IdleConns()))
	ch <- prometheus.MustNewConstMetric(c.totalConns, prometheus.GaugeValue, float64(stat.TotalConns()))
	ch <- prometheus.MustNewConstMetric(c.maxConns, prometheus.GaugeValue, float64(stat.MaxConns()))
	ch <- prometheus.MustNewConstMetric(c.acquireCount, prometheus.CounterValue, float64(stat.AcquireCount()))
	ch <- prometheus.MustNewConstMetric(c.acquireDuration, prometheus.CounterValue, stat.AcquireDuration().Seconds())
	ch <- prometheus.MustNewConstMetric(c.emptyAcquires, prometheus.CounterValue, float64(stat.EmptyAcquireCount()))
	ch <- prometheus.MustNewConstMetric(c.canceledAcquires, prometheus.CounterValue, float64(stat.CanceledAcquireCount()))
	ch <- prometheus.MustNewConstMetric(c.newConnsCount, prometheus.CounterValue, float64(stat.NewConnsCount()))
	ch <- prometheus.MustNewConstMetric(c.lifetimeDestroyed, prometheus.CounterValue, float64(stat.MaxLifetimeDestroyCount()))
	ch <- prometheus.MustNewConstMetric(c.idleDestroyed, prometheus.CounterValue, float64(stat.MaxIdleDestroyCount()))
}

// RegisterPoolMetrics registers a pool collector with the default registry.
func RegisterPoolMetrics(pool *pgxpool.Pool, poolName string) {
	prometheus.MustRegister(NewPoolStatsCollector(pool, poolName))
}
