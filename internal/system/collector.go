package system

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultSampleInterval = time.Second
	DefaultDiskPath       = "/"
)

// ErrMetricsUnavailable wraps every failure reported by a Collector.
var ErrMetricsUnavailable = errors.New("metrics unavailable")

// Reader returns either a complete SystemInfo or the reason it could not be built.
type Reader interface {
	Collect(ctx context.Context) (*SystemInfo, error)
}

type SystemInfo struct {
	Hostname           string      `json:"hostname"`
	MemoryUsagePercent float64     `json:"memory_usage_percent"`
	MemoryAvailableGB  float64     `json:"memory_available_gb"`
	DiskUsagePercent   float64     `json:"disk_usage_percent"`
	CPUUsagePercent    float64     `json:"cpu_usage_percent"`
	LoadAverage        LoadAverage `json:"load_average"`

	// raw value kept for logging only
	MemoryAvailableBytes uint64 `json:"-"`
}

type MemInfo struct {
	UsedPercent    float64
	AvailableBytes uint64
}

type Collector struct {
	SampleInterval time.Duration
	DiskPath       string

	hostname      func() (string, error)
	loadSupported bool
	loadAvg       func(context.Context) (*load.AvgStat, error)
}

type Option func(*Collector)

func WithSampleInterval(d time.Duration) Option {
	return func(c *Collector) { c.SampleInterval = d }
}

func WithDiskPath(path string) Option {
	return func(c *Collector) { c.DiskPath = path }
}

func NewCollector(opts ...Option) *Collector {
	c := &Collector{
		SampleInterval: DefaultSampleInterval,
		DiskPath:       DefaultDiskPath,
		hostname:       os.Hostname,
		loadSupported:  loadAverageSupported,
		loadAvg:        load.AvgWithContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect reads every metric concurrently. The CPU sample dominates the
// latency; any single failure discards the whole snapshot.
func (c *Collector) Collect(ctx context.Context) (*SystemInfo, error) {
	var (
		memI     *MemInfo
		diskPct  float64
		cpuPct   float64
		hostname string
		loadAvg  LoadAverage
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { memI, err = CollectMem(gctx); return })
	g.Go(func() (err error) { diskPct, err = CollectDisk(gctx, c.DiskPath); return })
	g.Go(func() (err error) { cpuPct, err = CollectCPU(gctx, c.SampleInterval); return })
	g.Go(func() (err error) { hostname, err = c.collectHostname(); return })
	g.Go(func() (err error) { loadAvg, err = c.collectLoad(gctx); return })

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMetricsUnavailable, err)
	}

	return &SystemInfo{
		Hostname:             hostname,
		MemoryUsagePercent:   memI.UsedPercent,
		MemoryAvailableGB:    RoundGB(memI.AvailableBytes),
		DiskUsagePercent:     diskPct,
		CPUUsagePercent:      cpuPct,
		LoadAverage:          loadAvg,
		MemoryAvailableBytes: memI.AvailableBytes,
	}, nil
}

func (c *Collector) collectHostname() (string, error) {
	lookup := c.hostname
	if lookup == nil {
		lookup = os.Hostname
	}
	return CollectHostname(lookup)
}

func CollectMem(ctx context.Context) (*MemInfo, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("virtual memory: %w", err)
	}
	return &MemInfo{UsedPercent: vm.UsedPercent, AvailableBytes: vm.Available}, nil
}

func CollectDisk(ctx context.Context, path string) (float64, error) {
	u, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return 0, fmt.Errorf("disk usage %s: %w", path, err)
	}
	return u.UsedPercent, nil
}

// CollectCPU blocks for interval and returns overall utilisation over it.
func CollectCPU(ctx context.Context, interval time.Duration) (float64, error) {
	pcts, err := cpu.PercentWithContext(ctx, interval, false)
	if err != nil {
		return 0, fmt.Errorf("cpu percent: %w", err)
	}
	if len(pcts) == 0 {
		return 0, errors.New("cpu percent: no samples")
	}
	return clampPercent(pcts[0]), nil
}

func (c *Collector) collectLoad(ctx context.Context) (LoadAverage, error) {
	avg := c.loadAvg
	if avg == nil {
		avg = load.AvgWithContext
	}
	return readLoad(ctx, c.loadSupported, avg)
}

// CollectLoad returns NotAvailable on platforms without a load average.
func CollectLoad(ctx context.Context) (LoadAverage, error) {
	return readLoad(ctx, loadAverageSupported, load.AvgWithContext)
}

func readLoad(ctx context.Context, supported bool, avgFn func(context.Context) (*load.AvgStat, error)) (LoadAverage, error) {
	if !supported {
		return NotAvailable(), nil
	}
	avg, err := avgFn(ctx)
	if err != nil {
		return LoadAverage{}, fmt.Errorf("load average: %w", err)
	}
	return NewLoadAverage(avg.Load1, avg.Load5, avg.Load15), nil
}

func CollectHostname(lookup func() (string, error)) (string, error) {
	name, err := lookup()
	if err != nil {
		return "", fmt.Errorf("hostname: %w", err)
	}
	return name, nil
}

// RoundGB converts bytes to GiB rounded to two decimals.
func RoundGB(bytes uint64) float64 {
	return math.Round(float64(bytes)/(1<<30)*100) / 100
}

// cpu.Percent can overshoot slightly when counters move between reads.
func clampPercent(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}
