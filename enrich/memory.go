// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package enrich

import (
	"log/slog"
	"os"

	"github.com/shirou/gopsutil/v4/process"
)

// MemorySampler logs process resident memory around batch boundaries, to
// support regression detection of leaks across long enrichment runs.
// When process stats are unavailable it degrades to a no-op.
type MemorySampler struct {
	proc   *process.Process
	start  uint64
	logger *slog.Logger
}

// NewMemorySampler creates a sampler anchored to the current process RSS.
func NewMemorySampler(logger *slog.Logger) *MemorySampler {
	if logger == nil {
		logger = slog.Default()
	}

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		logger.Debug("process memory stats unavailable", "err", err)
		return &MemorySampler{logger: logger}
	}

	sampler := &MemorySampler{proc: proc, logger: logger}
	if rss, ok := sampler.rss(); ok {
		sampler.start = rss
	}
	return sampler
}

// Sample logs the current RSS and the delta against the first sample.
func (m *MemorySampler) Sample(stage string) {
	rss, ok := m.rss()
	if !ok {
		return
	}
	m.logger.Debug("process memory",
		"stage", stage,
		"rss_mb", rss/(1024*1024),
		"diff_mb", (int64(rss)-int64(m.start))/(1024*1024))
}

func (m *MemorySampler) rss() (uint64, bool) {
	if m.proc == nil {
		return 0, false
	}
	info, err := m.proc.MemoryInfo()
	if err != nil || info == nil {
		return 0, false
	}
	return info.RSS, true
}
