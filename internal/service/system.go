// 시스템 샘플 수집기 정의
//
// 힙 지표는 Go 런타임에서, RSS/CPU 시간은 gopsutil로 프로세스에서 읽는다.
// 스케줄러 틱마다 한 번 호출된다.

package service

import (
	"log"
	"os"
	"runtime"
	"time"

	"github.com/codepulse/backend/internal/model"
	"github.com/shirou/gopsutil/v4/process"
)

// SystemSampler 구조체 정의
type SystemSampler struct {
	proc      *process.Process
	startedAt time.Time
}

func NewSystemSampler() *SystemSampler {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		// 프로세스 핸들을 못 얻어도 런타임 지표만으로 동작한다
		log.Printf("[System] Failed to open process handle: %v", err)
		proc = nil
	}
	return &SystemSampler{
		proc:      proc,
		startedAt: time.Now(),
	}
}

// Sample - 현재 시스템 샘플 생성
func (s *SystemSampler) Sample() model.SystemSample {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	sample := model.SystemSample{
		Timestamp: time.Now(),
		Memory: model.MemoryStat{
			HeapUsed:  ms.HeapAlloc,
			HeapTotal: ms.HeapSys,
			External:  ms.Sys - ms.HeapSys,
		},
		UptimeSeconds: time.Since(s.startedAt).Seconds(),
	}

	if s.proc != nil {
		if memInfo, err := s.proc.MemoryInfo(); err == nil {
			sample.Memory.RSS = memInfo.RSS
		}
		if times, err := s.proc.Times(); err == nil {
			sample.CPU = model.CPUStat{
				UserMicros:   int64(times.User * 1e6),
				SystemMicros: int64(times.System * 1e6),
			}
		}
	}

	return sample
}

// MemorySnapshot - 분석 샘플에 붙는 프로세스 메모리 스냅샷
func (s *SystemSampler) MemorySnapshot() model.MemoryStat {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	stat := model.MemoryStat{
		HeapUsed:  ms.HeapAlloc,
		HeapTotal: ms.HeapSys,
		External:  ms.Sys - ms.HeapSys,
	}
	if s.proc != nil {
		if memInfo, err := s.proc.MemoryInfo(); err == nil {
			stat.RSS = memInfo.RSS
		}
	}
	return stat
}
