// 플랫 파일 영속화 레이어
//
// 디스크 레이아웃:
//   - <data_dir>/alerts/alerts-YYYY-MM-DD.log  : 알림 한 줄씩 append
//   - <data_dir>/reports/report-YYYY-MM-DD.json : 하루 1개, 생성 시마다 교체
//   - <data_dir>/channels.json                  : 웹훅 채널 설정 목록
//
// 알림 로그 라인 형식: <ISO-timestamp> [<SEVERITY>] <KIND>: <message>
//
// 다른 프로세스(백업, 로그 수집기)와의 경합을 막기 위해 쓰기 경로는
// flock 사이드카 락으로 보호한다.

package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/codepulse/backend/internal/model"
	"github.com/gofrs/flock"
)

const dayFormat = "2006-01-02"

type FileStore struct {
	dataDir string
}

// NewFileStore - 하위 디렉토리까지 생성
func NewFileStore(dataDir string) (*FileStore, error) {
	for _, dir := range []string{dataDir, filepath.Join(dataDir, "alerts"), filepath.Join(dataDir, "reports")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data dir %s: %w", dir, err)
		}
	}
	return &FileStore{dataDir: dataDir}, nil
}

func (f *FileStore) alertPath(day time.Time) string {
	return filepath.Join(f.dataDir, "alerts", "alerts-"+day.Format(dayFormat)+".log")
}

func (f *FileStore) reportPath(day string) string {
	return filepath.Join(f.dataDir, "reports", "report-"+day+".json")
}

func (f *FileStore) channelsPath() string {
	return filepath.Join(f.dataDir, "channels.json")
}

// withLock - path에 대한 사이드카 락을 잡고 fn 실행
func withLock(path string, fn func() error) error {
	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire file lock: %w", err)
	}
	defer lock.Unlock()
	return fn()
}

// AppendAlert - 날짜별 알림 로그 파일에 한 줄 append
//
// 채널 전송 결과와 무관하게 항상 호출되는 내구 기록 경로다.
func (f *FileStore) AppendAlert(alert model.AlertRecord) error {
	line := fmt.Sprintf("%s [%s] %s: %s\n",
		alert.CreatedAt.UTC().Format(time.RFC3339),
		strings.ToUpper(string(alert.Severity)),
		alert.Kind,
		alert.Message,
	)

	path := f.alertPath(alert.CreatedAt)
	return withLock(path, func() error {
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open alert log: %w", err)
		}
		defer file.Close()
		if _, err := file.WriteString(line); err != nil {
			return fmt.Errorf("failed to append alert: %w", err)
		}
		return nil
	})
}

// WriteReport - 날짜별 리포트 JSON 저장
//
// 같은 날짜에 다시 생성되면 이전 내용을 병합하지 않고 교체한다.
func (f *FileStore) WriteReport(report model.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	path := f.reportPath(report.GeneratedAt.Format(dayFormat))
	return withLock(path, func() error {
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		return nil
	})
}

// ReadReport - 날짜(YYYY-MM-DD)로 리포트 조회
func (f *FileStore) ReadReport(day string) (*model.Report, error) {
	if _, err := time.Parse(dayFormat, day); err != nil {
		return nil, fmt.Errorf("invalid report date %q: %w", day, err)
	}

	data, err := os.ReadFile(f.reportPath(day))
	if err != nil {
		return nil, fmt.Errorf("report not found for %s: %w", day, err)
	}

	var report model.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	return &report, nil
}

// LatestReportDay - 저장된 리포트 중 가장 최근 날짜 반환
func (f *FileStore) LatestReportDay() (string, error) {
	entries, err := os.ReadDir(filepath.Join(f.dataDir, "reports"))
	if err != nil {
		return "", fmt.Errorf("failed to list reports: %w", err)
	}

	days := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, "report-") && strings.HasSuffix(name, ".json") {
			days = append(days, strings.TrimSuffix(strings.TrimPrefix(name, "report-"), ".json"))
		}
	}
	if len(days) == 0 {
		return "", fmt.Errorf("no reports found")
	}
	sort.Strings(days)
	return days[len(days)-1], nil
}

// channelsFile - channels.json의 직렬화 형태
type channelsFile struct {
	NextID   int                   `json:"next_id"`
	Channels []model.ChannelConfig `json:"channels"`
}

func (f *FileStore) readChannels() (*channelsFile, error) {
	data, err := os.ReadFile(f.channelsPath())
	if os.IsNotExist(err) {
		return &channelsFile{NextID: 1, Channels: []model.ChannelConfig{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read channels file: %w", err)
	}

	var file channelsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse channels file: %w", err)
	}
	if file.NextID < 1 {
		file.NextID = 1
	}
	return &file, nil
}

func (f *FileStore) writeChannels(file *channelsFile) error {
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal channels: %w", err)
	}
	if err := os.WriteFile(f.channelsPath(), data, 0o644); err != nil {
		return fmt.Errorf("failed to write channels file: %w", err)
	}
	return nil
}

// GetChannelConfigs - 채널 설정 전체 목록 조회 (최신 수정순)
func (f *FileStore) GetChannelConfigs() ([]model.ChannelConfig, error) {
	var configs []model.ChannelConfig
	err := withLock(f.channelsPath(), func() error {
		file, err := f.readChannels()
		if err != nil {
			return err
		}
		configs = file.Channels
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(configs, func(i, j int) bool {
		return configs[i].UpdatedAt.After(configs[j].UpdatedAt)
	})
	if configs == nil {
		configs = []model.ChannelConfig{}
	}
	return configs, nil
}

// GetChannelConfigByID - ID로 단건 조회
func (f *FileStore) GetChannelConfigByID(id int) (*model.ChannelConfig, error) {
	var found *model.ChannelConfig
	err := withLock(f.channelsPath(), func() error {
		file, err := f.readChannels()
		if err != nil {
			return err
		}
		for i := range file.Channels {
			if file.Channels[i].ID == id {
				cfg := file.Channels[i]
				found = &cfg
				return nil
			}
		}
		return fmt.Errorf("channel config not found: id=%d", id)
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// CreateChannelConfig - 신규 채널 설정 저장
func (f *FileStore) CreateChannelConfig(cfg model.ChannelConfig) (int, error) {
	var id int
	err := withLock(f.channelsPath(), func() error {
		file, err := f.readChannels()
		if err != nil {
			return err
		}
		cfg.ID = file.NextID
		cfg.UpdatedAt = time.Now()
		file.NextID++
		file.Channels = append(file.Channels, cfg)
		id = cfg.ID
		return f.writeChannels(file)
	})
	return id, err
}

// UpdateChannelConfig - ID로 채널 설정 수정
func (f *FileStore) UpdateChannelConfig(id int, cfg model.ChannelConfig) error {
	return withLock(f.channelsPath(), func() error {
		file, err := f.readChannels()
		if err != nil {
			return err
		}
		for i := range file.Channels {
			if file.Channels[i].ID == id {
				cfg.ID = id
				cfg.UpdatedAt = time.Now()
				file.Channels[i] = cfg
				return f.writeChannels(file)
			}
		}
		return fmt.Errorf("channel config not found: id=%d", id)
	})
}

// DeleteChannelConfig - ID로 채널 설정 삭제
func (f *FileStore) DeleteChannelConfig(id int) error {
	return withLock(f.channelsPath(), func() error {
		file, err := f.readChannels()
		if err != nil {
			return err
		}
		for i := range file.Channels {
			if file.Channels[i].ID == id {
				file.Channels = append(file.Channels[:i], file.Channels[i+1:]...)
				return f.writeChannels(file)
			}
		}
		return fmt.Errorf("channel config not found: id=%d", id)
	})
}
