package facade

import (
	"os"
	"strings"
)

// SelectionStore เก็บ tenant ที่เลือกไว้ ให้เปิดมาใหม่แล้วได้ร้านเดิม
type SelectionStore interface {
	Save(tenantID string) error
	Load() (string, error)
}

// FileSelectionStore เก็บลงไฟล์เล็ก ๆ ข้าง ๆ process
type FileSelectionStore struct {
	Path string
}

func NewFileSelectionStore(path string) *FileSelectionStore {
	return &FileSelectionStore{Path: path}
}

func (s *FileSelectionStore) Save(tenantID string) error {
	return os.WriteFile(s.Path, []byte(tenantID+"\n"), 0644)
}

func (s *FileSelectionStore) Load() (string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// MemorySelectionStore สำหรับ test
type MemorySelectionStore struct {
	tenantID string
}

func (s *MemorySelectionStore) Save(tenantID string) error {
	s.tenantID = tenantID
	return nil
}

func (s *MemorySelectionStore) Load() (string, error) {
	return s.tenantID, nil
}
