package servers

import (
	"fmt"

	"logiq/interfaces"
)

// Manager は常駐サービスの起動と停止の順序をまとめて面倒みます。
type Manager struct {
	log     interfaces.Logger
	servers []Server
}

func NewManager(log interfaces.Logger) *Manager {
	return &Manager{log: log}
}

// Add はサービスを登録します。StartAllは登録順に開始します。
func (m *Manager) Add(s Server) {
	m.servers = append(m.servers, s)
}

// StartAll は登録順にサービスを開始します。途中で失敗した場合は、
// そこまでに開始したものを逆順で止めてからエラーを返します。
func (m *Manager) StartAll() error {
	for i, s := range m.servers {
		m.log.Info("Starting service", "name", s.Name())
		if err := s.Start(); err != nil {
			for j := i - 1; j >= 0; j-- {
				m.servers[j].Stop()
			}
			return fmt.Errorf("%s の起動に失敗しました: %w", s.Name(), err)
		}
	}
	return nil
}

// StopAll は登録の逆順でサービスを停止します。
func (m *Manager) StopAll() {
	for i := len(m.servers) - 1; i >= 0; i-- {
		s := m.servers[i]
		m.log.Info("Stopping service", "name", s.Name())
		s.Stop()
	}
}
