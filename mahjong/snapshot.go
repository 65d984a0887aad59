package mahjong

import (
	"encoding/json"
)

// Encode 把整局状态序列化成JSON快照, 供落地保存或断线重入
func (s *GameState) Encode() ([]byte, error) {
	return json.Marshal(s)
}

// DecodeGameState 从JSON快照恢复局面
func DecodeGameState(data []byte) (*GameState, error) {
	s := &GameState{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, err
	}
	if s.Rule == nil {
		s.Rule = NewRule()
	}
	return s, nil
}
