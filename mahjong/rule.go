package mahjong

import (
	"github.com/spf13/viper"
)

// Rule 一桌游戏的规则参数, 创建后只读
type Rule struct {
	BaseScore    int64  `mapstructure:"base_score"`     // 底分
	TaiScore     int64  `mapstructure:"tai_score"`      // 每台分数
	DeadWall     int    `mapstructure:"dead_wall"`      // 海底保留张数
	InitScore    int64  `mapstructure:"init_score"`     // 初始筹码
	AILevel      string `mapstructure:"ai_level"`       // easy/medium/hard
	ThinkDelayMS int    `mapstructure:"think_delay"`    // AI思考延迟(毫秒)
	PresetFile   string `mapstructure:"preset_file"`    // 配牌文件, 为空则随机
	LateWallMark int    `mapstructure:"late_wall_mark"` // 剩余张数低于此值视为残局
}

func NewRule() *Rule {
	return &Rule{
		BaseScore:    50,
		TaiScore:     20,
		DeadWall:     16,
		InitScore:    1000,
		AILevel:      "medium",
		ThinkDelayMS: 1000,
		LateWallMark: 40,
	}
}

// LoadRule 从yaml文件加载规则, 缺省项用默认值
func LoadRule(path string) (*Rule, error) {
	rule := NewRule()
	if path == "" {
		return rule, nil
	}

	vp := viper.New()
	vp.SetConfigType("yaml")
	vp.SetConfigFile(path)
	vp.SetDefault("base_score", rule.BaseScore)
	vp.SetDefault("tai_score", rule.TaiScore)
	vp.SetDefault("dead_wall", rule.DeadWall)
	vp.SetDefault("init_score", rule.InitScore)
	vp.SetDefault("ai_level", rule.AILevel)
	vp.SetDefault("think_delay", rule.ThinkDelayMS)
	vp.SetDefault("late_wall_mark", rule.LateWallMark)
	if err := vp.ReadInConfig(); err != nil {
		return nil, err
	}
	if err := vp.Unmarshal(rule); err != nil {
		return nil, err
	}
	return rule, nil
}
