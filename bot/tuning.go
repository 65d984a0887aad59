package bot

// Tuning 出牌评估的权重集合
type Tuning struct {
	SetScore        float64 // 每组面子
	PairScore       float64 // 每个对子
	PartialScore    float64 // 每个搭子
	TerminalPenalty float64 // 孤张幺九
	HonorPenalty    float64 // 孤张字牌
	StaticWeight    float64 // 静态分放大倍数
	MediumJitter    float64 // 中等难度随机扰动上限
	TieEpsilon      float64 // 并列判定阈值
	ClaimThreshold  float64 // 吃碰的价值门槛
	DangerRaw       float64 // 他家听牌时近生张的惩罚
	DangerSemi      float64 // 见二张
	DangerSafe      float64 // 见三张
	DangerLate      float64 // 残局生张
	MiddleAmplify   float64 // 中张(4-6)危险放大
}

// DefaultTuning 以进张速度优先, 残局转防守。
var DefaultTuning = Tuning{
	SetScore:        100,
	PairScore:       10,
	PartialScore:    5,
	TerminalPenalty: 1,
	HonorPenalty:    2,
	StaticWeight:    10,
	MediumJitter:    5,
	TieEpsilon:      0.01,
	ClaimThreshold:  80,
	DangerRaw:       500,
	DangerSemi:      100,
	DangerSafe:      20,
	DangerLate:      100,
	MiddleAmplify:   1.5,
}
