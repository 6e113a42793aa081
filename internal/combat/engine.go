package combat

import (
	"errors"

	"go.uber.org/zap"

	"github.com/riftgo/server/internal/config"
	"github.com/riftgo/server/internal/data"
)

var (
	ErrNilBalance    = errors.New("combat: balance constants not loaded")
	ErrNilSkillTable = errors.New("combat: skill table not loaded")
	ErrNilDotTable   = errors.New("combat: dot table not loaded")
	ErrSkillNotFound = errors.New("combat: skill not found")
	ErrDotNotFound   = errors.New("combat: dot definition not found")
)

// Engine 集中戰鬥計算所需的平衡常數與資料表。
// 所有計算皆為純函式:讀取傳入的快照,回傳新結果,絕不改寫輸入。
// 亂數一律由呼叫端注入,同一個種子必定產生同一個結果。
type Engine struct {
	bal    *config.Balance
	skills *data.SkillTable
	dots   *data.DotTable
	log    *zap.Logger
}

// NewEngine 建立戰鬥引擎。平衡常數與資料表缺一不可——
// 在零值常數上跑公式只會算出垃圾,這裡直接拒絕啟動。
func NewEngine(bal *config.Balance, skills *data.SkillTable, dots *data.DotTable, log *zap.Logger) (*Engine, error) {
	if bal == nil {
		return nil, ErrNilBalance
	}
	if err := bal.Validate(); err != nil {
		return nil, err
	}
	if skills == nil {
		return nil, ErrNilSkillTable
	}
	if dots == nil {
		return nil, ErrNilDotTable
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{bal: bal, skills: skills, dots: dots, log: log}, nil
}
