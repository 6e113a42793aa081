package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for rotation scripting. Scripts
// decide which skill a combatant casts next; all damage math stays in
// Go. Single-goroutine access only (simulation loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all rotation scripts from
// the given directory.
func NewEngine(scriptDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	if err := e.loadDir(scriptDir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load rotation scripts: %w", err)
	}
	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// SkillOption is one castable skill handed to the rotation script.
type SkillOption struct {
	SkillID       int32
	Name          string
	CooldownLeft  float64 // seconds until castable again (0 = ready)
	AverageDamage float64 // non-random estimate, for script heuristics
}

// RotationContext is the combatant view a rotation script decides on.
type RotationContext struct {
	SelfID         int64
	Life           float64
	MaxLife        float64
	TargetLife     float64
	TargetMaxLife  float64
	TargetEffects  []string // active status tags on the target
	ElapsedSeconds float64
	Skills         []SkillOption
}

// NextSkill calls the Lua next_skill(ctx) function and returns the
// chosen skill ID. Returns 0 when the script declines to cast (or the
// function is missing); the caller falls back to its default pick.
func (e *Engine) NextSkill(ctx RotationContext) int32 {
	fn := e.vm.GetGlobal("next_skill")
	if fn == lua.LNil {
		return 0
	}

	t := e.vm.NewTable()
	t.RawSetString("self_id", lua.LNumber(ctx.SelfID))
	t.RawSetString("life", lua.LNumber(ctx.Life))
	t.RawSetString("max_life", lua.LNumber(ctx.MaxLife))
	t.RawSetString("target_life", lua.LNumber(ctx.TargetLife))
	t.RawSetString("target_max_life", lua.LNumber(ctx.TargetMaxLife))
	t.RawSetString("elapsed", lua.LNumber(ctx.ElapsedSeconds))

	effects := e.vm.NewTable()
	for i, tag := range ctx.TargetEffects {
		effects.RawSetInt(i+1, lua.LString(tag))
	}
	t.RawSetString("target_effects", effects)

	skills := e.vm.NewTable()
	for i, sk := range ctx.Skills {
		row := e.vm.NewTable()
		row.RawSetString("skill_id", lua.LNumber(sk.SkillID))
		row.RawSetString("name", lua.LString(sk.Name))
		row.RawSetString("cooldown_left", lua.LNumber(sk.CooldownLeft))
		row.RawSetString("avg_damage", lua.LNumber(sk.AverageDamage))
		skills.RawSetInt(i+1, row)
	}
	t.RawSetString("skills", skills)

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua next_skill error", zap.Error(err), zap.Int64("self", ctx.SelfID))
		return 0
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)
	return int32(lua.LVAsNumber(result))
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
