package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/riftgo/server/internal/combat"
	"github.com/riftgo/server/internal/config"
	"github.com/riftgo/server/internal/core/event"
	coresys "github.com/riftgo/server/internal/core/system"
	"github.com/riftgo/server/internal/data"
	"github.com/riftgo/server/internal/persist"
	"github.com/riftgo/server/internal/scripting"
	"github.com/riftgo/server/internal/sim"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(name string, id int) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m            RiftGO  v0.1.0                 \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m       動作 RPG 戰鬥模擬器 · Go            \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1m場次:\033[0m %s \033[90m(編號: %d)\033[0m\n\n", name, id)
}

func printSection(title string) {
	// Use rune count for CJK width calculation (each CJK char = 2 columns)
	displayWidth := 0
	for _, r := range title {
		if r > 0x7F {
			displayWidth += 2
		} else {
			displayWidth++
		}
	}
	lineLen := 46 - displayWidth - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	// Use display width for CJK characters
	displayWidth := 0
	for _, r := range label {
		if r > 0x7F {
			displayWidth += 2
		} else {
			displayWidth++
		}
	}
	dotsLen := 42 - displayWidth - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main simulator logic ──────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/server.toml"
	if p := os.Getenv("RIFTGO_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Server.Name, cfg.Server.ID)

	// 3. Connect to PostgreSQL and run migrations (optional)
	var repo *persist.EncounterRepo
	if cfg.Database.Enabled {
		printSection("資料庫")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		db, err := persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			cancel()
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		printOK("PostgreSQL 連線成功")

		if err := persist.RunMigrations(ctx, db.Pool); err != nil {
			cancel()
			return fmt.Errorf("migrations: %w", err)
		}
		cancel()
		printOK("資料庫遷移完成")
		fmt.Println()

		repo = persist.NewEncounterRepo(db)
	}

	// 4. Load balance constants and data tables
	printSection("資料載入")

	bal, err := config.LoadBalance(cfg.Data.BalancePath)
	if err != nil {
		return fmt.Errorf("load balance: %w", err)
	}
	printOK("平衡常數載入完成")

	yamlPath := func(name string) string {
		return cfg.Data.Dir + "/" + name
	}

	skillTable, err := data.LoadSkillTable(yamlPath("skill_list.yaml"))
	if err != nil {
		return fmt.Errorf("load skill table: %w", err)
	}
	printStat("技能", skillTable.Count())

	dotTable, err := data.LoadDotTable(yamlPath("dot_list.yaml"))
	if err != nil {
		return fmt.Errorf("load dot table: %w", err)
	}
	printStat("狀態效果", dotTable.Count())

	itemTable, err := data.LoadItemTable(yamlPath("item_list.yaml"))
	if err != nil {
		return fmt.Errorf("load item table: %w", err)
	}
	printStat("道具模板", itemTable.Count())

	combatantTable, err := data.LoadCombatantTable(yamlPath("combatant_list.yaml"))
	if err != nil {
		return fmt.Errorf("load combatant table: %w", err)
	}
	printStat("戰鬥者模板", combatantTable.Count())

	// 5. Initialize Lua rotation scripting
	luaEngine, err := scripting.NewEngine(cfg.Data.ScriptDir, log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer luaEngine.Close()
	printOK("Lua 輪替腳本載入完成")
	fmt.Println()

	// 6. Combat engine
	eng, err := combat.NewEngine(bal, skillTable, dotTable, log)
	if err != nil {
		return fmt.Errorf("combat engine: %w", err)
	}

	tplA := combatantTable.Get(cfg.Simulation.CombatantA)
	if tplA == nil {
		return fmt.Errorf("combatant %d not found", cfg.Simulation.CombatantA)
	}
	tplB := combatantTable.Get(cfg.Simulation.CombatantB)
	if tplB == nil {
		return fmt.Errorf("combatant %d not found", cfg.Simulation.CombatantB)
	}

	// 7. Run encounters
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	baseSeed := cfg.Simulation.Seed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}

	printSection("模擬開始")
	printReady(fmt.Sprintf("%s 對 %s", tplA.Name, tplB.Name))
	printReady(fmt.Sprintf("場數 %d · tick %s · 種子 %d",
		cfg.Simulation.Encounters, cfg.Simulation.TickRate, baseSeed))
	fmt.Println()

	winsA, winsB, draws := 0, 0, 0
	for i := 0; i < cfg.Simulation.Encounters; i++ {
		select {
		case sig := <-shutdownCh:
			log.Info("收到關閉信號", zap.String("signal", sig.String()))
			printSummary(winsA, winsB, draws, tplA.Name, tplB.Name)
			printRecent(repo, log)
			return nil
		default:
		}

		enc, err := runEncounter(baseSeed+int64(i), tplA, tplB, itemTable, eng, skillTable, luaEngine, repo, cfg, log)
		if err != nil {
			return fmt.Errorf("encounter %d: %w", i+1, err)
		}
		switch enc.Winner {
		case enc.A.ID:
			winsA++
		case enc.B.ID:
			winsB++
		default:
			draws++
		}
		log.Info("對戰結束",
			zap.Int("encounter", i+1),
			zap.Int64("winner", enc.Winner),
			zap.Int("ticks", enc.Tick),
			zap.Float64("damage_a", enc.A.DamageDealt),
			zap.Float64("damage_b", enc.B.DamageDealt),
			zap.Float64("dot_damage", enc.DotDamage))
	}

	printSummary(winsA, winsB, draws, tplA.Name, tplB.Name)
	printRecent(repo, log)
	return nil
}

// printRecent dumps the latest persisted encounters so a batch run
// ends with the stored history in view. No-op without a database.
func printRecent(repo *persist.EncounterRepo, log *zap.Logger) {
	if repo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rows, err := repo.RecentEncounters(ctx, 5)
	if err != nil {
		log.Warn("讀取歷史戰績失敗", zap.Error(err))
		return
	}
	printSection("歷史戰績")
	for _, r := range rows {
		fmt.Printf("  #%d  種子 %d  勝者 %d  %d ticks  傷害 %.0f/%.0f\n",
			r.ID, r.Seed, r.WinnerID, r.Ticks, r.DamageByA, r.DamageByB)
	}
	fmt.Println()
}

// runEncounter wires the phase pipeline for one fight and drives it
// until someone drops or the tick cap declares a draw.
func runEncounter(seed int64, tplA, tplB *data.CombatantInfo, items *data.ItemTable, eng *combat.Engine, skills *data.SkillTable, rot *scripting.Engine, repo *persist.EncounterRepo, cfg *config.Config, log *zap.Logger) (*sim.Encounter, error) {
	enc, err := sim.NewEncounter(seed, tplA, tplB, items)
	if err != nil {
		return nil, err
	}

	bus := event.NewBus()
	runner := coresys.NewRunner()
	runner.Register(sim.NewEventSystem(enc, bus))
	runner.Register(sim.NewActionSystem(enc, eng, skills, bus, rot, log))
	runner.Register(sim.NewEffectTickSystem(enc, eng, bus))
	runner.Register(sim.NewReportSystem(bus, log))
	runner.Register(sim.NewPersistSystem(enc, repo, log))

	for !enc.Over && enc.Tick < cfg.Simulation.MaxTicks {
		runner.Tick(cfg.Simulation.TickRate)
	}
	if !enc.Over {
		enc.Finish(0) // 平手
	}
	// 最後一個 tick 的事件還躺在緩衝裡,補派送一輪再落地
	runner.TickPhase(coresys.PhaseEvents, cfg.Simulation.TickRate)
	runner.TickPhase(coresys.PhasePersist, cfg.Simulation.TickRate)
	return enc, nil
}

func printSummary(winsA, winsB, draws int, nameA, nameB string) {
	fmt.Println()
	printSection("戰報")
	printStat(nameA+" 勝", winsA)
	printStat(nameB+" 勝", winsB)
	printStat("平手", draws)
	fmt.Println()
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
