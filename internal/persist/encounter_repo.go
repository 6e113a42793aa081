package persist

import (
	"context"
	"fmt"
	"time"
)

// EncounterRow is one finished simulation encounter.
type EncounterRow struct {
	ID           int64
	Seed         int64
	WinnerID     int64 // 0 = draw
	CombatantA   int64
	CombatantB   int64
	Ticks        int
	DurationSecs float64
	DamageByA    float64
	DamageByB    float64
	DotDamage    float64
	Crits        int
	CreatedAt    time.Time
}

// HitRow is one resolved hit within an encounter, for damage-log replay.
type HitRow struct {
	EncounterID int64
	Tick        int
	SourceID    int64
	TargetID    int64
	SkillID     int32
	Damage      float64
	Critical    bool
}

type EncounterRepo struct {
	db *DB
}

func NewEncounterRepo(db *DB) *EncounterRepo {
	return &EncounterRepo{db: db}
}

// SaveEncounter writes the summary row and its hit log in one
// transaction, returning the encounter ID.
func (r *EncounterRepo) SaveEncounter(ctx context.Context, row *EncounterRow, hits []HitRow) (int64, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("encounter begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var id int64
	err = tx.QueryRow(ctx,
		`INSERT INTO encounters (seed, winner_id, combatant_a, combatant_b, ticks, duration_secs,
		                         damage_by_a, damage_by_b, dot_damage, crits)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id`,
		row.Seed, row.WinnerID, row.CombatantA, row.CombatantB, row.Ticks, row.DurationSecs,
		row.DamageByA, row.DamageByB, row.DotDamage, row.Crits,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert encounter: %w", err)
	}

	for _, h := range hits {
		if _, err := tx.Exec(ctx,
			`INSERT INTO encounter_hits (encounter_id, tick, source_id, target_id, skill_id, damage, critical)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			id, h.Tick, h.SourceID, h.TargetID, h.SkillID, h.Damage, h.Critical,
		); err != nil {
			return 0, fmt.Errorf("insert hit: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("encounter commit: %w", err)
	}
	return id, nil
}

// RecentEncounters returns the latest n encounter summaries.
func (r *EncounterRepo) RecentEncounters(ctx context.Context, n int) ([]EncounterRow, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, seed, winner_id, combatant_a, combatant_b, ticks, duration_secs,
		        damage_by_a, damage_by_b, dot_damage, crits, created_at
		 FROM encounters ORDER BY id DESC LIMIT $1`, n)
	if err != nil {
		return nil, fmt.Errorf("query encounters: %w", err)
	}
	defer rows.Close()

	var out []EncounterRow
	for rows.Next() {
		var e EncounterRow
		if err := rows.Scan(&e.ID, &e.Seed, &e.WinnerID, &e.CombatantA, &e.CombatantB,
			&e.Ticks, &e.DurationSecs, &e.DamageByA, &e.DamageByB, &e.DotDamage,
			&e.Crits, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan encounter: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
