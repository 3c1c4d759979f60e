package tactics

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning collects every empirically-chosen constant in the decision engine.
// The defaults are the values the engine was tuned with; a YAML file can
// override any subset for experimentation without recompiling.
type Tuning struct {
	// Shot evaluation.
	ShotDamageWeight    float64 `yaml:"shot_damage_weight"`
	CertainKillBonus    float64 `yaml:"certain_kill_bonus"`
	WoundProgressWeight float64 `yaml:"wound_progress_weight"`
	Wound50Multiplier   float64 `yaml:"wound50_multiplier"`
	Wound80Multiplier   float64 `yaml:"wound80_multiplier"`
	SniperLongShotBonus float64 `yaml:"sniper_long_shot_bonus"`
	GunnerCloseBonus    float64 `yaml:"gunner_close_bonus"`
	BerserkerCloseBonus float64 `yaml:"berserker_close_bonus"`

	// Bomb evaluation.
	BombDamageWeight  float64 `yaml:"bomb_damage_weight"`
	BombMultiHitBonus float64 `yaml:"bomb_multi_hit_bonus"`

	// Compound move+attack evaluation.
	CompoundShotWeight     float64 `yaml:"compound_shot_weight"`
	CompoundKillBonus      float64 `yaml:"compound_kill_bonus"`
	CompoundWoundWeight    float64 `yaml:"compound_wound_weight"`
	CompoundClosingBonus   float64 `yaml:"compound_closing_bonus"`
	CompoundBombWeight     float64 `yaml:"compound_bomb_weight"`
	CompoundBombMultiBonus float64 `yaml:"compound_bomb_multi_bonus"`
	CompoundBombCloseBonus float64 `yaml:"compound_bomb_close_bonus"`
	CompoundCleanBonus     float64 `yaml:"compound_clean_bonus"`
	SelfDamagePenalty      float64 `yaml:"self_damage_penalty"`

	// Defensive postures.
	CoverSeekValue     float64 `yaml:"cover_seek_value"`
	SniperRetreatValue float64 `yaml:"sniper_retreat_value"`
	SniperStandoff     int     `yaml:"sniper_standoff"`

	// Doctrine overrides. The ratios compare the override candidate's value
	// against the proposed action's value before swapping.
	CriticalHealth         int     `yaml:"critical_health"`
	CriticalBombMultiplier float64 `yaml:"critical_bomb_multiplier"`
	FocusFireRatio         float64 `yaml:"focus_fire_ratio"`
	BombUrgencyHealth      int     `yaml:"bomb_urgency_health"`
	BombUrgencyRatio       float64 `yaml:"bomb_urgency_ratio"`

	// Search budgets and UCB shape.
	Exploration       float64 `yaml:"exploration"`
	MinRandomVisits   int     `yaml:"min_random_visits"`
	PriorityBlend     float64 `yaml:"priority_blend"`
	MaxDepth          int     `yaml:"max_depth"`
	MaxIterations     int     `yaml:"max_iterations"`
	TimeBudgetMillis  int     `yaml:"time_budget_millis"`
	TimeCheckInterval int     `yaml:"time_check_interval"`
	SettlingTurns     int     `yaml:"settling_turns"`
}

// DefaultTuning returns the shipped constants.
func DefaultTuning() Tuning {
	return Tuning{
		ShotDamageWeight:    150,
		CertainKillBonus:    8000,
		WoundProgressWeight: 80,
		Wound50Multiplier:   1.5,
		Wound80Multiplier:   2.0,
		SniperLongShotBonus: 2000,
		GunnerCloseBonus:    1000,
		BerserkerCloseBonus: 1500,

		BombDamageWeight:  20,
		BombMultiHitBonus: 500,

		CompoundShotWeight:     250,
		CompoundKillBonus:      15000,
		CompoundWoundWeight:    150,
		CompoundClosingBonus:   2000,
		CompoundBombWeight:     200,
		CompoundBombMultiBonus: 4000,
		CompoundBombCloseBonus: 1500,
		CompoundCleanBonus:     800,
		SelfDamagePenalty:      100,

		CoverSeekValue:     3000,
		SniperRetreatValue: 2500,
		SniperStandoff:     5,

		CriticalHealth:         40,
		CriticalBombMultiplier: 5.0,
		FocusFireRatio:         0.8,
		BombUrgencyHealth:      50,
		BombUrgencyRatio:       0.5,

		Exploration:       1.4,
		MinRandomVisits:   8,
		PriorityBlend:     0.3,
		MaxDepth:          6,
		MaxIterations:     10000,
		TimeBudgetMillis:  85,
		TimeCheckInterval: 5,
		SettlingTurns:     3,
	}
}

// LoadTuning reads a YAML override file on top of the defaults. Unknown keys
// are rejected so a typo'd weight name fails loudly instead of silently
// keeping the default.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	b, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read tuning file: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		return t, fmt.Errorf("parse tuning file %s: %w", path, err)
	}
	return t, nil
}
