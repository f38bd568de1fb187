package models

import "time"

// AlphaSession is one workout from an Alpha Progression CSV export.
type AlphaSession struct {
	Name      string
	Date      time.Time
	Duration  string
	Exercises []AlphaExercise
}

// AlphaExercise is one exercise block within a session.
type AlphaExercise struct {
	Number     int
	Name       string
	Equipment  string
	TargetReps int
	Sets       []AlphaSet
}

// AlphaSet is a single working or warmup set. RIR is only recorded for
// working sets.
type AlphaSet struct {
	Number           int
	WeightKg         float64
	IsBodyweightPlus bool
	Reps             int
	RIR              float64
	IsWarmup         bool
}

// ExerciseBest is the heaviest estimated 1RM found for one exercise, together
// with the set that produced it.
type ExerciseBest struct {
	Exercise  string    `json:"exercise"`
	Equipment string    `json:"equipment,omitempty"`
	E1RM      float64   `json:"e1rm_kg"`
	WeightKg  float64   `json:"weight_kg"`
	Reps      int       `json:"reps"`
	RPE       float64   `json:"rpe"`
	Date      time.Time `json:"date"`
	Sets      int       `json:"sets"`
}
