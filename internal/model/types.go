package model

type Profile struct {
	Name         string            `json:"name"`
	Weight       float64           `json:"weight"`
	Height       float64           `json:"height"`
	Measurements *BodyMeasurements `json:"measurements,omitempty"`
	CreatedAt    string            `json:"createdAt"`
}

type BodyMeasurements struct {
	Biceps    *float64 `json:"biceps,omitempty"`
	Chest     *float64 `json:"chest,omitempty"`
	Waist     *float64 `json:"waist,omitempty"`
	Abs       *float64 `json:"abs,omitempty"`
	Thighs    *float64 `json:"thighs,omitempty"`
	Calves    *float64 `json:"calves,omitempty"`
	UpdatedAt string   `json:"updatedAt"`
}

type Habit struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type HabitLog struct {
	HabitID     string `json:"habitId"`
	Completed   bool   `json:"completed"`
	CompletedAt string `json:"completedAt,omitempty"`
}

type DailyHabitRecord struct {
	Date string     `json:"date"`
	Logs []HabitLog `json:"logs"`
}

type PlanType string

const (
	PlanGym  PlanType = "gym"
	PlanHome PlanType = "home"
	PlanBoth PlanType = "both"
)

// PlanVariant is the schedule a single day was trained on. Only gym and home
// are valid variants; both is a plan type, never a variant.
type PlanVariant string

const (
	VariantGym  PlanVariant = "gym"
	VariantHome PlanVariant = "home"
)

type Exercise struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	TargetSets int    `json:"targetSets"`
	TargetReps int    `json:"targetReps"`
}

type DayWorkout struct {
	Day         string     `json:"day"`
	WorkoutName string     `json:"workoutName"`
	Exercises   []Exercise `json:"exercises"`
}

type WorkoutPlan struct {
	Type PlanType     `json:"type"`
	Gym  []DayWorkout `json:"gym,omitempty"`
	Home []DayWorkout `json:"home,omitempty"`
}

type ExerciseSet struct {
	SetNumber int     `json:"setNumber"`
	Reps      int     `json:"reps"`
	Weight    float64 `json:"weight"`
}

type ExerciseLog struct {
	ExerciseID   string        `json:"exerciseId"`
	ExerciseName string        `json:"exerciseName"`
	Sets         []ExerciseSet `json:"sets"`
}

type AdditionalExercise struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Sets   int     `json:"sets"`
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
}

type WorkoutLog struct {
	Date                string               `json:"date"`
	PlanType            PlanVariant          `json:"planType"`
	Exercises           []ExerciseLog        `json:"exercises"`
	AdditionalExercises []AdditionalExercise `json:"additionalExercises,omitempty"`
	CompletedAt         string               `json:"completedAt,omitempty"`
}

type DietTargets struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type FoodItem struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

type Meal struct {
	ID        string     `json:"id"`
	MealName  string     `json:"mealName"`
	FoodItems []FoodItem `json:"foodItems"`
	// Quantity mirrors the sum of food item weights for older readers.
	Quantity float64 `json:"quantity"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Time     string  `json:"time"`
}

type DailyDietLog struct {
	Date  string `json:"date"`
	Meals []Meal `json:"meals"`
}

type DailyNote struct {
	Date      string `json:"date"`
	Content   string `json:"content"`
	UpdatedAt string `json:"updatedAt"`
}

// RexState is the whole application aggregate. It is the unit of persistence
// and the only input of the rating engine.
type RexState struct {
	IsRegistered bool               `json:"isRegistered"`
	CurrentStep  int                `json:"currentStep"`
	Profile      *Profile           `json:"profile"`
	Habits       []Habit            `json:"habits"`
	WorkoutPlan  *WorkoutPlan       `json:"workoutPlan"`
	DietTargets  *DietTargets       `json:"dietTargets"`
	HabitRecords []DailyHabitRecord `json:"habitRecords"`
	WorkoutLogs  []WorkoutLog       `json:"workoutLogs"`
	DietLogs     []DailyDietLog     `json:"dietLogs"`
	Notes        []DailyNote        `json:"notes"`
}
