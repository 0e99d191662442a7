package models

// Moment is the tactical phase classification of a drill.
type Moment string

const (
	MomentGoalDefense  Moment = "Goal Defense"
	MomentSpaceDefense Moment = "Space Defense"
	MomentCrossing     Moment = "Crossing"
	MomentDuels        Moment = "Duels"
	MomentDistribution Moment = "Distribution"
	MomentBackPass     Moment = "Back Pass"
)

// Moments lists all moment categories in canonical order. Drill selection in
// a session follows this order, so it is part of the persisted semantics, not
// a presentation detail.
var Moments = []Moment{
	MomentGoalDefense,
	MomentSpaceDefense,
	MomentCrossing,
	MomentDuels,
	MomentDistribution,
	MomentBackPass,
}

// TrainingType tags a drill with its dominant training emphasis.
type TrainingType string

const (
	TypeTechnical         TrainingType = "Technical"
	TypeTactical          TrainingType = "Tactical"
	TypeTechnicalTactical TrainingType = "Technical-Tactical"
	TypePhysical          TrainingType = "Physical"
	TypePsychological     TrainingType = "Psychological"
)

// TrainingTypes lists all training type tags.
var TrainingTypes = []TrainingType{
	TypeTechnical,
	TypeTactical,
	TypeTechnicalTactical,
	TypePhysical,
	TypePsychological,
}

// SessionType is the kind of session held on a calendar day.
type SessionType string

const (
	SessionTraining SessionType = "Training"
	SessionMatch    SessionType = "Match"
	SessionRest     SessionType = "Rest"
)

// CalendarColor returns the display color associated with a session type.
func CalendarColor(t SessionType) string {
	switch t {
	case SessionMatch:
		return "#d9534f"
	case SessionRest:
		return "#28a745"
	default:
		return "#3788d8"
	}
}

// Goalkeeper is one athlete in the coach's roster, with the biometric
// profile and field-test results tracked per player.
type Goalkeeper struct {
	ID             string  `json:"id"`
	Account        string  `json:"-"`
	Name           string  `json:"name"`
	Age            int     `json:"age"`
	Status         string  `json:"status"`
	Height         float64 `json:"height"`
	Wingspan       float64 `json:"wingspan"`
	ArmLenLeft     float64 `json:"arm_len_left"`
	ArmLenRight    float64 `json:"arm_len_right"`
	GloveSize      string  `json:"glove_size"`
	JumpFrontBoth  float64 `json:"jump_front_both"`
	JumpFrontLeft  float64 `json:"jump_front_left"`
	JumpFrontRight float64 `json:"jump_front_right"`
	JumpLatLeft    float64 `json:"jump_lat_left"`
	JumpLatRight   float64 `json:"jump_lat_right"`
	TestEndurance  string  `json:"test_endurance"`
	TestAgility    string  `json:"test_agility"`
	TestSpeed      string  `json:"test_speed"`
}

// Drill is one exercise in the account's library. Sessions reference drills
// by title, so Title is unique per account.
type Drill struct {
	ID           string       `json:"id"`
	Account      string       `json:"-"`
	Title        string       `json:"title"`
	Moment       Moment       `json:"moment"`
	TrainingType TrainingType `json:"training_type"`
	Description  string       `json:"description"`
	Objective    string       `json:"objective"`
	Materials    string       `json:"materials"`
	Space        string       `json:"space"`
	Image        []byte       `json:"image,omitempty"`
}

// Session is the single training/match/rest record for one calendar day.
// DrillsList holds the encoded drill configuration (see drillconfig).
type Session struct {
	ID         string      `json:"id"`
	Account    string      `json:"-"`
	Type       SessionType `json:"type"`
	Title      string      `json:"title"`
	StartDate  string      `json:"start_date"`
	DrillsList string      `json:"drills_list"`
	Report     string      `json:"report"`
}

// Microcycle is a coach-defined 7-day training week anchored at StartDate.
type Microcycle struct {
	ID        string `json:"id"`
	Account   string `json:"-"`
	Title     string `json:"title"`
	StartDate string `json:"start_date"`
	Goal      string `json:"goal"`
	Report    string `json:"report"`
}

// TrainingRating is one athlete's rating for one training day.
type TrainingRating struct {
	ID        string `json:"id"`
	Account   string `json:"-"`
	Date      string `json:"date"`
	AthleteID string `json:"athlete_id"`
	Rating    int    `json:"rating"`
	Notes     string `json:"notes"`
}

// CalendarEvent is a session projected for calendar display.
type CalendarEvent struct {
	Title           string `json:"title"`
	Start           string `json:"start"`
	End             string `json:"end"`
	BackgroundColor string `json:"backgroundColor"`
}
