package models

// MatchRecord is the fixed-schema statistics sheet for one match day. One
// record exists per (account, date); saving replaces the previous record in
// full. Counters carries every technical/tactical counter; the header fields
// plus the counters make up the 63 data columns of the matches table.
type MatchRecord struct {
	ID            string `json:"id"`
	Account       string `json:"-"`
	Date          string `json:"date"`
	Opponent      string `json:"opponent"`
	AthleteID     string `json:"athlete_id"`
	GoalsConceded int    `json:"goals_conceded"`
	Saves         int    `json:"saves"`
	Result        string `json:"result"`
	Report        string `json:"report"`
	Rating        int    `json:"rating"`

	Counters MatchCounters `json:"counters"`
}

// MatchSummary is the narrow projection used for match history listings.
type MatchSummary struct {
	Date          string `json:"date"`
	Opponent      string `json:"opponent"`
	Result        string `json:"result"`
	Rating        int    `json:"rating"`
	GoalsConceded int    `json:"goals_conceded"`
	Saves         int    `json:"saves"`
}

// MatchCounters holds every per-match action counter, grouped the way the
// match sheet groups them. All values are non-negative; no upper bound is
// enforced here. CounterColumns and Refs must stay in the same order as the
// fields below — the matches insert and scan both walk them positionally.
type MatchCounters struct {
	// Goal defense: blocks
	BlockStandLow  int `json:"block_stand_low"`
	BlockStandMid  int `json:"block_stand_mid"`
	BlockStandHigh int `json:"block_stand_high"`
	BlockFallLow   int `json:"block_fall_low"`
	BlockFallMid   int `json:"block_fall_mid"`
	BlockFallHigh  int `json:"block_fall_high"`

	// Goal defense: catches
	CatchStandMid  int `json:"catch_stand_mid"`
	CatchStandHigh int `json:"catch_stand_high"`
	CatchFallLow   int `json:"catch_fall_low"`
	CatchFallMid   int `json:"catch_fall_mid"`
	CatchFallHigh  int `json:"catch_fall_high"`
	CatchFallSweep int `json:"catch_fall_sweep"`

	// Goal defense: deflections
	DeflectStandFoot     int `json:"deflect_stand_foot"`
	DeflectStandMidFront int `json:"deflect_stand_mid_front"`
	DeflectStandMidSide  int `json:"deflect_stand_mid_side"`
	DeflectStandHighOne  int `json:"deflect_stand_high_one"`
	DeflectStandHighTwo  int `json:"deflect_stand_high_two"`
	DeflectFallSweep     int `json:"deflect_fall_sweep"`
	DeflectFallLowOne    int `json:"deflect_fall_low_one"`
	DeflectFallLowTwo    int `json:"deflect_fall_low_two"`
	DeflectFallHighOne   int `json:"deflect_fall_high_one"`
	DeflectFallHighTwo   int `json:"deflect_fall_high_two"`

	// Goal defense: extension and flight saves
	ExtensionCatch       int `json:"extension_catch"`
	ExtensionDeflectOne  int `json:"extension_deflect_one"`
	ExtensionDeflectTwo  int `json:"extension_deflect_two"`
	FlightCatch          int `json:"flight_catch"`
	FlightDeflectOne     int `json:"flight_deflect_one"`
	FlightDeflectTwo     int `json:"flight_deflect_two"`
	FlightDeflectFarHand int `json:"flight_deflect_far_hand"`

	// Space defense
	SpaceHeader    int `json:"space_header"`
	SpaceSlide     int `json:"space_slide"`
	SpaceClearance int `json:"space_clearance"`
	SpaceCatch     int `json:"space_catch"`

	// 1v1 duels
	DuelWall    int `json:"duel_wall"`
	DuelSmother int `json:"duel_smother"`
	DuelStar    int `json:"duel_star"`
	DuelFrontal int `json:"duel_frontal"`

	// Distribution
	BackPassShortOne int `json:"back_pass_short_one"`
	BackPassShortTwo int `json:"back_pass_short_two"`
	BackPassLongOne  int `json:"back_pass_long_one"`
	BackPassLongTwo  int `json:"back_pass_long_two"`
	ThrowShort       int `json:"throw_short"`
	ThrowLong        int `json:"throw_long"`
	ThrowDriven      int `json:"throw_driven"`
	Volley           int `json:"volley"`
	KickShort        int `json:"kick_short"`
	KickLong         int `json:"kick_long"`

	// Crosses
	CrossHighCatch    int `json:"cross_high_catch"`
	CrossPunchOne     int `json:"cross_punch_one"`
	CrossPunchTwo     int `json:"cross_punch_two"`
	CrossInterceptLow int `json:"cross_intercept_low"`

	// Offensive set plays (goal kicks)
	GoalKickShort int `json:"goal_kick_short"`
	GoalKickMid   int `json:"goal_kick_mid"`
	GoalKickLong  int `json:"goal_kick_long"`
}

// CounterColumns lists the matches-table column names for MatchCounters, in
// field order.
var CounterColumns = []string{
	"block_stand_low", "block_stand_mid", "block_stand_high",
	"block_fall_low", "block_fall_mid", "block_fall_high",

	"catch_stand_mid", "catch_stand_high", "catch_fall_low",
	"catch_fall_mid", "catch_fall_high", "catch_fall_sweep",

	"deflect_stand_foot", "deflect_stand_mid_front", "deflect_stand_mid_side",
	"deflect_stand_high_one", "deflect_stand_high_two", "deflect_fall_sweep",
	"deflect_fall_low_one", "deflect_fall_low_two",
	"deflect_fall_high_one", "deflect_fall_high_two",

	"extension_catch", "extension_deflect_one", "extension_deflect_two",
	"flight_catch", "flight_deflect_one", "flight_deflect_two",
	"flight_deflect_far_hand",

	"space_header", "space_slide", "space_clearance", "space_catch",

	"duel_wall", "duel_smother", "duel_star", "duel_frontal",

	"back_pass_short_one", "back_pass_short_two",
	"back_pass_long_one", "back_pass_long_two",
	"throw_short", "throw_long", "throw_driven", "volley",
	"kick_short", "kick_long",

	"cross_high_catch", "cross_punch_one", "cross_punch_two",
	"cross_intercept_low",

	"goal_kick_short", "goal_kick_mid", "goal_kick_long",
}

// Refs returns pointers to every counter field in CounterColumns order. The
// storage layer derefs them for inserts and scans into them for reads, so the
// column list and the struct cannot drift independently without both paths
// breaking together.
func (c *MatchCounters) Refs() []*int {
	return []*int{
		&c.BlockStandLow, &c.BlockStandMid, &c.BlockStandHigh,
		&c.BlockFallLow, &c.BlockFallMid, &c.BlockFallHigh,

		&c.CatchStandMid, &c.CatchStandHigh, &c.CatchFallLow,
		&c.CatchFallMid, &c.CatchFallHigh, &c.CatchFallSweep,

		&c.DeflectStandFoot, &c.DeflectStandMidFront, &c.DeflectStandMidSide,
		&c.DeflectStandHighOne, &c.DeflectStandHighTwo, &c.DeflectFallSweep,
		&c.DeflectFallLowOne, &c.DeflectFallLowTwo,
		&c.DeflectFallHighOne, &c.DeflectFallHighTwo,

		&c.ExtensionCatch, &c.ExtensionDeflectOne, &c.ExtensionDeflectTwo,
		&c.FlightCatch, &c.FlightDeflectOne, &c.FlightDeflectTwo,
		&c.FlightDeflectFarHand,

		&c.SpaceHeader, &c.SpaceSlide, &c.SpaceClearance, &c.SpaceCatch,

		&c.DuelWall, &c.DuelSmother, &c.DuelStar, &c.DuelFrontal,

		&c.BackPassShortOne, &c.BackPassShortTwo,
		&c.BackPassLongOne, &c.BackPassLongTwo,
		&c.ThrowShort, &c.ThrowLong, &c.ThrowDriven, &c.Volley,
		&c.KickShort, &c.KickLong,

		&c.CrossHighCatch, &c.CrossPunchOne, &c.CrossPunchTwo,
		&c.CrossInterceptLow,

		&c.GoalKickShort, &c.GoalKickMid, &c.GoalKickLong,
	}
}
