package v1alpha1

import "time"

// Filter restricts a catalog roll. Nil pointers take the permissive default.
type Filter struct {
	// Tech is "any", "IS" or "Clan"
	Tech string `json:"tech,omitempty"`
	Year *int32 `json:"year,omitempty"`
	// StrictYear drops unknown-year classes while Year is set
	StrictYear bool `json:"strict_year,omitempty"`
	// Rarity is "common", "common_uncommon" or "any" (or 1/2/3)
	Rarity               string `json:"rarity,omitempty"`
	IncludeUnknownRarity *bool  `json:"include_unknown_rarity,omitempty"`
	IncludeUnknownTech   *bool  `json:"include_unknown_tech,omitempty"`
}

// RollRequest asks for a batch from a catalog table
type RollRequest struct {
	Filter            *Filter `json:"filter,omitempty"`
	Count             int32   `json:"count"`
	SessionId         string  `json:"session_id,omitempty"`
	SessionTtlSeconds int32   `json:"session_ttl_seconds,omitempty"`
}

// RollJumpShipsRequest asks for a batch from the JumpShip table
type RollJumpShipsRequest struct {
	Count             int32  `json:"count"`
	SessionId         string `json:"session_id,omitempty"`
	SessionTtlSeconds int32  `json:"session_ttl_seconds,omitempty"`
}

// RollResult is one rolled class
type RollResult struct {
	RollId    string `json:"roll_id"`
	Class     string `json:"class"`
	TechBase  string `json:"tech_base,omitempty"`
	IntroYear *int32 `json:"intro_year,omitempty"`
	Rarity    string `json:"rarity,omitempty"`
	Era       string `json:"era,omitempty"`
	Line      string `json:"line"`
}

// RollResponse returns a batch and, when one was named, the session it joined
type RollResponse struct {
	Results []*RollResult `json:"results"`
	Session *RollSession  `json:"session,omitempty"`
}

// SessionRoll is one entry of a roll session
type SessionRoll struct {
	RollId    string    `json:"roll_id"`
	Table     string    `json:"table"`
	ClassName string    `json:"class_name"`
	Line      string    `json:"line"`
	RolledAt  time.Time `json:"rolled_at"`
}

// RollSession is a stored history of rolls
type RollSession struct {
	Id        string         `json:"id"`
	Context   string         `json:"context,omitempty"`
	Rolls     []*SessionRoll `json:"rolls"`
	CreatedAt time.Time      `json:"created_at"`
	ExpiresAt time.Time      `json:"expires_at"`
}

// GetRollSessionRequest names a session
type GetRollSessionRequest struct {
	SessionId string `json:"session_id"`
}

// GetRollSessionResponse returns a session
type GetRollSessionResponse struct {
	Session *RollSession `json:"session"`
}

// ClearRollSessionRequest names a session to remove
type ClearRollSessionRequest struct {
	SessionId string `json:"session_id"`
}

// ClearRollSessionResponse reports what was removed
type ClearRollSessionResponse struct {
	RollsDeleted int32 `json:"rolls_deleted"`
}

// AuditRequest selects the table to audit
type AuditRequest struct {
	// Table is "dropship" (default) or "primitive_jumpship"
	Table string `json:"table,omitempty"`
}

// Count is one tally bucket
type Count struct {
	Label string `json:"label"`
	N     int32  `json:"n"`
}

// UnknownOverride is an override naming no class
type UnknownOverride struct {
	Name       string `json:"name"`
	Suggestion string `json:"suggestion,omitempty"`
}

// LayerAudit describes one override layer
type LayerAudit struct {
	Name    string             `json:"name"`
	Patches int32              `json:"patches"`
	Applied int32              `json:"applied"`
	Unknown []*UnknownOverride `json:"unknown,omitempty"`
}

// AuditResponse is a catalog audit
type AuditResponse struct {
	TotalClasses    int32         `json:"total_classes"`
	OverridesLoaded int32         `json:"overrides_loaded"`
	MissingYear     int32         `json:"missing_year"`
	TechCounts      []*Count      `json:"tech_counts"`
	RarityCounts    []*Count      `json:"rarity_counts"`
	Layers          []*LayerAudit `json:"layers,omitempty"`
	// Text is the report as the CLI prints it
	Text string `json:"text"`
}
