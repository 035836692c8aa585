package models

// CreateCallLogRequest appends one call attempt to the log
type CreateCallLogRequest struct {
	UserID             string `json:"user_id"`
	RepresentativeName string `json:"representative_name" validate:"required,max=200"`
	PhoneNumber        string `json:"phone_number" validate:"required,max=50"`
	PhoneType          string `json:"phone_type" validate:"required,max=50"`
	CallDatetime       string `json:"call_datetime" validate:"required"`
	CallOutcome        string `json:"call_outcome" validate:"required,oneof=person voicemail failed"`
	CallNotes          string `json:"call_notes"`
	ScriptID           *uint  `json:"script_id"`
	ScriptTitle        string `json:"script_title"`
	SessionID          string `json:"session_id"`
	IsTestData         bool   `json:"is_test_data"`
}

// CallLogFilter narrows list and stats queries
type CallLogFilter struct {
	UserID          string `query:"user_id"`
	StartDate       string `query:"start_date"`
	EndDate         string `query:"end_date"`
	Outcome         string `query:"outcome" validate:"omitempty,oneof=person voicemail failed"`
	IncludeTestData bool   `query:"include_test_data"`
}

// CallLogResponse is one call log entry in API responses
type CallLogResponse struct {
	ID                 uint   `json:"id"`
	UserID             string `json:"user_id"`
	RepresentativeName string `json:"representative_name"`
	PhoneNumber        string `json:"phone_number"`
	PhoneType          string `json:"phone_type"`
	CallDatetime       string `json:"call_datetime"`
	CallOutcome        string `json:"call_outcome"`
	CallNotes          string `json:"call_notes"`
	ScriptID           *uint  `json:"script_id"`
	ScriptTitle        string `json:"script_title,omitempty"`
	SessionID          string `json:"session_id,omitempty"`
	IsTestData         bool   `json:"is_test_data"`
	CreatedAt          string `json:"created_at"`
}

// CallLogListResponse wraps a filtered list of call logs
type CallLogListResponse struct {
	CallLogs []CallLogResponse `json:"call_logs"`
	Total    int               `json:"total"`
}

// CallStatsResponse holds the four grouped counts over a user's call logs
type CallStatsResponse struct {
	TotalCalls     int            `json:"total_calls"`
	CallsByOutcome map[string]int `json:"calls_by_outcome"`
	CallsByDate    map[string]int `json:"calls_by_date"`
	CallsByRep     map[string]int `json:"calls_by_rep"`
	CallsByScript  map[string]int `json:"calls_by_script"`
}
