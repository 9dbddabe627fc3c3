package dto

// ToggleLikeRequest is the accepted body of POST /likes
type ToggleLikeRequest struct {
	TargetID   *string `json:"targetId" validate:"required,min=1"`
	TargetType *string `json:"targetType" validate:"required,oneof=note comment"`
}

// ToggleLike is a validated ToggleLikeRequest
type ToggleLike struct {
	TargetID   string
	TargetType string
}

// TrackViewRequest is the accepted body of POST /views
type TrackViewRequest struct {
	NoteID *string `json:"noteId" validate:"required,min=1"`
}

// ReportRequest is the accepted body of POST /reports
type ReportRequest struct {
	TargetID   *string `json:"targetId" validate:"required,min=1"`
	TargetType *string `json:"targetType" validate:"required,oneof=note comment"`
	Reason     *string `json:"reason" validate:"omitempty,reportreason"`
}

// Report is a validated ReportRequest
type Report struct {
	TargetID   string
	TargetType string
	Reason     *string
}

// DecodeToggleLike decodes and validates a like toggle
func DecodeToggleLike(raw []byte) (ToggleLike, error) {
	var req ToggleLikeRequest
	errs := &ValidationErrors{}

	decodeObject(raw, &req, errs)
	if errs.Has("body") {
		return ToggleLike{}, errs
	}
	validateStruct(&req, errs)
	if err := errs.orNil(); err != nil {
		return ToggleLike{}, err
	}
	return ToggleLike{TargetID: *req.TargetID, TargetType: *req.TargetType}, nil
}

// DecodeTrackView decodes and validates a view event, returning the note id
func DecodeTrackView(raw []byte) (string, error) {
	var req TrackViewRequest
	errs := &ValidationErrors{}

	decodeObject(raw, &req, errs)
	if errs.Has("body") {
		return "", errs
	}
	validateStruct(&req, errs)
	if err := errs.orNil(); err != nil {
		return "", err
	}
	return *req.NoteID, nil
}

// DecodeReport decodes and validates a content report
func DecodeReport(raw []byte) (Report, error) {
	var req ReportRequest
	errs := &ValidationErrors{}

	decodeObject(raw, &req, errs)
	if errs.Has("body") {
		return Report{}, errs
	}
	validateStruct(&req, errs)
	if err := errs.orNil(); err != nil {
		return Report{}, err
	}
	return Report{TargetID: *req.TargetID, TargetType: *req.TargetType, Reason: req.Reason}, nil
}
