package dto

// UpdateSettingsRequest is the accepted body of PATCH /settings
type UpdateSettingsRequest struct {
	Anonymous     *bool `json:"anonymous"`
	AllowComments *bool `json:"allowComments"`
}

// DecodeUpdateSettings decodes a privacy settings update; at least one toggle is required
func DecodeUpdateSettings(raw []byte) (UpdateSettingsRequest, error) {
	var req UpdateSettingsRequest
	errs := &ValidationErrors{}

	decodeObject(raw, &req, errs)
	if len(errs.Errors) == 0 && req.Anonymous == nil && req.AllowComments == nil {
		errs.Add("body", "At least one of anonymous, allowComments is required")
	}
	if err := errs.orNil(); err != nil {
		return UpdateSettingsRequest{}, err
	}
	return req, nil
}
