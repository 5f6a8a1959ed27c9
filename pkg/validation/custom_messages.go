package validation

// CustomMessage returns per-tag overrides for a json field name, or nil.
func CustomMessage(field string) map[string]string {
	var customValidationMessages = map[string]map[string]string{
		"email": {
			"required": "email is required",
			"email":    "email is not a valid address",
		},
		"password": {
			"required": "password is required",
			"min":      "password must be at least 8 characters",
		},
		"newPassword": {
			"required": "new password is required",
			"min":      "new password must be at least 8 characters",
		},
		"confirmPassword": {
			"eqfield": "passwords do not match",
		},
		"username": {
			"alphanum": "username may only contain letters and numbers",
		},
		"rating": {
			"required": "rating is required",
			"min":      "rating must be between 1 and 5",
			"max":      "rating must be between 1 and 5",
		},
		"beachId": {
			"required": "beachId is required",
		},
	}
	return customValidationMessages[field]
}
