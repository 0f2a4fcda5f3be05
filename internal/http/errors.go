package http

// errorMessages is the fixed code-to-text table surfaced alongside every
// error code so clients can show feedback without their own lookup.
var errorMessages = map[string]string{
	"invalid_request":          "The request could not be read.",
	"missing_fields":           "One or more required fields are missing.",
	"invalid_email":            "That email address does not look valid.",
	"weak_password":            "Passwords must be at least 8 characters long.",
	"missing_credentials":      "Email and password are required.",
	"invalid_credentials":      "Incorrect email or password.",
	"not_verified":             "Please verify your email address before logging in.",
	"email_taken":              "An account with this email already exists.",
	"team_name_taken":          "This team name is already registered.",
	"team_not_found":           "No team found.",
	"missing_question":         "Questions cannot be empty.",
	"faq_not_found":            "Question not found.",
	"faq_not_deletable":        "Only pending or rejected questions can be deleted.",
	"invalid_status":           "Unknown question status.",
	"invalid_page_key":         "Unknown page key.",
	"invalid_token":            "Your session is invalid. Please log in again.",
	"missing_token":            "You need to be logged in to do this.",
	"admin_only":               "Administrator access required.",
	"forbidden":                "You do not have permission to do this.",
	"session_expired":          "Your admin session has expired. Please log in again.",
	"already_exists":           "The admin account already exists.",
	"invalid_code":             "The verification code is wrong or has expired.",
	"verification_unavailable": "Verification is temporarily unavailable. Try again later.",
	"missing_path":             "A target path is required.",
	"server_error":             "Something went wrong on our side. Please try again.",
}

func messageFor(code string) string {
	if message, ok := errorMessages[code]; ok {
		return message
	}
	return errorMessages["server_error"]
}
